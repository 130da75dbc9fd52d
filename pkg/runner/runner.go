package runner

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pmkol/tasklist/pkg/list"
	"github.com/pmkol/tasklist/pkg/task"
)

// Result is the outcome of one executed task.
type Result struct {
	Kind   string `yaml:"kind"`
	Output string `yaml:"output"`
	Err    string `yaml:"error,omitempty"`
}

type Opts struct {
	// Logger is the *zap.Logger for this Runner.
	// A nil Logger will disable logging.
	Logger *zap.Logger

	// Metrics, optional.
	Metrics *Metrics
}

// Runner drains a task queue from the front and executes each task.
// A Runner must not be used by multiple goroutines, nor may its queue be
// touched by anything other than the tasks it executes while Run is active.
type Runner struct {
	q       *task.Queue
	logger  *zap.Logger
	metrics *Metrics
}

func New(q *task.Queue, opts Opts) *Runner {
	lg := opts.Logger
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Runner{q: q, logger: lg, metrics: opts.Metrics}
}

// Run executes tasks until the queue is empty or ctx is done. Tasks may push
// to or clear the queue while they run. A failed task does not stop the run;
// its error is recorded in the result and joined into the returned error.
// If ctx is done, the remaining tasks stay in the queue and the caller
// owns them.
func (r *Runner) Run(ctx context.Context) (*list.List[Result], error) {
	results := list.New[Result]()
	var errs []error

	for !r.q.IsEmpty() {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		t, err := r.q.PopFront()
		if err != nil {
			return results, err
		}

		res, err := r.exec(t)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.Kind(), err))
		}
		results.PushBack(res)
		t.Release()
	}
	return results, errors.Join(errs...)
}

func (r *Runner) exec(t task.Task) (Result, error) {
	res := Result{Kind: t.Kind()}
	if err := t.Execute(); err != nil {
		r.logger.Warn("task failed", zap.String("kind", t.Kind()), zap.Error(err))
		r.metrics.failed(t.Kind())
		res.Output = t.String()
		res.Err = err.Error()
		return res, err
	}

	res.Output = t.String()
	r.logger.Debug("task executed", zap.String("kind", t.Kind()), zap.String("output", res.Output), zap.Int("queued", r.q.Len()))
	r.metrics.executed(t.Kind())
	return res, nil
}
