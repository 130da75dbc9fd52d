package runner

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pmkol/tasklist/pkg/task"
)

// Queue is a named task queue.
type Queue struct {
	Name  string
	Tasks *task.Queue
}

type Report struct {
	Name    string   `yaml:"name"`
	Results []Result `yaml:"results"`
	Err     error    `yaml:"-"`
}

// RunAll drains queues concurrently, at most parallel at a time (no limit if
// parallel <= 0). Each queue is only touched by its own goroutine.
// Task failures are reported per queue in Report.Err. The returned error is
// only set if ctx is done, in which case tasks left in the queues are
// released and the queues are cleared.
func RunAll(ctx context.Context, queues []Queue, parallel int, opts Opts) ([]Report, error) {
	lg := opts.Logger
	if lg == nil {
		lg = zap.NewNop()
	}

	reports := make([]Report, len(queues))
	g, gCtx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, q := range queues {
		g.Go(func() error {
			r := New(q.Tasks, Opts{Logger: lg.Named(q.Name), Metrics: opts.Metrics})
			results, err := r.Run(gCtx)
			reports[i] = Report{Name: q.Name, Results: results.Values(), Err: err}
			if ctxErr := gCtx.Err(); ctxErr != nil {
				discard(q.Tasks)
				return ctxErr
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}

// discard releases every queued task and empties q.
func discard(q *task.Queue) {
	for t := range q.All() {
		t.Release()
	}
	q.Clear()
}
