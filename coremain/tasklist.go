package coremain

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pmkol/tasklist/mlog"
	"github.com/pmkol/tasklist/pkg/list"
	"github.com/pmkol/tasklist/pkg/runner"
	"github.com/pmkol/tasklist/pkg/task"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

// Output controls where and how RunTasklist reports.
type Output struct {
	W       io.Writer
	Format  string
	Metrics bool
}

type report struct {
	ObjectsBefore int64           `yaml:"objects_before"`
	ObjectsAfter  int64           `yaml:"objects_after"`
	Queues        []runner.Report `yaml:"queues"`
}

// RunTasklist builds every queue in cfg, drains them and writes the
// results to out. It returns an error if any task failed.
func RunTasklist(ctx context.Context, cfg *Config, out *Output) error {
	if ctx == nil {
		ctx = context.Background()
	}

	lg, closeLog, err := mlog.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer closeLog()

	if len(cfg.Queues) == 0 {
		return errors.New("no queue is configured")
	}

	objects := new(task.Objects)
	reg := prometheus.NewRegistry()
	metrics, err := runner.NewMetrics(prometheus.WrapRegistererWithPrefix("tasklist_", reg), objects)
	if err != nil {
		return fmt.Errorf("failed to init metrics: %w", err)
	}

	queues := make([]runner.Queue, 0, len(cfg.Queues))
	for i, qc := range cfg.Queues {
		name := qc.Name
		if len(name) == 0 {
			name = fmt.Sprintf("queue#%d", i)
		}
		q, err := buildQueue(&qc, objects)
		if err != nil {
			return fmt.Errorf("failed to build queue %s, %w", name, err)
		}
		lg.Info("queue loaded", zap.String("queue", name), zap.Int("tasks", q.Len()))
		queues = append(queues, runner.Queue{Name: name, Tasks: q})
	}

	r := report{ObjectsBefore: objects.Count()}
	r.Queues, err = runner.RunAll(ctx, queues, cfg.Parallel, runner.Opts{Logger: lg, Metrics: metrics})
	if err != nil {
		return err
	}
	r.ObjectsAfter = objects.Count()

	switch out.Format {
	case formatYAML:
		err = writeYAML(out.W, &r)
	default:
		err = writeText(out.W, &r)
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if out.Metrics {
		if err := writeMetrics(out.W, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	failed := 0
	for _, qr := range r.Queues {
		if qr.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d queue(s) had failed tasks", failed)
	}
	return nil
}

func buildQueue(qc *QueueConfig, objects *task.Objects) (*task.Queue, error) {
	q := list.New[task.Task]()
	f := task.NewFactory(q, objects)
	for i := range qc.Tasks {
		t, err := f.Build(&qc.Tasks[i])
		if err != nil {
			// drop what was built so far
			for queued := range q.All() {
				queued.Release()
			}
			q.Clear()
			return nil, fmt.Errorf("task #%d, %w", i, err)
		}
		q.PushBack(t)
	}
	return q, nil
}

const banner = "*-------------------------*\n"

func writeText(w io.Writer, r *report) error {
	var err error
	printf := func(format string, a ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, a...)
		}
	}

	printf(banner)
	printf("* Objects in program : %d\n", r.ObjectsBefore)
	printf(banner)
	for _, qr := range r.Queues {
		if len(r.Queues) > 1 {
			printf("[%s]\n", qr.Name)
		}
		for _, res := range qr.Results {
			if len(res.Err) > 0 {
				printf("* %s (error: %s)\n", res.Output, res.Err)
				continue
			}
			printf("* %s\n", res.Output)
		}
	}
	printf(banner)
	printf("* Objects in program : %d\n", r.ObjectsAfter)
	printf(banner)
	return err
}

func writeYAML(w io.Writer, r *report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
