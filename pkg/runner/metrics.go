package runner

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pmkol/tasklist/pkg/task"
)

// Metrics collects task execution metrics. A nil *Metrics is a no-op.
type Metrics struct {
	executedTotal *prometheus.CounterVec
	failedTotal   *prometheus.CounterVec
}

// NewMetrics registers runner metrics to reg. objects, if not nil, is
// exported as the live_objects gauge.
func NewMetrics(reg prometheus.Registerer, objects *task.Objects) (*Metrics, error) {
	m := &Metrics{
		executedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasks_executed_total",
			Help: "The total number of successfully executed tasks",
		}, []string{"kind"}),
		failedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasks_failed_total",
			Help: "The total number of failed tasks",
		}, []string{"kind"}),
	}

	cs := []prometheus.Collector{m.executedTotal, m.failedTotal}
	if objects != nil {
		cs = append(cs, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "live_objects",
			Help: "The number of tasks created and not yet released",
		}, func() float64 {
			return float64(objects.Count())
		}))
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) executed(kind string) {
	if m == nil {
		return
	}
	m.executedTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) failed(kind string) {
	if m == nil {
		return
	}
	m.failedTotal.WithLabelValues(kind).Inc()
}
