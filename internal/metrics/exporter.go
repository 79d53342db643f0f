// Package metrics publishes run results as Prometheus gauges.
package metrics

import (
	"errors"
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"

	"sched-metrics/internal/responses"
)

const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

type Exporter struct {
	throughput         *prom.GaugeVec
	avgWait            *prom.GaugeVec
	avgTurnaround      *prom.GaugeVec
	avgResponse        *prom.GaugeVec
	completedProcesses *prom.GaugeVec
	runsTotal          *prom.CounterVec
}

// NewExporter creates and registers the run collectors. Registering twice
// on the same registry reuses the existing collectors.
func NewExporter(namespace string, reg prom.Registerer) (*Exporter, error) {
	if namespace == "" {
		namespace = "schedmetrics"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	labels := []string{"scheduler", "test"}
	gauge := func(name, help string) *prom.GaugeVec {
		return prom.NewGaugeVec(prom.GaugeOpts{Namespace: namespace, Name: name, Help: help}, labels)
	}

	e := &Exporter{
		throughput:         gauge("throughput", "Completed processes per time unit."),
		avgWait:            gauge("avg_wait", "Average time spent in the ready queue."),
		avgTurnaround:      gauge("avg_turnaround", "Average completion time minus arrival time."),
		avgResponse:        gauge("avg_response", "Average first run time minus arrival time."),
		completedProcesses: gauge("completed_processes", "Processes that terminated with a known arrival."),
		runsTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of analysed simulator runs.",
		}, []string{"scheduler", "outcome"}),
	}

	var err error
	for _, g := range []**prom.GaugeVec{&e.throughput, &e.avgWait, &e.avgTurnaround, &e.avgResponse, &e.completedProcesses} {
		if *g, err = registerCollector(reg, *g); err != nil {
			return nil, err
		}
	}
	if e.runsTotal, err = registerCollector(reg, e.runsTotal); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Exporter) Observe(result responses.RunResult) {
	if e == nil {
		return
	}
	scheduler := normalizeLabel(result.Scheduler, "unknown")
	test := normalizeLabel(result.Test, "unknown")
	m := result.Metrics
	e.throughput.WithLabelValues(scheduler, test).Set(m.Throughput)
	e.avgWait.WithLabelValues(scheduler, test).Set(m.AverageWaitingTime)
	e.avgTurnaround.WithLabelValues(scheduler, test).Set(m.AverageTurnAroundTime)
	e.avgResponse.WithLabelValues(scheduler, test).Set(m.AverageResponseTime)
	e.completedProcesses.WithLabelValues(scheduler, test).Set(float64(m.Completed))
	e.runsTotal.WithLabelValues(scheduler, OutcomeOK).Inc()
}

func (e *Exporter) RunFailed(scheduler string) {
	if e == nil {
		return
	}
	e.runsTotal.WithLabelValues(normalizeLabel(scheduler, "unknown"), OutcomeFailed).Inc()
}

func normalizeLabel(v string, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
