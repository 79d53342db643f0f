// Package runner drives the simulator over every test case and scheduler
// and collects the resulting metrics.
package runner

import (
	"context"
	"errors"
	"log/slog"

	"sched-metrics/internal/core"
	"sched-metrics/internal/logging"
	"sched-metrics/internal/metrics"
	"sched-metrics/internal/responses"
	"sched-metrics/internal/schedulers"
	"sched-metrics/internal/store"
	"sched-metrics/internal/trace"
	"sched-metrics/internal/workload"
)

// Simulator produces the trace of one scheduler on one workload.
type Simulator interface {
	Run(ctx context.Context, variant schedulers.Variant, inputPath string) (string, error)
}

type Pusher interface {
	Push(ctx context.Context, result responses.RunResult) error
}

type Runner struct {
	TestDir   string
	Variants  []schedulers.Variant
	Simulator Simulator
	Results   *store.Results
	Exporter  *metrics.Exporter
	Pusher    Pusher
	Log       *slog.Logger
}

// Run analyses every (test case, scheduler) pair in order. A failing run is
// logged and skipped; only a failure to list the test cases aborts.
func (r *Runner) Run(ctx context.Context) ([]responses.RunResult, error) {
	cases, err := DiscoverTestCases(r.TestDir)
	if err != nil {
		return nil, err
	}
	r.Log.Info("test cases discovered",
		slog.String("dir", r.TestDir),
		slog.Int("count", len(cases)),
	)

	var results []responses.RunResult
	for _, tc := range cases {
		arrivals, err := workload.ParseFile(tc.Path)
		if err != nil {
			r.Log.Error("skipping test case", slog.String("test", tc.Name), logging.ErrAttr(err))
			continue
		}

		for _, variant := range r.Variants {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			result, err := r.runOne(ctx, tc, variant, arrivals)
			if errors.Is(err, core.ErrBinaryNotFound) {
				r.Log.Debug("scheduler binary not found", slog.String("scheduler", variant.Name), slog.String("binary", variant.Binary))
				continue
			}
			if err != nil {
				r.Exporter.RunFailed(variant.Name)
				r.Log.Error("run failed",
					slog.String("scheduler", variant.Name),
					slog.String("test", tc.Name),
					logging.ErrAttr(err),
				)
				continue
			}
			results = append(results, result)
		}
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, tc TestCase, variant schedulers.Variant, arrivals workload.Arrivals) (responses.RunResult, error) {
	text, err := r.Simulator.Run(ctx, variant, tc.Path)
	if err != nil {
		return responses.RunResult{}, err
	}

	runMetrics, err := trace.Interpret(text, arrivals)
	if err != nil {
		return responses.RunResult{}, err
	}

	result := responses.RunResult{Scheduler: variant.Name, Test: tc.Name, Metrics: runMetrics}
	if r.Results != nil {
		result = r.Results.Append(result)
	}
	r.Exporter.Observe(result)
	r.Log.Info("run analysed",
		slog.String("scheduler", result.Scheduler),
		slog.String("test", result.Test),
		slog.Float64("throughput", runMetrics.Throughput),
		slog.Float64("avg_wait", runMetrics.AverageWaitingTime),
		slog.Float64("avg_turnaround", runMetrics.AverageTurnAroundTime),
		slog.Float64("avg_response", runMetrics.AverageResponseTime),
	)

	if len(runMetrics.Unfinished) > 0 {
		r.Log.Warn("processes did not terminate",
			slog.String("scheduler", result.Scheduler),
			slog.String("test", result.Test),
			slog.Any("by_phase", runMetrics.Unfinished),
		)
	}

	if r.Pusher != nil {
		if err := r.Pusher.Push(ctx, result); err != nil {
			r.Log.Warn("push failed", slog.String("scheduler", result.Scheduler), slog.String("test", result.Test), logging.ErrAttr(err))
		}
	}
	return result, nil
}
