package api

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sched-metrics/internal/logging"
	"sched-metrics/internal/metrics"
	"sched-metrics/internal/report"
	"sched-metrics/internal/requests"
	"sched-metrics/internal/responses"
	"sched-metrics/internal/schedulers"
	"sched-metrics/internal/store"
	"sched-metrics/internal/trace"
	"sched-metrics/internal/workload"
)

type MetricsHandler interface {
	Analyze(ctx *fiber.Ctx) error
	AddResult(ctx *fiber.Ctx) error
	ListResults(ctx *fiber.Ctx) error
	ExportCSV(ctx *fiber.Ctx) error
}

type MetricsHandlerImpl struct {
	variants []schedulers.Variant
	results  *store.Results
	exporter *metrics.Exporter
	logger   *slog.Logger
}

func NewMetricsHandlerImpl(variants []schedulers.Variant, results *store.Results, exporter *metrics.Exporter, logger *slog.Logger) *MetricsHandlerImpl {
	return &MetricsHandlerImpl{variants: variants, results: results, exporter: exporter, logger: logger}
}

// Analyze interprets a posted trace against its workload and records the run.
// The scheduler must be one of the configured variants.
func (h *MetricsHandlerImpl) Analyze(ctx *fiber.Ctx) error {
	var request requests.AnalyzeRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request format"})
	}
	if err := request.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	variant, ok := schedulers.Find(h.variants, request.Scheduler)
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown scheduler " + request.Scheduler})
	}
	request.Scheduler = variant.Name

	arrivals, err := workload.Parse(strings.NewReader(request.Workload))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	runMetrics, err := trace.Interpret(request.Trace, arrivals)
	if err != nil {
		h.exporter.RunFailed(request.Scheduler)
		h.logger.Warn("trace rejected",
			slog.String("scheduler", request.Scheduler),
			slog.String("test", request.Test),
			logging.ErrAttr(err),
		)
		if errors.Is(err, trace.ErrMissingFirstRun) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "can not process trace"})
	}

	result := h.record(responses.RunResult{
		Scheduler: request.Scheduler,
		Test:      request.Test,
		Metrics:   runMetrics,
	})
	return ctx.JSON(result)
}

// AddResult accepts a result computed elsewhere, e.g. pushed by an analyze run.
func (h *MetricsHandlerImpl) AddResult(ctx *fiber.Ctx) error {
	var result responses.RunResult
	if err := ctx.BodyParser(&result); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request format"})
	}
	if result.Scheduler == "" || result.Test == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "scheduler and test are required"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(h.record(result))
}

func (h *MetricsHandlerImpl) ListResults(ctx *fiber.Ctx) error {
	return ctx.JSON(h.results.All())
}

func (h *MetricsHandlerImpl) ExportCSV(ctx *fiber.Ctx) error {
	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="final_metrics.csv"`)
	return report.WriteCSV(ctx, h.results.All())
}

func (h *MetricsHandlerImpl) record(result responses.RunResult) responses.RunResult {
	result = h.results.Append(result)
	h.exporter.Observe(result)
	h.logger.Info("run recorded",
		slog.String("run_id", result.RunId),
		slog.String("scheduler", result.Scheduler),
		slog.String("test", result.Test),
	)
	return result
}
