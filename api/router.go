package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp wires the handler under /api/v1 and exposes gatherer on /metrics.
func NewApp(handler MetricsHandler, gatherer prom.Gatherer) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	api := app.Group("/api")

	v1 := api.Group("/v1")
	{
		v1.Post("/analyze", handler.Analyze)
		v1.Post("/results", handler.AddResult)
		v1.Get("/results", handler.ListResults)
		v1.Get("/results.csv", handler.ExportCSV)
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	return app
}
