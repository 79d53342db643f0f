package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"sched-metrics/api"
	"sched-metrics/config"
	"sched-metrics/internal/core"
	"sched-metrics/internal/logging"
	"sched-metrics/internal/metrics"
	"sched-metrics/internal/report"
	"sched-metrics/internal/runner"
	"sched-metrics/internal/store"
	"sched-metrics/internal/trace"
	"sched-metrics/internal/workload"
	"sched-metrics/pkg/collector"
)

func main() {
	app := &cli.App{
		Name:  "sched-metrics",
		Usage: "derive scheduling metrics from simulator traces",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config.yaml",
				EnvVars: []string{"SCHEDMETRICS_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			interpretCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "run every scheduler on every test case and export the metrics",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "test-dir", Usage: "directory holding testN/ workload folders"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "CSV output path"},
		},
		Action: analyzeAction,
	}
}

func analyzeAction(c *cli.Context) error {
	cfg, err := config.GetAnalyzerConfig(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("load config: %v", err), 1)
	}
	if dir := c.String("test-dir"); dir != "" {
		cfg.TestDir = dir
	}
	if out := c.String("output"); out != "" {
		cfg.OutputCSV = out
	}
	logger := logging.BuildLogger(cfg.LogLevel)

	exporter, err := metrics.NewExporter("schedmetrics", prom.NewRegistry())
	if err != nil {
		return err
	}

	r := &runner.Runner{
		TestDir:   cfg.TestDir,
		Variants:  cfg.Schedulers,
		Simulator: core.NewSimulator(cfg.WorkDir, cfg.SimulatorTimeout, logger),
		Results:   store.NewResults(),
		Exporter:  exporter,
		Log:       logger,
	}
	if cfg.CollectorURL != "" {
		r.Pusher = collector.NewCollector(cfg.CollectorURL, logger)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := r.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return cli.Exit(fmt.Sprintf("analyze: %v", err), 1)
	}

	report.WriteTable(c.App.Writer, results)
	if err := report.WriteCSVFile(cfg.OutputCSV, results); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	_, _ = fmt.Fprintf(c.App.Writer, "\nResults saved to '%s'\n", cfg.OutputCSV)
	return nil
}

func interpretCommand() *cli.Command {
	return &cli.Command{
		Name:  "interpret",
		Usage: "compute the metrics of a single existing trace",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "trace", Aliases: []string{"t"}, Required: true, Usage: "execution trace file"},
			&cli.StringFlag{Name: "workload", Aliases: []string{"w"}, Required: true, Usage: "workload file the trace was produced from"},
		},
		Action: interpretAction,
	}
}

func interpretAction(c *cli.Context) error {
	arrivals, err := workload.ParseFile(c.String("workload"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	f, err := os.Open(c.String("trace"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer func() {
		_ = f.Close()
	}()

	runMetrics, err := trace.InterpretReader(f, arrivals)
	if err != nil {
		return cli.Exit(fmt.Sprintf("%s: %v", c.String("trace"), err), 1)
	}
	report.WriteDetails(c.App.Writer, runMetrics)
	return nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the analysis API and collect pushed results",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "listen port"},
		},
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	cfg, err := config.GetAnalyzerConfig(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("load config: %v", err), 1)
	}
	if port := c.Int("port"); port != 0 {
		cfg.Port = port
	}
	logger := logging.BuildLogger(cfg.LogLevel)

	reg := prom.NewRegistry()
	exporter, err := metrics.NewExporter("schedmetrics", reg)
	if err != nil {
		return err
	}
	app := api.NewApp(api.NewMetricsHandlerImpl(cfg.Schedulers, store.NewResults(), exporter, logger), reg)

	go func() {
		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	logger.Info("listening", slog.Int("port", cfg.Port))
	return app.Listen(fmt.Sprintf(":%d", cfg.Port))
}
