// Package collector pushes run results to a remote sched-metrics server.
package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"sched-metrics/internal/responses"
)

const resultsPath = "/api/v1/results"

type Collector struct {
	BaseURL string
	Log     *slog.Logger
}

func NewCollector(baseURL string, logger *slog.Logger) *Collector {
	return &Collector{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Log:     logger,
	}
}

// Push posts result to the collector. Any non-2xx status is an error.
func (c *Collector) Push(ctx context.Context, result responses.RunResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+resultsPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("push %s/%s: %w", result.Scheduler, result.Test, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push %s/%s: unexpected status %d", result.Scheduler, result.Test, resp.StatusCode)
	}

	c.Log.Debug("result pushed",
		slog.String("scheduler", result.Scheduler),
		slog.String("test", result.Test),
		slog.Int("status_code", resp.StatusCode),
	)
	return nil
}
