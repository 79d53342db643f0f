package collector

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"sched-metrics/internal/responses"
)

func TestCollector_Push(t *testing.T) {
	c := NewCollector("http://collector:9095/", slog.New(slog.NewTextHandler(io.Discard, nil)))
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	result := responses.RunResult{
		Scheduler: "RR",
		Test:      "test1",
		Metrics:   responses.RunMetrics{Throughput: 0.1, Completed: 2, EndTime: 20},
	}

	tests := []struct {
		name    string
		expects func()
		wantErr bool
	}{
		{
			name: "created",
			expects: func() {
				httpmock.RegisterResponder(http.MethodPost, "http://collector:9095/api/v1/results",
					func(req *http.Request) (*http.Response, error) {
						var got responses.RunResult
						if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
							return httpmock.NewStringResponse(http.StatusBadRequest, ""), nil
						}
						if got.Scheduler != "RR" || got.Metrics.Completed != 2 {
							return httpmock.NewStringResponse(http.StatusBadRequest, ""), nil
						}
						return httpmock.NewStringResponse(http.StatusCreated, `{}`), nil
					})
			},
			wantErr: false,
		},
		{
			name: "rejected",
			expects: func() {
				httpmock.RegisterResponder(http.MethodPost, "http://collector:9095/api/v1/results",
					httpmock.NewStringResponder(http.StatusBadRequest, `{"error":"invalid request format"}`))
			},
			wantErr: true,
		},
		{
			name: "transport error",
			expects: func() {
				httpmock.RegisterResponder(http.MethodPost, "http://collector:9095/api/v1/results",
					httpmock.NewErrorResponder(errors.New("connection refused")))
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expects()
			err := c.Push(context.Background(), result)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
