package requests

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRequest = errors.New("invalid request")

// AnalyzeRequest carries one simulator run: the raw trace and the workload
// text that was fed to the simulator.
type AnalyzeRequest struct {
	Scheduler string `json:"scheduler"`
	Test      string `json:"test"`
	Trace     string `json:"trace"`
	Workload  string `json:"workload"`
}

func (r *AnalyzeRequest) Validate() error {
	if strings.TrimSpace(r.Scheduler) == "" {
		return fmt.Errorf("%w: scheduler is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.Test) == "" {
		return fmt.Errorf("%w: test is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.Workload) == "" {
		return fmt.Errorf("%w: workload is required", ErrInvalidRequest)
	}
	return nil
}
