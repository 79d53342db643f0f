package store

import (
	"sync"

	"github.com/google/uuid"

	"sched-metrics/internal/responses"
)

// Results is the append-only collection of run results shared by the
// driver and the HTTP API.
type Results struct {
	mu      sync.Mutex
	results []responses.RunResult
}

func NewResults() *Results {
	return &Results{results: make([]responses.RunResult, 0)}
}

// Append stores result, assigning a run id when it has none, and returns
// the stored copy.
func (r *Results) Append(result responses.RunResult) responses.RunResult {
	if result.RunId == "" {
		result.RunId = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
	return result
}

// All returns the results in insertion order.
func (r *Results) All() []responses.RunResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]responses.RunResult, len(r.results))
	copy(out, r.results)
	return out
}

func (r *Results) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}
