package responses

type ProcessResponse struct {
	ProcessId      int `json:"process_id"`
	ArrivalTime    int `json:"arrival_time"`
	FirstRunTime   int `json:"first_run_time"`
	FinishTime     int `json:"finish_time"`
	WaitingTime    int `json:"waiting_time"`
	ResponseTime   int `json:"response_time"`
	TurnAroundTime int `json:"turn_around_time"`
}

// RunMetrics is the aggregate of one trace: one scheduler on one test case.
// Unfinished counts declared processes that never terminated, keyed by the
// phase they were last seen in.
type RunMetrics struct {
	Throughput            float64           `json:"throughput"`
	AverageWaitingTime    float64           `json:"average_waiting_time"`
	AverageTurnAroundTime float64           `json:"average_turn_around_time"`
	AverageResponseTime   float64           `json:"average_response_time"`
	Completed             int               `json:"completed"`
	EndTime               int               `json:"end_time"`
	Details               []ProcessResponse `json:"details,omitempty"`
	Unfinished            map[string]int    `json:"unfinished,omitempty"`
}

type RunResult struct {
	RunId     string     `json:"run_id,omitempty"`
	Scheduler string     `json:"scheduler"`
	Test      string     `json:"test"`
	Metrics   RunMetrics `json:"metrics"`
}
