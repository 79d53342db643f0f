package trace

import (
	"errors"
	"fmt"
	"sort"

	"sched-metrics/internal/responses"
	"sched-metrics/internal/util"
	"sched-metrics/internal/workload"
)

// ErrMissingFirstRun rejects a run in which a process terminated without
// ever being recorded as RUNNING, leaving its response time undefined.
var ErrMissingFirstRun = errors.New("terminated process never ran")

func generateMetrics(stats map[int]*ProcessStats, arrivals workload.Arrivals, endTime int) (responses.RunMetrics, error) {
	pids := make([]int, 0, len(stats))
	for pid := range stats {
		pids = append(pids, pid)
	}
	sort.Ints(pids)

	details := make([]responses.ProcessResponse, 0, len(pids))
	var unfinished map[string]int
	for _, pid := range pids {
		s := stats[pid]
		arrival, known := arrivals.Lookup(pid)
		if !known {
			continue
		}
		if !s.Finish.Set {
			if unfinished == nil {
				unfinished = make(map[string]int)
			}
			unfinished[s.Phase.String()]++
			continue
		}
		if !s.FirstRun.Set {
			return responses.RunMetrics{}, fmt.Errorf("%w: pid %d finished at %d", ErrMissingFirstRun, pid, s.Finish.At)
		}
		details = append(details, generateProcessDetails(pid, arrival, s))
	}

	if len(details) == 0 {
		return responses.RunMetrics{EndTime: endTime, Unfinished: unfinished}, nil
	}

	averageWaitingTime, averageResponseTime, averageTurnAroundTime := util.CalculateAverage(details)
	return responses.RunMetrics{
		Throughput:            util.Throughput(len(details), endTime),
		AverageWaitingTime:    averageWaitingTime,
		AverageTurnAroundTime: averageTurnAroundTime,
		AverageResponseTime:   averageResponseTime,
		Completed:             len(details),
		EndTime:               endTime,
		Details:               details,
		Unfinished:            unfinished,
	}, nil
}

func generateProcessDetails(pid, arrival int, s *ProcessStats) responses.ProcessResponse {
	return responses.ProcessResponse{
		ProcessId:      pid,
		ArrivalTime:    arrival,
		FirstRunTime:   s.FirstRun.At,
		FinishTime:     s.Finish.At,
		WaitingTime:    s.TotalWait,
		ResponseTime:   s.FirstRun.At - arrival,
		TurnAroundTime: s.Finish.At - arrival,
	}
}
