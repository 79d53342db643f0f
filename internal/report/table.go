package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"sched-metrics/internal/responses"
)

// WriteTable renders one row per run in the console summary layout.
func WriteTable(w io.Writer, results []responses.RunResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Scheduler", "Test Case", "Thrpt", "Avg Wait", "Avg TAT", "Avg Resp"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range results {
		table.Append([]string{
			r.Scheduler,
			r.Test,
			fmt.Sprintf("%.5f", r.Metrics.Throughput),
			fmt.Sprintf("%.2f", r.Metrics.AverageWaitingTime),
			fmt.Sprintf("%.2f", r.Metrics.AverageTurnAroundTime),
			fmt.Sprintf("%.2f", r.Metrics.AverageResponseTime),
		})
	}
	table.Render()
}

// WriteDetails renders the per-process breakdown of a single run.
func WriteDetails(w io.Writer, metrics responses.RunMetrics) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Arrival", "First Run", "Finish", "Wait", "Response", "Turnaround"})
	table.SetAutoFormatHeaders(false)
	for _, d := range metrics.Details {
		table.Append([]string{
			fmt.Sprint(d.ProcessId),
			fmt.Sprint(d.ArrivalTime),
			fmt.Sprint(d.FirstRunTime),
			fmt.Sprint(d.FinishTime),
			fmt.Sprint(d.WaitingTime),
			fmt.Sprint(d.ResponseTime),
			fmt.Sprint(d.TurnAroundTime),
		})
	}
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", metrics.AverageWaitingTime),
		fmt.Sprintf("Average\n%.2f", metrics.AverageResponseTime),
		fmt.Sprintf("Average\n%.2f", metrics.AverageTurnAroundTime)})
	table.Render()
	_, _ = fmt.Fprintf(w, "Throughput: %.5f (%d completed by t=%d)\n", metrics.Throughput, metrics.Completed, metrics.EndTime)

	phases := make([]string, 0, len(metrics.Unfinished))
	for phase := range metrics.Unfinished {
		phases = append(phases, phase)
	}
	sort.Strings(phases)
	for _, phase := range phases {
		_, _ = fmt.Fprintf(w, "Unfinished (%s): %d\n", phase, metrics.Unfinished[phase])
	}
}
