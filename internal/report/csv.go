package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"sched-metrics/internal/responses"
)

var csvHeader = []string{"Scheduler", "Test", "Throughput", "Avg Wait", "Avg TAT", "Avg Response"}

func WriteCSV(w io.Writer, results []responses.RunResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			r.Scheduler,
			r.Test,
			formatFloat(r.Metrics.Throughput),
			formatFloat(r.Metrics.AverageWaitingTime),
			formatFloat(r.Metrics.AverageTurnAroundTime),
			formatFloat(r.Metrics.AverageResponseTime),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteCSVFile(path string, results []responses.RunResult) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteCSV(f, results)
}

// formatFloat writes the shortest exact decimal, keeping a ".0" on whole
// numbers so every metric column reads as a float.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
