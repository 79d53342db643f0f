// Package workload reads simulator input files. Each non-blank line is
// "pid, size, arrival, burst, io_frequency, io_duration"; only the pid and
// arrival columns are needed to compute per-process timings.
package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	pidField     = 0
	arrivalField = 2
	minFields    = arrivalField + 1
)

var ErrMalformedField = errors.New("malformed workload field")

// Arrivals maps a process id to its declared arrival time.
type Arrivals map[int]int

// Lookup returns the arrival time of pid and whether it was declared.
func (a Arrivals) Lookup(pid int) (int, bool) {
	arrival, ok := a[pid]
	return arrival, ok
}

func ParseFile(path string) (Arrivals, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workload %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	arrivals, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("workload %s: %w", path, err)
	}
	return arrivals, nil
}

// Parse reads every well-formed row of r, whatever its length. Rows with
// fewer than three fields are skipped; a non-integer pid or arrival fails
// the whole parse.
func Parse(r io.Reader) (Arrivals, error) {
	arrivals := make(Arrivals)
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, readErr
		}
		if raw != "" {
			lineNo++
			if err := parseLine(arrivals, raw); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
		if readErr == io.EOF {
			return arrivals, nil
		}
	}
}

func parseLine(arrivals Arrivals, raw string) error {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil
	}
	parts := strings.Split(line, ",")
	if len(parts) < minFields {
		return nil
	}
	pid, err := atoi(parts[pidField])
	if err != nil {
		return fmt.Errorf("pid: %w", err)
	}
	arrival, err := atoi(parts[arrivalField])
	if err != nil {
		return fmt.Errorf("arrival: %w", err)
	}
	arrivals[pid] = arrival
	return nil
}

func atoi(field string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedField, field)
	}
	return v, nil
}
