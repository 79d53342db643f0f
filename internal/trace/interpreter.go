// Package trace replays a simulator state-transition log and derives the
// scheduling metrics of the run. It is policy agnostic: RR, EP and EP_RR
// traces are read the same way.
package trace

import (
	"bufio"
	"io"
	"strings"

	"sched-metrics/internal/responses"
	"sched-metrics/internal/workload"
)

// Interpreter holds the state of a single run. It is not safe for concurrent
// use; create one per trace.
type Interpreter struct {
	arrivals    workload.Arrivals
	stats       map[int]*ProcessStats
	currentTime int
	matched     int
}

func NewInterpreter(arrivals workload.Arrivals) *Interpreter {
	return &Interpreter{
		arrivals: arrivals,
		stats:    make(map[int]*ProcessStats),
	}
}

// Feed applies line if it is a transition row and reports whether it was.
func (in *Interpreter) Feed(line string) bool {
	tr, ok := ParseTransition(line)
	if !ok {
		return false
	}
	in.Apply(tr)
	return true
}

func (in *Interpreter) Apply(tr Transition) {
	in.currentTime = tr.Time
	in.matched++

	s, ok := in.stats[tr.Pid]
	if !ok {
		s = &ProcessStats{}
		in.stats[tr.Pid] = s
	}
	s.apply(tr)
}

// Stats returns a copy of the accumulated timings for pid.
func (in *Interpreter) Stats(pid int) (ProcessStats, bool) {
	s, ok := in.stats[pid]
	if !ok {
		return ProcessStats{}, false
	}
	return *s, true
}

// CurrentTime is the time of the last matched row.
func (in *Interpreter) CurrentTime() int {
	return in.currentTime
}

func (in *Interpreter) Matched() int {
	return in.matched
}

func (in *Interpreter) Metrics() (responses.RunMetrics, error) {
	return generateMetrics(in.stats, in.arrivals, in.currentTime)
}

// Interpret replays a whole trace held in memory.
func Interpret(text string, arrivals workload.Arrivals) (responses.RunMetrics, error) {
	return InterpretReader(strings.NewReader(text), arrivals)
}

// InterpretReader replays the trace read from r. Lines of any length are
// accepted; long decoration lines are simply not rows.
func InterpretReader(r io.Reader, arrivals workload.Arrivals) (responses.RunMetrics, error) {
	in := NewInterpreter(arrivals)
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			in.Feed(line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return responses.RunMetrics{}, err
		}
	}
	return in.Metrics()
}
