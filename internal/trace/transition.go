package trace

import (
	"regexp"
	"strconv"
)

const (
	StateNew        = "NEW"
	StateReady      = "READY"
	StateRunning    = "RUNNING"
	StateTerminated = "TERMINATED"
)

// | time | pid | old state | new state |
var rowPattern = regexp.MustCompile(`\|\s*(\d+)\s*\|\s*(\d+)\s*\|\s*(\w+)\s*\|\s*(\w+)\s*\|`)

// Transition is one state change reported by the simulator.
type Transition struct {
	Time int
	Pid  int
	Old  string
	New  string
}

// ParseTransition extracts a transition from a table row. Borders, headers
// and anything else without the four-column shape report false.
func ParseTransition(line string) (Transition, bool) {
	m := rowPattern.FindStringSubmatch(line)
	if m == nil {
		return Transition{}, false
	}
	t, err := strconv.Atoi(m[1])
	if err != nil {
		return Transition{}, false
	}
	pid, err := strconv.Atoi(m[2])
	if err != nil {
		return Transition{}, false
	}
	return Transition{Time: t, Pid: pid, Old: m[3], New: m[4]}, true
}
