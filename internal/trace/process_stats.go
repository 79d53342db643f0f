package trace

// Instant is a point in simulated time that may not have happened yet.
type Instant struct {
	At  int
	Set bool
}

func at(t int) Instant {
	return Instant{At: t, Set: true}
}

type Phase int

const (
	PhaseNew Phase = iota
	PhaseReady
	PhaseRunning
	PhaseTerminated
	PhaseOther
)

func (p Phase) String() string {
	switch p {
	case PhaseNew:
		return "new"
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhaseTerminated:
		return "terminated"
	default:
		return "other"
	}
}

func phaseOf(state string) Phase {
	switch state {
	case StateNew:
		return PhaseNew
	case StateReady:
		return PhaseReady
	case StateRunning:
		return PhaseRunning
	case StateTerminated:
		return PhaseTerminated
	default:
		return PhaseOther
	}
}

// ProcessStats accumulates the timings of one pid across a trace.
// FirstRun and Finish are set once; PendingReady holds the latest READY
// entry that has not yet been matched by a READY -> RUNNING transition.
type ProcessStats struct {
	Phase        Phase
	FirstRun     Instant
	Finish       Instant
	PendingReady Instant
	TotalWait    int
}

func (s *ProcessStats) apply(tr Transition) {
	if tr.New == StateRunning && !s.FirstRun.Set {
		s.FirstRun = at(tr.Time)
	}
	if tr.New == StateTerminated && !s.Finish.Set {
		s.Finish = at(tr.Time)
	}
	if tr.New == StateReady {
		s.PendingReady = at(tr.Time)
	}
	if tr.Old == StateReady && tr.New == StateRunning && s.PendingReady.Set {
		if waited := tr.Time - s.PendingReady.At; waited > 0 {
			s.TotalWait += waited
		}
		s.PendingReady = Instant{}
	}
	s.Phase = phaseOf(tr.New)
}
