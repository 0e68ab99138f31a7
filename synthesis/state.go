package synthesis

// CallState tracks one synthesis call through its backend attempts.
type CallState int

const (
	StatePending CallState = iota
	StateCallingPrimary
	StateCallingFallback
	StateSucceeded
	StateFailed
)

func (s CallState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCallingPrimary:
		return "calling_primary"
	case StateCallingFallback:
		return "calling_fallback"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Trace records the state transitions of a single synthesis call together
// with the reason for a terminal failure. It exists for diagnostics; the
// pipeline surfaces FailureReason on unsynthesized clusters.
type Trace struct {
	States        []CallState
	FailureReason string
}

func (t *Trace) transition(s CallState) {
	t.States = append(t.States, s)
}

// Final returns the last recorded state.
func (t *Trace) Final() CallState {
	if len(t.States) == 0 {
		return StatePending
	}
	return t.States[len(t.States)-1]
}
