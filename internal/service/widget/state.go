package widget

// State is the observable phase of a widget.
type State int

const (
	StateIdle State = iota
	StateAwaiting
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaiting:
		return "awaiting"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Outcome describes how a submission cycle ended.
type Outcome int

const (
	// OutcomeSkipped: blank input, nothing happened.
	OutcomeSkipped Outcome = iota
	// OutcomeReplied: the backend reply was appended.
	OutcomeReplied
	// OutcomeFallback: the backend failed and the fallback text was appended.
	OutcomeFallback
	// OutcomeDiscarded: the widget was closed before the backend answered.
	OutcomeDiscarded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeReplied:
		return "replied"
	case OutcomeFallback:
		return "fallback"
	case OutcomeDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}
