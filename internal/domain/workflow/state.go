package workflow

// State represents a claim state in the approval lifecycle. The string
// values match the presentation-facing status vocabulary exactly.
type State string

const (
	StatePending       State = "Pending"
	StateApproved      State = "Approved"
	StateManagerReview State = "Pending Manager Review"
	StateRejected      State = "Rejected"
)

var validStates = map[State]bool{
	StatePending:       true,
	StateApproved:      true,
	StateManagerReview: true,
	StateRejected:      true,
}

var terminalStates = map[State]bool{
	StateApproved: true,
	StateRejected: true,
}

// IsTerminal returns true if the state is a terminal state (no further transitions allowed)
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// IsValid returns true if the state is a valid claim state
func (s State) IsValid() bool {
	return validStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}
