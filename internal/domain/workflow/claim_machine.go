package workflow

// newClaimBuilder configures the claim approval transition table:
//
//	Pending                -> Approved | Pending Manager Review | Rejected
//	Pending Manager Review -> Approved | Rejected
//	Approved, Rejected      terminal
//
// Reopening rejected or approved claims is out of scope.
func newClaimBuilder() StateMachineBuilder {
	b := NewBuilder()

	b.Configure(StatePending).
		Permit(TriggerApprove, StateApproved).
		Permit(TriggerEscalate, StateManagerReview).
		Permit(TriggerReject, StateRejected)

	b.Configure(StateManagerReview).
		Permit(TriggerApprove, StateApproved).
		Permit(TriggerReject, StateRejected)

	return b
}

// NewClaimMachine creates a state machine positioned at the claim's current
// status. Firing a trigger that the table does not permit returns
// ErrInvalidTransition.
func NewClaimMachine(current State) StateMachine {
	return newClaimBuilder().Build(current)
}
