package workflow

// Trigger represents an action that can cause a state transition.
type Trigger string

const (
	// TriggerApprove is a decision that fully approves the claim.
	TriggerApprove Trigger = "APPROVE"

	// TriggerEscalate pushes a claim above the coordinator's authority to
	// manager review. It is not an approval.
	TriggerEscalate Trigger = "ESCALATE"

	// TriggerReject refuses the claim from any non-terminal state.
	TriggerReject Trigger = "REJECT"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
