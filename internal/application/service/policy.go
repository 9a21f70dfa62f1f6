package service

import (
	"fmt"

	"github.com/lwazim/claim-workflow/internal/domain/entity"
	"github.com/lwazim/claim-workflow/internal/domain/workflow"
)

// Approval amount brackets for the coordinator role.
const (
	CoordinatorAutoLimit = 500.0
	CoordinatorLimit     = 1000.0
)

// Decision is the outcome of a role policy for a given claim: which trigger
// to fire on the state machine, the stage label to record, and whether the
// approver's identity sticks to the claim (escalation clears it).
type Decision struct {
	Trigger        workflow.Trigger
	Stage          string
	DefaultNote    string
	RecordApprover bool
}

// ApprovalPolicy decides what an approver of a particular role does with a
// claim. Keeping the amount-bracket rules behind this interface isolates
// them from the transition mechanics.
type ApprovalPolicy interface {
	Decide(claim *entity.Claim) Decision
}

type coordinatorPolicy struct{}

func (coordinatorPolicy) Decide(claim *entity.Claim) Decision {
	amount := claim.TotalAmount()
	switch {
	case amount <= CoordinatorAutoLimit:
		// Low-value claims carry the auto-approval label even when a human
		// clicked approve; the amount alone decides, no further review.
		return Decision{
			Trigger:        workflow.TriggerApprove,
			Stage:          entity.StageAutoCoordinator,
			DefaultNote:    "Auto-approved: amount within coordinator threshold",
			RecordApprover: true,
		}
	case amount <= CoordinatorLimit:
		return Decision{
			Trigger:        workflow.TriggerApprove,
			Stage:          entity.StageCoordinatorApproved,
			RecordApprover: true,
		}
	default:
		// Above the coordinator's authority: this call only escalates.
		return Decision{
			Trigger:        workflow.TriggerEscalate,
			Stage:          entity.StageManagerRequired,
			RecordApprover: false,
		}
	}
}

type managerPolicy struct{}

func (managerPolicy) Decide(claim *entity.Claim) Decision {
	return Decision{
		Trigger:        workflow.TriggerApprove,
		Stage:          entity.StageManagerApproved,
		RecordApprover: true,
	}
}

// PolicyForRole returns the approval policy for the given role. Lecturers
// cannot approve claims.
func PolicyForRole(role entity.Role) (ApprovalPolicy, error) {
	switch role {
	case entity.RoleCoordinator:
		return coordinatorPolicy{}, nil
	case entity.RoleManager:
		return managerPolicy{}, nil
	default:
		return nil, fmt.Errorf("role %q cannot approve claims", role)
	}
}
