package entity

import "time"

// WorkflowEvent is one immutable entry in a claim's audit trail. Exactly one
// event is written per state-changing action; events are never updated or
// deleted, and the ordered history for a claim reconstructs its transitions.
type WorkflowEvent struct {
	ID             int64     `json:"id"`
	ClaimID        int64     `json:"claim_id"`
	Action         string    `json:"action"`
	PerformedByID  int64     `json:"performed_by_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Stage          string    `json:"stage"`
	Notes          string    `json:"notes"`
	Timestamp      time.Time `json:"timestamp"`
}
