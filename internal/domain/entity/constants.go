package entity

// Status constants for Claim. These exact strings are presentation-facing
// and are kept verbatim from the product's status vocabulary.
const (
	StatusPending       = "Pending"
	StatusApproved      = "Approved"
	StatusManagerReview = "Pending Manager Review"
	StatusRejected      = "Rejected"
)

// Workflow stage labels. The stage parallels the status and records how a
// transition happened (auto vs manual, coordinator vs manager).
const (
	StageSubmitted           = "Submitted"
	StageAutoCoordinator     = "Auto-Approved by Coordinator"
	StageCoordinatorApproved = "Coordinator Approved"
	StageManagerRequired     = "Requires Manager Approval"
	StageManagerApproved     = "Manager Approved"
	StageRejected            = "Rejected"
)

// Workflow event action types
const (
	ActionSubmission = "Submission"
	ActionApproval   = "Approval"
	ActionRejection  = "Rejection"
)

// Invoice status constants
const (
	InvoiceStatusGenerated = "Generated"
)
