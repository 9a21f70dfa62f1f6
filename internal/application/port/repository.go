package port

import (
	"context"
	"time"

	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

// ClaimRepository defines persistence operations for Claim. Not-found is
// signalled as (nil, nil) so callers can branch without error inspection.
type ClaimRepository interface {
	Create(ctx context.Context, claim *entity.Claim) error
	GetByID(ctx context.Context, id int64) (*entity.Claim, error)
	ListAll(ctx context.Context) ([]*entity.Claim, error)
	ListByLecturer(ctx context.Context, lecturerID int64) ([]*entity.Claim, error)
	ListByStatus(ctx context.Context, status string) ([]*entity.Claim, error)

	// UpdateDecision persists the outcome of an approval-router transition:
	// status, stage, approver identity and approval time in one write.
	UpdateDecision(ctx context.Context, claim *entity.Claim) error

	UpdatePriority(ctx context.Context, id int64, priority int) error
	RecordView(ctx context.Context, id int64, viewedAt time.Time) error
	AppendNotes(ctx context.Context, id int64, notes string) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository defines persistence operations for User
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

// EventRepository defines persistence operations for the append-only
// workflow audit trail. Events are never updated or deleted.
type EventRepository interface {
	Create(ctx context.Context, event *entity.WorkflowEvent) error
	GetByClaimID(ctx context.Context, claimID int64) ([]*entity.WorkflowEvent, error)
}

// DocumentRepository defines persistence operations for Document metadata
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByClaimID(ctx context.Context, claimID int64) (*entity.Document, error)
	DeleteByClaimID(ctx context.Context, claimID int64) error
	CountByClaimIDs(ctx context.Context, claimIDs []int64) (map[int64]bool, error)
}

// InvoiceRepository defines persistence operations for Invoice
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	GetByClaimID(ctx context.Context, claimID int64) (*entity.Invoice, error)
	ListAll(ctx context.Context) ([]*entity.Invoice, error)
}

// TransactionManager executes a function within a database transaction.
// Repository calls made with the callback's context join the transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
