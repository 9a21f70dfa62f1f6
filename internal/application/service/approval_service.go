package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lwazim/claim-workflow/internal/application/port"
	"github.com/lwazim/claim-workflow/internal/domain/entity"
	"github.com/lwazim/claim-workflow/internal/domain/workflow"
)

// InvoiceGenerator creates an invoice for an approved claim. Generation is
// idempotent: a second call for the same claim returns the existing invoice.
type InvoiceGenerator interface {
	GenerateForClaim(ctx context.Context, claim *entity.Claim) (*entity.Invoice, error)
}

// ApprovalService is the approval router: it maps (approver role, claim
// amount) to the resulting status and stage, appends the audit trail, and
// triggers invoice generation on approval. The background sweep and the
// manual endpoints both go through this service, so the invariants hold
// regardless of trigger source.
type ApprovalService interface {
	// Approve routes an approval decision. Returns false when the claim does
	// not exist or is not in an approvable state; no mutation happens then.
	Approve(ctx context.Context, claimID, approverID int64, role entity.Role, notes string) (bool, error)

	// Reject moves a claim to Rejected from any non-terminal state.
	Reject(ctx context.Context, claimID, rejecterID int64, reason string) (bool, error)

	// BulkApprove routes every pending claim through the approver's policy.
	BulkApprove(ctx context.Context, approverID int64, role entity.Role) (processed, failed int, err error)

	// History returns the ordered workflow event trail for a claim.
	History(ctx context.Context, claimID int64) ([]*entity.WorkflowEvent, error)
}

type approvalService struct {
	claimRepo port.ClaimRepository
	eventRepo port.EventRepository
	invoices  InvoiceGenerator
	txManager port.TransactionManager
	locker    *claimLocker
	logger    *zap.Logger
	now       func() time.Time
}

// NewApprovalService creates the approval router.
func NewApprovalService(
	claimRepo port.ClaimRepository,
	eventRepo port.EventRepository,
	invoices InvoiceGenerator,
	txManager port.TransactionManager,
	logger *zap.Logger,
) ApprovalService {
	return &approvalService{
		claimRepo: claimRepo,
		eventRepo: eventRepo,
		invoices:  invoices,
		txManager: txManager,
		locker:    newClaimLocker(),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *approvalService) Approve(ctx context.Context, claimID, approverID int64, role entity.Role, notes string) (bool, error) {
	policy, err := PolicyForRole(role)
	if err != nil {
		return false, err
	}

	unlock := s.locker.lock(claimID)
	defer unlock()

	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return false, fmt.Errorf("load claim %d: %w", claimID, err)
	}
	if claim == nil {
		return false, nil
	}

	decision := policy.Decide(claim)

	machine := workflow.NewClaimMachine(workflow.State(claim.Status))
	if err := machine.Fire(ctx, decision.Trigger); err != nil {
		if errors.Is(err, workflow.ErrInvalidTransition) {
			s.logger.Warn("Approval not permitted in current state",
				zap.Int64("claim_id", claimID),
				zap.String("status", claim.Status),
				zap.String("trigger", decision.Trigger.String()))
			return false, nil
		}
		return false, err
	}

	now := s.now()
	previousStatus := claim.Status
	claim.Status = machine.State().String()
	claim.WorkflowStage = decision.Stage
	claim.LastUpdated = now

	if decision.RecordApprover && claim.Status == entity.StatusApproved {
		claim.ApprovedByID = &approverID
		claim.ApprovalDate = &now
	} else {
		// Escalation is not an approval: approver identity is cleared so a
		// manager review starts clean.
		claim.ApprovedByID = nil
		claim.ApprovalDate = nil
	}

	eventNotes := notes
	if eventNotes == "" {
		eventNotes = decision.DefaultNote
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.claimRepo.UpdateDecision(txCtx, claim); err != nil {
			return fmt.Errorf("update claim: %w", err)
		}

		event := &entity.WorkflowEvent{
			ClaimID:        claim.ID,
			Action:         entity.ActionApproval,
			PerformedByID:  approverID,
			PreviousStatus: previousStatus,
			NewStatus:      claim.Status,
			Stage:          claim.WorkflowStage,
			Notes:          eventNotes,
			Timestamp:      now,
		}
		if err := s.eventRepo.Create(txCtx, event); err != nil {
			return fmt.Errorf("append workflow event: %w", err)
		}

		if eventNotes != "" {
			if err := s.claimRepo.AppendNotes(txCtx, claim.ID, eventNotes); err != nil {
				return fmt.Errorf("append claim notes: %w", err)
			}
		}

		if claim.Status == entity.StatusApproved {
			if _, err := s.invoices.GenerateForClaim(txCtx, claim); err != nil {
				return fmt.Errorf("generate invoice: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Approval transition failed",
			zap.Int64("claim_id", claimID),
			zap.Int64("approver_id", approverID),
			zap.Error(err))
		return false, err
	}

	s.logger.Info("Claim routed",
		zap.Int64("claim_id", claimID),
		zap.String("role", role.String()),
		zap.String("from", previousStatus),
		zap.String("to", claim.Status),
		zap.String("stage", claim.WorkflowStage))
	return true, nil
}

func (s *approvalService) Reject(ctx context.Context, claimID, rejecterID int64, reason string) (bool, error) {
	unlock := s.locker.lock(claimID)
	defer unlock()

	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return false, fmt.Errorf("load claim %d: %w", claimID, err)
	}
	if claim == nil {
		return false, nil
	}

	machine := workflow.NewClaimMachine(workflow.State(claim.Status))
	if err := machine.Fire(ctx, workflow.TriggerReject); err != nil {
		if errors.Is(err, workflow.ErrInvalidTransition) {
			return false, nil
		}
		return false, err
	}

	now := s.now()
	previousStatus := claim.Status
	claim.Status = entity.StatusRejected
	claim.WorkflowStage = entity.StageRejected
	claim.ApprovedByID = nil
	claim.ApprovalDate = nil
	claim.LastUpdated = now

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.claimRepo.UpdateDecision(txCtx, claim); err != nil {
			return fmt.Errorf("update claim: %w", err)
		}

		event := &entity.WorkflowEvent{
			ClaimID:        claim.ID,
			Action:         entity.ActionRejection,
			PerformedByID:  rejecterID,
			PreviousStatus: previousStatus,
			NewStatus:      entity.StatusRejected,
			Stage:          entity.StageRejected,
			Notes:          reason,
			Timestamp:      now,
		}
		if err := s.eventRepo.Create(txCtx, event); err != nil {
			return fmt.Errorf("append workflow event: %w", err)
		}
		if reason != "" {
			if err := s.claimRepo.AppendNotes(txCtx, claim.ID, reason); err != nil {
				return fmt.Errorf("append claim notes: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Rejection failed", zap.Int64("claim_id", claimID), zap.Error(err))
		return false, err
	}

	s.logger.Info("Claim rejected",
		zap.Int64("claim_id", claimID),
		zap.Int64("rejecter_id", rejecterID),
		zap.String("from", previousStatus))
	return true, nil
}

func (s *approvalService) BulkApprove(ctx context.Context, approverID int64, role entity.Role) (int, int, error) {
	pending, err := s.claimRepo.ListByStatus(ctx, entity.StatusPending)
	if err != nil {
		return 0, 0, fmt.Errorf("list pending claims: %w", err)
	}

	processed, failed := 0, 0
	for _, claim := range pending {
		ok, err := s.Approve(ctx, claim.ID, approverID, role, "")
		if err != nil || !ok {
			failed++
			if err != nil {
				s.logger.Error("Bulk approval item failed",
					zap.Int64("claim_id", claim.ID),
					zap.Error(err))
			}
			continue
		}
		processed++
	}

	return processed, failed, nil
}

func (s *approvalService) History(ctx context.Context, claimID int64) ([]*entity.WorkflowEvent, error) {
	return s.eventRepo.GetByClaimID(ctx, claimID)
}
