package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

func newTestApprovalService(
	claimRepo *mockClaimRepo,
	eventRepo *mockEventRepo,
	invoices *mockInvoiceGenerator,
) *approvalService {
	svc := NewApprovalService(claimRepo, eventRepo, invoices, &mockTxManager{}, zap.NewNop()).(*approvalService)
	svc.now = func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func pendingClaim(id int64, hours, rate float64) *entity.Claim {
	return &entity.Claim{
		ID:            id,
		Title:         "Tutoring hours",
		HoursWorked:   hours,
		HourlyRate:    rate,
		Date:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:        entity.StatusPending,
		WorkflowStage: entity.StageSubmitted,
		LecturerID:    7,
		CreatedDate:   time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestApprove_CoordinatorAmountBrackets(t *testing.T) {
	tests := []struct {
		name          string
		hours         float64
		rate          float64
		wantStatus    string
		wantStage     string
		wantApprover  bool
		wantInvoice   bool
	}{
		{
			name:         "at auto-approval boundary",
			hours:        10, rate: 50, // 500.00
			wantStatus:   entity.StatusApproved,
			wantStage:    entity.StageAutoCoordinator,
			wantApprover: true,
			wantInvoice:  true,
		},
		{
			name:         "just above auto-approval boundary",
			hours:        10, rate: 50.1, // 501.00
			wantStatus:   entity.StatusApproved,
			wantStage:    entity.StageCoordinatorApproved,
			wantApprover: true,
			wantInvoice:  true,
		},
		{
			name:         "at coordinator limit",
			hours:        20, rate: 50, // 1000.00
			wantStatus:   entity.StatusApproved,
			wantStage:    entity.StageCoordinatorApproved,
			wantApprover: true,
			wantInvoice:  true,
		},
		{
			name:         "above coordinator limit escalates",
			hours:        20, rate: 50.5, // 1010.00
			wantStatus:   entity.StatusManagerReview,
			wantStage:    entity.StageManagerRequired,
			wantApprover: false,
			wantInvoice:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var updated *entity.Claim
			var events []*entity.WorkflowEvent

			claimRepo := &mockClaimRepo{
				getByIDFunc: func(ctx context.Context, id int64) (*entity.Claim, error) {
					return pendingClaim(id, tt.hours, tt.rate), nil
				},
				updateDecisionFunc: func(ctx context.Context, claim *entity.Claim) error {
					updated = claim
					return nil
				},
			}
			eventRepo := &mockEventRepo{
				createFunc: func(ctx context.Context, event *entity.WorkflowEvent) error {
					events = append(events, event)
					return nil
				},
			}
			invoices := &mockInvoiceGenerator{}

			svc := newTestApprovalService(claimRepo, eventRepo, invoices)
			ok, err := svc.Approve(context.Background(), 1, 42, entity.RoleCoordinator, "")
			if err != nil {
				t.Fatalf("Approve() error = %v", err)
			}
			if !ok {
				t.Fatal("Approve() = false, want true")
			}

			if updated.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", updated.Status, tt.wantStatus)
			}
			if updated.WorkflowStage != tt.wantStage {
				t.Errorf("stage = %q, want %q", updated.WorkflowStage, tt.wantStage)
			}
			if tt.wantApprover {
				if updated.ApprovedByID == nil || *updated.ApprovedByID != 42 {
					t.Error("expected approver id 42 to be recorded")
				}
				if updated.ApprovalDate == nil {
					t.Error("expected approval date to be set")
				}
			} else {
				if updated.ApprovedByID != nil || updated.ApprovalDate != nil {
					t.Error("escalation must not record approver identity")
				}
			}

			if len(events) != 1 {
				t.Fatalf("got %d workflow events, want exactly 1", len(events))
			}
			if events[0].Action != entity.ActionApproval {
				t.Errorf("event action = %q, want %q", events[0].Action, entity.ActionApproval)
			}
			if events[0].PreviousStatus != entity.StatusPending {
				t.Errorf("event previous status = %q, want %q", events[0].PreviousStatus, entity.StatusPending)
			}
			if events[0].NewStatus != tt.wantStatus {
				t.Errorf("event new status = %q, want %q", events[0].NewStatus, tt.wantStatus)
			}

			wantCalls := 0
			if tt.wantInvoice {
				wantCalls = 1
			}
			if invoices.calls != wantCalls {
				t.Errorf("invoice generator called %d times, want %d", invoices.calls, wantCalls)
			}
		})
	}
}

func TestApprove_ManagerApprovesAnyAmount(t *testing.T) {
	for _, status := range []string{entity.StatusPending, entity.StatusManagerReview} {
		t.Run(status, func(t *testing.T) {
			var updated *entity.Claim
			claimRepo := &mockClaimRepo{
				getByIDFunc: func(ctx context.Context, id int64) (*entity.Claim, error) {
					c := pendingClaim(id, 100, 50) // 5000.00
					c.Status = status
					return c, nil
				},
				updateDecisionFunc: func(ctx context.Context, claim *entity.Claim) error {
					updated = claim
					return nil
				},
			}
			invoices := &mockInvoiceGenerator{}

			svc := newTestApprovalService(claimRepo, &mockEventRepo{}, invoices)
			ok, err := svc.Approve(context.Background(), 1, 9, entity.RoleManager, "looks fine")
			if err != nil {
				t.Fatalf("Approve() error = %v", err)
			}
			if !ok {
				t.Fatal("Approve() = false, want true")
			}
			if updated.Status != entity.StatusApproved {
				t.Errorf("status = %q, want %q", updated.Status, entity.StatusApproved)
			}
			if updated.WorkflowStage != entity.StageManagerApproved {
				t.Errorf("stage = %q, want %q", updated.WorkflowStage, entity.StageManagerApproved)
			}
			if invoices.calls != 1 {
				t.Errorf("invoice generator called %d times, want 1", invoices.calls)
			}
		})
	}
}

func TestApprove_LecturerCannotApprove(t *testing.T) {
	svc := newTestApprovalService(&mockClaimRepo{}, &mockEventRepo{}, &mockInvoiceGenerator{})
	_, err := svc.Approve(context.Background(), 1, 7, entity.RoleLecturer, "")
	if err == nil {
		t.Fatal("expected error for lecturer role")
	}
}

func TestApprove_MissingClaim(t *testing.T) {
	claimRepo := &mockClaimRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.Claim, error) {
			return nil, nil
		},
	}
	svc := newTestApprovalService(claimRepo, &mockEventRepo{}, &mockInvoiceGenerator{})
	ok, err := svc.Approve(context.Background(), 99, 42, entity.RoleCoordinator, "")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if ok {
		t.Error("Approve() = true for missing claim, want false")
	}
}

func TestApprove_TerminalStateIsNoOp(t *testing.T) {
	for _, status := range []string{entity.StatusApproved, entity.StatusRejected} {
		t.Run(status, func(t *testing.T) {
			updates := 0
			claimRepo := &mockClaimRepo{
				getByIDFunc: func(ctx context.Context, id int64) (*entity.Claim, error) {
					c := pendingClaim(id, 2, 50)
					c.Status = status
					return c, nil
				},
				updateDecisionFunc: func(ctx context.Context, claim *entity.Claim) error {
					updates++
					return nil
				},
			}
			invoices := &mockInvoiceGenerator{}
			svc := newTestApprovalService(claimRepo, &mockEventRepo{}, invoices)

			ok, err := svc.Approve(context.Background(), 1, 42, entity.RoleCoordinator, "")
			if err != nil {
				t.Fatalf("Approve() error = %v", err)
			}
			if ok {
				t.Error("Approve() = true for terminal claim, want false")
			}
			if updates != 0 || invoices.calls != 0 {
				t.Error("terminal claim must not be mutated")
			}
		})
	}
}

func TestApprove_TransactionFailureSurfaces(t *testing.T) {
	claimRepo := &mockClaimRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*entity.Claim, error) {
			return pendingClaim(id, 2, 50), nil
		},
		updateDecisionFunc: func(ctx context.Context, claim *entity.Claim) error {
			return errors.New("disk full")
		},
	}
	svc := newTestApprovalService(claimRepo, &mockEventRepo{}, &mockInvoiceGenerator{})

	ok, err := svc.Approve(context.Background(), 1, 42, entity.RoleCoordinator, "")
	if err == nil {
		t.Fatal("expected transaction error to surface")
	}
	if ok {
		t.Error("Approve() = true despite failed transaction")
	}
}

func TestReject(t *testing.T) {
	tests := []struct {
		name       string
		fromStatus string
		wantOK     bool
	}{
		{"from pending", entity.StatusPending, true},
		{"from manager review", entity.StatusManagerReview, true},
		{"from approved", entity.StatusApproved, false},
		{"from rejected", entity.StatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var updated *entity.Claim
			var events []*entity.WorkflowEvent
			claimRepo := &mockClaimRepo{
				getByIDFunc: func(ctx context.Context, id int64) (*entity.Claim, error) {
					c := pendingClaim(id, 4, 100)
					c.Status = tt.fromStatus
					approver := int64(3)
					c.ApprovedByID = &approver
					return c, nil
				},
				updateDecisionFunc: func(ctx context.Context, claim *entity.Claim) error {
					updated = claim
					return nil
				},
			}
			eventRepo := &mockEventRepo{
				createFunc: func(ctx context.Context, event *entity.WorkflowEvent) error {
					events = append(events, event)
					return nil
				},
			}
			svc := newTestApprovalService(claimRepo, eventRepo, &mockInvoiceGenerator{})

			ok, err := svc.Reject(context.Background(), 1, 9, "insufficient evidence")
			if err != nil {
				t.Fatalf("Reject() error = %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("Reject() = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				if updated != nil {
					t.Error("claim mutated on refused rejection")
				}
				return
			}

			if updated.Status != entity.StatusRejected {
				t.Errorf("status = %q, want %q", updated.Status, entity.StatusRejected)
			}
			if updated.WorkflowStage != entity.StageRejected {
				t.Errorf("stage = %q, want %q", updated.WorkflowStage, entity.StageRejected)
			}
			if updated.ApprovedByID != nil || updated.ApprovalDate != nil {
				t.Error("rejection must clear approver identity")
			}
			if len(events) != 1 {
				t.Fatalf("got %d workflow events, want exactly 1", len(events))
			}
			if events[0].Action != entity.ActionRejection {
				t.Errorf("event action = %q, want %q", events[0].Action, entity.ActionRejection)
			}
			if events[0].Notes != "insufficient evidence" {
				t.Errorf("event notes = %q", events[0].Notes)
			}
		})
	}
}

func TestBulkApprove(t *testing.T) {
	claims := map[int64]*entity.Claim{
		1: pendingClaim(1, 5, 50),   // 250: auto
		2: pendingClaim(2, 30, 50),  // 1500: escalates, still processed
		3: pendingClaim(3, 10, 80),  // 800: coordinator approved
	}
	claimRepo := &mockClaimRepo{
		listByStatusFunc: func(ctx context.Context, status string) ([]*entity.Claim, error) {
			return []*entity.Claim{claims[1], claims[2], claims[3]}, nil
		},
		getByIDFunc: func(ctx context.Context, id int64) (*entity.Claim, error) {
			if id == 3 {
				return nil, errors.New("row gone")
			}
			return claims[id], nil
		},
	}
	svc := newTestApprovalService(claimRepo, &mockEventRepo{}, &mockInvoiceGenerator{})

	processed, failed, err := svc.BulkApprove(context.Background(), 42, entity.RoleCoordinator)
	if err != nil {
		t.Fatalf("BulkApprove() error = %v", err)
	}
	if processed != 2 {
		t.Errorf("processed = %d, want 2", processed)
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
}
