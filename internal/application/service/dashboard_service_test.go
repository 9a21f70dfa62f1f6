package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

func newTestDashboard(claimRepo *mockClaimRepo) *dashboardService {
	svc := NewDashboardService(claimRepo, zap.NewNop()).(*dashboardService)
	svc.now = func() time.Time {
		return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestComputeStatistics_EmptySet(t *testing.T) {
	svc := newTestDashboard(&mockClaimRepo{})
	stats, err := svc.ComputeStatistics(context.Background(), 7, entity.RoleLecturer)
	if err != nil {
		t.Fatalf("ComputeStatistics() error = %v", err)
	}
	if stats.TotalClaims != 0 || stats.MonthlyTotal != 0 || stats.AverageProcessingTime != 0 {
		t.Errorf("empty set must yield zeros, got %+v", stats)
	}
	if stats.RecentClaims == nil || stats.HighPriorityClaims == nil {
		t.Error("lists must be empty, not nil")
	}
}

func TestComputeStatistics_Aggregates(t *testing.T) {
	createdAt := func(day int) time.Time {
		return time.Date(2025, 3, day, 8, 0, 0, 0, time.UTC)
	}
	approvedAt := time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC) // 48h after creation

	claims := []*entity.Claim{
		{
			ID: 1, Status: entity.StatusApproved,
			HoursWorked: 2, HourlyRate: 100, // 200, this month
			Date:        createdAt(2),
			CreatedDate: createdAt(2), ApprovalDate: &approvedAt,
		},
		{
			ID: 2, Status: entity.StatusPending, Priority: 4,
			HoursWorked: 1, HourlyRate: 100, // 100, this month
			Date:        createdAt(10),
			CreatedDate: createdAt(10),
		},
		{
			ID: 3, Status: entity.StatusManagerReview,
			HoursWorked: 30, HourlyRate: 50, // 1500, previous month
			Date:        time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
			CreatedDate: time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: 4, Status: entity.StatusRejected,
			HoursWorked: 5, HourlyRate: 60, // 300, previous month
			Date:        time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
			CreatedDate: time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	claimRepo := &mockClaimRepo{
		listAllFunc: func(ctx context.Context) ([]*entity.Claim, error) {
			return claims, nil
		},
	}
	svc := newTestDashboard(claimRepo)

	stats, err := svc.ComputeStatistics(context.Background(), 42, entity.RoleCoordinator)
	if err != nil {
		t.Fatalf("ComputeStatistics() error = %v", err)
	}

	if stats.TotalClaims != 4 {
		t.Errorf("total = %d, want 4", stats.TotalClaims)
	}
	// Escalated claims still count as pending.
	if stats.PendingCount != 2 {
		t.Errorf("pending = %d, want 2", stats.PendingCount)
	}
	if stats.ApprovedCount != 1 || stats.RejectedCount != 1 {
		t.Errorf("approved/rejected = %d/%d, want 1/1", stats.ApprovedCount, stats.RejectedCount)
	}
	if stats.MonthlyTotal != 300 {
		t.Errorf("monthly total = %.2f, want 300.00", stats.MonthlyTotal)
	}
	if stats.AllTimeTotal != 2100 {
		t.Errorf("all-time total = %.2f, want 2100.00", stats.AllTimeTotal)
	}
	if stats.AverageProcessingTime != 48 {
		t.Errorf("average processing hours = %.2f, want 48.00", stats.AverageProcessingTime)
	}

	if len(stats.HighPriorityClaims) != 1 || stats.HighPriorityClaims[0].ID != 2 {
		t.Errorf("high priority list = %+v, want claim 2 only", stats.HighPriorityClaims)
	}
	if len(stats.RecentClaims) != 4 || stats.RecentClaims[0].ID != 2 {
		t.Errorf("recent list should be newest first, got %+v", stats.RecentClaims)
	}
}

func TestComputeStatistics_LecturerScoping(t *testing.T) {
	var askedLecturer int64
	claimRepo := &mockClaimRepo{
		listByLecturerFunc: func(ctx context.Context, lecturerID int64) ([]*entity.Claim, error) {
			askedLecturer = lecturerID
			return []*entity.Claim{}, nil
		},
		listAllFunc: func(ctx context.Context) ([]*entity.Claim, error) {
			t.Fatal("lecturer dashboard must not list all claims")
			return nil, nil
		},
	}
	svc := newTestDashboard(claimRepo)

	if _, err := svc.ComputeStatistics(context.Background(), 7, entity.RoleLecturer); err != nil {
		t.Fatalf("ComputeStatistics() error = %v", err)
	}
	if askedLecturer != 7 {
		t.Errorf("scoped to lecturer %d, want 7", askedLecturer)
	}
}
