package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/lwazim/claim-workflow/internal/application/port"
	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

// Statistics is the read-only dashboard aggregate over the claim set the
// requesting user is allowed to see.
type Statistics struct {
	TotalClaims           int             `json:"total_claims"`
	PendingCount          int             `json:"pending_count"`
	ApprovedCount         int             `json:"approved_count"`
	RejectedCount         int             `json:"rejected_count"`
	MonthlyTotal          float64         `json:"monthly_total"`
	AllTimeTotal          float64         `json:"all_time_total"`
	RecentClaims          []*entity.Claim `json:"recent_claims"`
	HighPriorityClaims    []*entity.Claim `json:"high_priority_claims"`
	AverageProcessingTime float64         `json:"average_processing_hours"`
}

// DashboardService computes claim statistics. Pure read-only aggregation;
// an empty claim set yields zeros and empty lists, never an error.
type DashboardService interface {
	ComputeStatistics(ctx context.Context, userID int64, role entity.Role) (*Statistics, error)
}

type dashboardService struct {
	claimRepo port.ClaimRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewDashboardService creates the dashboard aggregator.
func NewDashboardService(claimRepo port.ClaimRepository, logger *zap.Logger) DashboardService {
	return &dashboardService{claimRepo: claimRepo, logger: logger, now: time.Now}
}

func (s *dashboardService) ComputeStatistics(ctx context.Context, userID int64, role entity.Role) (*Statistics, error) {
	// Lecturers see only their own claims; coordinators and managers see all.
	var claims []*entity.Claim
	var err error
	if role == entity.RoleLecturer {
		claims, err = s.claimRepo.ListByLecturer(ctx, userID)
	} else {
		claims, err = s.claimRepo.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("load claims: %w", err)
	}

	now := s.now()
	stats := &Statistics{
		TotalClaims:        len(claims),
		RecentClaims:       []*entity.Claim{},
		HighPriorityClaims: []*entity.Claim{},
	}

	var processingHours float64
	var processedCount int

	for _, c := range claims {
		switch c.Status {
		case entity.StatusPending, entity.StatusManagerReview:
			stats.PendingCount++
		case entity.StatusApproved:
			stats.ApprovedCount++
		case entity.StatusRejected:
			stats.RejectedCount++
		}

		amount := c.TotalAmount()
		stats.AllTimeTotal += amount

		// Live current-month window, evaluated at call time.
		if c.Date.Year() == now.Year() && c.Date.Month() == now.Month() {
			stats.MonthlyTotal += amount
		}

		if c.Status == entity.StatusApproved && c.ApprovalDate != nil {
			processingHours += c.ApprovalDate.Sub(c.CreatedDate).Hours()
			processedCount++
		}
	}

	if processedCount > 0 {
		stats.AverageProcessingTime = processingHours / float64(processedCount)
	}

	stats.RecentClaims = topRecent(claims, 5)
	stats.HighPriorityClaims = topHighPriority(claims, 5)

	return stats, nil
}

// topRecent returns up to n claims ordered by creation date, newest first.
func topRecent(claims []*entity.Claim, n int) []*entity.Claim {
	sorted := make([]*entity.Claim, len(claims))
	copy(sorted, claims)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedDate.After(sorted[j].CreatedDate)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// topHighPriority returns up to n pending claims at or above the high
// priority threshold, highest first.
func topHighPriority(claims []*entity.Claim, n int) []*entity.Claim {
	high := make([]*entity.Claim, 0)
	for _, c := range claims {
		if c.IsPending() && c.Priority >= HighPriorityThreshold {
			high = append(high, c)
		}
	}
	sort.SliceStable(high, func(i, j int) bool {
		return high[i].Priority > high[j].Priority
	})
	if len(high) > n {
		high = high[:n]
	}
	return high
}
