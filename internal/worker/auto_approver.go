package worker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lwazim/claim-workflow/internal/application/port"
	"github.com/lwazim/claim-workflow/internal/application/service"
	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

// Auto-approval eligibility thresholds.
const (
	AutoApproveMaxAmount = 300.0
	AutoApproveMaxHours  = 40.0
	AutoApproveMinAge    = 24 * time.Hour

	autoApproveNote = "Auto-approved by the scheduled review sweep"
	urgentMarker    = "urgent"
)

// AutoApprover periodically scans pending claims and routes the eligible
// ones through the approval router as a manager-role approval by the system
// user. Reusing the router keeps invoice generation and the audit trail
// identical to manual approvals.
type AutoApprover struct {
	claimRepo    port.ClaimRepository
	approvals    service.ApprovalService
	logger       *zap.Logger
	systemUserID int64
	interval     time.Duration
	now          func() time.Time

	mu        sync.RWMutex
	isRunning bool
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewAutoApprover creates the auto-approval sweep worker.
func NewAutoApprover(
	claimRepo port.ClaimRepository,
	approvals service.ApprovalService,
	systemUserID int64,
	interval time.Duration,
	logger *zap.Logger,
) *AutoApprover {
	return &AutoApprover{
		claimRepo:    claimRepo,
		approvals:    approvals,
		logger:       logger,
		systemUserID: systemUserID,
		interval:     interval,
		now:          time.Now,
	}
}

// Start starts the sweep loop.
func (a *AutoApprover) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isRunning {
		return fmt.Errorf("auto approver is already running")
	}

	a.ctx, a.cancel = context.WithCancel(ctx)
	a.isRunning = true

	a.logger.Info("AutoApprover started",
		zap.Duration("interval", a.interval),
		zap.Int64("system_user_id", a.systemUserID))

	go a.sweepLoop()

	return nil
}

// Stop stops the sweep loop.
func (a *AutoApprover) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.isRunning {
		return
	}

	a.isRunning = false
	if a.cancel != nil {
		a.cancel()
	}

	a.logger.Info("AutoApprover stopped")
}

// Name returns the worker name for identification
func (a *AutoApprover) Name() string {
	return "AutoApprover"
}

func (a *AutoApprover) sweepLoop() {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			a.logger.Debug("Sweep loop context cancelled")
			return

		case <-ticker.C:
			// Failures in one iteration must not kill the loop; the next
			// tick effectively retries anything missed.
			a.Sweep(a.ctx)
		}
	}
}

// Sweep runs one auto-approval pass. Exported so a single pass can be
// triggered directly in tests.
func (a *AutoApprover) Sweep(ctx context.Context) {
	pending, err := a.claimRepo.ListByStatus(ctx, entity.StatusPending)
	if err != nil {
		a.logger.Error("Sweep failed to list pending claims", zap.Error(err))
		return
	}

	approved := 0
	for _, claim := range pending {
		if !a.Eligible(claim) {
			continue
		}

		ok, err := a.approvals.Approve(ctx, claim.ID, a.systemUserID, entity.RoleManager, autoApproveNote)
		if err != nil {
			a.logger.Error("Sweep failed to approve claim",
				zap.Int64("claim_id", claim.ID),
				zap.Error(err))
			continue
		}
		if ok {
			approved++
			a.logger.Info("Claim auto-approved",
				zap.Int64("claim_id", claim.ID),
				zap.Float64("amount", claim.TotalAmount()))
		}
	}

	if approved > 0 {
		a.logger.Info("Auto-approval sweep completed",
			zap.Int("scanned", len(pending)),
			zap.Int("approved", approved))
	}
}

// Eligible reports whether a pending claim qualifies for auto-approval:
// low value, at least a day old, modest hours, and not flagged urgent.
func (a *AutoApprover) Eligible(claim *entity.Claim) bool {
	if claim.Status != entity.StatusPending {
		return false
	}
	if claim.TotalAmount() > AutoApproveMaxAmount {
		return false
	}
	if claim.HoursWorked > AutoApproveMaxHours {
		return false
	}
	if claim.Age(a.now()) < AutoApproveMinAge {
		return false
	}
	if strings.Contains(strings.ToLower(claim.Title), urgentMarker) {
		return false
	}
	return true
}
