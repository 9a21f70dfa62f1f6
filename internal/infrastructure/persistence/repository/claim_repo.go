package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lwazim/claim-workflow/internal/application/port"
	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

// ClaimRepository implements port.ClaimRepository over sqlite.
type ClaimRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewClaimRepository creates a new claim repository
func NewClaimRepository(db *sql.DB, logger *zap.Logger) port.ClaimRepository {
	return &ClaimRepository{db: db, logger: logger}
}

const claimColumns = `id, title, description, hours_worked, hourly_rate, claim_date,
	status, workflow_stage, priority, lecturer_id, approved_by_id, approval_date,
	notes, view_count, last_viewed, created_date, last_updated`

// Create inserts a new claim and sets its generated ID.
func (r *ClaimRepository) Create(ctx context.Context, claim *entity.Claim) error {
	query := `
		INSERT INTO claims (
			title, description, hours_worked, hourly_rate, claim_date,
			status, workflow_stage, priority, lecturer_id, notes,
			view_count, created_date, last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
	`

	result, err := executorFor(ctx, r.db).ExecContext(ctx, query,
		claim.Title,
		claim.Description,
		claim.HoursWorked,
		claim.HourlyRate,
		claim.Date,
		claim.Status,
		claim.WorkflowStage,
		claim.Priority,
		claim.LecturerID,
		claim.Notes,
		claim.CreatedDate,
		claim.LastUpdated,
	)
	if err != nil {
		r.logger.Error("Failed to create claim", zap.Error(err))
		return fmt.Errorf("failed to create claim: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	claim.ID = id
	return nil
}

// GetByID retrieves a claim by ID. Returns (nil, nil) when not found.
func (r *ClaimRepository) GetByID(ctx context.Context, id int64) (*entity.Claim, error) {
	query := fmt.Sprintf(`SELECT %s FROM claims WHERE id = ?`, claimColumns)

	claim, err := scanClaim(executorFor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get claim", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	return claim, nil
}

// ListAll retrieves every claim, newest first.
func (r *ClaimRepository) ListAll(ctx context.Context) ([]*entity.Claim, error) {
	query := fmt.Sprintf(`SELECT %s FROM claims ORDER BY created_date DESC`, claimColumns)
	return r.queryClaims(ctx, query)
}

// ListByLecturer retrieves a lecturer's claims, newest first.
func (r *ClaimRepository) ListByLecturer(ctx context.Context, lecturerID int64) ([]*entity.Claim, error) {
	query := fmt.Sprintf(`SELECT %s FROM claims WHERE lecturer_id = ? ORDER BY created_date DESC`, claimColumns)
	return r.queryClaims(ctx, query, lecturerID)
}

// ListByStatus retrieves claims with the given status, oldest first so
// long-waiting claims come up first in approval queues.
func (r *ClaimRepository) ListByStatus(ctx context.Context, status string) ([]*entity.Claim, error) {
	query := fmt.Sprintf(`SELECT %s FROM claims WHERE status = ? ORDER BY created_date ASC`, claimColumns)
	return r.queryClaims(ctx, query, status)
}

// UpdateDecision persists the outcome of an approval-router transition.
func (r *ClaimRepository) UpdateDecision(ctx context.Context, claim *entity.Claim) error {
	query := `
		UPDATE claims
		SET status = ?, workflow_stage = ?, approved_by_id = ?, approval_date = ?, last_updated = ?
		WHERE id = ?
	`

	var approvedBy sql.NullInt64
	if claim.ApprovedByID != nil {
		approvedBy = sql.NullInt64{Int64: *claim.ApprovedByID, Valid: true}
	}
	var approvalDate sql.NullTime
	if claim.ApprovalDate != nil {
		approvalDate = sql.NullTime{Time: *claim.ApprovalDate, Valid: true}
	}

	result, err := executorFor(ctx, r.db).ExecContext(ctx, query,
		claim.Status,
		claim.WorkflowStage,
		approvedBy,
		approvalDate,
		claim.LastUpdated,
		claim.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update claim decision", zap.Int64("id", claim.ID), zap.Error(err))
		return fmt.Errorf("failed to update claim: %w", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("claim %d not found", claim.ID)
	}
	return nil
}

// UpdatePriority writes a recomputed priority score onto the claim.
func (r *ClaimRepository) UpdatePriority(ctx context.Context, id int64, priority int) error {
	query := `UPDATE claims SET priority = ? WHERE id = ?`
	if _, err := executorFor(ctx, r.db).ExecContext(ctx, query, priority, id); err != nil {
		return fmt.Errorf("failed to update priority: %w", err)
	}
	return nil
}

// RecordView increments the view counter and stamps the last viewed time.
func (r *ClaimRepository) RecordView(ctx context.Context, id int64, viewedAt time.Time) error {
	query := `UPDATE claims SET view_count = view_count + 1, last_viewed = ? WHERE id = ?`
	if _, err := executorFor(ctx, r.db).ExecContext(ctx, query, viewedAt, id); err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

// AppendNotes adds a line to the claim's append-only notes log.
func (r *ClaimRepository) AppendNotes(ctx context.Context, id int64, notes string) error {
	if strings.TrimSpace(notes) == "" {
		return nil
	}
	query := `
		UPDATE claims
		SET notes = CASE WHEN notes = '' THEN ? ELSE notes || char(10) || ? END
		WHERE id = ?
	`
	if _, err := executorFor(ctx, r.db).ExecContext(ctx, query, notes, notes, id); err != nil {
		return fmt.Errorf("failed to append notes: %w", err)
	}
	return nil
}

// Delete removes a claim.
func (r *ClaimRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM claims WHERE id = ?`
	if _, err := executorFor(ctx, r.db).ExecContext(ctx, query, id); err != nil {
		r.logger.Error("Failed to delete claim", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete claim: %w", err)
	}
	return nil
}

func (r *ClaimRepository) queryClaims(ctx context.Context, query string, args ...interface{}) ([]*entity.Claim, error) {
	rows, err := executorFor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query claims", zap.Error(err))
		return nil, fmt.Errorf("failed to query claims: %w", err)
	}
	defer rows.Close()

	var claims []*entity.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, claim)
	}
	return claims, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClaim(row rowScanner) (*entity.Claim, error) {
	var claim entity.Claim
	var approvedBy sql.NullInt64
	var approvalDate, lastViewed sql.NullTime

	err := row.Scan(
		&claim.ID,
		&claim.Title,
		&claim.Description,
		&claim.HoursWorked,
		&claim.HourlyRate,
		&claim.Date,
		&claim.Status,
		&claim.WorkflowStage,
		&claim.Priority,
		&claim.LecturerID,
		&approvedBy,
		&approvalDate,
		&claim.Notes,
		&claim.ViewCount,
		&lastViewed,
		&claim.CreatedDate,
		&claim.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if approvedBy.Valid {
		claim.ApprovedByID = &approvedBy.Int64
	}
	if approvalDate.Valid {
		t := approvalDate.Time
		claim.ApprovalDate = &t
	}
	if lastViewed.Valid {
		t := lastViewed.Time
		claim.LastViewed = &t
	}
	return &claim, nil
}

// Verify interface compliance
var _ port.ClaimRepository = (*ClaimRepository)(nil)
