package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/lwazim/claim-workflow/internal/application/port"
	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

// EventRepository implements port.EventRepository. The workflow_events
// table is append-only; there are no update or delete statements here.
type EventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEventRepository creates a new workflow event repository
func NewEventRepository(db *sql.DB, logger *zap.Logger) port.EventRepository {
	return &EventRepository{db: db, logger: logger}
}

// Create appends a workflow event.
func (r *EventRepository) Create(ctx context.Context, event *entity.WorkflowEvent) error {
	query := `
		INSERT INTO workflow_events (
			claim_id, action, performed_by_id, previous_status, new_status,
			stage, notes, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := executorFor(ctx, r.db).ExecContext(ctx, query,
		event.ClaimID,
		event.Action,
		event.PerformedByID,
		event.PreviousStatus,
		event.NewStatus,
		event.Stage,
		event.Notes,
		event.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to create workflow event", zap.Error(err))
		return fmt.Errorf("failed to create workflow event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	event.ID = id
	return nil
}

// GetByClaimID retrieves the full audit trail for a claim in timestamp
// order, so the history reconstructs the claim's status transitions.
func (r *EventRepository) GetByClaimID(ctx context.Context, claimID int64) ([]*entity.WorkflowEvent, error) {
	query := `
		SELECT id, claim_id, action, performed_by_id, previous_status, new_status,
			stage, notes, timestamp
		FROM workflow_events
		WHERE claim_id = ?
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := executorFor(ctx, r.db).QueryContext(ctx, query, claimID)
	if err != nil {
		r.logger.Error("Failed to get workflow events", zap.Int64("claim_id", claimID), zap.Error(err))
		return nil, fmt.Errorf("failed to get workflow events: %w", err)
	}
	defer rows.Close()

	var events []*entity.WorkflowEvent
	for rows.Next() {
		var event entity.WorkflowEvent
		err := rows.Scan(
			&event.ID,
			&event.ClaimID,
			&event.Action,
			&event.PerformedByID,
			&event.PreviousStatus,
			&event.NewStatus,
			&event.Stage,
			&event.Notes,
			&event.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow event: %w", err)
		}
		events = append(events, &event)
	}

	return events, rows.Err()
}

// Verify interface compliance
var _ port.EventRepository = (*EventRepository)(nil)
