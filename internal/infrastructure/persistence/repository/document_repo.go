package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lwazim/claim-workflow/internal/application/port"
	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

// DocumentRepository implements port.DocumentRepository over sqlite.
type DocumentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *sql.DB, logger *zap.Logger) port.DocumentRepository {
	return &DocumentRepository{db: db, logger: logger}
}

// Create inserts document metadata.
func (r *DocumentRepository) Create(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO documents (claim_id, file_name, content_type, file_size, storage_key, upload_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := executorFor(ctx, r.db).ExecContext(ctx, query,
		doc.ClaimID,
		doc.FileName,
		doc.ContentType,
		doc.FileSize,
		doc.StorageKey,
		doc.UploadDate,
	)
	if err != nil {
		r.logger.Error("Failed to create document", zap.Int64("claim_id", doc.ClaimID), zap.Error(err))
		return fmt.Errorf("failed to create document: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	doc.ID = id
	return nil
}

// GetByClaimID retrieves the document for a claim. Returns (nil, nil) when
// the claim has no document.
func (r *DocumentRepository) GetByClaimID(ctx context.Context, claimID int64) (*entity.Document, error) {
	query := `
		SELECT id, claim_id, file_name, content_type, file_size, storage_key, upload_date
		FROM documents WHERE claim_id = ?
	`

	var doc entity.Document
	err := executorFor(ctx, r.db).QueryRowContext(ctx, query, claimID).Scan(
		&doc.ID,
		&doc.ClaimID,
		&doc.FileName,
		&doc.ContentType,
		&doc.FileSize,
		&doc.StorageKey,
		&doc.UploadDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

// DeleteByClaimID removes the document metadata for a claim.
func (r *DocumentRepository) DeleteByClaimID(ctx context.Context, claimID int64) error {
	query := `DELETE FROM documents WHERE claim_id = ?`
	if _, err := executorFor(ctx, r.db).ExecContext(ctx, query, claimID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// CountByClaimIDs reports which of the given claims have a supporting
// document, keyed by claim ID.
func (r *DocumentRepository) CountByClaimIDs(ctx context.Context, claimIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(claimIDs))
	if len(claimIDs) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(claimIDs)), ",")
	query := fmt.Sprintf(`SELECT claim_id FROM documents WHERE claim_id IN (%s)`, placeholders)

	args := make([]interface{}, len(claimIDs))
	for i, id := range claimIDs {
		args[i] = id
	}

	rows, err := executorFor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var claimID int64
		if err := rows.Scan(&claimID); err != nil {
			return nil, fmt.Errorf("failed to scan document claim id: %w", err)
		}
		result[claimID] = true
	}
	return result, rows.Err()
}

// Verify interface compliance
var _ port.DocumentRepository = (*DocumentRepository)(nil)
