package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/lwazim/claim-workflow/internal/application/port"
	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

// InvoiceRepository implements port.InvoiceRepository over sqlite. The
// claim_id column carries a unique constraint so the one-invoice-per-claim
// invariant holds at the storage layer too.
type InvoiceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *sql.DB, logger *zap.Logger) port.InvoiceRepository {
	return &InvoiceRepository{db: db, logger: logger}
}

const invoiceColumns = `id, claim_id, invoice_number, amount, status, file_name,
	content_type, file_data, claim_title, lecturer_name, generated_date`

// Create inserts a new invoice.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (
			claim_id, invoice_number, amount, status, file_name,
			content_type, file_data, claim_title, lecturer_name, generated_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := executorFor(ctx, r.db).ExecContext(ctx, query,
		invoice.ClaimID,
		invoice.InvoiceNumber,
		invoice.Amount,
		invoice.Status,
		invoice.FileName,
		invoice.ContentType,
		invoice.FileData,
		invoice.ClaimTitle,
		invoice.LecturerName,
		invoice.GeneratedDate,
	)
	if err != nil {
		r.logger.Error("Failed to create invoice", zap.Int64("claim_id", invoice.ClaimID), zap.Error(err))
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	invoice.ID = id
	return nil
}

// GetByID retrieves an invoice by ID. Returns (nil, nil) when not found.
func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE id = ?`, invoiceColumns)
	return r.scanInvoice(executorFor(ctx, r.db).QueryRowContext(ctx, query, id))
}

// GetByClaimID retrieves the invoice for a claim. Returns (nil, nil) when
// no invoice has been generated.
func (r *InvoiceRepository) GetByClaimID(ctx context.Context, claimID int64) (*entity.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE claim_id = ?`, invoiceColumns)
	return r.scanInvoice(executorFor(ctx, r.db).QueryRowContext(ctx, query, claimID))
}

// ListAll retrieves all invoices, newest first.
func (r *InvoiceRepository) ListAll(ctx context.Context) ([]*entity.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices ORDER BY generated_date DESC`, invoiceColumns)

	rows, err := executorFor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		err := rows.Scan(
			&inv.ID,
			&inv.ClaimID,
			&inv.InvoiceNumber,
			&inv.Amount,
			&inv.Status,
			&inv.FileName,
			&inv.ContentType,
			&inv.FileData,
			&inv.ClaimTitle,
			&inv.LecturerName,
			&inv.GeneratedDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}

func (r *InvoiceRepository) scanInvoice(row *sql.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.ClaimID,
		&inv.InvoiceNumber,
		&inv.Amount,
		&inv.Status,
		&inv.FileName,
		&inv.ContentType,
		&inv.FileData,
		&inv.ClaimTitle,
		&inv.LecturerName,
		&inv.GeneratedDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan invoice: %w", err)
	}
	return &inv, nil
}

// Verify interface compliance
var _ port.InvoiceRepository = (*InvoiceRepository)(nil)
