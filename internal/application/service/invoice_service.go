package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lwazim/claim-workflow/internal/application/port"
	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

// InvoiceRenderer produces the downloadable representation of an invoice.
type InvoiceRenderer interface {
	Render(invoice *entity.Invoice, claim *entity.Claim) ([]byte, string, string, error)
}

// InvoiceService generates and serves invoices. One invoice per approved
// claim; the invoice number is derived from the claim and stable across
// calls.
type InvoiceService interface {
	InvoiceGenerator

	// Generate creates (or returns) the invoice for an approved claim.
	// Returns nil when the claim does not exist or is not approved.
	Generate(ctx context.Context, claimID int64) (*entity.Invoice, error)

	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	ListAll(ctx context.Context) ([]*entity.Invoice, error)
}

type invoiceService struct {
	invoiceRepo port.InvoiceRepository
	claimRepo   port.ClaimRepository
	userRepo    port.UserRepository
	renderer    InvoiceRenderer
	logger      *zap.Logger
	now         func() time.Time
}

// NewInvoiceService creates the invoice service.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	claimRepo port.ClaimRepository,
	userRepo port.UserRepository,
	renderer InvoiceRenderer,
	logger *zap.Logger,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		claimRepo:   claimRepo,
		userRepo:    userRepo,
		renderer:    renderer,
		logger:      logger,
		now:         time.Now,
	}
}

// InvoiceNumber derives the stable invoice number for a claim.
func InvoiceNumber(claim *entity.Claim) string {
	return fmt.Sprintf("INV-%d-%06d", claim.CreatedDate.Year(), claim.ID)
}

// GenerateForClaim creates the invoice for an approved claim. Idempotent:
// when an invoice already exists for the claim it is returned unchanged.
func (s *invoiceService) GenerateForClaim(ctx context.Context, claim *entity.Claim) (*entity.Invoice, error) {
	existing, err := s.invoiceRepo.GetByClaimID(ctx, claim.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing invoice: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	lecturerName := ""
	if lecturer, err := s.userRepo.GetByID(ctx, claim.LecturerID); err == nil && lecturer != nil {
		lecturerName = lecturer.FullName
	}

	invoice := &entity.Invoice{
		ClaimID:       claim.ID,
		InvoiceNumber: InvoiceNumber(claim),
		Amount:        claim.TotalAmount(),
		Status:        entity.InvoiceStatusGenerated,
		ClaimTitle:    claim.Title,
		LecturerName:  lecturerName,
		GeneratedDate: s.now(),
	}

	data, fileName, contentType, err := s.renderer.Render(invoice, claim)
	if err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", invoice.InvoiceNumber, err)
	}
	invoice.FileData = data
	invoice.FileName = fileName
	invoice.ContentType = contentType

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	s.logger.Info("Invoice generated",
		zap.Int64("claim_id", claim.ID),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Float64("amount", invoice.Amount))
	return invoice, nil
}

func (s *invoiceService) Generate(ctx context.Context, claimID int64) (*entity.Invoice, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim == nil || claim.Status != entity.StatusApproved {
		return nil, nil
	}
	return s.GenerateForClaim(ctx, claim)
}

func (s *invoiceService) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) ListAll(ctx context.Context) ([]*entity.Invoice, error) {
	return s.invoiceRepo.ListAll(ctx)
}
