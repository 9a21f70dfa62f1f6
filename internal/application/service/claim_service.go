package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lwazim/claim-workflow/internal/application/port"
	"github.com/lwazim/claim-workflow/internal/domain/entity"
	"github.com/lwazim/claim-workflow/internal/storage"
)

// SubmitClaimInput is the data a lecturer provides when submitting a claim.
type SubmitClaimInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	HoursWorked float64   `json:"hours_worked"`
	HourlyRate  float64   `json:"hourly_rate"`
	Date        time.Time `json:"date"`
	Notes       string    `json:"notes"`
}

// ClaimService handles claim submission, retrieval and document attachment.
// Status transitions are the approval router's job, not this service's.
type ClaimService interface {
	Submit(ctx context.Context, input SubmitClaimInput, lecturerID int64) (*entity.Claim, ValidationResult, error)
	GetByID(ctx context.Context, id int64) (*entity.Claim, error)
	ListAll(ctx context.Context) ([]*entity.Claim, error)
	ListByLecturer(ctx context.Context, lecturerID int64) ([]*entity.Claim, error)

	// ListPending returns pending claims in priority order, oldest first
	// within equal priority. Scores are recomputed and written back.
	ListPending(ctx context.Context) ([]*entity.Claim, error)

	Delete(ctx context.Context, id int64) (bool, error)

	UploadDocument(ctx context.Context, claimID int64, fileName, contentType string, content []byte) (*entity.Document, error)
	GetDocument(ctx context.Context, claimID int64) ([]byte, string, string, error)
}

type claimService struct {
	claimRepo port.ClaimRepository
	eventRepo port.EventRepository
	docRepo   port.DocumentRepository
	files     port.FileStore
	validator *ClaimValidator
	scorer    *PriorityScorer
	txManager port.TransactionManager
	logger    *zap.Logger
	now       func() time.Time
}

// NewClaimService creates the claim service.
func NewClaimService(
	claimRepo port.ClaimRepository,
	eventRepo port.EventRepository,
	docRepo port.DocumentRepository,
	files port.FileStore,
	validator *ClaimValidator,
	scorer *PriorityScorer,
	txManager port.TransactionManager,
	logger *zap.Logger,
) ClaimService {
	return &claimService{
		claimRepo: claimRepo,
		eventRepo: eventRepo,
		docRepo:   docRepo,
		files:     files,
		validator: validator,
		scorer:    scorer,
		txManager: txManager,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit validates the candidate claim against the lecturer's existing
// claims and creates it in Pending state. Validation errors block creation;
// warnings are returned alongside the created claim.
func (s *claimService) Submit(ctx context.Context, input SubmitClaimInput, lecturerID int64) (*entity.Claim, ValidationResult, error) {
	now := s.now()

	claim := &entity.Claim{
		Title:         input.Title,
		Description:   input.Description,
		HoursWorked:   input.HoursWorked,
		HourlyRate:    input.HourlyRate,
		Date:          input.Date,
		Notes:         input.Notes,
		Status:        entity.StatusPending,
		WorkflowStage: entity.StageSubmitted,
		Priority:      priorityBase,
		LecturerID:    lecturerID,
		CreatedDate:   now,
		LastUpdated:   now,
	}

	existing, err := s.claimRepo.ListByLecturer(ctx, lecturerID)
	if err != nil {
		return nil, ValidationResult{}, fmt.Errorf("load lecturer claims: %w", err)
	}

	result := s.validator.Validate(claim, existing)
	if !result.Valid {
		return nil, result, nil
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.claimRepo.Create(txCtx, claim); err != nil {
			return fmt.Errorf("create claim: %w", err)
		}

		event := &entity.WorkflowEvent{
			ClaimID:        claim.ID,
			Action:         entity.ActionSubmission,
			PerformedByID:  lecturerID,
			PreviousStatus: "",
			NewStatus:      entity.StatusPending,
			Stage:          entity.StageSubmitted,
			Notes:          input.Notes,
			Timestamp:      now,
		}
		if err := s.eventRepo.Create(txCtx, event); err != nil {
			return fmt.Errorf("append workflow event: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Claim submission failed",
			zap.Int64("lecturer_id", lecturerID),
			zap.Error(err))
		return nil, result, err
	}

	s.logger.Info("Claim submitted",
		zap.Int64("claim_id", claim.ID),
		zap.Int64("lecturer_id", lecturerID),
		zap.Float64("amount", claim.TotalAmount()),
		zap.Int("warnings", len(result.Warnings)))
	return claim, result, nil
}

// GetByID returns the claim and records the view as an audit counter.
// Returns (nil, nil) when the claim does not exist.
func (s *claimService) GetByID(ctx context.Context, id int64) (*entity.Claim, error) {
	claim, err := s.claimRepo.GetByID(ctx, id)
	if err != nil || claim == nil {
		return claim, err
	}

	now := s.now()
	if err := s.claimRepo.RecordView(ctx, id, now); err != nil {
		// View counting is best-effort; the read itself succeeded.
		s.logger.Warn("Failed to record claim view", zap.Int64("claim_id", id), zap.Error(err))
	} else {
		claim.ViewCount++
		claim.LastViewed = &now
	}

	return claim, nil
}

func (s *claimService) ListAll(ctx context.Context) ([]*entity.Claim, error) {
	return s.claimRepo.ListAll(ctx)
}

func (s *claimService) ListByLecturer(ctx context.Context, lecturerID int64) ([]*entity.Claim, error) {
	return s.claimRepo.ListByLecturer(ctx, lecturerID)
}

func (s *claimService) ListPending(ctx context.Context) ([]*entity.Claim, error) {
	pending, err := s.claimRepo.ListByStatus(ctx, entity.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending claims: %w", err)
	}
	if len(pending) == 0 {
		return pending, nil
	}

	ids := make([]int64, 0, len(pending))
	for _, c := range pending {
		ids = append(ids, c.ID)
	}
	hasDoc, err := s.docRepo.CountByClaimIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("check supporting documents: %w", err)
	}

	ordered := s.scorer.Prioritize(pending, hasDoc)

	// Persist recomputed scores so the dashboard sees the same ordering.
	for _, c := range ordered {
		if err := s.claimRepo.UpdatePriority(ctx, c.ID, c.Priority); err != nil {
			s.logger.Warn("Failed to persist claim priority",
				zap.Int64("claim_id", c.ID),
				zap.Error(err))
		}
	}

	return ordered, nil
}

// Delete removes a claim outright. This is an explicit administrative
// operation, not part of the approval lifecycle.
func (s *claimService) Delete(ctx context.Context, id int64) (bool, error) {
	claim, err := s.claimRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if claim == nil {
		return false, nil
	}

	if doc, err := s.docRepo.GetByClaimID(ctx, id); err == nil && doc != nil {
		if err := s.files.Remove(doc.StorageKey); err != nil {
			s.logger.Warn("Failed to remove document file",
				zap.String("storage_key", doc.StorageKey),
				zap.Error(err))
		}
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.docRepo.DeleteByClaimID(txCtx, id); err != nil {
			return fmt.Errorf("delete document metadata: %w", err)
		}
		if err := s.claimRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete claim: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	s.logger.Info("Claim deleted", zap.Int64("claim_id", id))
	return true, nil
}

// UploadDocument validates and stores a supporting file for the claim,
// replacing any previous document. Returns nil when the claim does not
// exist or the file fails validation.
func (s *claimService) UploadDocument(ctx context.Context, claimID int64, fileName, contentType string, content []byte) (*entity.Document, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, nil
	}

	if err := storage.ValidateUpload(fileName, int64(len(content))); err != nil {
		s.logger.Info("Document upload rejected",
			zap.Int64("claim_id", claimID),
			zap.String("file_name", fileName),
			zap.Error(err))
		return nil, nil
	}

	key := fmt.Sprintf("claims/%d/%s%s", claimID, uuid.NewString(), filepath.Ext(fileName))
	if err := s.files.Save(key, content); err != nil {
		return nil, fmt.Errorf("store document bytes: %w", err)
	}

	doc := &entity.Document{
		ClaimID:     claimID,
		FileName:    fileName,
		ContentType: contentType,
		FileSize:    int64(len(content)),
		StorageKey:  key,
		UploadDate:  s.now(),
	}

	previous, _ := s.docRepo.GetByClaimID(ctx, claimID)

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.docRepo.DeleteByClaimID(txCtx, claimID); err != nil {
			return fmt.Errorf("remove previous document: %w", err)
		}
		if err := s.docRepo.Create(txCtx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if previous != nil {
		if err := s.files.Remove(previous.StorageKey); err != nil {
			s.logger.Warn("Failed to remove replaced document file",
				zap.String("storage_key", previous.StorageKey),
				zap.Error(err))
		}
	}

	s.logger.Info("Document uploaded",
		zap.Int64("claim_id", claimID),
		zap.String("file_name", fileName),
		zap.Int64("size", doc.FileSize))
	return doc, nil
}

// GetDocument returns (bytes, contentType, fileName) for the claim's
// supporting document, or empty values when there is none.
func (s *claimService) GetDocument(ctx context.Context, claimID int64) ([]byte, string, string, error) {
	doc, err := s.docRepo.GetByClaimID(ctx, claimID)
	if err != nil {
		return nil, "", "", err
	}
	if doc == nil {
		return nil, "", "", nil
	}

	content, err := s.files.Load(doc.StorageKey)
	if err != nil {
		return nil, "", "", fmt.Errorf("load document bytes: %w", err)
	}

	return content, doc.ContentType, doc.FileName, nil
}
