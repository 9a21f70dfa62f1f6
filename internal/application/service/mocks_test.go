package service

import (
	"context"
	"time"

	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

// Mock repositories

type mockClaimRepo struct {
	createFunc         func(ctx context.Context, claim *entity.Claim) error
	getByIDFunc        func(ctx context.Context, id int64) (*entity.Claim, error)
	listAllFunc        func(ctx context.Context) ([]*entity.Claim, error)
	listByLecturerFunc func(ctx context.Context, lecturerID int64) ([]*entity.Claim, error)
	listByStatusFunc   func(ctx context.Context, status string) ([]*entity.Claim, error)
	updateDecisionFunc func(ctx context.Context, claim *entity.Claim) error
	updatePriorityFunc func(ctx context.Context, id int64, priority int) error
	recordViewFunc     func(ctx context.Context, id int64, viewedAt time.Time) error
	appendNotesFunc    func(ctx context.Context, id int64, notes string) error
	deleteFunc         func(ctx context.Context, id int64) error
}

func (m *mockClaimRepo) Create(ctx context.Context, claim *entity.Claim) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, claim)
	}
	claim.ID = 1
	return nil
}

func (m *mockClaimRepo) GetByID(ctx context.Context, id int64) (*entity.Claim, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockClaimRepo) ListAll(ctx context.Context) ([]*entity.Claim, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return []*entity.Claim{}, nil
}

func (m *mockClaimRepo) ListByLecturer(ctx context.Context, lecturerID int64) ([]*entity.Claim, error) {
	if m.listByLecturerFunc != nil {
		return m.listByLecturerFunc(ctx, lecturerID)
	}
	return []*entity.Claim{}, nil
}

func (m *mockClaimRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Claim, error) {
	if m.listByStatusFunc != nil {
		return m.listByStatusFunc(ctx, status)
	}
	return []*entity.Claim{}, nil
}

func (m *mockClaimRepo) UpdateDecision(ctx context.Context, claim *entity.Claim) error {
	if m.updateDecisionFunc != nil {
		return m.updateDecisionFunc(ctx, claim)
	}
	return nil
}

func (m *mockClaimRepo) UpdatePriority(ctx context.Context, id int64, priority int) error {
	if m.updatePriorityFunc != nil {
		return m.updatePriorityFunc(ctx, id, priority)
	}
	return nil
}

func (m *mockClaimRepo) RecordView(ctx context.Context, id int64, viewedAt time.Time) error {
	if m.recordViewFunc != nil {
		return m.recordViewFunc(ctx, id, viewedAt)
	}
	return nil
}

func (m *mockClaimRepo) AppendNotes(ctx context.Context, id int64, notes string) error {
	if m.appendNotesFunc != nil {
		return m.appendNotesFunc(ctx, id, notes)
	}
	return nil
}

func (m *mockClaimRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockEventRepo struct {
	createFunc       func(ctx context.Context, event *entity.WorkflowEvent) error
	getByClaimIDFunc func(ctx context.Context, claimID int64) ([]*entity.WorkflowEvent, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *entity.WorkflowEvent) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) GetByClaimID(ctx context.Context, claimID int64) ([]*entity.WorkflowEvent, error) {
	if m.getByClaimIDFunc != nil {
		return m.getByClaimIDFunc(ctx, claimID)
	}
	return []*entity.WorkflowEvent{}, nil
}

type mockUserRepo struct {
	createFunc        func(ctx context.Context, user *entity.User) error
	getByIDFunc       func(ctx context.Context, id int64) (*entity.User, error)
	getByUsernameFunc func(ctx context.Context, username string) (*entity.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(ctx, username)
	}
	return nil, nil
}

type mockDocumentRepo struct {
	createFunc          func(ctx context.Context, doc *entity.Document) error
	getByClaimIDFunc    func(ctx context.Context, claimID int64) (*entity.Document, error)
	deleteByClaimIDFunc func(ctx context.Context, claimID int64) error
	countByClaimIDsFunc func(ctx context.Context, claimIDs []int64) (map[int64]bool, error)
}

func (m *mockDocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, doc)
	}
	doc.ID = 1
	return nil
}

func (m *mockDocumentRepo) GetByClaimID(ctx context.Context, claimID int64) (*entity.Document, error) {
	if m.getByClaimIDFunc != nil {
		return m.getByClaimIDFunc(ctx, claimID)
	}
	return nil, nil
}

func (m *mockDocumentRepo) DeleteByClaimID(ctx context.Context, claimID int64) error {
	if m.deleteByClaimIDFunc != nil {
		return m.deleteByClaimIDFunc(ctx, claimID)
	}
	return nil
}

func (m *mockDocumentRepo) CountByClaimIDs(ctx context.Context, claimIDs []int64) (map[int64]bool, error) {
	if m.countByClaimIDsFunc != nil {
		return m.countByClaimIDsFunc(ctx, claimIDs)
	}
	return map[int64]bool{}, nil
}

type mockInvoiceRepo struct {
	createFunc       func(ctx context.Context, invoice *entity.Invoice) error
	getByIDFunc      func(ctx context.Context, id int64) (*entity.Invoice, error)
	getByClaimIDFunc func(ctx context.Context, claimID int64) (*entity.Invoice, error)
	listAllFunc      func(ctx context.Context) ([]*entity.Invoice, error)
}

func (m *mockInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, invoice)
	}
	invoice.ID = 1
	return nil
}

func (m *mockInvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockInvoiceRepo) GetByClaimID(ctx context.Context, claimID int64) (*entity.Invoice, error) {
	if m.getByClaimIDFunc != nil {
		return m.getByClaimIDFunc(ctx, claimID)
	}
	return nil, nil
}

func (m *mockInvoiceRepo) ListAll(ctx context.Context) ([]*entity.Invoice, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return []*entity.Invoice{}, nil
}

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockFileStore struct {
	saveFunc   func(key string, content []byte) error
	loadFunc   func(key string) ([]byte, error)
	removeFunc func(key string) error
}

func (m *mockFileStore) Save(key string, content []byte) error {
	if m.saveFunc != nil {
		return m.saveFunc(key, content)
	}
	return nil
}

func (m *mockFileStore) Load(key string) ([]byte, error) {
	if m.loadFunc != nil {
		return m.loadFunc(key)
	}
	return []byte{}, nil
}

func (m *mockFileStore) Remove(key string) error {
	if m.removeFunc != nil {
		return m.removeFunc(key)
	}
	return nil
}

type mockInvoiceGenerator struct {
	generateForClaimFunc func(ctx context.Context, claim *entity.Claim) (*entity.Invoice, error)
	calls                int
}

func (m *mockInvoiceGenerator) GenerateForClaim(ctx context.Context, claim *entity.Claim) (*entity.Invoice, error) {
	m.calls++
	if m.generateForClaimFunc != nil {
		return m.generateForClaimFunc(ctx, claim)
	}
	return &entity.Invoice{ID: 1, ClaimID: claim.ID}, nil
}

type mockRenderer struct {
	renderFunc func(invoice *entity.Invoice, claim *entity.Claim) ([]byte, string, string, error)
}

func (m *mockRenderer) Render(invoice *entity.Invoice, claim *entity.Claim) ([]byte, string, string, error) {
	if m.renderFunc != nil {
		return m.renderFunc(invoice, claim)
	}
	return []byte("%PDF-stub"), invoice.InvoiceNumber + ".pdf", "application/pdf", nil
}
