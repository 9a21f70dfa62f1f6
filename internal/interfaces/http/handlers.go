package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lwazim/claim-workflow/internal/application/service"
	"github.com/lwazim/claim-workflow/internal/domain/entity"
	"github.com/lwazim/claim-workflow/internal/report"
	"github.com/lwazim/claim-workflow/internal/storage"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	claims    service.ClaimService
	approvals service.ApprovalService
	invoices  service.InvoiceService
	dashboard service.DashboardService
	exporter  *report.ExcelExporter
	logger    *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	claims service.ClaimService,
	approvals service.ApprovalService,
	invoices service.InvoiceService,
	dashboard service.DashboardService,
	exporter *report.ExcelExporter,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		claims:    claims,
		approvals: approvals,
		invoices:  invoices,
		dashboard: dashboard,
		exporter:  exporter,
		logger:    logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Error    string      `json:"error,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
}

// SubmitClaimRequest is the payload for POST /api/claims
type SubmitClaimRequest struct {
	LecturerID  int64   `json:"lecturer_id" binding:"required"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	HoursWorked float64 `json:"hours_worked"`
	HourlyRate  float64 `json:"hourly_rate"`
	Date        string  `json:"date" binding:"required"`
	Notes       string  `json:"notes"`
}

// DecisionRequest is the payload for approve/reject/bulk-approve calls.
type DecisionRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Role   string `json:"role"`
	Notes  string `json:"notes"`
	Reason string `json:"reason"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// SubmitClaim handles POST /api/claims
func (h *Handlers) SubmitClaim(c *gin.Context) {
	var req SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid date format, want YYYY-MM-DD"})
		return
	}

	claim, result, err := h.claims.Submit(c.Request.Context(), service.SubmitClaimInput{
		Title:       req.Title,
		Description: req.Description,
		HoursWorked: req.HoursWorked,
		HourlyRate:  req.HourlyRate,
		Date:        date,
		Notes:       req.Notes,
	}, req.LecturerID)
	if err != nil {
		h.logger.Error("Claim submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to submit claim"})
		return
	}

	if !result.Valid {
		c.JSON(http.StatusUnprocessableEntity, Response{
			Success:  false,
			Error:    "claim failed validation",
			Data:     gin.H{"errors": result.Errors},
			Warnings: result.Warnings,
		})
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success:  true,
		Data:     claim,
		Warnings: result.Warnings,
	})
}

// ListClaims handles GET /api/claims; an optional lecturer_id query scopes
// the listing to one lecturer.
func (h *Handlers) ListClaims(c *gin.Context) {
	var (
		claims []*entity.Claim
		err    error
	)
	if lecturerStr := c.Query("lecturer_id"); lecturerStr != "" {
		lecturerID, perr := strconv.ParseInt(lecturerStr, 10, 64)
		if perr != nil {
			c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid lecturer_id"})
			return
		}
		claims, err = h.claims.ListByLecturer(c.Request.Context(), lecturerID)
	} else {
		claims, err = h.claims.ListAll(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list claims", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve claims"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: claims})
}

// ListPendingClaims handles GET /api/claims/pending; claims come back in
// priority order.
func (h *Handlers) ListPendingClaims(c *gin.Context) {
	claims, err := h.claims.ListPending(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list pending claims", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve pending claims"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: claims})
}

// GetClaim handles GET /api/claims/:id
func (h *Handlers) GetClaim(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	claim, err := h.claims.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get claim", zap.Int64("claim_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve claim"})
		return
	}
	if claim == nil {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "claim not found"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: claim})
}

// DeleteClaim handles DELETE /api/claims/:id
func (h *Handlers) DeleteClaim(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	deleted, err := h.claims.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to delete claim", zap.Int64("claim_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to delete claim"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "claim not found"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// GetClaimHistory handles GET /api/claims/:id/history
func (h *Handlers) GetClaimHistory(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	events, err := h.approvals.History(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get claim history", zap.Int64("claim_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve history"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: events})
}

// ApproveClaim handles POST /api/claims/:id/approve
func (h *Handlers) ApproveClaim(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	role := entity.Role(req.Role)
	if !role.CanApprove() {
		c.JSON(http.StatusForbidden, Response{Success: false, Error: "role cannot approve claims"})
		return
	}

	routed, err := h.approvals.Approve(c.Request.Context(), id, req.UserID, role, req.Notes)
	if err != nil {
		h.logger.Error("Approval failed", zap.Int64("claim_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to approve claim"})
		return
	}
	if !routed {
		c.JSON(http.StatusConflict, Response{Success: false, Error: "claim not found or not awaiting approval"})
		return
	}

	claim, err := h.claims.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, Response{Success: true})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: claim})
}

// RejectClaim handles POST /api/claims/:id/reject
func (h *Handlers) RejectClaim(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	rejected, err := h.approvals.Reject(c.Request.Context(), id, req.UserID, req.Reason)
	if err != nil {
		h.logger.Error("Rejection failed", zap.Int64("claim_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to reject claim"})
		return
	}
	if !rejected {
		c.JSON(http.StatusConflict, Response{Success: false, Error: "claim not found or already decided"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// BulkApprove handles POST /api/claims/bulk-approve
func (h *Handlers) BulkApprove(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	role := entity.Role(req.Role)
	if !role.CanApprove() {
		c.JSON(http.StatusForbidden, Response{Success: false, Error: "role cannot approve claims"})
		return
	}

	processed, failed, err := h.approvals.BulkApprove(c.Request.Context(), req.UserID, role)
	if err != nil {
		h.logger.Error("Bulk approval failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to process pending claims"})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    gin.H{"processed": processed, "failed": failed},
	})
}

// UploadDocument handles POST /api/claims/:id/document (multipart form with
// a "file" field).
func (h *Handlers) UploadDocument(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "missing file upload"})
		return
	}
	if fileHeader.Size > storage.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, Response{Success: false, Error: "file exceeds the 5MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "unreadable file upload"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, storage.MaxUploadSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "unreadable file upload"})
		return
	}

	doc, err := h.claims.UploadDocument(c.Request.Context(), id,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), content)
	if err != nil {
		h.logger.Error("Document upload failed", zap.Int64("claim_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to store document"})
		return
	}
	if doc == nil {
		c.JSON(http.StatusUnprocessableEntity, Response{Success: false, Error: "claim not found or file type not allowed"})
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: doc})
}

// DownloadDocument handles GET /api/claims/:id/document
func (h *Handlers) DownloadDocument(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	content, contentType, fileName, err := h.claims.GetDocument(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Document download failed", zap.Int64("claim_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to load document"})
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "no document attached to this claim"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, contentType, content)
}

// GenerateInvoice handles POST /api/claims/:id/invoice
func (h *Handlers) GenerateInvoice(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	invoice, err := h.invoices.Generate(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Invoice generation failed", zap.Int64("claim_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to generate invoice"})
		return
	}
	if invoice == nil {
		c.JSON(http.StatusConflict, Response{Success: false, Error: "claim not found or not approved"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: invoice})
}

// ListInvoices handles GET /api/invoices
func (h *Handlers) ListInvoices(c *gin.Context) {
	invoices, err := h.invoices.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list invoices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve invoices"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: invoices})
}

// GetInvoice handles GET /api/invoices/:id
func (h *Handlers) GetInvoice(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	invoice, err := h.invoices.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get invoice", zap.Int64("invoice_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve invoice"})
		return
	}
	if invoice == nil {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "invoice not found"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: invoice})
}

// DownloadInvoice handles GET /api/invoices/:id/download
func (h *Handlers) DownloadInvoice(c *gin.Context) {
	id, ok := h.claimID(c)
	if !ok {
		return
	}

	invoice, err := h.invoices.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Invoice download failed", zap.Int64("invoice_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve invoice"})
		return
	}
	if invoice == nil {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "invoice not found"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoice.FileName))
	c.Data(http.StatusOK, invoice.ContentType, invoice.FileData)
}

// Dashboard handles GET /api/dashboard; user_id and role queries scope the
// statistics.
func (h *Handlers) Dashboard(c *gin.Context) {
	userID, err := strconv.ParseInt(c.DefaultQuery("user_id", "0"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid user_id"})
		return
	}

	role := entity.Role(c.DefaultQuery("role", string(entity.RoleCoordinator)))
	if !role.IsValid() {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid role"})
		return
	}

	stats, err := h.dashboard.ComputeStatistics(c.Request.Context(), userID, role)
	if err != nil {
		h.logger.Error("Dashboard computation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: stats})
}

// ExportClaims handles GET /api/claims/export and streams the claim
// register as an Excel workbook.
func (h *Handlers) ExportClaims(c *gin.Context) {
	claims, err := h.claims.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list claims for export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve claims"})
		return
	}

	data, err := h.exporter.Export(claims)
	if err != nil {
		h.logger.Error("Claim export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to export claims"})
		return
	}

	fileName := fmt.Sprintf("claims-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// claimID parses the :id path parameter, replying 400 on failure.
func (h *Handlers) claimID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid id"})
		return 0, false
	}
	return id, true
}

// parseDate accepts YYYY-MM-DD or RFC3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
