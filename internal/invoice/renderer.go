// Package invoice renders approved-claim invoices into downloadable
// documents. The layout is informational, not a strict contract.
package invoice

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

// Renderer produces PDF invoices for approved claims.
type Renderer struct {
	institution string
	logger      *zap.Logger
}

// NewRenderer creates a renderer. The institution name appears in the
// invoice header.
func NewRenderer(institution string, logger *zap.Logger) *Renderer {
	return &Renderer{institution: institution, logger: logger}
}

// Render produces the invoice PDF and returns (bytes, fileName, contentType).
func (r *Renderer) Render(inv *entity.Invoice, claim *entity.Claim) ([]byte, string, string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(inv.InvoiceNumber, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, r.institution, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Contract Claim Invoice", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Invoice %s", inv.InvoiceNumber), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Generated: %s", inv.GeneratedDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
	if inv.LecturerName != "" {
		pdf.CellFormat(0, 7, fmt.Sprintf("Lecturer: %s", inv.LecturerName), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Line item table: one claim per invoice.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(80, 8, "Claim", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Hours", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Rate", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(80, 8, claim.Title, "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", claim.HoursWorked), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", claim.HourlyRate), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", inv.Amount), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(140, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", inv.Amount), "1", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Claim period: %s", claim.Date.Format("January 2006")), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		r.logger.Error("Failed to render invoice PDF",
			zap.String("invoice_number", inv.InvoiceNumber),
			zap.Error(err))
		return nil, "", "", fmt.Errorf("render pdf: %w", err)
	}

	fileName := fmt.Sprintf("%s.pdf", inv.InvoiceNumber)
	return buf.Bytes(), fileName, "application/pdf", nil
}

// RenderText produces the plain-text invoice layout used in logs and
// previews.
func (r *Renderer) RenderText(inv *entity.Invoice, claim *entity.Claim) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s\n", r.institution)
	fmt.Fprintf(&b, "Invoice %s\n", inv.InvoiceNumber)
	fmt.Fprintf(&b, "Generated: %s\n", inv.GeneratedDate.Format("2006-01-02"))
	if inv.LecturerName != "" {
		fmt.Fprintf(&b, "Lecturer: %s\n", inv.LecturerName)
	}
	fmt.Fprintf(&b, "Claim: %s\n", claim.Title)
	fmt.Fprintf(&b, "Hours: %.2f @ %.2f\n", claim.HoursWorked, claim.HourlyRate)
	fmt.Fprintf(&b, "Total: %.2f\n", inv.Amount)
	return b.String()
}
