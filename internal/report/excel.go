// Package report exports the claim register as an Excel workbook for
// coordinators and managers.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

const sheetName = "Claims"

var headers = []string{
	"ID", "Title", "Lecturer ID", "Hours", "Rate", "Amount",
	"Date", "Status", "Stage", "Priority", "Created", "Approved",
}

// ExcelExporter writes the claim register to an xlsx workbook.
type ExcelExporter struct {
	logger *zap.Logger
}

// NewExcelExporter creates an exporter.
func NewExcelExporter(logger *zap.Logger) *ExcelExporter {
	return &ExcelExporter{logger: logger}
}

// Export writes one row per claim and returns the workbook bytes.
func (e *ExcelExporter) Export(claims []*entity.Claim) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("remove default sheet: %w", err)
	}

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, c := range claims {
		row := i + 2
		approved := ""
		if c.ApprovalDate != nil {
			approved = c.ApprovalDate.Format("2006-01-02")
		}
		values := []interface{}{
			c.ID, c.Title, c.LecturerID, c.HoursWorked, c.HourlyRate, c.TotalAmount(),
			c.Date.Format("2006-01-02"), c.Status, c.WorkflowStage, c.Priority,
			c.CreatedDate.Format("2006-01-02"), approved,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		e.logger.Error("Failed to write claim register workbook", zap.Error(err))
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	e.logger.Info("Claim register exported", zap.Int("claims", len(claims)))
	return buf.Bytes(), nil
}
