package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		size     int64
		wantErr  bool
	}{
		{"pdf within limit", "timesheet.pdf", 1024, false},
		{"docx allowed", "report.docx", 2048, false},
		{"xlsx allowed", "hours.xlsx", 2048, false},
		{"jpg allowed", "receipt.jpg", 500, false},
		{"png allowed", "scan.png", 500, false},
		{"uppercase extension normalised", "Timesheet.PDF", 1024, false},
		{"at size limit", "big.pdf", MaxUploadSize, false},
		{"over size limit", "huge.pdf", MaxUploadSize + 1, true},
		{"empty file", "empty.pdf", 0, true},
		{"executable rejected", "malware.exe", 100, true},
		{"no extension", "README", 100, true},
		{"legacy doc rejected", "old.doc", 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.fileName, tt.size)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
