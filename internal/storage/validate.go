package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxUploadSize is the largest supporting document accepted, in bytes.
const MaxUploadSize = 5 * 1024 * 1024 // 5MB

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".xlsx": true,
	".jpg":  true,
	".png":  true,
}

// ValidateUpload checks a document's name and size against the upload
// rules. A nil return means the file is acceptable.
func ValidateUpload(fileName string, size int64) error {
	if size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if size > MaxUploadSize {
		return fmt.Errorf("file size %d exceeds the %d byte limit", size, MaxUploadSize)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" || !allowedExtensions[ext] {
		return fmt.Errorf("file type %q is not allowed", ext)
	}

	return nil
}
