package entity

import "time"

// Document is a supporting file attached to a claim. At most one document
// per claim; re-uploading replaces the previous one. The bytes live on disk
// under StorageKey, only metadata is kept in the database.
type Document struct {
	ID          int64     `json:"id"`
	ClaimID     int64     `json:"claim_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	StorageKey  string    `json:"storage_key"`
	UploadDate  time.Time `json:"upload_date"`
}
