package entity

import "time"

// Invoice is generated at most once per claim, when the claim transitions to
// Approved. Amount is a snapshot of the claim's total at generation time so
// the invoice stays stable even if rates change later.
type Invoice struct {
	ID            int64     `json:"id"`
	ClaimID       int64     `json:"claim_id"`
	InvoiceNumber string    `json:"invoice_number"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	FileName      string    `json:"file_name"`
	ContentType   string    `json:"content_type"`
	FileData      []byte    `json:"-"`
	ClaimTitle    string    `json:"claim_title"`
	LecturerName  string    `json:"lecturer_name"`
	GeneratedDate time.Time `json:"generated_date"`
}
