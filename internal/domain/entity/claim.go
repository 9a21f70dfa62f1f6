package entity

import "time"

// Claim represents a lecturer's request for payment of worked hours.
type Claim struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	HoursWorked  float64    `json:"hours_worked"`
	HourlyRate   float64    `json:"hourly_rate"`
	Date         time.Time  `json:"date"`
	Status       string     `json:"status"`
	WorkflowStage string    `json:"workflow_stage"`
	Priority     int        `json:"priority"`
	LecturerID   int64      `json:"lecturer_id"`
	ApprovedByID *int64     `json:"approved_by_id,omitempty"`
	ApprovalDate *time.Time `json:"approval_date,omitempty"`
	Notes        string     `json:"notes"`
	ViewCount    int        `json:"view_count"`
	LastViewed   *time.Time `json:"last_viewed,omitempty"`
	CreatedDate  time.Time  `json:"created_date"`
	LastUpdated  time.Time  `json:"last_updated"`
}

// TotalAmount is always derived from hours and rate, never stored.
func (c *Claim) TotalAmount() float64 {
	return c.HoursWorked * c.HourlyRate
}

// Age returns how long the claim has been in the system relative to now.
func (c *Claim) Age(now time.Time) time.Duration {
	return now.Sub(c.CreatedDate)
}

// IsPending reports whether the claim is awaiting a first-level decision.
func (c *Claim) IsPending() bool {
	return c.Status == StatusPending
}
