package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

// Validation limits for submitted claims.
const (
	MaxHoursWorked   = 1000.0
	MinHourlyRate    = 10.0
	MaxHourlyRate    = 500.0
	WarnHoursWorked  = 100.0
	WarnHourlyRate   = 300.0
	WarnTotalAmount  = 5000.0
	MonthlyClaimCap  = 10000.0
	DuplicateWindow  = 7 * 24 * time.Hour
)

// ValidationResult collects all applicable messages for a candidate claim.
// Errors block submission; warnings are advisory and surfaced to the caller.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *ValidationResult) addError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Valid = false
}

func (r *ValidationResult) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// ClaimValidator applies the submission business rules. It is a pure
// function over a snapshot of the lecturer's existing claims; it reads
// nothing and writes nothing.
type ClaimValidator struct {
	now func() time.Time
}

// NewClaimValidator creates a validator using the wall clock.
func NewClaimValidator() *ClaimValidator {
	return &ClaimValidator{now: time.Now}
}

// NewClaimValidatorAt creates a validator with a fixed clock, for tests.
func NewClaimValidatorAt(now func() time.Time) *ClaimValidator {
	return &ClaimValidator{now: now}
}

// Validate checks a candidate claim against the submission rules. Every
// check is evaluated independently; all applicable messages are collected
// rather than stopping at the first failure.
func (v *ClaimValidator) Validate(candidate *entity.Claim, existing []*entity.Claim) ValidationResult {
	result := ValidationResult{Valid: true}
	now := v.now()

	// Required fields
	if strings.TrimSpace(candidate.Title) == "" {
		result.addError("Title is required")
	}
	if candidate.Date.After(now) {
		result.addError("Claim date cannot be in the future")
	}

	// Range checks
	if candidate.HoursWorked <= 0 {
		result.addError("Hours worked must be greater than zero")
	} else if candidate.HoursWorked > MaxHoursWorked {
		result.addError(fmt.Sprintf("Hours worked cannot exceed %.0f", MaxHoursWorked))
	}
	if candidate.HourlyRate < MinHourlyRate || candidate.HourlyRate > MaxHourlyRate {
		result.addError(fmt.Sprintf("Hourly rate must be between %.0f and %.0f", MinHourlyRate, MaxHourlyRate))
	}

	// Advisory thresholds
	if candidate.HoursWorked > WarnHoursWorked {
		result.addWarning(fmt.Sprintf("Hours worked above %.0f will receive extra scrutiny", WarnHoursWorked))
	}
	if candidate.HourlyRate > WarnHourlyRate {
		result.addWarning(fmt.Sprintf("Hourly rate above %.0f will receive extra scrutiny", WarnHourlyRate))
	}
	if candidate.TotalAmount() > WarnTotalAmount {
		result.addWarning(fmt.Sprintf("Claim amount %.2f exceeds %.0f and may take longer to approve", candidate.TotalAmount(), WarnTotalAmount))
	}

	// Duplicate detection: same title (case-insensitive) within 7 days of an
	// existing claim by the same lecturer.
	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(other.Title), strings.TrimSpace(candidate.Title)) {
			continue
		}
		gap := candidate.Date.Sub(other.Date)
		if gap < 0 {
			gap = -gap
		}
		if gap <= DuplicateWindow {
			result.addError("A claim with the same title was already submitted within 7 days")
			break
		}
	}

	// Monthly cap over the candidate's calendar month
	monthTotal := candidate.TotalAmount()
	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		if other.Date.Year() == candidate.Date.Year() && other.Date.Month() == candidate.Date.Month() {
			monthTotal += other.TotalAmount()
		}
	}
	if monthTotal > MonthlyClaimCap {
		result.addError(fmt.Sprintf("Monthly claims total %.2f would exceed the %.0f cap", monthTotal, MonthlyClaimCap))
	}

	// Weekend advisory
	switch candidate.Date.Weekday() {
	case time.Saturday, time.Sunday:
		result.addWarning("Claim is dated on a weekend")
	}

	return result
}
