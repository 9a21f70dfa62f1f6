package service

import (
	"strings"
	"testing"
	"time"

	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

// fixedNow is a Tuesday so weekday checks are deterministic.
var fixedNow = time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)

func newTestValidator() *ClaimValidator {
	return NewClaimValidatorAt(func() time.Time { return fixedNow })
}

func validCandidate() *entity.Claim {
	return &entity.Claim{
		Title:       "March tutorials",
		HoursWorked: 20,
		HourlyRate:  50,
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), // Monday
	}
}

func TestValidate_AcceptsValidClaim(t *testing.T) {
	result := newTestValidator().Validate(validCandidate(), nil)
	if !result.Valid {
		t.Fatalf("valid claim rejected: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *entity.Claim)
		wantMsg string
	}{
		{
			name:    "missing title",
			mutate:  func(c *entity.Claim) { c.Title = "   " },
			wantMsg: "Title is required",
		},
		{
			name:    "future date",
			mutate:  func(c *entity.Claim) { c.Date = fixedNow.Add(48 * time.Hour) },
			wantMsg: "future",
		},
		{
			name:    "zero hours",
			mutate:  func(c *entity.Claim) { c.HoursWorked = 0 },
			wantMsg: "greater than zero",
		},
		{
			name:    "hours above cap",
			mutate:  func(c *entity.Claim) { c.HoursWorked = 1001 },
			wantMsg: "cannot exceed 1000",
		},
		{
			name:    "rate below minimum",
			mutate:  func(c *entity.Claim) { c.HourlyRate = 9.99 },
			wantMsg: "between 10 and 500",
		},
		{
			name:    "rate above maximum",
			mutate:  func(c *entity.Claim) { c.HourlyRate = 500.01 },
			wantMsg: "between 10 and 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validCandidate()
			tt.mutate(candidate)
			result := newTestValidator().Validate(candidate, nil)
			if result.Valid {
				t.Fatal("expected validation to fail")
			}
			if !containsMessage(result.Errors, tt.wantMsg) {
				t.Errorf("errors %v do not mention %q", result.Errors, tt.wantMsg)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	candidate := validCandidate()
	candidate.Title = ""
	candidate.HoursWorked = -1
	candidate.HourlyRate = 5

	result := newTestValidator().Validate(candidate, nil)
	if result.Valid {
		t.Fatal("expected validation to fail")
	}
	if len(result.Errors) != 3 {
		t.Errorf("got %d errors %v, want all 3 collected", len(result.Errors), result.Errors)
	}
}

func TestValidate_Warnings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *entity.Claim)
		wantMsg string
	}{
		{
			name:    "high hours",
			mutate:  func(c *entity.Claim) { c.HoursWorked = 150; c.HourlyRate = 10 },
			wantMsg: "Hours worked above 100",
		},
		{
			name:    "high rate",
			mutate:  func(c *entity.Claim) { c.HourlyRate = 350 },
			wantMsg: "Hourly rate above 300",
		},
		{
			name:    "high total amount",
			mutate:  func(c *entity.Claim) { c.HoursWorked = 30; c.HourlyRate = 200 },
			wantMsg: "may take longer to approve",
		},
		{
			name: "weekend date",
			mutate: func(c *entity.Claim) {
				c.Date = time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC) // Saturday
			},
			wantMsg: "weekend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validCandidate()
			tt.mutate(candidate)
			result := newTestValidator().Validate(candidate, nil)
			if !result.Valid {
				t.Fatalf("warnings must not block submission: %v", result.Errors)
			}
			if !containsMessage(result.Warnings, tt.wantMsg) {
				t.Errorf("warnings %v do not mention %q", result.Warnings, tt.wantMsg)
			}
		})
	}
}

func TestValidate_DuplicateWindow(t *testing.T) {
	tests := []struct {
		name      string
		otherDate time.Time
		otherTitle string
		wantDup   bool
	}{
		{
			name:       "same title within window",
			otherDate:  time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC),
			otherTitle: "March tutorials",
			wantDup:    true,
		},
		{
			name:       "case-insensitive match",
			otherDate:  time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
			otherTitle: "  MARCH TUTORIALS ",
			wantDup:    true,
		},
		{
			name:       "same title outside window",
			otherDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			otherTitle: "March tutorials",
			wantDup:    false,
		},
		{
			name:       "different title within window",
			otherDate:  time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
			otherTitle: "Marking scripts",
			wantDup:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := []*entity.Claim{{
				ID:          9,
				Title:       tt.otherTitle,
				HoursWorked: 1,
				HourlyRate:  10,
				Date:        tt.otherDate,
			}}
			result := newTestValidator().Validate(validCandidate(), existing)
			gotDup := containsMessage(result.Errors, "within 7 days")
			if gotDup != tt.wantDup {
				t.Errorf("duplicate detected = %v, want %v (errors: %v)", gotDup, tt.wantDup, result.Errors)
			}
		})
	}
}

func TestValidate_MonthlyCap(t *testing.T) {
	// Existing claims this month total 9500; a 1000 candidate breaches the cap.
	existing := []*entity.Claim{
		{ID: 1, Title: "Week one", HoursWorked: 100, HourlyRate: 50, Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Week two", HoursWorked: 90, HourlyRate: 50, Date: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)},
	}

	candidate := validCandidate() // 1000

	result := newTestValidator().Validate(candidate, existing)
	if result.Valid {
		t.Fatal("expected monthly cap breach to fail validation")
	}
	if !containsMessage(result.Errors, "cap") {
		t.Errorf("errors %v do not mention the monthly cap", result.Errors)
	}

	// The same candidate in another month passes.
	candidate.Date = time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	result = newTestValidator().Validate(candidate, existing)
	if containsMessage(result.Errors, "cap") {
		t.Errorf("cap applied across months: %v", result.Errors)
	}
}

func containsMessage(msgs []string, want string) bool {
	for _, m := range msgs {
		if strings.Contains(m, want) {
			return true
		}
	}
	return false
}
