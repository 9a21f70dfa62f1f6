package service

import (
	"testing"
	"time"

	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

func newTestScorer() *PriorityScorer {
	return NewPriorityScorerAt(func() time.Time {
		return time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	})
}

func scoredClaim(id int64, ageDays int, hours, rate float64) *entity.Claim {
	created := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC).AddDate(0, 0, -ageDays)
	return &entity.Claim{
		ID:          id,
		HoursWorked: hours,
		HourlyRate:  rate,
		Status:      entity.StatusPending,
		CreatedDate: created,
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		ageDays int
		hours   float64
		rate    float64
		hasDoc  bool
		want    int
	}{
		{"fresh small claim", 0, 2, 50, false, 1},
		{"four days old", 4, 2, 50, false, 2},
		{"over a week old", 8, 2, 50, false, 3},
		{"amount over 1000", 0, 30, 50, false, 2},
		{"amount over 2000", 0, 50, 50, false, 3},
		{"with document", 0, 2, 50, true, 2},
		{"old large documented claim", 10, 50, 50, true, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := scoredClaim(1, tt.ageDays, tt.hours, tt.rate)
			got := newTestScorer().Score(claim, tt.hasDoc)
			if got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPrioritize_OrderAndTieBreak(t *testing.T) {
	older := scoredClaim(1, 5, 2, 50)  // score 2
	newer := scoredClaim(2, 4, 2, 50)  // score 2, created later
	urgent := scoredClaim(3, 10, 50, 50) // score 5

	ordered := newTestScorer().Prioritize([]*entity.Claim{newer, older, urgent}, nil)

	wantIDs := []int64{3, 1, 2}
	for i, want := range wantIDs {
		if ordered[i].ID != want {
			t.Errorf("position %d: got claim %d, want %d", i, ordered[i].ID, want)
		}
	}

	// Scores are written back onto the claims.
	if urgent.Priority != 5 {
		t.Errorf("urgent priority = %d, want 5", urgent.Priority)
	}
	if older.Priority != 2 || newer.Priority != 2 {
		t.Errorf("tie priorities = %d, %d, want 2, 2", older.Priority, newer.Priority)
	}
}
