package service

import (
	"sort"
	"time"

	"github.com/lwazim/claim-workflow/internal/domain/entity"
)

// Priority scoring weights. The score only orders the pending queue; it is
// recomputed on every listing, never treated as stored ground truth.
const (
	priorityBase      = 1
	priorityAgeOver7d = 2
	priorityAgeOver3d = 1
	priorityAmount1k  = 1
	priorityAmount2k  = 1
	priorityDocument  = 1

	// HighPriorityThreshold marks claims that surface on the dashboard.
	HighPriorityThreshold = 3
)

// PriorityScorer computes heuristic queue-ordering scores for pending claims.
type PriorityScorer struct {
	now func() time.Time
}

// NewPriorityScorer creates a scorer using the wall clock.
func NewPriorityScorer() *PriorityScorer {
	return &PriorityScorer{now: time.Now}
}

// NewPriorityScorerAt creates a scorer with a fixed clock, for tests.
func NewPriorityScorerAt(now func() time.Time) *PriorityScorer {
	return &PriorityScorer{now: now}
}

// Score computes the priority for a single claim.
func (s *PriorityScorer) Score(claim *entity.Claim, hasDocument bool) int {
	score := priorityBase

	age := claim.Age(s.now())
	switch {
	case age > 7*24*time.Hour:
		score += priorityAgeOver7d
	case age > 3*24*time.Hour:
		score += priorityAgeOver3d
	}

	amount := claim.TotalAmount()
	if amount > 1000 {
		score += priorityAmount1k
	}
	if amount > 2000 {
		score += priorityAmount2k
	}

	if hasDocument {
		score += priorityDocument
	}

	return score
}

// Prioritize scores every claim, writes the score onto the claim's priority
// field, and returns the claims ordered by descending priority. Ties break
// by ascending creation date so long-waiting claims surface first.
func (s *PriorityScorer) Prioritize(claims []*entity.Claim, hasDocument map[int64]bool) []*entity.Claim {
	for _, c := range claims {
		c.Priority = s.Score(c, hasDocument[c.ID])
	}

	sort.SliceStable(claims, func(i, j int) bool {
		if claims[i].Priority != claims[j].Priority {
			return claims[i].Priority > claims[j].Priority
		}
		return claims[i].CreatedDate.Before(claims[j].CreatedDate)
	})

	return claims
}
