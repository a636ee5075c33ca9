package engine

import (
	"cmp"
	"slices"

	"github.com/rcliao/feedback-engine/internal/evaluator"
	"github.com/rcliao/feedback-engine/internal/model"
)

// Budget is the per-day display allowance.
type Budget struct {
	MaxPerDay       int
	MaxUrgentPerDay int
}

// ApplyDisplayPolicy orders candidates by priority, highest first, keeping
// evaluator order among equals, and admits them until today's remaining
// total or urgent allowance runs out. Urgent candidates over their cap are
// skipped so lower priorities can still fill the day.
func ApplyDisplayPolicy(cands []evaluator.Candidate, sent model.DailyCount, b Budget) []evaluator.Candidate {
	sorted := slices.Clone(cands)
	slices.SortStableFunc(sorted, func(a, b evaluator.Candidate) int {
		return cmp.Compare(b.Definition.Priority, a.Definition.Priority)
	})

	remaining := b.MaxPerDay - sent.Total
	urgentRemaining := b.MaxUrgentPerDay - sent.Urgent

	var out []evaluator.Candidate
	urgent := 0
	for _, c := range sorted {
		if len(out) >= remaining {
			break
		}
		if c.Definition.Urgent() {
			if urgent >= urgentRemaining {
				continue
			}
			urgent++
		}
		out = append(out, c)
	}
	return out
}
