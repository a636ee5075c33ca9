package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcliao/feedback-engine/internal/evaluator"
	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/trigger"
)

func triggerIDs(cands []evaluator.Candidate) []string {
	var out []string
	for _, c := range cands {
		out = append(out, c.Definition.ID)
	}
	return out
}

func TestApplyDisplayPolicy(t *testing.T) {
	budget := Budget{MaxPerDay: 5, MaxUrgentPerDay: 2}

	tests := []struct {
		name  string
		cands []evaluator.Candidate
		sent  model.DailyCount
		want  []string
	}{
		{
			name:  "empty",
			cands: nil,
			want:  nil,
		},
		{
			name:  "fresh day caps urgent and total",
			cands: mixedCandidates(),
			want: []string{
				trigger.SleepChronicDeprivation,
				trigger.StressEscalating,
				trigger.SleepOversleeping,
				trigger.StressSourcePattern,
				trigger.SleepIrregularPattern,
			},
		},
		{
			name:  "urgent allowance spent",
			cands: mixedCandidates(),
			sent:  model.DailyCount{Total: 3, Urgent: 2},
			want: []string{
				trigger.SleepOversleeping,
				trigger.StressSourcePattern,
			},
		},
		{
			name:  "one urgent left",
			cands: mixedCandidates(),
			sent:  model.DailyCount{Total: 1, Urgent: 1},
			want: []string{
				trigger.SleepChronicDeprivation,
				trigger.SleepOversleeping,
				trigger.StressSourcePattern,
				trigger.SleepIrregularPattern,
			},
		},
		{
			name:  "day already full",
			cands: mixedCandidates(),
			sent:  model.DailyCount{Total: 5},
			want:  nil,
		},
		{
			name: "ties keep evaluator order",
			cands: []evaluator.Candidate{
				cand(trigger.HydrationChampion, nil),
				cand(trigger.StressImprovement, nil),
				cand(trigger.WeightHealthyLoss, nil),
			},
			want: []string{
				trigger.HydrationChampion,
				trigger.StressImprovement,
				trigger.WeightHealthyLoss,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyDisplayPolicy(tt.cands, tt.sent, budget)
			assert.Equal(t, tt.want, triggerIDs(got))
		})
	}
}

func TestApplyDisplayPolicyDoesNotReorderInput(t *testing.T) {
	in := mixedCandidates()
	before := triggerIDs(in)
	ApplyDisplayPolicy(in, model.DailyCount{}, Budget{MaxPerDay: 5, MaxUrgentPerDay: 2})
	assert.Equal(t, before, triggerIDs(in))
}
