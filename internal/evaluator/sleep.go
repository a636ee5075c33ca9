package evaluator

import (
	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/stats"
	"github.com/rcliao/feedback-engine/internal/trigger"
)

// Sleep looks at duration, regularity and self-reported quality.
type Sleep struct{}

func (Sleep) Category() model.Category { return model.CategorySleep }

func (Sleep) Evaluate(w *Window) []Candidate {
	last7 := w.LastN(7)
	if len(last7) < 3 {
		return nil
	}
	var out proposals

	short := stats.CountMeeting(last7, func(e model.HealthEntry) bool {
		return or(e.SleepHours(), 99) < 6
	})
	if short >= 5 {
		out.add(trigger.SleepChronicDeprivation, map[string]any{"count": short})
	}

	healthy := stats.Streak(last7, func(e model.HealthEntry) bool {
		h := or(e.SleepHours(), 0)
		return h >= 7 && h <= 9
	})
	if healthy >= 7 {
		out.add(trigger.SleepExcellentStreak, nil)
	}

	if sd := stats.StandardDeviation(stats.Values(last7, sleepHours)); sd > 2 {
		out.add(trigger.SleepIrregularPattern, map[string]any{"stdDev": oneDecimal(sd)})
	}

	over := stats.Streak(last7, func(e model.HealthEntry) bool {
		return or(e.SleepHours(), 0) > 10
	})
	if over >= 3 {
		out.add(trigger.SleepOversleeping, map[string]any{"count": over})
	}

	wow := stats.WeekOverWeek(w.Entries, sleepHours, w.Now)
	if wow.Change >= 1 && wow.LastWeek > 0 {
		out.add(trigger.SleepImprovingTrend, map[string]any{"change": oneDecimal(wow.Change)})
	}

	if hasSplit(last7, sleepHours) {
		extra := stats.WeekendAverage(last7, sleepHours) - stats.WeekdayAverage(last7, sleepHours)
		if extra >= 2 {
			out.add(trigger.SleepWeekendCatchUp, map[string]any{"extraHours": oneDecimal(extra)})
		}
	}

	lowQuality := stats.CountMeeting(last7, func(e model.HealthEntry) bool {
		return or(e.SleepHours(), 0) >= 7 && e.Sleep.Quality.Low()
	})
	if lowQuality >= 3 {
		out.add(trigger.SleepLowQuality, map[string]any{"count": lowQuality})
	}

	if q := stats.WeekOverWeek(w.Entries, sleepQuality, w.Now); q.Both() && q.Change >= 1 {
		out.add(trigger.SleepQualityImprovement, nil)
	}

	return out
}
