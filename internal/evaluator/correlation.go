package evaluator

import (
	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/stats"
	"github.com/rcliao/feedback-engine/internal/trigger"
)

// Correlation looks for metrics moving together across days.
type Correlation struct{}

func (Correlation) Category() model.Category { return model.CategoryCorrelation }

func (Correlation) Evaluate(w *Window) []Candidate {
	last7 := w.LastN(7)
	if len(last7) < 5 {
		return nil
	}
	last10 := w.LastN(10)
	last30 := w.LastN(30)
	var out proposals

	tiredStressed := stats.CountMeeting(head(last7, 5), func(e model.HealthEntry) bool {
		return or(e.SleepHours(), 99) < 6 && or(e.StressLevel(), 0) >= 7
	})
	if tiredStressed >= 4 {
		out.add(trigger.CorrelationSleepStress, map[string]any{"count": tiredStressed})
	}

	dryStressed := stats.CountMeeting(last7, func(e model.HealthEntry) bool {
		return e.WaterRatio() < 0.6 && or(e.StressLevel(), 0) >= 6
	})
	if dryStressed >= 5 {
		out.add(trigger.CorrelationHydrationStress, nil)
	}

	rested := stats.CountMeeting(last7, func(e model.HealthEntry) bool {
		return or(e.SleepHours(), 0) >= 7.5 && or(e.StressLevel(), 10) < 3
	})
	if rested >= 6 {
		out.add(trigger.CorrelationGoodCombo, map[string]any{"count": rested})
	}

	if hasSplit(last7, stressLevel) && hasSplit(last7, sleepHours) {
		weekdayStress := stats.WeekdayAverage(last7, stressLevel)
		weekendStress := stats.WeekendAverage(last7, stressLevel)
		extraSleep := stats.WeekendAverage(last7, sleepHours) - stats.WeekdayAverage(last7, sleepHours)
		if weekdayStress > 6 && weekendStress > 0 && weekendStress < 4 && extraSleep >= 2 {
			out.add(trigger.CorrelationWeekendRecovery, map[string]any{"weekdayStress": oneDecimal(weekdayStress)})
		}
	}

	hydratedRested := stats.CountMeeting(last10, func(e model.HealthEntry) bool {
		return e.WaterGoalMet() && e.Sleep.Quality.High()
	})
	if hydratedRested >= 8 {
		out.add(trigger.CorrelationHydrationSleep, map[string]any{"count": hydratedRested})
	}

	pairs := stats.CountMeeting(last30, func(e model.HealthEntry) bool {
		return e.SleepHours() != nil && e.WeightValue() != nil
	})
	if pairs >= 10 {
		r := stats.Correlation(stats.Values(last30, sleepHours), stats.Values(last30, weightValue))
		if r <= -0.5 {
			out.add(trigger.CorrelationWeightSleep, nil)
		}
	}

	return out
}
