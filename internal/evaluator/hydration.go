package evaluator

import (
	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/stats"
	"github.com/rcliao/feedback-engine/internal/trigger"
)

// Hydration compares intake against the daily goal.
//
// hydration_pre_bedtime and hydration_weather_alert have no rule here: the
// entry records one daily total and there is no weather source.
type Hydration struct{}

func (Hydration) Category() model.Category { return model.CategoryHydration }

func (Hydration) Evaluate(w *Window) []Candidate {
	last7 := w.LastN(7)
	if len(last7) < 3 {
		return nil
	}
	last30 := w.LastN(30)
	var out proposals

	dry := stats.CountMeeting(head(last7, 5), func(e model.HealthEntry) bool {
		return e.WaterRatio() < 0.6
	})
	if dry >= 4 {
		out.add(trigger.HydrationConsistentDehydration, map[string]any{"count": dry})
	}

	met := stats.CountMeeting(last30, model.HealthEntry.WaterGoalMet)
	if met >= 28 {
		out.add(trigger.HydrationChampion, map[string]any{"count": met})
	}

	if hasSplit(last7, waterAmount) {
		weekday := stats.WeekdayAverage(last7, waterAmount)
		weekend := stats.WeekendAverage(last7, waterAmount)
		if weekday > 0 && weekend/weekday < 0.7 {
			out.add(trigger.HydrationWeekendDrop, map[string]any{"weekendPercent": percent(weekend / weekday)})
		}
	}

	if len(w.Entries) >= 2 {
		newer, older := w.Entries[0], w.Entries[1]
		if older.WaterRatio() < 0.5 && newer.WaterRatio() >= 1 {
			out.add(trigger.HydrationComeback, map[string]any{"yesterdayPercent": percent(older.WaterRatio())})
		}
	}

	if hour := w.Now.Hour(); hour >= 14 && hour < 17 {
		if today, ok := w.Today(); ok && today.WaterRatio() < 0.5 {
			out.add(trigger.HydrationAfternoonDip, map[string]any{"percentage": percent(today.WaterRatio())})
		}
	}

	return out
}
