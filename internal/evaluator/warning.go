package evaluator

import (
	"math"

	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/stats"
	"github.com/rcliao/feedback-engine/internal/trigger"
)

// Warning raises combined red flags that no single category covers.
type Warning struct{}

func (Warning) Category() model.Category { return model.CategoryWarning }

func (Warning) Evaluate(w *Window) []Candidate {
	var out proposals

	// Inspects only the newest entry, so it runs even when the last week is empty.
	if newest, ok := w.Newest(); ok {
		days := stats.DaysBetween(newest.Date, w.Now)
		if days >= 7 && newest.StreakCount >= 30 {
			out.add(trigger.WarningMissedLogging, map[string]any{
				"days":        days,
				"streakCount": newest.StreakCount,
			})
		}
	}

	last7 := w.LastN(7)
	if len(last7) < 5 {
		return out
	}

	flags := 0
	if stats.CountMeeting(last7, func(e model.HealthEntry) bool { return or(e.SleepHours(), 99) < 6 }) >= 5 {
		flags++
	}
	if stats.CountMeeting(last7, func(e model.HealthEntry) bool { return or(e.StressLevel(), 0) >= 7 }) >= 5 {
		flags++
	}
	if stats.CountMeeting(last7, func(e model.HealthEntry) bool { return e.WaterRatio() < 0.5 }) >= 5 {
		flags++
	}
	if flags >= 2 {
		out.add(trigger.WarningMultipleRedFlags, nil)
	}

	sleep := stats.WeekOverWeek(w.Entries, sleepHours, w.Now)
	stress := stats.WeekOverWeek(w.Entries, stressLevel, w.Now)
	hydration := stats.WeekOverWeek(w.Entries, hydrationPercent, w.Now)
	if sleep.Change < -1 && stress.Change > 2 && hydration.PercentageChange < -0.3 {
		out.add(trigger.WarningDecliningMetrics, map[string]any{
			"sleepChange":     oneDecimal(math.Abs(sleep.Change)),
			"stressChange":    oneDecimal(stress.Change),
			"hydrationChange": int(math.Abs(float64(percent(hydration.PercentageChange)))),
		})
	}

	return out
}

func hydrationPercent(e model.HealthEntry) *float64 {
	p := e.WaterRatio() * 100
	return &p
}
