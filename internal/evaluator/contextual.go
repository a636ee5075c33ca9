package evaluator

import (
	"time"

	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/stats"
	"github.com/rcliao/feedback-engine/internal/trigger"
)

// Contextual reacts to the calendar and recent mood reports.
type Contextual struct{}

func (Contextual) Category() model.Category { return model.CategoryContextual }

func (Contextual) Evaluate(w *Window) []Candidate {
	var out proposals
	now := w.Now

	if stats.IsWithinMonthDayRange(now, time.November, 20, time.December, 31) {
		out.add(trigger.ContextualHoliday, nil)
	}

	if now.Month() == time.January && now.Day() <= 15 {
		if newest, ok := w.Newest(); ok && newest.StreakCount >= 7 {
			out.add(trigger.ContextualNewYear, map[string]any{"count": newest.StreakCount})
		}
	}

	if stats.IsNearDaylightSavingTransition(now, 3) {
		for _, e := range head(w.Entries, 3) {
			if e.Sleep.Quality.Low() {
				out.add(trigger.ContextualDST, nil)
				break
			}
		}
	}

	gloomy := stats.CountMeeting(stats.WithinLastNDays(w.Moods, 3, now), func(m model.MoodCheckin) bool {
		return m.HasFactor("weather") && m.Value <= 2
	})
	if gloomy >= 3 {
		out.add(trigger.ContextualRainy, nil)
	}

	return out
}
