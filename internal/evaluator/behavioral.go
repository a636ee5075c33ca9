package evaluator

import (
	"slices"

	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/stats"
	"github.com/rcliao/feedback-engine/internal/trigger"
)

var milestones = []int{7, 14, 30, 60, 90, 100, 180, 365}

// Behavioral nudges logging habits based on the time of day and streaks.
type Behavioral struct{}

func (Behavioral) Category() model.Category { return model.CategoryBehavioral }

func (Behavioral) Evaluate(w *Window) []Candidate {
	if len(w.Entries) == 0 {
		return nil
	}
	var out proposals
	hour := w.Now.Hour()
	today, logged := w.Today()

	if !logged && hour >= 12 && hour < 20 {
		if stats.IsWeekend(w.Now) {
			out.add(trigger.BehavioralWeekendForgot, nil)
		} else {
			out.add(trigger.BehavioralMorningMissed, nil)
		}
	}

	if !logged && hour >= 20 {
		if streak := w.Entries[0].StreakCount; streak >= 7 {
			out.add(trigger.BehavioralStreakRisk, map[string]any{"count": streak})
		}
	}

	if logged && slices.Contains(milestones, today.StreakCount) {
		out.add(trigger.BehavioralMilestone, map[string]any{"count": today.StreakCount})
	}

	if logged && hour >= 20 && hour < 22 && today.Stress.Level != nil && *today.Stress.Level >= 6 {
		out.add(trigger.BehavioralEveningWindDown, map[string]any{"level": *today.Stress.Level})
	}

	if w.Now.AddDate(0, 0, 1).Day() == 1 {
		out.add(trigger.BehavioralMonthlyReview, nil)
	}

	if last30 := w.LastN(30); len(last30) >= 25 {
		rate := stats.GoalCompletionRate(last30, waterGoal, waterAmount)
		if rate < 0.6 {
			out.add(trigger.BehavioralImprovementOpportunity, map[string]any{
				"trackingDays":   len(last30),
				"completionRate": percent(rate),
			})
		}
	}

	return out
}
