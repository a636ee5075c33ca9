package evaluator

import (
	"math"

	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/stats"
	"github.com/rcliao/feedback-engine/internal/trigger"
)

// Achievement celebrates sustained good days and badges.
type Achievement struct{}

func (Achievement) Category() model.Category { return model.CategoryAchievement }

func (Achievement) Evaluate(w *Window) []Candidate {
	if len(w.Entries) == 0 {
		return nil
	}
	last7 := w.LastN(7)
	last10 := w.LastN(10)
	last30 := w.LastN(30)
	var out proposals

	if today, ok := w.Today(); ok && perfectDay(today) {
		out.add(trigger.AchievementPerfectDay, nil)
	}

	if len(last7) >= 7 && stats.CountMeeting(last7, perfectDay) == len(last7) {
		out.add(trigger.AchievementPerfectWeek, nil)
	}

	// Only reachable when the engine loads a 90-day window.
	if last90 := w.LastN(90); len(last90) >= 80 {
		if met := stats.CountMeeting(last90, model.HealthEntry.WaterGoalMet); met >= 80 {
			out.add(trigger.AchievementHydrationHero, map[string]any{"count": met})
		}
	}

	if len(last30) >= 28 {
		if avg := stats.Average(stats.Values(last30, stressLevel)); avg > 0 && avg < 3.5 {
			out.add(trigger.AchievementStressWarrior, nil)
		}
		if complete := stats.CountMeeting(last30, model.HealthEntry.IsComplete); complete >= 28 {
			out.add(trigger.AchievementDataEnthusiast, map[string]any{"count": complete})
		}
	}

	early := stats.CountMeeting(last10, func(e model.HealthEntry) bool {
		if e.Sleep.WakeTime == nil {
			return false
		}
		h := e.Sleep.WakeTime.In(w.Now.Location()).Hour()
		return h >= 5 && h < 7
	})
	if early >= 7 {
		out.add(trigger.AchievementEarlyBird, map[string]any{"count": early})
	}

	score := stats.WeekOverWeek(w.Entries, healthScore, w.Now)
	if score.Both() && score.LastWeek <= 40 && score.ThisWeek >= 70 {
		out.add(trigger.AchievementComeback, map[string]any{
			"previousScore": int(math.Round(score.LastWeek)),
			"currentScore":  int(math.Round(score.ThisWeek)),
		})
	}

	return out
}

// healthScore is 0-100: a third each for the perfect-day sleep, water and
// stress criteria. Days with none of the three logged have no score.
func healthScore(e model.HealthEntry) *float64 {
	if e.SleepHours() == nil && e.WaterAmount() == nil && e.StressLevel() == nil {
		return nil
	}
	var met float64
	if h := or(e.SleepHours(), 0); h >= 7 && h <= 9 {
		met++
	}
	if e.WaterGoalMet() {
		met++
	}
	if or(e.StressLevel(), 10) < 4 {
		met++
	}
	s := met / 3 * 100
	return &s
}
