// Package evaluator turns a user's recent history into trigger candidates.
//
// Each category has its own Evaluator. Evaluators are pure: they read a
// Window and return candidates without touching storage. Cooldowns, caps and
// persistence are the engine's job.
package evaluator

import (
	"math"
	"strconv"
	"time"

	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/stats"
	"github.com/rcliao/feedback-engine/internal/trigger"
)

// Candidate is a trigger the evaluator wants to fire, with the values for
// its template placeholders.
type Candidate struct {
	Definition trigger.Definition
	Data       map[string]any
}

// Evaluator proposes candidates for one category.
type Evaluator interface {
	Category() model.Category
	Evaluate(w *Window) []Candidate
}

// Window is the data an evaluation run reasons about.
type Window struct {
	UserID string
	// Now is the evaluation instant in the user's location.
	Now time.Time
	// Entries and Moods are sorted newest first.
	Entries []model.HealthEntry
	Moods   []model.MoodCheckin
	Profile *model.Profile
}

// LastN returns the entries dated within the last n days.
func (w *Window) LastN(n int) []model.HealthEntry {
	return stats.WithinLastNDays(w.Entries, n, w.Now)
}

// Today returns the entry for the current day, if one exists.
func (w *Window) Today() (model.HealthEntry, bool) {
	for _, e := range w.Entries {
		if stats.SameDay(w.Now, e.Date) {
			return e, true
		}
	}
	return model.HealthEntry{}, false
}

// Newest returns the most recent entry, if any.
func (w *Window) Newest() (model.HealthEntry, bool) {
	if len(w.Entries) == 0 {
		return model.HealthEntry{}, false
	}
	return w.Entries[0], true
}

// Default returns one evaluator per category in evaluation order.
func Default() []Evaluator {
	return []Evaluator{
		Sleep{},
		Hydration{},
		Stress{},
		Weight{},
		Correlation{},
		Behavioral{},
		Achievement{},
		Warning{},
		Contextual{},
	}
}

// proposals collects candidates by trigger id.
type proposals []Candidate

func (p *proposals) add(id string, data map[string]any) {
	*p = append(*p, Candidate{Definition: trigger.MustByID(id), Data: data})
}

// kgPerLb converts the pound-based thresholds the message copy uses.
const kgPerLb = 0.45

func head[T any](xs []T, n int) []T {
	if len(xs) < n {
		return xs
	}
	return xs[:n]
}

func reversed[T any](xs []T) []T {
	out := make([]T, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}

func or(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

func sleepHours(e model.HealthEntry) *float64  { return e.SleepHours() }
func stressLevel(e model.HealthEntry) *float64 { return e.StressLevel() }
func weightValue(e model.HealthEntry) *float64 { return e.WeightValue() }
func waterAmount(e model.HealthEntry) *float64 { return e.WaterAmount() }
func sleepQuality(e model.HealthEntry) *float64 {
	return e.Sleep.Quality.Score()
}

// waterGoal falls back to the default goal so completion rates count every day.
func waterGoal(e model.HealthEntry) *float64 {
	if g := e.WaterGoal(); g != nil {
		return g
	}
	return stats.F(model.DefaultWaterGoal)
}

// hasSplit reports whether get has a present value on at least one weekday
// and one weekend day.
func hasSplit(entries []model.HealthEntry, get func(model.HealthEntry) *float64) bool {
	var weekday, weekend bool
	for _, e := range entries {
		if get(e) == nil {
			continue
		}
		if stats.IsWeekend(e.Date) {
			weekend = true
		} else {
			weekday = true
		}
	}
	return weekday && weekend
}

// perfectDay is 7-9h sleep, water at goal and stress under 4.
func perfectDay(e model.HealthEntry) bool {
	h := or(e.SleepHours(), 0)
	return h >= 7 && h <= 9 && e.WaterGoalMet() && or(e.StressLevel(), 10) < 4
}
