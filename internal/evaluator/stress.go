package evaluator

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/stats"
	"github.com/rcliao/feedback-engine/internal/trigger"
)

// Stress tracks level, trend, weekly rhythm and the reported source.
type Stress struct{}

func (Stress) Category() model.Category { return model.CategoryStress }

func (Stress) Evaluate(w *Window) []Candidate {
	last7 := w.LastN(7)
	if len(last7) < 3 {
		return nil
	}
	last10 := w.LastN(10)
	last30 := w.LastN(30)
	var out proposals

	if escalating(head(last7, 5)) {
		out.add(trigger.StressEscalating, map[string]any{"count": 5})
	}

	high := stats.CountMeeting(last7, func(e model.HealthEntry) bool {
		return or(e.StressLevel(), 0) >= 7
	})
	if high >= 6 {
		out.add(trigger.StressChronicHigh, map[string]any{"count": high})
	}

	if avg := stats.Average(stats.Values(last7, stressLevel)); avg > 0 && avg < 3 {
		out.add(trigger.StressFreeWeek, map[string]any{"average": oneDecimal(avg)})
	}

	if inc, ok := mondaySpike(last30); ok {
		out.add(trigger.StressMondaySpike, map[string]any{"increase": oneDecimal(inc)})
	}

	wow := stats.WeekOverWeek(w.Entries, stressLevel, w.Now)
	if wow.LastWeek >= 6 && wow.ThisWeek > 0 && wow.ThisWeek <= 4 {
		out.add(trigger.StressImprovement, map[string]any{
			"previous": oneDecimal(wow.LastWeek),
			"current":  oneDecimal(wow.ThisWeek),
		})
	}

	src := stats.DetectDominantCategory(last10, func(e model.HealthEntry) string {
		return e.Stress.Source
	}, 0.7)
	if src.Detected {
		title := cases.Title(language.English).String(src.Category)
		out.add(trigger.StressSourcePattern, map[string]any{"source": title})
	}

	evening := stats.CountMeeting(last7, func(e model.HealthEntry) bool {
		return or(e.StressLevel(), 0) >= 6 && e.Stress.TimeOfDay == "evening"
	})
	if evening >= 5 {
		out.add(trigger.StressEvening, map[string]any{"count": evening})
	}

	return out
}

// escalating needs five newest-first entries whose levels never drop when
// read oldest to newest and whose trend is clearly upward.
func escalating(newest5 []model.HealthEntry) bool {
	if len(newest5) < 5 {
		return false
	}
	chrono := reversed(newest5)
	for i := 1; i < len(chrono); i++ {
		if or(chrono[i].StressLevel(), 0) < or(chrono[i-1].StressLevel(), 0) {
			return false
		}
	}
	return stats.Trend(stats.Values(chrono, stressLevel), 0.1) == stats.Increasing
}

// mondaySpike returns how far Monday stress sits above the weekend average.
func mondaySpike(entries []model.HealthEntry) (float64, bool) {
	res := stats.DetectDayOfWeekPattern(entries, stressLevel, stats.DefaultPatternOptions)
	monday, ok := res.Find(time.Monday)
	if !ok || !monday.IsHigher || monday.Deviation <= 0.3 {
		return 0, false
	}
	var weekend []*float64
	for _, e := range entries {
		if stats.IsWeekend(e.Date) {
			weekend = append(weekend, e.StressLevel())
		}
	}
	if len(stats.Present(weekend)) == 0 {
		return 0, false
	}
	inc := monday.Average - stats.Average(weekend)
	return inc, inc >= 3
}
