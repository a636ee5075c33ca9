package evaluator

import (
	"fmt"
	"math"

	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/stats"
	"github.com/rcliao/feedback-engine/internal/trigger"
)

// Weight watches the rate of change against safe-loss bounds and the
// profile's target weight. Values are kg; message copy is in pounds.
type Weight struct{}

func (Weight) Category() model.Category { return model.CategoryWeight }

func (Weight) Evaluate(w *Window) []Candidate {
	last7 := w.LastN(7)
	if len(last7) < 3 {
		return nil
	}
	last30 := w.LastN(30)
	weighed := weighedEntries(last30)
	if len(weighed) < 3 {
		return nil
	}
	var out proposals

	wow := stats.WeekOverWeek(w.Entries, weightValue, w.Now)
	rapidLoss := wow.Both() && wow.Change < -2*kgPerLb
	if rapidLoss {
		out.add(trigger.WeightRapidLoss, map[string]any{"rate": 2})
	}

	current := *weighed[0].Weight.Value
	weekAgo := *weighed[min(6, len(weighed)-1)].Weight.Value
	if gain := current - weekAgo; gain > 5*kgPerLb {
		out.add(trigger.WeightRapidGain, map[string]any{"amount": oneDecimal(gain / kgPerLb)})
	}

	if w.Profile != nil && w.Profile.TargetWeight != nil {
		if math.Abs(current-*w.Profile.TargetWeight) <= 2*kgPerLb {
			out.add(trigger.WeightGoalAchieved, nil)
		}
	}

	if len(last30) >= 21 {
		threeWeeks := stats.Values(last30[:21], weightValue)
		if len(stats.Present(threeWeeks)) >= 3 && stats.StandardDeviation(threeWeeks) < kgPerLb {
			out.add(trigger.WeightPlateau, nil)
		}
	}

	if len(weighed) >= 25 {
		out.add(trigger.WeightConsistentTracking, map[string]any{"count": len(weighed)})
	}

	oldest := weighed[len(weighed)-1]
	loss := *oldest.Weight.Value - current
	span := stats.DaysBetween(oldest.Date, weighed[0].Date)
	if !rapidLoss && span >= 21 && loss >= 2*kgPerLb && loss <= 8*kgPerLb {
		out.add(trigger.WeightHealthyLoss, map[string]any{"amount": fmt.Sprintf("%s lbs", oneDecimal(loss/kgPerLb))})
	}

	if diff, ok := weekendWeightGain(weighed); ok && diff >= kgPerLb {
		out.add(trigger.WeightWeekendFluctuation, map[string]any{"amount": oneDecimal(diff / kgPerLb)})
	}

	return out
}

func weighedEntries(entries []model.HealthEntry) []model.HealthEntry {
	var out []model.HealthEntry
	for _, e := range entries {
		if e.Weight.Value != nil {
			out = append(out, e)
		}
	}
	return out
}

// weekendWeightGain is the weekend mean minus the weekday mean. It needs at
// least two weekend weigh-ins.
func weekendWeightGain(weighed []model.HealthEntry) (float64, bool) {
	weekend := stats.CountMeeting(weighed, func(e model.HealthEntry) bool { return stats.IsWeekend(e.Date) })
	if weekend < 2 || weekend == len(weighed) {
		return 0, false
	}
	return stats.WeekendAverage(weighed, weightValue) - stats.WeekdayAverage(weighed, weightValue), true
}
