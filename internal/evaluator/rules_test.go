package evaluator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/stats"
	"github.com/rcliao/feedback-engine/internal/trigger"
)

func TestSleepChronicDeprivation(t *testing.T) {
	hours := []float64{5, 5.5, 5, 4, 5.5, 6, 5}
	var entries []model.HealthEntry
	for i, h := range hours {
		entries = append(entries, entry(wednesday, i+2, sleep(h)))
	}
	// The oldest row falls outside the seven day window.
	w := &Window{Now: wednesday, Entries: entries}

	c, ok := find(Sleep{}.Evaluate(w), trigger.SleepChronicDeprivation)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"count": 5}, c.Data)
}

func TestSleepStreaksAndSpread(t *testing.T) {
	var good []model.HealthEntry
	for i := 0; i < 7; i++ {
		good = append(good, entry(wednesday, i, sleep(8)))
	}
	got := Sleep{}.Evaluate(&Window{Now: wednesday, Entries: good})
	assert.Equal(t, []string{trigger.SleepExcellentStreak}, ids(got))

	erratic := []model.HealthEntry{
		entry(wednesday, 0, sleep(11)),
		entry(wednesday, 1, sleep(11)),
		entry(wednesday, 2, sleep(11)),
		entry(wednesday, 3, sleep(4)),
		entry(wednesday, 4, sleep(4)),
	}
	got = Sleep{}.Evaluate(&Window{Now: wednesday, Entries: erratic})
	over, ok := find(got, trigger.SleepOversleeping)
	require.True(t, ok)
	assert.Equal(t, 3, over.Data["count"])
	irr, ok := find(got, trigger.SleepIrregularPattern)
	require.True(t, ok)
	assert.Equal(t, "3.4", irr.Data["stdDev"])
}

func TestSleepLowQualityDespiteDuration(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 4; i++ {
		entries = append(entries, entry(wednesday, i, sleep(8), quality(model.SleepFair)))
	}
	c, ok := find(Sleep{}.Evaluate(&Window{Now: wednesday, Entries: entries}), trigger.SleepLowQuality)
	require.True(t, ok)
	assert.Equal(t, 4, c.Data["count"])
}

func TestSleepImprovingTrend(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 14; i++ {
		h := 6.0
		if i < 7 {
			h = 7.5
		}
		entries = append(entries, entry(wednesday, i, sleep(h)))
	}
	c, ok := find(Sleep{}.Evaluate(&Window{Now: wednesday, Entries: entries}), trigger.SleepImprovingTrend)
	require.True(t, ok)
	assert.Equal(t, "1.5", c.Data["change"])
}

func TestHydrationChampion(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 30; i++ {
		ml := 2000.0
		if i == 10 || i == 20 {
			ml = 500
		}
		entries = append(entries, entry(wednesday, i, water(ml)))
	}
	c, ok := find(Hydration{}.Evaluate(&Window{Now: wednesday, Entries: entries}), trigger.HydrationChampion)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"count": 28}, c.Data)
}

func TestHydrationDehydrationUsesNewestFive(t *testing.T) {
	entries := []model.HealthEntry{
		entry(wednesday, 0, water(500)),
		entry(wednesday, 1, water(500)),
		entry(wednesday, 2, water(2000)),
		entry(wednesday, 3, water(500)),
		entry(wednesday, 4),
		entry(wednesday, 5, water(500)),
		entry(wednesday, 6, water(500)),
	}
	c, ok := find(Hydration{}.Evaluate(&Window{Now: wednesday, Entries: entries}), trigger.HydrationConsistentDehydration)
	require.True(t, ok)
	assert.Equal(t, 4, c.Data["count"])
}

func TestHydrationComebackAndAfternoonDip(t *testing.T) {
	entries := []model.HealthEntry{
		entry(wednesday, 0, water(2100)),
		entry(wednesday, 1, water(800)),
		entry(wednesday, 2, water(1500)),
	}
	c, ok := find(Hydration{}.Evaluate(&Window{Now: wednesday, Entries: entries}), trigger.HydrationComeback)
	require.True(t, ok)
	assert.Equal(t, 40, c.Data["yesterdayPercent"])

	afternoon := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)
	entries[0] = entry(afternoon, 0, water(700))
	c, ok = find(Hydration{}.Evaluate(&Window{Now: afternoon, Entries: entries}), trigger.HydrationAfternoonDip)
	require.True(t, ok)
	assert.Equal(t, 35, c.Data["percentage"])

	_, ok = find(Hydration{}.Evaluate(&Window{Now: wednesday, Entries: entries}), trigger.HydrationAfternoonDip)
	assert.False(t, ok, "only in the afternoon")
}

func TestStressEscalatingNeedsChronologicalRise(t *testing.T) {
	rising := []model.HealthEntry{
		entry(wednesday, 0, stress(8)),
		entry(wednesday, 1, stress(7)),
		entry(wednesday, 2, stress(6)),
		entry(wednesday, 3, stress(5)),
		entry(wednesday, 4, stress(4)),
	}
	c, ok := find(Stress{}.Evaluate(&Window{Now: wednesday, Entries: rising}), trigger.StressEscalating)
	require.True(t, ok)
	assert.Equal(t, 5, c.Data["count"])

	falling := []model.HealthEntry{
		entry(wednesday, 0, stress(4)),
		entry(wednesday, 1, stress(5)),
		entry(wednesday, 2, stress(6)),
		entry(wednesday, 3, stress(7)),
		entry(wednesday, 4, stress(8)),
	}
	_, ok = find(Stress{}.Evaluate(&Window{Now: wednesday, Entries: falling}), trigger.StressEscalating)
	assert.False(t, ok)
}

func TestStressSourcePatternIsTitleCased(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 10; i++ {
		src := "work"
		if i >= 8 {
			src = "personal"
		}
		entries = append(entries, entry(wednesday, i, stress(5), source(src)))
	}
	c, ok := find(Stress{}.Evaluate(&Window{Now: wednesday, Entries: entries}), trigger.StressSourcePattern)
	require.True(t, ok)
	assert.Equal(t, "Work", c.Data["source"])
}

func TestStressImprovementAndFreeWeek(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 14; i++ {
		level := 7
		if i < 7 {
			level = 2
		}
		entries = append(entries, entry(wednesday, i, stress(level)))
	}
	got := Stress{}.Evaluate(&Window{Now: wednesday, Entries: entries})

	imp, ok := find(got, trigger.StressImprovement)
	require.True(t, ok)
	assert.Equal(t, "7.0", imp.Data["previous"])
	assert.Equal(t, "2.0", imp.Data["current"])

	free, ok := find(got, trigger.StressFreeWeek)
	require.True(t, ok)
	assert.Equal(t, "2.0", free.Data["average"])
}

func TestStressMondaySpike(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 28; i++ {
		d := stats.StartOfDay(wednesday).AddDate(0, 0, -i)
		level := 4
		switch d.Weekday() {
		case time.Monday:
			level = 9
		case time.Saturday, time.Sunday:
			level = 2
		}
		entries = append(entries, entry(wednesday, i, stress(level)))
	}
	c, ok := find(Stress{}.Evaluate(&Window{Now: wednesday, Entries: entries}), trigger.StressMondaySpike)
	require.True(t, ok)
	assert.Equal(t, "7.0", c.Data["increase"])
}

func TestWeightRapidLossAndGoal(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 14; i++ {
		kg := 82.0
		if i < 7 {
			kg = 80
		}
		entries = append(entries, entry(wednesday, i, weight(kg)))
	}
	w := &Window{Now: wednesday, Entries: entries, Profile: &model.Profile{TargetWeight: stats.F(80.5)}}
	got := Weight{}.Evaluate(w)

	assert.Contains(t, ids(got), trigger.WeightRapidLoss)
	assert.Contains(t, ids(got), trigger.WeightGoalAchieved)
	assert.NotContains(t, ids(got), trigger.WeightHealthyLoss)
}

func TestWeightRapidGain(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 7; i++ {
		entries = append(entries, entry(wednesday, i, weight(80-float64(i)*0.5)))
	}
	c, ok := find(Weight{}.Evaluate(&Window{Now: wednesday, Entries: entries}), trigger.WeightRapidGain)
	require.True(t, ok)
	assert.Equal(t, "6.7", c.Data["amount"])
}

func TestWeightPlateauAndTracking(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 26; i++ {
		entries = append(entries, entry(wednesday, i, weight(75)))
	}
	got := Weight{}.Evaluate(&Window{Now: wednesday, Entries: entries})
	assert.Contains(t, ids(got), trigger.WeightPlateau)
	c, ok := find(got, trigger.WeightConsistentTracking)
	require.True(t, ok)
	assert.Equal(t, 26, c.Data["count"])
}

func TestWeightHealthyLoss(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 29; i += 2 {
		// 0.1 kg per day lighter, newest first.
		entries = append(entries, entry(wednesday, i, weight(78+float64(i)*0.1)))
	}
	c, ok := find(Weight{}.Evaluate(&Window{Now: wednesday, Entries: entries}), trigger.WeightHealthyLoss)
	require.True(t, ok)
	assert.Equal(t, "6.2 lbs", c.Data["amount"])
}

func TestCorrelationSleepStress(t *testing.T) {
	build := func(bad int) []model.HealthEntry {
		var entries []model.HealthEntry
		for i := 0; i < 7; i++ {
			if i < bad {
				entries = append(entries, entry(wednesday, i, sleep(5), stress(8)))
			} else {
				entries = append(entries, entry(wednesday, i, sleep(7), stress(4)))
			}
		}
		return entries
	}

	c, ok := find(Correlation{}.Evaluate(&Window{Now: wednesday, Entries: build(4)}), trigger.CorrelationSleepStress)
	require.True(t, ok)
	assert.Equal(t, 4, c.Data["count"])

	_, ok = find(Correlation{}.Evaluate(&Window{Now: wednesday, Entries: build(3)}), trigger.CorrelationSleepStress)
	assert.False(t, ok)
}

func TestCorrelationWeightSleep(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 12; i++ {
		h := 5 + float64(i%4)
		entries = append(entries, entry(wednesday, i, sleep(h), weight(90-h)))
	}
	got := Correlation{}.Evaluate(&Window{Now: wednesday, Entries: entries})
	assert.Contains(t, ids(got), trigger.CorrelationWeightSleep)
}

func TestBehavioralTimeOfDay(t *testing.T) {
	yesterdayOnly := func(now time.Time, s int) []model.HealthEntry {
		return []model.HealthEntry{entry(now, 1, streak(s))}
	}

	afternoon := time.Date(2024, 6, 12, 14, 0, 0, 0, time.UTC)
	got := Behavioral{}.Evaluate(&Window{Now: afternoon, Entries: yesterdayOnly(afternoon, 3)})
	assert.Equal(t, []string{trigger.BehavioralMorningMissed}, ids(got))

	saturday := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)
	got = Behavioral{}.Evaluate(&Window{Now: saturday, Entries: yesterdayOnly(saturday, 3)})
	assert.Equal(t, []string{trigger.BehavioralWeekendForgot}, ids(got))

	night := time.Date(2024, 6, 12, 21, 0, 0, 0, time.UTC)
	got = Behavioral{}.Evaluate(&Window{Now: night, Entries: yesterdayOnly(night, 10)})
	c, ok := find(got, trigger.BehavioralStreakRisk)
	require.True(t, ok)
	assert.Equal(t, 10, c.Data["count"])
}

func TestBehavioralMilestoneAndWindDown(t *testing.T) {
	evening := time.Date(2024, 6, 12, 20, 30, 0, 0, time.UTC)
	w := &Window{Now: evening, Entries: []model.HealthEntry{entry(evening, 0, streak(14), stress(7))}}
	got := Behavioral{}.Evaluate(w)

	m, ok := find(got, trigger.BehavioralMilestone)
	require.True(t, ok)
	assert.Equal(t, 14, m.Data["count"])
	wd, ok := find(got, trigger.BehavioralEveningWindDown)
	require.True(t, ok)
	assert.Equal(t, 7, wd.Data["level"])
}

func TestBehavioralMonthlyReview(t *testing.T) {
	lastDay := time.Date(2024, 6, 30, 9, 0, 0, 0, time.UTC)
	got := Behavioral{}.Evaluate(&Window{Now: lastDay, Entries: []model.HealthEntry{entry(lastDay, 0)}})
	assert.Contains(t, ids(got), trigger.BehavioralMonthlyReview)

	got = Behavioral{}.Evaluate(&Window{Now: wednesday, Entries: []model.HealthEntry{entry(wednesday, 0)}})
	assert.NotContains(t, ids(got), trigger.BehavioralMonthlyReview)
}

func TestBehavioralImprovementOpportunity(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 25; i++ {
		ml := 1000.0
		if i < 10 {
			ml = 2500
		}
		entries = append(entries, entry(wednesday, i, water(ml)))
	}
	c, ok := find(Behavioral{}.Evaluate(&Window{Now: wednesday, Entries: entries}), trigger.BehavioralImprovementOpportunity)
	require.True(t, ok)
	assert.Equal(t, 25, c.Data["trackingDays"])
	assert.Equal(t, 40, c.Data["completionRate"])
}

func TestAchievementPerfectDayAndWeek(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 7; i++ {
		entries = append(entries, entry(wednesday, i, sleep(8), water(2100), stress(2)))
	}
	got := Achievement{}.Evaluate(&Window{Now: wednesday, Entries: entries})
	assert.Contains(t, ids(got), trigger.AchievementPerfectDay)
	assert.Contains(t, ids(got), trigger.AchievementPerfectWeek)

	// Yesterday was perfect but today has not been logged.
	got = Achievement{}.Evaluate(&Window{Now: wednesday, Entries: entries[1:]})
	assert.NotContains(t, ids(got), trigger.AchievementPerfectDay)
}

func TestAchievementEarlyBird(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 10; i++ {
		e := entry(wednesday, i)
		wake := e.Date.Add(6 * time.Hour)
		if i >= 7 {
			wake = e.Date.Add(9 * time.Hour)
		}
		e.Sleep.WakeTime = &wake
		entries = append(entries, e)
	}
	c, ok := find(Achievement{}.Evaluate(&Window{Now: wednesday, Entries: entries}), trigger.AchievementEarlyBird)
	require.True(t, ok)
	assert.Equal(t, 7, c.Data["count"])
}

func TestAchievementComeback(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 14; i++ {
		if i < 7 {
			entries = append(entries, entry(wednesday, i, sleep(8), water(2100), stress(2)))
		} else {
			entries = append(entries, entry(wednesday, i, sleep(5), water(500), stress(8)))
		}
	}
	c, ok := find(Achievement{}.Evaluate(&Window{Now: wednesday, Entries: entries}), trigger.AchievementComeback)
	require.True(t, ok)
	assert.Equal(t, 0, c.Data["previousScore"])
	assert.Equal(t, 100, c.Data["currentScore"])
}

func TestWarningMultipleRedFlags(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 5; i++ {
		entries = append(entries, entry(wednesday, i, sleep(5), stress(8), water(1800)))
	}
	got := Warning{}.Evaluate(&Window{Now: wednesday, Entries: entries})
	assert.Equal(t, []string{trigger.WarningMultipleRedFlags}, ids(got))
}

func TestWarningMissedLogging(t *testing.T) {
	w := &Window{Now: wednesday, Entries: []model.HealthEntry{entry(wednesday, 8, streak(30))}}
	c, ok := find(Warning{}.Evaluate(w), trigger.WarningMissedLogging)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"days": 8, "streakCount": 30}, c.Data)
}

func TestWarningDecliningMetrics(t *testing.T) {
	var entries []model.HealthEntry
	for i := 0; i < 14; i++ {
		if i < 7 {
			entries = append(entries, entry(wednesday, i, sleep(5), stress(8), water(800)))
		} else {
			entries = append(entries, entry(wednesday, i, sleep(7), stress(4), water(2000)))
		}
	}
	c, ok := find(Warning{}.Evaluate(&Window{Now: wednesday, Entries: entries}), trigger.WarningDecliningMetrics)
	require.True(t, ok)
	assert.Equal(t, "2.0", c.Data["sleepChange"])
	assert.Equal(t, "4.0", c.Data["stressChange"])
	assert.Equal(t, 60, c.Data["hydrationChange"])
}

func TestContextualCalendar(t *testing.T) {
	holiday := time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)
	got := Contextual{}.Evaluate(&Window{Now: holiday})
	assert.Equal(t, []string{trigger.ContextualHoliday}, ids(got))

	newYear := time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)
	got = Contextual{}.Evaluate(&Window{Now: newYear, Entries: []model.HealthEntry{entry(newYear, 0, streak(9))}})
	c, ok := find(got, trigger.ContextualNewYear)
	require.True(t, ok)
	assert.Equal(t, 9, c.Data["count"])

	dst := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	got = Contextual{}.Evaluate(&Window{Now: dst, Entries: []model.HealthEntry{
		entry(dst, 0, quality(model.SleepGood)),
		entry(dst, 1, quality(model.SleepPoor)),
	}})
	assert.Equal(t, []string{trigger.ContextualDST}, ids(got))

	assert.Empty(t, Contextual{}.Evaluate(&Window{Now: wednesday}))
}

func TestContextualRainy(t *testing.T) {
	mood := func(daysAgo, value int, factors ...string) model.MoodCheckin {
		return model.MoodCheckin{
			Date:    stats.StartOfDay(wednesday).AddDate(0, 0, -daysAgo),
			Value:   value,
			Factors: factors,
		}
	}
	w := &Window{Now: wednesday, Moods: []model.MoodCheckin{
		mood(0, 2, "weather"),
		mood(1, 1, "weather", "work"),
		mood(2, 2, "weather"),
		mood(2, 4, "weather"),
	}}
	assert.Equal(t, []string{trigger.ContextualRainy}, ids(Contextual{}.Evaluate(w)))

	w.Moods = w.Moods[1:]
	assert.Empty(t, Contextual{}.Evaluate(w))
}
