// Package model defines the core health and feedback data types.
package model

import "time"

// DefaultWaterGoal is the daily water goal in ml assumed when an entry has none.
const DefaultWaterGoal = 2000.0

// SleepQuality is the self-reported quality of a night's sleep.
type SleepQuality string

const (
	SleepPoor      SleepQuality = "poor"
	SleepFair      SleepQuality = "fair"
	SleepGood      SleepQuality = "good"
	SleepExcellent SleepQuality = "excellent"
)

var sleepQualityScores = map[SleepQuality]float64{
	SleepPoor:      1,
	SleepFair:      2,
	SleepGood:      3,
	SleepExcellent: 4,
}

// Score maps the quality onto 1..4. Unknown or empty qualities return nil.
func (q SleepQuality) Score() *float64 {
	s, ok := sleepQualityScores[q]
	if !ok {
		return nil
	}
	return &s
}

// Low reports whether the quality is poor or fair.
func (q SleepQuality) Low() bool {
	return q == SleepPoor || q == SleepFair
}

// High reports whether the quality is good or excellent.
func (q SleepQuality) High() bool {
	return q == SleepGood || q == SleepExcellent
}

// ValidSleepQualities are the allowed sleep quality values.
var ValidSleepQualities = map[SleepQuality]bool{
	SleepPoor:      true,
	SleepFair:      true,
	SleepGood:      true,
	SleepExcellent: true,
}

// ValidStressSources are the allowed stress sources.
var ValidStressSources = map[string]bool{
	"work":      true,
	"personal":  true,
	"health":    true,
	"financial": true,
	"other":     true,
}

// ValidTimesOfDay are the allowed stress / check-in periods.
var ValidTimesOfDay = map[string]bool{
	"morning":   true,
	"afternoon": true,
	"evening":   true,
}

// Sleep holds the sleep section of a daily entry.
type Sleep struct {
	Hours    *float64     `json:"hours,omitempty"`
	Bedtime  *time.Time   `json:"bedtime,omitempty"`
	WakeTime *time.Time   `json:"wake_time,omitempty"`
	Quality  SleepQuality `json:"quality,omitempty"`
}

// Water holds the hydration section of a daily entry.
type Water struct {
	Amount *float64 `json:"amount,omitempty"`
	Goal   *float64 `json:"goal,omitempty"`
	Unit   string   `json:"unit,omitempty"`
}

// Stress holds the stress section of a daily entry.
type Stress struct {
	Level     *int   `json:"level,omitempty"`
	Source    string `json:"source,omitempty"`
	TimeOfDay string `json:"time_of_day,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Weight holds the weight section of a daily entry. Values are kg.
type Weight struct {
	Value *float64 `json:"value,omitempty"`
	Unit  string   `json:"unit,omitempty"`
}

// Metric identifies one trackable section of a daily entry.
type Metric uint8

const (
	MetricSleep Metric = 1 << iota
	MetricWater
	MetricStress
	MetricWeight

	allMetrics = MetricSleep | MetricWater | MetricStress | MetricWeight
)

// CompletedMetrics is a bitset of the sections filled in for a day.
type CompletedMetrics uint8

// Has reports whether m is marked complete.
func (c CompletedMetrics) Has(m Metric) bool { return uint8(c)&uint8(m) != 0 }

// With returns c with m marked complete.
func (c CompletedMetrics) With(m Metric) CompletedMetrics { return CompletedMetrics(uint8(c) | uint8(m)) }

// All reports whether every metric is complete.
func (c CompletedMetrics) All() bool { return uint8(c)&uint8(allMetrics) == uint8(allMetrics) }

// HealthEntry is one user's record for one calendar day.
type HealthEntry struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id"`
	Date             time.Time        `json:"date"`
	Sleep            Sleep            `json:"sleep"`
	Water            Water            `json:"water"`
	Stress           Stress           `json:"stress"`
	Weight           Weight           `json:"weight"`
	CompletedMetrics CompletedMetrics `json:"completed_metrics"`
	CompletedAt      *time.Time       `json:"completed_at,omitempty"`
	StreakCount      int              `json:"streak_count"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Day returns the calendar day of the entry.
func (e HealthEntry) Day() time.Time { return e.Date }

// IsComplete reports whether all four sections were filled.
func (e HealthEntry) IsComplete() bool { return e.CompletedMetrics.All() }

// SleepHours returns the hours slept, or nil.
func (e HealthEntry) SleepHours() *float64 { return e.Sleep.Hours }

// StressLevel returns the stress level as a float, or nil.
func (e HealthEntry) StressLevel() *float64 {
	if e.Stress.Level == nil {
		return nil
	}
	v := float64(*e.Stress.Level)
	return &v
}

// WeightValue returns the weight in kg, or nil.
func (e HealthEntry) WeightValue() *float64 { return e.Weight.Value }

// WaterAmount returns the water consumed, or nil.
func (e HealthEntry) WaterAmount() *float64 { return e.Water.Amount }

// WaterGoal returns the goal, or nil.
func (e HealthEntry) WaterGoal() *float64 { return e.Water.Goal }

// WaterRatio is amount/goal with amount defaulting to 0 and goal to
// DefaultWaterGoal.
func (e HealthEntry) WaterRatio() float64 {
	amount, goal := 0.0, DefaultWaterGoal
	if e.Water.Amount != nil {
		amount = *e.Water.Amount
	}
	if e.Water.Goal != nil {
		goal = *e.Water.Goal
	}
	return amount / goal
}

// WaterGoalMet reports amount >= goal using the same defaults as WaterRatio.
func (e HealthEntry) WaterGoalMet() bool {
	amount, goal := 0.0, DefaultWaterGoal
	if e.Water.Amount != nil {
		amount = *e.Water.Amount
	}
	if e.Water.Goal != nil {
		goal = *e.Water.Goal
	}
	return amount >= goal
}

// Refresh recomputes CompletedMetrics from the populated sections and stamps
// CompletedAt the first time the entry becomes complete.
func (e *HealthEntry) Refresh(now time.Time) {
	var c CompletedMetrics
	if e.Sleep.Hours != nil {
		c = c.With(MetricSleep)
	}
	if e.Water.Amount != nil && *e.Water.Amount > 0 {
		c = c.With(MetricWater)
	}
	if e.Stress.Level != nil {
		c = c.With(MetricStress)
	}
	if e.Weight.Value != nil {
		c = c.With(MetricWeight)
	}
	e.CompletedMetrics = c
	if c.All() && e.CompletedAt == nil {
		t := now
		e.CompletedAt = &t
	}
}

// CheckInType is the period a mood check-in belongs to.
type CheckInType string

const (
	CheckInMorning   CheckInType = "morning"
	CheckInAfternoon CheckInType = "afternoon"
	CheckInEvening   CheckInType = "evening"
)

// MoodCheckin is a quick emoji-based mood report.
type MoodCheckin struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Date      time.Time   `json:"date"`
	Timestamp time.Time   `json:"timestamp"`
	Value     int         `json:"value"`
	Emoji     string      `json:"emoji"`
	Label     string      `json:"label"`
	Factors   []string    `json:"factors,omitempty"`
	Type      CheckInType `json:"type"`
	Notes     string      `json:"notes,omitempty"`
}

// Day returns the calendar day of the check-in.
func (m MoodCheckin) Day() time.Time { return m.Date }

// HasFactor reports whether the check-in lists the given factor.
func (m MoodCheckin) HasFactor(f string) bool {
	for _, x := range m.Factors {
		if x == f {
			return true
		}
	}
	return false
}

var moodFaces = [...]struct{ emoji, label string }{
	{"😢", "terrible"},
	{"😔", "bad"},
	{"😐", "okay"},
	{"🙂", "good"},
	{"😊", "great"},
}

// MoodFace returns the emoji and label for a 1..5 mood value.
func MoodFace(value int) (emoji, label string, ok bool) {
	if value < 1 || value > 5 {
		return "", "", false
	}
	f := moodFaces[value-1]
	return f.emoji, f.label, true
}

// ValidMoodFactors are the allowed contributing factor tags.
var ValidMoodFactors = map[string]bool{
	"exercise":   true,
	"diet":       true,
	"sleep":      true,
	"mood":       true,
	"work":       true,
	"social":     true,
	"health":     true,
	"weather":    true,
	"stress":     true,
	"relaxation": true,
}

// Profile holds the user attributes the engine reads.
type Profile struct {
	UserID       string    `json:"user_id"`
	TargetWeight *float64  `json:"target_weight,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}
