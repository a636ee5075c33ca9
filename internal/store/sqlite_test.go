package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rcliao/feedback-engine/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var day = time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

func f(v float64) *float64 { return &v }
func n(v int) *int         { return &v }

func TestTodayEntryCreatesDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	e, err := s.TodayEntry(ctx, "u1", day)
	if err != nil {
		t.Fatalf("today entry: %v", err)
	}
	if e.ID == "" {
		t.Error("expected non-empty ID")
	}
	if e.Water.Goal == nil || *e.Water.Goal != model.DefaultWaterGoal {
		t.Errorf("expected default water goal, got %v", e.Water.Goal)
	}
	if e.Water.Amount == nil || *e.Water.Amount != 0 {
		t.Errorf("expected water amount 0, got %v", e.Water.Amount)
	}
	if e.Water.Unit != "ml" {
		t.Errorf("expected unit ml, got %q", e.Water.Unit)
	}
	if e.StreakCount != 0 {
		t.Errorf("expected streak 0, got %d", e.StreakCount)
	}
	if !e.Date.Equal(day) {
		t.Errorf("expected date %v, got %v", day, e.Date)
	}

	again, _ := s.TodayEntry(ctx, "u1", day)
	if again.ID != e.ID {
		t.Errorf("expected same entry on second read, got %s and %s", e.ID, again.ID)
	}
}

func TestTodayEntryContinuesStreak(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	yesterday := day.AddDate(0, 0, -1)
	complete := &model.HealthEntry{UserID: "u1", Date: yesterday, StreakCount: 3}
	complete.Sleep.Hours = f(8)
	complete.Water.Amount = f(2000)
	complete.Stress.Level = n(3)
	complete.Weight.Value = f(70)
	complete.Refresh(time.Now())
	if err := s.SaveEntry(ctx, complete); err != nil {
		t.Fatalf("save: %v", err)
	}

	partial := &model.HealthEntry{UserID: "u2", Date: yesterday, StreakCount: 3}
	partial.Sleep.Hours = f(8)
	partial.Refresh(time.Now())
	if err := s.SaveEntry(ctx, partial); err != nil {
		t.Fatalf("save: %v", err)
	}

	e1, _ := s.TodayEntry(ctx, "u1", day)
	if e1.StreakCount != 4 {
		t.Errorf("expected streak 4 after a complete day, got %d", e1.StreakCount)
	}
	e2, _ := s.TodayEntry(ctx, "u2", day)
	if e2.StreakCount != 0 {
		t.Errorf("expected streak reset after an incomplete day, got %d", e2.StreakCount)
	}
}

func TestUpdateEntryCompletesDay(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	e, err := s.UpdateEntry(ctx, "u1", day, EntryUpdate{SleepHours: f(7.5), SleepQuality: model.SleepGood})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if e.IsComplete() {
		t.Error("expected incomplete entry after sleep only")
	}
	if !e.CompletedMetrics.Has(model.MetricSleep) {
		t.Error("expected sleep metric marked")
	}

	e, err = s.UpdateEntry(ctx, "u1", day, EntryUpdate{
		WaterAmount:  f(1500),
		StressLevel:  n(4),
		StressSource: "work",
		Weight:       f(72.4),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !e.IsComplete() {
		t.Errorf("expected complete entry, got metrics %b", e.CompletedMetrics)
	}
	if e.CompletedAt == nil {
		t.Error("expected completed_at to be stamped")
	}
	if e.Sleep.Quality != model.SleepGood {
		t.Errorf("expected earlier fields kept, got quality %q", e.Sleep.Quality)
	}
	if e.Stress.Source != "work" || *e.Stress.Level != 4 {
		t.Errorf("stress not persisted: %+v", e.Stress)
	}
}

func TestUpdateEntryValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	cases := []EntryUpdate{
		{SleepHours: f(25)},
		{SleepQuality: "amazing"},
		{StressLevel: n(11)},
		{StressSource: "traffic"},
		{StressTimeOfDay: "midnight"},
		{WaterAmount: f(-1)},
		{WaterGoal: f(0)},
		{Weight: f(0)},
	}
	for _, u := range cases {
		_, err := s.UpdateEntry(ctx, "u1", day, u)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for %+v, got %v", u, err)
		}
	}
}

func TestQueryEntriesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		e := &model.HealthEntry{UserID: "u1", Date: day.AddDate(0, 0, -i)}
		e.Sleep.Hours = f(float64(6 + i))
		if err := s.SaveEntry(ctx, e); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	s.SaveEntry(ctx, &model.HealthEntry{UserID: "other", Date: day})

	got, err := s.QueryEntries(ctx, "u1", day.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries since yesterday, got %d", len(got))
	}
	if !got[0].Date.Equal(day) || *got[0].Sleep.Hours != 6 {
		t.Errorf("expected today first, got %v", got[0].Date)
	}
	if *got[1].Sleep.Hours != 7 {
		t.Errorf("expected yesterday second, got %v", *got[1].Sleep.Hours)
	}
}

func TestSaveEntryUpsertsByDay(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	e := &model.HealthEntry{UserID: "u1", Date: day}
	e.Sleep.Hours = f(6)
	s.SaveEntry(ctx, e)

	replacement := &model.HealthEntry{UserID: "u1", Date: day}
	replacement.Sleep.Hours = f(8)
	if err := s.SaveEntry(ctx, replacement); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, _ := s.QueryEntries(ctx, "u1", day)
	if len(got) != 1 {
		t.Fatalf("expected one row per day, got %d", len(got))
	}
	if *got[0].Sleep.Hours != 8 {
		t.Errorf("expected 8 hours after upsert, got %v", *got[0].Sleep.Hours)
	}
	if got[0].ID != e.ID {
		t.Errorf("expected original id kept, got %s", got[0].ID)
	}
}

func TestMoodCheckin(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	at := day.Add(8 * time.Hour)
	m, err := s.AddMoodCheckin(ctx, MoodParams{
		UserID: "u1", Value: 4, Type: model.CheckInMorning,
		Factors: []string{"exercise", "sleep"}, At: at,
	})
	if err != nil {
		t.Fatalf("add mood: %v", err)
	}
	if m.Emoji != "🙂" || m.Label != "good" {
		t.Errorf("expected 🙂/good, got %s/%s", m.Emoji, m.Label)
	}

	s.AddMoodCheckin(ctx, MoodParams{UserID: "u1", Value: 2, Type: model.CheckInEvening, At: at.Add(10 * time.Hour)})

	got, err := s.QueryMoodCheckins(ctx, "u1", day)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 check-ins, got %d", len(got))
	}
	if got[0].Value != 2 {
		t.Errorf("expected latest check-in first, got value %d", got[0].Value)
	}
	if !got[1].HasFactor("exercise") {
		t.Errorf("expected factors persisted, got %v", got[1].Factors)
	}
	if !got[1].Date.Equal(day) {
		t.Errorf("expected date %v, got %v", day, got[1].Date)
	}
}

func TestMoodCheckinValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	bad := []MoodParams{
		{UserID: "u1", Value: 0, Type: model.CheckInMorning},
		{UserID: "u1", Value: 6, Type: model.CheckInMorning},
		{UserID: "u1", Value: 3, Type: "night"},
		{UserID: "u1", Value: 3, Type: model.CheckInMorning, Factors: []string{"coffee"}},
	}
	for _, p := range bad {
		if _, err := s.AddMoodCheckin(ctx, p); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for %+v, got %v", p, err)
		}
	}
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.GetProfile(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.SetProfile(ctx, &model.Profile{UserID: "u1", TargetWeight: f(68)}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	s.SetProfile(ctx, &model.Profile{UserID: "u1", TargetWeight: f(65)})

	p, err := s.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.TargetWeight == nil || *p.TargetWeight != 65 {
		t.Errorf("expected target 65, got %v", p.TargetWeight)
	}

	if err := s.SetProfile(ctx, &model.Profile{UserID: "u1", TargetWeight: f(-1)}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.TodayEntry(ctx, "bob", day)
	s.TodayEntry(ctx, "alice", day)
	s.TodayEntry(ctx, "alice", day.AddDate(0, 0, -1))
	s.SetProfile(ctx, &model.Profile{UserID: "carol"})

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 || users[0] != "alice" || users[1] != "bob" {
		t.Errorf("expected [alice bob], got %v", users)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
