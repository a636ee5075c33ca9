package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/feedback-engine/internal/model"
)

const entryColumns = `id, user_id, date, sleep_hours, sleep_bedtime, sleep_wake_time, sleep_quality,
	water_amount, water_goal, water_unit, stress_level, stress_source, stress_time_of_day, stress_notes,
	weight_value, weight_unit, completed_metrics, completed_at, streak_count, created_at, updated_at`

func (s *SQLiteStore) QueryEntries(ctx context.Context, userID string, since time.Time) ([]model.HealthEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM health_entries
		 WHERE user_id = ? AND date >= ?
		 ORDER BY date DESC`, userID, formatDate(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.HealthEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) getEntry(ctx context.Context, userID string, day time.Time) (*model.HealthEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM health_entries WHERE user_id = ? AND date = ?`,
		userID, formatDate(day))
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entry %s/%s: %w", userID, formatDate(day), ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// TodayEntry returns the entry for day, creating it if missing. A new entry
// continues the streak when yesterday's entry was complete.
func (s *SQLiteStore) TodayEntry(ctx context.Context, userID string, day time.Time) (*model.HealthEntry, error) {
	e, err := s.getEntry(ctx, userID, day)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	streak := 0
	prev, err := s.getEntry(ctx, userID, day.AddDate(0, 0, -1))
	switch {
	case err == nil:
		if prev.IsComplete() {
			streak = prev.StreakCount + 1
		}
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	now := formatTime(time.Now())
	goal := model.DefaultWaterGoal
	// Concurrent first reads race here; the unique key keeps one row.
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO health_entries (id, user_id, date, water_amount, water_goal, water_unit, weight_unit, streak_count, created_at, updated_at)
		 VALUES (?, ?, ?, 0, ?, 'ml', 'kg', ?, ?, ?)`,
		s.newID(), userID, formatDate(day), goal, streak, now, now)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return s.getEntry(ctx, userID, day)
}

// UpdateEntry applies u to the entry for day, creating the entry first if
// needed.
func (s *SQLiteStore) UpdateEntry(ctx context.Context, userID string, day time.Time, u EntryUpdate) (*model.HealthEntry, error) {
	if err := u.validate(); err != nil {
		return nil, err
	}
	e, err := s.TodayEntry(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	if u.SleepHours != nil {
		e.Sleep.Hours = u.SleepHours
	}
	if u.SleepQuality != "" {
		e.Sleep.Quality = u.SleepQuality
	}
	if u.Bedtime != nil {
		e.Sleep.Bedtime = u.Bedtime
	}
	if u.WakeTime != nil {
		e.Sleep.WakeTime = u.WakeTime
	}
	if u.WaterAmount != nil {
		e.Water.Amount = u.WaterAmount
	}
	if u.WaterGoal != nil {
		e.Water.Goal = u.WaterGoal
	}
	if u.StressLevel != nil {
		e.Stress.Level = u.StressLevel
	}
	if u.StressSource != "" {
		e.Stress.Source = u.StressSource
	}
	if u.StressTimeOfDay != "" {
		e.Stress.TimeOfDay = u.StressTimeOfDay
	}
	if u.StressNotes != "" {
		e.Stress.Notes = u.StressNotes
	}
	if u.Weight != nil {
		e.Weight.Value = u.Weight
	}

	now := time.Now()
	e.Refresh(now)
	e.UpdatedAt = now
	if err := s.SaveEntry(ctx, e); err != nil {
		return nil, err
	}
	return s.getEntry(ctx, userID, day)
}

func (u EntryUpdate) validate() error {
	var errs []error
	if u.SleepHours != nil && (*u.SleepHours < 0 || *u.SleepHours > 24) {
		errs = append(errs, fmt.Errorf("sleep hours must be within 0-24, got %g", *u.SleepHours))
	}
	if u.SleepQuality != "" && !model.ValidSleepQualities[u.SleepQuality] {
		errs = append(errs, fmt.Errorf("unknown sleep quality %q", u.SleepQuality))
	}
	if u.WaterAmount != nil && *u.WaterAmount < 0 {
		errs = append(errs, fmt.Errorf("water amount must not be negative, got %g", *u.WaterAmount))
	}
	if u.WaterGoal != nil && *u.WaterGoal <= 0 {
		errs = append(errs, fmt.Errorf("water goal must be positive, got %g", *u.WaterGoal))
	}
	if u.StressLevel != nil && (*u.StressLevel < 1 || *u.StressLevel > 10) {
		errs = append(errs, fmt.Errorf("stress level must be within 1-10, got %d", *u.StressLevel))
	}
	if u.StressSource != "" && !model.ValidStressSources[u.StressSource] {
		errs = append(errs, fmt.Errorf("unknown stress source %q", u.StressSource))
	}
	if u.StressTimeOfDay != "" && !model.ValidTimesOfDay[u.StressTimeOfDay] {
		errs = append(errs, fmt.Errorf("unknown time of day %q", u.StressTimeOfDay))
	}
	if u.Weight != nil && *u.Weight <= 0 {
		errs = append(errs, fmt.Errorf("weight must be positive, got %g", *u.Weight))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

// SaveEntry upserts e on (user_id, date). An empty ID gets a new one.
func (s *SQLiteStore) SaveEntry(ctx context.Context, e *model.HealthEntry) error {
	if e.ID == "" {
		e.ID = s.newID()
	}
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}
	waterUnit := e.Water.Unit
	if waterUnit == "" {
		waterUnit = "ml"
	}
	weightUnit := e.Weight.Unit
	if weightUnit == "" {
		weightUnit = "kg"
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO health_entries (`+entryColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, date) DO UPDATE SET
			sleep_hours = excluded.sleep_hours,
			sleep_bedtime = excluded.sleep_bedtime,
			sleep_wake_time = excluded.sleep_wake_time,
			sleep_quality = excluded.sleep_quality,
			water_amount = excluded.water_amount,
			water_goal = excluded.water_goal,
			water_unit = excluded.water_unit,
			stress_level = excluded.stress_level,
			stress_source = excluded.stress_source,
			stress_time_of_day = excluded.stress_time_of_day,
			stress_notes = excluded.stress_notes,
			weight_value = excluded.weight_value,
			weight_unit = excluded.weight_unit,
			completed_metrics = excluded.completed_metrics,
			completed_at = excluded.completed_at,
			streak_count = excluded.streak_count,
			updated_at = excluded.updated_at`,
		e.ID, e.UserID, formatDate(e.Date),
		e.Sleep.Hours, nullTime(e.Sleep.Bedtime), nullTime(e.Sleep.WakeTime), nullString(string(e.Sleep.Quality)),
		e.Water.Amount, e.Water.Goal, waterUnit,
		e.Stress.Level, nullString(e.Stress.Source), nullString(e.Stress.TimeOfDay), nullString(e.Stress.Notes),
		e.Weight.Value, weightUnit,
		int(e.CompletedMetrics), nullTime(e.CompletedAt), e.StreakCount,
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save entry: %w", err)
	}
	return nil
}

func scanEntry(row scanner) (model.HealthEntry, error) {
	var e model.HealthEntry
	var date, createdAt, updatedAt string
	var bedtime, wakeTime, quality, source, timeOfDay, notes, completedAt sql.NullString
	var sleepHours, waterAmount, waterGoal, weight sql.NullFloat64
	var stress sql.NullInt64
	var completed int

	err := row.Scan(
		&e.ID, &e.UserID, &date, &sleepHours, &bedtime, &wakeTime, &quality,
		&waterAmount, &waterGoal, &e.Water.Unit, &stress, &source, &timeOfDay, &notes,
		&weight, &e.Weight.Unit, &completed, &completedAt, &e.StreakCount, &createdAt, &updatedAt,
	)
	if err != nil {
		return e, err
	}

	e.Date = parseDate(date)
	e.Sleep.Hours = floatPtr(sleepHours)
	e.Sleep.Bedtime = timePtr(bedtime)
	e.Sleep.WakeTime = timePtr(wakeTime)
	e.Sleep.Quality = model.SleepQuality(quality.String)
	e.Water.Amount = floatPtr(waterAmount)
	e.Water.Goal = floatPtr(waterGoal)
	if stress.Valid {
		v := int(stress.Int64)
		e.Stress.Level = &v
	}
	e.Stress.Source = source.String
	e.Stress.TimeOfDay = timeOfDay.String
	e.Stress.Notes = notes.String
	e.Weight.Value = floatPtr(weight)
	e.CompletedMetrics = model.CompletedMetrics(completed)
	e.CompletedAt = timePtr(completedAt)
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return e, nil
}

// AddMoodCheckin validates and stores a mood check-in.
func (s *SQLiteStore) AddMoodCheckin(ctx context.Context, p MoodParams) (*model.MoodCheckin, error) {
	emoji, label, ok := model.MoodFace(p.Value)
	if !ok {
		return nil, fmt.Errorf("%w: mood value must be within 1-5, got %d", ErrInvalidInput, p.Value)
	}
	switch p.Type {
	case model.CheckInMorning, model.CheckInAfternoon, model.CheckInEvening:
	default:
		return nil, fmt.Errorf("%w: unknown check-in type %q", ErrInvalidInput, p.Type)
	}
	for _, f := range p.Factors {
		if !model.ValidMoodFactors[f] {
			return nil, fmt.Errorf("%w: unknown mood factor %q", ErrInvalidInput, f)
		}
	}

	at := p.At
	if at.IsZero() {
		at = time.Now()
	}
	m := &model.MoodCheckin{
		ID:        s.newID(),
		UserID:    p.UserID,
		Date:      parseDate(formatDate(at)),
		Timestamp: at.UTC(),
		Value:     p.Value,
		Emoji:     emoji,
		Label:     label,
		Factors:   p.Factors,
		Type:      p.Type,
		Notes:     p.Notes,
	}
	if err := s.insertMood(ctx, m, false); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *SQLiteStore) insertMood(ctx context.Context, m *model.MoodCheckin, ignoreDup bool) error {
	var factorsJSON *string
	if len(m.Factors) > 0 {
		b, _ := json.Marshal(m.Factors)
		v := string(b)
		factorsJSON = &v
	}
	verb := "INSERT"
	if ignoreDup {
		verb = "INSERT OR IGNORE"
	}
	_, err := s.db.ExecContext(ctx,
		verb+` INTO mood_checkins (id, user_id, date, timestamp, value, emoji, label, factors, type, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, formatDate(m.Date), formatTime(m.Timestamp), m.Value, m.Emoji, m.Label,
		factorsJSON, string(m.Type), nullString(m.Notes))
	if err != nil {
		return fmt.Errorf("insert mood: %w", err)
	}
	return nil
}

func (s *SQLiteStore) QueryMoodCheckins(ctx context.Context, userID string, since time.Time) ([]model.MoodCheckin, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, date, timestamp, value, emoji, label, factors, type, notes
		 FROM mood_checkins WHERE user_id = ? AND date >= ?
		 ORDER BY date DESC, timestamp DESC`, userID, formatDate(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moods []model.MoodCheckin
	for rows.Next() {
		m, err := scanMood(rows)
		if err != nil {
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}

func scanMood(row scanner) (model.MoodCheckin, error) {
	var m model.MoodCheckin
	var date, ts, typ string
	var factors, notes sql.NullString

	err := row.Scan(&m.ID, &m.UserID, &date, &ts, &m.Value, &m.Emoji, &m.Label, &factors, &typ, &notes)
	if err != nil {
		return m, err
	}
	m.Date = parseDate(date)
	m.Timestamp = parseTime(ts)
	m.Type = model.CheckInType(typ)
	m.Notes = notes.String
	if factors.Valid {
		json.Unmarshal([]byte(factors.String), &m.Factors)
	}
	return m, nil
}

func (s *SQLiteStore) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	var target sql.NullFloat64
	var updatedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, target_weight, updated_at FROM profiles WHERE user_id = ?`, userID).
		Scan(&p.UserID, &target, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	p.TargetWeight = floatPtr(target)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

func (s *SQLiteStore) SetProfile(ctx context.Context, p *model.Profile) error {
	if p.TargetWeight != nil && *p.TargetWeight <= 0 {
		return fmt.Errorf("%w: target weight must be positive, got %g", ErrInvalidInput, *p.TargetWeight)
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, target_weight, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET target_weight = excluded.target_weight, updated_at = excluded.updated_at`,
		p.UserID, p.TargetWeight, formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListUsers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM health_entries ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
