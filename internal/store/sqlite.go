package store

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// Timestamps are stored in UTC with a fixed width so they sort as text.
const (
	timeLayout = "2006-01-02T15:04:05.000000Z"
	dateLayout = "2006-01-02"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex // guards entropy
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS health_entries (
		id                 TEXT PRIMARY KEY,
		user_id            TEXT NOT NULL,
		date               TEXT NOT NULL,
		sleep_hours        REAL,
		sleep_bedtime      TEXT,
		sleep_wake_time    TEXT,
		sleep_quality      TEXT,
		water_amount       REAL,
		water_goal         REAL,
		water_unit         TEXT NOT NULL DEFAULT 'ml',
		stress_level       INTEGER,
		stress_source      TEXT,
		stress_time_of_day TEXT,
		stress_notes       TEXT,
		weight_value       REAL,
		weight_unit        TEXT NOT NULL DEFAULT 'kg',
		completed_metrics  INTEGER NOT NULL DEFAULT 0,
		completed_at       TEXT,
		streak_count       INTEGER NOT NULL DEFAULT 0,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL,
		UNIQUE (user_id, date)
	);
	CREATE INDEX IF NOT EXISTS idx_entries_user_date ON health_entries(user_id, date DESC);

	CREATE TABLE IF NOT EXISTS mood_checkins (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		date       TEXT NOT NULL,
		timestamp  TEXT NOT NULL,
		value      INTEGER NOT NULL,
		emoji      TEXT NOT NULL,
		label      TEXT NOT NULL,
		factors    TEXT,
		type       TEXT NOT NULL,
		notes      TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_moods_user_date ON mood_checkins(user_id, date DESC);

	CREATE TABLE IF NOT EXISTS profiles (
		user_id       TEXT PRIMARY KEY,
		target_weight REAL,
		updated_at    TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS feedback_messages (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		trigger_id    TEXT NOT NULL,
		category      TEXT NOT NULL,
		priority      INTEGER NOT NULL,
		title         TEXT NOT NULL,
		message       TEXT NOT NULL,
		action_type   TEXT,
		action_label  TEXT,
		action_screen TEXT,
		status        TEXT NOT NULL DEFAULT 'unread',
		generated_at  TEXT NOT NULL,
		expires_at    TEXT,
		action_taken  INTEGER NOT NULL DEFAULT 0,
		metadata      TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_messages_user_trigger ON feedback_messages(user_id, trigger_id, generated_at);
	CREATE INDEX IF NOT EXISTS idx_messages_user_generated ON feedback_messages(user_id, generated_at);
	CREATE INDEX IF NOT EXISTS idx_messages_user_status ON feedback_messages(user_id, status);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// formatDate keeps the calendar day as seen in t's own location.
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}

func parseDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func nullTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := formatTime(*t)
	return &v
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func timePtr(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	t := parseTime(ns.String)
	return &t
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}
