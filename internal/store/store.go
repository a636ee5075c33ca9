// Package store provides the health record and feedback message storage
// interface and its SQLite implementation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rcliao/feedback-engine/internal/model"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCooldownActive is returned by InsertMessage when the same trigger
	// already fired for the user inside the cooldown window.
	ErrCooldownActive = errors.New("trigger cooldown active")
	// ErrInvalidInput wraps validation failures on writes.
	ErrInvalidInput = errors.New("invalid input")
)

// EntryUpdate holds the fields to change on a day's entry. Nil pointers and
// empty strings leave the stored value alone.
type EntryUpdate struct {
	SleepHours      *float64
	SleepQuality    model.SleepQuality
	Bedtime         *time.Time
	WakeTime        *time.Time
	WaterAmount     *float64
	WaterGoal       *float64
	StressLevel     *int
	StressSource    string
	StressTimeOfDay string
	StressNotes     string
	Weight          *float64
}

// MoodParams holds parameters for recording a mood check-in.
type MoodParams struct {
	UserID  string
	Value   int
	Type    model.CheckInType
	Factors []string
	Notes   string
	At      time.Time // zero means now; its location decides the day
}

// ListMessagesParams holds filters for listing feedback messages.
type ListMessagesParams struct {
	UserID      string
	Status      model.Status
	Category    model.Category
	MinPriority int
	Limit       int
}

// Store defines the health and message storage interface.
type Store interface {
	// QueryEntries returns entries dated on or after since, newest first.
	QueryEntries(ctx context.Context, userID string, since time.Time) ([]model.HealthEntry, error)

	// TodayEntry returns the entry for day, creating it on first access.
	TodayEntry(ctx context.Context, userID string, day time.Time) (*model.HealthEntry, error)

	// UpdateEntry applies u to the entry for day and recomputes completion.
	UpdateEntry(ctx context.Context, userID string, day time.Time, u EntryUpdate) (*model.HealthEntry, error)

	// SaveEntry inserts or replaces a whole entry keyed by user and date.
	SaveEntry(ctx context.Context, e *model.HealthEntry) error

	// AddMoodCheckin records a mood check-in.
	AddMoodCheckin(ctx context.Context, p MoodParams) (*model.MoodCheckin, error)

	// QueryMoodCheckins returns check-ins dated on or after since, newest first.
	QueryMoodCheckins(ctx context.Context, userID string, since time.Time) ([]model.MoodCheckin, error)

	// GetProfile returns ErrNotFound when the user has none.
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)

	// SetProfile inserts or replaces a profile.
	SetProfile(ctx context.Context, p *model.Profile) error

	// ListUsers returns every user with at least one health entry.
	ListUsers(ctx context.Context) ([]string, error)

	ExistsRecentByTrigger(ctx context.Context, userID, triggerID string, since time.Time) (bool, error)
	CountToday(ctx context.Context, userID string, dayStart time.Time) (model.DailyCount, error)
	InsertMessage(ctx context.Context, msg *model.FeedbackMessage, cooldownSince time.Time) error
	ListMessages(ctx context.Context, p ListMessagesParams) ([]model.FeedbackMessage, error)
	UpdateMessageStatus(ctx context.Context, userID, id string, status model.Status) (*model.FeedbackMessage, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
	CountUnread(ctx context.Context, userID string) (int, error)

	// Close closes the store.
	Close() error
}

var _ Store = (*SQLiteStore)(nil)
