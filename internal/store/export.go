package store

import (
	"context"
	"strings"
	"time"

	"github.com/rcliao/feedback-engine/internal/model"
)

// Export is a full dump of the store, optionally scoped to one user.
type Export struct {
	ExportedAt time.Time               `json:"exported_at"`
	Entries    []model.HealthEntry     `json:"entries"`
	Moods      []model.MoodCheckin     `json:"moods"`
	Profiles   []model.Profile         `json:"profiles"`
	Messages   []model.FeedbackMessage `json:"messages"`
}

// ImportResult counts the rows written by Import.
type ImportResult struct {
	Entries  int `json:"entries"`
	Moods    int `json:"moods"`
	Profiles int `json:"profiles"`
	Messages int `json:"messages"`
}

func userFilter(userID string) (string, []interface{}) {
	where := []string{"1 = 1"}
	args := []interface{}{}
	if userID != "" {
		where = append(where, "user_id = ?")
		args = append(args, userID)
	}
	return strings.Join(where, " AND "), args
}

// ExportAll returns every row, optionally filtered by user.
func (s *SQLiteStore) ExportAll(ctx context.Context, userID string) (*Export, error) {
	where, args := userFilter(userID)
	out := &Export{ExportedAt: time.Now().UTC()}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM health_entries WHERE `+where+` ORDER BY user_id, date`, args...)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out.Entries = append(out.Entries, e)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx,
		`SELECT id, user_id, date, timestamp, value, emoji, label, factors, type, notes
		 FROM mood_checkins WHERE `+where+` ORDER BY user_id, timestamp`, args...)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		m, err := scanMood(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out.Moods = append(out.Moods, m)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx,
		`SELECT user_id FROM profiles WHERE `+where+` ORDER BY user_id`, args...)
	if err != nil {
		return nil, err
	}
	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			rows.Close()
			return nil, err
		}
		users = append(users, u)
	}
	rows.Close()
	for _, u := range users {
		p, err := s.GetProfile(ctx, u)
		if err != nil {
			return nil, err
		}
		out.Profiles = append(out.Profiles, *p)
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM feedback_messages WHERE `+where+` ORDER BY user_id, generated_at`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out.Messages = append(out.Messages, m)
	}
	return out, rows.Err()
}

// Import loads an export. Entries and profiles are upserted; check-ins and
// messages whose id already exists are skipped.
func (s *SQLiteStore) Import(ctx context.Context, ex *Export) (ImportResult, error) {
	var res ImportResult
	for i := range ex.Entries {
		if err := s.SaveEntry(ctx, &ex.Entries[i]); err != nil {
			return res, err
		}
		res.Entries++
	}
	for i := range ex.Moods {
		m := &ex.Moods[i]
		if m.ID == "" {
			m.ID = s.newID()
		}
		if err := s.insertMood(ctx, m, true); err != nil {
			return res, err
		}
		res.Moods++
	}
	for i := range ex.Profiles {
		if err := s.SetProfile(ctx, &ex.Profiles[i]); err != nil {
			return res, err
		}
		res.Profiles++
	}
	for i := range ex.Messages {
		m := &ex.Messages[i]
		if m.ID == "" {
			m.ID = s.newID()
		}
		ok, err := s.importMessage(ctx, m)
		if err != nil {
			return res, err
		}
		if ok {
			res.Messages++
		}
	}
	return res, nil
}
