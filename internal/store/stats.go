package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath         string          `json:"db_path"`
	DBSizeBytes    int64           `json:"db_size_bytes"`
	Users          int             `json:"users"`
	HealthEntries  int             `json:"health_entries"`
	CompleteDays   int             `json:"complete_days"`
	MoodCheckins   int             `json:"mood_checkins"`
	Profiles       int             `json:"profiles"`
	Messages       int             `json:"messages"`
	UnreadMessages int             `json:"unread_messages"`
	Categories     []CategoryStats `json:"categories"`
}

// CategoryStats holds per-category message counts.
type CategoryStats struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Triggers int    `json:"triggers"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT user_id) FROM health_entries`).Scan(&st.Users)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM health_entries`).Scan(&st.HealthEntries)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM health_entries WHERE completed_at IS NOT NULL`).Scan(&st.CompleteDays)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mood_checkins`).Scan(&st.MoodCheckins)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&st.Profiles)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback_messages`).Scan(&st.Messages)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback_messages WHERE status = 'unread'`).Scan(&st.UnreadMessages)

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) as cnt, COUNT(DISTINCT trigger_id) as triggers
		FROM feedback_messages
		GROUP BY category ORDER BY cnt DESC, category`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var c CategoryStats
		rows.Scan(&c.Category, &c.Count, &c.Triggers)
		st.Categories = append(st.Categories, c)
	}

	return st, nil
}
