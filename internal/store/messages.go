package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rcliao/feedback-engine/internal/model"
)

const messageColumns = `id, user_id, trigger_id, category, priority, title, message,
	action_type, action_label, action_screen, status, generated_at, expires_at, action_taken, metadata`

// ExistsRecentByTrigger reports whether triggerID fired for the user at or
// after since.
func (s *SQLiteStore) ExistsRecentByTrigger(ctx context.Context, userID, triggerID string, since time.Time) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM feedback_messages
		 WHERE user_id = ? AND trigger_id = ? AND generated_at >= ?)`,
		userID, triggerID, formatTime(since)).Scan(&exists)
	return exists, err
}

// CountToday counts the messages generated in the 24h starting at dayStart.
func (s *SQLiteStore) CountToday(ctx context.Context, userID string, dayStart time.Time) (model.DailyCount, error) {
	var c model.DailyCount
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN priority >= ? THEN 1 ELSE 0 END), 0)
		 FROM feedback_messages
		 WHERE user_id = ? AND generated_at >= ? AND generated_at < ?`,
		model.UrgentPriority, userID, formatTime(dayStart), formatTime(dayStart.AddDate(0, 0, 1))).
		Scan(&c.Total, &c.Urgent)
	return c, err
}

// InsertMessage stores msg unless the same trigger already fired for the
// user at or after cooldownSince. The check and the insert are one
// statement, so concurrent runs cannot both pass the cooldown.
func (s *SQLiteStore) InsertMessage(ctx context.Context, msg *model.FeedbackMessage, cooldownSince time.Time) error {
	if msg.ID == "" {
		msg.ID = s.newID()
	}
	if msg.Status == "" {
		msg.Status = model.StatusUnread
	}
	if msg.GeneratedAt.IsZero() {
		msg.GeneratedAt = time.Now()
	}
	args, err := messageArgs(msg)
	if err != nil {
		return err
	}
	args = append(args, msg.UserID, msg.TriggerID, formatTime(cooldownSince))

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback_messages (`+messageColumns+`)
		 SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		 WHERE NOT EXISTS (
			SELECT 1 FROM feedback_messages
			WHERE user_id = ? AND trigger_id = ? AND generated_at >= ?
		 )`, args...)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s for %s: %w", msg.TriggerID, msg.UserID, ErrCooldownActive)
	}
	return nil
}

// importMessage inserts msg as-is, skipping ids that already exist.
func (s *SQLiteStore) importMessage(ctx context.Context, msg *model.FeedbackMessage) (bool, error) {
	args, err := messageArgs(msg)
	if err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO feedback_messages (`+messageColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return false, fmt.Errorf("import message: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func messageArgs(m *model.FeedbackMessage) ([]interface{}, error) {
	var actionType, actionLabel, actionScreen *string
	if m.Action != nil {
		actionType = nullString(string(m.Action.Type))
		actionLabel = nullString(m.Action.Label)
		actionScreen = nullString(m.Action.Screen)
	}
	var metaJSON *string
	if len(m.Metadata) > 0 {
		b, err := json.Marshal(m.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encode metadata: %w", err)
		}
		v := string(b)
		metaJSON = &v
	}
	return []interface{}{
		m.ID, m.UserID, m.TriggerID, string(m.Category), m.Priority, m.Title, m.Message,
		actionType, actionLabel, actionScreen, string(m.Status), formatTime(m.GeneratedAt),
		nullTime(m.ExpiresAt), m.ActionTaken, metaJSON,
	}, nil
}

// ListMessages returns unexpired messages, highest priority first and newest
// first within a priority.
func (s *SQLiteStore) ListMessages(ctx context.Context, p ListMessagesParams) ([]model.FeedbackMessage, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	now := formatTime(time.Now())
	where := []string{"user_id = ?", "(expires_at IS NULL OR expires_at > ?)"}
	args := []interface{}{p.UserID, now}

	if p.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(p.Status))
	}
	if p.Category != "" {
		where = append(where, "category = ?")
		args = append(args, string(p.Category))
	}
	if p.MinPriority > 0 {
		where = append(where, "priority >= ?")
		args = append(args, p.MinPriority)
	}

	query := fmt.Sprintf(`SELECT %s FROM feedback_messages
		WHERE %s
		ORDER BY priority DESC, generated_at DESC
		LIMIT ?`, messageColumns, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []model.FeedbackMessage
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (s *SQLiteStore) getMessage(ctx context.Context, userID, id string) (*model.FeedbackMessage, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM feedback_messages WHERE id = ? AND user_id = ?`, id, userID)
	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("message %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMessageStatus sets the status of one of the user's messages.
// Moving to acted_upon also sets ActionTaken.
func (s *SQLiteStore) UpdateMessageStatus(ctx context.Context, userID, id string, status model.Status) (*model.FeedbackMessage, error) {
	if !model.ValidStatuses[status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE feedback_messages
		 SET status = ?, action_taken = CASE WHEN ? THEN 1 ELSE action_taken END
		 WHERE id = ? AND user_id = ?`,
		string(status), status == model.StatusActedUpon, id, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("message %s: %w", id, ErrNotFound)
	}
	return s.getMessage(ctx, userID, id)
}

// MarkAllRead marks every unread message as read and returns how many changed.
func (s *SQLiteStore) MarkAllRead(ctx context.Context, userID string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE feedback_messages SET status = 'read' WHERE user_id = ? AND status = 'unread'`, userID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// CountUnread counts unexpired unread messages.
func (s *SQLiteStore) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM feedback_messages
		 WHERE user_id = ? AND status = 'unread' AND (expires_at IS NULL OR expires_at > ?)`,
		userID, formatTime(time.Now())).Scan(&n)
	return n, err
}

func scanMessage(row scanner) (model.FeedbackMessage, error) {
	var m model.FeedbackMessage
	var category, status, generatedAt string
	var actionType, actionLabel, actionScreen, expiresAt, meta sql.NullString

	err := row.Scan(
		&m.ID, &m.UserID, &m.TriggerID, &category, &m.Priority, &m.Title, &m.Message,
		&actionType, &actionLabel, &actionScreen, &status, &generatedAt, &expiresAt,
		&m.ActionTaken, &meta,
	)
	if err != nil {
		return m, err
	}
	m.Category = model.Category(category)
	m.Status = model.Status(status)
	m.GeneratedAt = parseTime(generatedAt)
	m.ExpiresAt = timePtr(expiresAt)
	if actionType.Valid {
		m.Action = &model.Action{
			Type:   model.ActionType(actionType.String),
			Label:  actionLabel.String,
			Screen: actionScreen.String,
		}
	}
	if meta.Valid {
		json.Unmarshal([]byte(meta.String), &m.Metadata)
	}
	return m, nil
}
