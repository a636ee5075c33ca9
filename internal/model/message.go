package model

import "time"

// UrgentPriority is the lowest priority counted against the urgent cap.
const UrgentPriority = 9

// Category groups triggers by the health area they inspect.
type Category string

const (
	CategorySleep       Category = "sleep"
	CategoryHydration   Category = "hydration"
	CategoryStress      Category = "stress"
	CategoryWeight      Category = "weight"
	CategoryCorrelation Category = "correlation"
	CategoryBehavioral  Category = "behavioral"
	CategoryAchievement Category = "achievement"
	CategoryWarning     Category = "warning"
	CategoryContextual  Category = "contextual"
)

// Categories lists every category in evaluation order.
var Categories = []Category{
	CategorySleep,
	CategoryHydration,
	CategoryStress,
	CategoryWeight,
	CategoryCorrelation,
	CategoryBehavioral,
	CategoryAchievement,
	CategoryWarning,
	CategoryContextual,
}

// ActionType is the kind of follow-up a message offers.
type ActionType string

const (
	ActionNavigate ActionType = "navigate"
	ActionLog      ActionType = "log"
	ActionShare    ActionType = "share"
)

// Action is the optional call-to-action attached to a message.
type Action struct {
	Type   ActionType `json:"type"`
	Label  string     `json:"label"`
	Screen string     `json:"screen,omitempty"`
}

// Status is the read state of a feedback message.
type Status string

const (
	StatusUnread    Status = "unread"
	StatusRead      Status = "read"
	StatusDismissed Status = "dismissed"
	StatusActedUpon Status = "acted_upon"
)

// ValidStatuses are the allowed message statuses.
var ValidStatuses = map[Status]bool{
	StatusUnread:    true,
	StatusRead:      true,
	StatusDismissed: true,
	StatusActedUpon: true,
}

// FeedbackMessage is a persisted, rendered trigger firing.
type FeedbackMessage struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	TriggerID   string         `json:"trigger_id"`
	Category    Category       `json:"category"`
	Priority    int            `json:"priority"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Action      *Action        `json:"action,omitempty"`
	Status      Status         `json:"status"`
	GeneratedAt time.Time      `json:"generated_at"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
	ActionTaken bool           `json:"action_taken"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Urgent reports whether the message counts against the urgent cap.
func (m FeedbackMessage) Urgent() bool { return m.Priority >= UrgentPriority }

// DailyCount is the number of messages already generated for a user today.
type DailyCount struct {
	Total  int `json:"total"`
	Urgent int `json:"urgent"`
}
