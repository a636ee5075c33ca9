package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/feedback-engine/internal/trigger"
)

// Config holds the engine tunables.
type Config struct {
	// MaxPerDay caps the messages persisted per user per day.
	MaxPerDay int
	// MaxUrgentPerDay caps messages with priority >= 9 per user per day.
	MaxUrgentPerDay int
	// DefaultCooldown applies to triggers without their own cooldown.
	DefaultCooldown time.Duration
	// WindowDays is how much history is loaded for evaluation.
	WindowDays int
	// MessageTTL sets ExpiresAt on new messages when positive.
	MessageTTL time.Duration
	// CooldownOverrides replaces the catalog cooldown per trigger id.
	CooldownOverrides map[string]time.Duration
}

// DefaultConfig returns the stock limits: five messages a day, two urgent,
// a 24h fallback cooldown and a 30 day window.
func DefaultConfig() Config {
	return Config{
		MaxPerDay:       5,
		MaxUrgentPerDay: 2,
		DefaultCooldown: 24 * time.Hour,
		WindowDays:      30,
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.MaxPerDay < 1 {
		errs = append(errs, fmt.Errorf("max_per_day must be >= 1, got %d", c.MaxPerDay))
	}
	if c.MaxUrgentPerDay < 1 {
		errs = append(errs, fmt.Errorf("max_urgent_per_day must be >= 1, got %d", c.MaxUrgentPerDay))
	}
	if c.MaxUrgentPerDay > c.MaxPerDay {
		errs = append(errs, fmt.Errorf("max_urgent_per_day (%d) exceeds max_per_day (%d)", c.MaxUrgentPerDay, c.MaxPerDay))
	}
	if c.WindowDays < 7 || c.WindowDays > 90 {
		errs = append(errs, fmt.Errorf("window_days must be within 7-90, got %d", c.WindowDays))
	}
	if c.DefaultCooldown < time.Hour {
		errs = append(errs, fmt.Errorf("default cooldown must be >= 1h, got %s", c.DefaultCooldown))
	}
	if c.MessageTTL < 0 {
		errs = append(errs, fmt.Errorf("message ttl must not be negative, got %s", c.MessageTTL))
	}
	for id, d := range c.CooldownOverrides {
		if _, ok := trigger.ByID(id); !ok {
			errs = append(errs, fmt.Errorf("cooldown override for unknown trigger %q", id))
		}
		if d < time.Hour {
			errs = append(errs, fmt.Errorf("cooldown override for %s must be >= 1h, got %s", id, d))
		}
	}
	return errors.Join(errs...)
}

// cooldown resolves the cooldown for a trigger: override, then catalog, then
// the default.
func (c Config) cooldown(d trigger.Definition) time.Duration {
	if o, ok := c.CooldownOverrides[d.ID]; ok {
		return o
	}
	if d.CooldownHours > 0 {
		return d.Cooldown()
	}
	return c.DefaultCooldown
}
