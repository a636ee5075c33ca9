// Package trigger holds the static catalog of feedback triggers.
//
// The catalog is plain data: every definition carries its stable id, the
// category it belongs to, a priority from 1 (informational) to 10 (urgent),
// the message copy with {placeholder} slots, an optional follow-up action and
// the cooldown that must pass before it fires again for the same user.
// Adding a trigger means adding a row here and a rule to the matching
// evaluator; nothing else changes.
package trigger

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/rcliao/feedback-engine/internal/model"
)

// Cooldown bounds enforced by Validate.
const (
	MinCooldownHours = 1
	MaxCooldownHours = 2160
)

// Definition is one catalog row. Treat values as read-only.
type Definition struct {
	ID            string         `json:"id"`
	Category      model.Category `json:"category"`
	Key           string         `json:"key"`
	Priority      int            `json:"priority"`
	Title         string         `json:"title"`
	Template      string         `json:"message_template"`
	Action        *model.Action  `json:"action,omitempty"`
	CooldownHours int            `json:"cooldown_hours"`
}

// Cooldown returns CooldownHours as a duration.
func (d Definition) Cooldown() time.Duration {
	return time.Duration(d.CooldownHours) * time.Hour
}

// Urgent reports whether the definition counts against the urgent cap.
func (d Definition) Urgent() bool { return d.Priority >= model.UrgentPriority }

// Placeholders returns the placeholder names in the template, in order of
// first appearance.
func (d Definition) Placeholders() []string {
	matches := placeholderRe.FindAllStringSubmatch(d.Template, -1)
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

var byID = func() map[string]*Definition {
	m := make(map[string]*Definition, len(catalog))
	for i := range catalog {
		m[catalog[i].ID] = &catalog[i]
	}
	return m
}()

// ByID looks up a definition by its stable id.
func ByID(id string) (Definition, bool) {
	d, ok := byID[id]
	if !ok {
		return Definition{}, false
	}
	return *d, true
}

// MustByID is ByID for ids known at compile time. It panics on an unknown id.
func MustByID(id string) Definition {
	d, ok := ByID(id)
	if !ok {
		panic(fmt.Sprintf("trigger: unknown id %q", id))
	}
	return d
}

// Get looks up a definition by category and key.
func Get(cat model.Category, key string) (Definition, bool) {
	for _, d := range catalog {
		if d.Category == cat && d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}

// ListByCategory returns the definitions of one category in catalog order.
func ListByCategory(cat model.Category) []Definition {
	var out []Definition
	for _, d := range catalog {
		if d.Category == cat {
			out = append(out, d)
		}
	}
	return out
}

// All returns a copy of the whole catalog.
func All() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Counts returns the number of definitions per category.
func Counts() map[model.Category]int {
	out := make(map[model.Category]int)
	for _, d := range catalog {
		out[d.Category]++
	}
	return out
}

// Validate checks the catalog for duplicate ids or keys, out-of-range
// priorities and cooldowns, and malformed templates.
func Validate() error {
	return validate(catalog)
}

func validate(defs []Definition) error {
	var errs []error
	ids := make(map[string]bool)
	keys := make(map[string]bool)
	known := make(map[model.Category]bool)
	for _, c := range model.Categories {
		known[c] = true
	}
	for _, d := range defs {
		if d.ID == "" {
			errs = append(errs, fmt.Errorf("%s/%s: empty id", d.Category, d.Key))
			continue
		}
		if ids[d.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id", d.ID))
		}
		ids[d.ID] = true
		ck := string(d.Category) + "/" + d.Key
		if keys[ck] {
			errs = append(errs, fmt.Errorf("%s: duplicate key %s", d.ID, ck))
		}
		keys[ck] = true
		if !known[d.Category] {
			errs = append(errs, fmt.Errorf("%s: unknown category %q", d.ID, d.Category))
		}
		if d.Priority < 1 || d.Priority > 10 {
			errs = append(errs, fmt.Errorf("%s: priority %d out of range 1-10", d.ID, d.Priority))
		}
		if d.CooldownHours < MinCooldownHours || d.CooldownHours > MaxCooldownHours {
			errs = append(errs, fmt.Errorf("%s: cooldown %dh out of range %d-%d", d.ID, d.CooldownHours, MinCooldownHours, MaxCooldownHours))
		}
		if d.Title == "" || d.Template == "" {
			errs = append(errs, fmt.Errorf("%s: missing title or template", d.ID))
		}
		if err := checkBraces(d.Template); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.ID, err))
		}
		if d.Action != nil && d.Action.Label == "" {
			errs = append(errs, fmt.Errorf("%s: action without label", d.ID))
		}
	}
	return errors.Join(errs...)
}

// checkBraces rejects unbalanced or nested braces in a template.
func checkBraces(tmpl string) error {
	open := false
	for _, r := range tmpl {
		switch r {
		case '{':
			if open {
				return errors.New("nested '{' in template")
			}
			open = true
		case '}':
			if !open {
				return errors.New("unmatched '}' in template")
			}
			open = false
		}
	}
	if open {
		return errors.New("unterminated placeholder in template")
	}
	return nil
}
