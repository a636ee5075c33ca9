package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rcliao/feedback-engine/internal/evaluator"
	"github.com/rcliao/feedback-engine/internal/model"
	"github.com/rcliao/feedback-engine/internal/stats"
	"github.com/rcliao/feedback-engine/internal/store"
)

// HealthSource is the read side of the health record store.
type HealthSource interface {
	// QueryEntries returns entries dated on or after since, newest first.
	QueryEntries(ctx context.Context, userID string, since time.Time) ([]model.HealthEntry, error)
	// QueryMoodCheckins returns check-ins dated on or after since, newest first.
	QueryMoodCheckins(ctx context.Context, userID string, since time.Time) ([]model.MoodCheckin, error)
	// GetProfile returns store.ErrNotFound when the user has none.
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
}

// MessageStore is where generated messages go.
type MessageStore interface {
	ExistsRecentByTrigger(ctx context.Context, userID, triggerID string, since time.Time) (bool, error)
	CountToday(ctx context.Context, userID string, dayStart time.Time) (model.DailyCount, error)
	// InsertMessage stores msg unless the same trigger already fired for the
	// user at or after cooldownSince, in which case it returns
	// store.ErrCooldownActive.
	InsertMessage(ctx context.Context, msg *model.FeedbackMessage, cooldownSince time.Time) error
}

// Result summarizes one invocation.
type Result struct {
	RunID    string                  `json:"run_id"`
	UserID   string                  `json:"user_id"`
	Context  EvalContext             `json:"context"`
	Messages []model.FeedbackMessage `json:"messages"`
	// TotalProposed counts evaluator output before cooldown filtering.
	TotalProposed int `json:"total_proposed"`
	// TotalGenerated counts candidates that survived cooldown filtering.
	TotalGenerated int   `json:"total_generated"`
	TotalSaved     int   `json:"total_saved"`
	LimitReached   bool  `json:"limit_reached,omitempty"`
	State          State `json:"state"`
}

// Engine evaluates every trigger for a user and persists what the display
// policy admits. It is safe for concurrent use; each call is independent.
type Engine struct {
	health     HealthSource
	messages   MessageStore
	cfg        Config
	evaluators []evaluator.Evaluator
	logger     *zap.Logger
	now        func() time.Time
	loc        *time.Location
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLocation sets the zone used for calendar days. Default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithEvaluators replaces the default category evaluators.
func WithEvaluators(evs ...evaluator.Evaluator) Option {
	return func(e *Engine) {
		e.evaluators = evs
	}
}

// New builds an engine over the two stores. cfg is validated.
func New(health HealthSource, messages MessageStore, cfg Config, opts ...Option) (*Engine, error) {
	if health == nil || messages == nil {
		return nil, errors.New("engine: health source and message store are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	e := &Engine{
		health:     health,
		messages:   messages,
		cfg:        cfg,
		evaluators: evaluator.Default(),
		logger:     zap.NewNop(),
		now:        time.Now,
		loc:        time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// EvaluateAllTriggers runs one evaluation for userID.
//
// Insufficient data and an exhausted daily budget are not errors. A store
// read failure returns *Error and nothing is persisted. Insert failures are
// logged and skipped. On cancellation the messages saved so far are returned
// together with the context error.
func (e *Engine) EvaluateAllTriggers(ctx context.Context, userID string, evalCtx EvalContext) (*Result, error) {
	now := e.now().In(e.loc)
	res := &Result{
		RunID:    uuid.Must(uuid.NewV7()).String(),
		UserID:   userID,
		Context:  evalCtx,
		Messages: []model.FeedbackMessage{},
		State:    StateIdle,
	}
	log := e.logger.With(
		zap.String("run_id", res.RunID),
		zap.String("user_id", userID),
		zap.String("context", string(evalCtx)),
	)
	transition := func(s State) {
		res.State = s
		log.Debug("state", zap.String("state", string(s)))
	}

	transition(StateLoading)
	w, err := e.load(ctx, userID, now)
	if err != nil {
		return nil, &Error{Stage: StageLoad, UserID: userID, Err: err}
	}
	if len(w.Entries) == 0 {
		transition(StateDoneNoData)
		return res, nil
	}

	sent, err := e.messages.CountToday(ctx, userID, stats.StartOfDay(now))
	if err != nil {
		return nil, &Error{Stage: StageBudget, UserID: userID, Err: err}
	}
	if sent.Total >= e.cfg.MaxPerDay {
		res.LimitReached = true
		transition(StateDoneSkipped)
		log.Info("daily limit reached", zap.Int("sent", sent.Total))
		return res, nil
	}

	transition(StateEvaluating)
	var proposed []evaluator.Candidate
	for _, ev := range e.evaluators {
		proposed = append(proposed, ev.Evaluate(w)...)
	}
	res.TotalProposed = len(proposed)

	var generated []evaluator.Candidate
	for _, c := range proposed {
		since := now.Add(-e.cfg.cooldown(c.Definition))
		recent, err := e.messages.ExistsRecentByTrigger(ctx, userID, c.Definition.ID, since)
		if err != nil {
			return nil, &Error{Stage: StageCooldown, UserID: userID, Err: err}
		}
		if recent {
			log.Debug("cooldown active", zap.String("trigger", c.Definition.ID))
			continue
		}
		generated = append(generated, c)
	}
	res.TotalGenerated = len(generated)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	transition(StateFiltering)
	admitted := ApplyDisplayPolicy(generated, sent, Budget{
		MaxPerDay:       e.cfg.MaxPerDay,
		MaxUrgentPerDay: e.cfg.MaxUrgentPerDay,
	})

	transition(StatePersisting)
	for _, c := range admitted {
		if err := ctx.Err(); err != nil {
			res.TotalSaved = len(res.Messages)
			return res, err
		}
		msg := e.render(c, userID, now, evalCtx)
		if missing := UnresolvedPlaceholders(msg.Message); len(missing) > 0 {
			log.Warn("unresolved placeholders",
				zap.String("trigger", c.Definition.ID),
				zap.Strings("placeholders", missing))
		}
		since := now.Add(-e.cfg.cooldown(c.Definition))
		if err := e.messages.InsertMessage(ctx, msg, since); err != nil {
			if errors.Is(err, store.ErrCooldownActive) {
				log.Debug("cooldown active at insert", zap.String("trigger", c.Definition.ID))
				continue
			}
			log.Warn("persist message", zap.String("trigger", c.Definition.ID), zap.Error(err))
			continue
		}
		res.Messages = append(res.Messages, *msg)
	}
	res.TotalSaved = len(res.Messages)

	transition(StateDone)
	log.Info("evaluation complete",
		zap.Int("proposed", res.TotalProposed),
		zap.Int("generated", res.TotalGenerated),
		zap.Int("saved", res.TotalSaved))
	return res, nil
}

// load reads the window concurrently and rebases entry dates onto the
// engine's location.
func (e *Engine) load(ctx context.Context, userID string, now time.Time) (*evaluator.Window, error) {
	since := stats.StartOfDay(now).AddDate(0, 0, -e.cfg.WindowDays)
	w := &evaluator.Window{UserID: userID, Now: now}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := e.health.QueryEntries(gctx, userID, since)
		if err != nil {
			return fmt.Errorf("query entries: %w", err)
		}
		w.Entries = entries
		return nil
	})
	g.Go(func() error {
		moods, err := e.health.QueryMoodCheckins(gctx, userID, since)
		if err != nil {
			return fmt.Errorf("query mood checkins: %w", err)
		}
		w.Moods = moods
		return nil
	})
	g.Go(func() error {
		p, err := e.health.GetProfile(gctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		w.Profile = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range w.Entries {
		w.Entries[i].Date = e.rebase(w.Entries[i].Date)
	}
	for i := range w.Moods {
		w.Moods[i].Date = e.rebase(w.Moods[i].Date)
	}
	return w, nil
}

func (e *Engine) rebase(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.loc)
}

func (e *Engine) render(c evaluator.Candidate, userID string, now time.Time, evalCtx EvalContext) *model.FeedbackMessage {
	def := c.Definition
	meta := make(map[string]any, len(c.Data)+1)
	for k, v := range c.Data {
		meta[k] = v
	}
	meta["context"] = string(evalCtx)

	msg := &model.FeedbackMessage{
		UserID:      userID,
		TriggerID:   def.ID,
		Category:    def.Category,
		Priority:    def.Priority,
		Title:       def.Title,
		Message:     RenderTemplate(def.Template, c.Data),
		Status:      model.StatusUnread,
		GeneratedAt: now,
		Metadata:    meta,
	}
	if def.Action != nil {
		a := *def.Action
		msg.Action = &a
	}
	if e.cfg.MessageTTL > 0 {
		exp := now.Add(e.cfg.MessageTTL)
		msg.ExpiresAt = &exp
	}
	return msg
}
