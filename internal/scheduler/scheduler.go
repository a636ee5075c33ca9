// Package scheduler runs the feedback engine for every known user on a cron
// schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rcliao/feedback-engine/internal/engine"
)

// DefaultConcurrency bounds how many users are evaluated at once.
const DefaultConcurrency = 4

// Runner evaluates one user.
type Runner interface {
	EvaluateAllTriggers(ctx context.Context, userID string, evalCtx engine.EvalContext) (*engine.Result, error)
}

// UserLister returns the users to evaluate.
type UserLister interface {
	ListUsers(ctx context.Context) ([]string, error)
}

// Summary reports one pass over all users.
type Summary struct {
	Context      engine.EvalContext `json:"context"`
	Users        int                `json:"users"`
	Failed       int                `json:"failed"`
	Saved        int                `json:"saved"`
	LimitReached int                `json:"limit_reached"`
	Duration     time.Duration      `json:"duration"`
}

// Scheduler owns a cron instance with a single evaluation job.
type Scheduler struct {
	cron    *cron.Cron
	runner  Runner
	users   UserLister
	logger  *zap.Logger
	evalCtx engine.EvalContext
	timeout time.Duration
	limit   int
	loc     *time.Location

	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithEvalContext sets the context recorded on scheduled runs. Default is
// end_of_day.
func WithEvalContext(c engine.EvalContext) Option {
	return func(s *Scheduler) { s.evalCtx = c }
}

// WithTimeout bounds each user's evaluation. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Scheduler) { s.timeout = d }
}

// WithConcurrency sets how many users run at once.
func WithConcurrency(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithLocation sets the zone the cron spec is read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// New registers one job for spec, a standard five-field cron expression.
func New(spec string, runner Runner, users UserLister, logger *zap.Logger, opts ...Option) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scheduler{
		runner:  runner,
		users:   users,
		logger:  logger.Named("scheduler"),
		evalCtx: engine.ContextEndOfDay,
		limit:   DefaultConcurrency,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	cl := cronLogger{s.logger.Sugar()}
	s.cron = cron.New(
		cron.WithLocation(s.loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	if _, err := s.RunOnce(s.ctx, s.evalCtx); err != nil {
		s.logger.Error("scheduled run failed", zap.Error(err))
	}
}

// Start begins firing the job in the background.
func (s *Scheduler) Start() {
	s.logger.Info("starting", zap.Time("next", s.Next()))
	s.cron.Start()
}

// Stop cancels in-flight evaluations and returns a context that is done once
// the running job has returned.
func (s *Scheduler) Stop() context.Context {
	s.cancel()
	return s.cron.Stop()
}

// Next returns when the job fires next, or the zero time if not started.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	if !entries[0].Next.IsZero() {
		return entries[0].Next
	}
	return entries[0].Schedule.Next(time.Now().In(s.loc))
}

// RunOnce evaluates every user. A failure for one user is logged and counted
// but does not stop the others; only a failure to list users is returned.
func (s *Scheduler) RunOnce(ctx context.Context, evalCtx engine.EvalContext) (Summary, error) {
	start := time.Now()
	sum := Summary{Context: evalCtx}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return sum, fmt.Errorf("list users: %w", err)
	}
	sum.Users = len(users)

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(s.limit)
	for _, u := range users {
		u := u
		g.Go(func() error {
			res, err := s.evaluate(ctx, u, evalCtx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				sum.Failed++
				s.logger.Warn("evaluate user", zap.String("user_id", u), zap.Error(err))
				return nil
			}
			sum.Saved += res.TotalSaved
			if res.LimitReached {
				sum.LimitReached++
			}
			return nil
		})
	}
	g.Wait()

	sum.Duration = time.Since(start)
	s.logger.Info("run complete",
		zap.String("context", string(evalCtx)),
		zap.Int("users", sum.Users),
		zap.Int("failed", sum.Failed),
		zap.Int("saved", sum.Saved),
		zap.Duration("duration", sum.Duration))
	return sum, nil
}

func (s *Scheduler) evaluate(ctx context.Context, userID string, evalCtx engine.EvalContext) (*engine.Result, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.runner.EvaluateAllTriggers(ctx, userID, evalCtx)
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
