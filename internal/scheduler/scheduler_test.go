package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rcliao/feedback-engine/internal/engine"
)

type staticUsers []string

func (u staticUsers) ListUsers(context.Context) ([]string, error) { return u, nil }

type failingUsers struct{}

func (failingUsers) ListUsers(context.Context) ([]string, error) {
	return nil, errors.New("db locked")
}

type fakeRunner struct {
	mu       sync.Mutex
	seen     map[string]engine.EvalContext
	fail     map[string]bool
	limited  map[string]bool
	delay    time.Duration
	active   atomic.Int32
	peak     atomic.Int32
	deadline atomic.Bool
}

func (r *fakeRunner) EvaluateAllTriggers(ctx context.Context, userID string, evalCtx engine.EvalContext) (*engine.Result, error) {
	n := r.active.Add(1)
	defer r.active.Add(-1)
	for {
		p := r.peak.Load()
		if n <= p || r.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if _, ok := ctx.Deadline(); ok {
		r.deadline.Store(true)
	}
	time.Sleep(r.delay)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen == nil {
		r.seen = map[string]engine.EvalContext{}
	}
	r.seen[userID] = evalCtx
	if r.fail[userID] {
		return nil, &engine.Error{Stage: engine.StageLoad, UserID: userID, Err: errors.New("boom")}
	}
	return &engine.Result{UserID: userID, TotalSaved: 2, LimitReached: r.limited[userID]}, nil
}

func TestRunOnceEvaluatesEveryUser(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := &fakeRunner{
		fail:    map[string]bool{"bob": true},
		limited: map[string]bool{"carol": true},
	}
	s, err := New("0 21 * * *", r, staticUsers{"alice", "bob", "carol", "dave"}, zap.New(core))
	require.NoError(t, err)

	sum, err := s.RunOnce(context.Background(), engine.ContextScheduled)
	require.NoError(t, err)
	assert.Equal(t, engine.ContextScheduled, sum.Context)
	assert.Equal(t, 4, sum.Users)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 6, sum.Saved)
	assert.Equal(t, 1, sum.LimitReached)

	assert.Len(t, r.seen, 4)
	for _, c := range r.seen {
		assert.Equal(t, engine.ContextScheduled, c)
	}
	assert.Equal(t, 1, logs.FilterMessage("evaluate user").Len())
}

func TestRunOnceBoundsConcurrency(t *testing.T) {
	r := &fakeRunner{delay: 20 * time.Millisecond}
	users := staticUsers{"u1", "u2", "u3", "u4", "u5", "u6", "u7", "u8", "u9", "u10"}
	s, err := New("0 21 * * *", r, users, nil, WithConcurrency(3))
	require.NoError(t, err)

	sum, err := s.RunOnce(context.Background(), engine.ContextEndOfDay)
	require.NoError(t, err)
	assert.Equal(t, 10, sum.Users)
	assert.LessOrEqual(t, r.peak.Load(), int32(3))
	assert.GreaterOrEqual(t, r.peak.Load(), int32(1))
}

func TestRunOnceAppliesTimeout(t *testing.T) {
	r := &fakeRunner{}
	s, err := New("0 21 * * *", r, staticUsers{"u1"}, nil, WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = s.RunOnce(context.Background(), engine.ContextEndOfDay)
	require.NoError(t, err)
	assert.True(t, r.deadline.Load())
}

func TestRunOnceListFailure(t *testing.T) {
	s, err := New("0 21 * * *", &fakeRunner{}, failingUsers{}, nil)
	require.NoError(t, err)

	_, err = s.RunOnce(context.Background(), engine.ContextEndOfDay)
	assert.ErrorContains(t, err, "list users")
}

func TestNewRejectsBadSpec(t *testing.T) {
	_, err := New("every evening", &fakeRunner{}, staticUsers{}, nil)
	assert.Error(t, err)

	_, err = New("0 0 21 * * *", &fakeRunner{}, staticUsers{}, nil)
	assert.Error(t, err, "six fields are not a standard spec")
}

func TestStartStop(t *testing.T) {
	utc := time.UTC
	s, err := New("0 21 * * *", &fakeRunner{}, staticUsers{}, nil, WithLocation(utc))
	require.NoError(t, err)

	next := s.Next()
	assert.Equal(t, 21, next.Hour())
	assert.Equal(t, 0, next.Minute())

	s.Start()
	select {
	case <-s.Stop().Done():
	case <-time.After(time.Second):
		t.Fatal("stop did not return")
	}
}
