package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidContext is returned by ParseEvalContext for unknown values.
var ErrInvalidContext = errors.New("invalid evaluation context")

// Stage names the step of a run that failed.
type Stage string

const (
	StageLoad     Stage = "load"
	StageBudget   Stage = "budget"
	StageCooldown Stage = "cooldown"
)

// Error is an upstream store failure during a run. The run is abandoned and
// nothing after the failing stage was persisted.
type Error struct {
	Stage  Stage
	UserID string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("evaluate %s: %s: %v", e.UserID, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsStoreFailure reports whether err came from a store read during a run.
func IsStoreFailure(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
