package engine

import "fmt"

// EvalContext records why an evaluation ran.
type EvalContext string

const (
	ContextManual    EvalContext = "manual"
	ContextScheduled EvalContext = "scheduled"
	ContextDataEntry EvalContext = "data_entry"
	ContextEndOfDay  EvalContext = "end_of_day"
)

// ParseEvalContext validates s. An empty string means manual.
func ParseEvalContext(s string) (EvalContext, error) {
	switch c := EvalContext(s); c {
	case "":
		return ContextManual, nil
	case ContextManual, ContextScheduled, ContextDataEntry, ContextEndOfDay:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidContext, s)
	}
}

// State is a step of a single run.
type State string

const (
	StateIdle        State = "idle"
	StateLoading     State = "loading"
	StateEvaluating  State = "evaluating"
	StateFiltering   State = "filtering"
	StatePersisting  State = "persisting"
	StateDone        State = "done"
	StateDoneSkipped State = "done_skipped"
	StateDoneNoData  State = "done_no_data"
)
