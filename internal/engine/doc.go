// Package engine runs the feedback evaluation for one user.
//
// An invocation walks a fixed sequence of states:
//
//	Idle -> Loading -> Evaluating -> Filtering -> Persisting -> Done
//
// Loading reads the user's recent entries, mood check-ins and profile. With
// no entries the run ends in DoneNoData. If today's message budget is already
// spent the run ends in DoneSkipped with LimitReached set.
//
// Evaluating runs every category evaluator in catalog order and drops any
// candidate whose trigger fired inside its cooldown. Filtering applies the
// display policy: highest priority first, capped per day and per urgent
// message. Persisting renders each admitted candidate and inserts it; one
// failed insert does not stop the rest.
//
// The engine holds no state between invocations. Time comes from an injected
// clock so every rule is reproducible in tests.
package engine
