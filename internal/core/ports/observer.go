package ports

import "time"

// OpOutcome classifies how a cache operation resolved.
type OpOutcome string

const (
	OutcomeHit    OpOutcome = "hit"
	OutcomeMiss   OpOutcome = "miss"
	OutcomeAbsent OpOutcome = "absent"
	OutcomeWrite  OpOutcome = "write"
	OutcomeError  OpOutcome = "error"
)

// OpEvent describes the outcome of one orchestrator operation. Events are
// diagnostics for operators; core logic never consumes them.
type OpEvent struct {
	Op         string
	Collection string
	ID         string
	Field      string
	Outcome    OpOutcome
	Duration   time.Duration
	Err        error
}

// OpObserver receives one event per orchestrator operation. Implementations
// must not block; the orchestrator invokes them synchronously on the call path.
type OpObserver interface {
	Observe(ev OpEvent)
}

// OpObserverFunc adapts a function to the OpObserver interface.
type OpObserverFunc func(ev OpEvent)

func (f OpObserverFunc) Observe(ev OpEvent) { f(ev) }
