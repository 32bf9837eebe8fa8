// Package runctx tracks the wall-clock budget of one scheduled job run.
// Cloud Run kills the job shortly after the budget, so the engine asks
// ShouldStop between rows and winds down with time to flush.
package runctx

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBudget leaves a minute of slack inside a five-minute schedule tick.
const DefaultBudget = 240 * time.Second

// RunContext carries the start time, budget and latched stop flag for a
// single run. It is a plain value passed into the engine; there is no
// package-level run state.
type RunContext struct {
	start   time.Time
	budget  time.Duration
	stopped bool
}

// New starts the clock for a run. A non-positive budget falls back to
// DefaultBudget.
func New(budget time.Duration) *RunContext {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &RunContext{start: time.Now(), budget: budget}
}

// ShouldStop reports whether the run should wind down: either the context
// was cancelled (termination signal from the host) or the elapsed time
// reached the budget. Once true it stays true; a run never un-stops.
func (r *RunContext) ShouldStop(ctx context.Context) bool {
	if r.stopped {
		return true
	}

	if err := ctx.Err(); err != nil {
		log.Info().Msg("Cancellation requested, will exit after current row")
		r.stopped = true
		return true
	}

	if elapsed := time.Since(r.start); elapsed >= r.budget {
		log.Warn().
			Dur("elapsed", elapsed).
			Dur("budget", r.budget).
			Msg("Approaching time limit, will exit after current row")
		r.stopped = true
		return true
	}

	return false
}

// Elapsed returns the wall time since the run started.
func (r *RunContext) Elapsed() time.Duration {
	return time.Since(r.start)
}
