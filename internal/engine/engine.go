// Package engine drives the match clock and applies operator actions through
// the match state machine.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/matchday/internal/match"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/scheduler"
)

// New creates a new Engine. A zero interval means DefaultTickInterval and a
// nil clock means the real clock.
func New(store Store, metrics metrics.Metrics, clock clockwork.Clock, interval time.Duration) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Engine{
		store:    store,
		metrics:  metrics,
		clock:    clock,
		interval: interval,
	}
}

// Tick writes one minute forward for every live, unpaused match in snapshot
// that is below match.MaxMinute. Each match is patched on its own so a
// failure never blocks the rest. It returns the updated documents that the
// store accepted together with the joined failures. A match that stopped
// running or had its minute changed since the snapshot is skipped.
func (e *Engine) Tick(ctx context.Context, snapshot []match.Match) ([]match.Match, error) {
	e.metrics.IncTicks()

	var (
		updated []match.Match
		errs    []error
	)
	for _, m := range snapshot {
		p, ok := match.Tick(m)
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		startTime := e.clock.Now()
		doc, err := e.store.PatchMatch(ctx, m.ID, p)
		e.metrics.ObservePatchDuration(e.clock.Since(startTime).Seconds())
		if errors.Is(err, match.ErrStale) {
			log.Debug("Skipped tick for a match changed since the last refresh", "matchID", m.ID, "error", err)
			continue
		}
		if err != nil {
			log.Warn("Failed to advance match clock", "matchID", m.ID, "minute", *p.CurrentMinute, "error", err)
			e.metrics.IncTickFailures()
			errs = append(errs, fmt.Errorf("tick match %s: %w", m.ID, err))
			continue
		}
		log.Debug("Advanced match clock", "matchID", m.ID, "minute", doc.CurrentMinute)
		e.metrics.IncMinutesAdvanced()
		updated = append(updated, doc)
	}
	return updated, errors.Join(errs...)
}

// Start ticks the cache's snapshot every interval until ctx is cancelled or
// the handle is stopped. Accepted updates are written back into the cache.
func (e *Engine) Start(ctx context.Context, cache Cache) *scheduler.Handle {
	return scheduler.Every(e.clock, e.interval, "clock-engine", func(ctx context.Context) {
		updated, err := e.Tick(ctx, cache.Snapshot())
		for _, m := range updated {
			cache.Put(m)
		}
		if err != nil {
			log.Warn("Clock tick finished with failures", "advanced", len(updated), "error", err)
		}
	}).Start(ctx)
}
