// Package viewer keeps view-local snapshots of matches fresh by polling the
// store while a view is mounted.
package viewer

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/matchday/internal/match"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/scheduler"
)

// NewListView creates a list view that shows current (unfinished) matches.
// A zero interval means DefaultListInterval and a nil clock the real clock.
func NewListView(source Source, metrics metrics.Metrics, clock clockwork.Clock, interval time.Duration) *ListView {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultListInterval
	}
	return &ListView{
		source:   source,
		metrics:  metrics,
		clock:    clock,
		interval: interval,
		keep:     match.IsCurrent,
	}
}

// SetStatus changes the display filter.
func (v *ListView) SetStatus(status match.Status) error {
	keep, err := match.StatusFilter(status)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.keep = keep
	v.mu.Unlock()
	v.notify()
	return nil
}

// OnChange registers fn to receive the visible matches whenever the
// snapshot changes.
func (v *ListView) OnChange(fn func(visible []match.Match)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onChange = fn
}

// Start fetches immediately and then every interval until ctx is cancelled
// or Stop is called. Starting a started view restarts its poller.
func (v *ListView) Start(ctx context.Context) {
	v.Stop()
	h := scheduler.Every(v.clock, v.interval, "list-view", func(ctx context.Context) {
		_ = v.Refresh(ctx)
	}).Immediately().Start(ctx)

	v.mu.Lock()
	v.handle = h
	v.mu.Unlock()
}

// Stop ends polling. No poll writes into the view after Stop returns.
func (v *ListView) Stop() {
	v.mu.Lock()
	h := v.handle
	v.handle = nil
	v.mu.Unlock()
	h.Stop()
}

// Refresh polls the store once. On success the whole snapshot is replaced;
// on failure the previous snapshot is kept and the error returned.
func (v *ListView) Refresh(ctx context.Context) error {
	v.metrics.IncPollRuns(viewList)
	matches, err := v.source.ListMatches(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Warn("Failed to refresh match list", "error", err)
			v.metrics.IncPollFailures(viewList)
		}
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	v.mu.Lock()
	changed := !reflect.DeepEqual(v.matches, matches)
	v.matches = matches
	v.mu.Unlock()

	log.Debug("Refreshed match list", "count", len(matches), "changed", changed)
	if changed {
		v.notify()
	}
	return nil
}

// Snapshot returns every match from the last refresh, ignoring the filter.
func (v *ListView) Snapshot() []match.Match {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]match.Match(nil), v.matches...)
}

// Visible returns the matches that pass the display filter.
func (v *ListView) Visible() []match.Match {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return match.Filter(v.matches, v.keep)
}

// Put writes a document the caller just stored into the snapshot, so the
// view reflects it before the next poll.
func (v *ListView) Put(m match.Match) {
	v.mu.Lock()
	replaced := false
	for i := range v.matches {
		if v.matches[i].ID == m.ID {
			v.matches[i] = m
			replaced = true
			break
		}
	}
	if !replaced {
		v.matches = append(v.matches, m)
	}
	v.mu.Unlock()
	v.notify()
}

// Remove drops a deleted match from the snapshot.
func (v *ListView) Remove(id string) {
	v.mu.Lock()
	for i := range v.matches {
		if v.matches[i].ID == id {
			v.matches = append(v.matches[:i:i], v.matches[i+1:]...)
			break
		}
	}
	v.mu.Unlock()
	v.notify()
}

func (v *ListView) notify() {
	v.mu.RLock()
	fn := v.onChange
	visible := match.Filter(v.matches, v.keep)
	v.mu.RUnlock()
	if fn != nil {
		fn(visible)
	}
}
