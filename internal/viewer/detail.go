package viewer

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/matchday/internal/match"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/scheduler"
)

// NewDetailView creates a view for a single match. A zero interval means
// DefaultDetailInterval and a nil clock the real clock.
func NewDetailView(source Source, metrics metrics.Metrics, clock clockwork.Clock, interval time.Duration) *DetailView {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultDetailInterval
	}
	return &DetailView{
		source:   source,
		metrics:  metrics,
		clock:    clock,
		interval: interval,
	}
}

// OnChange registers fn to receive the match whenever it changes. ok is
// false when the view has no document, for example after the match was
// deleted.
func (v *DetailView) OnChange(fn func(m match.Match, ok bool)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onChange = fn
}

// Watch targets the view at id. The previous poller is stopped first and the
// old snapshot dropped, so a late response for the old id is never shown.
func (v *DetailView) Watch(ctx context.Context, id string) {
	v.watchMu.Lock()
	defer v.watchMu.Unlock()

	v.stop()

	v.mu.Lock()
	v.id = id
	v.doc = match.Match{}
	v.loaded = false
	v.mu.Unlock()
	v.notify()

	h := scheduler.Every(v.clock, v.interval, "detail-view", func(ctx context.Context) {
		_ = v.refresh(ctx, id)
	}).Immediately().Start(ctx)

	v.mu.Lock()
	v.handle = h
	v.mu.Unlock()
}

// Stop ends polling. No poll writes into the view after Stop returns.
func (v *DetailView) Stop() {
	v.watchMu.Lock()
	defer v.watchMu.Unlock()
	v.stop()
}

func (v *DetailView) stop() {
	v.mu.Lock()
	h := v.handle
	v.handle = nil
	v.mu.Unlock()
	h.Stop()
}

// ID returns the id the view is watching.
func (v *DetailView) ID() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.id
}

// Snapshot returns the last fetched document. ok is false until the first
// successful poll for the current id.
func (v *DetailView) Snapshot() (match.Match, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.doc, v.loaded
}

// Refresh polls the watched match once.
func (v *DetailView) Refresh(ctx context.Context) error {
	return v.refresh(ctx, v.ID())
}

// Put writes a document the caller just stored, if it is the watched one.
func (v *DetailView) Put(m match.Match) {
	v.mu.Lock()
	if m.ID != v.id {
		v.mu.Unlock()
		return
	}
	v.doc = m
	v.loaded = true
	v.mu.Unlock()
	v.notify()
}

func (v *DetailView) refresh(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	v.metrics.IncPollRuns(viewDetail)
	doc, err := v.source.GetMatch(ctx, id)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, match.ErrNotFound) {
		log.Warn("Watched match no longer exists", "matchID", id)
		v.set(id, match.Match{}, false)
		return err
	}
	if err != nil {
		log.Warn("Failed to refresh match", "matchID", id, "error", err)
		v.metrics.IncPollFailures(viewDetail)
		return err
	}
	v.set(id, doc, true)
	return nil
}

// set stores a poll result unless the view has been retargeted meanwhile.
func (v *DetailView) set(id string, doc match.Match, loaded bool) {
	v.mu.Lock()
	if v.id != id {
		v.mu.Unlock()
		return
	}
	changed := loaded != v.loaded || !reflect.DeepEqual(doc, v.doc)
	v.doc = doc
	v.loaded = loaded
	v.mu.Unlock()

	if changed {
		v.notify()
	}
}

func (v *DetailView) notify() {
	v.mu.RLock()
	fn := v.onChange
	doc, loaded := v.doc, v.loaded
	v.mu.RUnlock()
	if fn != nil {
		fn(doc, loaded)
	}
}
