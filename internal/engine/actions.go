package engine

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/matchday/internal/match"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/pubsub"
)

// NewActions creates the operator command service. counters may be nil.
func NewActions(store Store, metrics metrics.Metrics, counters Counters, pubsub pubsub.PubSubClient, clock clockwork.Clock) *Actions {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Actions{
		store:    store,
		metrics:  metrics,
		counters: counters,
		pubsub:   pubsub,
		clock:    clock,
	}
}

// GoLive kicks off a scheduled match with the clock running.
func (a *Actions) GoLive(ctx context.Context, id string) (match.Match, error) {
	updated, changed, err := a.apply(ctx, ActionGoLive, id, match.GoLive)
	if err != nil || !changed {
		return updated, err
	}
	a.increment(metrics.CounterMatchesStarted)
	a.publish(pubsub.EventKickoff, updated, 0)
	return updated, nil
}

// EndLive takes a live match back to scheduled.
func (a *Actions) EndLive(ctx context.Context, id string) (match.Match, error) {
	updated, _, err := a.apply(ctx, ActionEndLive, id, match.EndLive)
	return updated, err
}

// TogglePause pauses a running match or resumes a paused one.
func (a *Actions) TogglePause(ctx context.Context, id string) (match.Match, error) {
	updated, _, err := a.apply(ctx, ActionTogglePause, id, match.TogglePause)
	return updated, err
}

// FinishMatch ends a match. It is irreversible, so the caller must pass
// confirmed=true once the operator agreed.
func (a *Actions) FinishMatch(ctx context.Context, id string, confirmed bool) (match.Match, error) {
	if !confirmed {
		return match.Match{}, ErrConfirmationRequired
	}
	updated, changed, err := a.apply(ctx, ActionFinish, id, match.Finish)
	if err != nil || !changed {
		return updated, err
	}
	a.increment(metrics.CounterMatchesFinished)
	a.publish(pubsub.EventFullTime, updated, 0)
	return updated, nil
}

// AdjustScore adds or removes one goal for team.
func (a *Actions) AdjustScore(ctx context.Context, id string, team match.Team, delta int) (match.Match, error) {
	updated, changed, err := a.apply(ctx, ActionScore, id, func(m match.Match) (match.Patch, error) {
		return match.AdjustScore(m, team, delta)
	})
	if err != nil || !changed {
		return updated, err
	}
	if delta > 0 {
		a.increment(metrics.CounterGoalsRecorded)
		a.publish(pubsub.EventGoal, updated, team)
	}
	return updated, nil
}

// SetMinute overrides the elapsed minute.
func (a *Actions) SetMinute(ctx context.Context, id string, minute int) (match.Match, error) {
	updated, _, err := a.apply(ctx, ActionSetMinute, id, func(m match.Match) (match.Patch, error) {
		return match.SetMinute(m, minute)
	})
	return updated, err
}

// SetExtraTime overrides the announced extra time.
func (a *Actions) SetExtraTime(ctx context.Context, id string, extra int) (match.Match, error) {
	updated, _, err := a.apply(ctx, ActionSetExtraTime, id, func(m match.Match) (match.Patch, error) {
		return match.SetExtraTime(m, extra)
	})
	return updated, err
}

// apply reads the current document, runs the transition and writes the
// resulting patch. An empty patch leaves the store untouched and reports
// changed=false. Store errors are returned unchanged.
func (a *Actions) apply(ctx context.Context, action string, id string, transition func(match.Match) (match.Patch, error)) (match.Match, bool, error) {
	current, err := a.store.GetMatch(ctx, id)
	if err != nil {
		a.metrics.IncOperatorActionFailed(action)
		return match.Match{}, false, err
	}

	p, err := transition(current)
	if err != nil {
		log.Info("Rejected operator action", "action", action, "matchID", id, "state", current.State(), "error", err)
		a.metrics.IncOperatorActionFailed(action)
		return current, false, err
	}
	if p.IsEmpty() {
		log.Debug("Operator action changed nothing", "action", action, "matchID", id)
		return current, false, nil
	}

	startTime := a.clock.Now()
	updated, err := a.store.PatchMatch(ctx, id, p)
	a.metrics.ObservePatchDuration(a.clock.Since(startTime).Seconds())
	if err != nil {
		log.Error("Failed to apply operator action", "action", action, "matchID", id, "error", err)
		a.metrics.IncOperatorActionFailed(action)
		return current, false, err
	}

	log.Info("Applied operator action", "action", action, "matchID", id, "fields", p.Fields(), "state", updated.State())
	a.metrics.IncOperatorAction(action)
	return updated, true, nil
}

func (a *Actions) increment(key string) {
	if a.counters != nil {
		a.counters.Increment(key)
	}
}

// publish announces an event. Failures are logged; the action has already
// been stored.
func (a *Actions) publish(event pubsub.EventType, m match.Match, team match.Team) {
	if a.pubsub == nil {
		return
	}
	err := a.pubsub.SendMessage(event, pubsub.MatchEvent{
		Type:       event,
		Match:      m,
		Team:       team,
		OccurredAt: a.clock.Now().UTC(),
	})
	if err != nil {
		log.Error("Failed to publish match event", "event", event, "matchID", m.ID, "error", err)
	}
}
