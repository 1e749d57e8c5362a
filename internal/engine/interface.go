package engine

import (
	"context"

	"github.com/mauv0809/matchday/internal/match"
)

// Store defines the store operations required by the engine and actions.
type Store interface {
	GetMatch(ctx context.Context, id string) (match.Match, error)
	PatchMatch(ctx context.Context, id string, p match.Patch) (match.Match, error)
}

// Cache is the view-local snapshot the engine ticks from and writes back to.
type Cache interface {
	Snapshot() []match.Match
	Put(m match.Match)
}

// Counters persists running totals. It may be nil.
type Counters interface {
	Increment(key string)
}
