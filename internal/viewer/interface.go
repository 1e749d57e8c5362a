package viewer

import (
	"context"

	"github.com/mauv0809/matchday/internal/match"
)

// Source defines the read operations the views poll.
type Source interface {
	ListMatches(ctx context.Context) ([]match.Match, error)
	GetMatch(ctx context.Context, id string) (match.Match, error)
}
