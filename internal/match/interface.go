package match

import "context"

// Store is the authoritative record of match documents. Implementations apply
// patches as a shallow merge with last-write-wins per field.
type Store interface {
	// ListMatches returns a full snapshot of the collection.
	ListMatches(ctx context.Context) ([]Match, error)
	// GetMatch returns a single match or ErrNotFound.
	GetMatch(ctx context.Context, id string) (Match, error)
	// CreateMatch schedules a new fixture.
	CreateMatch(ctx context.Context, n NewMatch) (Match, error)
	// PatchMatch merges the set fields of p and returns the updated document.
	PatchMatch(ctx context.Context, id string, p Patch) (Match, error)
	// DeleteMatch removes a match outright.
	DeleteMatch(ctx context.Context, id string) error
}
