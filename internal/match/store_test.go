package match_test

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/matchday/internal/database"
	"github.com/mauv0809/matchday/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) match.Store {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return match.NewStore(db)
}

func fixture() match.NewMatch {
	return match.NewMatch{
		LeagueName: "Premier Division",
		Venue:      "Riverside",
		StartTime:  time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC),
		Team1Name:  "Rovers",
		Team2Name:  "United",
		Lineups: match.Lineups{
			Team1: match.Lineup{
				Formation: "4-4-2",
				Players:   map[string]match.PlayerRef{"gk": {ID: "p1", Name: "Keeper"}},
			},
		},
	}
}

func TestCreateAndGetMatch(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	created, err := store.CreateMatch(ctx, fixture())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, match.Scheduled, created.State())
	assert.Equal(t, 0, created.CurrentMinute)

	got, err := store.GetMatch(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rovers", got.Team1Name)
	assert.Equal(t, "Riverside", got.Venue)
	assert.True(t, got.StartTime.Equal(fixture().StartTime))
	assert.Equal(t, "Keeper", got.Lineups.Team1.Players["gk"].Name)
	assert.True(t, got.IsPaused)
	assert.False(t, got.IsLive)
	assert.False(t, got.IsFinished)
}

func TestCreateMatchRequiresTeams(t *testing.T) {
	store := setupTestDB(t)

	_, err := store.CreateMatch(context.Background(), match.NewMatch{Team1Name: "Rovers"})
	assert.ErrorIs(t, err, match.ErrInvalidValue)
}

func TestPatchMatchOnlyTouchesSetFields(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	created, err := store.CreateMatch(ctx, fixture())
	require.NoError(t, err)

	score := 2
	_, err = store.PatchMatch(ctx, created.ID, match.Patch{Team1Score: &score})
	require.NoError(t, err)

	venue := "Hillside"
	updated, err := store.PatchMatch(ctx, created.ID, match.Patch{Venue: &venue})
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Team1Score, "a venue edit must not clobber the score")
	assert.Equal(t, "Hillside", updated.Venue)
	assert.Equal(t, "Rovers", updated.Team1Name)
}

func TestPatchMatchErrors(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	minute := 10
	_, err := store.PatchMatch(ctx, "missing", match.Patch{CurrentMinute: &minute})
	assert.ErrorIs(t, err, match.ErrNotFound)

	created, err := store.CreateMatch(ctx, fixture())
	require.NoError(t, err)

	_, err = store.PatchMatch(ctx, created.ID, match.Patch{})
	assert.ErrorIs(t, err, match.ErrInvalidValue)

	negative := -3
	_, err = store.PatchMatch(ctx, created.ID, match.Patch{ExtraTime: &negative})
	assert.ErrorIs(t, err, match.ErrInvalidValue)
}

func TestPatchMatchKeepsLifecycleConsistent(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	created, err := store.CreateMatch(ctx, fixture())
	require.NoError(t, err)

	yes, no := true, false
	_, err = store.PatchMatch(ctx, created.ID, match.Patch{IsLive: &yes})
	require.NoError(t, err)

	_, err = store.PatchMatch(ctx, created.ID, match.Patch{IsFinished: &yes})
	assert.ErrorIs(t, err, match.ErrInvalidValue, "a finished match cannot stay live")
	got, err := store.GetMatch(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, match.Paused, got.State(), "a rejected patch writes nothing")

	finished, err := store.PatchMatch(ctx, created.ID, match.Patch{IsLive: &no, IsPaused: &yes, IsFinished: &yes})
	require.NoError(t, err)
	assert.Equal(t, match.Finished, finished.State())

	_, err = store.PatchMatch(ctx, created.ID, match.Patch{IsFinished: &no})
	assert.ErrorIs(t, err, match.ErrInvalidTransition, "full time is terminal")

	minute := 95
	_, err = store.PatchMatch(ctx, created.ID, match.Patch{CurrentMinute: &minute})
	assert.ErrorIs(t, err, match.ErrInvalidTransition)

	got, err = store.GetMatch(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFinished)
	assert.False(t, got.IsLive)
	assert.Equal(t, 0, got.CurrentMinute)
}

func TestPatchMatchPrecondition(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	created, err := store.CreateMatch(ctx, fixture())
	require.NoError(t, err)
	yes, no := true, false
	running, err := store.PatchMatch(ctx, created.ID, match.Patch{IsLive: &yes, IsPaused: &no})
	require.NoError(t, err)

	tick, ok := match.Tick(running)
	require.True(t, ok)

	override := 30
	_, err = store.PatchMatch(ctx, created.ID, match.Patch{CurrentMinute: &override})
	require.NoError(t, err)

	_, err = store.PatchMatch(ctx, created.ID, tick)
	assert.ErrorIs(t, err, match.ErrStale)
	got, err := store.GetMatch(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.CurrentMinute, "a stale tick must not undo the override")
}

func TestListAndDeleteMatches(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	matches, err := store.ListMatches(ctx)
	require.NoError(t, err)
	assert.Empty(t, matches)

	first, err := store.CreateMatch(ctx, fixture())
	require.NoError(t, err)
	later := fixture()
	later.StartTime = later.StartTime.Add(24 * time.Hour)
	second, err := store.CreateMatch(ctx, later)
	require.NoError(t, err)

	matches, err = store.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, first.ID, matches[0].ID, "matches are ordered by kick-off")
	assert.Equal(t, second.ID, matches[1].ID)

	require.NoError(t, store.DeleteMatch(ctx, first.ID))
	assert.ErrorIs(t, store.DeleteMatch(ctx, first.ID), match.ErrNotFound)

	_, err = store.GetMatch(ctx, first.ID)
	assert.ErrorIs(t, err, match.ErrNotFound)
}

func TestStoreUnavailableAfterClose(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	store := match.NewStore(db)
	teardown()

	_, err = store.ListMatches(context.Background())
	assert.ErrorIs(t, err, match.ErrStoreUnavailable)
}
