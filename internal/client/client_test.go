package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/matchday/internal/config"
	"github.com/mauv0809/matchday/internal/engine"
	matchhttp "github.com/mauv0809/matchday/internal/http"
	"github.com/mauv0809/matchday/internal/match"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/mauv0809/matchday/internal/pubsub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupAPI serves the real API over a mock store.
func setupAPI(t *testing.T, docs ...match.Match) (*Client, *match.MockStore) {
	t.Helper()

	store := match.NewMock()
	store.Seed(docs...)
	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	counters := metrics.NewMockCounterStore()
	ps := pubsub.NewMock()
	actions := engine.NewActions(store, metricsSvc, counters, ps, clockwork.NewFakeClock())
	server := matchhttp.NewServer(store, actions, counters, metricsSvc, metrics.NewMetricsHandler(reg), config.Config{}, notifier.NewMock(), ps)

	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)
	return New(ts.URL), store
}

func scheduled(id string) match.Match {
	return match.Match{ID: id, Team1Name: "Rovers", Team2Name: "United", IsPaused: true}
}

func TestClientStoreContract(t *testing.T) {
	ctx := context.Background()
	c, _ := setupAPI(t)

	require.NoError(t, c.Health(ctx))

	created, err := c.CreateMatch(ctx, match.NewMatch{Team1Name: "Rovers", Team2Name: "United", Venue: "Riverside"})
	require.NoError(t, err)
	assert.Equal(t, match.Scheduled, created.State())

	got, err := c.GetMatch(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Riverside", got.Venue)

	venue := "Hillside"
	patched, err := c.PatchMatch(ctx, created.ID, match.Patch{Venue: &venue})
	require.NoError(t, err)
	assert.Equal(t, "Hillside", patched.Venue)

	all, err := c.ListMatches(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, c.DeleteMatch(ctx, created.ID))
	_, err = c.GetMatch(ctx, created.ID)
	assert.ErrorIs(t, err, match.ErrNotFound)
	assert.ErrorIs(t, c.DeleteMatch(ctx, created.ID), match.ErrNotFound)
}

func TestClientActionsMapErrors(t *testing.T) {
	ctx := context.Background()
	c, _ := setupAPI(t, scheduled("m1"))

	m, err := c.GoLive(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, match.Running, m.State())

	_, err = c.GoLive(ctx, "m1")
	assert.ErrorIs(t, err, match.ErrInvalidTransition)

	m, err = c.AdjustScore(ctx, "m1", match.Team1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Team1Score)

	_, err = c.AdjustScore(ctx, "m1", match.Team1, 5)
	assert.ErrorIs(t, err, match.ErrInvalidValue)

	m, err = c.SetMinute(ctx, "m1", 0)
	require.NoError(t, err, "minute zero is a valid override")
	assert.Equal(t, 0, m.CurrentMinute)

	m, err = c.SetExtraTime(ctx, "m1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, m.ExtraTime)

	m, err = c.TogglePause(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, match.Paused, m.State())

	_, err = c.FinishMatch(ctx, "m1", false)
	assert.ErrorIs(t, err, engine.ErrConfirmationRequired)

	m, err = c.FinishMatch(ctx, "m1", true)
	require.NoError(t, err)
	assert.Equal(t, match.Finished, m.State())

	_, err = c.EndLive(ctx, "m1")
	assert.ErrorIs(t, err, match.ErrInvalidTransition)
}

func TestClientListByStatus(t *testing.T) {
	live := scheduled("b")
	live.IsLive, live.IsPaused = true, false
	c, _ := setupAPI(t, scheduled("a"), live)

	matches, err := c.ListMatchesByStatus(context.Background(), match.StatusLive)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "b", matches[0].ID)
}

func TestClientUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "match store unavailable: disk full", "code": "store_unavailable"})
	}))
	defer ts.Close()

	_, err := New(ts.URL).ListMatches(context.Background())
	assert.ErrorIs(t, err, match.ErrStoreUnavailable)

	ts.Close()
	_, err = New(ts.URL).GetMatch(context.Background(), "m1")
	assert.ErrorIs(t, err, match.ErrStoreUnavailable, "transport failures read as an unavailable store")
}

func TestClientCancelledContext(t *testing.T) {
	c, _ := setupAPI(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListMatches(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientPatchMapsStale(t *testing.T) {
	ctx := context.Background()
	m := scheduled("m1")
	m.IsLive, m.IsPaused, m.CurrentMinute = true, false, 50
	c, store := setupAPI(t, m)

	tick, ok := match.Tick(m)
	require.True(t, ok)
	tick.If.CurrentMinute = new(int)

	_, err := c.PatchMatch(ctx, "m1", tick)
	assert.ErrorIs(t, err, match.ErrStale)

	doc, err := store.GetMatch(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 50, doc.CurrentMinute)
}
