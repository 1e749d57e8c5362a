package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/matchday/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestDisabledClientDecodesEvents(t *testing.T) {
	c, err := New(context.Background(), "", "match-events")
	require.NoError(t, err)
	defer c.Close()

	event := MatchEvent{
		Type:       EventGoal,
		Match:      match.Match{ID: "m1", Team1Name: "Rovers", Team2Name: "United", Team1Score: 1, IsLive: true},
		Team:       match.Team1,
		OccurredAt: time.Date(2026, 10, 17, 15, 23, 0, 0, time.UTC),
	}
	require.NoError(t, c.SendMessage(EventGoal, event))

	data, err := msgpack.Marshal(event)
	require.NoError(t, err)

	var decoded MatchEvent
	require.NoError(t, c.ProcessMessage(data, &decoded))
	assert.Equal(t, EventGoal, decoded.Type)
	assert.Equal(t, match.Team1, decoded.Team)
	assert.Equal(t, "Rovers", decoded.Match.Team1Name)
	assert.Equal(t, 1, decoded.Match.Team1Score)
	assert.True(t, decoded.OccurredAt.Equal(event.OccurredAt))
}

func TestProcessMessageRejectsGarbage(t *testing.T) {
	var decoded MatchEvent
	assert.Error(t, NewMock().ProcessMessage([]byte{0xc1}, &decoded))
}
