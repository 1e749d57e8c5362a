package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/matchday/internal/match"
	"github.com/stretchr/testify/assert"
)

func TestRenderBoard(t *testing.T) {
	now := time.Date(2026, 10, 17, 15, 30, 0, 0, time.UTC)
	matches := []match.Match{
		{ID: "a", Team1Name: "Rovers", Team2Name: "United", Team1Score: 2, Team2Score: 1, IsLive: true, CurrentMinute: 67},
		{ID: "b", Team1Name: "City", Team2Name: "Athletic", IsLive: true, IsPaused: true, CurrentMinute: 45, ExtraTime: 2},
		{ID: "c", Team1Name: "Town", Team2Name: "Wanderers", IsPaused: true, LeagueName: "Sunday League"},
		{ID: "d", Team1Name: "Albion", Team2Name: "Villa", IsFinished: true, IsPaused: true, CurrentMinute: 90},
	}

	var buf bytes.Buffer
	renderBoard(&buf, matches, now)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	assert.Len(t, lines, 5)
	assert.Contains(t, lines[0], "Matches (4)")
	assert.Contains(t, lines[0], "updated 15:30:00")

	assert.Contains(t, lines[1], "LIVE")
	assert.Contains(t, lines[1], "67'")
	assert.Contains(t, lines[1], "Rovers 2 - 1 United")

	assert.Contains(t, lines[2], "PAUSED")
	assert.Contains(t, lines[2], "45' +2")

	assert.Contains(t, lines[3], "UPCOMING")
	assert.Contains(t, lines[3], "Sunday League")
	assert.NotContains(t, lines[3], "0'", "no clock before kick-off")

	assert.Contains(t, lines[4], "FT")
	assert.Contains(t, lines[4], "90'")
}

func TestRenderBoardEmpty(t *testing.T) {
	var buf bytes.Buffer
	renderBoard(&buf, nil, time.Now())
	assert.Contains(t, buf.String(), "No matches.")
}

func TestRenderDetailLineups(t *testing.T) {
	m := match.Match{
		ID:        "a",
		Team1Name: "Rovers",
		Team2Name: "United",
		Venue:     "Riverside",
		Lineups: match.Lineups{
			Team1: match.Lineup{
				Formation: "4-4-2",
				Players: map[string]match.PlayerRef{
					"row-0-p-0":  {Name: "Right Back"},
					"gk":         {Name: "Keeper"},
					"legacy-key": {Name: "Stray"},
				},
				Substitutes: match.Substitutes{{Name: "Sub One"}, {Name: "Sub Two"}},
				Manager:     &match.PlayerRef{Name: "Boss"},
			},
		},
	}

	var buf bytes.Buffer
	renderDetail(&buf, m)
	out := buf.String()

	assert.Contains(t, out, "Rovers 0 - 0 United")
	assert.Contains(t, out, "Riverside")
	assert.Contains(t, out, "Rovers (4-4-2)")
	assert.NotContains(t, out, "United (", "an empty lineup is not shown")
	assert.Less(t, strings.Index(out, "Keeper"), strings.Index(out, "Right Back"), "goalkeeper comes first")
	assert.Less(t, strings.Index(out, "Right Back"), strings.Index(out, "Stray"))
	assert.Contains(t, out, "Sub One, Sub Two")
	assert.Contains(t, out, "Boss")
}
