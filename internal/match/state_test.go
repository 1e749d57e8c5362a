package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func running(minute int) Match {
	return Match{ID: "m1", IsLive: true, CurrentMinute: minute}
}

func TestStateFromFlags(t *testing.T) {
	tests := []struct {
		name                         string
		isLive, isPaused, isFinished bool
		want                         State
	}{
		{"scheduled", false, true, false, Scheduled},
		{"running", true, false, false, Running},
		{"paused", true, true, false, Paused},
		{"finished", false, true, true, Finished},
		{"finished wins over live", true, false, true, Finished},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateFromFlags(tt.isLive, tt.isPaused, tt.isFinished))
		})
	}
}

func TestFinishedFlagsAreConsistent(t *testing.T) {
	live, paused, finished := Finished.Flags()
	assert.False(t, live)
	assert.True(t, paused)
	assert.True(t, finished)
}

func TestTick(t *testing.T) {
	t.Run("advances a running match", func(t *testing.T) {
		p, ok := Tick(running(10))
		require.True(t, ok)
		require.NotNil(t, p.CurrentMinute)
		assert.Equal(t, 11, *p.CurrentMinute)
		assert.Equal(t, []string{"currentMinute"}, p.Fields())
		require.NotNil(t, p.If)
		assert.True(t, p.If.Ticking)
		assert.Equal(t, 10, *p.If.CurrentMinute, "the tick only applies to the minute it was computed from")
	})

	t.Run("minute 124 reaches the ceiling", func(t *testing.T) {
		p, ok := Tick(running(124))
		require.True(t, ok)
		assert.Equal(t, MaxMinute, *p.CurrentMinute)
	})

	t.Run("minute 125 does not tick", func(t *testing.T) {
		_, ok := Tick(running(MaxMinute))
		assert.False(t, ok)
	})

	t.Run("no tick unless running", func(t *testing.T) {
		for _, m := range []Match{
			{ID: "scheduled"},
			{ID: "paused", IsLive: true, IsPaused: true},
			{ID: "finished", IsFinished: true, IsPaused: true},
			{ID: "inconsistent", IsLive: true, IsFinished: true},
		} {
			_, ok := Tick(m)
			assert.False(t, ok, m.ID)
		}
	})
}

func TestLifecycleScenario(t *testing.T) {
	m := Match{ID: "m1", IsPaused: true}

	p, err := GoLive(m)
	require.NoError(t, err)
	m = p.Apply(m)
	assert.True(t, m.IsLive)
	assert.False(t, m.IsPaused, "going live starts the clock")

	for i := 0; i < 3; i++ {
		p, ok := Tick(m)
		require.True(t, ok)
		m = p.Apply(m)
	}
	assert.Equal(t, 3, m.CurrentMinute)

	p, err = TogglePause(m)
	require.NoError(t, err)
	m = p.Apply(m)
	assert.True(t, m.IsPaused)
	_, ok := Tick(m)
	assert.False(t, ok, "paused match must not tick")

	p, err = Finish(m)
	require.NoError(t, err)
	m = p.Apply(m)
	assert.False(t, m.IsLive)
	assert.True(t, m.IsPaused)
	assert.True(t, m.IsFinished)
	assert.Equal(t, 3, m.CurrentMinute)
}

func TestTogglePauseTwiceRestoresFlag(t *testing.T) {
	original := Match{ID: "m1", IsLive: true, CurrentMinute: 30, Team1Score: 1}
	m := original
	for i := 0; i < 2; i++ {
		p, err := TogglePause(m)
		require.NoError(t, err)
		m = p.Apply(m)
	}
	assert.Equal(t, original, m)
}

func TestFinishFromAnyState(t *testing.T) {
	for _, m := range []Match{
		{ID: "scheduled", IsPaused: true},
		{ID: "running", IsLive: true},
		{ID: "paused", IsLive: true, IsPaused: true},
	} {
		p, err := Finish(m)
		require.NoError(t, err, m.ID)
		got := p.Apply(m)
		assert.Equal(t, Finished, got.State(), m.ID)
		assert.False(t, got.IsLive, m.ID)
		assert.True(t, got.IsPaused, m.ID)
	}

	p, err := Finish(Match{ID: "done", IsFinished: true, IsPaused: true})
	require.NoError(t, err)
	assert.True(t, p.IsEmpty(), "finishing twice writes nothing")
}

func TestInvalidTransitions(t *testing.T) {
	scheduled := Match{ID: "m1", IsPaused: true}
	live := Match{ID: "m1", IsLive: true}
	finished := Match{ID: "m1", IsFinished: true, IsPaused: true}

	_, err := GoLive(live)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = GoLive(finished)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = EndLive(scheduled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = TogglePause(scheduled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = TogglePause(finished)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = AdjustScore(finished, Team1, 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = SetMinute(finished, 90)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = SetExtraTime(finished, 3)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestEndLiveKeepsClockAndScore(t *testing.T) {
	m := Match{ID: "m1", IsLive: true, CurrentMinute: 12, Team2Score: 1}
	p, err := EndLive(m)
	require.NoError(t, err)
	got := p.Apply(m)
	assert.Equal(t, Scheduled, got.State())
	assert.Equal(t, 12, got.CurrentMinute)
	assert.Equal(t, 1, got.Team2Score)
}

func TestAdjustScore(t *testing.T) {
	m := Match{ID: "m1", IsLive: true}
	for i := 0; i < 3; i++ {
		p, err := AdjustScore(m, Team1, 1)
		require.NoError(t, err)
		m = p.Apply(m)
	}
	p, err := AdjustScore(m, Team1, -1)
	require.NoError(t, err)
	m = p.Apply(m)
	assert.Equal(t, 2, m.Team1Score)
	assert.Equal(t, 0, m.Team2Score)

	t.Run("decrement floors at zero", func(t *testing.T) {
		p, err := AdjustScore(Match{ID: "m1", IsLive: true}, Team2, -1)
		require.NoError(t, err)
		require.NotNil(t, p.Team2Score)
		assert.Equal(t, 0, *p.Team2Score)
	})

	t.Run("only single goals", func(t *testing.T) {
		_, err := AdjustScore(m, Team1, 2)
		assert.ErrorIs(t, err, ErrInvalidValue)
		_, err = AdjustScore(m, Team1, 0)
		assert.ErrorIs(t, err, ErrInvalidValue)
	})
}

func TestManualOverrides(t *testing.T) {
	m := Match{ID: "m1", IsLive: true, CurrentMinute: 40}

	p, err := SetMinute(m, 200)
	require.NoError(t, err, "operator overrides ignore the ceiling")
	assert.Equal(t, 200, *p.CurrentMinute)

	_, err = SetMinute(m, -1)
	assert.ErrorIs(t, err, ErrInvalidValue)

	p, err = SetExtraTime(m, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, *p.ExtraTime)

	_, err = SetExtraTime(m, -2)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestPatchValidate(t *testing.T) {
	yes, no := true, false
	neg := -1

	assert.NoError(t, Patch{IsFinished: &yes, IsLive: &no, IsPaused: &yes}.Validate())
	assert.ErrorIs(t, Patch{IsFinished: &yes, IsLive: &yes}.Validate(), ErrInvalidValue)
	assert.ErrorIs(t, Patch{IsFinished: &yes, IsPaused: &no}.Validate(), ErrInvalidValue)
	assert.ErrorIs(t, Patch{Team1Score: &neg}.Validate(), ErrInvalidValue)
	assert.ErrorIs(t, Patch{Lineups: &Lineups{Team1: Lineup{Formation: "4-4"}}}.Validate(), ErrInvalidValue)
}

func TestStatusFilter(t *testing.T) {
	matches := []Match{
		{ID: "upcoming", IsPaused: true},
		{ID: "live", IsLive: true},
		{ID: "finished", IsFinished: true, IsPaused: true},
	}
	ids := func(ms []Match) []string {
		var out []string
		for _, m := range ms {
			out = append(out, m.ID)
		}
		return out
	}

	for status, want := range map[Status][]string{
		StatusCurrent:  {"upcoming", "live"},
		StatusLive:     {"live"},
		StatusUpcoming: {"upcoming"},
		StatusFinished: {"finished"},
		StatusAll:      {"upcoming", "live", "finished"},
	} {
		keep, err := StatusFilter(status)
		require.NoError(t, err)
		assert.Equal(t, want, ids(Filter(matches, keep)), string(status))
	}

	_, err := StatusFilter("halftime")
	assert.ErrorIs(t, err, ErrInvalidValue)
}
