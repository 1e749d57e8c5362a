package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int { return &i }

func TestValidateAgainstLifecycleFlags(t *testing.T) {
	live := Match{ID: "m1", IsLive: true, CurrentMinute: 30}
	finished := Match{ID: "m1", IsPaused: true, IsFinished: true, CurrentMinute: 90, Team1Score: 2}

	tests := []struct {
		name    string
		current Match
		patch   Patch
		wantErr error
	}{
		{"finishing a live match without clearing isLive", live, Patch{IsFinished: boolPtr(true)}, ErrInvalidValue},
		{"full finish flags", live, statePatch(Finished), nil},
		{"pausing through the flag", live, Patch{IsPaused: boolPtr(true)}, nil},
		{"ending live without pausing", live, Patch{IsLive: boolPtr(false)}, ErrInvalidValue},
		{"reopening a finished match", finished, Patch{IsFinished: boolPtr(false)}, ErrInvalidTransition},
		{"going live after full time", finished, statePatch(Running), ErrInvalidTransition},
		{"changing the score after full time", finished, Patch{Team1Score: intPtr(3)}, ErrInvalidTransition},
		{"changing the minute after full time", finished, Patch{CurrentMinute: intPtr(95)}, ErrInvalidTransition},
		{"rewriting the same finish flags", finished, statePatch(Finished), nil},
		{"fixing the venue after full time", finished, Patch{Venue: new(string)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.ValidateAgainst(tt.current)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateAgainstPrecondition(t *testing.T) {
	p, ok := Tick(running(44))
	assert.True(t, ok)

	assert.NoError(t, p.ValidateAgainst(running(44)))
	assert.ErrorIs(t, p.ValidateAgainst(running(50)), ErrStale, "an operator override wins over a stale tick")

	paused := running(44)
	paused.IsPaused = true
	assert.ErrorIs(t, p.ValidateAgainst(paused), ErrStale)

	finished := Match{ID: "m1", IsPaused: true, IsFinished: true, CurrentMinute: 44}
	assert.ErrorIs(t, p.ValidateAgainst(finished), ErrStale)
}
