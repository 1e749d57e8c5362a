package match

// Phase is the coarse lifecycle position of a match.
type Phase int

const (
	PhaseScheduled Phase = iota
	PhaseLive
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseScheduled:
		return "scheduled"
	case PhaseLive:
		return "live"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// State is the tagged lifecycle state: Scheduled, Live{Paused} or Finished.
// Paused only carries meaning while the phase is live.
type State struct {
	Phase  Phase
	Paused bool
}

var (
	Scheduled = State{Phase: PhaseScheduled}
	Running   = State{Phase: PhaseLive}
	Paused    = State{Phase: PhaseLive, Paused: true}
	Finished  = State{Phase: PhaseFinished}
)

func (s State) String() string {
	if s.Phase == PhaseLive {
		if s.Paused {
			return "paused"
		}
		return "running"
	}
	return s.Phase.String()
}

// Ticking reports whether the clock engine may advance the minute.
func (s State) Ticking() bool {
	return s.Phase == PhaseLive && !s.Paused
}

// StateFromFlags folds the three stored booleans into a State. A finished
// flag wins over everything else, so inconsistent documents read as finished.
func StateFromFlags(isLive, isPaused, isFinished bool) State {
	switch {
	case isFinished:
		return Finished
	case isLive:
		return State{Phase: PhaseLive, Paused: isPaused}
	default:
		return Scheduled
	}
}

// Flags returns the stored representation of s.
func (s State) Flags() (isLive, isPaused, isFinished bool) {
	switch s.Phase {
	case PhaseLive:
		return true, s.Paused, false
	case PhaseFinished:
		return false, true, true
	default:
		return false, true, false
	}
}

// statePatch writes all three flags so no invalid combination can be stored.
func statePatch(s State) Patch {
	live, paused, finished := s.Flags()
	return Patch{IsLive: &live, IsPaused: &paused, IsFinished: &finished}
}

// GoLive moves a scheduled match to live. The clock starts running.
func GoLive(m Match) (Patch, error) {
	if m.State().Phase != PhaseScheduled {
		return Patch{}, invalidTransition("go live with", m.State())
	}
	return statePatch(Running), nil
}

// EndLive reverts a mistaken live activation. Minute and scores are kept.
func EndLive(m Match) (Patch, error) {
	if m.State().Phase != PhaseLive {
		return Patch{}, invalidTransition("end live on", m.State())
	}
	return statePatch(Scheduled), nil
}

// TogglePause flips between running and paused on a live match.
func TogglePause(m Match) (Patch, error) {
	s := m.State()
	if s.Phase != PhaseLive {
		return Patch{}, invalidTransition("pause or resume", s)
	}
	return statePatch(State{Phase: PhaseLive, Paused: !s.Paused}), nil
}

// Finish ends the match. Finishing a finished match yields an empty patch.
func Finish(m Match) (Patch, error) {
	if m.State().Phase == PhaseFinished {
		return Patch{}, nil
	}
	return statePatch(Finished), nil
}

// AdjustScore moves a team's score by exactly one goal, floored at zero.
func AdjustScore(m Match, team Team, delta int) (Patch, error) {
	if delta != 1 && delta != -1 {
		return Patch{}, invalidValue("score delta must be +1 or -1, got %d", delta)
	}
	if m.State().Phase == PhaseFinished {
		return Patch{}, invalidTransition("change the score of", m.State())
	}
	score := max(0, m.Score(team)+delta)
	switch team {
	case Team1:
		return Patch{Team1Score: &score}, nil
	case Team2:
		return Patch{Team2Score: &score}, nil
	}
	return Patch{}, invalidValue("unknown team %d", int(team))
}

// SetMinute overrides the elapsed minute. The ceiling does not apply.
func SetMinute(m Match, minute int) (Patch, error) {
	if minute < 0 {
		return Patch{}, invalidValue("minute must not be negative, got %d", minute)
	}
	if m.State().Phase == PhaseFinished {
		return Patch{}, invalidTransition("set the minute of", m.State())
	}
	return Patch{CurrentMinute: &minute}, nil
}

// SetExtraTime overrides the announced extra time.
func SetExtraTime(m Match, extra int) (Patch, error) {
	if extra < 0 {
		return Patch{}, invalidValue("extra time must not be negative, got %d", extra)
	}
	if m.State().Phase == PhaseFinished {
		return Patch{}, invalidTransition("set extra time on", m.State())
	}
	return Patch{ExtraTime: &extra}, nil
}

// Tick returns the patch advancing a running match by one minute. It reports
// false when the match is not ticking or already sits at MaxMinute. The patch
// only applies while the stored match is still running at the minute m shows.
func Tick(m Match) (Patch, bool) {
	if !m.State().Ticking() {
		return Patch{}, false
	}
	next := m.CurrentMinute + 1
	if next > MaxMinute {
		return Patch{}, false
	}
	seen := m.CurrentMinute
	return Patch{
		CurrentMinute: &next,
		If:            &Precondition{Ticking: true, CurrentMinute: &seen},
	}, true
}
