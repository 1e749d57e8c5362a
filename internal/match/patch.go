package match

import (
	"time"
)

// Patch is a partial update. Nil fields are left untouched by the store, so
// concurrent edits to disjoint fields do not clobber each other.
type Patch struct {
	LeagueName *string    `json:"leagueName,omitempty"`
	Venue      *string    `json:"venue,omitempty"`
	StartTime  *time.Time `json:"startTime,omitempty"`
	Team1Name  *string    `json:"team1Name,omitempty"`
	Team1Logo  *string    `json:"team1Logo,omitempty"`
	Team2Name  *string    `json:"team2Name,omitempty"`
	Team2Logo  *string    `json:"team2Logo,omitempty"`

	IsLive        *bool `json:"isLive,omitempty"`
	IsPaused      *bool `json:"isPaused,omitempty"`
	IsFinished    *bool `json:"isFinished,omitempty"`
	CurrentMinute *int  `json:"currentMinute,omitempty"`
	ExtraTime     *int  `json:"extraTime,omitempty"`
	Team1Score    *int  `json:"team1Score,omitempty"`
	Team2Score    *int  `json:"team2Score,omitempty"`

	Lineups *Lineups `json:"lineups,omitempty"`

	// If makes the write conditional on the stored document.
	If *Precondition `json:"if,omitempty"`
}

// Precondition is checked against the stored document before a patch is
// written. A mismatch fails the patch with ErrStale.
type Precondition struct {
	// Ticking requires the match to be live and running.
	Ticking bool `json:"ticking,omitempty"`
	// CurrentMinute requires the stored minute to equal this value.
	CurrentMinute *int `json:"currentMinute,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// TouchesState reports whether the patch writes any lifecycle flag.
func (p Patch) TouchesState() bool {
	return p.IsLive != nil || p.IsPaused != nil || p.IsFinished != nil
}

// Fields lists the document fields the patch writes, in a stable order.
func (p Patch) Fields() []string {
	var fields []string
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(p.LeagueName != nil, "leagueName")
	add(p.Venue != nil, "venue")
	add(p.StartTime != nil, "startTime")
	add(p.Team1Name != nil, "team1Name")
	add(p.Team1Logo != nil, "team1Logo")
	add(p.Team2Name != nil, "team2Name")
	add(p.Team2Logo != nil, "team2Logo")
	add(p.IsLive != nil, "isLive")
	add(p.IsPaused != nil, "isPaused")
	add(p.IsFinished != nil, "isFinished")
	add(p.CurrentMinute != nil, "currentMinute")
	add(p.ExtraTime != nil, "extraTime")
	add(p.Team1Score != nil, "team1Score")
	add(p.Team2Score != nil, "team2Score")
	add(p.Lineups != nil, "lineups")
	return fields
}

// Validate rejects patches that would store an impossible document.
func (p Patch) Validate() error {
	for name, v := range map[string]*int{
		"currentMinute": p.CurrentMinute,
		"extraTime":     p.ExtraTime,
		"team1Score":    p.Team1Score,
		"team2Score":    p.Team2Score,
	} {
		if v != nil && *v < 0 {
			return invalidValue("%s must not be negative, got %d", name, *v)
		}
	}
	if p.IsFinished != nil && *p.IsFinished {
		if p.IsLive != nil && *p.IsLive {
			return invalidValue("a finished match cannot be live")
		}
		if p.IsPaused != nil && !*p.IsPaused {
			return invalidValue("a finished match cannot be running")
		}
	}
	if p.Team1Name != nil && *p.Team1Name == "" || p.Team2Name != nil && *p.Team2Name == "" {
		return invalidValue("team names must not be empty")
	}
	if p.Lineups != nil {
		for _, l := range []Lineup{p.Lineups.Team1, p.Lineups.Team2} {
			if l.Formation == "" {
				continue
			}
			if _, err := ParseFormation(l.Formation); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateAgainst checks the patch against the stored document it will be
// merged into. The lifecycle flags of the result must form a valid State, and
// the clock, scores and flags of a finished match are frozen.
func (p Patch) ValidateAgainst(current Match) error {
	if c := p.If; c != nil {
		if c.Ticking && !current.State().Ticking() {
			return stale("match %s is %s", current.ID, current.State())
		}
		if c.CurrentMinute != nil && current.CurrentMinute != *c.CurrentMinute {
			return stale("match %s is at minute %d, not %d", current.ID, current.CurrentMinute, *c.CurrentMinute)
		}
	}

	next := p.Apply(current)
	if current.State() == Finished && liveFields(next) != liveFields(current) {
		return invalidTransition("change the clock, score or state of", Finished)
	}
	if p.TouchesState() {
		live, paused, finished := StateFromFlags(next.IsLive, next.IsPaused, next.IsFinished).Flags()
		if live != next.IsLive || paused != next.IsPaused || finished != next.IsFinished {
			return invalidValue("isLive=%t isPaused=%t isFinished=%t is not a valid match state",
				next.IsLive, next.IsPaused, next.IsFinished)
		}
	}
	return nil
}

type liveState struct {
	isLive, isPaused, isFinished bool
	minute, extra, score1, score2 int
}

func liveFields(m Match) liveState {
	return liveState{m.IsLive, m.IsPaused, m.IsFinished, m.CurrentMinute, m.ExtraTime, m.Team1Score, m.Team2Score}
}

// Apply returns m with the patch merged in.
func (p Patch) Apply(m Match) Match {
	if p.LeagueName != nil {
		m.LeagueName = *p.LeagueName
	}
	if p.Venue != nil {
		m.Venue = *p.Venue
	}
	if p.StartTime != nil {
		m.StartTime = *p.StartTime
	}
	if p.Team1Name != nil {
		m.Team1Name = *p.Team1Name
	}
	if p.Team1Logo != nil {
		m.Team1Logo = *p.Team1Logo
	}
	if p.Team2Name != nil {
		m.Team2Name = *p.Team2Name
	}
	if p.Team2Logo != nil {
		m.Team2Logo = *p.Team2Logo
	}
	if p.IsLive != nil {
		m.IsLive = *p.IsLive
	}
	if p.IsPaused != nil {
		m.IsPaused = *p.IsPaused
	}
	if p.IsFinished != nil {
		m.IsFinished = *p.IsFinished
	}
	if p.CurrentMinute != nil {
		m.CurrentMinute = *p.CurrentMinute
	}
	if p.ExtraTime != nil {
		m.ExtraTime = *p.ExtraTime
	}
	if p.Team1Score != nil {
		m.Team1Score = *p.Team1Score
	}
	if p.Team2Score != nil {
		m.Team2Score = *p.Team2Score
	}
	if p.Lineups != nil {
		m.Lineups = *p.Lineups
	}
	return m
}
