package match

import (
	"fmt"
	"time"
)

// MaxMinute is the highest minute the clock engine will tick a match to.
// Operators can still set a later minute by hand.
const MaxMinute = 125

// Team identifies one side of a fixture.
type Team int

const (
	Team1 Team = 1
	Team2 Team = 2
)

func (t Team) String() string {
	switch t {
	case Team1:
		return "team1"
	case Team2:
		return "team2"
	default:
		return "unknown"
	}
}

// ParseTeam accepts "1", "2", "team1" or "team2".
func ParseTeam(s string) (Team, error) {
	switch s {
	case "1", "team1":
		return Team1, nil
	case "2", "team2":
		return Team2, nil
	}
	return 0, invalidValue("unknown team %q", s)
}

// Match is a fixture document as held by the store.
type Match struct {
	ID         string    `json:"id" msgpack:"id"`
	LeagueName string    `json:"leagueName" msgpack:"leagueName"`
	Venue      string    `json:"venue" msgpack:"venue"`
	StartTime  time.Time `json:"startTime" msgpack:"startTime"`
	Team1Name  string    `json:"team1Name" msgpack:"team1Name"`
	Team1Logo  string    `json:"team1Logo" msgpack:"team1Logo"`
	Team2Name  string    `json:"team2Name" msgpack:"team2Name"`
	Team2Logo  string    `json:"team2Logo" msgpack:"team2Logo"`

	IsLive        bool `json:"isLive" msgpack:"isLive"`
	IsPaused      bool `json:"isPaused" msgpack:"isPaused"`
	IsFinished    bool `json:"isFinished" msgpack:"isFinished"`
	CurrentMinute int  `json:"currentMinute" msgpack:"currentMinute"`
	ExtraTime     int  `json:"extraTime" msgpack:"extraTime"`
	Team1Score    int  `json:"team1Score" msgpack:"team1Score"`
	Team2Score    int  `json:"team2Score" msgpack:"team2Score"`

	Lineups Lineups `json:"lineups" msgpack:"lineups"`

	CreatedAt time.Time `json:"createdAt" msgpack:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" msgpack:"updatedAt"`
}

// State derives the tagged lifecycle state from the stored flags.
func (m Match) State() State {
	return StateFromFlags(m.IsLive, m.IsPaused, m.IsFinished)
}

// Score returns the current score of the given team.
func (m Match) Score(team Team) int {
	if team == Team2 {
		return m.Team2Score
	}
	return m.Team1Score
}

// TeamName returns the display name of the given team.
func (m Match) TeamName(team Team) string {
	if team == Team2 {
		return m.Team2Name
	}
	return m.Team1Name
}

// ClockLabel formats the elapsed time as shown on boards, e.g. "67'" or
// "90' +4".
func (m Match) ClockLabel() string {
	if m.ExtraTime > 0 {
		return fmt.Sprintf("%d' +%d", m.CurrentMinute, m.ExtraTime)
	}
	return fmt.Sprintf("%d'", m.CurrentMinute)
}

// ScoreLine formats the fixture with its score, e.g. "Rovers 2 - 1 United".
func (m Match) ScoreLine() string {
	return fmt.Sprintf("%s %d - %d %s", m.Team1Name, m.Team1Score, m.Team2Score, m.Team2Name)
}

// NewMatch holds the fixture facts supplied when a match is scheduled.
type NewMatch struct {
	LeagueName string    `json:"leagueName" yaml:"leagueName"`
	Venue      string    `json:"venue" yaml:"venue"`
	StartTime  time.Time `json:"startTime" yaml:"startTime"`
	Team1Name  string    `json:"team1Name" yaml:"team1Name"`
	Team1Logo  string    `json:"team1Logo" yaml:"team1Logo"`
	Team2Name  string    `json:"team2Name" yaml:"team2Name"`
	Team2Logo  string    `json:"team2Logo" yaml:"team2Logo"`
	Lineups    Lineups   `json:"lineups" yaml:"lineups"`
}

// Validate checks the fields required to schedule a fixture.
func (n NewMatch) Validate() error {
	if n.Team1Name == "" || n.Team2Name == "" {
		return invalidValue("both team names are required")
	}
	for _, l := range []Lineup{n.Lineups.Team1, n.Lineups.Team2} {
		if l.Formation == "" {
			continue
		}
		if _, err := ParseFormation(l.Formation); err != nil {
			return err
		}
	}
	return nil
}

// Scheduled builds the initial document for a new fixture.
func (n NewMatch) Scheduled(id string, now time.Time) Match {
	return Match{
		ID:         id,
		LeagueName: n.LeagueName,
		Venue:      n.Venue,
		StartTime:  n.StartTime,
		Team1Name:  n.Team1Name,
		Team1Logo:  n.Team1Logo,
		Team2Name:  n.Team2Name,
		Team2Logo:  n.Team2Logo,
		IsPaused:   true,
		Lineups:    n.Lineups,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Status is a display bucket used by list views.
type Status string

const (
	StatusCurrent  Status = "current"
	StatusLive     Status = "live"
	StatusUpcoming Status = "upcoming"
	StatusFinished Status = "finished"
	StatusAll      Status = "all"
)

// IsCurrent reports whether a match belongs in "current" listings.
func IsCurrent(m Match) bool { return !m.IsFinished }

// IsLiveNow reports whether a match is live and not finished.
func IsLiveNow(m Match) bool { return m.IsLive && !m.IsFinished }

// IsUpcoming reports whether a match has not gone live yet.
func IsUpcoming(m Match) bool { return !m.IsLive && !m.IsFinished }

// IsFinished reports whether a match reached full time.
func IsFinished(m Match) bool { return m.IsFinished }

// StatusFilter returns the predicate for a display bucket.
func StatusFilter(status Status) (func(Match) bool, error) {
	switch status {
	case StatusCurrent:
		return IsCurrent, nil
	case StatusLive:
		return IsLiveNow, nil
	case StatusUpcoming:
		return IsUpcoming, nil
	case StatusFinished:
		return IsFinished, nil
	case StatusAll, "":
		return func(Match) bool { return true }, nil
	}
	return nil, invalidValue("unknown status %q", status)
}

// Filter returns the matches for which keep reports true.
func Filter(matches []Match, keep func(Match) bool) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
