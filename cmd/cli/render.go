package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mauv0809/matchday/internal/match"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	liveStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	pausedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	finalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	upcomingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// Column widths of the board.
const (
	badgeWidth   = 10
	clockWidth   = 9
	fixtureWidth = 40
)

func badge(m match.Match) string {
	s := m.State()
	switch {
	case s == match.Finished:
		return finalStyle.Render("FT")
	case s == match.Paused:
		return pausedStyle.Render("PAUSED")
	case s.Ticking():
		return liveStyle.Render("LIVE")
	default:
		return upcomingStyle.Render("UPCOMING")
	}
}

// cell pads s to width visible columns. Longer text is left as is.
func cell(width int, s string) string {
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}

// renderBoard writes one line per match.
func renderBoard(w io.Writer, matches []match.Match, now time.Time) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Matches (%d)", len(matches)))+"  "+dimStyle.Render("updated "+now.Format("15:04:05")))
	if len(matches) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No matches."))
		return
	}
	for _, m := range matches {
		clock := ""
		if m.State() != match.Scheduled {
			clock = m.ClockLabel()
		}
		fmt.Fprintln(w, strings.Join([]string{
			cell(badgeWidth, badge(m)),
			cell(clockWidth, clock),
			cell(fixtureWidth, m.ScoreLine()),
			dimStyle.Render(fixtureInfo(m)),
			dimStyle.Render(m.ID),
		}, " "))
	}
}

func fixtureInfo(m match.Match) string {
	var parts []string
	if m.LeagueName != "" {
		parts = append(parts, m.LeagueName)
	}
	if m.Venue != "" {
		parts = append(parts, m.Venue)
	}
	if !m.StartTime.IsZero() {
		parts = append(parts, m.StartTime.Local().Format("Mon 2 Jan 15:04"))
	}
	return strings.Join(parts, ", ")
}

// renderDetail writes the full view of one match including both lineups.
func renderDetail(w io.Writer, m match.Match) {
	fmt.Fprintln(w, titleStyle.Render(m.ScoreLine()))
	fmt.Fprintf(w, "%s  %s\n", badge(m), m.ClockLabel())
	if info := fixtureInfo(m); info != "" {
		fmt.Fprintln(w, dimStyle.Render(info))
	}
	renderLineup(w, m.Team1Name, m.Lineups.Team1)
	renderLineup(w, m.Team2Name, m.Lineups.Team2)
}

func renderLineup(w io.Writer, team string, l match.Lineup) {
	if len(l.Players) == 0 && len(l.Substitutes) == 0 && l.Manager == nil {
		return
	}
	formation := l.Formation
	if formation == "" {
		formation = match.DefaultFormation
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%s)", team, formation)))

	seen := make(map[string]bool, len(l.Players))
	for _, key := range l.PositionKeys() {
		if p, ok := l.Players[key]; ok {
			fmt.Fprintf(w, "  %s %s\n", cell(12, key), p.Name)
			seen[key] = true
		}
	}
	// Players keyed by positions the formation does not have.
	var extra []string
	for key := range l.Players {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		fmt.Fprintf(w, "  %s %s\n", cell(12, key), l.Players[key].Name)
	}

	if len(l.Substitutes) > 0 {
		names := make([]string, 0, len(l.Substitutes))
		for _, s := range l.Substitutes {
			names = append(names, s.Name)
		}
		fmt.Fprintf(w, "  %s %s\n", cell(12, "subs"), strings.Join(names, ", "))
	}
	if l.Manager != nil {
		fmt.Fprintf(w, "  %s %s\n", cell(12, "manager"), l.Manager.Name)
	}
}
