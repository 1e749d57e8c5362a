package slack

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/mauv0809/matchday/internal/match"
	"github.com/slack-go/slack"
)

const kickoffLayout = "Monday 02 Jan, 15:04"

// formatKickoff creates the Slack message for a match going live using Block Kit.
func formatKickoff(m match.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", "⚽ Kick-off!", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	fixture := fmt.Sprintf("*%s* vs *%s*", m.Team1Name, m.Team2Name)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", fixture, false, false), nil, nil))

	if details := fixtureDetails(m); details != "" {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", details, true, false)))
	}
	return slack.NewBlockMessage(blocks...)
}

// formatGoal creates the Slack message for a goal.
func formatGoal(m match.Match, team match.Team) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("⚽ Goal for %s!", m.TeamName(team)), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", scoreLine(m), false, false), nil, nil))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", m.ClockLabel(), false, false)))
	return slack.NewBlockMessage(blocks...)
}

// formatFullTime creates the Slack message for a finished match.
func formatFullTime(m match.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏁 Full time", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", scoreLine(m), false, false), nil, nil))

	var result string
	switch {
	case m.Team1Score > m.Team2Score:
		result = fmt.Sprintf("%s win", m.Team1Name)
	case m.Team2Score > m.Team1Score:
		result = fmt.Sprintf("%s win", m.Team2Name)
	default:
		result = "Draw"
	}
	if details := fixtureDetails(m); details != "" {
		result += " · " + details
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", result, true, false)))
	return slack.NewBlockMessage(blocks...)
}

func scoreLine(m match.Match) string {
	return fmt.Sprintf("*%s* %d - %d *%s*", m.Team1Name, m.Team1Score, m.Team2Score, m.Team2Name)
}

// fixtureDetails joins league, venue and kick-off time, skipping blanks.
func fixtureDetails(m match.Match) string {
	var parts []string
	if m.LeagueName != "" {
		parts = append(parts, m.LeagueName)
	}
	if m.Venue != "" {
		parts = append(parts, m.Venue)
	}
	if !m.StartTime.IsZero() {
		loc, err := time.LoadLocation("Europe/London")
		if err != nil {
			loc = time.UTC
		}
		parts = append(parts, m.StartTime.In(loc).Format(kickoffLayout))
	}
	return strings.Join(parts, " · ")
}
