package notifier

import (
	"fmt"

	"github.com/mauv0809/matchday/internal/match"
	"github.com/mauv0809/matchday/internal/pubsub"
)

// Notifier defines a high-level interface for sending notifications about match events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	SendKickoffNotification(m match.Match, dryRun bool) error
	SendGoalNotification(m match.Match, team match.Team, dryRun bool) error
	SendFullTimeNotification(m match.Match, dryRun bool) error
}

// Dispatch sends the notice matching the event type.
func Dispatch(n Notifier, event pubsub.MatchEvent, dryRun bool) error {
	switch event.Type {
	case pubsub.EventKickoff:
		return n.SendKickoffNotification(event.Match, dryRun)
	case pubsub.EventGoal:
		return n.SendGoalNotification(event.Match, event.Team, dryRun)
	case pubsub.EventFullTime:
		return n.SendFullTimeNotification(event.Match, dryRun)
	}
	return fmt.Errorf("unknown match event %q", event.Type)
}
