package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/matchday/internal/match"
)

type client struct {
	client   *pubsub.Client
	topic    *pubsub.Topic
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventKickoff  EventType = "kickoff"
	EventGoal     EventType = "goal"
	EventFullTime EventType = "full-time"
)

// AttributeEvent is the message attribute carrying the EventType, so push
// subscriptions can filter without decoding the payload.
const AttributeEvent = "event"

// MatchEvent is the payload published for every event.
type MatchEvent struct {
	Type       EventType   `msgpack:"type"`
	Match      match.Match `msgpack:"match"`
	Team       match.Team  `msgpack:"team,omitempty"`
	OccurredAt time.Time   `msgpack:"occurredAt"`
}

// Valid reports whether e is one of the known event types.
func (e EventType) Valid() bool {
	switch e {
	case EventKickoff, EventGoal, EventFullTime:
		return true
	}
	return false
}
