package engine

import (
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/pubsub"
)

// DefaultTickInterval is how often a running match gains a minute.
const DefaultTickInterval = time.Minute

// ErrConfirmationRequired is returned when finishing a match without the
// operator's explicit confirmation.
var ErrConfirmationRequired = errors.New("confirmation required")

// Operator action names, used as metric labels and route suffixes.
const (
	ActionGoLive       = "go-live"
	ActionEndLive      = "end-live"
	ActionTogglePause  = "toggle-pause"
	ActionFinish       = "finish"
	ActionScore        = "score"
	ActionSetMinute    = "minute"
	ActionSetExtraTime = "extra-time"
)

// Engine advances the minute of every running match in a view's snapshot.
type Engine struct {
	store    Store
	metrics  metrics.Metrics
	clock    clockwork.Clock
	interval time.Duration
}

// Actions applies operator commands to single matches.
type Actions struct {
	store    Store
	metrics  metrics.Metrics
	counters Counters
	pubsub   pubsub.PubSubClient
	clock    clockwork.Clock
}
