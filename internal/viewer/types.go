package viewer

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/matchday/internal/match"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/scheduler"
)

const (
	// DefaultListInterval is the refresh period of the match list.
	DefaultListInterval = 10 * time.Second
	// DefaultDetailInterval is the refresh period of a single match.
	DefaultDetailInterval = 5 * time.Second
)

// Metric labels for the two views.
const (
	viewList   = "list"
	viewDetail = "detail"
)

// ListView keeps a polled snapshot of every match.
type ListView struct {
	source   Source
	metrics  metrics.Metrics
	clock    clockwork.Clock
	interval time.Duration

	mu       sync.RWMutex
	matches  []match.Match
	keep     func(match.Match) bool
	onChange func([]match.Match)
	handle   *scheduler.Handle
}

// DetailView keeps a polled snapshot of one match.
type DetailView struct {
	source   Source
	metrics  metrics.Metrics
	clock    clockwork.Clock
	interval time.Duration

	// watchMu serializes Watch and Stop.
	watchMu sync.Mutex

	mu       sync.RWMutex
	id       string
	doc      match.Match
	loaded   bool
	onChange func(m match.Match, ok bool)
	handle   *scheduler.Handle
}
