package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mauv0809/matchday/internal/config"
	"github.com/mauv0809/matchday/internal/engine"
	"github.com/mauv0809/matchday/internal/match"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/mauv0809/matchday/internal/pubsub"
)

type Server struct {
	Store          match.Store
	Actions        *engine.Actions
	Counters       metrics.CounterStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *mux.Router
	pubsub         pubsub.PubSubClient
	handler        http.Handler
}
