package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mauv0809/matchday/internal/config"
	"github.com/mauv0809/matchday/internal/engine"
	"github.com/mauv0809/matchday/internal/http/handlers"
	"github.com/mauv0809/matchday/internal/match"
	"github.com/mauv0809/matchday/internal/metrics"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/mauv0809/matchday/internal/pubsub"
	"github.com/rs/cors"
)

func NewServer(store match.Store, actions *engine.Actions, counters metrics.CounterStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Actions:        actions,
		Counters:       counters,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         mux.NewRouter(),
		pubsub:         pubsub,
	}

	server.routes()

	// Browser viewers poll the API from the club website.
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	server.handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(server.Router)
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("/metrics", s.MetricsHandler).Methods(http.MethodGet)
	s.Router.Handle("/health", Chain(handlers.HealthCheckHandler(), paramsMiddleware)).Methods(http.MethodGet)
	s.Router.Handle("/stats", Chain(handlers.StatsHandler(s.Counters), paramsMiddleware)).Methods(http.MethodGet)

	s.Router.Handle("/matches", Chain(handlers.ListMatchesHandler(s.Store), paramsMiddleware)).Methods(http.MethodGet)
	s.Router.Handle("/matches", Chain(handlers.CreateMatchHandler(s.Store), paramsMiddleware)).Methods(http.MethodPost)
	s.Router.Handle("/matches/{id}", Chain(handlers.GetMatchHandler(s.Store), paramsMiddleware)).Methods(http.MethodGet)
	s.Router.Handle("/matches/{id}", Chain(handlers.PatchMatchHandler(s.Store), paramsMiddleware)).Methods(http.MethodPatch)
	s.Router.Handle("/matches/{id}", Chain(handlers.DeleteMatchHandler(s.Store), paramsMiddleware)).Methods(http.MethodDelete)

	actions := map[string]http.Handler{
		engine.ActionGoLive:       handlers.GoLiveHandler(s.Actions),
		engine.ActionEndLive:      handlers.EndLiveHandler(s.Actions),
		engine.ActionTogglePause:  handlers.TogglePauseHandler(s.Actions),
		engine.ActionFinish:       handlers.FinishHandler(s.Actions),
		engine.ActionScore:        handlers.ScoreHandler(s.Actions),
		engine.ActionSetMinute:    handlers.MinuteHandler(s.Actions),
		engine.ActionSetExtraTime: handlers.ExtraTimeHandler(s.Actions),
	}
	for name, h := range actions {
		s.Router.Handle("/matches/{id}/"+name, Chain(h, paramsMiddleware)).Methods(http.MethodPost)
	}

	s.Router.Handle("/events/match", Chain(handlers.MatchEventHandler(s.Notifier, s.pubsub), paramsMiddleware)).Methods(http.MethodPost)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
