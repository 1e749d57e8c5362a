package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_clock_ticks_total",
			Help: "The total number of clock engine tick runs.",
		}),
		MinutesAdvanced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_minutes_advanced_total",
			Help: "The total number of match minutes advanced by the clock engine.",
		}),
		TickFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_tick_patch_failures_total",
			Help: "The total number of tick patches the store rejected or failed.",
		}),
		OperatorActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_operator_actions_total",
			Help: "The total number of operator actions applied, by action.",
		}, []string{"action"}),
		OperatorActionsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_operator_actions_failed_total",
			Help: "The total number of operator actions that failed, by action.",
		}, []string{"action"}),
		PollRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_viewer_polls_total",
			Help: "The total number of viewer refresh polls, by view.",
		}, []string{"view"}),
		PollFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_viewer_poll_failures_total",
			Help: "The total number of viewer refresh polls that failed, by view.",
		}, []string{"view"}),
		PatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchday_store_patch_duration_seconds",
			Help:    "The duration of individual store patch calls.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchday_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Ticks,
		s.MinutesAdvanced,
		s.TickFailures,
		s.OperatorActions,
		s.OperatorActionsFailed,
		s.PollRuns,
		s.PollFailures,
		s.PatchDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncTicks() {
	s.Ticks.Inc()
}

func (s *Service) IncMinutesAdvanced() {
	s.MinutesAdvanced.Inc()
}

func (s *Service) IncTickFailures() {
	s.TickFailures.Inc()
}

func (s *Service) IncOperatorAction(action string) {
	s.OperatorActions.WithLabelValues(action).Inc()
}

func (s *Service) IncOperatorActionFailed(action string) {
	s.OperatorActionsFailed.WithLabelValues(action).Inc()
}

func (s *Service) IncPollRuns(view string) {
	s.PollRuns.WithLabelValues(view).Inc()
}

func (s *Service) IncPollFailures(view string) {
	s.PollFailures.WithLabelValues(view).Inc()
}

func (s *Service) ObservePatchDuration(duration float64) {
	s.PatchDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
