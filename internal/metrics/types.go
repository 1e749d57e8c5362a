package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	Ticks                 prometheus.Counter
	MinutesAdvanced       prometheus.Counter
	TickFailures          prometheus.Counter
	OperatorActions       *prometheus.CounterVec
	OperatorActionsFailed *prometheus.CounterVec
	PollRuns              *prometheus.CounterVec
	PollFailures          *prometheus.CounterVec
	PatchDuration         prometheus.Histogram
	SlackNotifSent        prometheus.Counter
	SlackNotifFailed      prometheus.Counter
	StartupTimeSeconds    prometheus.Gauge
}
