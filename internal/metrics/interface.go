package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncTicks()
	IncMinutesAdvanced()
	IncTickFailures()
	IncOperatorAction(action string)
	IncOperatorActionFailed(action string)
	IncPollRuns(view string)
	IncPollFailures(view string)
	ObservePatchDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// CounterStore persists named counters across restarts.
type CounterStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
