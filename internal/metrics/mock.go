package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                    sync.Mutex
	ticks                 int
	minutesAdvanced       int
	tickFailures          int
	operatorActions       map[string]int
	operatorActionsFailed map[string]int
	pollRuns              map[string]int
	pollFailures          map[string]int
	patchDurations        []float64
	slackNotifSent        int
	slackNotifFailed      int
	startupTime           float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		operatorActions:       make(map[string]int),
		operatorActionsFailed: make(map[string]int),
		pollRuns:              make(map[string]int),
		pollFailures:          make(map[string]int),
		patchDurations:        make([]float64, 0),
	}
}

func (m *Mock) IncTicks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticks++
}

func (m *Mock) IncMinutesAdvanced() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.minutesAdvanced++
}

func (m *Mock) IncTickFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickFailures++
}

func (m *Mock) IncOperatorAction(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operatorActions[action]++
}

func (m *Mock) IncOperatorActionFailed(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operatorActionsFailed[action]++
}

func (m *Mock) IncPollRuns(view string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollRuns[view]++
}

func (m *Mock) IncPollFailures(view string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollFailures[view]++
}

func (m *Mock) ObservePatchDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patchDurations = append(m.patchDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Ticks returns the number of times IncTicks was called.
func (m *Mock) Ticks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticks
}

// MinutesAdvanced returns the number of times IncMinutesAdvanced was called.
func (m *Mock) MinutesAdvanced() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.minutesAdvanced
}

// TickFailures returns the number of times IncTickFailures was called.
func (m *Mock) TickFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tickFailures
}

// OperatorActions returns how often the given action succeeded.
func (m *Mock) OperatorActions(action string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operatorActions[action]
}

// OperatorActionsFailed returns how often the given action failed.
func (m *Mock) OperatorActionsFailed(action string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operatorActionsFailed[action]
}

// PollRuns returns the number of polls recorded for a view.
func (m *Mock) PollRuns(view string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pollRuns[view]
}

// PollFailures returns the number of failed polls recorded for a view.
func (m *Mock) PollFailures(view string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pollFailures[view]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
