package notifier

import (
	"sync"

	"github.com/mauv0809/matchday/internal/match"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendKickoffNotificationFunc  func(m match.Match, dryRun bool) error
	SendGoalNotificationFunc     func(m match.Match, team match.Team, dryRun bool) error
	SendFullTimeNotificationFunc func(m match.Match, dryRun bool) error

	// Call records
	SendKickoffNotificationCalls  []NotificationCall
	SendGoalNotificationCalls     []NotificationCall
	SendFullTimeNotificationCalls []NotificationCall
}

// NotificationCall holds the arguments for a notification call.
type NotificationCall struct {
	Match  match.Match
	Team   match.Team
	DryRun bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendKickoffNotificationCalls = nil
	m.SendGoalNotificationCalls = nil
	m.SendFullTimeNotificationCalls = nil
}

func (m *Mock) SendKickoffNotification(doc match.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendKickoffNotificationCalls = append(m.SendKickoffNotificationCalls, NotificationCall{Match: doc, DryRun: dryRun})
	if m.SendKickoffNotificationFunc != nil {
		return m.SendKickoffNotificationFunc(doc, dryRun)
	}
	return nil
}

func (m *Mock) SendGoalNotification(doc match.Match, team match.Team, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGoalNotificationCalls = append(m.SendGoalNotificationCalls, NotificationCall{Match: doc, Team: team, DryRun: dryRun})
	if m.SendGoalNotificationFunc != nil {
		return m.SendGoalNotificationFunc(doc, team, dryRun)
	}
	return nil
}

func (m *Mock) SendFullTimeNotification(doc match.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendFullTimeNotificationCalls = append(m.SendFullTimeNotificationCalls, NotificationCall{Match: doc, DryRun: dryRun})
	if m.SendFullTimeNotificationFunc != nil {
		return m.SendFullTimeNotificationFunc(doc, dryRun)
	}
	return nil
}
