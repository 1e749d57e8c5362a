package metrics

import (
	"database/sql"
	"sync"

	"github.com/charmbracelet/log"
)

// Keys of the persistent counters reported by /stats.
const (
	CounterMatchesStarted  = "matches_started"
	CounterMatchesFinished = "matches_finished"
	CounterGoalsRecorded   = "goals_recorded"
	CounterMinutesTicked   = "minutes_ticked"
	CounterSlackNotices    = "slack_notifications_sent"
)

// store persists counters in the counters table.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore creates a new CounterStore.
func NewStore(db *sql.DB) CounterStore {
	return &store{
		db: db,
	}
}

// Increment upserts a counter key and increments its value by one.
func (s *store) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO counters (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1;
	`, key)
	if err != nil {
		log.Error("Failed to increment counter", "error", err, "key", key)
		return
	}
	log.Debug("Incremented counter", "key", key)
}

// GetAll returns all counters from the database.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM counters")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counters := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		counters[key] = value
	}
	return counters, rows.Err()
}

// MockCounterStore is an in-memory CounterStore for testing.
type MockCounterStore struct {
	mu       sync.Mutex
	counters map[string]int

	GetAllFunc func() (map[string]int, error)
}

// NewMockCounterStore creates an empty MockCounterStore.
func NewMockCounterStore() *MockCounterStore {
	return &MockCounterStore{counters: make(map[string]int)}
}

func (m *MockCounterStore) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[key]++
}

func (m *MockCounterStore) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllFunc != nil {
		return m.GetAllFunc()
	}
	out := make(map[string]int, len(m.counters))
	for k, v := range m.counters {
		out[k] = v
	}
	return out, nil
}
