package match

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockStore is a mock implementation of the Store interface for testing.
// Without hooks it behaves like an in-memory store seeded through Seed.
// It is safe for concurrent use.
type MockStore struct {
	mu      sync.Mutex
	matches map[string]Match
	order   []string

	// Spies for method calls
	ListMatchesFunc func(ctx context.Context) ([]Match, error)
	GetMatchFunc    func(ctx context.Context, id string) (Match, error)
	CreateMatchFunc func(ctx context.Context, n NewMatch) (Match, error)
	PatchMatchFunc  func(ctx context.Context, id string, p Patch) (Match, error)
	DeleteMatchFunc func(ctx context.Context, id string) error

	// Call records
	ListMatchesCalls int
	GetMatchCalls    []string
	CreateMatchCalls []NewMatch
	PatchMatchCalls  []PatchMatchCall
	DeleteMatchCalls []string
}

// PatchMatchCall holds the arguments for a call to PatchMatch.
type PatchMatchCall struct {
	ID    string
	Patch Patch
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{matches: make(map[string]Match)}
}

// Seed stores documents as-is, replacing any with the same id.
func (m *MockStore) Seed(matches ...Match) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range matches {
		if _, ok := m.matches[doc.ID]; !ok {
			m.order = append(m.order, doc.ID)
		}
		m.matches[doc.ID] = doc
	}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListMatchesCalls = 0
	m.GetMatchCalls = nil
	m.CreateMatchCalls = nil
	m.PatchMatchCalls = nil
	m.DeleteMatchCalls = nil
}

// Patches returns a copy of the recorded PatchMatch calls.
func (m *MockStore) Patches() []PatchMatchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PatchMatchCall(nil), m.PatchMatchCalls...)
}

func (m *MockStore) ListMatches(ctx context.Context) ([]Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListMatchesCalls++
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(ctx)
	}
	out := make([]Match, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.matches[id])
	}
	return out, nil
}

func (m *MockStore) GetMatch(ctx context.Context, id string) (Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetMatchCalls = append(m.GetMatchCalls, id)
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(ctx, id)
	}
	doc, ok := m.matches[id]
	if !ok {
		return Match{}, ErrNotFound
	}
	return doc, nil
}

func (m *MockStore) CreateMatch(ctx context.Context, n NewMatch) (Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, n)
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(ctx, n)
	}
	if err := n.Validate(); err != nil {
		return Match{}, err
	}
	doc := n.Scheduled(uuid.NewString(), time.Now())
	m.matches[doc.ID] = doc
	m.order = append(m.order, doc.ID)
	return doc, nil
}

func (m *MockStore) PatchMatch(ctx context.Context, id string, p Patch) (Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PatchMatchCalls = append(m.PatchMatchCalls, PatchMatchCall{ID: id, Patch: p})
	if m.PatchMatchFunc != nil {
		return m.PatchMatchFunc(ctx, id, p)
	}
	if err := p.Validate(); err != nil {
		return Match{}, err
	}
	if p.IsEmpty() {
		return Match{}, invalidValue("empty patch")
	}
	doc, ok := m.matches[id]
	if !ok {
		return Match{}, ErrNotFound
	}
	if err := p.ValidateAgainst(doc); err != nil {
		return Match{}, err
	}
	doc = p.Apply(doc)
	m.matches[id] = doc
	return doc, nil
}

func (m *MockStore) DeleteMatch(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteMatchCalls = append(m.DeleteMatchCalls, id)
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(ctx, id)
	}
	if _, ok := m.matches[id]; !ok {
		return ErrNotFound
	}
	delete(m.matches, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
