package metrics

import (
	"testing"

	"github.com/mauv0809/matchday/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) CounterStore {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return NewStore(db)
}

func TestIncrementAndGetAll(t *testing.T) {
	store := setupTestDB(t)

	// 1. Initially, there should be no counters
	counters, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, counters)

	// 2. Increment a new key
	store.Increment(CounterGoalsRecorded)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"goals_recorded": 1}, counters)

	// 3. Increment the same key again
	store.Increment(CounterGoalsRecorded)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"goals_recorded": 2}, counters)

	// 4. Increment a different key
	store.Increment(CounterMatchesFinished)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"goals_recorded":   2,
		"matches_finished": 1,
	}, counters)
}
