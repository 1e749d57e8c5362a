package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitRun(t *testing.T, runs <-chan struct{}) {
	t.Helper()
	select {
	case <-runs:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}
}

func TestTaskRunsOnEveryInterval(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := clockwork.NewFakeClock()
	runs := make(chan struct{}, 10)
	h := Every(clock, time.Minute, "test", func(context.Context) { runs <- struct{}{} }).Start(ctx)
	defer h.Stop()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	select {
	case <-runs:
		t.Fatal("task ran before the first interval elapsed")
	default:
	}

	clock.Advance(time.Minute)
	waitRun(t, runs)
	clock.Advance(time.Minute)
	waitRun(t, runs)
}

func TestTaskImmediately(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := clockwork.NewFakeClock()
	runs := make(chan struct{}, 10)
	h := Every(clock, 10*time.Second, "poll", func(context.Context) { runs <- struct{}{} }).Immediately().Start(ctx)
	defer h.Stop()

	waitRun(t, runs)
}

func TestStopCancelsAndWaits(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var count atomic.Int32
	started := make(chan struct{})
	h := Every(clock, time.Second, "stop", func(ctx context.Context) {
		count.Add(1)
		close(started)
		<-ctx.Done()
	}).Immediately().Start(context.Background())

	<-started
	h.Stop()
	h.Stop()

	select {
	case <-h.Done():
	default:
		t.Fatal("loop should have exited")
	}

	clock.Advance(time.Hour)
	assert.Equal(t, int32(1), count.Load(), "no run after Stop")
}

func TestParentContextCancelsTask(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := Every(clockwork.NewFakeClock(), time.Second, "parent", func(context.Context) {}).Start(ctx)

	cancel()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("task should stop with its parent context")
	}
}
