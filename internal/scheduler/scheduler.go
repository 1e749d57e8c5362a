// Package scheduler runs repeating tasks whose lifetime is bound to a caller,
// such as a mounted view, instead of the process.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
)

// Task is a function run on a fixed interval. Runs never overlap: a run that
// outlasts the interval delays the next one.
type Task struct {
	name      string
	interval  time.Duration
	clock     clockwork.Clock
	fn        func(ctx context.Context)
	immediate bool
}

// Every creates a task running fn every interval on clock.
func Every(clock clockwork.Clock, interval time.Duration, name string, fn func(ctx context.Context)) *Task {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Task{
		name:     name,
		interval: interval,
		clock:    clock,
		fn:       fn,
	}
}

// Immediately makes the task run once as soon as it starts.
func (t *Task) Immediately() *Task {
	t.immediate = true
	return t
}

// Start launches the task. It keeps running until ctx is cancelled or the
// returned handle is stopped.
func (t *Task) Start(ctx context.Context) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		name:   t.name,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	ticker := t.clock.NewTicker(t.interval)
	log.Debug("Task started", "task", t.name, "interval", t.interval)

	go func() {
		defer close(h.done)
		defer ticker.Stop()

		if t.immediate {
			t.fn(ctx)
		}
		for {
			select {
			case <-ctx.Done():
				log.Debug("Task stopped", "task", t.name)
				return
			case <-ticker.Chan():
				if ctx.Err() != nil {
					continue
				}
				t.fn(ctx)
			}
		}
	}()
	return h
}

// Handle controls a started task.
type Handle struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Stop cancels the task and waits for any in-flight run to return, so no run
// can write into its scope after Stop returns. It is safe to call repeatedly.
func (h *Handle) Stop() {
	if h == nil {
		return
	}
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed once the task loop has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
