// Package poll runs a function on a fixed period for as long as a scope lives.
//
// A Task is bound to a context: cancelling the context or calling Stop ends
// it, and Stop does not return until the task's goroutine has exited, so no
// fire can happen after teardown.
package poll

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is how often visible tables reload.
const DefaultInterval = 15 * time.Second

// Clock creates tickers. RealClock in production, FakeClock in tests.
type Clock interface {
	NewTicker(period time.Duration) Ticker
}

// Ticker is the subset of time.Ticker that Task needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// RealClock is backed by time.NewTicker.
type RealClock struct{}

// NewTicker implements Clock.
func (RealClock) NewTicker(period time.Duration) Ticker {
	return realTicker{t: time.NewTicker(period)}
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// Task is a repeating job started by Start.
type Task struct {
	period time.Duration
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start arms a ticker with the given period and calls fire on every tick
// until ctx is cancelled or Stop is called. The first fire happens one
// period after Start, never immediately.
func Start(ctx context.Context, clock Clock, period time.Duration, fire func()) *Task {
	if clock == nil {
		clock = RealClock{}
	}
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		period: period,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	ticker := clock.NewTicker(period)
	go t.run(ctx, ticker, fire)
	return t
}

func (t *Task) run(ctx context.Context, ticker Ticker, fire func()) {
	defer close(t.done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			// A tick and a cancel can be ready together; cancel wins.
			if ctx.Err() != nil {
				return
			}
			fire()
		}
	}
}

// Period returns the interval the task was started with.
func (t *Task) Period() time.Duration {
	return t.period
}

// Stop cancels the task and waits for its goroutine to exit. Safe to call
// more than once and from a deferred teardown path.
func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.once.Do(t.cancel)
	<-t.done
}

// Done is closed once the task has fully stopped.
func (t *Task) Done() <-chan struct{} {
	return t.done
}
