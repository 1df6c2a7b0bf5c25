package poll

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startCounting(t *testing.T, ctx context.Context, clock Clock) (*Task, <-chan struct{}, *atomic.Int32) {
	t.Helper()
	fired := make(chan struct{}, 16)
	var count atomic.Int32
	task := Start(ctx, clock, DefaultInterval, func() {
		count.Add(1)
		fired <- struct{}{}
	})
	return task, fired, &count
}

func waitFire(t *testing.T, fired <-chan struct{}) {
	t.Helper()
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a fire")
	}
}

func assertNoFire(t *testing.T, fired <-chan struct{}) {
	t.Helper()
	select {
	case <-fired:
		t.Fatal("unexpected fire")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStart_ArmsOneTickerWithPeriod(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	task, _, _ := startCounting(t, context.Background(), clock)
	defer task.Stop()

	assert.Equal(t, []time.Duration{15 * time.Second}, clock.Armed())
	assert.Equal(t, 15000*time.Millisecond, task.Period())
}

func TestStart_FiresOncePerPeriod(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	task, fired, count := startCounting(t, context.Background(), clock)
	defer task.Stop()

	clock.Advance(14 * time.Second)
	assertNoFire(t, fired)

	for i := 0; i < 3; i++ {
		clock.Advance(DefaultInterval)
		waitFire(t, fired)
	}
	assert.EqualValues(t, 3, count.Load())
}

func TestStop_NoFireAfterTeardown(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	task, fired, count := startCounting(t, context.Background(), clock)

	clock.Advance(DefaultInterval)
	waitFire(t, fired)
	clock.Advance(DefaultInterval)
	waitFire(t, fired)

	task.Stop()
	assert.Empty(t, clock.Armed(), "ticker must be released on stop")

	for i := 0; i < 5; i++ {
		clock.Advance(DefaultInterval)
	}
	assertNoFire(t, fired)
	assert.EqualValues(t, 2, count.Load())
}

func TestStop_Idempotent(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	task, _, _ := startCounting(t, context.Background(), clock)

	task.Stop()
	task.Stop()

	select {
	case <-task.Done():
	default:
		t.Fatal("Done must be closed after Stop")
	}

	var nilTask *Task
	assert.NotPanics(t, func() { nilTask.Stop() })
}

func TestStart_ContextCancelStopsTask(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	task, fired, _ := startCounting(t, ctx, clock)

	cancel()
	select {
	case <-task.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("task did not stop on context cancel")
	}

	clock.Advance(DefaultInterval)
	assertNoFire(t, fired)
	require.Empty(t, clock.Armed())
}

func TestFakeClock_DropsUnreadTicks(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	tk := clock.NewTicker(time.Second)

	clock.Advance(5 * time.Second)

	got := <-tk.C()
	assert.Equal(t, time.Unix(1, 0), got)
	select {
	case <-tk.C():
		t.Fatal("extra ticks must be dropped")
	default:
	}
	assert.Equal(t, time.Unix(5, 0), clock.Now())
}

func TestRealClock(t *testing.T) {
	task := Start(context.Background(), nil, 5*time.Millisecond, func() {})
	time.Sleep(20 * time.Millisecond)
	task.Stop()
}
