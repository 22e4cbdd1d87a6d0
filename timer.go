package monitor

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

// RepeatingTimer invokes a callback on a fixed interval from a
// background goroutine until stopped. At most one goroutine is live per
// instance. The callback must handle its own errors; the timer does not
// recover panics raised inside it.
//
// No reentrancy guarantee is made if the callback itself calls
// Start or Stop.
type RepeatingTimer struct {
	name     string
	interval time.Duration
	callback func()

	mu      sync.Mutex
	stopCh  chan struct{}
	doneCh  chan struct{}
	running atomic.Bool

	// Tick counter, useful for diagnostics and tests.
	ticks atomic.Int64
}

// NewRepeatingTimer creates a timer that calls callback every interval
// once started. The name identifies the timer in logs.
func NewRepeatingTimer(name string, interval time.Duration, callback func()) *RepeatingTimer {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &RepeatingTimer{
		name:     name,
		interval: interval,
		callback: callback,
	}
}

// Start launches the background loop. Calling Start while the timer is
// already running has no effect.
func (t *RepeatingTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running.Load() {
		return
	}

	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	t.running.Store(true)

	go t.run(t.stopCh, t.doneCh)
}

// run waits up to one interval per iteration; if no stop signal arrived
// it invokes the callback and repeats. Blocking on the stop channel with
// a timeout avoids the missed-wakeup races of a busy-checked flag.
func (t *RepeatingTimer) run(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			t.ticks.Add(1)
			t.callback()
		}
	}
}

// Stop signals the background loop to exit at its next wait boundary and
// blocks until it has terminated. Stop is idempotent; calling it when
// the timer is not running returns immediately.
func (t *RepeatingTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running.Load() {
		return
	}

	close(t.stopCh)
	<-t.doneCh

	t.stopCh = nil
	t.doneCh = nil
	t.running.Store(false)
}

// IsRunning reports whether the background loop is live, true strictly
// between a successful Start and the matching Stop completing.
func (t *RepeatingTimer) IsRunning() bool {
	return t.running.Load()
}

// Interval returns the configured tick interval.
func (t *RepeatingTimer) Interval() time.Duration {
	return t.interval
}

// Ticks returns the number of callback invocations so far.
func (t *RepeatingTimer) Ticks() int64 {
	return t.ticks.Load()
}

// Name returns the timer's identifier.
func (t *RepeatingTimer) Name() string {
	return t.name
}
