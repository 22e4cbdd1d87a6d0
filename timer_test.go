package monitor

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTimerStartThenImmediateStop(t *testing.T) {
	var calls atomic.Int64
	rt := NewRepeatingTimer("test", 500*time.Millisecond, func() {
		calls.Add(1)
	})

	rt.Start()
	start := time.Now()
	rt.Stop()
	elapsed := time.Since(start)

	// Stop must not wait out a full tick.
	if elapsed > 250*time.Millisecond {
		t.Fatalf("Stop took %v, expected near-immediate return", elapsed)
	}
	if n := calls.Load(); n > 1 {
		t.Fatalf("callback fired %d times, expected 0 or 1", n)
	}
}

func TestTimerStopIdempotent(t *testing.T) {
	rt := NewRepeatingTimer("test", 10*time.Millisecond, func() {})

	// Stop before any Start is a no-op.
	rt.Stop()

	rt.Start()
	rt.Stop()

	start := time.Now()
	rt.Stop()
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("second Stop took %v, expected immediate return", elapsed)
	}
}

func TestTimerStartIdempotent(t *testing.T) {
	var calls atomic.Int64
	rt := NewRepeatingTimer("test", 5*time.Millisecond, func() {
		calls.Add(1)
	})

	rt.Start()
	rt.Start() // no second goroutine
	defer rt.Stop()

	deadline := time.Now().Add(time.Second)
	for calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if calls.Load() < 3 {
		t.Fatal("timer never ticked")
	}
}

func TestTimerIsRunningWindow(t *testing.T) {
	rt := NewRepeatingTimer("test", 10*time.Millisecond, func() {})

	if rt.IsRunning() {
		t.Fatal("IsRunning true before Start")
	}

	rt.Start()
	if !rt.IsRunning() {
		t.Fatal("IsRunning false after Start")
	}

	rt.Stop()
	if rt.IsRunning() {
		t.Fatal("IsRunning true after Stop returned")
	}
}

func TestTimerNoTicksAfterStop(t *testing.T) {
	var calls atomic.Int64
	rt := NewRepeatingTimer("test", 5*time.Millisecond, func() {
		calls.Add(1)
	})

	rt.Start()
	deadline := time.Now().Add(time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	rt.Stop()

	frozen := calls.Load()
	time.Sleep(30 * time.Millisecond)
	if calls.Load() != frozen {
		t.Fatalf("callback fired after Stop: %d -> %d", frozen, calls.Load())
	}
}

func TestTimerRestart(t *testing.T) {
	var calls atomic.Int64
	rt := NewRepeatingTimer("test", 5*time.Millisecond, func() {
		calls.Add(1)
	})

	rt.Start()
	rt.Stop()

	before := calls.Load()
	rt.Start()
	defer rt.Stop()

	deadline := time.Now().Add(time.Second)
	for calls.Load() <= before && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if calls.Load() <= before {
		t.Fatal("timer did not resume ticking after restart")
	}
}
