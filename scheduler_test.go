package ambient

import (
	"slices"
	"testing"
	"time"
)

const ms = time.Millisecond

func TestSchedulerAfter(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(100*ms, func() { fired++ })

	s.Advance(99 * ms)
	if fired != 0 {
		t.Fatalf("fired early at %v", s.Now())
	}
	s.Advance(1 * ms)
	if fired != 1 {
		t.Fatalf("fired = %d at %v, want 1", fired, s.Now())
	}
	s.Advance(time.Second)
	if fired != 1 {
		t.Errorf("one-shot fired %d times", fired)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
}

func TestSchedulerOrder_DueThenRegistration(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.After(20*ms, func() { got = append(got, "b") })
	s.After(10*ms, func() { got = append(got, "a") })
	s.After(20*ms, func() { got = append(got, "c") })
	s.OnFrame(func(time.Duration) { got = append(got, "frame") })

	s.Advance(50 * ms)
	want := []string{"a", "b", "c", "frame"}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSchedulerEvery(t *testing.T) {
	s := NewScheduler()
	n := 0
	tm := s.Every(10*ms, func() { n++ })
	for range 5 {
		s.Advance(10 * ms)
	}
	if n != 5 {
		t.Fatalf("n = %d, want 5", n)
	}
	tm.Stop()
	s.Advance(10 * ms)
	if n != 5 {
		t.Errorf("stopped interval fired: n = %d", n)
	}
	if !tm.Stopped() {
		t.Error("Stopped() = false after Stop")
	}
}

func TestSchedulerStopBeforeDue(t *testing.T) {
	s := NewScheduler()
	fired := false
	tm := s.After(10*ms, func() { fired = true })
	tm.Stop()
	s.Advance(20 * ms)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestTimerNilSafe(t *testing.T) {
	var tm *Timer
	tm.Stop()
	if !tm.Stopped() {
		t.Error("nil timer should report stopped")
	}
}

func TestSchedulerRegisteredDuringFrameWaits(t *testing.T) {
	s := NewScheduler()
	inner := 0
	s.After(0, func() {
		s.After(0, func() { inner++ })
		s.OnFrame(func(time.Duration) { inner += 10 })
	})

	s.Advance(ms)
	if inner != 0 {
		t.Fatalf("work registered during the frame ran in it: inner = %d", inner)
	}
	s.Advance(ms)
	if inner != 11 {
		t.Errorf("inner = %d, want 11", inner)
	}
}

func TestFrameHandleStop(t *testing.T) {
	s := NewScheduler()
	n := 0
	var h FrameHandle
	h = s.OnFrame(func(dt time.Duration) {
		n++
		if n == 3 {
			h.Stop()
		}
	})
	for range 10 {
		s.Advance(16 * ms)
	}
	if n != 3 {
		t.Errorf("n = %d, want 3", n)
	}
	if h.Active() {
		t.Error("handle still active")
	}
}

func TestSchedulerFrameDelta(t *testing.T) {
	s := NewScheduler()
	var got time.Duration
	s.OnFrame(func(dt time.Duration) { got = dt })
	s.Advance(16 * ms)
	if got != 16*ms {
		t.Errorf("dt = %v, want 16ms", got)
	}
	if s.Frame() != 1 {
		t.Errorf("Frame = %d, want 1", s.Frame())
	}
}
