package ambient

import (
	"cmp"
	"slices"
	"time"
)

// Timer is a one-shot or repeating task owned by a Scheduler.
type Timer struct {
	due      time.Duration
	interval time.Duration
	seq      uint64
	fn       func()
	stopped  bool
}

// Stop cancels the timer. Safe to call more than once and on a nil timer.
func (t *Timer) Stop() {
	if t != nil {
		t.stopped = true
	}
}

// Stopped reports whether the timer was cancelled or, for a one-shot timer,
// has already fired.
func (t *Timer) Stopped() bool {
	return t == nil || t.stopped
}

type frameCallback struct {
	fn      func(dt time.Duration)
	stopped bool
}

// FrameHandle cancels a per-frame callback.
type FrameHandle struct {
	cb *frameCallback
}

// Stop unregisters the callback; it will not run again.
func (h FrameHandle) Stop() {
	if h.cb != nil {
		h.cb.stopped = true
	}
}

// Active reports whether the callback is still registered.
func (h FrameHandle) Active() bool {
	return h.cb != nil && !h.cb.stopped
}

// Scheduler is a cooperative, single-threaded task scheduler driven by a
// virtual clock. Nothing runs until Advance is called; one Advance is one
// display frame. Within a frame, due timers fire first in (due time,
// registration) order, then every frame callback runs in registration order.
// Work registered during a frame never runs in that same frame.
type Scheduler struct {
	now    time.Duration
	frame  uint64
	seq    uint64
	timers []*Timer
	frames []*frameCallback
	dueBuf []*Timer
}

// NewScheduler creates a scheduler with its clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Frame returns the number of Advance calls so far.
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// After schedules fn to run once, d after the current virtual time.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{due: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Every schedules fn to run every d until stopped. A timer that falls behind
// fires at most once per frame.
func (s *Scheduler) Every(d time.Duration, fn func()) *Timer {
	if d <= 0 {
		d = 1
	}
	t := s.After(d, fn)
	t.interval = d
	return t
}

// OnFrame registers fn to run once per frame with the frame's delta.
func (s *Scheduler) OnFrame(fn func(dt time.Duration)) FrameHandle {
	cb := &frameCallback{fn: fn}
	s.frames = append(s.frames, cb)
	return FrameHandle{cb: cb}
}

// Pending returns the number of live timers and frame callbacks.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	for _, cb := range s.frames {
		if !cb.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by dt and runs one frame.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt
	s.frame++
	n := len(s.frames)

	s.dueBuf = s.dueBuf[:0]
	for _, t := range s.timers {
		if !t.stopped && t.due <= s.now {
			s.dueBuf = append(s.dueBuf, t)
		}
	}
	slices.SortFunc(s.dueBuf, func(a, b *Timer) int {
		if c := cmp.Compare(a.due, b.due); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	for _, t := range s.dueBuf {
		if t.stopped {
			continue
		}
		if t.interval > 0 {
			t.due += t.interval
		} else {
			t.stopped = true
		}
		t.fn()
	}
	s.timers = slices.DeleteFunc(s.timers, func(t *Timer) bool { return t.stopped })

	for i := 0; i < n; i++ {
		if cb := s.frames[i]; !cb.stopped {
			cb.fn(dt)
		}
	}
	s.frames = slices.DeleteFunc(s.frames, func(cb *frameCallback) bool { return cb.stopped })
}
