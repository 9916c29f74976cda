// Package timer schedules callbacks in virtual time that stops while the
// game is paused.
package timer

import (
	"log/slog"
	"time"
)

// State — состояние таймера
type State int

const (
	Running State = iota
	Paused
	Done
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Done:
		return "done"
	}
	return "unknown"
}

// Timer is a single scheduled callback owned by a Service.
type Timer struct {
	svc       *Service
	fn        func()
	total     time.Duration
	remaining time.Duration
	repeat    bool
	state     State
	firing    bool
	startedAt time.Duration
	pending   Stopper
}

// Total returns the configured delay or interval.
func (t *Timer) Total() time.Duration { return t.total }

// Repeating reports whether the timer re-arms after firing.
func (t *Timer) Repeating() bool { return t.repeat }

// State returns the current state.
func (t *Timer) State() State { return t.state }

// Remaining returns the running time left before the next fire.
func (t *Timer) Remaining() time.Duration {
	if t.state == Running && !t.firing {
		return clampZero(t.remaining - (t.svc.clock.Now() - t.startedAt))
	}
	return t.remaining
}

// Cancel stops the timer for good. Cancelling from inside its own callback
// prevents a repeating timer from re-arming.
func (t *Timer) Cancel() {
	if t.state == Done {
		return
	}
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.state = Done
	t.svc.forget(t)
}

// Service owns every live timer and pauses or resumes them together.
type Service struct {
	clock  Clock
	log    *slog.Logger
	paused bool
	active []*Timer
}

// NewService creates a service over clock. A nil logger falls back to
// slog.Default.
func NewService(clock Clock, logger *slog.Logger) *Service {
	if clock == nil {
		panic("timer: nil clock")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{clock: clock, log: logger}
}

// Schedule runs fn once after delay of unpaused time.
func (s *Service) Schedule(fn func(), delay time.Duration) *Timer {
	return s.add(fn, delay, false)
}

// Every runs fn every interval of unpaused time until cancelled.
func (s *Service) Every(fn func(), interval time.Duration) *Timer {
	if interval <= 0 {
		panic("timer: non-positive interval")
	}
	return s.add(fn, interval, true)
}

// Pause freezes every running timer, keeping the time it has left.
// Pausing an already paused service does nothing.
func (s *Service) Pause() {
	if s.paused {
		return
	}
	s.paused = true
	now := s.clock.Now()
	for _, t := range s.active {
		if t.state != Running || t.firing {
			continue
		}
		t.remaining = clampZero(t.remaining - (now - t.startedAt))
		if t.pending != nil {
			t.pending.Stop()
			t.pending = nil
		}
		t.state = Paused
	}
	s.log.Debug("timers paused", "count", len(s.active))
}

// Resume re-arms paused timers with exactly the time they had left.
func (s *Service) Resume() {
	if !s.paused {
		return
	}
	s.paused = false
	for _, t := range append([]*Timer(nil), s.active...) {
		if t.state == Paused {
			s.start(t)
		}
	}
	s.log.Debug("timers resumed", "count", len(s.active))
}

// Paused reports whether the service is paused.
func (s *Service) Paused() bool { return s.paused }

// Len returns the number of live timers.
func (s *Service) Len() int { return len(s.active) }

func (s *Service) add(fn func(), d time.Duration, repeat bool) *Timer {
	if fn == nil {
		panic("timer: nil callback")
	}
	d = clampZero(d)
	t := &Timer{svc: s, fn: fn, total: d, remaining: d, repeat: repeat}
	s.active = append(s.active, t)
	if s.paused {
		t.state = Paused
	} else {
		s.start(t)
	}
	return t
}

func (s *Service) start(t *Timer) {
	t.state = Running
	t.startedAt = s.clock.Now()
	t.pending = s.clock.AfterFunc(t.remaining, func() { s.fire(t) })
}

func (s *Service) fire(t *Timer) {
	if t.state != Running {
		return
	}
	t.pending = nil
	t.remaining = 0
	t.firing = true
	t.fn()
	t.firing = false

	if t.state == Done {
		return
	}
	if !t.repeat {
		t.state = Done
		s.forget(t)
		return
	}
	t.remaining = t.total
	if s.paused {
		t.state = Paused
		return
	}
	s.start(t)
}

func (s *Service) forget(t *Timer) {
	for i, a := range s.active {
		if a == t {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return
		}
	}
}

func clampZero(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
