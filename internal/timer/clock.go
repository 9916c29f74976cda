package timer

import (
	"container/heap"
	"time"
)

// Clock is the time source the Service schedules against.
type Clock interface {
	// Now returns the time elapsed since the clock started.
	Now() time.Duration
	// AfterFunc runs f once, d after Now, unless stopped first.
	AfterFunc(d time.Duration, f func()) Stopper
}

// Stopper cancels a pending AfterFunc. Stop reports whether the call
// prevented f from running.
type Stopper interface {
	Stop() bool
}

// ManualClock is a simulated clock. Time only moves on Advance, and due
// callbacks run on the caller's goroutine in deadline order. Callbacks with
// the same deadline run in the order they were scheduled.
type ManualClock struct {
	now     time.Duration
	seq     uint64
	pending callHeap
}

// NewManualClock returns a clock standing at zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Now() time.Duration {
	return c.now
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Stopper {
	if d < 0 {
		d = 0
	}
	c.seq++
	call := &scheduledCall{clock: c, at: c.now + d, seq: c.seq, f: f, index: -1}
	heap.Push(&c.pending, call)
	return call
}

// Advance moves time forward by d, firing every callback that falls due,
// including ones scheduled by callbacks during the advance.
func (c *ManualClock) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := c.now + d
	for len(c.pending) > 0 && c.pending[0].at <= target {
		call := heap.Pop(&c.pending).(*scheduledCall)
		c.now = call.at
		call.f()
	}
	c.now = target
}

// Pending returns how many callbacks are waiting.
func (c *ManualClock) Pending() int {
	return len(c.pending)
}

type scheduledCall struct {
	clock *ManualClock
	at    time.Duration
	seq   uint64
	f     func()
	index int
}

func (s *scheduledCall) Stop() bool {
	if s.index < 0 {
		return false
	}
	heap.Remove(&s.clock.pending, s.index)
	return true
}

type callHeap []*scheduledCall

func (h callHeap) Len() int { return len(h) }

func (h callHeap) Less(i, j int) bool {
	if h[i].at == h[j].at {
		return h[i].seq < h[j].seq
	}
	return h[i].at < h[j].at
}

func (h callHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *callHeap) Push(x any) {
	call := x.(*scheduledCall)
	call.index = len(*h)
	*h = append(*h, call)
}

func (h *callHeap) Pop() any {
	old := *h
	n := len(old)
	call := old[n-1]
	old[n-1] = nil
	call.index = -1
	*h = old[:n-1]
	return call
}
