package loop

import (
	"sync"
	"time"
)

// Timer is a callback waiting to be scheduled by the host event loop.
type Timer struct {
	Delay time.Duration
	Fire  func()
}

// Deferred collects timers instead of starting them. Hosts that own their
// own event loop (a Bubble Tea program) drain it after each update and turn
// every Timer into a tick message, so callbacks run inside that loop.
type Deferred struct {
	mu      sync.Mutex
	pending []Timer
}

// AfterFunc records fn for the host to schedule.
func (d *Deferred) AfterFunc(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = append(d.pending, Timer{Delay: delay, Fire: fn})
}

// Drain returns and forgets every recorded timer.
func (d *Deferred) Drain() []Timer {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.pending
	d.pending = nil
	return out
}
