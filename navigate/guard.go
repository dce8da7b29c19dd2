package navigate

import (
	"sync"
	"time"
)

// Debouncer runs the last triggered callback after a quiet period. A new
// Trigger cancels the pending one.
type Debouncer struct {
	clock Clock
	delay time.Duration

	mu    sync.Mutex
	timer Timer
	gen   uint64
}

func NewDebouncer(clock Clock, delay time.Duration) *Debouncer {
	if clock == nil {
		clock = RealClock
	}
	return &Debouncer{clock: clock, delay: delay}
}

func (d *Debouncer) Trigger(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := gen == d.gen
		if current {
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			f()
		}
	})
}

// Cancel drops the pending callback. Returns true if one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

// Guard is the "navigation in progress" flag. It is raised by Begin and
// lowered automatically after the hold period, so a burst of taps produces a
// single navigation.
type Guard struct {
	debounce *Debouncer

	mu         sync.Mutex
	navigating bool
}

func NewGuard(clock Clock, hold time.Duration) *Guard {
	return &Guard{debounce: NewDebouncer(clock, hold)}
}

// Begin raises the flag. It returns false when a navigation is already in
// progress.
func (g *Guard) Begin() bool {
	g.mu.Lock()
	if g.navigating {
		g.mu.Unlock()
		return false
	}
	g.navigating = true
	g.mu.Unlock()

	g.debounce.Trigger(g.lower)
	return true
}

func (g *Guard) lower() {
	g.mu.Lock()
	g.navigating = false
	g.mu.Unlock()
}

func (g *Guard) Navigating() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.navigating
}

// Cancel lowers the flag now and drops the pending reset.
func (g *Guard) Cancel() {
	g.debounce.Cancel()
	g.lower()
}
