package life

import "time"

// Pacer decides, once per host frame, whether the frame should advance
// the simulation or only redraw it. Hosts present faster than the tick
// interval; the pacer keeps generations at the configured rate.
//
// A Pacer is not safe for concurrent use.
type Pacer struct {
	interval time.Duration
	next     time.Time
	paused   bool
}

// NewPacer returns a pacer that fires every interval. The first tick is
// due one interval after the first call to Due.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Due reports whether a tick is due at now. When the host falls more than
// one interval behind, missed ticks are dropped rather than replayed.
func (p *Pacer) Due(now time.Time) bool {
	if p.paused {
		return false
	}
	if p.next.IsZero() {
		p.next = now.Add(p.interval)
		return false
	}
	if now.Before(p.next) {
		return false
	}
	p.next = p.next.Add(p.interval)
	if !p.next.After(now) {
		p.next = now.Add(p.interval)
	}
	return true
}

// Paused reports whether ticking is suspended.
func (p *Pacer) Paused() bool { return p.paused }

// Toggle pauses a running pacer or resumes a paused one. Resuming restarts
// the interval so no tick fires immediately.
func (p *Pacer) Toggle() {
	p.paused = !p.paused
	p.next = time.Time{}
}
