package caret

import (
	"sync"
	"time"

	"github.com/dshills/caret/internal/animation"
)

// fadeFrame is the frame interval of blink fades.
const fadeFrame = 20 * time.Millisecond

// Blinker runs the caret's blink cycle: after a short delay the caret
// holds, fades out, stays hidden, fades back in and repeats. Starting a new
// cycle always stops the previous one.
type Blinker struct {
	mu     sync.Mutex
	marker *Marker
	sched  animation.Scheduler
	config Config
	cycle  *Cycle
}

// NewBlinker creates a blink controller for marker.
func NewBlinker(marker *Marker, sched animation.Scheduler, config Config) *Blinker {
	if sched == nil {
		sched = animation.RealScheduler{}
	}
	return &Blinker{marker: marker, sched: sched, config: config}
}

// Start begins a new blink cycle and returns its handle. Any running cycle
// is stopped first. With blinking disabled the returned cycle is already
// stopped and the caret stays fully visible.
func (b *Blinker) Start() *Cycle {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cycle != nil {
		b.cycle.Stop()
	}
	c := &Cycle{marker: b.marker, sched: b.sched, config: b.config}
	b.cycle = c
	if !b.config.BlinkEnabled {
		c.Stop()
		return c
	}
	c.after(b.config.StartDelay, func() {
		c.after(c.config.VisibleHold, func() { c.fade(1, 0) })
	})
	return c
}

// Stop ends the running cycle, if any, and leaves the caret fully opaque.
func (b *Blinker) Stop() {
	b.mu.Lock()
	c := b.cycle
	b.cycle = nil
	b.mu.Unlock()
	if c != nil {
		c.Stop()
		return
	}
	b.marker.SetOpacity(1)
}

// Running reports whether a cycle is active.
func (b *Blinker) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cycle != nil && !b.cycle.Stopped()
}

// Cycle is the handle of one blink cycle.
type Cycle struct {
	mu      sync.Mutex
	marker  *Marker
	sched   animation.Scheduler
	config  Config
	timer   animation.Timer
	fading  *animation.Handle
	stopped bool
}

// Stop cancels every pending timer and fade and restores full opacity. It
// is safe to call more than once.
func (c *Cycle) Stop() {
	c.mu.Lock()
	c.stopped = true
	timer := c.timer
	fading := c.fading
	c.timer = nil
	c.fading = nil
	c.mu.Unlock()
	if timer != nil {
		timer.Stop()
	}
	if fading != nil {
		fading.Stop()
	}
	c.marker.SetOpacity(1)
}

// Stopped reports whether the cycle has been stopped.
func (c *Cycle) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

// after schedules f. A cycle has at most one pending timer since each
// phase schedules the next.
func (c *Cycle) after(d time.Duration, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.timer = c.sched.AfterFunc(d, func() {
		if !c.Stopped() {
			f()
		}
	})
}

func (c *Cycle) fade(from, to float64) {
	h := animation.Animate(c.sched, from, to, animation.EaseLinear, c.config.FadeDuration, fadeFrame,
		func(value, percent float64, _ *animation.State) bool {
			if c.Stopped() {
				return true
			}
			c.marker.SetOpacity(value)
			if percent < 1 {
				return false
			}
			if to == 0 {
				c.after(c.config.HiddenHold, func() { c.fade(0, 1) })
			} else {
				c.after(c.config.VisibleHold, func() { c.fade(1, 0) })
			}
			return false
		})
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		h.Stop()
		return
	}
	c.fading = h
}
