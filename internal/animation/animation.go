package animation

import (
	"math"
	"sync"
	"time"
)

// DefaultFrame is the interval between animation frames.
const DefaultFrame = 16 * time.Millisecond

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(percent float64) float64

// EaseLinear is the identity easing.
func EaseLinear(p float64) float64 { return p }

// EaseInOut accelerates then decelerates.
func EaseInOut(p float64) float64 {
	return (1 - math.Cos(p*math.Pi)) / 2
}

// State describes a running animation.
type State struct {
	Start   time.Time
	Elapsed time.Duration
	Frame   int
}

// Tick receives each frame's value. Returning true ends the animation.
type Tick func(value, percent float64, state *State) (stop bool)

// Handle controls a running animation.
type Handle struct {
	mu      sync.Mutex
	timer   Timer
	stopped bool
}

// Stop cancels the animation. It is safe to call more than once.
func (h *Handle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

// Done reports whether the animation finished or was stopped.
func (h *Handle) Done() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

// Animate moves a value from start to end over duration, calling tick once
// per frame. The first frame runs immediately. The final frame always
// reports a percent of exactly 1 and the end value.
func Animate(s Scheduler, start, end float64, easing Easing, duration, frame time.Duration, tick Tick) *Handle {
	if easing == nil {
		easing = EaseLinear
	}
	if frame <= 0 {
		frame = DefaultFrame
	}
	h := &Handle{}
	state := &State{Start: s.Now()}
	var step func()
	step = func() {
		if h.Done() {
			return
		}
		state.Elapsed = s.Now().Sub(state.Start)
		percent := 1.0
		if duration > 0 {
			percent = math.Min(float64(state.Elapsed)/float64(duration), 1)
		}
		value := end
		if percent < 1 {
			value = start + (end-start)*easing(percent)
		}
		stop := tick(value, percent, state)
		state.Frame++
		if stop || percent >= 1 {
			h.finish()
			return
		}
		h.schedule(s.AfterFunc(frame, step))
	}
	step()
	return h
}

func (h *Handle) finish() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	h.timer = nil
}

func (h *Handle) schedule(t Timer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		t.Stop()
		return
	}
	h.timer = t
}
