package mouse

import (
	"time"

	"github.com/dshills/caret/internal/event"
)

// gestures maps a click count to the selection gesture it starts.
var gestures = [...]event.Kind{1: event.MouseDown, 2: event.SelectWord, 3: event.SelectBlock}

// clickTracker groups presses that land close together in space and time
// into one click sequence of up to three clicks.
type clickTracker struct {
	window time.Duration
	radius float64

	pos   Position
	at    time.Time
	count int
}

func newClickTracker(window time.Duration, radius float64) *clickTracker {
	return &clickTracker{window: window, radius: radius}
}

// press records a press and returns the gesture it starts. A fourth click
// in a sequence starts over with a plain press. A zero timestamp uses the
// current time.
func (t *clickTracker) press(pos Position, at time.Time) event.Kind {
	if at.IsZero() {
		at = time.Now()
	}
	if t.continues(pos, at) && t.count < 3 {
		t.count++
	} else {
		t.count = 1
	}
	t.pos, t.at = pos, at
	return gestures[t.count]
}

// continues reports whether a press at pos and at extends the current
// sequence. Clock skew breaks a sequence.
func (t *clickTracker) continues(pos Position, at time.Time) bool {
	if t.count == 0 {
		return false
	}
	d := at.Sub(t.at)
	return d >= 0 && d <= t.window && pos.Distance(t.pos) <= t.radius
}

func (t *clickTracker) reset() {
	*t = clickTracker{window: t.window, radius: t.radius}
}
