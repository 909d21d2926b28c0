package mouse

import (
	"sync"
	"time"

	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/event"
	"github.com/dshills/caret/internal/input/key"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button.
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates mouse movement, with or without a button held.
	ActionMove
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	default:
		return "none"
	}
}

// Position is a point in document coordinates.
type Position struct {
	X float64
	Y float64
}

// Distance returns the Manhattan distance (|dx| + |dy|) between two positions.
func (p Position) Distance(other Position) float64 {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Event represents a raw mouse input event.
type Event struct {
	Position  Position
	Button    Button
	Modifiers key.Modifier
	Action    Action
	Timestamp time.Time
}

// Config configures gesture recognition.
type Config struct {
	// DoubleClickTime is the maximum time between clicks of a sequence.
	DoubleClickTime time.Duration

	// DoubleClickDistance is the maximum distance between clicks of a sequence.
	DoubleClickDistance float64
}

// DefaultConfig returns the default gesture thresholds.
func DefaultConfig() Config {
	return Config{
		DoubleClickTime:     400 * time.Millisecond,
		DoubleClickDistance: 4,
	}
}

// Handler turns raw mouse events into selection events.
type Handler struct {
	mu     sync.Mutex
	config Config
	click  *clickTracker
	drag   *dragTracker
}

// NewHandler creates a new mouse handler with the given configuration.
func NewHandler(config Config) *Handler {
	return &Handler{
		config: config,
		click:  newClickTracker(config.DoubleClickTime, config.DoubleClickDistance),
		drag:   newDragTracker(),
	}
}

// Handle processes a raw event and returns the events to feed the engine,
// in order. Only the left button takes part in selection.
func (h *Handler) Handle(ev Event, editable *dom.Node) []*event.Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch ev.Action {
	case ActionPress:
		if ev.Button != ButtonLeft {
			return nil
		}
		kind := h.click.press(ev.Position, ev.Timestamp)
		out := h.emit(kind, ev, editable)
		if kind == event.MouseDown {
			// Only a plain press can grow into a drag.
			h.drag.start(ev.Position)
			out.Buttons = 1
		} else {
			h.drag.end()
		}
		return []*event.Event{out}

	case ActionMove:
		if !h.drag.isActive() || ev.Button != ButtonLeft {
			return nil
		}
		h.drag.update(ev.Position)
		out := h.emit(event.MouseMove, ev, editable)
		out.Buttons = 1
		return []*event.Event{out}

	case ActionRelease:
		if ev.Button != ButtonLeft && ev.Button != ButtonNone {
			return nil
		}
		dragged := h.drag.isSelecting()
		h.drag.end()
		up := h.emit(event.MouseUp, ev, editable)
		if dragged {
			return []*event.Event{h.emit(event.SelectEnd, ev, editable), up}
		}
		return []*event.Event{up}
	}
	return nil
}

// Dragging returns true while a drag selection is in progress.
func (h *Handler) Dragging() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.drag.isSelecting()
}

// Reset clears click and drag tracking.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.click.reset()
	h.drag.end()
}

func (h *Handler) emit(kind event.Kind, ev Event, editable *dom.Node) *event.Event {
	out := event.NewPointer(kind, ev.Position.X, ev.Position.Y, ev.Modifiers, editable)
	out.Key.Timestamp = ev.Timestamp
	return out
}
