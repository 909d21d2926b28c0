package selection

import (
	"github.com/dshills/caret/internal/dom/boundary"
	"github.com/dshills/caret/internal/event"
	"github.com/dshills/caret/internal/traversing"
)

// State is the part of a selection the reducer reads and writes.
type State struct {
	// Boundaries may be in reverse document order.
	Boundaries [2]boundary.Boundary
	Focus      Focus

	// Previous is the range a pointer gesture started from.
	Previous [2]boundary.Boundary

	// Dragging is set while a pointer drag is in progress.
	Dragging bool
}

// Change returns the boundaries and focus of s.
func (s State) Change() Change {
	return Change{Boundaries: s.Boundaries, Focus: s.Focus}
}

// IsZero returns true if s holds no boundaries yet.
func (s State) IsZero() bool {
	return s.Boundaries[0].IsZero() || s.Boundaries[1].IsZero()
}

func (s State) with(c Change) State {
	s.Boundaries = c.Boundaries
	s.Focus = c.Focus
	return s
}

// Reduce applies ev to s. handled is false if no handler exists for the
// event. The only side effect is ev.PreventDefault for bound keys.
func (e *Engine) Reduce(s State, ev *event.Event) (next State, handled bool) {
	switch ev.Kind {
	case event.KeyDown:
		return e.keydown(s, ev), true
	case event.KeyPress, event.Resize:
		return s, true
	case event.Paste, event.DragOver, event.Drop:
		s.Focus = FocusEnd
		return s, true
	case event.MouseDown:
		return e.mousedown(s, ev)
	case event.MouseMove:
		return e.mousemove(s, ev)
	case event.MouseUp:
		if !s.Dragging {
			return s, true
		}
		return e.mouseup(s, ev)
	case event.SelectEnd:
		return e.mouseup(s, ev)
	case event.SelectWord:
		return e.expandAt(s, ev, traversing.UnitWord)
	case event.SelectBlock:
		return e.expandAt(s, ev, traversing.UnitBlock)
	}
	return s, false
}

func (e *Engine) keydown(s State, ev *event.Event) State {
	in, ok := e.keymap.Normalize(ev)
	if !ok {
		return s
	}
	ev.PreventDefault()
	if s.IsZero() {
		return s
	}
	return s.with(e.apply(in, ev, s.Boundaries, s.Focus))
}

// apply dispatches an intent to its motion.
func (e *Engine) apply(in Intent, ev *event.Event, bounds [2]boundary.Boundary, focus Focus) Change {
	switch in.Motion {
	case MotionStep:
		return e.step(in, bounds, focus)
	case MotionClimb:
		return e.climb(in, bounds, focus)
	case MotionJump:
		return e.jump(in, ev.Editable, bounds, focus)
	case MotionHome:
		return e.home(in, ev.Editable, bounds, focus)
	case MotionEnd:
		return e.end(in, ev.Editable, bounds, focus)
	case MotionNone:
	}
	return Change{Boundaries: bounds, Focus: focus}
}

// pointer resolves the event position to a boundary.
func (e *Engine) pointer(ev *event.Event) (boundary.Boundary, bool) {
	b, ok := e.geo.BoundaryAt(ev.X, ev.Y)
	if !ok {
		e.logger.Debug("no boundary at pointer", "x", ev.X, "y", ev.Y)
	}
	return b, ok
}

// mousedown places the caret at the pointer. With shift the range extends
// from the end opposite the current focus, reordering as needed.
func (e *Engine) mousedown(s State, ev *event.Event) (State, bool) {
	p, ok := e.pointer(ev)
	if !ok {
		return s, false
	}
	if ev.Shift() && !s.IsZero() {
		end := s.Boundaries[s.Focus.Flip().index()]
		if IsReversed(p, end) {
			s = s.with(Change{Boundaries: [2]boundary.Boundary{end, p}, Focus: FocusEnd})
		} else {
			s = s.with(Change{Boundaries: [2]boundary.Boundary{p, end}, Focus: FocusStart})
		}
	} else {
		s = s.with(collapse(p, s.Focus))
	}
	s.Previous = s.Boundaries
	s.Dragging = false
	return s, true
}

// mousemove follows a drag with the pointer.
func (e *Engine) mousemove(s State, ev *event.Event) (State, bool) {
	if !ev.Pressed() {
		return s, false
	}
	p, ok := e.pointer(ev)
	if !ok {
		return s, false
	}
	s = s.with(collapse(p, s.Focus))
	s.Dragging = true
	return s, true
}

// mouseup merges the drag end with the range the gesture started from.
func (e *Engine) mouseup(s State, ev *event.Event) (State, bool) {
	s.Dragging = false
	bounds := s.Boundaries
	if p, ok := e.pointer(ev); ok {
		bounds = [2]boundary.Boundary{p, p}
	}
	if s.Previous[0].IsZero() {
		return s.with(Change{Boundaries: bounds, Focus: s.Focus}), true
	}
	return s.with(MergeRanges(bounds, s.Previous, s.Focus)), true
}

// expandAt selects the word or block at the pointer.
func (e *Engine) expandAt(s State, ev *event.Event, unit traversing.Unit) (State, bool) {
	p, ok := e.pointer(ev)
	if !ok {
		return s, false
	}
	start, end := e.nav.Expand(p, p, unit)
	s = s.with(Change{Boundaries: [2]boundary.Boundary{start, end}, Focus: FocusEnd})
	s.Previous = s.Boundaries
	s.Dragging = false
	return s, true
}
