package event

import (
	"fmt"

	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/input/key"
)

// Event is a normalized editor input event.
type Event struct {
	Kind Kind

	// Key is set for KeyDown and KeyPress.
	Key key.Event

	// X and Y are document coordinates for pointer kinds.
	X, Y float64

	// Buttons is the set of pointer buttons held, bit 0 being the primary.
	Buttons uint8

	// Editable is the editing host the event targets.
	Editable *dom.Node

	// PreventSelection suppresses selection updates for this event.
	PreventSelection bool

	prevented bool
}

// NewKey creates a KeyDown event.
func NewKey(ev key.Event, editable *dom.Node) *Event {
	return &Event{Kind: KeyDown, Key: ev, Editable: editable}
}

// NewPointer creates a pointer event at (x, y).
func NewPointer(kind Kind, x, y float64, mods key.Modifier, editable *dom.Node) *Event {
	return &Event{Kind: kind, X: x, Y: y, Key: key.Event{Modifiers: mods}, Editable: editable}
}

// PreventDefault marks the event as consumed.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented returns true if PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// HasModifier returns true if the modifier was held.
func (e *Event) HasModifier(mod key.Modifier) bool {
	return e.Key.Modifiers.Has(mod)
}

// Shift returns true if shift was held.
func (e *Event) Shift() bool {
	return e.HasModifier(key.ModShift)
}

// Pressed returns true if the primary button is held.
func (e *Event) Pressed() bool {
	return e.Buttons&1 != 0
}

// String returns a description for logs.
func (e *Event) String() string {
	switch {
	case e.Kind == KeyDown || e.Kind == KeyPress:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Key)
	case e.Kind.IsPointer():
		return fmt.Sprintf("%s(%.1f,%.1f)", e.Kind, e.X, e.Y)
	}
	return e.Kind.String()
}
