package key

import (
	"strings"
	"time"
)

// Event represents a single keyboard event.
type Event struct {
	// Key is the key that was pressed.
	// For character keys, this is KeyRune.
	Key Key

	// Rune is the character for KeyRune events.
	// Zero for special keys.
	Rune rune

	// Modifiers holds the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key event stamped with the current time.
func NewEvent(k Key, r rune, mods Modifier) Event {
	return Event{Key: k, Rune: r, Modifiers: mods, Timestamp: time.Now()}
}

// NewRuneEvent creates an event for a character key.
func NewRuneEvent(r rune, mods Modifier) Event {
	return NewEvent(KeyRune, r, mods)
}

// NewSpecialEvent creates an event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return NewEvent(k, 0, mods)
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune
}

// HasModifier returns true if the event carries mod.
func (e Event) HasModifier(mod Modifier) bool {
	return e.Modifiers.Has(mod)
}

// String returns the chord form of the event, e.g. "meta+shift+left".
func (e Event) String() string {
	return Chord{Key: e.Key, Rune: e.Rune, Modifiers: e.Modifiers}.String()
}

// name returns the lower-case key name used in chords.
func name(k Key, r rune) string {
	if k == KeyRune {
		return strings.ToLower(string(r))
	}
	return strings.ToLower(k.String())
}
