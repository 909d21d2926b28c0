// Package key provides normalized keyboard events and chord parsing.
//
// A Key identifies a physical key; character keys use KeyRune and carry the
// character in Event.Rune. Modifier is a bit set of Shift, Ctrl, Alt and
// Meta.
//
// # Chords
//
// A Chord is a key plus a required modifier set, written as
// "meta+shift+left", "ctrl+z" or "pagedown". The "*" modifier matches any
// modifier set, so "*+left" matches Left with or without modifiers.
package key
