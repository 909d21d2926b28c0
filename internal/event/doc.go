// Package event defines the normalized input event consumed by the
// selection engine.
//
// Terminal and GUI front ends translate their native key, mouse, resize and
// paste notifications into an Event. Pointer gestures that need state (click
// counting, drag tracking) are recognized by the input/mouse package, which
// emits the gesture kinds SelectWord, SelectBlock and SelectEnd.
//
// An Event is read-only input with one mutation point: PreventDefault, which
// the engine calls when it consumed a key.
package event
