// Package mouse recognizes pointer gestures.
//
// Handler consumes raw button presses, releases and motion in document
// coordinates and produces the normalized events the selection engine
// understands:
//
//	press (single)            -> event.MouseDown
//	press (double)            -> event.SelectWord
//	press (triple)            -> event.SelectBlock
//	motion with button held   -> event.MouseMove (Buttons set)
//	release after a drag      -> event.SelectEnd, event.MouseUp
//	release                   -> event.MouseUp
//
// Clicks count as part of a sequence when they follow each other within
// Config.DoubleClickTime and Config.DoubleClickDistance (Manhattan).
package mouse
