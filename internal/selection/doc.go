// Package selection turns input events into an updated text selection and
// presents it as a caret or highlight boxes.
//
// A Selection holds two boundaries that may be in reverse document order
// plus a Focus naming the end the user is moving. The Engine reduces each
// event to a new (boundaries, focus) pair:
//
//	left, right        step one grapheme (word with ctrl or alt)
//	up, down           climb one visual line
//	pageUp, pageDown   jump to the first or last position of the editable
//	home, end          move to the edge of the visual line
//
// Shift extends instead of collapsing. Pointer gestures select points,
// words and blocks and merge drags with the pre-drag range.
//
// Vertical movement has no meaning in the document tree, so it is derived
// from rendered geometry: the engine first looks for a line-breaking
// container between the caret and the next line and lands beside it, then
// falls back to probing the geometry at growing vertical strides. When
// neither moves the caret to a different line the original boundary is
// kept. None of this is an error: lookups that fail leave the selection
// unchanged.
//
// The engine reads the document through three collaborators, Tree,
// Navigator and Geometry, so it can run against any layout that answers
// box and hit-test queries.
package selection
