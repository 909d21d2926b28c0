package selection

import "github.com/dshills/caret/internal/dom/boundary"

// Focus names the end of a selection the user is moving.
type Focus uint8

const (
	// FocusEnd is the second boundary.
	FocusEnd Focus = iota
	// FocusStart is the first boundary.
	FocusStart
)

// String returns "start" or "end".
func (f Focus) String() string {
	if f == FocusStart {
		return "start"
	}
	return "end"
}

// Flip returns the other end.
func (f Focus) Flip() Focus {
	if f == FocusStart {
		return FocusEnd
	}
	return FocusStart
}

// index returns the position of the focused boundary in a pair.
func (f Focus) index() int {
	if f == FocusStart {
		return 0
	}
	return 1
}

// Change is the outcome of handling an event.
type Change struct {
	Boundaries [2]boundary.Boundary
	Focus      Focus
}

// Focused returns the focused boundary.
func (c Change) Focused() boundary.Boundary {
	return c.Boundaries[c.Focus.index()]
}

// collapse returns a change with both boundaries at b.
func collapse(b boundary.Boundary, focus Focus) Change {
	return Change{Boundaries: [2]boundary.Boundary{b, b}, Focus: focus}
}

// IsReversed returns true if end precedes start in document order.
// Boundaries in nested containers compare by the child slot they occupy.
func IsReversed(start, end boundary.Boundary) bool {
	return boundary.Compare(end, start) < 0
}

// MergeRanges combines the range a with b. The focused end of a is kept
// and the opposite end is taken from b. A reversed result is swapped and
// its focus flipped.
func MergeRanges(a, b [2]boundary.Boundary, focus Focus) Change {
	var start, end boundary.Boundary
	if focus == FocusStart {
		start, end = a[0], b[1]
	} else {
		start, end = b[0], a[1]
	}
	if IsReversed(start, end) {
		return Change{Boundaries: [2]boundary.Boundary{end, start}, Focus: focus.Flip()}
	}
	return Change{Boundaries: [2]boundary.Boundary{start, end}, Focus: focus}
}
