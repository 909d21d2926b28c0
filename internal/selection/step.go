package selection

import (
	"strconv"
	"strings"

	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/dom/boundary"
	"github.com/dshills/caret/internal/traversing"
)

// step moves the selection one grapheme or word to the left or right.
//
// Without shift, or on a collapsed range, focus snaps to the end in the
// direction of travel. A non-collapsed range without shift collapses onto
// that end instead of moving.
func (e *Engine) step(in Intent, bounds [2]boundary.Boundary, focus Focus) Change {
	start, end := bounds[0], bounds[1]
	collapsed := start.Equal(end)
	if collapsed || !in.Extend {
		if in.Direction == DirLeft {
			focus = FocusStart
		} else {
			focus = FocusEnd
		}
	}

	b := start
	if focus == FocusEnd {
		b = e.nav.EnvelopeInvisibleCharacters(end)
	}

	if collapsed || in.Extend {
		stride := traversing.StrideVisual
		if in.Word {
			stride = traversing.StrideWord
		}
		var next boundary.Boundary
		if in.Direction == DirLeft {
			next = e.nav.Prev(b, stride)
		} else {
			next = e.nav.Next(b, stride)
		}
		// Never settle on the editing host itself.
		if !next.IsZero() && e.tree.IsEditingHost(next.Container) {
			switch {
			case b.IsAtStart():
				next = e.tree.ExpandForward(b)
			case b.IsAtEnd():
				next = e.tree.ExpandBackward(b)
			}
		}
		if !next.IsZero() {
			b = next
		}
	}

	if in.Extend {
		if focus == FocusStart {
			return Change{Boundaries: [2]boundary.Boundary{b, end}, Focus: focus}
		}
		return Change{Boundaries: [2]boundary.Boundary{start, b}, Focus: focus}
	}
	return collapse(b, focus)
}

// jump moves to the first or last position of the editable.
func (e *Engine) jump(in Intent, editable *dom.Node, bounds [2]boundary.Boundary, focus Focus) Change {
	if editable == nil {
		return Change{Boundaries: bounds, Focus: focus}
	}
	var b boundary.Boundary
	if in.Direction == DirUp {
		b = e.tree.ExpandForward(boundary.Create(editable, 0))
	} else {
		b = e.tree.ExpandBackward(boundary.FromEndOfNode(editable))
	}
	next := [2]boundary.Boundary{b, b}
	if !in.Extend {
		return Change{Boundaries: next, Focus: focus}
	}
	return MergeRanges(next, bounds, focus)
}

// line is the horizontal extent of a visual line and the height at which
// to hit-test it.
type line struct {
	top, left, right float64
}

// lineBox measures the visual line holding b inside editable. Without a
// caret box the container's top is used. Half the font size moves the probe
// into the middle of the line.
func (e *Engine) lineBox(b boundary.Boundary, editable *dom.Node) line {
	node := b.Container
	if node.IsText() {
		node = node.Parent()
	}
	var top float64
	if box, ok := e.boxOf(b); ok {
		top = box.Top
	} else {
		top = e.geo.AbsoluteTop(node)
	}
	top += e.fontSize(node) / 2
	left := e.geo.OffsetLeft(editable)
	return line{top: top, left: left, right: left + e.geo.ElementWidth(editable)}
}

func (e *Engine) fontSize(n *dom.Node) float64 {
	v := strings.TrimSuffix(strings.TrimSpace(e.geo.ComputedStyle(n, "font-size")), "px")
	size, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return size
}

// home moves to the leftmost position of the line holding the first
// boundary. With shift the unfocused end stays.
func (e *Engine) home(in Intent, editable *dom.Node, bounds [2]boundary.Boundary, focus Focus) Change {
	if editable == nil {
		return Change{Boundaries: bounds, Focus: focus}
	}
	box := e.lineBox(bounds[0], editable)
	pos, ok := e.geo.BoundaryAt(box.left, box.top)
	if !ok {
		e.logger.Debug("no boundary at line start", "x", box.left, "y", box.top)
		return Change{Boundaries: bounds, Focus: focus}
	}
	if in.Extend {
		anchor := bounds[focus.Flip().index()]
		return Change{Boundaries: [2]boundary.Boundary{pos, anchor}, Focus: FocusStart}
	}
	return collapse(pos, FocusStart)
}

// end moves to the rightmost position of the line holding the second
// boundary. The probe sits one unit inside the right edge.
func (e *Engine) end(in Intent, editable *dom.Node, bounds [2]boundary.Boundary, focus Focus) Change {
	if editable == nil {
		return Change{Boundaries: bounds, Focus: focus}
	}
	box := e.lineBox(bounds[1], editable)
	pos, ok := e.geo.BoundaryAt(box.right-1, box.top)
	if !ok {
		e.logger.Debug("no boundary at line end", "x", box.right-1, "y", box.top)
		return Change{Boundaries: bounds, Focus: focus}
	}
	if in.Extend {
		anchor := bounds[focus.Flip().index()]
		return Change{Boundaries: [2]boundary.Boundary{anchor, pos}, Focus: FocusEnd}
	}
	return collapse(pos, FocusEnd)
}
