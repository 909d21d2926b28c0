package selection

import (
	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/dom/boundary"
	"github.com/dshills/caret/internal/geometry"
)

// maxClimbSteps bounds the geometric probing of climbStep.
const maxClimbSteps = 64

// climb moves the focused end one visual line up or down. With shift the
// result is merged into the current range, otherwise it collapses.
func (e *Engine) climb(in Intent, bounds [2]boundary.Boundary, focus Focus) Change {
	b := bounds[focus.index()]
	var next boundary.Boundary
	if in.Direction == DirUp {
		next = e.moveUp(b)
	} else {
		next = e.moveDown(b)
	}
	if in.Extend {
		return MergeRanges([2]boundary.Boundary{next, next}, bounds, focus)
	}
	return collapse(next, focus)
}

func (e *Engine) boxOf(b boundary.Boundary) (geometry.Box, bool) {
	return e.geo.BoxOf(boundary.Collapsed(b))
}

func (e *Engine) isVisibleBreakingContainer(n *dom.Node) bool {
	return !e.tree.IsVoid(n) && e.tree.IsRendered(n) && e.tree.IsLinebreaking(n)
}

func (e *Engine) isVisibleContainer(n *dom.Node) bool {
	return !e.tree.IsVoid(n) && e.tree.IsRendered(n)
}

// findBreakpoint searches from b, backward when up is set, for the
// nearest visible line-breaking container. inside reports whether the
// container encloses the node next to b.
func (e *Engine) findBreakpoint(b boundary.Boundary, up bool) (breaker *dom.Node, inside bool) {
	var node *dom.Node
	if up {
		node = e.tree.PrevNode(b)
	} else {
		node = e.tree.NextNode(b)
	}
	if node == nil {
		return nil, false
	}
	switch {
	case e.isVisibleBreakingContainer(node):
		breaker = node
	case up:
		breaker = e.tree.BackwardUntil(node, e.isVisibleBreakingContainer)
	default:
		breaker = e.tree.ForwardUntil(node, e.isVisibleBreakingContainer)
	}
	if breaker == nil {
		return nil, false
	}
	inside = e.tree.UpWhile(node, func(n *dom.Node) bool { return n != breaker }) != nil
	return breaker, inside
}

// lastGrouped returns the last grouped element inside a group container.
func (e *Engine) lastGrouped(group *dom.Node) *dom.Node {
	last := group
	for last.LastChild() != nil {
		last = last.LastChild()
	}
	n := e.tree.BackwardUntil(last, e.tree.IsGroupedElement)
	if n == nil || !dom.Contains(group, n) {
		return nil
	}
	return n
}

// firstGrouped returns the first grouped element inside a group container.
func (e *Engine) firstGrouped(group *dom.Node) *dom.Node {
	n := e.tree.ForwardUntil(group, e.tree.IsGroupedElement)
	if n == nil || !dom.Contains(group, n) {
		return nil
	}
	return n
}

// moveUp returns the boundary one visual line above b, or b itself when b
// is on the first line.
func (e *Engine) moveUp(b boundary.Boundary) boundary.Boundary {
	box, ok := e.boxOf(b)
	if !ok {
		e.logger.Debug("no caret box", "boundary", b)
		return b
	}

	var next boundary.Boundary
	found := false
	if breaker, inside := e.findBreakpoint(b, true); breaker != nil {
		offset := box.Top - box.Height
		breakOffset := e.geo.AbsoluteTop(breaker)
		if !inside {
			breakOffset += e.geo.ElementHeight(breaker)
		}
		if offset < breakOffset {
			above := breaker
			if inside {
				above = e.tree.NextNonAncestor(breaker, true, e.isVisibleContainer, e.tree.IsEditingHost)
			}
			if above != nil && e.tree.IsGroupContainer(above) {
				above = e.lastGrouped(above)
			}
			if above != nil {
				next, found = e.landAbove(box, above)
			}
		}
	}
	if !found {
		next, found = e.climbStep(b, box, true)
	}
	return e.progressed(b, box, next, found)
}

// landAbove hit-tests the last line of above at the caret's column.
func (e *Engine) landAbove(box geometry.Box, above *dom.Node) (boundary.Boundary, bool) {
	aboveBox, ok := e.boxOf(boundary.Raw(above, above.Length()))
	if !ok {
		return boundary.Boundary{}, false
	}
	var y float64
	if above.IsText() {
		y = aboveBox.Top + aboveBox.Height/2
	} else {
		y = e.geo.AbsoluteTop(above) + e.geo.ElementHeight(above) - aboveBox.Height/2
	}
	return e.geo.BoundaryAt(box.Left, y)
}

// moveDown returns the boundary one visual line below b, or b itself when
// b is on the last line.
func (e *Engine) moveDown(b boundary.Boundary) boundary.Boundary {
	box, ok := e.boxOf(b)
	if !ok {
		e.logger.Debug("no caret box", "boundary", b)
		return b
	}

	var next boundary.Boundary
	found := false
	if breaker, inside := e.findBreakpoint(b, false); breaker != nil {
		offset := box.Top + box.Height + box.Height
		breakOffset := e.geo.AbsoluteTop(breaker)
		if inside {
			breakOffset += e.geo.ElementHeight(breaker)
		}
		if offset > breakOffset {
			below := breaker
			if inside {
				below = e.tree.NextNonAncestor(breaker, false, e.isVisibleContainer, e.tree.IsEditingHost)
			}
			if below != nil && e.tree.IsGroupContainer(below) {
				below = e.firstGrouped(below)
			}
			if below != nil {
				next, found = e.landBelow(box, below)
			}
		}
	}
	if !found {
		next, found = e.climbStep(b, box, false)
	}
	return e.progressed(b, box, next, found)
}

// landBelow hit-tests the first line of below at the caret's column.
func (e *Engine) landBelow(box geometry.Box, below *dom.Node) (boundary.Boundary, bool) {
	belowBox, ok := e.boxOf(boundary.Raw(below, 0))
	if !ok {
		return boundary.Boundary{}, false
	}
	y := belowBox.Top
	if !below.IsText() {
		y = e.geo.AbsoluteTop(below)
	}
	return e.geo.BoundaryAt(box.Left, y+belowBox.Height/2)
}

// progressed returns next if it lies on a different line than b.
func (e *Engine) progressed(b boundary.Boundary, box geometry.Box, next boundary.Boundary, found bool) boundary.Boundary {
	if !found {
		return b
	}
	nextBox, ok := e.boxOf(next)
	if !ok || geometry.Near(nextBox.Top, box.Top) {
		return b
	}
	return next
}

// climbStep probes the geometry above or below box at strides growing by
// half a line until it finds a boundary on another line.
func (e *Engine) climbStep(b boundary.Boundary, box geometry.Box, up bool) (boundary.Boundary, bool) {
	half := box.Height / 2
	if half <= 0 {
		return boundary.Boundary{}, false
	}
	stride := 0.0
	for i := 0; i < maxClimbSteps; i++ {
		stride += half
		y := box.Top + box.Height + stride
		if up {
			y = box.Top - stride
		}
		next, ok := e.geo.BoundaryAt(box.Left, y)
		if !ok {
			return boundary.Boundary{}, false
		}
		if next.Equal(b) {
			continue
		}
		if nb, ok := e.boxOf(next); ok && geometry.Near(nb.Top, box.Top) {
			continue
		}
		return next, true
	}
	return boundary.Boundary{}, false
}
