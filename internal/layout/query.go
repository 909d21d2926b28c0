package layout

import (
	"math"

	"github.com/dshills/caret/internal/dom/boundary"
	"github.com/dshills/caret/internal/geometry"
	"github.com/dshills/caret/internal/html"
)

// BoxOf returns the rendered box of r. A collapsed range yields a
// zero-width caret box spanning its line. Returns false if the range is not
// rendered.
func (e *Engine) BoxOf(r boundary.Range) (geometry.Box, bool) {
	e.ensure()
	sb, si, ok := e.caretBox(r.Start)
	if !ok {
		return geometry.Box{}, false
	}
	if r.IsCollapsed() {
		return sb, true
	}
	eb, ei, ok := e.caretBox(r.End)
	if !ok {
		return geometry.Box{}, false
	}
	if si == ei || si < 0 || ei < 0 {
		left := math.Min(sb.Left, eb.Left)
		top := math.Min(sb.Top, eb.Top)
		return geometry.Box{
			Top:    top,
			Left:   left,
			Width:  math.Max(sb.Left, eb.Left) - left,
			Height: math.Max(sb.Bottom(), eb.Bottom()) - top,
		}, true
	}
	first := e.lines[si]
	box := geometry.Box{Top: sb.Top, Left: sb.Left, Width: first.pen - sb.Left, Height: sb.Height}
	for _, ln := range e.lines[si+1 : ei] {
		box = box.Union(geometry.Box{Top: ln.top, Left: ln.left, Width: ln.pen - ln.left, Height: ln.height})
	}
	last := e.lines[ei]
	return box.Union(geometry.Box{Top: eb.Top, Left: last.left, Width: eb.Left - last.left, Height: eb.Height}), true
}

// caretBox returns the caret box of b and the index of its line, or -1 when
// the box comes from the container's block rather than a line.
func (e *Engine) caretBox(b boundary.Boundary) (geometry.Box, int, bool) {
	if b.IsZero() {
		return geometry.Box{}, -1, false
	}
	if i, x, ok := e.locate(b); ok {
		ln := e.lines[i]
		return geometry.Box{Top: ln.top, Left: x, Height: ln.height}, i, true
	}
	if b.IsTextBoundary() {
		return geometry.Box{}, -1, false
	}
	for _, alt := range []boundary.Boundary{html.ExpandForward(b), html.ExpandBackward(b)} {
		if alt.Equal(b) {
			continue
		}
		if i, x, ok := e.locate(alt); ok {
			ln := e.lines[i]
			return geometry.Box{Top: ln.top, Left: x, Height: ln.height}, i, true
		}
	}
	box, ok := e.boxes[b.Container]
	if !ok {
		return geometry.Box{}, -1, false
	}
	h := e.fontSize(b.Container) * e.cfg.LineHeight
	return geometry.Box{Top: box.Top, Left: box.Left, Height: h}, -1, true
}

// locate finds the line and x position of an exact caret stop.
func (e *Engine) locate(b boundary.Boundary) (int, float64, bool) {
	for i, ln := range e.lines {
		for _, s := range ln.stops {
			if s.b.Equal(b) {
				return i, s.x, true
			}
		}
	}
	return 0, 0, false
}

// BoundaryAt returns the caret position closest to the point (x, y) in
// document coordinates. Points above the first line or below the last line
// resolve to nothing. Points in the gap between lines snap to the nearest
// line; within a line the nearest caret stop wins.
func (e *Engine) BoundaryAt(x, y float64) (boundary.Boundary, bool) {
	e.ensure()
	if len(e.lines) == 0 {
		return boundary.Boundary{}, false
	}
	if y < e.lines[0].top || y >= e.lines[len(e.lines)-1].bottom() {
		return boundary.Boundary{}, false
	}
	var ln *line
	best := math.Inf(1)
	for _, l := range e.lines {
		if y >= l.top && y < l.bottom() {
			ln = l
			break
		}
		if d := math.Min(math.Abs(y-l.top), math.Abs(y-l.bottom())); d < best {
			best = d
			ln = l
		}
	}
	if ln == nil || len(ln.stops) == 0 {
		return boundary.Boundary{}, false
	}
	found := ln.stops[0]
	for _, s := range ln.stops[1:] {
		if math.Abs(x-s.x) < math.Abs(x-found.x) {
			found = s
		}
	}
	return found.b, true
}
