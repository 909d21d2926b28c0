package traversing

import (
	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/dom/boundary"
	"github.com/dshills/caret/internal/html"
)

// Unit is the granularity Expand grows a range to.
type Unit int

const (
	// UnitWord grows each end to the surrounding word edge.
	UnitWord Unit = iota
	// UnitBlock grows each end to the edge of its block.
	UnitBlock
)

// Expand grows the range [start, end] outward to whole units.
func Expand(start, end boundary.Boundary, unit Unit) (boundary.Boundary, boundary.Boundary) {
	if unit == UnitBlock {
		return html.ExpandForward(boundary.FromStartOfNode(enclosingBlock(start.Container))),
			html.ExpandBackward(boundary.FromEndOfNode(enclosingBlock(end.Container)))
	}
	collapsed := start.Equal(end)
	if start.IsTextBoundary() {
		if s, ok := segmentAt(start.Container.Runes(), start.Offset, false); ok {
			start = boundary.Raw(start.Container, s.start)
			if collapsed {
				end = boundary.Raw(start.Container, s.end)
				return start, end
			}
		}
	}
	if end.IsTextBoundary() {
		if s, ok := segmentAt(end.Container.Runes(), end.Offset, true); ok {
			end = boundary.Raw(end.Container, s.end)
		}
	}
	return start, end
}

// segmentAt returns the segment around off, falling back to the other side
// of an edge at the text's ends.
func segmentAt(rs []rune, off int, atEnd bool) (segment, bool) {
	if s, ok := wordAround(rs, off, atEnd); ok {
		return s, true
	}
	return wordAround(rs, off, !atEnd)
}

// enclosingBlock returns the nearest line-breaking ancestor of n, stopping
// at the editing host.
func enclosingBlock(n *dom.Node) *dom.Node {
	for p := n; p != nil; p = p.Parent() {
		if html.IsEditingHost(p) || html.HasLinebreakingStyle(p) || p.Parent() == nil {
			return p
		}
	}
	return n
}

// Navigator exposes the package's stepping functions as a value the
// selection engine can hold.
type Navigator struct{}

func (Navigator) Next(b boundary.Boundary, s Stride) boundary.Boundary { return Next(b, s) }
func (Navigator) Prev(b boundary.Boundary, s Stride) boundary.Boundary { return Prev(b, s) }

func (Navigator) EnvelopeInvisibleCharacters(b boundary.Boundary) boundary.Boundary {
	return EnvelopeInvisibleCharacters(b)
}

func (Navigator) Expand(start, end boundary.Boundary, unit Unit) (boundary.Boundary, boundary.Boundary) {
	return Expand(start, end, unit)
}
