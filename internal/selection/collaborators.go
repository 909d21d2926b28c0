package selection

import (
	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/dom/boundary"
	"github.com/dshills/caret/internal/geometry"
	"github.com/dshills/caret/internal/traversing"
)

// Tree answers document structure and classification queries.
type Tree interface {
	PrevNode(b boundary.Boundary) *dom.Node
	NextNode(b boundary.Boundary) *dom.Node
	BackwardUntil(n *dom.Node, match dom.Predicate) *dom.Node
	ForwardUntil(n *dom.Node, match dom.Predicate) *dom.Node
	UpWhile(n *dom.Node, cond dom.Predicate) *dom.Node
	NextNonAncestor(n *dom.Node, previous bool, match, until dom.Predicate) *dom.Node

	IsVoid(n *dom.Node) bool
	IsRendered(n *dom.Node) bool
	IsLinebreaking(n *dom.Node) bool
	IsGroupContainer(n *dom.Node) bool
	IsGroupedElement(n *dom.Node) bool
	IsEditingHost(n *dom.Node) bool
	IsEditable(n *dom.Node) bool

	ExpandForward(b boundary.Boundary) boundary.Boundary
	ExpandBackward(b boundary.Boundary) boundary.Boundary
}

// Navigator moves boundaries through text.
type Navigator interface {
	Next(b boundary.Boundary, stride traversing.Stride) boundary.Boundary
	Prev(b boundary.Boundary, stride traversing.Stride) boundary.Boundary
	EnvelopeInvisibleCharacters(b boundary.Boundary) boundary.Boundary
	Expand(start, end boundary.Boundary, unit traversing.Unit) (boundary.Boundary, boundary.Boundary)
}

// Geometry measures rendered content. All coordinates are document
// coordinates; ScrollOffsets maps them to the viewport.
type Geometry interface {
	// BoxOf returns the rendered box of r. A collapsed range yields a
	// zero-width caret box. ok is false if r is not rendered.
	BoxOf(r boundary.Range) (box geometry.Box, ok bool)

	// BoundaryAt hit-tests the point (x, y).
	BoundaryAt(x, y float64) (b boundary.Boundary, ok bool)

	AbsoluteTop(n *dom.Node) float64
	ElementHeight(n *dom.Node) float64
	ElementWidth(n *dom.Node) float64
	OffsetLeft(n *dom.Node) float64
	ComputedStyle(n *dom.Node, prop string) string

	ScrollOffsets() geometry.Offsets
	Viewport() geometry.Size
	ScrollTo(x, y float64)
}
