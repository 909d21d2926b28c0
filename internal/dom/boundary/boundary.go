// Package boundary provides positions within a document tree and ranges
// between them.
//
// A Boundary is a container node plus an offset: a rune index for text
// containers, a child index for everything else. Boundaries are immutable
// value types; two boundaries are equal when container and offset match.
package boundary

import (
	"fmt"

	"github.com/dshills/caret/internal/dom"
)

// Boundary is a position within the document tree.
type Boundary struct {
	Container *dom.Node
	Offset    int
}

// Create returns a boundary with the offset clamped to [0, length].
func Create(container *dom.Node, offset int) Boundary {
	if offset < 0 {
		offset = 0
	}
	if l := container.Length(); offset > l {
		offset = l
	}
	return Boundary{Container: container, Offset: offset}
}

// Raw returns a boundary without clamping.
func Raw(container *dom.Node, offset int) Boundary {
	return Boundary{Container: container, Offset: offset}
}

// FromStartOfNode returns the boundary at the start of n's content.
func FromStartOfNode(n *dom.Node) Boundary {
	return Boundary{Container: n, Offset: 0}
}

// FromEndOfNode returns the boundary at the end of n's content.
func FromEndOfNode(n *dom.Node) Boundary {
	return Boundary{Container: n, Offset: n.Length()}
}

// FromFrontOfNode returns the boundary just before n in its parent.
func FromFrontOfNode(n *dom.Node) Boundary {
	return Boundary{Container: n.Parent(), Offset: n.Index()}
}

// FromBehindNode returns the boundary just after n in its parent.
func FromBehindNode(n *dom.Node) Boundary {
	return Boundary{Container: n.Parent(), Offset: n.Index() + 1}
}

// IsZero returns true for the zero boundary (no container).
func (b Boundary) IsZero() bool {
	return b.Container == nil
}

// Equal returns true if both boundaries share container and offset.
func (b Boundary) Equal(other Boundary) bool {
	return b.Container == other.Container && b.Offset == other.Offset
}

// IsTextBoundary returns true if the container is a text node.
func (b Boundary) IsTextBoundary() bool {
	return b.Container.IsText()
}

// IsAtStart returns true if the boundary is at offset zero.
func (b Boundary) IsAtStart() bool {
	return b.Offset == 0
}

// IsAtEnd returns true if the boundary is at the end of its container.
func (b Boundary) IsAtEnd() bool {
	return b.Offset >= b.Container.Length()
}

// NodeAfter returns the child immediately after an element boundary, or
// nil for text boundaries and boundaries at the end.
func (b Boundary) NodeAfter() *dom.Node {
	if b.IsTextBoundary() {
		return nil
	}
	return b.Container.ChildAt(b.Offset)
}

// NodeBefore returns the child immediately before an element boundary, or
// nil for text boundaries and boundaries at the start.
func (b Boundary) NodeBefore() *dom.Node {
	if b.IsTextBoundary() {
		return nil
	}
	return b.Container.ChildAt(b.Offset - 1)
}

// PrevNode returns the node to the left of the boundary: the text node
// itself for text boundaries, the container when at its start, otherwise
// the preceding child.
func PrevNode(b Boundary) *dom.Node {
	if b.IsTextBoundary() || b.IsAtStart() {
		return b.Container
	}
	return b.NodeBefore()
}

// NextNode returns the node to the right of the boundary: the text node
// itself for text boundaries, the container when at its end, otherwise the
// following child.
func NextNode(b Boundary) *dom.Node {
	if b.IsTextBoundary() || b.IsAtEnd() {
		return b.Container
	}
	return b.NodeAfter()
}

// Compare returns -1, 0 or 1 depending on whether a is before, equal to or
// after b in document order. Boundaries in ancestor/descendant containers
// compare by the child slot the descendant lives in.
func Compare(a, b Boundary) int {
	if a.Container == b.Container {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	}
	if dom.FollowedBy(b.Container, a.Container) {
		return -Compare(b, a)
	}
	// a's container precedes b's: either an ancestor or disjoint.
	if dom.Contains(a.Container, b.Container) {
		child := b.Container
		for child.Parent() != a.Container {
			child = child.Parent()
		}
		if child.Index() < a.Offset {
			return 1
		}
	}
	return -1
}

// Before returns true if a comes strictly before b.
func Before(a, b Boundary) bool {
	return Compare(a, b) < 0
}

// String returns a description for logs and test failures.
func (b Boundary) String() string {
	return fmt.Sprintf("%s:%d", b.Container, b.Offset)
}
