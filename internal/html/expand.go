package html

import (
	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/dom/boundary"
)

// ExpandForward moves b inward toward the first position where content can
// be placed: it descends into following elements, skips unrendered text and
// enters the first visible text node at offset zero. Void elements stop the
// descent in front of them.
func ExpandForward(b boundary.Boundary) boundary.Boundary {
	for !b.IsTextBoundary() {
		next := b.NodeAfter()
		switch {
		case next == nil:
			return b
		case next.IsText():
			if !IsRendered(next) {
				b = boundary.Raw(b.Container, b.Offset+1)
				continue
			}
			return boundary.FromStartOfNode(next)
		case IsVoidType(next), !IsRendered(next):
			return b
		default:
			b = boundary.FromStartOfNode(next)
		}
	}
	return b
}

// ExpandBackward is the mirror of ExpandForward: it descends into preceding
// elements and enters the last visible text node at its end.
func ExpandBackward(b boundary.Boundary) boundary.Boundary {
	for !b.IsTextBoundary() {
		prev := b.NodeBefore()
		switch {
		case prev == nil:
			return b
		case prev.IsText():
			if !IsRendered(prev) {
				b = boundary.Raw(b.Container, b.Offset-1)
				continue
			}
			return boundary.FromEndOfNode(prev)
		case IsVoidType(prev), !IsRendered(prev):
			return b
		default:
			b = boundary.FromEndOfNode(prev)
		}
	}
	return b
}

// Tree exposes the document classification and navigation primitives the
// selection engine consumes.
type Tree struct{}

func (Tree) PrevNode(b boundary.Boundary) *dom.Node { return boundary.PrevNode(b) }
func (Tree) NextNode(b boundary.Boundary) *dom.Node { return boundary.NextNode(b) }

func (Tree) BackwardUntil(n *dom.Node, match dom.Predicate) *dom.Node {
	return dom.BackwardPreorderBacktraceUntil(n, match)
}

func (Tree) ForwardUntil(n *dom.Node, match dom.Predicate) *dom.Node {
	return dom.ForwardPreorderBacktraceUntil(n, match)
}

func (Tree) UpWhile(n *dom.Node, cond dom.Predicate) *dom.Node { return dom.UpWhile(n, cond) }

func (Tree) NextNonAncestor(n *dom.Node, previous bool, match, until dom.Predicate) *dom.Node {
	return dom.NextNonAncestor(n, previous, match, until)
}

func (Tree) IsVoid(n *dom.Node) bool           { return IsVoidType(n) }
func (Tree) IsRendered(n *dom.Node) bool       { return IsRendered(n) }
func (Tree) IsLinebreaking(n *dom.Node) bool   { return HasLinebreakingStyle(n) }
func (Tree) IsGroupContainer(n *dom.Node) bool { return IsGroupContainer(n) }
func (Tree) IsGroupedElement(n *dom.Node) bool { return IsGroupedElement(n) }
func (Tree) IsEditingHost(n *dom.Node) bool    { return IsEditingHost(n) }
func (Tree) IsEditable(n *dom.Node) bool       { return IsEditable(n) }

func (Tree) ExpandForward(b boundary.Boundary) boundary.Boundary  { return ExpandForward(b) }
func (Tree) ExpandBackward(b boundary.Boundary) boundary.Boundary { return ExpandBackward(b) }
