package dom

// Predicate tests a node.
type Predicate func(*Node) bool

// Not returns the complement of p.
func Not(p Predicate) Predicate {
	return func(n *Node) bool { return !p(n) }
}

// Next returns the node following n in document preorder, descending into
// n's children first. Returns nil past the end of the tree.
func Next(n *Node) *Node {
	if c := n.FirstChild(); c != nil {
		return c
	}
	return nextSkippingChildren(n)
}

func nextSkippingChildren(n *Node) *Node {
	for n != nil {
		if s := n.NextSibling(); s != nil {
			return s
		}
		n = n.parent
	}
	return nil
}

// Prev returns the node preceding n in document preorder: the deepest last
// descendant of the previous sibling, or the parent.
func Prev(n *Node) *Node {
	s := n.PreviousSibling()
	if s == nil {
		return n.parent
	}
	for s.LastChild() != nil {
		s = s.LastChild()
	}
	return s
}

// ForwardPreorderBacktraceUntil walks forward in document preorder starting
// at n (inclusive) and returns the first node satisfying match.
func ForwardPreorderBacktraceUntil(n *Node, match Predicate) *Node {
	for ; n != nil; n = Next(n) {
		if match(n) {
			return n
		}
	}
	return nil
}

// BackwardPreorderBacktraceUntil walks backward in document preorder
// starting at n (inclusive), visiting ancestors after their preceding
// siblings, and returns the first node satisfying match.
func BackwardPreorderBacktraceUntil(n *Node, match Predicate) *Node {
	for ; n != nil; n = Prev(n) {
		if match(n) {
			return n
		}
	}
	return nil
}

// UpWhile climbs from n (inclusive) while cond holds and returns the first
// node for which it does not, or nil if the root is passed.
func UpWhile(n *Node, cond Predicate) *Node {
	for n != nil && cond(n) {
		n = n.parent
	}
	return n
}

// NextNonAncestor returns the nearest sibling-like node after (or before,
// when previous is set) n that satisfies match. Siblings are tried first;
// when they run out the search continues from the parent. The search never
// returns an ancestor of n and stops when it would climb into a node
// satisfying until.
func NextNonAncestor(n *Node, previous bool, match, until Predicate) *Node {
	if until == nil {
		until = func(*Node) bool { return false }
	}
	for n != nil {
		var next *Node
		if previous {
			next = n.PreviousSibling()
		} else {
			next = n.NextSibling()
		}
		if next != nil {
			if match == nil || match(next) {
				return next
			}
			n = next
			continue
		}
		n = n.parent
		if n == nil || until(n) {
			return nil
		}
	}
	return nil
}

// Contains returns true if n is ancestor or equal to other.
func Contains(n, other *Node) bool {
	for ; other != nil; other = other.parent {
		if other == n {
			return true
		}
	}
	return false
}

// Ancestors returns n's ancestors from the parent up to the root.
func Ancestors(n *Node) []*Node {
	var out []*Node
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// path returns the child indexes leading from the root down to n.
func path(n *Node) []int {
	var p []int
	for ; n.parent != nil; n = n.parent {
		p = append(p, n.Index())
	}
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// Compare returns -1 if a precedes b in document preorder, 1 if it follows,
// and 0 if they are the same node. An ancestor precedes its descendants.
// Nodes from different trees compare by their first differing root path.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	pa, pb := path(a), path(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			if pa[i] < pb[i] {
				return -1
			}
			return 1
		}
	}
	if len(pa) < len(pb) {
		return -1
	}
	if len(pa) > len(pb) {
		return 1
	}
	return 0
}

// FollowedBy returns true if other comes after n in document preorder.
func FollowedBy(n, other *Node) bool {
	return Compare(n, other) < 0
}
