// Package traversing moves boundaries through rendered text: one visible
// character or one word at a time, across node boundaries and past
// zero-width characters.
package traversing

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/dom/boundary"
	"github.com/dshills/caret/internal/html"
)

// Stride is the unit a step moves by.
type Stride int

const (
	// StrideVisual moves by one grapheme cluster.
	StrideVisual Stride = iota
	// StrideWord moves to the next word edge.
	StrideWord
)

// String returns the stride name.
func (s Stride) String() string {
	switch s {
	case StrideVisual:
		return "visual"
	case StrideWord:
		return "word"
	}
	return "unknown"
}

// Next returns the boundary one stride to the right of b. If there is
// nowhere to go, b is returned unchanged.
func Next(b boundary.Boundary, stride Stride) boundary.Boundary {
	if stride == StrideWord {
		return nextWord(b)
	}
	return nextVisual(b)
}

// Prev returns the boundary one stride to the left of b. If there is
// nowhere to go, b is returned unchanged.
func Prev(b boundary.Boundary, stride Stride) boundary.Boundary {
	if stride == StrideWord {
		return prevWord(b)
	}
	return prevVisual(b)
}

// EnvelopeInvisibleCharacters moves a text boundary past any zero-width
// characters that follow it.
func EnvelopeInvisibleCharacters(b boundary.Boundary) boundary.Boundary {
	if !b.IsTextBoundary() {
		return b
	}
	return boundary.Raw(b.Container, skipInvisibleForward(b.Container.Runes(), b.Offset))
}

func nextVisual(b boundary.Boundary) boundary.Boundary {
	if b.IsTextBoundary() {
		rs := b.Container.Runes()
		if pos := skipInvisibleForward(rs, b.Offset); pos < len(rs) {
			return boundary.Raw(b.Container, skipInvisibleForward(rs, nextStop(rs, pos)))
		}
	}
	t, crossed := nextText(b)
	if t == nil {
		return b
	}
	rs := t.Runes()
	start := skipInvisibleForward(rs, 0)
	if crossed {
		return boundary.Raw(t, start)
	}
	return boundary.Raw(t, skipInvisibleForward(rs, nextStop(rs, start)))
}

func prevVisual(b boundary.Boundary) boundary.Boundary {
	if b.IsTextBoundary() {
		rs := b.Container.Runes()
		if pos := skipInvisibleBackward(rs, b.Offset); pos > 0 {
			return boundary.Raw(b.Container, skipInvisibleBackward(rs, prevStop(rs, pos)))
		}
	}
	t, crossed := prevText(b)
	if t == nil {
		return b
	}
	rs := t.Runes()
	end := skipInvisibleBackward(rs, len(rs))
	if crossed {
		return boundary.Raw(t, end)
	}
	return boundary.Raw(t, skipInvisibleBackward(rs, prevStop(rs, end)))
}

// nextText finds the first rendered text node after b inside b's editing
// host. crossed reports whether a line break separates b from it.
func nextText(b boundary.Boundary) (text *dom.Node, crossed bool) {
	origin := b.Container
	var n *dom.Node
	switch {
	case b.IsTextBoundary():
		n = skipChildren(origin)
	case b.NodeAfter() != nil:
		n = b.NodeAfter()
	default:
		n = skipChildren(origin)
	}
	limit := scope(origin)
	for ; n != nil && dom.Contains(limit, n); n = dom.Next(n) {
		if n.IsElement() && html.IsVoidType(n) && html.HasLinebreakingStyle(n) {
			crossed = true
		}
		if n.IsText() && html.IsRendered(n) {
			return n, crossed || block(origin) != block(n)
		}
	}
	return nil, false
}

// prevText finds the last rendered text node before b inside b's editing
// host.
func prevText(b boundary.Boundary) (text *dom.Node, crossed bool) {
	origin := b.Container
	var n *dom.Node
	switch {
	case b.IsTextBoundary():
		n = dom.Prev(origin)
	case b.NodeBefore() != nil:
		n = deepestLast(b.NodeBefore())
	default:
		n = dom.Prev(origin)
	}
	limit := scope(origin)
	for ; n != nil && dom.Contains(limit, n); n = dom.Prev(n) {
		if n.IsElement() && html.IsVoidType(n) && html.HasLinebreakingStyle(n) {
			crossed = true
		}
		if n.IsText() && html.IsRendered(n) {
			return n, crossed || block(origin) != block(n)
		}
	}
	return nil, false
}

func skipChildren(n *dom.Node) *dom.Node {
	for ; n != nil; n = n.Parent() {
		if s := n.NextSibling(); s != nil {
			return s
		}
	}
	return nil
}

func deepestLast(n *dom.Node) *dom.Node {
	for n.LastChild() != nil {
		n = n.LastChild()
	}
	return n
}

// scope returns the editing host containing n, or the tree root.
func scope(n *dom.Node) *dom.Node {
	if host := html.EditingHost(n); host != nil {
		return host
	}
	return n.Root()
}

// block returns the nearest line-breaking ancestor of n.
func block(n *dom.Node) *dom.Node {
	for p := n; p != nil; p = p.Parent() {
		if p.IsElement() && html.HasLinebreakingStyle(p) || p.Type == dom.DocumentNode {
			return p
		}
	}
	return nil
}

func skipInvisibleForward(rs []rune, off int) int {
	for off < len(rs) && html.IsInvisible(rs[off]) {
		off++
	}
	return off
}

func skipInvisibleBackward(rs []rune, off int) int {
	for off > 0 && html.IsInvisible(rs[off-1]) {
		off--
	}
	return off
}

// graphemeStops returns the rune offsets of every grapheme cluster edge in
// rs, including 0 and len(rs).
func graphemeStops(rs []rune) []int {
	stops := []int{0}
	g := uniseg.NewGraphemes(string(rs))
	pos := 0
	for g.Next() {
		pos += len(g.Runes())
		stops = append(stops, pos)
	}
	return stops
}

func nextStop(rs []rune, off int) int {
	for _, s := range graphemeStops(rs) {
		if s > off {
			return s
		}
	}
	return len(rs)
}

func prevStop(rs []rune, off int) int {
	stops := graphemeStops(rs)
	for i := len(stops) - 1; i >= 0; i-- {
		if stops[i] < off {
			return stops[i]
		}
	}
	return 0
}
