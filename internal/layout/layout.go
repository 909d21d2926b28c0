// Package layout is a monospace block/inline layout engine over a dom tree.
//
// Blocks stack vertically with em-based margins, list containers indent
// their items, and inline content flows into line boxes that wrap at
// uniseg line-break opportunities. The engine answers the geometric
// queries the selection engine needs: the box of a range, the boundary
// at a point, element offsets, computed styles and the scroll state.
//
// The layout is computed lazily and cached until Invalidate or
// SetViewport is called. An Engine is not safe for concurrent use.
package layout

import (
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/dom/boundary"
	"github.com/dshills/caret/internal/geometry"
	"github.com/dshills/caret/internal/html"
)

// Config holds the layout metrics.
type Config struct {
	// CharWidth is the glyph advance at the base font size.
	CharWidth float64
	// FontSize is the base font size in pixels.
	FontSize float64
	// LineHeight is the line height as a multiple of the font size.
	LineHeight float64
	// Viewport is the visible area; its width is the layout width.
	Viewport geometry.Size
}

// DefaultConfig returns browser-like metrics.
func DefaultConfig() Config {
	return Config{
		CharWidth:  8,
		FontSize:   16,
		LineHeight: 1.25,
		Viewport:   geometry.Size{Width: 800, Height: 600},
	}
}

// Glyph is one laid out character.
type Glyph struct {
	Rune   rune
	Node   *dom.Node
	Offset int
	Box    geometry.Box
}

// stop is a caret position on a line.
type stop struct {
	x float64
	b boundary.Boundary
}

type line struct {
	top, height float64
	left, right float64
	pen         float64
	font        float64
	stops       []stop
	glyphs      []int
}

func (l *line) bottom() float64 { return l.top + l.height }

// Engine lays out a document and answers geometric queries about it.
type Engine struct {
	root   *dom.Node
	cfg    Config
	scroll geometry.Offsets
	valid  bool

	lines  []*line
	glyphs []Glyph
	boxes  map[*dom.Node]geometry.Box
}

// New creates a layout engine for the tree rooted at root.
func New(root *dom.Node, cfg Config) *Engine {
	return &Engine{root: root, cfg: cfg}
}

// Root returns the laid out tree.
func (e *Engine) Root() *dom.Node { return e.root }

// Config returns the active metrics.
func (e *Engine) Config() Config { return e.cfg }

// Invalidate discards the cached layout. Call after mutating the tree.
func (e *Engine) Invalidate() { e.valid = false }

// SetViewport resizes the viewport and reflows the document.
func (e *Engine) SetViewport(s geometry.Size) {
	e.cfg.Viewport = s
	e.valid = false
}

// Viewport returns the viewport size.
func (e *Engine) Viewport() geometry.Size { return e.cfg.Viewport }

// ScrollOffsets returns the current scroll position.
func (e *Engine) ScrollOffsets() geometry.Offsets { return e.scroll }

// ScrollTo scrolls the viewport. Negative positions clamp to zero.
func (e *Engine) ScrollTo(x, y float64) {
	e.scroll = geometry.Offsets{Left: max(x, 0), Top: max(y, 0)}
}

// Glyphs returns every laid out character in document order.
func (e *Engine) Glyphs() []Glyph {
	e.ensure()
	return e.glyphs
}

// Height returns the height of the whole document.
func (e *Engine) Height() float64 {
	e.ensure()
	return e.boxes[e.root].Height
}

// NodeBox returns the laid out box of n. Text nodes and inline elements
// report the union of their glyphs.
func (e *Engine) NodeBox(n *dom.Node) (geometry.Box, bool) {
	e.ensure()
	b, ok := e.boxes[n]
	return b, ok
}

// AbsoluteTop returns the top edge of n in document coordinates.
func (e *Engine) AbsoluteTop(n *dom.Node) float64 {
	b, _ := e.NodeBox(n)
	return b.Top
}

// OffsetLeft returns the left edge of n in document coordinates.
func (e *Engine) OffsetLeft(n *dom.Node) float64 {
	b, _ := e.NodeBox(n)
	return b.Left
}

// ElementHeight returns the height of n's box.
func (e *Engine) ElementHeight(n *dom.Node) float64 {
	b, _ := e.NodeBox(n)
	return b.Height
}

// ElementWidth returns the width of n's box.
func (e *Engine) ElementWidth(n *dom.Node) float64 {
	b, _ := e.NodeBox(n)
	return b.Width
}

func (e *Engine) ensure() {
	if e.valid {
		return
	}
	e.lines = nil
	e.glyphs = nil
	e.boxes = make(map[*dom.Node]geometry.Box)
	b := &builder{e: e}
	b.block(e.root, 0, e.cfg.Viewport.Width)
	e.inlineBoxes()
	e.valid = true
}

// inlineBoxes records the union of glyph boxes for text nodes and inline
// elements.
func (e *Engine) inlineBoxes() {
	for _, g := range e.glyphs {
		for p := g.Node; p != nil && !html.HasLinebreakingStyle(p) && p.Type != dom.DocumentNode; p = p.Parent() {
			e.boxes[p] = e.boxes[p].Union(g.Box)
		}
	}
}

// builder carries the flow state while laying out.
type builder struct {
	e   *Engine
	y   float64
	cur *line
}

func (b *builder) block(n *dom.Node, left, width float64) {
	font := b.e.fontSize(n)
	sp := blockSpacing[n.Tag]
	b.y += sp.margin * font
	top := b.y
	indent := sp.indent * font
	b.children(n, left+indent, width-indent)
	b.closeLine()
	if b.y == top && n.IsElement() {
		ln := b.line(left+indent, width-indent, font)
		ln.stops = append(ln.stops, stop{x: ln.pen, b: boundary.Raw(n, 0)})
		b.closeLine()
	}
	b.e.boxes[n] = geometry.Box{Top: top, Left: left, Width: width, Height: b.y - top}
	b.y += sp.margin * font
}

func (b *builder) children(n *dom.Node, left, width float64) {
	for _, c := range n.Children() {
		switch {
		case !html.IsRendered(c):
		case c.IsText():
			b.text(c, left, width)
		case c.Tag == "br":
			b.lineBreak(c, left, width)
		case html.HasLinebreakingStyle(c) && html.IsVoidType(c):
			b.closeLine()
			half := b.e.fontSize(c) / 2
			b.y += half
			b.e.boxes[c] = geometry.Box{Top: b.y, Left: left, Width: width}
			b.y += half
		case html.HasLinebreakingStyle(c):
			b.closeLine()
			b.block(c, left, width)
		case html.IsVoidType(c):
			b.atom(c, left, width)
		default:
			b.children(c, left, width)
		}
	}
}

// line returns the open line, opening a new one if needed.
func (b *builder) line(left, width, font float64) *line {
	if b.cur == nil {
		b.cur = &line{top: b.y, left: left, right: left + width, pen: left, font: font}
	}
	if font > b.cur.font {
		b.cur.font = font
	}
	return b.cur
}

func (b *builder) closeLine() {
	ln := b.cur
	if ln == nil {
		return
	}
	ln.height = ln.font * b.e.cfg.LineHeight
	for _, i := range ln.glyphs {
		b.e.glyphs[i].Box.Top = ln.top
		b.e.glyphs[i].Box.Height = ln.height
	}
	b.e.lines = append(b.e.lines, ln)
	b.y += ln.height
	b.cur = nil
}

func (b *builder) advance(font float64) float64 {
	return b.e.cfg.CharWidth * font / b.e.cfg.FontSize
}

func (b *builder) place(ln *line, r rune, n *dom.Node, off int, w float64) {
	b.e.glyphs = append(b.e.glyphs, Glyph{
		Rune:   r,
		Node:   n,
		Offset: off,
		Box:    geometry.Box{Left: ln.pen, Width: w},
	})
	ln.glyphs = append(ln.glyphs, len(b.e.glyphs)-1)
	ln.pen += w
}

// text flows a text node into lines. A caret stop is recorded in front of
// every rune and at the end of the text, so the offset at a wrap point
// belongs to the line it starts.
func (b *builder) text(n *dom.Node, left, width float64) {
	font := b.e.fontSize(n)
	adv := b.advance(font)
	ln := b.line(left, width, font)
	rest := n.Data
	state := -1
	off := 0
	for len(rest) > 0 {
		var seg string
		seg, rest, _, state = uniseg.FirstLineSegmentInString(rest, state)
		rs := []rune(seg)
		if ln.pen > ln.left && ln.pen+visibleWidth(rs, adv) > ln.right {
			b.closeLine()
			ln = b.line(left, width, font)
		}
		for i, r := range rs {
			w := adv
			if html.IsInvisible(r) {
				w = 0
			}
			if r == '\n' || r == '\t' || r == '\r' {
				r = ' '
			}
			ln.stops = append(ln.stops, stop{x: ln.pen, b: boundary.Raw(n, off+i)})
			b.place(ln, r, n, off+i, w)
		}
		off += len(rs)
	}
	ln.stops = append(ln.stops, stop{x: ln.pen, b: boundary.Raw(n, off)})
}

// visibleWidth is the advance of rs without trailing whitespace.
func visibleWidth(rs []rune, adv float64) float64 {
	end := len(rs)
	for end > 0 && unicode.IsSpace(rs[end-1]) {
		end--
	}
	w := 0.0
	for _, r := range rs[:end] {
		if !html.IsInvisible(r) {
			w += adv
		}
	}
	return w
}

func (b *builder) lineBreak(n *dom.Node, left, width float64) {
	ln := b.line(left, width, b.e.fontSize(n))
	if len(ln.stops) == 0 {
		ln.stops = append(ln.stops, stop{x: ln.pen, b: boundary.FromFrontOfNode(n)})
	}
	b.closeLine()
	b.e.boxes[n] = geometry.Box{Top: ln.top, Left: ln.pen, Height: ln.height}
}

// atom lays out an inline void element as a single glyph.
func (b *builder) atom(n *dom.Node, left, width float64) {
	font := b.e.fontSize(n)
	adv := b.advance(font)
	ln := b.line(left, width, font)
	if ln.pen > ln.left && ln.pen+adv > ln.right {
		b.closeLine()
		ln = b.line(left, width, font)
	}
	ln.stops = append(ln.stops, stop{x: ln.pen, b: boundary.FromFrontOfNode(n)})
	b.place(ln, '\ufffc', n, 0, adv)
	ln.stops = append(ln.stops, stop{x: ln.pen, b: boundary.FromBehindNode(n)})
}
