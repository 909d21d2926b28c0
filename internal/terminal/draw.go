package terminal

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/caret/internal/caret"
	"github.com/dshills/caret/internal/geometry"
	"github.com/dshills/caret/internal/html"
	"github.com/dshills/caret/internal/layout"
	"github.com/dshills/caret/internal/overrides"
)

// paper is the color highlight boxes are blended over.
var paper = colorful.Color{R: 1, G: 1, B: 1}

// Draw renders one frame: the glyphs, the highlight boxes of layer and its
// first visible caret. A caret faded below half opacity is drawn hidden.
func (t *Terminal) Draw(glyphs []layout.Glyph, layer *caret.Layer, scroll geometry.Offsets) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	w, h := t.screen.Size()
	inside := func(col, row int) bool {
		return col >= 0 && row >= 0 && col < w && row < h
	}

	for _, g := range glyphs {
		if html.IsInvisible(g.Rune) {
			continue
		}
		col, row := t.toCell(g.Box.Left, g.Box.Top, scroll)
		if !inside(col, row) {
			continue
		}
		t.screen.SetContent(col, row, g.Rune, nil, glyphStyle(overrides.Map(overrides.Harvest(g.Node))))
	}

	for _, b := range layer.Boxes() {
		bg := rgb(paper.BlendRgb(b.Color, b.Opacity))
		t.fill(b.Box, scroll, func(col, row int) {
			if !inside(col, row) {
				return
			}
			mainc, comb, style, _ := t.screen.GetContent(col, row) //nolint:staticcheck // GetContent is the correct API
			t.screen.SetContent(col, row, mainc, comb, style.Background(bg))
		})
	}

	t.screen.HideCursor()
	for _, m := range layer.Markers() {
		st := m.State()
		if !st.Visible || st.Opacity < 0.5 {
			continue
		}
		col, row := t.toCell(st.Box.Left, st.Box.Top, scroll)
		if !inside(col, row) {
			continue
		}
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBar, rgb(st.Style.Color))
		t.screen.ShowCursor(col, row)
		break
	}

	t.screen.Show()
}

// fill calls f for every cell box covers.
func (t *Terminal) fill(box geometry.Box, scroll geometry.Offsets, f func(col, row int)) {
	c0, r0 := t.toCell(box.Left, box.Top, scroll)
	c1, r1 := t.toCell(box.Right()-0.5, box.Bottom()-0.5, scroll)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			f(col, row)
		}
	}
}

// glyphStyle converts the formatting in effect at a glyph.
func glyphStyle(m map[string]string) tcell.Style {
	style := tcell.StyleDefault
	if overrides.Enabled(m, overrides.Bold) {
		style = style.Bold(true)
	}
	if overrides.Enabled(m, overrides.Italic) {
		style = style.Italic(true)
	}
	if overrides.Enabled(m, overrides.Underline) {
		style = style.Underline(true)
	}
	if overrides.Enabled(m, overrides.Strikethrough) {
		style = style.StrikeThrough(true)
	}
	if c, err := caret.ParseColor(m[overrides.Color]); err == nil {
		style = style.Foreground(rgb(c))
	}
	return style
}

func rgb(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
