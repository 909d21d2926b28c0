package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/caret/internal/caret"
	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/event"
	"github.com/dshills/caret/internal/geometry"
	"github.com/dshills/caret/internal/input/key"
	"github.com/dshills/caret/internal/input/mouse"
	"github.com/dshills/caret/internal/layout"
)

var cells = Metrics{CellWidth: 8, CellHeight: 20}

func newSim(t *testing.T) (tcell.SimulationScreen, *Terminal) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(20, 5)
	t.Cleanup(sim.Fini)
	return sim, New(sim, cells, mouse.DefaultConfig())
}

func TestSize(t *testing.T) {
	_, term := newSim(t)
	assert.Equal(t, geometry.Size{Width: 160, Height: 100}, term.Size())
}

func TestTranslateKeys(t *testing.T) {
	_, term := newSim(t)
	editable := dom.NewElement("div")

	tests := []struct {
		name  string
		ev    *tcell.EventKey
		kinds []event.Kind
		chord string
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), []event.Kind{event.KeyDown}, "shift+left"},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), []event.Kind{event.KeyDown, event.KeyPress}, "x"},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), []event.Kind{event.KeyDown}, "space"},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl), []event.Kind{event.KeyDown}, "ctrl+a"},
		{"meta end", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModMeta|tcell.ModShift), []event.Kind{event.KeyDown}, "meta+shift+right"},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), []event.Kind{event.KeyDown}, "pagedown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := term.Translate(tt.ev, editable, geometry.Offsets{})
			require.Len(t, out, len(tt.kinds))
			for i, ev := range out {
				assert.Equal(t, tt.kinds[i], ev.Kind)
				assert.Same(t, editable, ev.Editable)
			}
			assert.Equal(t, tt.chord, out[0].Key.String())
		})
	}
}

func TestTranslateUnknownKey(t *testing.T) {
	_, term := newSim(t)
	out := term.Translate(tcell.NewEventKey(tcell.KeyF20, 0, tcell.ModNone), nil, geometry.Offsets{})
	assert.Empty(t, out)
}

func TestTranslateMouseDrag(t *testing.T) {
	_, term := newSim(t)
	scroll := geometry.Offsets{Top: 40}

	out := term.Translate(tcell.NewEventMouse(3, 1, tcell.ButtonPrimary, tcell.ModNone), nil, scroll)
	require.Len(t, out, 1)
	assert.Equal(t, event.MouseDown, out[0].Kind)
	assert.Equal(t, 24.0, out[0].X)
	assert.Equal(t, 70.0, out[0].Y)
	assert.True(t, out[0].Pressed())

	out = term.Translate(tcell.NewEventMouse(6, 1, tcell.ButtonPrimary, tcell.ModNone), nil, scroll)
	require.Len(t, out, 1)
	assert.Equal(t, event.MouseMove, out[0].Kind)
	assert.Equal(t, 48.0, out[0].X)

	out = term.Translate(tcell.NewEventMouse(6, 1, tcell.ButtonNone, tcell.ModNone), nil, scroll)
	require.Len(t, out, 2)
	assert.Equal(t, event.SelectEnd, out[0].Kind)
	assert.Equal(t, event.MouseUp, out[1].Kind)
}

func TestTranslateMouseIgnoresOtherButtons(t *testing.T) {
	_, term := newSim(t)
	assert.Empty(t, term.Translate(tcell.NewEventMouse(1, 1, tcell.ButtonSecondary, tcell.ModNone), nil, geometry.Offsets{}))
	assert.Empty(t, term.Translate(tcell.NewEventMouse(1, 1, tcell.WheelUp, tcell.ModNone), nil, geometry.Offsets{}))
	// Motion without a button and no drag in progress.
	assert.Empty(t, term.Translate(tcell.NewEventMouse(2, 1, tcell.ButtonNone, tcell.ModNone), nil, geometry.Offsets{}))
}

func TestTranslateShiftClick(t *testing.T) {
	_, term := newSim(t)
	out := term.Translate(tcell.NewEventMouse(2, 0, tcell.ButtonPrimary, tcell.ModShift), nil, geometry.Offsets{})
	require.Len(t, out, 1)
	assert.True(t, out[0].Shift())
	assert.True(t, out[0].HasModifier(key.ModShift))
}

func TestTranslatePassive(t *testing.T) {
	_, term := newSim(t)
	out := term.Translate(tcell.NewEventResize(30, 10), nil, geometry.Offsets{})
	require.Len(t, out, 1)
	assert.Equal(t, event.Resize, out[0].Kind)

	out = term.Translate(tcell.NewEventPaste(true), nil, geometry.Offsets{})
	require.Len(t, out, 1)
	assert.Equal(t, event.Paste, out[0].Kind)

	assert.Empty(t, term.Translate(tcell.NewEventPaste(false), nil, geometry.Offsets{}))
	assert.Empty(t, term.Translate(tcell.NewEventInterrupt(nil), nil, geometry.Offsets{}))
}

func drawFixture() (*layout.Engine, *dom.Node) {
	bold := dom.NewElement("b", dom.NewText("lo"))
	p := dom.NewElement("p", dom.NewText("Hel"), bold)
	editable := dom.NewElement("div", p).SetAttr("contenteditable", "true")
	doc := dom.NewDocument()
	doc.AppendChild(editable)
	return layout.New(doc, layout.DefaultConfig()), editable
}

func TestDrawGlyphs(t *testing.T) {
	sim, term := newSim(t)
	geo, _ := drawFixture()
	layer := caret.NewLayer(caret.DefaultConfig())

	term.Draw(geo.Glyphs(), layer, geometry.Offsets{})

	var text []rune
	for col := range 5 {
		r, _, _, _ := sim.GetContent(col, 0) //nolint:staticcheck // GetContent is the correct API
		text = append(text, r)
	}
	assert.Equal(t, "Hello", string(text))

	_, _, plain, _ := sim.GetContent(0, 0) //nolint:staticcheck // GetContent is the correct API
	_, _, strong, _ := sim.GetContent(3, 0) //nolint:staticcheck // GetContent is the correct API
	_, _, attrs := plain.Decompose()
	assert.Zero(t, attrs&tcell.AttrBold)
	_, _, attrs = strong.Decompose()
	assert.NotZero(t, attrs&tcell.AttrBold)

	_, _, visible := sim.GetCursor()
	assert.False(t, visible)
}

func TestDrawHighlightAndCaret(t *testing.T) {
	sim, term := newSim(t)
	geo, _ := drawFixture()
	layer := caret.NewLayer(caret.DefaultConfig())
	layer.DrawBoxes([]geometry.Box{{Top: 8, Left: 0, Width: 16, Height: 20}})
	m := layer.NewMarker()
	m.Show(geometry.Box{Top: 8, Left: 32, Height: 20})

	term.Draw(geo.Glyphs(), layer, geometry.Offsets{})

	want := tcell.NewRGBColor(255, 153, 153)
	for col := range 2 {
		_, _, style, _ := sim.GetContent(col, 0) //nolint:staticcheck // GetContent is the correct API
		_, bg, _ := style.Decompose()
		assert.Equal(t, want, bg, "col %d", col)
	}
	_, _, style, _ := sim.GetContent(2, 0) //nolint:staticcheck // GetContent is the correct API
	_, bg, _ := style.Decompose()
	assert.NotEqual(t, want, bg)

	x, y, visible := sim.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 4, x)
	assert.Equal(t, 0, y)

	m.SetOpacity(0.2)
	term.Draw(geo.Glyphs(), layer, geometry.Offsets{})
	_, _, visible = sim.GetCursor()
	assert.False(t, visible)
}

func TestDrawScrolled(t *testing.T) {
	sim, term := newSim(t)
	geo, _ := drawFixture()
	layer := caret.NewLayer(caret.DefaultConfig())

	term.Draw(geo.Glyphs(), layer, geometry.Offsets{Left: 16})

	r, _, _, _ := sim.GetContent(0, 0) //nolint:staticcheck // GetContent is the correct API
	assert.Equal(t, 'l', r)
}

func TestInterruptWakesPoll(t *testing.T) {
	_, term := newSim(t)
	term.Interrupt()
	for range 4 {
		if _, ok := term.PollEvent().(*tcell.EventInterrupt); ok {
			return
		}
	}
	t.Fatal("interrupt not delivered")
}
