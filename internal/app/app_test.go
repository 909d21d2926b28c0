package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/caret/internal/config"
	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/dom/boundary"
	"github.com/dshills/caret/internal/input/mouse"
	"github.com/dshills/caret/internal/selection"
	"github.com/dshills/caret/internal/terminal"
)

type testApp struct {
	sim  tcell.SimulationScreen
	app  *Application
	text *dom.Node
}

func newTestApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(20, 5)
	t.Cleanup(sim.Fini)

	text := dom.NewText("Hello world")
	doc := dom.NewDocument()
	doc.AppendChild(dom.NewElement("div", dom.NewElement("p", text)).SetAttr("contenteditable", "true"))

	term := terminal.New(sim, terminal.Metrics{CellWidth: 8, CellHeight: 20}, mouse.DefaultConfig())
	a, err := New(cfg, doc, term)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return &testApp{sim: sim, app: a, text: text}
}

func (ta *testApp) key(t *testing.T, k tcell.Key, r rune, mod tcell.ModMask) {
	t.Helper()
	require.NoError(t, ta.app.HandleEvent(context.Background(), tcell.NewEventKey(k, r, mod)))
}

func (ta *testApp) mouse(t *testing.T, col, row int, btn tcell.ButtonMask) {
	t.Helper()
	require.NoError(t, ta.app.HandleEvent(context.Background(), tcell.NewEventMouse(col, row, btn, tcell.ModNone)))
}

func (ta *testApp) at(off int) boundary.Boundary {
	return boundary.Create(ta.text, off)
}

func TestNewPlacesCaretAtStart(t *testing.T) {
	ta := newTestApp(t, config.Default())
	sel := ta.app.Selection()
	assert.Equal(t, [2]boundary.Boundary{ta.at(0), ta.at(0)}, sel.Boundaries)
	assert.True(t, sel.Caret.Visible())
}

func TestNewWithoutElement(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	defer sim.Fini()

	term := terminal.New(sim, terminal.Metrics{CellWidth: 8, CellHeight: 20}, mouse.DefaultConfig())
	_, err := New(config.Default(), dom.NewDocument(), term)
	assert.ErrorIs(t, err, ErrNoEditable)
}

func TestFirstElementBecomesEditable(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	defer sim.Fini()

	p := dom.NewElement("p", dom.NewText("plain"))
	doc := dom.NewDocument()
	doc.AppendChild(p)
	term := terminal.New(sim, terminal.Metrics{CellWidth: 8, CellHeight: 20}, mouse.DefaultConfig())
	a, err := New(config.Default(), doc, term)
	require.NoError(t, err)
	defer a.Close()

	assert.Same(t, p, a.Editable())
	assert.Equal(t, "true", p.Attr("contenteditable"))
}

func TestKeysMoveCaret(t *testing.T) {
	ta := newTestApp(t, config.Default())

	ta.key(t, tcell.KeyRight, 0, tcell.ModNone)
	sel := ta.app.Selection()
	assert.Equal(t, [2]boundary.Boundary{ta.at(1), ta.at(1)}, sel.Boundaries)
	assert.Empty(t, ta.app.engine.Layer().Boxes())

	ta.key(t, tcell.KeyRight, 0, tcell.ModShift)
	ta.key(t, tcell.KeyRight, 0, tcell.ModShift)
	sel = ta.app.Selection()
	assert.Equal(t, [2]boundary.Boundary{ta.at(1), ta.at(3)}, sel.Boundaries)
	assert.Equal(t, selection.FocusEnd, sel.Focus)
	assert.NotEmpty(t, ta.app.engine.Layer().Boxes())

	ta.key(t, tcell.KeyEnd, 0, tcell.ModNone)
	assert.Equal(t, [2]boundary.Boundary{ta.at(11), ta.at(11)}, ta.app.Selection().Boundaries)
	assert.Empty(t, ta.app.engine.Layer().Boxes())
}

func TestMouseDrag(t *testing.T) {
	ta := newTestApp(t, config.Default())

	ta.mouse(t, 2, 0, tcell.ButtonPrimary)
	ta.mouse(t, 6, 0, tcell.ButtonPrimary)
	assert.True(t, ta.app.Selection().Dragging)
	ta.mouse(t, 6, 0, tcell.ButtonNone)

	sel := ta.app.Selection()
	assert.False(t, sel.Dragging)
	assert.Equal(t, [2]boundary.Boundary{ta.at(2), ta.at(6)}, sel.Boundaries)
	assert.True(t, sel.Caret.Visible())
	assert.NotEmpty(t, ta.app.engine.Layer().Boxes())
}

func TestQuitKeys(t *testing.T) {
	ta := newTestApp(t, config.Default())
	for _, k := range []tcell.Key{tcell.KeyEscape, tcell.KeyCtrlC} {
		err := ta.app.HandleEvent(context.Background(), tcell.NewEventKey(k, 0, tcell.ModNone))
		assert.ErrorIs(t, err, ErrQuit)
	}
}

func TestResizeReflows(t *testing.T) {
	ta := newTestApp(t, config.Default())
	ta.sim.SetSize(4, 5)
	require.NoError(t, ta.app.HandleEvent(context.Background(), tcell.NewEventResize(4, 5)))
	assert.Equal(t, 32.0, ta.app.geo.Viewport().Width)
}

func TestReload(t *testing.T) {
	ta := newTestApp(t, config.Default())
	ta.key(t, tcell.KeyRight, 0, tcell.ModNone)

	cfg := config.Default()
	cfg.Keymap = map[string]string{"ctrl+e": "end"}
	ta.app.Reload(cfg, nil)

	sel := ta.app.Selection()
	assert.Equal(t, [2]boundary.Boundary{ta.at(1), ta.at(1)}, sel.Boundaries, "selection survives the reload")

	ta.key(t, tcell.KeyCtrlE, 0, tcell.ModCtrl)
	assert.Equal(t, [2]boundary.Boundary{ta.at(11), ta.at(11)}, ta.app.Selection().Boundaries)
}

func TestReloadErrorKeepsConfig(t *testing.T) {
	ta := newTestApp(t, config.Default())
	before := ta.app.engine

	ta.app.Reload(nil, errors.New("bad file"))
	assert.Same(t, before, ta.app.engine)

	cfg := config.Default()
	cfg.Keymap = map[string]string{"ctrl+e": "fly"}
	ta.app.Reload(cfg, nil)
	assert.Same(t, before, ta.app.engine)
}

func TestDrawShowsDocument(t *testing.T) {
	cfg := config.Default()
	cfg.Caret.BlinkEnabled = false
	ta := newTestApp(t, cfg)
	ta.app.Draw()

	r, _, _, _ := ta.sim.GetContent(0, 0) //nolint:staticcheck // GetContent is the correct API
	assert.Equal(t, 'H', r)
	x, y, visible := ta.sim.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestRunQuitsOnEscape(t *testing.T) {
	ta := newTestApp(t, config.Default())
	ta.sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- ta.app.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ta := newTestApp(t, config.Default())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- ta.app.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}
