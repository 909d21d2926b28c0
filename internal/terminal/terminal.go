// Package terminal runs the selection engine on a tcell screen.
//
// Document coordinates map onto cells through Metrics: one cell is one
// glyph advance wide and one line tall. Terminal translates tcell input
// into normalized editor events and draws the laid out glyphs, the
// highlight boxes and the caret.
package terminal

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/caret/internal/geometry"
	"github.com/dshills/caret/internal/input/mouse"
)

// Metrics is the size of one cell in document units.
type Metrics struct {
	CellWidth  float64
	CellHeight float64
}

// Terminal owns a tcell screen.
type Terminal struct {
	mu      sync.Mutex
	screen  tcell.Screen
	metrics Metrics

	mouse   *mouse.Handler
	buttons tcell.ButtonMask
}

// New wraps an initialized screen.
func New(screen tcell.Screen, metrics Metrics, mc mouse.Config) *Terminal {
	return &Terminal{
		screen:  screen,
		metrics: metrics,
		mouse:   mouse.NewHandler(mc),
	}
}

// Open creates and initializes the terminal screen with mouse and
// bracketed paste enabled.
func Open(metrics Metrics, mc mouse.Config) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.EnablePaste()
	return New(screen, metrics, mc), nil
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Screen returns the underlying screen.
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Size returns the screen size in document units.
func (t *Terminal) Size() geometry.Size {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	return geometry.Size{
		Width:  float64(w) * t.metrics.CellWidth,
		Height: float64(h) * t.metrics.CellHeight,
	}
}

// PollEvent blocks for the next screen event.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Interrupt wakes PollEvent, typically to redraw after a blink step. It
// never blocks; a full queue drops the wakeup.
func (t *Terminal) Interrupt() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// toCell converts a document position to a cell.
func (t *Terminal) toCell(x, y float64, scroll geometry.Offsets) (int, int) {
	return int(math.Floor((x - scroll.Left) / t.metrics.CellWidth)),
		int(math.Floor((y - scroll.Top) / t.metrics.CellHeight))
}

// toDocument converts a cell to the document position of its left edge at
// mid height.
func (t *Terminal) toDocument(col, row int, scroll geometry.Offsets) (float64, float64) {
	return float64(col)*t.metrics.CellWidth + scroll.Left,
		(float64(row)+0.5)*t.metrics.CellHeight + scroll.Top
}
