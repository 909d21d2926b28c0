// Package app runs an editable document on a terminal: it feeds screen
// events through the selection engine and redraws the document, the
// selection highlight and the caret.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/dshills/caret/internal/caret"
	"github.com/dshills/caret/internal/config"
	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/dom/boundary"
	"github.com/dshills/caret/internal/html"
	"github.com/dshills/caret/internal/layout"
	"github.com/dshills/caret/internal/selection"
	"github.com/dshills/caret/internal/terminal"
	"github.com/dshills/caret/internal/traversing"
)

// ErrQuit is returned by HandleEvent when the user asks to leave.
var ErrQuit = errors.New("quit requested")

// ErrNoEditable is returned when a document has no element to edit.
var ErrNoEditable = errors.New("document has no element")

// Application owns one document and its selection.
type Application struct {
	mu sync.Mutex

	cfg      *config.Config
	logger   *slog.Logger
	tracer   trace.Tracer
	term     *terminal.Terminal
	doc      *dom.Node
	editable *dom.Node

	geo    *layout.Engine
	engine *selection.Engine
	sel    *selection.Selection
}

// Option configures an Application.
type Option func(*Application)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Application) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithTracer sets the tracer passed on to the selection engine.
func WithTracer(tracer trace.Tracer) Option {
	return func(a *Application) {
		a.tracer = tracer
	}
}

// New prepares doc for editing on term. The first editing host in doc is
// edited; without one the first element becomes the editing host. The
// caret starts at the beginning of the editable content.
func New(cfg *config.Config, doc *dom.Node, term *terminal.Terminal, opts ...Option) (*Application, error) {
	a := &Application{
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
		term:   term,
		doc:    doc,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.editable = findEditable(doc)
	if a.editable == nil {
		return nil, ErrNoEditable
	}
	if err := a.build(cfg); err != nil {
		return nil, err
	}
	if start := firstPosition(a.editable); !start.IsZero() {
		a.sel = a.engine.Select(a.sel, start, start, selection.FocusEnd)
	}
	return a, nil
}

// build creates the layout and engine for cfg, carrying the current
// selection over.
func (a *Application) build(cfg *config.Config) error {
	km, err := cfg.KeymapBindings()
	if err != nil {
		return err
	}
	lc := cfg.LayoutConfig()
	lc.Viewport = a.term.Size()
	geo := layout.New(a.doc, lc)

	layer := caret.NewLayer(cfg.CaretConfig())
	layer.OnChange(a.term.Interrupt)

	opts := []selection.Option{
		selection.WithLogger(a.logger.With("component", "selection")),
		selection.WithKeymap(km),
		selection.WithLayer(layer),
	}
	if a.tracer != nil {
		opts = append(opts, selection.WithTracer(a.tracer))
	}
	engine := selection.New(html.Tree{}, traversing.Navigator{}, geo, opts...)
	sel := engine.Context(a.doc)

	if a.sel != nil {
		sel.State = a.sel.State
		a.sel.Close()
	}
	if old := a.geo; old != nil {
		scroll := old.ScrollOffsets()
		geo.ScrollTo(scroll.Left, scroll.Top)
	}
	a.cfg, a.geo, a.engine, a.sel = cfg, geo, engine, sel
	if !sel.IsZero() {
		a.sel = engine.Select(sel, sel.Boundaries[0], sel.Boundaries[1], sel.Focus)
		a.highlight()
	}
	return nil
}

// Selection returns the current selection.
func (a *Application) Selection() *selection.Selection {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sel
}

// Editable returns the editing host.
func (a *Application) Editable() *dom.Node { return a.editable }

// Reload applies a reloaded configuration. A failed reload keeps the
// current configuration.
func (a *Application) Reload(cfg *config.Config, err error) {
	if err != nil {
		a.logger.Warn("config reload failed", "error", err)
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.build(cfg); err != nil {
		a.logger.Warn("config reload rejected", "error", err)
		return
	}
	a.logger.Info("config reloaded")
	a.term.Interrupt()
}

// HandleEvent feeds one screen event through the engine. It returns
// ErrQuit for Escape and Ctrl+C.
func (a *Application) HandleEvent(ctx context.Context, ev tcell.Event) error {
	if k, ok := ev.(*tcell.EventKey); ok && (k.Key() == tcell.KeyEscape || k.Key() == tcell.KeyCtrlC) {
		return ErrQuit
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := ev.(*tcell.EventResize); ok {
		a.term.Screen().Sync()
		a.geo.SetViewport(a.term.Size())
	}
	events := a.term.Translate(ev, a.editable, a.geo.ScrollOffsets())
	for _, e := range events {
		if sel, ok := a.engine.Update(ctx, a.sel, e); ok {
			a.sel = sel
		}
	}
	// Layer changes post interrupts, so only real input may touch it.
	if len(events) > 0 {
		a.highlight()
	}
	return nil
}

func (a *Application) highlight() {
	if a.sel.IsZero() || a.sel.Boundaries[0].Equal(a.sel.Boundaries[1]) {
		a.engine.Layer().ClearBoxes()
		return
	}
	r := a.sel.Range()
	a.engine.Highlight(r.Start, r.End)
}

// Draw renders the current frame.
func (a *Application) Draw() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.term.Draw(a.geo.Glyphs(), a.engine.Layer(), a.geo.ScrollOffsets())
}

// Run draws and handles events until the user quits or ctx is done.
func (a *Application) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, a.term.Interrupt)
	defer stop()

	a.Draw()
	for {
		ev := a.term.PollEvent()
		if ev == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := a.HandleEvent(ctx, ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		a.Draw()
	}
}

// Close stops the caret blink.
func (a *Application) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sel.Close()
}

func findEditable(doc *dom.Node) *dom.Node {
	var first *dom.Node
	for n := doc; n != nil; n = dom.Next(n) {
		if html.IsEditingHost(n) {
			return n
		}
		if first == nil && n.IsElement() {
			first = n
		}
	}
	if first != nil {
		first.SetAttr("contenteditable", "true")
	}
	return first
}

func firstPosition(editable *dom.Node) boundary.Boundary {
	for n := dom.Next(editable); n != nil && dom.Contains(editable, n); n = dom.Next(n) {
		if n.IsText() && html.IsRendered(n) {
			return boundary.FromStartOfNode(n)
		}
	}
	return boundary.Boundary{}
}
