package selection

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/dshills/caret/internal/animation"
	"github.com/dshills/caret/internal/caret"
	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/dom/boundary"
	"github.com/dshills/caret/internal/event"
	"github.com/dshills/caret/internal/geometry"
	"github.com/dshills/caret/internal/input/key"
	"github.com/dshills/caret/internal/overrides"
)

// Engine reduces input events to selection changes and keeps the caret
// presentation in sync. It holds no per-document state; each editing
// context owns a Selection created by Context.
type Engine struct {
	tree Tree
	nav  Navigator
	geo  Geometry

	keymap *Keymap
	layer  *caret.Layer
	sched  animation.Scheduler
	logger *slog.Logger
	tracer trace.Tracer
}

// New creates an engine over the given collaborators.
func New(tree Tree, nav Navigator, geo Geometry, opts ...Option) *Engine {
	e := &Engine{
		tree:   tree,
		nav:    nav,
		geo:    geo,
		keymap: DefaultKeymap(),
		layer:  caret.NewLayer(caret.DefaultConfig()),
		sched:  animation.RealScheduler{},
		logger: slog.New(slog.DiscardHandler),
		tracer: noop.NewTracerProvider().Tracer("selection"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Layer returns the presentation layer.
func (e *Engine) Layer() *caret.Layer { return e.layer }

// Keymap returns the key bindings.
func (e *Engine) Keymap() *Keymap { return e.keymap }

// Selection is the selection state of one editing context.
type Selection struct {
	ID       uuid.UUID
	Document *dom.Node

	State

	// Formatting and Overrides are pending styles that affect the caret's
	// appearance but not the content.
	Formatting []overrides.Override
	Overrides  []overrides.Override

	Caret    *caret.Marker
	Blinking *caret.Blinker

	layer *caret.Layer
}

// Context allocates a selection for doc with a hidden caret on the
// engine's layer.
func (e *Engine) Context(doc *dom.Node) *Selection {
	marker := e.layer.NewMarker()
	return &Selection{
		ID:       uuid.New(),
		Document: doc,
		State:    State{Focus: FocusEnd},
		Caret:    marker,
		Blinking: caret.NewBlinker(marker, e.sched, e.layer.Config()),
		layer:    e.layer,
	}
}

// Close stops blinking and removes the caret. It is safe to call twice.
func (s *Selection) Close() {
	s.Blinking.Stop()
	s.Caret.Hide()
	if s.layer != nil {
		s.layer.RemoveMarker(s.Caret)
		s.layer = nil
	}
}

// Focused returns the focused boundary.
func (s *Selection) Focused() boundary.Boundary {
	return s.Boundaries[s.Focus.index()]
}

// Range returns the selection as an ordered range.
func (s *Selection) Range() boundary.Range {
	return boundary.NewRange(s.Boundaries[0], s.Boundaries[1])
}

// IsSelection returns true if v is a selection created by Context.
func IsSelection(v any) bool {
	s, ok := v.(*Selection)
	return ok && s != nil && s.Caret != nil
}

// IsRange returns true if v is a range.
func IsRange(v any) bool {
	switch r := v.(type) {
	case boundary.Range:
		return true
	case *boundary.Range:
		return r != nil
	}
	return false
}

// HandleSelections applies ev to sel's state. It returns false if no
// handler exists for the event.
func (e *Engine) HandleSelections(sel *Selection, ev *event.Event) bool {
	next, handled := e.Reduce(sel.State, ev)
	sel.State = next
	return handled
}

// Update is the entry point for every input event. It reduces the event,
// then shows the caret at the focused boundary and scrolls it into view
// for events that move the caret. It returns false when nothing was
// presented: the event is unhandled, selection is suppressed, a drag is in
// progress, or the event only reveals the caret.
func (e *Engine) Update(ctx context.Context, sel *Selection, ev *event.Event) (*Selection, bool) {
	_, span := e.tracer.Start(ctx, "selection.update",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("event.kind", ev.Kind.String())),
	)
	defer span.End()

	handled := e.HandleSelections(sel, ev)
	span.SetAttributes(
		attribute.String("selection.focus", sel.Focus.String()),
		attribute.Bool("selection.collapsed", sel.Boundaries[0].Equal(sel.Boundaries[1])),
		attribute.Bool("event.handled", handled),
	)
	e.logger.Debug("event", "event", ev, "handled", handled, "focus", sel.Focus, "dragging", sel.Dragging)

	if ev.PreventSelection || sel.Dragging {
		return nil, false
	}
	if ev.Kind.IsNative() {
		sel.Caret.Reveal()
		return nil, false
	}
	if !handled || sel.IsZero() {
		return nil, false
	}
	sel = e.Select(sel, sel.Boundaries[0], sel.Boundaries[1], sel.Focus)
	if IsCaretMovingEvent(ev) {
		e.Focus(sel.Focused())
	}
	return sel, true
}

// Select sets the selection to [start, end] and shows the caret at the
// focused end. If that end is not editable the caret is hidden and the
// selection is left unchanged.
func (e *Engine) Select(sel *Selection, start, end boundary.Boundary, focus Focus) *Selection {
	b := end
	if focus == FocusStart {
		b = start
	}
	if b.IsZero() || !e.tree.IsEditable(b.Container) {
		sel.Blinking.Stop()
		sel.Caret.Hide()
		return sel
	}
	box, ok := e.boxOf(b)
	if !ok {
		e.logger.Debug("no caret box", "boundary", b)
		sel.Blinking.Stop()
		sel.Caret.Hide()
	} else {
		sel.Caret.Show(box)
		sel.Caret.SetStyle(caret.StylesFromOverrides(e.mapOverrides(b.Container, sel)))
		sel.Blinking.Start()
	}
	sel.Boundaries = [2]boundary.Boundary{start, end}
	sel.Focus = focus
	return sel
}

// mapOverrides collects the styles in effect at node. Without a color
// override the computed color of node is used.
func (e *Engine) mapOverrides(node *dom.Node, sel *Selection) map[string]string {
	m := overrides.Map(overrides.JoinToSet(sel.Formatting, overrides.Harvest(node), sel.Overrides))
	if m[overrides.Color] == "" {
		if node.IsText() {
			node = node.Parent()
		}
		if c := e.geo.ComputedStyle(node, "color"); c != "" {
			m[overrides.Color] = c
		}
	}
	return m
}

// Focus scrolls the viewport so b is visible, leaving a one-line margin on
// the side it crossed.
func (e *Engine) Focus(b boundary.Boundary) {
	box, ok := e.boxOf(b)
	if !ok {
		return
	}
	scroll := e.geo.ScrollOffsets()
	view := e.geo.Viewport()
	buffer := box.Height

	top, left := scroll.Top, scroll.Left
	moved := false
	switch {
	case box.Top < scroll.Top:
		top = box.Top - buffer
		moved = true
	case box.Top > scroll.Top+view.Height:
		top = box.Top - view.Height + 2*buffer
		moved = true
	}
	switch {
	case box.Left < scroll.Left:
		left = box.Left - buffer
		moved = true
	case box.Left > scroll.Left+view.Width:
		left = box.Left - view.Width + 2*buffer
		moved = true
	}
	if moved {
		e.geo.ScrollTo(left, top)
	}
}

// IsCaretMovingEvent returns true for events after which the caret should
// be scrolled into view.
func IsCaretMovingEvent(ev *event.Event) bool {
	switch ev.Kind {
	case event.KeyPress, event.Paste:
		return true
	case event.KeyDown:
	default:
		return false
	}
	k := ev.Key
	switch {
	case k.Key.IsArrowKey(), k.Key == key.KeyPageUp, k.Key == key.KeyPageDown, k.Key == key.KeyEnter:
		return true
	case k.Key == key.KeyRune && (k.Rune == 'z' || k.Rune == 'Z'):
		switch k.Modifiers {
		case key.ModMeta, key.ModCtrl, key.ModShift:
			return true
		}
	}
	return false
}

// closestLine returns the nearest line-breaking ancestor of n.
func (e *Engine) closestLine(n *dom.Node) *dom.Node {
	return e.tree.UpWhile(n, func(n *dom.Node) bool { return !e.tree.IsLinebreaking(n) })
}

// SelectionBoxes computes one box per visual line covered by [start, end].
func (e *Engine) SelectionBoxes(start, end boundary.Boundary) []geometry.Box {
	endBox, ok := e.boxOf(end)
	if !ok {
		return nil
	}
	var boxes []geometry.Box
	cur := start
	for i := 0; i < maxClimbSteps*maxClimbSteps; i++ {
		box, ok := e.boxOf(cur)
		if !ok {
			break
		}
		ln := e.closestLine(cur.Container)
		if ln == nil {
			break
		}
		lineLeft, lineWidth := e.geo.OffsetLeft(ln), e.geo.ElementWidth(ln)
		atEnd := endBox.Top < box.Top+box.Height

		var left, width float64
		switch {
		case atEnd && len(boxes) == 0:
			left = box.Left
			width = endBox.Left - left
		case atEnd:
			left = lineLeft
			width = endBox.Left - left
		case len(boxes) == 0:
			left = box.Left
			width = lineWidth - (left - lineLeft)
		default:
			left = lineLeft
			width = lineWidth
		}

		lb, okL := e.geo.BoundaryAt(left, box.Top)
		rb, okR := e.geo.BoundaryAt(left+width, box.Top)
		if !okL || !okR {
			break
		}
		lbox, okL := e.boxOf(lb)
		rbox, okR := e.boxOf(rb)
		if !okL || !okR {
			break
		}
		boxes = append(boxes, geometry.Box{
			Top:    box.Top,
			Left:   lbox.Left,
			Width:  rbox.Left - lbox.Left,
			Height: box.Height,
		})
		if atEnd {
			break
		}
		next, ok := e.climbStep(cur, box, false)
		if !ok {
			break
		}
		cur = next
	}
	return boxes
}

// Highlight replaces the highlight boxes on the layer with those covering
// [start, end].
func (e *Engine) Highlight(start, end boundary.Boundary) []*caret.Box {
	return e.layer.DrawBoxes(e.SelectionBoxes(start, end))
}

// HideCarets hides every visible caret on the engine's layer.
func (e *Engine) HideCarets() []*caret.Marker {
	return caret.HideCarets(e.layer)
}

// UnhideCarets shows carets hidden by HideCarets.
func (e *Engine) UnhideCarets(markers []*caret.Marker) {
	caret.UnhideCarets(markers)
}
