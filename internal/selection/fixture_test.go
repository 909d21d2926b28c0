package selection

import (
	"testing"

	"github.com/dshills/caret/internal/animation"
	"github.com/dshills/caret/internal/caret"
	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/dom/boundary"
	"github.com/dshills/caret/internal/event"
	"github.com/dshills/caret/internal/geometry"
	"github.com/dshills/caret/internal/html"
	"github.com/dshills/caret/internal/input/key"
	"github.com/dshills/caret/internal/layout"
	"github.com/dshills/caret/internal/traversing"
)

// recordingGeometry is the reference layout with scroll requests recorded.
type recordingGeometry struct {
	*layout.Engine
	scrolls []geometry.Offsets
}

func (g *recordingGeometry) ScrollTo(x, y float64) {
	g.scrolls = append(g.scrolls, geometry.Offsets{Left: x, Top: y})
	g.Engine.ScrollTo(x, y)
}

type fixture struct {
	doc      *dom.Node
	editable *dom.Node
	geo      *recordingGeometry
	sched    *animation.ManualScheduler
	engine   *Engine
}

// newFixture lays out an editable div holding children. With the default
// metrics glyphs are 8 wide, lines 20 tall, and paragraphs have 8 of
// margin above and below.
func newFixture(t *testing.T, width float64, children ...*dom.Node) *fixture {
	t.Helper()
	editable := dom.NewElement("div", children...).SetAttr("contenteditable", "true")
	doc := dom.NewDocument()
	doc.AppendChild(editable)
	cfg := layout.DefaultConfig()
	if width > 0 {
		cfg.Viewport.Width = width
	}
	geo := &recordingGeometry{Engine: layout.New(doc, cfg)}
	sched := animation.NewManualScheduler()
	return &fixture{
		doc:      doc,
		editable: editable,
		geo:      geo,
		sched:    sched,
		engine: New(html.Tree{}, traversing.Navigator{}, geo,
			WithScheduler(sched),
			WithLayer(caret.NewLayer(caret.DefaultConfig())),
		),
	}
}

func (f *fixture) keydown(k key.Key, mods key.Modifier) *event.Event {
	return event.NewKey(key.NewSpecialEvent(k, mods), f.editable)
}

func (f *fixture) pointer(kind event.Kind, x, y float64, mods key.Modifier) *event.Event {
	ev := event.NewPointer(kind, x, y, mods, f.editable)
	if kind == event.MouseDown || kind == event.MouseMove {
		ev.Buttons = 1
	}
	return ev
}

func (f *fixture) top(t *testing.T, b boundary.Boundary) float64 {
	t.Helper()
	box, ok := f.engine.boxOf(b)
	if !ok {
		t.Fatalf("no box for %s", b)
	}
	return box.Top
}

func pair(a, b boundary.Boundary) [2]boundary.Boundary {
	return [2]boundary.Boundary{a, b}
}

func at(n *dom.Node, off int) boundary.Boundary {
	return boundary.Raw(n, off)
}
