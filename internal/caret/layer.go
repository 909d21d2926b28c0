package caret

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/caret/internal/geometry"
)

// Box is a highlight drawn over part of a selected range.
type Box struct {
	ID      uuid.UUID
	Box     geometry.Box
	Color   colorful.Color
	Opacity float64
}

// Layer is the presentation surface that holds caret markers and
// highlight boxes above the document.
type Layer struct {
	mu sync.RWMutex

	config   Config
	markers  []*Marker
	boxes    []*Box
	onChange func()
}

// NewLayer creates an empty presentation layer.
func NewLayer(config Config) *Layer {
	return &Layer{config: config}
}

// Config returns the layer's caret configuration.
func (l *Layer) Config() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config
}

// OnChange registers f to be called whenever a marker or box changes. It
// may be called from timer goroutines.
func (l *Layer) OnChange(f func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = f
}

func (l *Layer) notify() {
	l.mu.RLock()
	f := l.onChange
	l.mu.RUnlock()
	if f != nil {
		f()
	}
}

// NewMarker adds a hidden caret marker to the layer.
func (l *Layer) NewMarker() *Marker {
	m := newMarker(l.Config().Width, l.notify)
	l.mu.Lock()
	l.markers = append(l.markers, m)
	l.mu.Unlock()
	return m
}

// RemoveMarker detaches m from the layer.
func (l *Layer) RemoveMarker(m *Marker) {
	l.mu.Lock()
	l.markers = slices.DeleteFunc(l.markers, func(x *Marker) bool { return x == m })
	l.mu.Unlock()
	l.notify()
}

// Markers returns the markers on the layer.
func (l *Layer) Markers() []*Marker {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.markers)
}

// DrawBoxes replaces the highlight boxes on the layer with boxes.
func (l *Layer) DrawBoxes(boxes []geometry.Box) []*Box {
	color, err := ParseColor(l.Config().HighlightColor)
	if err != nil {
		color = colorful.Color{R: 1}
	}
	out := make([]*Box, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, &Box{
			ID:      uuid.New(),
			Box:     b,
			Color:   color,
			Opacity: l.Config().HighlightOpacity,
		})
	}
	l.mu.Lock()
	l.boxes = out
	l.mu.Unlock()
	l.notify()
	return slices.Clone(out)
}

// ClearBoxes removes every highlight box.
func (l *Layer) ClearBoxes() {
	l.mu.Lock()
	l.boxes = nil
	l.mu.Unlock()
	l.notify()
}

// Boxes returns the highlight boxes on the layer.
func (l *Layer) Boxes() []*Box {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.boxes)
}

// HideCarets hides every visible marker on the layer and returns them so
// they can be restored with UnhideCarets.
func HideCarets(l *Layer) []*Marker {
	var hidden []*Marker
	for _, m := range l.Markers() {
		if m.Visible() {
			m.Hide()
			hidden = append(hidden, m)
		}
	}
	return hidden
}

// UnhideCarets makes the given markers visible again.
func UnhideCarets(markers []*Marker) {
	for _, m := range markers {
		m.Reveal()
	}
}
