// Package caret provides the caret marker, its blink cycle and the
// highlight boxes drawn over a selected range.
package caret

import (
	"sync"
	"time"

	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/caret/internal/geometry"
	"github.com/dshills/caret/internal/overrides"
)

// Config holds caret configuration.
type Config struct {
	// Width is the caret width in layout units.
	Width float64

	// BlinkEnabled enables the blink cycle.
	BlinkEnabled bool

	// StartDelay is the pause between a selection update and the first
	// blink.
	StartDelay time.Duration

	// VisibleHold is how long the caret stays fully visible.
	VisibleHold time.Duration

	// HiddenHold is how long the caret stays fully hidden.
	HiddenHold time.Duration

	// FadeDuration is the length of each fade in or out.
	FadeDuration time.Duration

	// Color is the fallback caret color.
	Color string

	// HighlightColor is the fill of selection boxes.
	HighlightColor string

	// HighlightOpacity is the opacity of selection boxes.
	HighlightOpacity float64
}

// DefaultConfig returns the standard caret appearance and blink timings.
func DefaultConfig() Config {
	return Config{
		Width:            2,
		BlinkEnabled:     true,
		StartDelay:       50 * time.Millisecond,
		VisibleHold:      500 * time.Millisecond,
		HiddenHold:       300 * time.Millisecond,
		FadeDuration:     100 * time.Millisecond,
		Color:            "black",
		HighlightColor:   "red",
		HighlightOpacity: 0.4,
	}
}

// Style is the override-driven appearance of the caret.
type Style struct {
	// Padding widens the caret for bold text.
	Padding float64
	// Rotate slants the caret for italic text, in degrees.
	Rotate float64
	// Color fills the caret.
	Color colorful.Color
}

// StylesFromOverrides derives the caret appearance from the formatting in
// effect at the caret: bold pads it, italic slants it and color fills it.
// A missing or unparseable color falls back to black.
func StylesFromOverrides(m map[string]string) Style {
	s := Style{Color: Black}
	if overrides.Enabled(m, overrides.Bold) {
		s.Padding = 1.5
	}
	if overrides.Enabled(m, overrides.Italic) {
		s.Rotate = 16
	}
	if c, err := ParseColor(m[overrides.Color]); err == nil {
		s.Color = c
	}
	return s
}

// State is a snapshot of a marker for drawing.
type State struct {
	ID      uuid.UUID
	Box     geometry.Box
	Visible bool
	Opacity float64
	Style   Style
}

// Marker is the caret element of one editing context.
type Marker struct {
	mu sync.RWMutex

	id      uuid.UUID
	width   float64
	box     geometry.Box
	visible bool
	opacity float64
	style   Style

	onChange func()
}

func newMarker(width float64, onChange func()) *Marker {
	return &Marker{
		id:       uuid.New(),
		width:    width,
		opacity:  1,
		style:    Style{Color: Black},
		onChange: onChange,
	}
}

// ID returns the marker's identifier.
func (m *Marker) ID() uuid.UUID { return m.id }

// Show positions the marker over a caret box and makes it visible.
func (m *Marker) Show(box geometry.Box) {
	m.mu.Lock()
	box.Width = m.width
	m.box = box
	m.visible = true
	m.mu.Unlock()
	m.changed()
}

// Reveal makes the marker visible where it is.
func (m *Marker) Reveal() {
	m.mu.Lock()
	m.visible = true
	m.mu.Unlock()
	m.changed()
}

// Hide makes the marker invisible.
func (m *Marker) Hide() {
	m.mu.Lock()
	m.visible = false
	m.mu.Unlock()
	m.changed()
}

// Visible reports whether the marker is displayed.
func (m *Marker) Visible() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.visible
}

// SetStyle updates the override-driven appearance.
func (m *Marker) SetStyle(s Style) {
	m.mu.Lock()
	m.style = s
	m.mu.Unlock()
	m.changed()
}

// SetOpacity updates the blink opacity.
func (m *Marker) SetOpacity(v float64) {
	m.mu.Lock()
	if m.opacity == v {
		m.mu.Unlock()
		return
	}
	m.opacity = v
	m.mu.Unlock()
	m.changed()
}

// Opacity returns the blink opacity.
func (m *Marker) Opacity() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.opacity
}

// State returns a snapshot of the marker.
func (m *Marker) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{
		ID:      m.id,
		Box:     m.box,
		Visible: m.visible,
		Opacity: m.opacity,
		Style:   m.style,
	}
}

func (m *Marker) changed() {
	if m.onChange != nil {
		m.onChange()
	}
}
