package caret

import (
	"sync/atomic"
	"testing"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/caret/internal/animation"
	"github.com/dshills/caret/internal/geometry"
)

func TestStylesFromOverrides(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]string
		want Style
	}{
		{"plain", map[string]string{}, Style{Color: Black}},
		{"bold", map[string]string{"bold": "true"}, Style{Padding: 1.5, Color: Black}},
		{"italic", map[string]string{"italic": "true"}, Style{Rotate: 16, Color: Black}},
		{"color", map[string]string{"color": "#ff0000"}, Style{Color: colorful.Color{R: 1}}},
		{"bad color", map[string]string{"color": "nope"}, Style{Color: Black}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StylesFromOverrides(tt.in)
			assert.Equal(t, tt.want.Padding, got.Padding)
			assert.Equal(t, tt.want.Rotate, got.Rotate)
			assert.Equal(t, tt.want.Color.Hex(), got.Color.Hex())
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"black", "#000000"},
		{"Red", "#ff0000"},
		{"#0f0", "#00ff00"},
		{"#336699", "#336699"},
		{"rgb(255, 0, 255)", "#ff00ff"},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, c.Hex(), tt.in)
	}

	for _, bad := range []string{"", "#12", "rgb(1,2)", "rgb(300,0,0)", "chartreuse-ish"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrInvalidColor, bad)
	}
}

func TestMarker(t *testing.T) {
	var changes atomic.Int32
	l := NewLayer(DefaultConfig())
	l.OnChange(func() { changes.Add(1) })
	m := l.NewMarker()

	assert.False(t, m.Visible())
	m.Show(geometry.Box{Top: 10, Left: 20, Height: 20})

	st := m.State()
	assert.True(t, st.Visible)
	assert.Equal(t, geometry.Box{Top: 10, Left: 20, Width: 2, Height: 20}, st.Box)
	assert.Equal(t, 1.0, st.Opacity)
	assert.Equal(t, int32(1), changes.Load())

	m.SetOpacity(1)
	assert.Equal(t, int32(1), changes.Load())
}

func TestHideAndUnhideCarets(t *testing.T) {
	l := NewLayer(DefaultConfig())
	shown := l.NewMarker()
	shown.Show(geometry.Box{})
	l.NewMarker()

	hidden := HideCarets(l)
	require.Len(t, hidden, 1)
	assert.Same(t, shown, hidden[0])
	assert.False(t, shown.Visible())

	UnhideCarets(hidden)
	assert.True(t, shown.Visible())

	l.RemoveMarker(shown)
	assert.Len(t, l.Markers(), 1)
}

func TestDrawBoxesReplacesPrevious(t *testing.T) {
	l := NewLayer(DefaultConfig())

	first := l.DrawBoxes([]geometry.Box{{Top: 0, Width: 10, Height: 20}, {Top: 20, Width: 5, Height: 20}})
	require.Len(t, first, 2)
	assert.Equal(t, 0.4, first[0].Opacity)
	assert.Equal(t, "#ff0000", first[0].Color.Hex())

	second := l.DrawBoxes([]geometry.Box{{Top: 40, Width: 3, Height: 20}})
	assert.Len(t, l.Boxes(), 1)
	assert.Equal(t, second[0].ID, l.Boxes()[0].ID)

	l.ClearBoxes()
	assert.Empty(t, l.Boxes())
}

func TestBlinkCycle(t *testing.T) {
	s := animation.NewManualScheduler()
	m := NewLayer(DefaultConfig()).NewMarker()
	b := NewBlinker(m, s, DefaultConfig())

	cycle := b.Start()
	assert.True(t, b.Running())

	s.Advance(549 * time.Millisecond)
	assert.Equal(t, 1.0, m.Opacity(), "holds before the first fade")

	s.Advance(61 * time.Millisecond)
	assert.InDelta(t, 0.4, m.Opacity(), 1e-9, "fading out")

	s.Advance(40 * time.Millisecond)
	assert.Equal(t, 0.0, m.Opacity(), "hidden after fading out")

	s.Advance(299 * time.Millisecond)
	assert.Equal(t, 0.0, m.Opacity(), "stays hidden")

	s.Advance(101 * time.Millisecond)
	assert.Equal(t, 1.0, m.Opacity(), "visible after fading in")

	s.Advance(600 * time.Millisecond)
	assert.Equal(t, 0.0, m.Opacity(), "next cycle")

	cycle.Stop()
	cycle.Stop()
	assert.Equal(t, 1.0, m.Opacity())
	assert.False(t, b.Running())
	assert.Equal(t, 0, s.Pending())
}

func TestBlinkRestartStopsPrevious(t *testing.T) {
	s := animation.NewManualScheduler()
	m := NewLayer(DefaultConfig()).NewMarker()
	b := NewBlinker(m, s, DefaultConfig())

	first := b.Start()
	s.Advance(600 * time.Millisecond)
	second := b.Start()

	assert.True(t, first.Stopped())
	assert.False(t, second.Stopped())
	assert.Equal(t, 1.0, m.Opacity())
	assert.Equal(t, 1, s.Pending())

	b.Stop()
	assert.Equal(t, 0, s.Pending())
}

func TestBlinkDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlinkEnabled = false
	s := animation.NewManualScheduler()
	m := NewLayer(cfg).NewMarker()

	c := NewBlinker(m, s, cfg).Start()

	assert.True(t, c.Stopped())
	assert.Equal(t, 0, s.Pending())
	s.Advance(time.Second)
	assert.Equal(t, 1.0, m.Opacity())
}
