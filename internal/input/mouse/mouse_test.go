package mouse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/caret/internal/event"
	"github.com/dshills/caret/internal/input/key"
)

func kinds(evs []*event.Event) []event.Kind {
	out := make([]event.Kind, len(evs))
	for i, ev := range evs {
		out[i] = ev.Kind
	}
	return out
}

func TestButtonString(t *testing.T) {
	tests := []struct {
		button   Button
		expected string
	}{
		{ButtonNone, "none"},
		{ButtonLeft, "left"},
		{ButtonMiddle, "middle"},
		{ButtonRight, "right"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.button.String(); got != tt.expected {
				t.Errorf("Button.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPositionDistance(t *testing.T) {
	a := Position{X: 1, Y: 2}
	b := Position{X: 4, Y: -2}
	assert.Equal(t, 7.0, a.Distance(b))
	assert.Equal(t, 7.0, b.Distance(a))
}

func TestClickCounting(t *testing.T) {
	base := time.Unix(100, 0)
	h := NewHandler(DefaultConfig())
	press := func(x float64, at time.Duration) event.Kind {
		evs := h.Handle(Event{Position: Position{X: x, Y: 10}, Button: ButtonLeft, Action: ActionPress, Timestamp: base.Add(at)}, nil)
		require.Len(t, evs, 1)
		h.Handle(Event{Position: Position{X: x, Y: 10}, Button: ButtonLeft, Action: ActionRelease, Timestamp: base.Add(at)}, nil)
		return evs[0].Kind
	}

	assert.Equal(t, event.MouseDown, press(10, 0))
	assert.Equal(t, event.SelectWord, press(11, 100*time.Millisecond))
	assert.Equal(t, event.SelectBlock, press(12, 200*time.Millisecond))
	assert.Equal(t, event.MouseDown, press(12, 300*time.Millisecond))

	// too slow
	assert.Equal(t, event.MouseDown, press(12, 2*time.Second))
	// too far
	assert.Equal(t, event.MouseDown, press(40, 2100*time.Millisecond))
}

func TestDragEmitsSelectEnd(t *testing.T) {
	h := NewHandler(DefaultConfig())
	now := time.Unix(5, 0)

	evs := h.Handle(Event{Position: Position{X: 50, Y: 10}, Button: ButtonLeft, Action: ActionPress, Timestamp: now, Modifiers: key.ModShift}, nil)
	require.Len(t, evs, 1)
	assert.Equal(t, event.MouseDown, evs[0].Kind)
	assert.True(t, evs[0].Pressed())
	assert.True(t, evs[0].Shift())
	assert.False(t, h.Dragging())

	evs = h.Handle(Event{Position: Position{X: 20, Y: 10}, Button: ButtonLeft, Action: ActionMove, Timestamp: now}, nil)
	require.Len(t, evs, 1)
	assert.Equal(t, event.MouseMove, evs[0].Kind)
	assert.True(t, evs[0].Pressed())
	assert.True(t, h.Dragging())

	evs = h.Handle(Event{Position: Position{X: 20, Y: 10}, Button: ButtonLeft, Action: ActionRelease, Timestamp: now}, nil)
	assert.Equal(t, []event.Kind{event.SelectEnd, event.MouseUp}, kinds(evs))
	assert.Equal(t, 20.0, evs[0].X)
	assert.False(t, h.Dragging())
}

func TestPlainClickRelease(t *testing.T) {
	h := NewHandler(DefaultConfig())
	h.Handle(Event{Button: ButtonLeft, Action: ActionPress}, nil)
	evs := h.Handle(Event{Button: ButtonLeft, Action: ActionRelease}, nil)
	assert.Equal(t, []event.Kind{event.MouseUp}, kinds(evs))
}

func TestIgnoredInput(t *testing.T) {
	h := NewHandler(DefaultConfig())
	assert.Nil(t, h.Handle(Event{Button: ButtonRight, Action: ActionPress}, nil))
	assert.Nil(t, h.Handle(Event{Button: ButtonLeft, Action: ActionMove}, nil), "hover without press")
	assert.Nil(t, h.Handle(Event{Action: ActionNone}, nil))

	h.Handle(Event{Button: ButtonLeft, Action: ActionPress}, nil)
	h.Reset()
	assert.Nil(t, h.Handle(Event{Position: Position{X: 3}, Button: ButtonLeft, Action: ActionMove}, nil))
}
