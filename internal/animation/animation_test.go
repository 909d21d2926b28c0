package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualSchedulerOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []string
	s.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	s.AfterFunc(10*time.Millisecond, func() {
		got = append(got, "a")
		s.AfterFunc(5*time.Millisecond, func() { got = append(got, "b") })
	})
	stopped := s.AfterFunc(20*time.Millisecond, func() { got = append(got, "x") })
	require.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())

	s.Advance(25 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, s.Pending())

	s.Advance(5 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, time.Unix(0, 0).Add(30*time.Millisecond), s.Now())
}

func TestAnimateLinear(t *testing.T) {
	s := NewManualScheduler()
	var values, percents []float64

	h := Animate(s, 1, 0, EaseLinear, 100*time.Millisecond, 25*time.Millisecond,
		func(value, percent float64, _ *State) bool {
			values = append(values, value)
			percents = append(percents, percent)
			return false
		})

	s.Advance(time.Second)
	assert.Equal(t, []float64{1, 0.75, 0.5, 0.25, 0}, values)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, percents)
	assert.True(t, h.Done())
	assert.Equal(t, 0, s.Pending())
}

func TestAnimateStop(t *testing.T) {
	s := NewManualScheduler()
	frames := 0
	h := Animate(s, 0, 1, nil, 100*time.Millisecond, 10*time.Millisecond,
		func(float64, float64, *State) bool {
			frames++
			return false
		})

	s.Advance(20 * time.Millisecond)
	h.Stop()
	h.Stop()
	s.Advance(time.Second)

	assert.Equal(t, 3, frames)
	assert.Equal(t, 0, s.Pending())
}

func TestAnimateTickStops(t *testing.T) {
	s := NewManualScheduler()
	frames := 0
	Animate(s, 0, 1, EaseInOut, 100*time.Millisecond, 10*time.Millisecond,
		func(_, _ float64, state *State) bool {
			frames++
			return state.Frame == 1
		})

	s.Advance(time.Second)
	assert.Equal(t, 2, frames)
}

func TestEaseInOut(t *testing.T) {
	assert.InDelta(t, 0, EaseInOut(0), 1e-9)
	assert.InDelta(t, 0.5, EaseInOut(0.5), 1e-9)
	assert.InDelta(t, 1, EaseInOut(1), 1e-9)
}
