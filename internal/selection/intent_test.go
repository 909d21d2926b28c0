package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/caret/internal/event"
	"github.com/dshills/caret/internal/input/key"
)

func TestKeymapLookup(t *testing.T) {
	km := DefaultKeymap()

	tests := []struct {
		name string
		ev   key.Event
		want string
		ok   bool
	}{
		{"plain left", key.NewSpecialEvent(key.KeyLeft, key.ModNone), "step-left", true},
		{"shift left", key.NewSpecialEvent(key.KeyLeft, key.ModShift), "step-left", true},
		{"meta left", key.NewSpecialEvent(key.KeyLeft, key.ModMeta), "home", true},
		{"meta shift left", key.NewSpecialEvent(key.KeyLeft, key.ModMeta|key.ModShift), "home", true},
		{"ctrl meta left", key.NewSpecialEvent(key.KeyLeft, key.ModMeta|key.ModCtrl), "step-left", true},
		{"meta up", key.NewSpecialEvent(key.KeyUp, key.ModMeta), "jump-up", true},
		{"shift down", key.NewSpecialEvent(key.KeyDown, key.ModShift), "climb-down", true},
		{"page down", key.NewSpecialEvent(key.KeyPageDown, key.ModNone), "jump-down", true},
		{"shift end", key.NewSpecialEvent(key.KeyEnd, key.ModShift), "end", true},
		{"rune", key.NewRuneEvent('x', key.ModNone), "none", false},
		{"enter", key.NewSpecialEvent(key.KeyEnter, key.ModNone), "none", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := km.Lookup(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, cmd.String())
		})
	}
}

func TestNormalize(t *testing.T) {
	km := DefaultKeymap()

	in, ok := km.Normalize(event.NewKey(key.NewSpecialEvent(key.KeyRight, key.ModCtrl|key.ModShift), nil))
	require.True(t, ok)
	assert.Equal(t, Intent{Motion: MotionStep, Direction: DirRight, Extend: true, Word: true}, in)

	in, ok = km.Normalize(event.NewKey(key.NewSpecialEvent(key.KeyLeft, key.ModAlt), nil))
	require.True(t, ok)
	assert.True(t, in.Word)
	assert.False(t, in.Extend)

	_, ok = km.Normalize(&event.Event{Kind: event.KeyPress, Key: key.NewSpecialEvent(key.KeyLeft, key.ModNone)})
	assert.False(t, ok, "only keydown events carry intents")
}

func TestKeymapMerge(t *testing.T) {
	km := DefaultKeymap()
	require.NoError(t, km.Merge(map[string]string{
		"ctrl+a": "home",
		"ctrl+e": "end",
		"left":   "none",
	}))

	cmd, ok := km.Lookup(key.NewRuneEvent('a', key.ModCtrl))
	assert.True(t, ok)
	assert.Equal(t, "home", cmd.String())

	cmd, ok = km.Lookup(key.NewRuneEvent('E', key.ModCtrl))
	assert.True(t, ok)
	assert.Equal(t, "end", cmd.String())

	_, ok = km.Lookup(key.NewSpecialEvent(key.KeyLeft, key.ModNone))
	assert.False(t, ok, "an exact none binding shadows the wildcard")

	_, ok = km.Lookup(key.NewSpecialEvent(key.KeyLeft, key.ModShift))
	assert.True(t, ok)
}

func TestKeymapMergeErrors(t *testing.T) {
	km := NewKeymap()

	err := km.Merge(map[string]string{"left": "fly"})
	assert.ErrorIs(t, err, ErrUnknownCommand)

	err = km.Merge(map[string]string{"hyper+left": "home"})
	assert.ErrorIs(t, err, key.ErrInvalidChord)

	assert.Empty(t, km.Chords())
}

func TestBindReplaces(t *testing.T) {
	km := NewKeymap()
	require.NoError(t, km.BindName("home", "home"))
	require.NoError(t, km.BindName("Home", "end"))

	assert.Equal(t, []string{"home"}, km.Chords())
	cmd, _ := km.Lookup(key.NewSpecialEvent(key.KeyHome, key.ModNone))
	assert.Equal(t, "end", cmd.String())
}

func TestDefaultKeymapChords(t *testing.T) {
	chords := DefaultKeymap().Chords()
	assert.Contains(t, chords, "*+left")
	assert.Contains(t, chords, "meta+shift+left")
	assert.IsIncreasing(t, chords)
}

func TestParseCommand(t *testing.T) {
	for _, name := range CommandNames() {
		cmd, err := ParseCommand(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.String())
	}

	_, err := ParseCommand("teleport")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}
