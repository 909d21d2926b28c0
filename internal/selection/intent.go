package selection

import (
	"fmt"
	"slices"
	"sort"

	"github.com/dshills/caret/internal/event"
	"github.com/dshills/caret/internal/input/key"
)

// Motion is a kind of caret movement.
type Motion uint8

const (
	// MotionNone moves nothing.
	MotionNone Motion = iota
	// MotionStep moves horizontally by a grapheme or a word.
	MotionStep
	// MotionClimb moves vertically by a visual line.
	MotionClimb
	// MotionJump moves to the first or last position of the editable.
	MotionJump
	// MotionHome moves to the start of the visual line.
	MotionHome
	// MotionEnd moves to the end of the visual line.
	MotionEnd
)

// Direction is where a motion goes.
type Direction uint8

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "none"
}

// Command is a motion in a direction, the target of a key binding.
type Command struct {
	Motion    Motion
	Direction Direction
}

var commandNames = map[string]Command{
	"step-left":  {MotionStep, DirLeft},
	"step-right": {MotionStep, DirRight},
	"climb-up":   {MotionClimb, DirUp},
	"climb-down": {MotionClimb, DirDown},
	"jump-up":    {MotionJump, DirUp},
	"jump-down":  {MotionJump, DirDown},
	"home":       {MotionHome, DirLeft},
	"end":        {MotionEnd, DirRight},
	"none":       {MotionNone, DirNone},
}

// CommandNames returns the names accepted by ParseCommand, sorted.
func CommandNames() []string {
	names := make([]string, 0, len(commandNames))
	for n := range commandNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseCommand returns the command for a name such as "step-left".
func ParseCommand(name string) (Command, error) {
	c, ok := commandNames[name]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return c, nil
}

// String returns the command's name.
func (c Command) String() string {
	for n, cmd := range commandNames {
		if cmd == c {
			return n
		}
	}
	return "none"
}

// Intent is a normalized caret movement request.
type Intent struct {
	Motion    Motion
	Direction Direction

	// Extend keeps the unfocused end in place.
	Extend bool

	// Word moves by word instead of by grapheme.
	Word bool
}

type binding struct {
	chord   key.Chord
	command Command
}

// Keymap maps key chords to commands. Exact chords take precedence over
// wildcard chords such as "*+left".
type Keymap struct {
	bindings []binding
}

// NewKeymap returns an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{}
}

// DefaultKeymap returns the standard caret bindings.
func DefaultKeymap() *Keymap {
	km := NewKeymap()
	for _, b := range []struct {
		chord, command string
	}{
		{"left", "step-left"},
		{"*+left", "step-left"},
		{"right", "step-right"},
		{"*+right", "step-right"},
		{"up", "climb-up"},
		{"*+up", "climb-up"},
		{"down", "climb-down"},
		{"*+down", "climb-down"},
		{"pageUp", "jump-up"},
		{"*+pageUp", "jump-up"},
		{"meta+up", "jump-up"},
		{"pageDown", "jump-down"},
		{"*+pageDown", "jump-down"},
		{"meta+down", "jump-down"},
		{"home", "home"},
		{"*+home", "home"},
		{"meta+left", "home"},
		{"meta+shift+left", "home"},
		{"end", "end"},
		{"*+end", "end"},
		{"meta+right", "end"},
		{"meta+shift+right", "end"},
	} {
		if err := km.BindName(b.chord, b.command); err != nil {
			panic(err)
		}
	}
	return km
}

// Bind maps chord to command, replacing an existing binding for the same
// chord.
func (km *Keymap) Bind(chord key.Chord, command Command) {
	for i := range km.bindings {
		if km.bindings[i].chord == chord {
			km.bindings[i].command = command
			return
		}
	}
	km.bindings = append(km.bindings, binding{chord: chord, command: command})
}

// BindName parses chord and command and binds them.
func (km *Keymap) BindName(chord, command string) error {
	c, err := key.ParseChord(chord)
	if err != nil {
		return err
	}
	cmd, err := ParseCommand(command)
	if err != nil {
		return err
	}
	km.Bind(c, cmd)
	return nil
}

// Merge binds every chord of overrides over km.
func (km *Keymap) Merge(overrides map[string]string) error {
	chords := make([]string, 0, len(overrides))
	for c := range overrides {
		chords = append(chords, c)
	}
	sort.Strings(chords)
	for _, c := range chords {
		if err := km.BindName(c, overrides[c]); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the command bound to ev.
func (km *Keymap) Lookup(ev key.Event) (Command, bool) {
	var wildcard *binding
	for i := range km.bindings {
		b := &km.bindings[i]
		if !b.chord.Matches(ev) {
			continue
		}
		if !b.chord.AnyModifiers {
			return b.command, b.command.Motion != MotionNone
		}
		if wildcard == nil {
			wildcard = b
		}
	}
	if wildcard != nil {
		return wildcard.command, wildcard.command.Motion != MotionNone
	}
	return Command{}, false
}

// Chords returns the bound chords in their canonical form, sorted.
func (km *Keymap) Chords() []string {
	out := make([]string, 0, len(km.bindings))
	for _, b := range km.bindings {
		out = append(out, b.chord.String())
	}
	slices.Sort(out)
	return out
}

// Normalize turns a key event into an intent. ok is false if no command
// is bound.
func (km *Keymap) Normalize(ev *event.Event) (Intent, bool) {
	if ev.Kind != event.KeyDown {
		return Intent{}, false
	}
	cmd, ok := km.Lookup(ev.Key)
	if !ok {
		return Intent{}, false
	}
	return Intent{
		Motion:    cmd.Motion,
		Direction: cmd.Direction,
		Extend:    ev.HasModifier(key.ModShift),
		Word:      ev.HasModifier(key.ModCtrl) || ev.HasModifier(key.ModAlt),
	}, true
}
