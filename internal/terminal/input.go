package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/event"
	"github.com/dshills/caret/internal/geometry"
	"github.com/dshills/caret/internal/input/key"
	"github.com/dshills/caret/internal/input/mouse"
)

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// convertKey converts a tcell key event. Control letters become runes
// with the ctrl modifier so chords such as "ctrl+z" match them.
func convertKey(ev *tcell.EventKey) key.Event {
	mods := convertMod(ev.Modifiers())
	k := ev.Key()
	if kk, ok := specialKeys[k]; ok {
		e := key.NewSpecialEvent(kk, mods)
		e.Timestamp = ev.When()
		return e
	}
	var e key.Event
	switch {
	case k == tcell.KeyRune && ev.Rune() == ' ':
		e = key.NewSpecialEvent(key.KeySpace, mods)
	case k == tcell.KeyRune:
		e = key.NewRuneEvent(ev.Rune(), mods)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		e = key.NewRuneEvent(rune('a'+int(k-tcell.KeyCtrlA)), mods.With(key.ModCtrl))
	default:
		e = key.NewSpecialEvent(key.KeyNone, mods)
	}
	e.Timestamp = ev.When()
	return e
}

// convertMod converts a tcell modifier mask.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		result = result.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		result = result.With(key.ModMeta)
	}
	return result
}

// convertMouse turns a tcell mouse report into a press, move or release
// by comparing the primary button with the previous report.
func (t *Terminal) convertMouse(ev *tcell.EventMouse, scroll geometry.Offsets) (mouse.Event, bool) {
	col, row := ev.Position()
	x, y := t.toDocument(col, row, scroll)
	btns := ev.Buttons()
	primary := btns&tcell.ButtonPrimary != 0
	was := t.buttons&tcell.ButtonPrimary != 0
	t.buttons = btns

	out := mouse.Event{
		Position:  mouse.Position{X: x, Y: y},
		Modifiers: convertMod(ev.Modifiers()),
		Timestamp: ev.When(),
	}
	switch {
	case primary && !was:
		out.Action = mouse.ActionPress
		out.Button = mouse.ButtonLeft
	case !primary && was:
		out.Action = mouse.ActionRelease
		out.Button = mouse.ButtonLeft
	case primary:
		out.Action = mouse.ActionMove
		out.Button = mouse.ButtonLeft
	case btns&(tcell.ButtonSecondary|tcell.ButtonMiddle) != 0:
		return mouse.Event{}, false
	case btns&tcell.WheelUp != 0, btns&tcell.WheelDown != 0, btns&tcell.WheelLeft != 0, btns&tcell.WheelRight != 0:
		return mouse.Event{}, false
	default:
		out.Action = mouse.ActionMove
	}
	return out, true
}

// Translate converts a screen event into the editor events it stands for,
// in order. Events without a meaning for the selection yield nothing.
func (t *Terminal) Translate(ev tcell.Event, editable *dom.Node, scroll geometry.Offsets) []*event.Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch e := ev.(type) {
	case *tcell.EventKey:
		k := convertKey(e)
		if k.Key == key.KeyNone {
			return nil
		}
		down := event.NewKey(k, editable)
		if !k.IsRune() || k.HasModifier(key.ModCtrl) || k.HasModifier(key.ModMeta) {
			return []*event.Event{down}
		}
		press := event.NewKey(k, editable)
		press.Kind = event.KeyPress
		return []*event.Event{down, press}

	case *tcell.EventMouse:
		me, ok := t.convertMouse(e, scroll)
		if !ok {
			return nil
		}
		return t.mouse.Handle(me, editable)

	case *tcell.EventResize:
		return []*event.Event{{Kind: event.Resize, Editable: editable}}

	case *tcell.EventPaste:
		if !e.Start() {
			return nil
		}
		return []*event.Event{{Kind: event.Paste, Editable: editable}}
	}
	return nil
}
