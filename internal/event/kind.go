package event

import "fmt"

// Kind identifies what happened.
type Kind uint8

const (
	// KindNone is the zero kind.
	KindNone Kind = iota

	// KeyDown is a key press that may map to a caret motion.
	KeyDown

	// KeyPress is a key press that produces text.
	KeyPress

	// MouseDown is a button press at (X, Y).
	MouseDown

	// MouseMove is pointer motion; with a button held it extends a drag.
	MouseMove

	// MouseUp is a button release as reported by the front end.
	MouseUp

	// Click is a completed single click as reported by the front end.
	Click

	// DblClick is a completed double click as reported by the front end.
	DblClick

	// SelectEnd finishes a drag gesture.
	SelectEnd

	// SelectWord expands the selection to the word at the pointer.
	SelectWord

	// SelectBlock expands the selection to the block at the pointer.
	SelectBlock

	// DragOver reports content being dragged over the document.
	DragOver

	// Drop reports content dropped onto the document.
	Drop

	// Resize reports a viewport size change.
	Resize

	// Paste reports content pasted at the caret.
	Paste
)

var kindNames = [...]string{
	KindNone:    "none",
	KeyDown:     "keydown",
	KeyPress:    "keypress",
	MouseDown:   "mousedown",
	MouseMove:   "mousemove",
	MouseUp:     "mouseup",
	Click:       "click",
	DblClick:    "dblclick",
	SelectEnd:   "selectend",
	SelectWord:  "selectword",
	SelectBlock: "selectblock",
	DragOver:    "dragover",
	Drop:        "drop",
	Resize:      "resize",
	Paste:       "paste",
}

// String returns the event type name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsPointer returns true for kinds that carry a pointer position.
func (k Kind) IsPointer() bool {
	switch k {
	case MouseDown, MouseMove, MouseUp, Click, DblClick,
		SelectEnd, SelectWord, SelectBlock, DragOver, Drop:
		return true
	}
	return false
}

// IsNative returns true for the browser-style pointer notifications that
// only reveal the caret instead of reselecting.
func (k Kind) IsNative() bool {
	return k == MouseUp || k == Click || k == DblClick
}

// KindFromName returns the kind for a name produced by String, or KindNone.
func KindFromName(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return Kind(k)
		}
	}
	return KindNone
}
