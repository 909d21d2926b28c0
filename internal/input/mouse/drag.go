package mouse

// dragTracker tracks a left-button drag. A drag becomes a selection once
// the pointer moves away from the press position.
type dragTracker struct {
	active    bool
	selecting bool
	startPos  Position
}

func newDragTracker() *dragTracker {
	return &dragTracker{}
}

func (t *dragTracker) start(pos Position) {
	t.active = true
	t.selecting = false
	t.startPos = pos
}

func (t *dragTracker) update(pos Position) {
	if t.active && pos != t.startPos {
		t.selecting = true
	}
}

func (t *dragTracker) end() {
	*t = dragTracker{}
}

func (t *dragTracker) isActive() bool {
	return t.active
}

func (t *dragTracker) isSelecting() bool {
	return t.selecting
}
