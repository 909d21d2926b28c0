package traversing

import (
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dshills/caret/internal/dom/boundary"
)

// segment is a run of runes between two word boundaries.
type segment struct {
	start, end int
	word       bool
}

// segments splits rs at uniseg word boundaries. A segment is a word if it
// contains a letter or digit.
func segments(rs []rune) []segment {
	var out []segment
	rest := string(rs)
	state := -1
	pos := 0
	for len(rest) > 0 {
		var w string
		w, rest, state = uniseg.FirstWordInString(rest, state)
		n := len([]rune(w))
		out = append(out, segment{start: pos, end: pos + n, word: isWord(w)})
		pos += n
	}
	return out
}

func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// wordEndAfter returns the end of the first word ending after off.
func wordEndAfter(rs []rune, off int) (int, bool) {
	for _, s := range segments(rs) {
		if s.word && s.end > off {
			return s.end, true
		}
	}
	return 0, false
}

// wordStartBefore returns the start of the last word starting before off.
func wordStartBefore(rs []rune, off int) (int, bool) {
	segs := segments(rs)
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i].word && segs[i].start < off {
			return segs[i].start, true
		}
	}
	return 0, false
}

func nextWord(b boundary.Boundary) boundary.Boundary {
	cur := b
	for {
		if cur.IsTextBoundary() {
			if end, ok := wordEndAfter(cur.Container.Runes(), cur.Offset); ok {
				return boundary.Raw(cur.Container, end)
			}
		}
		t, crossed := nextText(cur)
		switch {
		case t == nil && cur.IsTextBoundary():
			return boundary.FromEndOfNode(cur.Container)
		case t == nil:
			return cur
		case crossed:
			return boundary.Raw(t, skipInvisibleForward(t.Runes(), 0))
		}
		cur = boundary.FromStartOfNode(t)
	}
}

func prevWord(b boundary.Boundary) boundary.Boundary {
	cur := b
	for {
		if cur.IsTextBoundary() {
			if start, ok := wordStartBefore(cur.Container.Runes(), cur.Offset); ok {
				return boundary.Raw(cur.Container, start)
			}
		}
		t, crossed := prevText(cur)
		switch {
		case t == nil && cur.IsTextBoundary():
			return boundary.FromStartOfNode(cur.Container)
		case t == nil:
			return cur
		case crossed:
			return boundary.Raw(t, skipInvisibleBackward(t.Runes(), t.Length()))
		}
		cur = boundary.FromEndOfNode(t)
	}
}

// wordAround returns the segment of rs containing off. When off falls on
// an edge, the segment to the right is preferred unless atEnd is set.
func wordAround(rs []rune, off int, atEnd bool) (segment, bool) {
	for _, s := range segments(rs) {
		if atEnd && s.start < off && off <= s.end {
			return s, true
		}
		if !atEnd && s.start <= off && off < s.end {
			return s, true
		}
	}
	return segment{}, false
}
