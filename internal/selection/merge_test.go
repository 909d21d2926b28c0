package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/dom/boundary"
)

func TestFocus(t *testing.T) {
	assert.Equal(t, "start", FocusStart.String())
	assert.Equal(t, "end", FocusEnd.String())
	assert.Equal(t, FocusEnd, FocusStart.Flip())
	assert.Equal(t, FocusStart, FocusEnd.Flip())
}

func TestIsReversed(t *testing.T) {
	foo := dom.NewText("foo")
	bar := dom.NewText("bar")
	p := dom.NewElement("p", foo, dom.NewElement("b", bar))
	dom.NewDocument().AppendChild(p)

	tests := []struct {
		name       string
		start, end boundary.Boundary
		want       bool
	}{
		{"same container forward", at(foo, 1), at(foo, 2), false},
		{"same container backward", at(foo, 2), at(foo, 1), true},
		{"equal", at(foo, 2), at(foo, 2), false},
		{"across nodes forward", at(foo, 3), at(bar, 0), false},
		{"across nodes backward", at(bar, 0), at(foo, 3), true},
		{"element end after text", at(p, 2), at(bar, 1), true},
		{"element start before text", at(p, 0), at(foo, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsReversed(tt.start, tt.end))
		})
	}
}

func TestIsReversedMatchesOffsets(t *testing.T) {
	text := dom.NewText("0123456789")
	dom.NewDocument().AppendChild(dom.NewElement("p", text))

	rapid.Check(t, func(t *rapid.T) {
		a := rapid.IntRange(0, 10).Draw(t, "a")
		b := rapid.IntRange(0, 10).Draw(t, "b")
		if got := IsReversed(at(text, a), at(text, b)); got != (b < a) {
			t.Fatalf("IsReversed(%d, %d) = %v", a, b, got)
		}
	})
}

func TestMergeRanges(t *testing.T) {
	text := dom.NewText("0123456789")
	dom.NewDocument().AppendChild(dom.NewElement("p", text))

	got := MergeRanges(pair(at(text, 7), at(text, 7)), pair(at(text, 2), at(text, 5)), FocusEnd)
	assert.Equal(t, pair(at(text, 2), at(text, 7)), got.Boundaries)
	assert.Equal(t, FocusEnd, got.Focus)

	got = MergeRanges(pair(at(text, 1), at(text, 1)), pair(at(text, 2), at(text, 5)), FocusEnd)
	assert.Equal(t, pair(at(text, 1), at(text, 2)), got.Boundaries)
	assert.Equal(t, FocusStart, got.Focus, "reversed result flips focus")

	got = MergeRanges(pair(at(text, 3), at(text, 3)), pair(at(text, 2), at(text, 5)), FocusStart)
	assert.Equal(t, pair(at(text, 3), at(text, 5)), got.Boundaries)
	assert.Equal(t, FocusStart, got.Focus)
}

func TestMergeRangesNeverReversed(t *testing.T) {
	text := dom.NewText("0123456789")
	dom.NewDocument().AppendChild(dom.NewElement("p", text))

	rapid.Check(t, func(t *rapid.T) {
		x := rapid.IntRange(0, 10).Draw(t, "x")
		s := rapid.IntRange(0, 10).Draw(t, "s")
		e := rapid.IntRange(s, 10).Draw(t, "e")
		focus := rapid.SampledFrom([]Focus{FocusStart, FocusEnd}).Draw(t, "focus")

		got := MergeRanges(pair(at(text, x), at(text, x)), pair(at(text, s), at(text, e)), focus)
		if IsReversed(got.Boundaries[0], got.Boundaries[1]) {
			t.Fatalf("reversed result %v", got.Boundaries)
		}
		if !got.Focused().Equal(at(text, x)) {
			t.Fatalf("focused end %s, want offset %d", got.Focused(), x)
		}
	})
}
