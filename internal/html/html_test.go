package html

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/dom/boundary"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		node *dom.Node
		want string
	}{
		{dom.NewElement("p"), "block"},
		{dom.NewElement("span"), "inline"},
		{dom.NewElement("li"), "list-item"},
		{dom.NewElement("span").SetStyle("display", "block"), "block"},
		{dom.NewText("x"), "inline"},
		{dom.NewDocument(), "block"},
	}
	for _, tt := range tests {
		if got := Display(tt.node); got != tt.want {
			t.Errorf("Display(%s) = %q, want %q", tt.node, got, tt.want)
		}
	}
}

func TestClassification(t *testing.T) {
	assert.True(t, IsVoidType(dom.NewElement("br")))
	assert.False(t, IsVoidType(dom.NewText("br")))
	assert.True(t, HasLinebreakingStyle(dom.NewElement("br")))
	assert.True(t, HasLinebreakingStyle(dom.NewElement("div")))
	assert.False(t, HasLinebreakingStyle(dom.NewElement("b")))
	assert.False(t, HasLinebreakingStyle(dom.NewElement("div").SetStyle("display", "none")))
	assert.True(t, IsGroupContainer(dom.NewElement("ul")))
	assert.True(t, IsGroupedElement(dom.NewElement("li")))
	assert.True(t, IsInlineFormatting(dom.NewElement("strong")))
}

func TestIsRendered(t *testing.T) {
	hidden := dom.NewText("hidden")
	blank := dom.NewText(" \n\t")
	zw := dom.NewText("\u200b")
	shown := dom.NewText("shown")
	dom.NewElement("div",
		dom.NewElement("p", hidden).SetStyle("display", "none"),
		blank, zw, shown,
	)

	assert.False(t, IsRendered(hidden))
	assert.False(t, IsRendered(blank))
	assert.False(t, IsRendered(zw))
	assert.True(t, IsRendered(shown))
}

func TestEditing(t *testing.T) {
	inner := dom.NewElement("p", dom.NewText("x"))
	locked := dom.NewElement("span").SetAttr("contenteditable", "false")
	host := dom.NewElement("div", inner, locked).SetAttr("contenteditable", "true")
	dom.NewDocument().AppendChild(dom.NewElement("body", host))

	assert.True(t, IsEditingHost(host))
	assert.False(t, IsEditingHost(inner))
	assert.True(t, IsEditable(inner.FirstChild()))
	assert.False(t, IsEditable(locked))
	assert.False(t, IsEditable(host.Parent()))
	assert.Same(t, host, EditingHost(inner.FirstChild()))
	assert.Nil(t, EditingHost(host.Parent()))
}

func TestExpand(t *testing.T) {
	first := dom.NewText("first")
	last := dom.NewText("last")
	host := dom.NewElement("div",
		dom.NewText("\n  "),
		dom.NewElement("p", dom.NewElement("b", first)),
		dom.NewElement("p", last, dom.NewText(" ")),
		dom.NewText("\n"),
	)

	got := ExpandForward(boundary.FromStartOfNode(host))
	assert.True(t, got.Equal(boundary.Raw(first, 0)), "forward: %s", got)

	got = ExpandBackward(boundary.FromEndOfNode(host))
	assert.True(t, got.Equal(boundary.Raw(last, 4)), "backward: %s", got)
}

func TestExpandStopsAtVoid(t *testing.T) {
	img := dom.NewElement("img")
	p := dom.NewElement("p", img, dom.NewText("after"))

	got := ExpandForward(boundary.FromStartOfNode(p))
	assert.True(t, got.Equal(boundary.Raw(p, 0)))

	empty := dom.NewElement("p")
	got = ExpandBackward(boundary.FromEndOfNode(dom.NewElement("div", empty)))
	assert.True(t, got.Equal(boundary.Raw(empty, 0)))
}
