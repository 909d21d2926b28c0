// Package html classifies document nodes the way a rendering engine would:
// void elements, rendered nodes, line-breaking containers, list groups and
// editing hosts.
package html

import (
	"strings"

	"github.com/dshills/caret/internal/dom"
)

var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figure": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"html": true, "menu": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "ul": true,
}

var groupContainers = map[string]bool{"ul": true, "ol": true, "dl": true, "menu": true}

var groupedElements = map[string]bool{"li": true, "dt": true, "dd": true}

var inlineFormatting = map[string]bool{
	"a": true, "b": true, "code": true, "em": true, "font": true, "i": true,
	"s": true, "small": true, "span": true, "strike": true, "strong": true,
	"sub": true, "sup": true, "u": true,
}

// Display returns the element's display value: the inline style when set,
// otherwise the tag default. Text and document nodes report "inline" and
// "block" respectively.
func Display(n *dom.Node) string {
	switch n.Type {
	case dom.TextNode:
		return "inline"
	case dom.DocumentNode:
		return "block"
	}
	if d := strings.TrimSpace(n.Style("display")); d != "" {
		return d
	}
	switch {
	case n.Tag == "li":
		return "list-item"
	case blockTags[n.Tag]:
		return "block"
	}
	return "inline"
}

// IsVoidType returns true for elements that cannot have children.
func IsVoidType(n *dom.Node) bool {
	return n.IsElement() && voidTags[n.Tag]
}

// IsInlineFormatting returns true for inline formatting elements such as
// <b> and <span>.
func IsInlineFormatting(n *dom.Node) bool {
	return n.IsElement() && inlineFormatting[n.Tag]
}

// IsRendered returns true if n produces visible output: no ancestor (or n
// itself) has display:none, and text nodes contain at least one visible
// character.
func IsRendered(n *dom.Node) bool {
	for p := n; p != nil; p = p.Parent() {
		if p.IsElement() && Display(p) == "none" {
			return false
		}
	}
	if n.IsText() {
		return HasVisibleCharacters(n.Data)
	}
	return true
}

// HasVisibleCharacters returns true if s contains a character that is
// neither collapsible whitespace nor zero-width.
func HasVisibleCharacters(s string) bool {
	for _, r := range s {
		if !IsInvisible(r) && !strings.ContainsRune(" \t\n\r\f", r) {
			return true
		}
	}
	return false
}

// IsInvisible returns true for zero-width characters that never take up
// space on a line.
func IsInvisible(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\u2060', '\ufeff':
		return true
	}
	return false
}

// HasLinebreakingStyle returns true if n forces the content after it onto
// a new line: block-level elements and <br>.
func HasLinebreakingStyle(n *dom.Node) bool {
	if !n.IsElement() {
		return false
	}
	if n.Tag == "br" {
		return true
	}
	switch Display(n) {
	case "inline", "inline-block", "none":
		return false
	}
	return true
}

// IsGroupContainer returns true for list-like wrappers.
func IsGroupContainer(n *dom.Node) bool {
	return n.IsElement() && groupContainers[n.Tag]
}

// IsGroupedElement returns true for the direct items of a group container.
func IsGroupedElement(n *dom.Node) bool {
	return n.IsElement() && groupedElements[n.Tag]
}

func contentEditable(n *dom.Node) string {
	if !n.IsElement() {
		return ""
	}
	return strings.ToLower(n.Attr("contenteditable"))
}

// IsEditable returns true if n lies inside an editing host (the host
// included). The nearest explicit contenteditable attribute decides.
func IsEditable(n *dom.Node) bool {
	for p := n; p != nil; p = p.Parent() {
		switch contentEditable(p) {
		case "true":
			return true
		case "false":
			return false
		}
	}
	return false
}

// IsEditingHost returns true for an editable element whose parent is not
// editable.
func IsEditingHost(n *dom.Node) bool {
	if contentEditable(n) != "true" {
		return false
	}
	p := n.Parent()
	return p == nil || !IsEditable(p)
}

// EditingHost returns the editing host containing n, or nil.
func EditingHost(n *dom.Node) *dom.Node {
	for p := n; p != nil; p = p.Parent() {
		if IsEditingHost(p) {
			return p
		}
	}
	return nil
}
