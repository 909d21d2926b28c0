package layout

import (
	"strconv"
	"strings"

	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/html"
)

// inherited lists the properties that flow from parent to child.
var inherited = map[string]bool{
	"color":           true,
	"font-size":       true,
	"font-weight":     true,
	"font-style":      true,
	"text-decoration": true,
}

// spacing is the vertical margin and horizontal indent of a block, in em.
type spacing struct {
	margin float64
	indent float64
}

var blockSpacing = map[string]spacing{
	"p": {margin: 0.5}, "h1": {margin: 0.5}, "h2": {margin: 0.5},
	"h3": {margin: 0.5}, "h4": {margin: 0.5}, "h5": {margin: 0.5},
	"h6": {margin: 0.5}, "pre": {margin: 0.5},
	"ul": {margin: 0.5, indent: 2}, "ol": {margin: 0.5, indent: 2},
	"dl": {margin: 0.5}, "menu": {margin: 0.5, indent: 2},
	"blockquote": {margin: 0.5, indent: 2}, "dd": {indent: 2},
}

var headingScale = map[string]float64{
	"h1": 2, "h2": 1.5, "h3": 1.17, "h4": 1, "h5": 0.83, "h6": 0.67,
}

// ComputedStyle resolves prop for n. Inherited properties are looked up on
// the ancestors; text nodes resolve against their parent. font-size always
// resolves to a pixel value such as "16px".
func (e *Engine) ComputedStyle(n *dom.Node, prop string) string {
	if n == nil {
		return ""
	}
	if n.IsText() {
		n = n.Parent()
		if n == nil {
			return ""
		}
	}
	switch prop {
	case "font-size":
		return strconv.FormatFloat(e.fontSize(n), 'f', -1, 64) + "px"
	case "display":
		return html.Display(n)
	}
	if !inherited[prop] {
		return n.Style(prop)
	}
	for p := n; p != nil; p = p.Parent() {
		if v := p.Style(prop); v != "" {
			return v
		}
		if v := tagDefault(p, prop); v != "" {
			return v
		}
	}
	return ""
}

func tagDefault(n *dom.Node, prop string) string {
	switch prop {
	case "font-weight":
		if n.Tag == "b" || n.Tag == "strong" || headingScale[n.Tag] != 0 {
			return "bold"
		}
	case "font-style":
		if n.Tag == "i" || n.Tag == "em" {
			return "italic"
		}
	case "text-decoration":
		if n.Tag == "u" {
			return "underline"
		}
	}
	return ""
}

// fontSize returns the resolved font size of n in pixels.
func (e *Engine) fontSize(n *dom.Node) float64 {
	if n == nil || n.Type == dom.DocumentNode {
		return e.cfg.FontSize
	}
	if n.IsText() {
		return e.fontSize(n.Parent())
	}
	parent := e.fontSize(n.Parent())
	if v, ok := parseLength(n.Style("font-size"), parent); ok {
		return v
	}
	if s, ok := headingScale[n.Tag]; ok {
		return parent * s
	}
	return parent
}

// parseLength parses "12px", "1.5em", "120%" or a bare number.
func parseLength(v string, em float64) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	scale := 1.0
	switch {
	case strings.HasSuffix(v, "px"):
		v = strings.TrimSuffix(v, "px")
	case strings.HasSuffix(v, "em"):
		v = strings.TrimSuffix(v, "em")
		scale = em
	case strings.HasSuffix(v, "%"):
		v = strings.TrimSuffix(v, "%")
		scale = em / 100
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f * scale, true
}
