// Package overrides collects the formatting that applies at a position in
// the document. The caret uses it to reflect bold, italic and color.
package overrides

import (
	"strconv"
	"strings"

	"github.com/dshills/caret/internal/dom"
	"github.com/dshills/caret/internal/html"
)

// Override is a named formatting attribute.
type Override struct {
	Name  string
	Value string
}

// Known override names.
const (
	Bold          = "bold"
	Italic        = "italic"
	Underline     = "underline"
	Strikethrough = "strikethrough"
	Color         = "color"
)

var tagOverrides = map[string]Override{
	"b":      {Bold, "true"},
	"strong": {Bold, "true"},
	"i":      {Italic, "true"},
	"em":     {Italic, "true"},
	"u":      {Underline, "true"},
	"s":      {Strikethrough, "true"},
	"strike": {Strikethrough, "true"},
}

// Harvest collects the overrides in effect at n from n and its ancestors,
// stopping at the editing host. The innermost value of each name wins.
func Harvest(n *dom.Node) []Override {
	var out []Override
	seen := make(map[string]bool)
	add := func(o Override) {
		if !seen[o.Name] {
			seen[o.Name] = true
			out = append(out, o)
		}
	}
	for p := n; p != nil && p.Type != dom.DocumentNode; p = p.Parent() {
		if p.IsElement() {
			for _, o := range fromStyle(p) {
				add(o)
			}
			if o, ok := tagOverrides[p.Tag]; ok {
				add(o)
			}
		}
		if html.IsEditingHost(p) {
			break
		}
	}
	return out
}

func fromStyle(n *dom.Node) []Override {
	var out []Override
	if c := n.Style("color"); c != "" {
		out = append(out, Override{Color, c})
	}
	if w := n.Style("font-weight"); w != "" {
		out = append(out, Override{Bold, strconv.FormatBool(isBoldWeight(w))})
	}
	if s := n.Style("font-style"); s != "" {
		out = append(out, Override{Italic, strconv.FormatBool(s == "italic" || s == "oblique")})
	}
	if d := n.Style("text-decoration"); d != "" {
		out = append(out, Override{Underline, strconv.FormatBool(strings.Contains(d, "underline"))})
		out = append(out, Override{Strikethrough, strconv.FormatBool(strings.Contains(d, "line-through"))})
	}
	return out
}

func isBoldWeight(w string) bool {
	switch w {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(w)
	return err == nil && n >= 600
}

// JoinToSet merges override lists. Later lists win; each name keeps the
// position of its first appearance.
func JoinToSet(sets ...[]Override) []Override {
	var out []Override
	index := make(map[string]int)
	for _, set := range sets {
		for _, o := range set {
			if i, ok := index[o.Name]; ok {
				out[i] = o
				continue
			}
			index[o.Name] = len(out)
			out = append(out, o)
		}
	}
	return out
}

// Map returns the overrides keyed by name.
func Map(list []Override) map[string]string {
	m := make(map[string]string, len(list))
	for _, o := range list {
		m[o.Name] = o.Value
	}
	return m
}

// Enabled reports whether a boolean override is switched on.
func Enabled(m map[string]string, name string) bool {
	v, err := strconv.ParseBool(m[name])
	return err == nil && v
}
