package dom

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrInvalidJSON indicates a malformed document fixture.
var ErrInvalidJSON = errors.New("invalid document json")

// ParseJSON builds a document from a JSON fixture.
//
// Elements are objects with "tag" and optional "style", "attrs" and
// "children"; text nodes are objects with a "text" field. The top level may
// be a single node or an array of nodes, all of which become children of a
// new document root.
func ParseJSON(data []byte) (*Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	doc := NewDocument()
	root := gjson.ParseBytes(data)
	if root.IsArray() {
		var err error
		root.ForEach(func(_, v gjson.Result) bool {
			var n *Node
			if n, err = parseNode(v); err != nil {
				return false
			}
			doc.AppendChild(n)
			return true
		})
		if err != nil {
			return nil, err
		}
		return doc, nil
	}
	n, err := parseNode(root)
	if err != nil {
		return nil, err
	}
	doc.AppendChild(n)
	return doc, nil
}

func parseNode(v gjson.Result) (*Node, error) {
	if !v.IsObject() {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrInvalidJSON, v.Type)
	}
	if t := v.Get("text"); t.Exists() {
		return NewText(t.String()), nil
	}
	tag := v.Get("tag").String()
	if tag == "" {
		return nil, fmt.Errorf("%w: node without tag or text", ErrInvalidJSON)
	}
	n := NewElement(tag)
	v.Get("style").ForEach(func(k, val gjson.Result) bool {
		n.SetStyle(k.String(), val.String())
		return true
	})
	v.Get("attrs").ForEach(func(k, val gjson.Result) bool {
		n.SetAttr(k.String(), val.String())
		return true
	})
	var err error
	v.Get("children").ForEach(func(_, c gjson.Result) bool {
		var child *Node
		if child, err = parseNode(c); err != nil {
			return false
		}
		n.AppendChild(child)
		return true
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// MarshalJSON renders n in the fixture format accepted by ParseJSON. A
// document root renders as an array of its children.
func MarshalJSON(n *Node) ([]byte, error) {
	if n.Type == DocumentNode {
		raw, err := marshalChildren(n)
		return []byte(raw), err
	}
	raw, err := marshalNode(n)
	return []byte(raw), err
}

func marshalNode(n *Node) (string, error) {
	if n.IsText() {
		return sjson.Set("{}", "text", n.Data)
	}
	out, err := sjson.Set("{}", "tag", n.Tag)
	if err != nil {
		return "", err
	}
	for _, k := range sortedKeys(n.style) {
		if out, err = sjson.Set(out, "style."+k, n.style[k]); err != nil {
			return "", err
		}
	}
	for _, k := range sortedKeys(n.attrs) {
		if out, err = sjson.Set(out, "attrs."+k, n.attrs[k]); err != nil {
			return "", err
		}
	}
	if len(n.children) == 0 {
		return out, nil
	}
	children, err := marshalChildren(n)
	if err != nil {
		return "", err
	}
	return sjson.SetRaw(out, "children", children)
}

func marshalChildren(n *Node) (string, error) {
	parts := make([]string, 0, len(n.children))
	for _, c := range n.children {
		raw, err := marshalNode(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, raw)
	}
	return "[" + strings.Join(parts, ",") + "]", nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
