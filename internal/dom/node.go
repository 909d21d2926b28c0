package dom

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// NodeType identifies the kind of a node.
type NodeType uint8

const (
	// DocumentNode is the root of a tree.
	DocumentNode NodeType = iota
	// ElementNode is a tagged container.
	ElementNode
	// TextNode holds character data.
	TextNode
)

// String returns the node type name.
func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	default:
		return "unknown"
	}
}

// Node is a node in the document tree.
type Node struct {
	Type NodeType
	Tag  string // lowercase tag name, elements only
	Data string // character data, text nodes only

	parent   *Node
	children []*Node
	style    map[string]string
	attrs    map[string]string
}

// NewDocument creates an empty document root.
func NewDocument() *Node {
	return &Node{Type: DocumentNode, Tag: "#document"}
}

// NewElement creates a detached element with the given tag and children.
func NewElement(tag string, children ...*Node) *Node {
	n := &Node{Type: ElementNode, Tag: strings.ToLower(tag)}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// NewText creates a detached text node.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// IsText returns true for text nodes.
func (n *Node) IsText() bool {
	return n != nil && n.Type == TextNode
}

// IsElement returns true for element nodes.
func (n *Node) IsElement() bool {
	return n != nil && n.Type == ElementNode
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child list. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// ChildAt returns the child at index i, or nil when out of range.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	return n.ChildAt(0)
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	return n.ChildAt(len(n.children) - 1)
}

// Index returns the position of n among its siblings, or -1 if detached.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// NextSibling returns the following sibling or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.ChildAt(n.Index() + 1)
}

// PreviousSibling returns the preceding sibling or nil.
func (n *Node) PreviousSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.Index()
	if i <= 0 {
		return nil
	}
	return n.parent.children[i-1]
}

// Length returns the rune count of a text node or the child count of any
// other node.
func (n *Node) Length() int {
	if n.IsText() {
		return utf8.RuneCountInString(n.Data)
	}
	return len(n.children)
}

// Runes returns the character data as runes.
func (n *Node) Runes() []rune {
	return []rune(n.Data)
}

// AppendChild appends c to n, detaching it from any previous parent.
func (n *Node) AppendChild(c *Node) *Node {
	c.Remove()
	c.parent = n
	n.children = append(n.children, c)
	return c
}

// InsertBefore inserts c before ref. A nil ref appends.
func (n *Node) InsertBefore(c, ref *Node) *Node {
	if ref == nil || ref.parent != n {
		return n.AppendChild(c)
	}
	c.Remove()
	i := ref.Index()
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
	c.parent = n
	return c
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	i := n.Index()
	p := n.parent
	p.children = append(p.children[:i], p.children[i+1:]...)
	n.parent = nil
}

// Root returns the topmost ancestor of n.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Style returns the inline style value for prop.
func (n *Node) Style(prop string) string {
	return n.style[prop]
}

// SetStyle sets an inline style property. An empty value removes it.
func (n *Node) SetStyle(prop, value string) *Node {
	if value == "" {
		delete(n.style, prop)
		return n
	}
	if n.style == nil {
		n.style = make(map[string]string)
	}
	n.style[prop] = value
	return n
}

// Styles returns a copy of the inline style map.
func (n *Node) Styles() map[string]string {
	out := make(map[string]string, len(n.style))
	for k, v := range n.style {
		out[k] = v
	}
	return out
}

// Attr returns the attribute value for name.
func (n *Node) Attr(name string) string {
	return n.attrs[name]
}

// SetAttr sets an attribute. An empty value removes it.
func (n *Node) SetAttr(name, value string) *Node {
	if value == "" {
		delete(n.attrs, name)
		return n
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	return n
}

// Attrs returns a copy of the attribute map.
func (n *Node) Attrs() map[string]string {
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// TextContent returns the concatenated character data of n's subtree.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Data
	}
	var sb strings.Builder
	for _, c := range n.children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// String returns a short description used in logs and test failures.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Type {
	case TextNode:
		return fmt.Sprintf("#text(%q)", n.Data)
	case DocumentNode:
		return "#document"
	default:
		return "<" + n.Tag + ">"
	}
}
