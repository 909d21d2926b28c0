// Package dom provides the in-memory document tree the selection engine
// positions boundaries in.
//
// The dom package handles:
//
//   - Node construction and mutation (elements, text, the document root)
//   - Inline style and attribute storage
//   - Preorder traversal helpers (forward, backward, ancestor climbing)
//   - Document order comparison
//   - JSON fixtures for documents (ParseJSON / MarshalJSON)
//
// Offsets:
//
// A text node's length is its rune count; an element's length is its child
// count. Boundaries (see package boundary) use the same units.
//
// Thread Safety:
//
// Nodes are not safe for concurrent mutation. The selection engine only
// reads the tree.
package dom
