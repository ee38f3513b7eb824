// Package dom provides an in-memory, mutable XML document model: an
// arena-backed tree addressed through stable handles, parsed from text,
// mutated through document-scoped operations, and serialized back to text
// in compact or indented form.
package dom

// NodeType represents the type of a node. The numbering follows the DOM
// specification for the node kinds this model supports.
type NodeType uint16

const (
	// ElementNode represents an element.
	ElementNode NodeType = 1
	// TextNode represents a text node.
	TextNode NodeType = 3
	// CDATASectionNode represents a CDATA section.
	CDATASectionNode NodeType = 4
	// CommentNode represents a comment.
	CommentNode NodeType = 8
)

// String returns the string representation of the NodeType.
func (nt NodeType) String() string {
	switch nt {
	case ElementNode:
		return "ELEMENT_NODE"
	case TextNode:
		return "TEXT_NODE"
	case CDATASectionNode:
		return "CDATA_SECTION_NODE"
	case CommentNode:
		return "COMMENT_NODE"
	default:
		return "UNKNOWN_NODE"
	}
}
