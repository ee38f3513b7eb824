package dom

import "strings"

// Attr is a single name/value attribute pair. Attribute order on an
// element is insertion order and is preserved by serialization.
type Attr struct {
	Name  string
	Value string
}

// NodeSpec describes a node to be created by a mutation call. Build one
// with Element, Text, Comment, or CData.
type NodeSpec struct {
	kind  NodeType
	tag   string
	attrs []Attr
	text  string
}

// Element returns a NodeSpec for an element with the given tag name and
// initial attributes, in order.
func Element(tag string, attrs ...Attr) NodeSpec {
	return NodeSpec{kind: ElementNode, tag: tag, attrs: attrs}
}

// Text returns a NodeSpec for a text node.
func Text(text string) NodeSpec {
	return NodeSpec{kind: TextNode, text: text}
}

// Comment returns a NodeSpec for a comment node.
func Comment(text string) NodeSpec {
	return NodeSpec{kind: CommentNode, text: text}
}

// CData returns a NodeSpec for a CDATA section.
func CData(text string) NodeSpec {
	return NodeSpec{kind: CDATASectionNode, text: text}
}

// Kind returns the type of the node addressed by h.
func (d *Document) Kind(h NodeHandle) (NodeType, error) {
	n, err := d.arena.resolve(h)
	if err != nil {
		return 0, err
	}
	return n.kind, nil
}

// Valid reports whether h still addresses a live node of this document.
func (d *Document) Valid(h NodeHandle) bool {
	_, err := d.arena.resolve(h)
	return err == nil
}

// Name returns the tag name of the element addressed by h.
func (d *Document) Name(h NodeHandle) (string, error) {
	n, err := d.arena.resolve(h)
	if err != nil {
		return "", err
	}
	if n.kind != ElementNode {
		return "", ErrHierarchyRequest("node is not an element")
	}
	return n.name, nil
}

// Text returns the content of the text, comment, or CDATA node addressed
// by h.
func (d *Document) Text(h NodeHandle) (string, error) {
	n, err := d.arena.resolve(h)
	if err != nil {
		return "", err
	}
	if n.kind == ElementNode {
		return "", ErrHierarchyRequest("node is not character data")
	}
	return n.text, nil
}

// Parent returns the parent of h. It reports false for the root element
// and for handles that no longer resolve.
func (d *Document) Parent(h NodeHandle) (NodeHandle, bool) {
	n, err := d.arena.resolve(h)
	if err != nil || n.parent.IsZero() {
		return NodeHandle{}, false
	}
	return n.parent, true
}

// Children returns the child handles of the element addressed by h, in
// document order. The returned slice is a copy.
func (d *Document) Children(h NodeHandle) ([]NodeHandle, error) {
	n, err := d.arena.resolve(h)
	if err != nil {
		return nil, err
	}
	if n.kind != ElementNode {
		return nil, ErrHierarchyRequest("node is not an element")
	}
	children := make([]NodeHandle, len(n.children))
	copy(children, n.children)
	return children, nil
}

// Attributes returns the attributes of the element addressed by h, in
// insertion order. The returned slice is a copy.
func (d *Document) Attributes(h NodeHandle) ([]Attr, error) {
	n, err := d.arena.resolve(h)
	if err != nil {
		return nil, err
	}
	if n.kind != ElementNode {
		return nil, ErrHierarchyRequest("node is not an element")
	}
	attrs := make([]Attr, len(n.attrs))
	copy(attrs, n.attrs)
	return attrs, nil
}

// Attribute returns the value of the named attribute on the element
// addressed by h. It reports false if the attribute is absent or h does
// not address an element.
func (d *Document) Attribute(h NodeHandle, name string) (string, bool) {
	n, err := d.arena.resolve(h)
	if err != nil || n.kind != ElementNode {
		return "", false
	}
	for _, attr := range n.attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// TextContent returns the concatenated text and CDATA content of the node
// addressed by h and its descendants. For text, comment, and CDATA nodes
// it returns the node's own content.
func (d *Document) TextContent(h NodeHandle) (string, error) {
	n, err := d.arena.resolve(h)
	if err != nil {
		return "", err
	}
	if n.kind != ElementNode {
		return n.text, nil
	}
	var sb strings.Builder
	d.collectTextContent(n, &sb)
	return sb.String(), nil
}

func (d *Document) collectTextContent(n *node, sb *strings.Builder) {
	for _, child := range n.children {
		c, err := d.arena.resolve(child)
		if err != nil {
			continue
		}
		switch c.kind {
		case TextNode, CDATASectionNode:
			sb.WriteString(c.text)
		case ElementNode:
			d.collectTextContent(c, sb)
		}
	}
}

// NextSiblingElement returns the nearest following sibling of h that is an
// element, skipping text and comment siblings. It reports false if there
// is none.
func (d *Document) NextSiblingElement(h NodeHandle) (NodeHandle, bool) {
	return d.siblingElement(h, 1)
}

// PrevSiblingElement returns the nearest preceding sibling of h that is an
// element. It reports false if there is none.
func (d *Document) PrevSiblingElement(h NodeHandle) (NodeHandle, bool) {
	return d.siblingElement(h, -1)
}

func (d *Document) siblingElement(h NodeHandle, step int) (NodeHandle, bool) {
	parent, ok := d.Parent(h)
	if !ok {
		return NodeHandle{}, false
	}
	pn, err := d.arena.resolve(parent)
	if err != nil {
		return NodeHandle{}, false
	}
	index := -1
	for i, child := range pn.children {
		if child == h {
			index = i
			break
		}
	}
	if index < 0 {
		return NodeHandle{}, false
	}
	for i := index + step; i >= 0 && i < len(pn.children); i += step {
		sibling := pn.children[i]
		if sn, err := d.arena.resolve(sibling); err == nil && sn.kind == ElementNode {
			return sibling, true
		}
	}
	return NodeHandle{}, false
}
