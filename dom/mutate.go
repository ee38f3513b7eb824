package dom

// newNode allocates a node from a spec without linking it. The caller is
// responsible for attaching the handle to the tree before returning.
func (d *Document) newNode(spec NodeSpec) (NodeHandle, error) {
	switch spec.kind {
	case ElementNode:
		if spec.tag == "" {
			return NodeHandle{}, ErrSyntax("element tag name is empty")
		}
		n := node{kind: ElementNode, name: spec.tag}
		for _, attr := range spec.attrs {
			setAttr(&n, attr.Name, attr.Value)
		}
		return d.arena.allocate(n), nil
	case TextNode, CommentNode, CDATASectionNode:
		return d.arena.allocate(node{kind: spec.kind, text: spec.text}), nil
	default:
		return NodeHandle{}, ErrSyntax("node spec has no kind; use Element, Text, Comment, or CData")
	}
}

// AppendChild creates the node described by spec and appends it as the
// last child of parent. It fails if parent is not a valid element handle.
func (d *Document) AppendChild(parent NodeHandle, spec NodeSpec) (NodeHandle, error) {
	pn, err := d.arena.resolve(parent)
	if err != nil {
		return NodeHandle{}, err
	}
	if pn.kind != ElementNode {
		return NodeHandle{}, ErrHierarchyRequest("parent is not an element")
	}
	h, err := d.newNode(spec)
	if err != nil {
		return NodeHandle{}, err
	}
	// Resolve again: allocation may have grown the slot array.
	pn, _ = d.arena.resolve(parent)
	cn, _ := d.arena.resolve(h)
	cn.parent = parent
	pn.children = append(pn.children, h)
	return h, nil
}

// InsertBefore creates the node described by spec and inserts it as the
// sibling immediately preceding ref. It fails if ref is invalid or is the
// root element, which has no siblings.
func (d *Document) InsertBefore(ref NodeHandle, spec NodeSpec) (NodeHandle, error) {
	return d.insertSibling(ref, spec, 0)
}

// InsertAfter creates the node described by spec and inserts it as the
// sibling immediately following ref. It fails if ref is invalid or is the
// root element.
func (d *Document) InsertAfter(ref NodeHandle, spec NodeSpec) (NodeHandle, error) {
	return d.insertSibling(ref, spec, 1)
}

func (d *Document) insertSibling(ref NodeHandle, spec NodeSpec, offset int) (NodeHandle, error) {
	rn, err := d.arena.resolve(ref)
	if err != nil {
		return NodeHandle{}, err
	}
	if rn.parent.IsZero() {
		return NodeHandle{}, ErrHierarchyRequest("cannot insert a sibling of the root element")
	}
	parent := rn.parent
	h, err := d.newNode(spec)
	if err != nil {
		return NodeHandle{}, err
	}
	pn, _ := d.arena.resolve(parent)
	cn, _ := d.arena.resolve(h)
	cn.parent = parent
	index := len(pn.children)
	for i, child := range pn.children {
		if child == ref {
			index = i + offset
			break
		}
	}
	pn.children = append(pn.children, NodeHandle{})
	copy(pn.children[index+1:], pn.children[index:])
	pn.children[index] = h
	return h, nil
}

// Detach unlinks the subtree rooted at h from its parent and releases its
// storage. The handle and every descendant handle become invalid. The root
// element cannot be detached.
func (d *Document) Detach(h NodeHandle) error {
	n, err := d.arena.resolve(h)
	if err != nil {
		return err
	}
	if h == d.root {
		return ErrHierarchyRequest("cannot detach the root element")
	}
	if !n.parent.IsZero() {
		pn, err := d.arena.resolve(n.parent)
		if err == nil {
			for i, child := range pn.children {
				if child == h {
					pn.children = append(pn.children[:i], pn.children[i+1:]...)
					break
				}
			}
		}
	}
	d.releaseSubtree(h)
	return nil
}

func (d *Document) releaseSubtree(h NodeHandle) {
	n, err := d.arena.resolve(h)
	if err != nil {
		return
	}
	children := n.children
	for _, child := range children {
		d.releaseSubtree(child)
	}
	d.arena.release(h)
}

// SetAttribute inserts or overwrites an attribute on the element addressed
// by el. Overwriting preserves the attribute's position; insertion appends
// after all existing attributes.
func (d *Document) SetAttribute(el NodeHandle, name, value string) error {
	n, err := d.arena.resolve(el)
	if err != nil {
		return err
	}
	if n.kind != ElementNode {
		return ErrHierarchyRequest("node is not an element")
	}
	if name == "" {
		return ErrSyntax("attribute name is empty")
	}
	setAttr(n, name, value)
	return nil
}

func setAttr(n *node, name, value string) {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// RemoveAttribute removes the named attribute from the element addressed
// by el. Removing an absent attribute succeeds as a no-op.
func (d *Document) RemoveAttribute(el NodeHandle, name string) error {
	n, err := d.arena.resolve(el)
	if err != nil {
		return err
	}
	if n.kind != ElementNode {
		return ErrHierarchyRequest("node is not an element")
	}
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return nil
		}
	}
	return nil
}

// SetText replaces the content of the text, comment, or CDATA node
// addressed by h.
func (d *Document) SetText(h NodeHandle, text string) error {
	n, err := d.arena.resolve(h)
	if err != nil {
		return err
	}
	if n.kind == ElementNode {
		return ErrHierarchyRequest("node is not character data")
	}
	n.text = text
	return nil
}
