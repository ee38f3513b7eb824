package dom

// Document owns one XML tree: the arena holding every node, an optional
// declaration, an optional doctype string, and the handle of the single
// root element.
//
// A Document is exclusively owned by its caller. The library performs no
// locking; mutations require that no other operation is concurrently
// reading or mutating the same Document.
type Document struct {
	arena   arena
	decl    *Declaration
	doctype string
	root    NodeHandle
}

// New creates a document with a programmatically built root element.
func New(rootTag string, attrs ...Attr) *Document {
	d := &Document{}
	d.root = d.arena.allocate(node{
		kind:  ElementNode,
		name:  rootTag,
		attrs: append([]Attr(nil), attrs...),
	})
	return d
}

// Root returns the handle of the document's root element.
func (d *Document) Root() NodeHandle {
	return d.root
}

// Declaration returns the document's XML declaration, or nil if none is
// set.
func (d *Document) Declaration() *Declaration {
	return d.decl
}

// SetDeclaration sets or clears the document's XML declaration.
func (d *Document) SetDeclaration(decl *Declaration) {
	d.decl = decl
}

// Doctype returns the document's doctype string, or "" if none is set.
// The string is the verbatim `<!DOCTYPE ...>` text.
func (d *Document) Doctype() string {
	return d.doctype
}

// SetDoctype sets or clears the document's doctype string.
func (d *Document) SetDoctype(doctype string) {
	d.doctype = doctype
}
