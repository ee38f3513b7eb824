package dom

import "strings"

// DefaultIndent is the indent width used by StringPretty.
const DefaultIndent = 2

// String serializes the document in compact form: no whitespace is
// inserted between nodes. Serialization of a well-formed tree never fails.
func (d *Document) String() string {
	var sb strings.Builder
	if d.decl != nil {
		sb.WriteString(d.decl.String())
	}
	if d.doctype != "" {
		sb.WriteString(d.doctype)
	}
	d.writeCompact(&sb, d.root)
	return sb.String()
}

// StringPretty serializes the document with each element on its own line
// and children indented two spaces deeper than their parent.
func (d *Document) StringPretty() string {
	return d.StringPrettyIndent(DefaultIndent)
}

// StringPrettyIndent is StringPretty with a caller-chosen indent width.
func (d *Document) StringPrettyIndent(width int) string {
	if width < 0 {
		width = DefaultIndent
	}
	var sb strings.Builder
	if d.decl != nil {
		sb.WriteString(d.decl.String())
		sb.WriteString("\n")
	}
	if d.doctype != "" {
		sb.WriteString(d.doctype)
		sb.WriteString("\n")
	}
	d.writePretty(&sb, d.root, 0, strings.Repeat(" ", width))
	return sb.String()
}

// NodeString serializes the subtree rooted at h in compact form.
func (d *Document) NodeString(h NodeHandle) (string, error) {
	if _, err := d.arena.resolve(h); err != nil {
		return "", err
	}
	var sb strings.Builder
	d.writeCompact(&sb, h)
	return sb.String(), nil
}

func (d *Document) writeCompact(sb *strings.Builder, h NodeHandle) {
	n, err := d.arena.resolve(h)
	if err != nil {
		return
	}
	switch n.kind {
	case TextNode:
		sb.WriteString(escapeText(n.text))
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.text)
		sb.WriteString("-->")
	case CDATASectionNode:
		sb.WriteString("<![CDATA[")
		sb.WriteString(n.text)
		sb.WriteString("]]>")
	case ElementNode:
		sb.WriteString("<")
		sb.WriteString(n.name)
		writeAttrs(sb, n.attrs)
		if len(n.children) == 0 {
			sb.WriteString(" />")
			return
		}
		sb.WriteString(">")
		for _, child := range n.children {
			d.writeCompact(sb, child)
		}
		sb.WriteString("</")
		sb.WriteString(n.name)
		sb.WriteString(">")
	}
}

func (d *Document) writePretty(sb *strings.Builder, h NodeHandle, depth int, indent string) {
	n, err := d.arena.resolve(h)
	if err != nil {
		return
	}
	prefix := strings.Repeat(indent, depth)
	switch n.kind {
	case TextNode:
		// Standalone text lines are trimmed: the surrounding whitespace
		// is formatting owned by the pretty-printer, and trimming keeps
		// the output stable when it is parsed and pretty-printed again.
		sb.WriteString(prefix)
		sb.WriteString(escapeText(strings.TrimSpace(n.text)))
	case CommentNode:
		sb.WriteString(prefix)
		sb.WriteString("<!--")
		sb.WriteString(n.text)
		sb.WriteString("-->")
	case CDATASectionNode:
		sb.WriteString(prefix)
		sb.WriteString("<![CDATA[")
		sb.WriteString(n.text)
		sb.WriteString("]]>")
	case ElementNode:
		sb.WriteString(prefix)
		sb.WriteString("<")
		sb.WriteString(n.name)
		writeAttrs(sb, n.attrs)
		if len(n.children) == 0 {
			sb.WriteString(" />")
			return
		}
		sb.WriteString(">")
		// An element whose children are all character data is rendered
		// inline; elements containing child elements never are.
		if d.textOnly(n) {
			for _, child := range n.children {
				d.writeCompact(sb, child)
			}
		} else {
			for _, child := range n.children {
				sb.WriteString("\n")
				d.writePretty(sb, child, depth+1, indent)
			}
			sb.WriteString("\n")
			sb.WriteString(prefix)
		}
		sb.WriteString("</")
		sb.WriteString(n.name)
		sb.WriteString(">")
	}
}

func (d *Document) textOnly(n *node) bool {
	for _, child := range n.children {
		cn, err := d.arena.resolve(child)
		if err != nil {
			continue
		}
		if cn.kind != TextNode && cn.kind != CDATASectionNode {
			return false
		}
	}
	return true
}

func writeAttrs(sb *strings.Builder, attrs []Attr) {
	for _, attr := range attrs {
		sb.WriteString(" ")
		sb.WriteString(attr.Name)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttrValue(attr.Value))
		sb.WriteString(`"`)
	}
}

// escapeText escapes text content for XML: & < >
func escapeText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// escapeAttrValue escapes attribute values for XML: & < > "
func escapeAttrValue(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
