package dom

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseError describes a failure to parse document text. Line and Col are
// 1-based.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parse builds a Document from source text. On failure it returns a
// *ParseError and no document; no partially built state is visible to the
// caller.
func Parse(src string) (*Document, error) {
	p := &parser{src: strings.TrimPrefix(src, "\uFEFF"), doc: &Document{}}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

type parser struct {
	src string
	pos int
	doc *Document
}

func (p *parser) errf(pos int, format string, args ...any) *ParseError {
	if pos > len(p.src) {
		pos = len(p.src)
	}
	before := p.src[:pos]
	line := 1 + strings.Count(before, "\n")
	col := pos - strings.LastIndexByte(before, '\n')
	return &ParseError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func isNameStart(r rune) bool {
	return r == '_' || r == ':' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStart(r) || r == '-' || r == '.' || unicode.IsDigit(r)
}

// readName consumes a tag or attribute name. It fails if the first
// character cannot start a name.
func (p *parser) readName() (string, error) {
	start := p.pos
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	if size == 0 || !isNameStart(r) {
		return "", p.errf(p.pos, "invalid name character %q", r)
	}
	p.pos += size
	for !p.eof() {
		r, size = utf8.DecodeRuneInString(p.src[p.pos:])
		if !isNameChar(r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos], nil
}

func (p *parser) parse() error {
	p.skipSpace()
	if p.hasPrefix("<?xml") {
		if err := p.parseDeclaration(); err != nil {
			return err
		}
	}
	if err := p.skipMisc(); err != nil {
		return err
	}
	if p.hasPrefix("<!DOCTYPE") {
		if err := p.parseDoctype(); err != nil {
			return err
		}
		if err := p.skipMisc(); err != nil {
			return err
		}
	}
	if p.eof() || p.src[p.pos] != '<' {
		return p.errf(p.pos, "expected root element")
	}
	if p.hasPrefix("<?") {
		return p.errf(p.pos, "processing instructions are not supported")
	}
	root, err := p.parseElement(NodeHandle{})
	if err != nil {
		return err
	}
	p.doc.root = root
	if err := p.skipMisc(); err != nil {
		return err
	}
	if !p.eof() {
		if p.src[p.pos] == '<' {
			return p.errf(p.pos, "multiple root elements")
		}
		return p.errf(p.pos, "unexpected content after root element")
	}
	return nil
}

// skipMisc consumes whitespace and comments between top-level constructs.
func (p *parser) skipMisc() error {
	for {
		p.skipSpace()
		if !p.hasPrefix("<!--") {
			return nil
		}
		if _, err := p.parseComment(); err != nil {
			return err
		}
	}
}

func (p *parser) parseDeclaration() error {
	start := p.pos
	p.pos += len("<?xml")
	fields := []string{"version", "encoding", "standalone"}
	decl := &Declaration{}
	next := 0
	for {
		p.skipSpace()
		if p.hasPrefix("?>") {
			p.pos += 2
			break
		}
		if p.eof() {
			return p.errf(start, "unterminated XML declaration")
		}
		name, err := p.readName()
		if err != nil {
			return p.errf(p.pos, "malformed XML declaration")
		}
		value, err := p.readQuotedValue()
		if err != nil {
			return err
		}
		for next < len(fields) && fields[next] != name {
			next++
		}
		if next >= len(fields) {
			return p.errf(start, "malformed XML declaration: unexpected field %q", name)
		}
		switch name {
		case "version":
			decl.Version = value
		case "encoding":
			decl.Encoding = value
		case "standalone":
			if value != "yes" && value != "no" {
				return p.errf(start, "malformed XML declaration: standalone must be yes or no")
			}
			decl.Standalone = value
		}
		next++
	}
	if decl.Version == "" {
		return p.errf(start, "malformed XML declaration: missing version")
	}
	p.doc.decl = decl
	return nil
}

// parseDoctype captures the doctype verbatim, including any internal
// subset between brackets.
func (p *parser) parseDoctype() error {
	start := p.pos
	p.pos += len("<!DOCTYPE")
	depth := 0
	for !p.eof() {
		switch p.src[p.pos] {
		case '[':
			depth++
		case ']':
			depth--
		case '>':
			if depth == 0 {
				p.pos++
				p.doc.doctype = p.src[start:p.pos]
				return nil
			}
		}
		p.pos++
	}
	return p.errf(start, "unterminated doctype")
}

func (p *parser) parseComment() (string, error) {
	start := p.pos
	p.pos += len("<!--")
	end := strings.Index(p.src[p.pos:], "-->")
	if end < 0 {
		return "", p.errf(start, "unterminated comment")
	}
	text := p.src[p.pos : p.pos+end]
	p.pos += end + len("-->")
	return text, nil
}

func (p *parser) parseCData() (string, error) {
	start := p.pos
	p.pos += len("<![CDATA[")
	end := strings.Index(p.src[p.pos:], "]]>")
	if end < 0 {
		return "", p.errf(start, "unterminated CDATA section")
	}
	text := p.src[p.pos : p.pos+end]
	p.pos += end + len("]]>")
	return text, nil
}

// parseElement parses an element starting at '<'. The new node is linked
// under parent unless parent is the zero handle (the root case).
func (p *parser) parseElement(parent NodeHandle) (NodeHandle, error) {
	open := p.pos
	p.pos++ // consume '<'
	name, err := p.readName()
	if err != nil {
		return NodeHandle{}, err
	}
	n := node{kind: ElementNode, name: name, parent: parent}
	for {
		p.skipSpace()
		if p.eof() {
			return NodeHandle{}, p.errf(open, "unclosed tag <%s>", name)
		}
		if p.hasPrefix("/>") || p.src[p.pos] == '>' {
			break
		}
		attrName, err := p.readName()
		if err != nil {
			return NodeHandle{}, p.errf(p.pos, "malformed attribute in <%s>", name)
		}
		for _, attr := range n.attrs {
			if attr.Name == attrName {
				return NodeHandle{}, p.errf(p.pos, "duplicate attribute %q in <%s>", attrName, name)
			}
		}
		value, err := p.readQuotedValue()
		if err != nil {
			return NodeHandle{}, err
		}
		n.attrs = append(n.attrs, Attr{Name: attrName, Value: value})
	}

	h := p.doc.arena.allocate(n)
	if !parent.IsZero() {
		pn, err := p.doc.arena.resolve(parent)
		if err == nil {
			pn.children = append(pn.children, h)
		}
	}

	if p.hasPrefix("/>") {
		p.pos += 2
		return h, nil
	}
	p.pos++ // consume '>'

	for {
		if p.eof() {
			return NodeHandle{}, p.errf(open, "unclosed tag <%s>", name)
		}
		switch {
		case p.hasPrefix("</"):
			p.pos += 2
			closeName, err := p.readName()
			if err != nil {
				return NodeHandle{}, err
			}
			if closeName != name {
				return NodeHandle{}, p.errf(p.pos, "mismatched closing tag: expected </%s>, found </%s>", name, closeName)
			}
			p.skipSpace()
			if p.eof() || p.src[p.pos] != '>' {
				return NodeHandle{}, p.errf(p.pos, "malformed closing tag </%s>", closeName)
			}
			p.pos++
			return h, nil
		case p.hasPrefix("<!--"):
			text, err := p.parseComment()
			if err != nil {
				return NodeHandle{}, err
			}
			p.appendChild(h, node{kind: CommentNode, text: text, parent: h})
		case p.hasPrefix("<![CDATA["):
			text, err := p.parseCData()
			if err != nil {
				return NodeHandle{}, err
			}
			p.appendChild(h, node{kind: CDATASectionNode, text: text, parent: h})
		case p.hasPrefix("<?"):
			return NodeHandle{}, p.errf(p.pos, "processing instructions are not supported")
		case p.src[p.pos] == '<':
			if _, err := p.parseElement(h); err != nil {
				return NodeHandle{}, err
			}
		default:
			text, err := p.parseText()
			if err != nil {
				return NodeHandle{}, err
			}
			// Whitespace-only runs between elements are formatting, not
			// content; dropping them keeps pretty output stable under
			// reparse.
			if strings.TrimSpace(text) != "" {
				p.appendChild(h, node{kind: TextNode, text: text, parent: h})
			}
		}
	}
}

func (p *parser) appendChild(parent NodeHandle, n node) {
	h := p.doc.arena.allocate(n)
	pn, err := p.doc.arena.resolve(parent)
	if err == nil {
		pn.children = append(pn.children, h)
	}
}

// parseText consumes character data up to the next markup, decoding
// character and entity references.
func (p *parser) parseText() (string, error) {
	var sb strings.Builder
	for !p.eof() && p.src[p.pos] != '<' {
		if p.src[p.pos] == '&' {
			r, err := p.readReference()
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
			continue
		}
		sb.WriteByte(p.src[p.pos])
		p.pos++
	}
	return sb.String(), nil
}

// readQuotedValue consumes ="value" (single or double quoted), decoding
// references inside the value.
func (p *parser) readQuotedValue() (string, error) {
	p.skipSpace()
	if p.eof() || p.src[p.pos] != '=' {
		return "", p.errf(p.pos, "malformed attribute: expected '='")
	}
	p.pos++
	p.skipSpace()
	if p.eof() || (p.src[p.pos] != '"' && p.src[p.pos] != '\'') {
		return "", p.errf(p.pos, "malformed attribute: value must be quoted")
	}
	quote := p.src[p.pos]
	start := p.pos
	p.pos++
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errf(start, "unterminated attribute value")
		}
		switch p.src[p.pos] {
		case quote:
			p.pos++
			return sb.String(), nil
		case '<':
			return "", p.errf(p.pos, "invalid character '<' in attribute value")
		case '&':
			r, err := p.readReference()
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte(p.src[p.pos])
			p.pos++
		}
	}
}

// readReference consumes a character or entity reference starting at '&'.
func (p *parser) readReference() (rune, error) {
	start := p.pos
	end := strings.IndexByte(p.src[p.pos:], ';')
	if end < 0 || end > 12 {
		return 0, p.errf(start, "invalid character reference")
	}
	ref := p.src[p.pos+1 : p.pos+end]
	p.pos += end + 1
	switch ref {
	case "amp":
		return '&', nil
	case "lt":
		return '<', nil
	case "gt":
		return '>', nil
	case "quot":
		return '"', nil
	case "apos":
		return '\'', nil
	}
	if strings.HasPrefix(ref, "#") {
		digits := ref[1:]
		base := 10
		if strings.HasPrefix(digits, "x") || strings.HasPrefix(digits, "X") {
			digits = digits[1:]
			base = 16
		}
		code, err := strconv.ParseUint(digits, base, 32)
		if err == nil && utf8.ValidRune(rune(code)) {
			return rune(code), nil
		}
	}
	return 0, p.errf(start, "invalid character reference &%s;", ref)
}
