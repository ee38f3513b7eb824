package selector

import "fmt"

// ParseError describes a selector that failed to compile. Pos is the
// byte offset of the offending input.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("selector: %s at offset %d", e.Msg, e.Pos)
}

// Selector is a compiled selector. Compiling is independent of any
// document; a Selector never fails during matching and may be reused.
type Selector struct {
	source string
	groups []*complexSelector
}

// complexSelector is a chain of compound selectors joined by combinators.
type complexSelector struct {
	compounds []*compoundSelector
}

type combinator int

const (
	combinatorNone combinator = iota
	combinatorDescendant
	combinatorChild
)

// compoundSelector is one set of simple tests applied to a single
// element. The combinator field records the combinator following this
// compound within its chain.
type compoundSelector struct {
	tag        string // "" no type test, "*" universal
	ids        []string
	classes    []string
	attrs      []attrTest
	combinator combinator
}

type attrTest struct {
	name     string
	value    string
	hasValue bool
}

// Compile parses a selector string into a reusable Selector.
func Compile(source string) (*Selector, error) {
	tokens, err := tokenize(source)
	if err != nil {
		return nil, err
	}
	p := &selectorParser{tokens: tokens}
	groups, err := p.parseSelector()
	if err != nil {
		return nil, err
	}
	return &Selector{source: source, groups: groups}, nil
}

// MustCompile is Compile for selectors known valid at build time; it
// panics on error.
func MustCompile(source string) *Selector {
	s, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return s
}

// String returns the source text the selector was compiled from.
func (s *Selector) String() string {
	return s.source
}

type selectorParser struct {
	tokens []token
	pos    int
}

func (p *selectorParser) current() token {
	if p.pos >= len(p.tokens) {
		return token{typ: tokenEOF, pos: p.endPos()}
	}
	return p.tokens[p.pos]
}

func (p *selectorParser) endPos() int {
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].pos + 1
}

func (p *selectorParser) consume() token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *selectorParser) skipWhitespace() bool {
	skipped := false
	for p.current().typ == tokenWhitespace {
		p.consume()
		skipped = true
	}
	return skipped
}

func (p *selectorParser) parseSelector() ([]*complexSelector, error) {
	var groups []*complexSelector
	p.skipWhitespace()
	if p.current().typ == tokenEOF {
		return nil, &ParseError{Pos: 0, Msg: "empty selector"}
	}
	for {
		group, err := p.parseComplexSelector()
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)

		p.skipWhitespace()
		tok := p.current()
		if tok.typ == tokenEOF {
			return groups, nil
		}
		if tok.typ != tokenComma {
			return nil, &ParseError{Pos: tok.pos, Msg: "unexpected token"}
		}
		p.consume()
		p.skipWhitespace()
		if p.current().typ == tokenEOF {
			return nil, &ParseError{Pos: p.current().pos, Msg: "empty selector group after comma"}
		}
	}
}

func (p *selectorParser) parseComplexSelector() (*complexSelector, error) {
	complexSel := &complexSelector{}
	for {
		compound, err := p.parseCompoundSelector()
		if err != nil {
			return nil, err
		}
		if compound == nil {
			tok := p.current()
			if len(complexSel.compounds) == 0 {
				return nil, &ParseError{Pos: tok.pos, Msg: "expected selector"}
			}
			return nil, &ParseError{Pos: tok.pos, Msg: "dangling combinator"}
		}
		complexSel.compounds = append(complexSel.compounds, compound)

		hadWhitespace := p.skipWhitespace()
		tok := p.current()
		switch {
		case tok.typ == tokenEOF || tok.typ == tokenComma:
			return complexSel, nil
		case tok.typ == tokenDelim && tok.delim == '>':
			p.consume()
			compound.combinator = combinatorChild
			p.skipWhitespace()
		case hadWhitespace:
			compound.combinator = combinatorDescendant
		default:
			return nil, &ParseError{Pos: tok.pos, Msg: "unexpected token"}
		}
	}
}

func (p *selectorParser) parseCompoundSelector() (*compoundSelector, error) {
	compound := &compoundSelector{}
	hasContent := false
	for {
		tok := p.current()
		switch tok.typ {
		case tokenIdent:
			if hasContent {
				return nil, &ParseError{Pos: tok.pos, Msg: "unexpected identifier"}
			}
			compound.tag = p.consume().value
			hasContent = true

		case tokenNumber:
			return nil, &ParseError{Pos: tok.pos, Msg: "identifier cannot start with a digit"}

		case tokenHash:
			p.consume()
			compound.ids = append(compound.ids, tok.value)
			hasContent = true

		case tokenDelim:
			switch tok.delim {
			case '*':
				if hasContent {
					return nil, &ParseError{Pos: tok.pos, Msg: "unexpected '*'"}
				}
				p.consume()
				compound.tag = "*"
				hasContent = true
			case '.':
				p.consume()
				name := p.current()
				if name.typ == tokenNumber {
					return nil, &ParseError{Pos: name.pos, Msg: "identifier cannot start with a digit"}
				}
				if name.typ != tokenIdent {
					return nil, &ParseError{Pos: name.pos, Msg: "expected class name after '.'"}
				}
				compound.classes = append(compound.classes, p.consume().value)
				hasContent = true
			default:
				if !hasContent {
					return nil, nil
				}
				return compound, nil
			}

		case tokenOpenSquare:
			attr, err := p.parseAttributeTest()
			if err != nil {
				return nil, err
			}
			compound.attrs = append(compound.attrs, *attr)
			hasContent = true

		default:
			if !hasContent {
				return nil, nil
			}
			return compound, nil
		}
	}
}

func (p *selectorParser) parseAttributeTest() (*attrTest, error) {
	open := p.consume() // [
	p.skipWhitespace()

	tok := p.current()
	if tok.typ == tokenNumber {
		return nil, &ParseError{Pos: tok.pos, Msg: "identifier cannot start with a digit"}
	}
	if tok.typ != tokenIdent {
		return nil, &ParseError{Pos: tok.pos, Msg: "expected attribute name"}
	}
	attr := &attrTest{name: p.consume().value}

	p.skipWhitespace()
	tok = p.current()
	if tok.typ == tokenDelim && tok.delim == '=' {
		p.consume()
		p.skipWhitespace()
		value := p.current()
		switch value.typ {
		case tokenIdent, tokenString, tokenNumber:
			attr.value = p.consume().value
			attr.hasValue = true
		default:
			return nil, &ParseError{Pos: value.pos, Msg: "expected attribute value"}
		}
		p.skipWhitespace()
		tok = p.current()
	}
	if tok.typ != tokenCloseSquare {
		return nil, &ParseError{Pos: open.pos, Msg: "unterminated attribute selector"}
	}
	p.consume()
	return attr, nil
}
