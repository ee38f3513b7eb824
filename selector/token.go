// Package selector implements a document-oriented subset of CSS
// selectors: tag, class, id, and attribute tests joined by descendant and
// child combinators, with comma-separated union groups. A compiled
// Selector is reusable across any number of matches.
package selector

import (
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenIdent
	tokenHash   // #name
	tokenString // quoted attribute value
	tokenNumber // digit-led run; only valid as an attribute value
	tokenDelim
	tokenOpenSquare
	tokenCloseSquare
	tokenComma
	tokenWhitespace
)

type token struct {
	typ   tokenType
	value string
	delim byte
	pos   int
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || r == '-' || unicode.IsDigit(r)
}

// tokenize scans the whole input. Structural errors that are visible at
// the token level (unterminated strings, stray characters) are reported
// here; grammar errors are left to the parser.
func tokenize(input string) ([]token, error) {
	var tokens []token
	pos := 0
	for pos < len(input) {
		start := pos
		r, size := utf8.DecodeRuneInString(input[pos:])
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			for pos < len(input) {
				c := input[pos]
				if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
					break
				}
				pos++
			}
			tokens = append(tokens, token{typ: tokenWhitespace, pos: start})
		case isIdentStart(r):
			pos += size
			pos += identTail(input[pos:])
			tokens = append(tokens, token{typ: tokenIdent, value: input[start:pos], pos: start})
		case unicode.IsDigit(r):
			pos += size
			pos += identTail(input[pos:])
			tokens = append(tokens, token{typ: tokenNumber, value: input[start:pos], pos: start})
		case r == '#':
			pos++
			r, size = utf8.DecodeRuneInString(input[pos:])
			if size == 0 || !isIdentStart(r) {
				return nil, &ParseError{Pos: start, Msg: "expected identifier after '#'"}
			}
			pos += size
			pos += identTail(input[pos:])
			tokens = append(tokens, token{typ: tokenHash, value: input[start+1 : pos], pos: start})
		case r == '"' || r == '\'':
			quote := input[pos]
			pos++
			valueStart := pos
			for pos < len(input) && input[pos] != quote {
				pos++
			}
			if pos >= len(input) {
				return nil, &ParseError{Pos: start, Msg: "unterminated string"}
			}
			tokens = append(tokens, token{typ: tokenString, value: input[valueStart:pos], pos: start})
			pos++
		case r == '[':
			tokens = append(tokens, token{typ: tokenOpenSquare, pos: start})
			pos++
		case r == ']':
			tokens = append(tokens, token{typ: tokenCloseSquare, pos: start})
			pos++
		case r == ',':
			tokens = append(tokens, token{typ: tokenComma, pos: start})
			pos++
		case r == '.' || r == '>' || r == '*' || r == '=':
			tokens = append(tokens, token{typ: tokenDelim, delim: input[pos], pos: start})
			pos++
		default:
			return nil, &ParseError{Pos: start, Msg: "unexpected character " + string(r)}
		}
	}
	return tokens, nil
}

func identTail(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !isIdentChar(r) {
			break
		}
		n += size
	}
	return n
}
