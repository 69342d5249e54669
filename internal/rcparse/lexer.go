package rcparse

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenString
	tokenNumber
	tokenComma
	tokenBegin
	tokenEnd
	tokenOther
)

type token struct {
	kind  tokenKind
	value string // for strings: unescaped inner text
	start int    // byte offset in source text, inclusive
	end   int    // byte offset in source text, exclusive
}

// lex tokenises RC source text. Comments and preprocessor lines are dropped;
// string literals keep their source byte range so the serializer can splice
// replacements in place.
func lex(text string) ([]token, error) {
	var tokens []token
	i := 0
	n := len(text)

	for i < n {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '/' && i+1 < n && text[i+1] == '/':
			for i < n && text[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < n && text[i+1] == '*':
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return nil, fmt.Errorf("rcparse: unterminated block comment at offset %d", i)
			}
			i += 2 + end + 2
		case c == '#':
			// Preprocessor directive; honour line continuations.
			for i < n {
				if text[i] == '\n' {
					if i > 0 && text[i-1] == '\\' {
						i++
						continue
					}
					break
				}
				i++
			}
		case c == '"':
			tok, next, err := lexString(text, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
		case c == ',':
			tokens = append(tokens, token{kind: tokenComma, value: ",", start: i, end: i + 1})
			i++
		case c == '{':
			tokens = append(tokens, token{kind: tokenBegin, value: "{", start: i, end: i + 1})
			i++
		case c == '}':
			tokens = append(tokens, token{kind: tokenEnd, value: "}", start: i, end: i + 1})
			i++
		case isIdentStart(c):
			start := i
			for i < n && isIdentPart(text[i]) {
				i++
			}
			word := text[start:i]
			kind := tokenIdent
			switch strings.ToUpper(word) {
			case "BEGIN":
				kind = tokenBegin
			case "END":
				kind = tokenEnd
			}
			tokens = append(tokens, token{kind: kind, value: word, start: start, end: i})
		case isDigit(c) || (c == '-' && i+1 < n && isDigit(text[i+1])):
			start := i
			i++
			for i < n && (isIdentPart(text[i])) {
				i++
			}
			tokens = append(tokens, token{kind: tokenNumber, value: text[start:i], start: start, end: i})
		default:
			tokens = append(tokens, token{kind: tokenOther, value: string(c), start: i, end: i + 1})
			i++
		}
	}
	return tokens, nil
}

func lexString(text string, start int) (token, int, error) {
	var b strings.Builder
	i := start + 1
	n := len(text)
	for i < n {
		c := text[i]
		switch {
		case c == '"' && i+1 < n && text[i+1] == '"':
			b.WriteByte('"')
			i += 2
		case c == '"':
			return token{kind: tokenString, value: b.String(), start: start, end: i + 1}, i + 1, nil
		case c == '\\' && i+1 < n:
			// Keep backslash escapes verbatim; they are part of the
			// translatable text for RC resources.
			b.WriteByte(c)
			b.WriteByte(text[i+1])
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	return token{}, 0, fmt.Errorf("rcparse: unterminated string at offset %d", start)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '.'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
