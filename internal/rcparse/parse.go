// Package rcparse parses Windows resource scripts (.rc) far enough to expose
// their translatable strings: STRINGTABLE entries, MENU/MENUEX items and
// POPUP captions, DIALOG/DIALOGEX captions and control text. Parsing keeps
// byte ranges into the source text so serialisation rewrites the template in
// place, leaving layout, comments and non-string statements untouched.
package rcparse

import (
	"fmt"
	"strconv"
	"strings"
)

// File is a parsed resource script.
type File struct {
	// Lang and SubLang carry the script's LANGUAGE statement constants, empty
	// when the script does not specify one.
	Lang    string
	SubLang string
	// Strings lists every translatable string resource in source order.
	Strings []*StringResource

	text          string
	langArgsStart int
	langArgsEnd   int
}

// StringResource is one translatable string with its source byte range.
type StringResource struct {
	// Key identifies the resource, e.g. "STRINGTABLE.IDS_HELLO" or
	// "DIALOGEX.IDD_ABOUT.CAPTION".
	Key string
	// Value is the string content with quote doubling undone.
	Value string

	start int // range of the quoted literal, including quotes
	end   int
}

// Available reports whether the RC parsing capability can be used. Hosts
// check it once at startup (registry registration) rather than probing per
// call. The parser is compiled into this package, so the check always
// succeeds; it exists for formats whose parsing backend is optional, and
// keeps the registration contract uniform across drivers.
func Available() error {
	return nil
}

var textControls = map[string]bool{
	"LTEXT": true, "RTEXT": true, "CTEXT": true,
	"PUSHBUTTON": true, "DEFPUSHBUTTON": true, "PUSHBOX": true,
	"GROUPBOX": true, "CHECKBOX": true, "AUTOCHECKBOX": true,
	"STATE3": true, "AUTO3STATE": true,
	"RADIOBUTTON": true, "AUTORADIOBUTTON": true,
	"CONTROL": true,
}

// Parse lexes and parses decoded RC text.
func Parse(text string) (*File, error) {
	tokens, err := lex(text)
	if err != nil {
		return nil, err
	}

	f := &File{text: text, langArgsStart: -1, langArgsEnd: -1}
	p := &parser{tokens: tokens, file: f}
	if err := p.run(); err != nil {
		return nil, err
	}
	return f, nil
}

type parser struct {
	tokens []token
	pos    int
	file   *File
}

func (p *parser) run() error {
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.kind != tokenIdent {
			p.pos++
			continue
		}
		switch strings.ToUpper(tok.value) {
		case "LANGUAGE":
			p.pos++
			p.parseLanguage()
		case "STRINGTABLE":
			p.pos++
			if err := p.parseStringTable(); err != nil {
				return err
			}
		default:
			if kw, name, ok := p.peekNamedResource(); ok {
				p.pos += 2
				switch kw {
				case "MENU", "MENUEX":
					if err := p.parseMenu(kw, name); err != nil {
						return err
					}
				case "DIALOG", "DIALOGEX":
					if err := p.parseDialog(kw, name); err != nil {
						return err
					}
				}
				continue
			}
			p.pos++
		}
	}
	return nil
}

// peekNamedResource matches "<name> MENU|MENUEX|DIALOG|DIALOGEX".
func (p *parser) peekNamedResource() (kw, name string, ok bool) {
	if p.pos+1 >= len(p.tokens) {
		return "", "", false
	}
	next := p.tokens[p.pos+1]
	if next.kind != tokenIdent {
		return "", "", false
	}
	switch strings.ToUpper(next.value) {
	case "MENU", "MENUEX", "DIALOG", "DIALOGEX":
		return strings.ToUpper(next.value), p.tokens[p.pos].value, true
	}
	return "", "", false
}

func (p *parser) parseLanguage() {
	args := []token{}
	sawComma := false
	for p.pos < len(p.tokens) && len(args) < 2 {
		tok := p.tokens[p.pos]
		if tok.kind == tokenComma {
			sawComma = true
			p.pos++
			continue
		}
		if tok.kind != tokenIdent && tok.kind != tokenNumber {
			break
		}
		// The sublanguage is comma-separated; a bare identifier after the
		// first argument is the next statement, not part of this one.
		if len(args) == 1 && !sawComma {
			break
		}
		args = append(args, tok)
		p.pos++
	}
	if len(args) == 0 {
		return
	}
	p.file.Lang = args[0].value
	p.file.langArgsStart = args[0].start
	p.file.langArgsEnd = args[len(args)-1].end
	if len(args) > 1 {
		p.file.SubLang = args[1].value
	}
}

func (p *parser) parseStringTable() error {
	if !p.skipToBegin() {
		return fmt.Errorf("rcparse: STRINGTABLE without BEGIN")
	}
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		switch tok.kind {
		case tokenEnd:
			p.pos++
			return nil
		case tokenIdent, tokenNumber:
			id := tok.value
			p.pos++
			p.skipCommas()
			if s, ok := p.takeString(); ok {
				p.addString("STRINGTABLE."+id, s)
			}
		default:
			p.pos++
		}
	}
	return fmt.Errorf("rcparse: STRINGTABLE without END")
}

func (p *parser) parseMenu(kw, name string) error {
	if !p.skipToBegin() {
		return fmt.Errorf("rcparse: %s %s without BEGIN", kw, name)
	}
	return p.parseMenuBody(kw + "." + name)
}

func (p *parser) parseMenuBody(path string) error {
	popups := 0
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		switch {
		case tok.kind == tokenEnd:
			p.pos++
			return nil
		case tok.kind == tokenIdent && strings.ToUpper(tok.value) == "POPUP":
			p.pos++
			popups++
			if s, ok := p.takeString(); ok {
				p.addString(fmt.Sprintf("%s.POPUP.%d", path, popups), s)
			}
			if !p.skipToBegin() {
				return fmt.Errorf("rcparse: POPUP without BEGIN in %s", path)
			}
			if err := p.parseMenuBody(fmt.Sprintf("%s.POPUP.%d", path, popups)); err != nil {
				return err
			}
		case tok.kind == tokenIdent && strings.ToUpper(tok.value) == "MENUITEM":
			p.pos++
			if p.pos < len(p.tokens) && p.tokens[p.pos].kind == tokenIdent &&
				strings.ToUpper(p.tokens[p.pos].value) == "SEPARATOR" {
				p.pos++
				continue
			}
			s, ok := p.takeString()
			if !ok {
				continue
			}
			p.skipCommas()
			id := ""
			if p.pos < len(p.tokens) && (p.tokens[p.pos].kind == tokenIdent || p.tokens[p.pos].kind == tokenNumber) {
				id = p.tokens[p.pos].value
				p.pos++
			}
			if id == "" {
				id = "item" + strconv.Itoa(len(p.file.Strings)+1)
			}
			p.addString(path+".MENUITEM."+id, s)
		default:
			p.pos++
		}
	}
	return fmt.Errorf("rcparse: menu body without END in %s", path)
}

func (p *parser) parseDialog(kw, name string) error {
	// Header clauses up to BEGIN. CAPTION text is translatable; the FONT
	// clause carries a face-name string that must stay untouched.
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.kind == tokenBegin {
			p.pos++
			break
		}
		if tok.kind == tokenIdent {
			switch strings.ToUpper(tok.value) {
			case "CAPTION":
				p.pos++
				if s, ok := p.takeString(); ok {
					p.addString(kw+"."+name+".CAPTION", s)
				}
				continue
			case "FONT":
				p.pos++
				for p.pos < len(p.tokens) {
					k := p.tokens[p.pos].kind
					if k == tokenNumber || k == tokenComma || k == tokenString {
						p.pos++
						continue
					}
					break
				}
				continue
			}
		}
		p.pos++
	}

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.kind == tokenEnd {
			p.pos++
			return nil
		}
		if tok.kind == tokenIdent && textControls[strings.ToUpper(tok.value)] {
			p.pos++
			s, ok := p.takeString()
			if !ok {
				continue
			}
			p.skipCommas()
			id := ""
			if p.pos < len(p.tokens) && (p.tokens[p.pos].kind == tokenIdent || p.tokens[p.pos].kind == tokenNumber) {
				id = p.tokens[p.pos].value
				p.pos++
			}
			if id == "" || s.value == "" {
				continue
			}
			p.addString(kw+"."+name+"."+id, s)
			continue
		}
		p.pos++
	}
	return fmt.Errorf("rcparse: dialog %s without END", name)
}

func (p *parser) skipToBegin() bool {
	for p.pos < len(p.tokens) {
		if p.tokens[p.pos].kind == tokenBegin {
			p.pos++
			return true
		}
		p.pos++
	}
	return false
}

func (p *parser) skipCommas() {
	for p.pos < len(p.tokens) && p.tokens[p.pos].kind == tokenComma {
		p.pos++
	}
}

// takeString consumes a string literal, folding adjacent literals the way the
// resource compiler concatenates them.
func (p *parser) takeString() (token, bool) {
	if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != tokenString {
		return token{}, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	for p.pos < len(p.tokens) && p.tokens[p.pos].kind == tokenString {
		tok.value += p.tokens[p.pos].value
		tok.end = p.tokens[p.pos].end
		p.pos++
	}
	return tok, true
}

func (p *parser) addString(key string, tok token) {
	if tok.value == "" {
		return
	}
	p.file.Strings = append(p.file.Strings, &StringResource{
		Key:   key,
		Value: tok.value,
		start: tok.start,
		end:   tok.end,
	})
}
