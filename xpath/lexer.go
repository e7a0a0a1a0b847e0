// Copyright 2024 Nokia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file implements tokenisation for the query dialect.  Identifier
// lexing follows the XML Name rules.  Keywords ('and', 'or', 'eq',
// 'is', 'not') are contextual: 'eq', 'is', 'and' and 'or' are only
// operators where an operator may legally appear, so elements named
// after them remain reachable in operand position.  'not' is the one
// reservation that cuts the other way: it is taken as the prefix
// operator whenever it appears in operand position.

package xpath

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Token is one lexed token.  Name carries the identifier text for NAME
// tokens and the unquoted string for LITERAL tokens.
type Token struct {
	Type int
	Name string
}

func (t Token) String() string {
	switch t.Type {
	case NAME, LITERAL:
		return fmt.Sprintf("%s(%s)", GetTokenName(t.Type), t.Name)
	default:
		return GetTokenName(t.Type)
	}
}

// LEXER
type Lexer struct {
	line []byte
	err  error

	// Internal use only
	peek      rune
	precToken int // Preceding token type, if any (otherwise EOF)
}

func NewLexer(expr string) *Lexer {
	return &Lexer{line: []byte(expr)}
}

func (x *Lexer) GetError() error { return x.err }

func (x *Lexer) SetError(err error) {
	if x.err == nil {
		// Use first error found, if more than one detected.
		x.err = err
	}
}

// Remaining returns the unconsumed tail of the expression, for
// approximate error positions.
func (x *Lexer) Remaining() string {
	if x.peek != EOF {
		return string(x.peek) + string(x.line)
	}
	return string(x.line)
}

// Some parsing produces different tokens depending on what came before
// so we need to keep track of this.
func (x *Lexer) saveTokenType(tokenType int) Token {
	x.precToken = tokenType
	return Token{Type: tokenType}
}

func (x *Lexer) saveNamedToken(tokenType int, name string) Token {
	x.precToken = tokenType
	return Token{Type: tokenType, Name: name}
}

// NextToken returns the next token in the expression, EOF at the end,
// or ERR with the error stored on the lexer.
func (x *Lexer) NextToken() Token {
	for {
		c := x.next()
		switch c {
		case EOF:
			return x.saveTokenType(EOF)

		case ERR:
			x.SetError(fmt.Errorf("invalid UTF-8 input"))
			return x.saveTokenType(ERR)

		case '"', '\'':
			return x.lexLiteral(c)

		case '.':
			return x.lexDot()

		case '/':
			return x.lexSlash()

		case '=':
			return x.lexEquals()

		case '(', ')', '@', ',', '[', ']', '*':
			return x.saveTokenType(int(c))

		case ' ', '\t', '\n', '\r':
			// Deal with whitespace by ignoring it
			continue
		}

		if x.isNameStartChar(c) {
			return x.lexName(c)
		}

		x.SetError(fmt.Errorf("unrecognised character %q", c))
		return x.saveTokenType(ERR)
	}
}

func (x *Lexer) lexDot() Token {
	next := x.next()
	if next == '.' {
		return x.saveTokenType(DOTDOT)
	}
	x.peek = next
	return x.saveTokenType('.')
}

func (x *Lexer) lexSlash() Token {
	// Could be '/' or '//'.  NB - this is never 'divide'.
	next := x.next()
	if next == '/' {
		return x.saveTokenType(DBLSLASH)
	}
	x.peek = next
	return x.saveTokenType('/')
}

func (x *Lexer) lexEquals() Token {
	next := x.next()
	if next == '=' {
		return x.saveTokenType(IDEQ)
	}
	x.peek = next
	return x.saveTokenType(VALEQ)
}

// Lex 'literal' string contained in single or double quotes.
func (x *Lexer) lexLiteral(quote rune) Token {
	literalMatcher := func(c rune) bool {
		return c != quote
	}

	// Skip initial quote - start from 'next'.  As constructToken always
	// adds the first character, empty strings need detecting here.
	var b bytes.Buffer
	c := x.next()
	if c != quote {
		b = x.constructToken(c, literalMatcher, GetTokenName(LITERAL))
		// Skip final quote character.
		x.next()
	}

	if x.err != nil {
		return x.saveTokenType(ERR)
	}
	return x.saveNamedToken(LITERAL, b.String())
}

// Lex a non-literal name.  Disambiguation rules:
//
// (a) If there is a preceding token and said token permits an operator
//     to follow, 'eq', 'is', 'and' and 'or' are OperatorNames.
//
// (b) In operand position, 'not' is the prefix operator.  This is
//     checked before the function rule so 'not (...)' groups rather
//     than reading as an unknown function call.
//
// (c) Otherwise, a name followed by '(' (possibly after whitespace)
//     must be 'doc' or the 'text' node type; anything else is an
//     unknown function.
//
// (d) In all other cases the name is a NameTest.
func (x *Lexer) lexName(c rune) Token {
	nameBuf := x.constructToken(c, x.isNameChar, "NAME")
	name := nameBuf.String()

	if x.tokenCanBeOperator() {
		switch name {
		case "eq":
			return x.saveTokenType(VALEQ)
		case "is":
			return x.saveTokenType(IDEQ)
		case "and":
			return x.saveTokenType(AND)
		case "or":
			return x.saveTokenType(OR)
		}
	} else if name == "not" {
		return x.saveTokenType(NOT)
	}

	if x.nextNonWhitespaceStringIs("(") {
		switch name {
		case "doc":
			return x.saveTokenType(DOC)
		case "text":
			return x.saveTokenType(TEXTFUNC)
		}
		x.SetError(fmt.Errorf(
			"unknown function or node type: '%s'", name))
		return x.saveTokenType(ERR)
	}

	return x.saveNamedToken(NAME, name)
}

// An operator cannot follow a specific set of other tokens, which
// include other operators (quite reasonably).
func (x *Lexer) tokenCanBeOperator() bool {
	switch x.precToken {
	case EOF, '@', '(', '[', ',', '/', DBLSLASH:
		return false

	case AND, OR, NOT, VALEQ, IDEQ:
		return false
	}

	return true
}

// Useful for any multi-character token in conjunction with
// constructToken()
type tokenMatcherFn func(c rune) bool

// Given first character in token and function to identify further
// elements, return full token and set x.peek to the correct character.
func (x *Lexer) constructToken(
	c rune,
	tokenMatcher tokenMatcherFn,
	tokenName string,
) bytes.Buffer {

	var b bytes.Buffer
	b.WriteRune(c)

	for {
		c = x.next()
		if tokenMatcher(c) {
			// Trap EOF here so rogue tokenMatcher functions that fail
			// to spot it cannot loop forever.
			if c == EOF {
				x.SetError(fmt.Errorf("end of %s token not detected",
					tokenName))
				break
			}
			b.WriteRune(c)
		} else {
			break
		}
	}

	x.peek = c

	return b
}

func (x *Lexer) isNameStartChar(c rune) bool {
	switch {
	case (c >= 'A') && (c <= 'Z'):
		return true
	case c == '_':
		return true
	case (c >= 'a') && (c <= 'z'):
		return true
	case (c >= 0xC0) && (c <= 0xD6):
		return true
	case (c >= 0xD8) && (c <= 0xF6):
		return true
	case (c >= 0xF8) && (c <= 0x2FF):
		return true
	case (c >= 0x370) && (c <= 0x37D):
		return true
	case (c >= 0x37F) && (c <= 0x1FFF):
		return true
	case (c >= 0x200C) && (c <= 0x200D):
		return true
	case (c >= 0x2070) && (c <= 0x218F):
		return true
	case (c >= 0x2C00) && (c <= 0x2FEF):
		return true
	case (c >= 0x3001) && (c <= 0xD7FF):
		return true
	case (c >= 0xF900) && (c <= 0xFDCF):
		return true
	case (c >= 0xFDF0) && (c <= 0xFFFD):
		return true
	case (c >= 0x10000) && (c <= 0xEFFFF):
		return true
	default:
		return false
	}
}

func (x *Lexer) isNameChar(c rune) bool {
	switch {
	case x.isNameStartChar(c):
		return true
	case c == '-' || c == '.':
		return true
	case (c >= '0') && (c <= '9'):
		return true
	case c == 0xB7:
		return true
	case (c >= 0x300) && (c <= 0x36F):
		return true
	case (c >= 0x203F) && (c <= 0x2040):
		return true
	default:
		return false
	}
}

// Return the next rune for the lexer.  'peek' may have been set if we
// needed to look ahead but then didn't consume the character.  In
// other words, what remains to be parsed when we call next() is:
//
//	x.peek (if not EOF) + x.line
func (x *Lexer) next() rune {
	if x.peek != EOF {
		r := x.peek
		x.peek = EOF
		return r
	}
	if len(x.line) == 0 {
		return EOF
	}
	c, size := utf8.DecodeRune(x.line)
	x.line = x.line[size:]
	if c == utf8.RuneError && size == 1 {
		return ERR
	}
	return c
}

func isWhitespace(c rune) bool {
	switch c {
	case '\t', '\r', '\n', ' ':
		return true
	}

	return false
}

func nextRune(line []byte) (rune, []byte) {
	if len(line) == 0 {
		return EOF, nil
	}
	c, size := utf8.DecodeRune(line)
	line = line[size:]
	if c == utf8.RuneError && size == 1 {
		return ERR, nil
	}
	return c, line
}

// Won't handle a string containing whitespace.  For now we only need
// this to match '('.  This assumes the passed in string consists of
// ASCII bytes.
func (x *Lexer) nextNonWhitespaceStringIs(expr string) bool {
	// First check peek (if in use) and if not whitespace, compare.
	if (x.peek != EOF) && !isWhitespace(x.peek) {
		if len(expr) == 0 {
			return true
		}
		if x.peek != rune(expr[0]) {
			return false
		}
		if len(expr) == 1 {
			return true
		}
		expr = expr[1:]
	}

	// Next, skip any whitespace
	lc, line := nextRune(x.line)
	for isWhitespace(lc) {
		lc, line = nextRune(line)
	}

	// Now compare the rest of the string against the input
	for _, ec := range expr {
		if lc == EOF || lc == ERR {
			return false
		}
		if ec != lc {
			return false
		}
		lc, line = nextRune(line)
	}

	return true
}
