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

// Recursive-descent parser for the query grammar:
//
//	ap  := doc(F) '/' rp | doc(F) '//' rp | doc(F)
//	rp  := Name | '*' | '.' | '..' | 'text()' | '@' Name
//	     | '(' rp ')' | rp '/' rp | rp '//' rp | rp '[' f ']' | rp ',' rp
//	f   := rp | rp ('=' | 'eq') rp | rp ('==' | 'is') rp
//	     | '(' f ')' | f 'and' f | f 'or' f | 'not' f
//
// Precedence: ',' binds loosest, then '/' and '//' (left-associative),
// then the '[f]' postfix.  In filters 'or' < 'and' < 'not'.  String
// literals appear only as the doc() filename; in particular they are
// not part of the filter grammar, so predicates compare paths to
// paths, never to quoted strings.

package query

import (
	"fmt"

	"github.com/sdcio/xml-query/dom"
	"github.com/sdcio/xml-query/xpath"
)

type parser struct {
	expr string
	lex  *xpath.Lexer
	tok  xpath.Token
}

// Parse compiles query text into an absolute-path AST.
func Parse(expr string) (xpath.AbsolutePath, error) {
	p := newParser(expr)

	ap, err := p.parseAbsolute()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}

	return ap, nil
}

// ParseRelative compiles a bare relative path, for composition with
// contexts established elsewhere.
func ParseRelative(expr string) (xpath.RelativePath, error) {
	p := newParser(expr)

	rp, err := p.parseRelPath()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}

	return rp, nil
}

func newParser(expr string) *parser {
	p := &parser{expr: expr, lex: xpath.NewLexer(expr)}
	p.advance()
	return p
}

func (p *parser) advance() {
	p.tok = p.lex.NextToken()
}

// parseError wraps a message into a ParseError carrying the expression
// and the approximate position the parse got to.
func (p *parser) parseError(msg string) error {
	currentPos := len(p.expr) - len(p.lex.Remaining())
	if currentPos < 0 {
		currentPos = 0
	}
	parsed := p.expr[:currentPos]
	unparsed := p.expr[currentPos:]

	if lexErr := p.lex.GetError(); lexErr != nil {
		msg = msg + "; " + lexErr.Error()
	}

	return &dom.ParseError{
		Source: p.expr,
		Err: fmt.Errorf("%s\nGot to approx [X] in '%s [X] %s'",
			msg, parsed, unparsed),
	}
}

func (p *parser) unexpected(what string) error {
	return p.parseError(fmt.Sprintf(
		"expected %s, got '%s'", what, p.tok))
}

func (p *parser) expect(tokenType int) error {
	if p.tok.Type != tokenType {
		return p.unexpected("'" + xpath.GetTokenName(tokenType) + "'")
	}
	p.advance()
	return nil
}

func (p *parser) expectEOF() error {
	if p.tok.Type != xpath.EOF {
		return p.unexpected("end of expression")
	}
	return nil
}

// ap := doc(F) ('/' rp | '//' rp)?
func (p *parser) parseAbsolute() (xpath.AbsolutePath, error) {
	if err := p.expect(xpath.DOC); err != nil {
		return nil, err
	}
	if err := p.expect('('); err != nil {
		return nil, err
	}
	if p.tok.Type != xpath.LITERAL {
		return nil, p.unexpected("document reference literal")
	}
	file := p.tok.Name
	p.advance()
	if err := p.expect(')'); err != nil {
		return nil, err
	}

	switch p.tok.Type {
	case '/':
		p.advance()
		rel, err := p.parseRelPath()
		if err != nil {
			return nil, err
		}
		return xpath.ApChildren{File: file, Rel: rel}, nil

	case xpath.DBLSLASH:
		p.advance()
		rel, err := p.parseRelPath()
		if err != nil {
			return nil, err
		}
		return xpath.ApAll{File: file, Rel: rel}, nil

	default:
		return xpath.ApDoc{File: file}, nil
	}
}

// rp := path (',' path)*
func (p *parser) parseRelPath() (xpath.RelativePath, error) {
	left, err := p.parsePath()
	if err != nil {
		return nil, err
	}

	for p.tok.Type == ',' {
		p.advance()
		right, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		left = xpath.RpPair{Left: left, Right: right}
	}

	return left, nil
}

// path := postfixed (('/' | '//') postfixed)*
func (p *parser) parsePath() (xpath.RelativePath, error) {
	left, err := p.parsePostfixed()
	if err != nil {
		return nil, err
	}
	return p.parsePathContinuation(left)
}

func (p *parser) parsePathContinuation(
	left xpath.RelativePath,
) (xpath.RelativePath, error) {
	for {
		switch p.tok.Type {
		case '/':
			p.advance()
			right, err := p.parsePostfixed()
			if err != nil {
				return nil, err
			}
			left = xpath.RpStep{First: left, Next: right}

		case xpath.DBLSLASH:
			p.advance()
			right, err := p.parsePostfixed()
			if err != nil {
				return nil, err
			}
			left = xpath.RpStepAll{First: left, Next: right}

		default:
			return left, nil
		}
	}
}

// postfixed := primary ('[' f ']')*
func (p *parser) parsePostfixed() (xpath.RelativePath, error) {
	rel, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.tok.Type == '[' {
		p.advance()
		cond, err := p.parseFilter()
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		rel = xpath.RpFilter{Rel: rel, Cond: cond}
	}

	return rel, nil
}

func (p *parser) parsePrimary() (xpath.RelativePath, error) {
	switch p.tok.Type {
	case xpath.NAME:
		name := p.tok.Name
		p.advance()
		return xpath.RpTag{Name: name}, nil

	case '*':
		p.advance()
		return xpath.RpWildcard{}, nil

	case '.':
		p.advance()
		return xpath.RpCurrent{}, nil

	case xpath.DOTDOT:
		p.advance()
		return xpath.RpParent{}, nil

	case xpath.TEXTFUNC:
		p.advance()
		if err := p.expect('('); err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return xpath.RpText{}, nil

	case '@':
		p.advance()
		if p.tok.Type != xpath.NAME {
			return nil, p.unexpected("attribute name")
		}
		name := p.tok.Name
		p.advance()
		return xpath.RpAttribute{Name: name}, nil

	case '(':
		p.advance()
		rel, err := p.parseRelPath()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return xpath.RpParen{Rel: rel}, nil

	case xpath.LITERAL:
		return nil, p.parseError(
			"string literals are only valid as document references")

	default:
		return nil, p.unexpected("a path step")
	}
}

// f := or-expr; or := and ('or' and)*; and := unary ('and' unary)*
func (p *parser) parseFilter() (xpath.Filter, error) {
	left, err := p.parseAndFilter()
	if err != nil {
		return nil, err
	}

	for p.tok.Type == xpath.OR {
		p.advance()
		right, err := p.parseAndFilter()
		if err != nil {
			return nil, err
		}
		left = xpath.FltOr{Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) parseAndFilter() (xpath.Filter, error) {
	left, err := p.parseUnaryFilter()
	if err != nil {
		return nil, err
	}

	for p.tok.Type == xpath.AND {
		p.advance()
		right, err := p.parseUnaryFilter()
		if err != nil {
			return nil, err
		}
		left = xpath.FltAnd{Left: left, Right: right}
	}

	return left, nil
}

// unary := 'not' unary | comparison | '(' f ')'
//
// A leading '(' is ambiguous: '(a/b) = c' opens a path while
// '(a = b) and c' opens a filter.  The lexer is a plain value, so we
// snapshot it, try the path reading, and fall back to the grouped
// filter when that fails.
func (p *parser) parseUnaryFilter() (xpath.Filter, error) {
	if p.tok.Type == xpath.NOT {
		p.advance()
		cond, err := p.parseUnaryFilter()
		if err != nil {
			return nil, err
		}
		return xpath.FltNot{Cond: cond}, nil
	}

	if p.tok.Type == '(' {
		lexSnap := *p.lex
		tokSnap := p.tok

		cmp, err := p.parseComparison()
		if err == nil {
			return cmp, nil
		}

		*p.lex = lexSnap
		p.tok = tokSnap
		p.advance()
		cond, err := p.parseFilter()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return xpath.FltParen{Cond: cond}, nil
	}

	return p.parseComparison()
}

// comparison := rp | rp ('='|'eq') rp | rp ('=='|'is') rp
func (p *parser) parseComparison() (xpath.Filter, error) {
	left, err := p.parseRelPath()
	if err != nil {
		return nil, err
	}

	switch p.tok.Type {
	case xpath.VALEQ:
		p.advance()
		right, err := p.parseRelPath()
		if err != nil {
			return nil, err
		}
		return xpath.FltValueEq{Left: left, Right: right}, nil

	case xpath.IDEQ:
		p.advance()
		right, err := p.parseRelPath()
		if err != nil {
			return nil, err
		}
		return xpath.FltIdentityEq{Left: left, Right: right}, nil

	default:
		return xpath.FltExists{Rel: left}, nil
	}
}
