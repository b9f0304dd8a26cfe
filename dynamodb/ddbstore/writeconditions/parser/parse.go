// Package parser turns condition expression strings into ast.Condition
// trees.
//
// Grammar, lowest precedence first:
//
//	condition := or
//	or        := and { OR and }
//	and       := not { AND not }
//	not       := NOT not | primary
//	primary   := "(" condition ")" | function
//	function  := name "(" path ")"
//	path      := name { "." name }
//	name      := identifier | "#" identifier
package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/acksell/custmvc/dynamodb/ddbstore/writeconditions/ast"
)

func ParseExpr(condition string) (ast.Condition, error) {
	toks, err := lex(condition)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at offset %d", t.text, t.pos)
	}
	return cond, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokName // #placeholder
	tokLParen
	tokRParen
	tokDot
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func lex(s string) ([]token, error) {
	var toks []token
	runes := []rune(s)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case r == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case r == '.':
			toks = append(toks, token{tokDot, ".", i})
			i++
		case r == '#' || isIdentRune(r):
			start := i
			i++
			for i < len(runes) && isIdentRune(runes[i]) {
				i++
			}
			kind := tokIdent
			if r == '#' {
				if i == start+1 {
					return nil, fmt.Errorf("empty expression attribute name at offset %d", start)
				}
				kind = tokName
			}
			toks = append(toks, token{kind, string(runes[start:i]), start})
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", r, i)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(runes)}), nil
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) keyword(kw string) bool {
	t := p.peek()
	if t.kind == tokIdent && strings.EqualFold(t.text, kw) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.next()
	if t.kind != kind {
		if t.kind == tokEOF {
			return t, fmt.Errorf("expected %s, got end of expression", what)
		}
		return t, fmt.Errorf("expected %s, got %q at offset %d", what, t.text, t.pos)
	}
	return t, nil
}

func (p *parser) parseOr() (ast.Condition, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.keyword("OR") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewOr(left, right)
	}
	return left, nil
}

func (p *parser) parseAnd() (ast.Condition, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.keyword("AND") {
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = ast.NewAnd(left, right)
	}
	return left, nil
}

func (p *parser) parseNot() (ast.Condition, error) {
	if p.keyword("NOT") {
		c, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return ast.NewNot(c), nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (ast.Condition, error) {
	if p.peek().kind == tokLParen {
		p.next()
		c, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}
		return c, nil
	}

	fn, err := p.expect(tokIdent, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLParen, `"(" after `+fn.text); err != nil {
		return nil, err
	}
	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen, `")"`); err != nil {
		return nil, err
	}
	return ast.NewFunctionCall(fn.text, path)
}

func (p *parser) parsePath() (*ast.AttributePath, error) {
	path := &ast.AttributePath{}
	for {
		t := p.next()
		switch t.kind {
		case tokIdent:
			name := t.text
			path.Parts = append(path.Parts, &ast.Identifier{Name: &name})
		case tokName:
			path.Parts = append(path.Parts, &ast.Identifier{NameExpression: &ast.ExpressionAttributeName{Name: t.text}})
		default:
			return nil, fmt.Errorf("expected attribute name at offset %d", t.pos)
		}
		if p.peek().kind != tokDot {
			return path, nil
		}
		p.next()
	}
}
