// File: parser.go
// Title: Expression Parser
// Description: Recursive-descent parser building an ast.Node from tokens.
//              Each precedence level is one method. Grammar violations
//              produce ast.Invalid, which propagates to the root.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial parser implementation

package parser

import (
	"github.com/msto63/pascal/foundation/calc/ast"
	"github.com/msto63/pascal/foundation/calc/builtin"
)

// Parser holds the cursor over a token sequence. It is used for exactly
// one Parse call.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse builds the syntax tree for tokens. It returns ast.Invalid when the
// tokens do not form exactly one expression.
func Parse(tokens []Token) ast.Node {
	p := &Parser{tokens: tokens}
	root := p.parseExpression()
	if ast.IsInvalid(root) {
		return root
	}
	if p.pos != len(p.tokens) {
		return ast.Invalid{}
	}
	return root
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// match consumes the current token if it is a symbol among ops
func (p *Parser) match(ops ...string) (string, bool) {
	tok := p.current()
	if tok.Kind != TokenSymbol {
		return "", false
	}
	for _, op := range ops {
		if tok.Text == op {
			p.pos++
			return op, true
		}
	}
	return "", false
}

func (p *Parser) parseExpression() ast.Node {
	return p.parseOr()
}

// binaryLevel parses operand { op operand } with left association
func (p *Parser) binaryLevel(operand func() ast.Node, ops ...string) ast.Node {
	left := operand()
	if ast.IsInvalid(left) {
		return left
	}
	for {
		op, ok := p.match(ops...)
		if !ok {
			return left
		}
		right := operand()
		if ast.IsInvalid(right) {
			return right
		}
		left = ast.Binary{Left: left, Op: op, Right: right}
	}
}

func (p *Parser) parseOr() ast.Node {
	return p.binaryLevel(p.parseAnd, "||")
}

func (p *Parser) parseAnd() ast.Node {
	return p.binaryLevel(p.parseXor, "&&")
}

func (p *Parser) parseXor() ast.Node {
	return p.binaryLevel(p.parseEquality, "^")
}

func (p *Parser) parseEquality() ast.Node {
	return p.binaryLevel(p.parseComparison, "==", "!=")
}

func (p *Parser) parseComparison() ast.Node {
	return p.binaryLevel(p.parseAdditive, "<", ">", "<=", ">=")
}

func (p *Parser) parseAdditive() ast.Node {
	return p.binaryLevel(p.parseMultiplicative, "+", "-")
}

func (p *Parser) parseMultiplicative() ast.Node {
	return p.binaryLevel(p.parsePower, "*", "/")
}

// parsePower is left-associative like every other level
func (p *Parser) parsePower() ast.Node {
	return p.binaryLevel(p.parseUnary, "**")
}

func (p *Parser) parseUnary() ast.Node {
	if op, ok := p.match("-", "!"); ok {
		operand := p.parseUnary()
		if ast.IsInvalid(operand) {
			return operand
		}
		return ast.Unary{Op: op, Operand: operand}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Node {
	tok := p.advance()

	switch tok.Kind {
	case TokenNumber:
		return ast.NumberLiteral{Value: tok.Number}

	case TokenIdentifier:
		switch tok.Text {
		case "true":
			return ast.BoolLiteral{Value: true}
		case "false":
			return ast.BoolLiteral{Value: false}
		}
		if _, ok := p.match("("); ok {
			arg := p.parseParenthesised()
			if ast.IsInvalid(arg) {
				return arg
			}
			return ast.Call{Name: tok.Text, Arg: arg}
		}
		if builtin.IsConstant(tok.Text) {
			return ast.NamedConstant{Name: tok.Text}
		}
		return ast.Invalid{}

	case TokenSymbol:
		if tok.Text == "(" {
			inner := p.parseParenthesised()
			if ast.IsInvalid(inner) {
				return inner
			}
			return ast.Group{Inner: inner}
		}
	}
	return ast.Invalid{}
}

// parseParenthesised parses an expression after an opening parenthesis and
// requires the closing one.
func (p *Parser) parseParenthesised() ast.Node {
	inner := p.parseExpression()
	if ast.IsInvalid(inner) {
		return inner
	}
	if _, ok := p.match(")"); !ok {
		return ast.Invalid{}
	}
	return inner
}
