// File: token.go
// Title: Expression Tokens
// Description: Token kinds and the Token value produced by the lexer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial token model

package parser

import (
	"fmt"

	"github.com/msto63/pascal/foundation/utils/mathx"
)

// TokenKind represents the kind of a lexical token
type TokenKind int

const (
	// TokenEOF signals the end of input. It never appears in Tokenize output.
	TokenEOF TokenKind = iota

	TokenIdentifier // sqrt, PI, true
	TokenNumber     // 42, 1.5e2, 0xff, 0b101
	TokenSymbol     // + ** && (
)

// String returns the name of the token kind
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenNumber:
		return "NUMBER"
	case TokenSymbol:
		return "SYMBOL"
	default:
		return "UNKNOWN"
	}
}

// Token is one lexeme of the input. Number is only set for TokenNumber.
type Token struct {
	Kind   TokenKind
	Text   string
	Number mathx.Decimal
}

// String renders the token for debug output, e.g. NUMBER(0xff)
func (t Token) String() string {
	if t.Kind == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
}

// Is reports whether t is the symbol or identifier text
func (t Token) Is(text string) bool {
	return (t.Kind == TokenSymbol || t.Kind == TokenIdentifier) && t.Text == text
}

// symbols lists every recognised symbol. Longer lexemes come before their
// prefixes so the first match is the longest one.
var symbols = []string{
	"**", "!=", "==", "<<", ">>", "<=", ">=", "&&", "||",
	"+", "-", "*", "/", "%", "<", ">", "^", "!", "&", "|", "~", "(", ")",
}
