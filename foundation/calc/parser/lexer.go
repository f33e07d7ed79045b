// File: lexer.go
// Title: Expression Lexical Analyzer
// Description: Converts expression text into tokens. Recognises identifiers,
//              hexadecimal, binary and decimal number literals, and the
//              operator symbols. Tokens carry no position information.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial lexer implementation

package parser

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/msto63/pascal/foundation/utils/mathx"
)

// MaxExponent is the largest accepted magnitude of a decimal exponent
const MaxExponent = 4096

// LexError reports input the lexer cannot turn into a token
type LexError struct {
	Offset int    // rune offset where the offending token starts
	Text   string // offending text
	Reason string
}

// Error implements the error interface
func (e *LexError) Error() string {
	return fmt.Sprintf("%s at offset %d: %q", e.Reason, e.Offset, e.Text)
}

// Lexer holds the cursor over the input runes
type Lexer struct {
	input []rune
	pos   int
}

// NewLexer creates a lexer for the given source
func NewLexer(source string) *Lexer {
	return &Lexer{input: []rune(source)}
}

// Tokenize converts the whole source into tokens
func Tokenize(source string) ([]Token, error) {
	l := NewLexer(source)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// NextToken returns the next token, or a TokenEOF token at end of input
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	ch, ok := l.current()
	switch {
	case !ok:
		return Token{Kind: TokenEOF}, nil
	case unicode.IsLetter(ch):
		return l.readIdentifier(), nil
	case isDigit(ch) || ch == '.':
		return l.readNumber()
	default:
		return l.readSymbol()
	}
}

func (l *Lexer) current() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos+1 >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos+1], true
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) readIdentifier() Token {
	start := l.pos
	for l.pos < len(l.input) && unicode.IsLetter(l.input[l.pos]) {
		l.pos++
	}
	return Token{Kind: TokenIdentifier, Text: string(l.input[start:l.pos])}
}

func (l *Lexer) readSymbol() (Token, error) {
	rest := string(l.input[l.pos:min(l.pos+2, len(l.input))])
	for _, sym := range symbols {
		if strings.HasPrefix(rest, sym) {
			l.pos += len(sym)
			return Token{Kind: TokenSymbol, Text: sym}, nil
		}
	}
	return Token{}, &LexError{
		Offset: l.pos,
		Text:   string(l.input[l.pos]),
		Reason: "unexpected character",
	}
}

// readNumber dispatches on the literal prefix. 0x and 0b select the
// integer bases, everything else is a decimal literal.
func (l *Lexer) readNumber() (Token, error) {
	if ch, _ := l.current(); ch == '0' {
		switch next, _ := l.peek(); next {
		case 'x', 'X':
			return l.readBaseInteger(16, isHexDigit)
		case 'b', 'B':
			return l.readBaseInteger(2, isBinaryDigit)
		}
	}
	return l.readDecimal()
}

func (l *Lexer) readBaseInteger(base int, accept func(rune) bool) (Token, error) {
	start := l.pos
	l.pos += 2

	digitsStart := l.pos
	for l.pos < len(l.input) && accept(l.input[l.pos]) {
		l.pos++
	}
	text := string(l.input[start:l.pos])
	digits := string(l.input[digitsStart:l.pos])

	value, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return Token{}, &LexError{Offset: start, Text: text, Reason: "numeric literal without digits"}
	}
	return Token{Kind: TokenNumber, Text: text, Number: mathx.NewDecimalFromBigInt(value)}, nil
}

// decimal literal sub-states
const (
	stateInteger = iota
	stateFraction
	stateExponent
)

func (l *Lexer) readDecimal() (Token, error) {
	start := l.pos
	state := stateInteger

	var intDigits, fracDigits, expDigits strings.Builder
	expNegative := false

scan:
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case isDigit(ch):
			switch state {
			case stateInteger:
				intDigits.WriteRune(ch)
			case stateFraction:
				fracDigits.WriteRune(ch)
			default:
				expDigits.WriteRune(ch)
			}
		case ch == '.' && state == stateInteger:
			state = stateFraction
		case (ch == 'e' || ch == 'E') && state != stateExponent:
			state = stateExponent
			if sign, ok := l.peek(); ok && (sign == '+' || sign == '-') {
				expNegative = sign == '-'
				l.pos++
			}
		default:
			break scan
		}
		l.pos++
	}

	text := string(l.input[start:l.pos])
	malformed := func(reason string) (Token, error) {
		return Token{}, &LexError{Offset: start, Text: text, Reason: reason}
	}

	mantissa := intDigits.String() + fracDigits.String()
	if mantissa == "" {
		return malformed("numeric literal without digits")
	}

	var exponent int64
	if state == stateExponent {
		if expDigits.Len() == 0 {
			return malformed("exponent without digits")
		}
		exp, err := strconv.ParseInt(expDigits.String(), 10, 64)
		if err != nil || exp > MaxExponent {
			return malformed("exponent out of range")
		}
		if expNegative {
			exp = -exp
		}
		exponent = exp
	}

	value, err := mathx.NewDecimalFromDigits(mantissa, exponent-int64(fracDigits.Len()))
	if err != nil {
		return malformed("invalid numeric literal")
	}
	return Token{Kind: TokenNumber, Text: text, Number: value}, nil
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isBinaryDigit(ch rune) bool {
	return ch == '0' || ch == '1'
}
