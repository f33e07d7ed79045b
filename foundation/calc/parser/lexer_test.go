// File: lexer_test.go
// Title: Lexer Tests
// Description: Tests for token kinds, number literal forms and lexical errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial lexer tests

package parser

import (
	"errors"
	"reflect"
	"testing"
)

func tokenStrings(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.String()
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \t\n ", nil},
		{"arithmetic", "1 + 2*3", []string{"NUMBER(1)", "SYMBOL(+)", "NUMBER(2)", "SYMBOL(*)", "NUMBER(3)"}},
		{"power is one symbol", "2**3", []string{"NUMBER(2)", "SYMBOL(**)", "NUMBER(3)"}},
		{"longest match", "a<=b!=c&&!d", []string{
			"IDENTIFIER(a)", "SYMBOL(<=)", "IDENTIFIER(b)", "SYMBOL(!=)",
			"IDENTIFIER(c)", "SYMBOL(&&)", "SYMBOL(!)", "IDENTIFIER(d)",
		}},
		{"shift and bitwise symbols", "<<>>&|~%", []string{
			"SYMBOL(<<)", "SYMBOL(>>)", "SYMBOL(&)", "SYMBOL(|)", "SYMBOL(~)", "SYMBOL(%)",
		}},
		{"function call", "sqrt(16)", []string{"IDENTIFIER(sqrt)", "SYMBOL(()", "NUMBER(16)", "SYMBOL())"}},
		{"unicode identifier", "größe", []string{"IDENTIFIER(größe)"}},
		{"identifier stops at digit", "abc1", []string{"IDENTIFIER(abc)", "NUMBER(1)"}},
		{"second dot starts new literal", "1.2.3", []string{"NUMBER(1.2)", "NUMBER(.3)"}},
		{"binary stops at out-of-alphabet digit", "0b102", []string{"NUMBER(0b10)", "NUMBER(2)"}},
		{"second exponent ends literal", "1e2e3", []string{"NUMBER(1e2)", "IDENTIFIER(e)", "NUMBER(3)"}},
		{"dot after exponent ends literal", "1e2.5", []string{"NUMBER(1e2)", "NUMBER(.5)"}},
		{"hex accepts e digit", "0x1e", []string{"NUMBER(0x1e)"}},
		{"minus is a symbol", "-5", []string{"SYMBOL(-)", "NUMBER(5)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error = %v", tt.input, err)
			}
			if got := tokenStrings(tokens); !reflect.DeepEqual(got, tt.want) && !(len(got) == 0 && len(tt.want) == 0) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"0xff", "255"},
		{"0XFF", "255"},
		{"0b101", "5"},
		{"0B11", "3"},
		{"1.5e2", "150"},
		{"1.5E2", "150"},
		{".5", "0.5"},
		{"5.", "5"},
		{"007", "7"},
		{"1e-3", "0.001"},
		{"2.5e+1", "25"},
		{"0.1", "0.1"},
		{"0x1e", "30"},
		{"0xffffffffffffffffffffffff", "79228162514264337593543950335"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error = %v", tt.input, err)
			}
			if len(tokens) != 1 || tokens[0].Kind != TokenNumber {
				t.Fatalf("Tokenize(%q) = %v, want a single number", tt.input, tokens)
			}
			if got := tokens[0].Number.String(); got != tt.want {
				t.Errorf("Tokenize(%q) value = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
	}{
		{"unknown character", "1 $ 2", 2},
		{"unknown unicode character", "2 € 3", 2},
		{"single equals", "a = b", 2},
		{"hex without digits", "0x", 0},
		{"hex with invalid digit", "1 + 0xg", 4},
		{"binary without digits", "0b2", 0},
		{"lone dot", ".", 0},
		{"dot before exponent", ".e5", 0},
		{"exponent without digits", "1e", 0},
		{"signed exponent without digits", "3 * 1e+", 4},
		{"exponent out of range", "1e5000", 0},
		{"huge exponent", "1e99999999999999999999", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err == nil {
				t.Fatalf("Tokenize(%q) = %v, want error", tt.input, tokens)
			}
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("Tokenize(%q) error type = %T, want *LexError", tt.input, err)
			}
			if lexErr.Offset != tt.offset {
				t.Errorf("Tokenize(%q) offset = %d, want %d", tt.input, lexErr.Offset, tt.offset)
			}
		})
	}
}

func TestExponentBoundary(t *testing.T) {
	if _, err := Tokenize("1e4096"); err != nil {
		t.Errorf("Tokenize(1e4096) error = %v", err)
	}
	if _, err := Tokenize("1e-4096"); err != nil {
		t.Errorf("Tokenize(1e-4096) error = %v", err)
	}
}

func TestNextTokenEOF(t *testing.T) {
	l := NewLexer("  7 ")
	tok, err := l.NextToken()
	if err != nil || tok.Kind != TokenNumber {
		t.Fatalf("NextToken() = %v, %v", tok, err)
	}
	for i := 0; i < 2; i++ {
		tok, err = l.NextToken()
		if err != nil || tok.Kind != TokenEOF {
			t.Errorf("NextToken() at end = %v, %v, want EOF", tok, err)
		}
	}
}

func TestTokenizeIsPure(t *testing.T) {
	const input = "sqrt(0x10) + 1.5e1 ** 2"
	first, err1 := Tokenize(input)
	second, err2 := Tokenize(input)
	if err1 != nil || err2 != nil {
		t.Fatalf("Tokenize() errors = %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(tokenStrings(first), tokenStrings(second)) {
		t.Errorf("Tokenize() not deterministic: %v vs %v", first, second)
	}
}
