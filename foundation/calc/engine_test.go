// File: engine_test.go
// Title: Expression Engine Tests
// Description: Tests for error classification and partial results.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial engine tests

package calc

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/msto63/pascal/foundation/calc/ast"
	perr "github.com/msto63/pascal/foundation/core/error"
	plog "github.com/msto63/pascal/foundation/core/log"
)

func newTestEngine() *Engine {
	return New(Options{Logger: plog.Discard()})
}

func TestEngineEvaluate(t *testing.T) {
	tests := []struct {
		input      string
		want       string
		wantCode   perr.Code
		wantTokens int
		wantTree   bool
	}{
		{"2 + 3 * 4", "14", "", 5, true},
		{"sqrt(16) == 4", "True", "", 6, true},
		{"1 $ 2", "", perr.CodeCalcLex, 0, false},
		{"0x", "", perr.CodeCalcLex, 0, false},
		{"(1 + 2", "", perr.CodeCalcSyntax, 4, false},
		{"", "", perr.CodeCalcSyntax, 0, false},
		{"true + 1", "", perr.CodeCalcEval, 3, true},
		{"1 / 0", "", perr.CodeCalcEval, 3, true},
		{"foo", "", perr.CodeCalcSyntax, 1, false},
		{"foo(1)", "", perr.CodeCalcEval, 4, true},
	}
	engine := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := engine.Evaluate(context.Background(), tt.input)
			if res == nil {
				t.Fatal("Evaluate() returned nil result")
			}
			if len(res.Tokens) != tt.wantTokens {
				t.Errorf("len(Tokens) = %d, want %d", len(res.Tokens), tt.wantTokens)
			}
			if hasTree := res.Tree != nil && !ast.IsInvalid(res.Tree); hasTree != tt.wantTree {
				t.Errorf("valid tree = %v, want %v", hasTree, tt.wantTree)
			}

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Evaluate(%q) error = %v", tt.input, err)
				}
				if got := res.Value.String(); got != tt.want {
					t.Errorf("Evaluate(%q) = %s, want %s", tt.input, got, tt.want)
				}
				return
			}
			if got := perr.GetCode(err); got != tt.wantCode {
				t.Errorf("Evaluate(%q) code = %v, want %v (err = %v)", tt.input, got, tt.wantCode, err)
			}
		})
	}
}

func TestEngineEvalErrorKeepsCause(t *testing.T) {
	_, err := newTestEngine().Evaluate(context.Background(), "1 / 0")
	if !perr.HasCode(err, perr.CodeDivisionByZero) {
		t.Errorf("Evaluate() error = %v, want division by zero in chain", err)
	}
}

func TestEngineEvalErrorCauseDetails(t *testing.T) {
	_, err := newTestEngine().Evaluate(context.Background(), "1 / 0")
	var e *perr.Error
	if !errors.As(err, &e) {
		t.Fatalf("Evaluate() error = %T, want *perr.Error", err)
	}
	details := e.Details()
	if details["cause_code"] != "DIVISION_BY_ZERO" {
		t.Errorf("cause_code = %v", details["cause_code"])
	}
	if details["cause_category"] != "arithmetic" {
		t.Errorf("cause_category = %v", details["cause_category"])
	}
}

func TestEngineBoundsPowerTowers(t *testing.T) {
	inputs := []string{
		"9e4096 ** 1024",
		"(9e4096 ** 1024) ** 2",
		"((9e4096 ** 1024) ** 1024)",
		"((2 ** 1024) ** 1024) ** 1024",
		"(10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000) * (10 ** 1000)",
	}
	engine := newTestEngine()
	for _, input := range inputs {
		t.Run(input[:min(len(input), 30)], func(t *testing.T) {
			done := make(chan error, 1)
			go func() {
				_, err := engine.Evaluate(context.Background(), input)
				done <- err
			}()
			select {
			case err := <-done:
				if got := perr.GetCode(err); got != perr.CodeCalcEval {
					t.Errorf("Evaluate() code = %v, want %v (err = %v)", got, perr.CodeCalcEval, err)
				}
			case <-time.After(5 * time.Second):
				t.Fatal("Evaluate() did not return within 5s")
			}
		})
	}
}

func TestEngineRejectsLongInput(t *testing.T) {
	engine := New(Options{Logger: plog.Discard(), MaxInputLength: 8})
	_, err := engine.Evaluate(context.Background(), strings.Repeat("1+", 10)+"1")
	if got := perr.GetCode(err); got != perr.CodeInvalidInput {
		t.Errorf("code = %v, want %v", got, perr.CodeInvalidInput)
	}
}

func TestEngineCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestEngine().Evaluate(ctx, "1")
	if got := perr.GetCode(err); got != perr.CodeTimeout {
		t.Errorf("code = %v, want %v", got, perr.CodeTimeout)
	}
}

func TestEngineLogsStages(t *testing.T) {
	var buf bytes.Buffer
	logger := plog.NewWithConfig(plog.Config{Level: plog.LevelTrace, Format: plog.FormatLogfmt, Output: &buf})
	engine := New(Options{Logger: logger})

	if _, err := engine.Evaluate(context.Background(), "1 + 1"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`component="calc-engine"`, `message="tokenized"`, `NUMBER(1) SYMBOL(+) NUMBER(1)`, `message="evaluate completed"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}

func TestEngineSkipsTokenTraceAboveTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := plog.NewWithConfig(plog.Config{Level: plog.LevelDebug, Format: plog.FormatLogfmt, Output: &buf})
	engine := New(Options{Logger: logger})

	if _, err := engine.Evaluate(context.Background(), "1 + 1"); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "tokenized") {
		t.Errorf("token trace logged at debug level:\n%s", buf.String())
	}
}

func TestEngineConcurrentUse(t *testing.T) {
	engine := newTestEngine()
	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := engine.Evaluate(context.Background(), "2 ** 10 - 24")
			if err != nil {
				errs <- err
				return
			}
			if res.Value.String() != "1000" {
				errs <- perr.Newf("got %s", res.Value)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
