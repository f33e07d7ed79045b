// File: engine.go
// Title: Expression Engine
// Description: Runs the tokenize, parse and evaluate pipeline for one line
//              of input, classifies failures and logs each stage.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial engine

package calc

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/msto63/pascal/foundation/calc/ast"
	"github.com/msto63/pascal/foundation/calc/evaluator"
	"github.com/msto63/pascal/foundation/calc/parser"
	perr "github.com/msto63/pascal/foundation/core/error"
	plog "github.com/msto63/pascal/foundation/core/log"
)

// DefaultMaxInputLength bounds the length of one expression in runes
const DefaultMaxInputLength = 4096

// Options configures an Engine
type Options struct {
	Logger         *plog.Logger
	MaxInputLength int
}

// Engine evaluates expressions. It holds no per-expression state and is
// safe for concurrent use.
type Engine struct {
	logger         *plog.Logger
	maxInputLength int
}

// Result describes one evaluation. Stages that did not run leave their
// fields at the zero value.
type Result struct {
	Input    string
	Tokens   []parser.Token
	Tree     ast.Node
	Value    evaluator.Value
	Duration time.Duration
}

// New creates an engine
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = plog.GetDefault()
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}

	logger := opts.Logger.WithField("component", "calc-engine")
	logger.Debug("Expression engine initialized", plog.Fields{
		"maxInputLength": opts.MaxInputLength,
	})

	return &Engine{logger: logger, maxInputLength: opts.MaxInputLength}
}

// Evaluate runs the pipeline on input. On failure the returned Result
// still holds the stages that completed and the error is a *perr.Error
// with code CodeCalcLex, CodeCalcSyntax or CodeCalcEval.
func (e *Engine) Evaluate(ctx context.Context, input string) (*Result, error) {
	result := &Result{Input: input}
	if err := ctx.Err(); err != nil {
		return result, perr.Wrap(err, "evaluation cancelled").WithCode(perr.CodeTimeout)
	}

	timer := e.logger.StartTimer("evaluate").WithField("expression", input)
	err := e.run(ctx, result)
	result.Duration = timer.Elapsed()
	if err != nil {
		timer.StopWithError(err)
		return result, err
	}
	timer.Stop()
	return result, nil
}

func (e *Engine) run(ctx context.Context, result *Result) error {
	input := result.Input
	if n := utf8.RuneCountInString(input); n > e.maxInputLength {
		return perr.New("expression too long").
			WithCode(perr.CodeInvalidInput).
			WithOperation("calc.Evaluate").
			WithDetail("length", n).
			WithDetail("max", e.maxInputLength)
	}

	tokens, err := parser.Tokenize(input)
	if err != nil {
		return perr.Wrap(err, "tokenize").
			WithCode(perr.CodeCalcLex).
			WithOperation("calc.Tokenize")
	}
	result.Tokens = tokens
	if e.logger.IsLevelEnabled(plog.LevelTrace) {
		texts := make([]string, len(tokens))
		for i, t := range tokens {
			texts[i] = t.String()
		}
		e.logger.Trace("tokenized", plog.Fields{"tokens": strings.Join(texts, " ")})
	}

	tree := parser.Parse(tokens)
	result.Tree = tree
	if ast.IsInvalid(tree) {
		return perr.New("syntax error").
			WithCode(perr.CodeCalcSyntax).
			WithOperation("calc.Parse").
			WithDetail("tokens", len(tokens))
	}

	if err := ctx.Err(); err != nil {
		return perr.Wrap(err, "evaluation cancelled").WithCode(perr.CodeTimeout)
	}

	value, err := evaluator.Eval(tree)
	if err != nil {
		wrapped := perr.Wrap(err, "evaluate").WithOperation("calc.Eval")
		// arithmetic causes keep their own code as a detail
		var cause *perr.Error
		if errors.As(err, &cause) {
			wrapped.WithDetail("cause_code", cause.Code().String()).
				WithDetail("cause_category", cause.Code().Category())
		}
		return wrapped.WithCode(perr.CodeCalcEval)
	}
	result.Value = value
	return nil
}
