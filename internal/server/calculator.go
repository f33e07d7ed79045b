// ============================================================================
// Pascal - Interaktiver Ausdrucksrechner
// ============================================================================
//
// Package:     server
// Description: Calculator service shared by the gRPC and websocket endpoints
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package server

import (
	"context"

	"github.com/msto63/pascal/foundation/calc"
	perr "github.com/msto63/pascal/foundation/core/error"
	plog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/internal/history"
	"github.com/msto63/pascal/internal/shell"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Outcome is the transport-neutral answer to one expression
type Outcome struct {
	OK        bool   `json:"ok"`
	Kind      string `json:"kind,omitempty"`
	Value     string `json:"value"`
	ErrorCode string `json:"error_code,omitempty"`
}

// Calculator evaluates expressions for remote callers
type Calculator struct {
	engine   *calc.Engine
	recorder history.Recorder
	logger   *plog.Logger
}

// NewCalculator creates the service. recorder may be nil.
func NewCalculator(engine *calc.Engine, recorder history.Recorder, logger *plog.Logger) *Calculator {
	return &Calculator{
		engine:   engine,
		recorder: recorder,
		logger:   logger.WithName("calculator"),
	}
}

// Calculate evaluates expression. Lex, syntax and evaluation failures are
// part of the Outcome; the error is reserved for rejected requests.
func (c *Calculator) Calculate(ctx context.Context, expression, sessionID string) (Outcome, error) {
	res, err := c.engine.Evaluate(ctx, expression)
	if err != nil && !isCalcFailure(err) {
		c.logger.LogError(err, plog.Fields{"session": sessionID})
		return Outcome{}, err
	}

	out := Outcome{OK: err == nil, Value: shell.ResultLine(res, err)}
	if err == nil {
		out.Kind = res.Value.Kind().String()
	} else {
		out.ErrorCode = perr.GetCode(err).String()
	}

	if c.recorder != nil {
		entry := &history.Entry{SessionID: sessionID, Expression: expression, Result: out.Value, OK: out.OK}
		if rerr := c.recorder.Add(ctx, entry); rerr != nil {
			c.logger.WarnWithErr("Failed to record history", rerr)
		}
	}
	return out, nil
}

func isCalcFailure(err error) bool {
	return perr.HasCode(err, perr.CodeCalcLex) ||
		perr.HasCode(err, perr.CodeCalcSyntax) ||
		perr.HasCode(err, perr.CodeCalcEval)
}

// statusFromError maps a rejected request to a gRPC status
func statusFromError(err error) error {
	if err == nil {
		return nil
	}
	code := codes.Internal
	switch perr.GetCode(err) {
	case perr.CodeInvalidInput:
		code = codes.InvalidArgument
	case perr.CodeTimeout:
		code = codes.DeadlineExceeded
	case perr.CodeServiceUnavailable:
		code = codes.Unavailable
	}
	return status.Error(code, err.Error())
}
