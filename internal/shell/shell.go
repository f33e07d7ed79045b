// ============================================================================
// Pascal - Interaktiver Ausdrucksrechner
// ============================================================================
//
// Package:     shell
// Description: Read-evaluate-print loop with line editing
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/msto63/pascal/foundation/calc"
	"github.com/msto63/pascal/foundation/calc/builtin"
	plog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/internal/history"
	"github.com/peterh/liner"
)

// ExitCommand ends the loop when entered on its own
const ExitCommand = "exit"

// maxLineBytes bounds one line read from a non-terminal stream. Longer
// lines are discarded and answered with SyntaxErrorMessage.
const maxLineBytes = 1 << 20

var errLineTooLong = errors.New("input line too long")

// Defaults for Options
const (
	DefaultPrompt = ">>> "
	DefaultBanner = "Calculator. Type `exit` to exit the program."
)

// Options configures a Shell
type Options struct {
	Engine      *calc.Engine
	Logger      *plog.Logger
	Prompt      string
	Banner      string
	Debug       bool
	HistoryFile string           // line editing history, terminal mode only
	Recorder    history.Recorder // optional evaluation history
	SessionID   string
}

// Shell reads expressions line by line and prints their values
type Shell struct {
	engine      *calc.Engine
	logger      *plog.Logger
	prompt      string
	banner      string
	debug       bool
	historyFile string
	recorder    history.Recorder
	sessionID   string
}

// lineReader yields one input line per call. io.EOF ends the session.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

// New creates a shell
func New(opts Options) *Shell {
	if opts.Logger == nil {
		opts.Logger = plog.GetDefault()
	}
	if opts.Engine == nil {
		opts.Engine = calc.New(calc.Options{Logger: opts.Logger})
	}
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.Banner == "" {
		opts.Banner = DefaultBanner
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.New().String()
	}

	return &Shell{
		engine:      opts.Engine,
		logger:      opts.Logger.WithName("shell").WithSessionID(opts.SessionID),
		prompt:      opts.Prompt,
		banner:      opts.Banner,
		debug:       opts.Debug,
		historyFile: opts.HistoryFile,
		recorder:    opts.Recorder,
		sessionID:   opts.SessionID,
	}
}

// SessionID returns the identifier attached to recorded history entries
func (s *Shell) SessionID() string {
	return s.sessionID
}

// Run starts the loop on the process terminal. Without a terminal it
// falls back to RunIO on stdin and stdout.
func (s *Shell) Run(ctx context.Context) error {
	if !isTerminal(os.Stdin) || !liner.TerminalSupported() {
		return s.RunIO(ctx, os.Stdin, os.Stdout)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(complete)

	s.loadLineHistory(ln)
	defer s.saveLineHistory(ln)

	return s.loop(ctx, &linerReader{State: ln}, os.Stdout)
}

// RunIO runs the loop on arbitrary streams. The prompt is written to out
// before each line is read.
func (s *Shell) RunIO(ctx context.Context, in io.Reader, out io.Writer) error {
	return s.loop(ctx, &streamReader{reader: bufio.NewReader(in), out: out}, out)
}

func (s *Shell) loop(ctx context.Context, in lineReader, out io.Writer) error {
	fmt.Fprintln(out, s.banner)
	s.logger.Debug("Shell started", plog.Fields{"debug": s.debug})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := in.Prompt(s.prompt)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(out)
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, errLineTooLong):
			s.logger.Warn("Input line discarded", plog.Fields{"maxBytes": maxLineBytes})
			fmt.Fprintln(out, SyntaxErrorMessage)
			continue
		case err != nil:
			return err
		}

		if line == ExitCommand {
			return nil
		}
		s.Eval(ctx, line, out)
	}
}

// Eval evaluates one line, writes its output and records it. It reports
// whether evaluation succeeded.
func (s *Shell) Eval(ctx context.Context, line string, out io.Writer) bool {
	res, err := s.engine.Evaluate(ctx, line)
	if err != nil {
		s.logger.LogError(err, plog.Fields{"expression": line})
	}

	if s.debug {
		for _, l := range DebugLines(res) {
			fmt.Fprintln(out, l)
		}
	}
	result := ResultLine(res, err)
	fmt.Fprintln(out, result)

	s.record(ctx, line, result, err == nil)
	return err == nil
}

func (s *Shell) record(ctx context.Context, line, result string, ok bool) {
	if s.recorder == nil {
		return
	}
	entry := &history.Entry{SessionID: s.sessionID, Expression: line, Result: result, OK: ok}
	if err := s.recorder.Add(ctx, entry); err != nil {
		s.logger.WarnWithErr("Failed to record history", err)
	}
}

func (s *Shell) loadLineHistory(ln *liner.State) {
	if s.historyFile == "" {
		return
	}
	f, err := os.Open(s.historyFile)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := ln.ReadHistory(f); err != nil {
		s.logger.WarnWithErr("Failed to read line history", err)
	}
}

func (s *Shell) saveLineHistory(ln *liner.State) {
	if s.historyFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.historyFile), 0o755); err != nil {
		s.logger.WarnWithErr("Failed to create history directory", err)
		return
	}
	f, err := os.Create(s.historyFile)
	if err != nil {
		s.logger.WarnWithErr("Failed to write line history", err)
		return
	}
	defer f.Close()
	_, _ = ln.WriteHistory(f)
}

// complete offers builtin names for the identifier under the cursor
func complete(line string) []string {
	start := strings.LastIndexFunc(line, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	}) + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	var out []string
	for _, name := range builtin.FunctionNames() {
		if strings.HasPrefix(name, word) {
			out = append(out, prefix+name+"(")
		}
	}
	for _, name := range builtin.ConstantNames() {
		if strings.HasPrefix(name, word) {
			out = append(out, prefix+name)
		}
	}
	return out
}

type linerReader struct {
	*liner.State
}

func (r *linerReader) Prompt(prompt string) (string, error) {
	line, err := r.State.Prompt(prompt)
	if err == nil && strings.TrimSpace(line) != "" {
		r.State.AppendHistory(line)
	}
	return line, err
}

type streamReader struct {
	reader *bufio.Reader
	out    io.Writer
}

func (r *streamReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)

	var line []byte
	tooLong := false
	for {
		chunk, err := r.reader.ReadSlice('\n')
		if !tooLong && len(line)+len(chunk) > maxLineBytes {
			tooLong, line = true, nil
		}
		if !tooLong {
			line = append(line, chunk...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil {
			// a final line without newline still counts
			if errors.Is(err, io.EOF) && (len(line) > 0 || tooLong) {
				break
			}
			return "", err
		}
		break
	}

	if tooLong {
		return "", errLineTooLong
	}
	text := strings.TrimSuffix(string(line), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
