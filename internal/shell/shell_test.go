package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/msto63/pascal/foundation/calc"
	plog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/internal/history"
)

type memoryRecorder struct {
	entries []*history.Entry
	err     error
}

func (m *memoryRecorder) Add(ctx context.Context, e *history.Entry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func newTestShell(opts Options) *Shell {
	opts.Logger = plog.Discard()
	opts.Engine = calc.New(calc.Options{Logger: opts.Logger})
	return New(opts)
}

func TestRunIO_Transcript(t *testing.T) {
	in := strings.NewReader("1 + 2 * 3\n(1 + 2) * 3\n1 +\ntrue && false\nexit\n2 + 2\n")
	var out bytes.Buffer

	if err := newTestShell(Options{}).RunIO(context.Background(), in, &out); err != nil {
		t.Fatalf("RunIO() error = %v", err)
	}

	want := DefaultBanner + "\n" +
		">>> 7\n" +
		">>> 9\n" +
		">>> Syntax error.\n" +
		">>> False\n" +
		">>> "
	if out.String() != want {
		t.Errorf("transcript =\n%q\nwant\n%q", out.String(), want)
	}
}

func TestRunIO_EOFEndsSession(t *testing.T) {
	var out bytes.Buffer
	err := newTestShell(Options{Prompt: "> ", Banner: "hi"}).RunIO(context.Background(), strings.NewReader("PI * 0"), &out)
	if err != nil {
		t.Fatalf("RunIO() error = %v", err)
	}
	if want := "hi\n> 0\n> \n"; out.String() != want {
		t.Errorf("transcript = %q, want %q", out.String(), want)
	}
}

func TestRunIO_LongLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"above input limit", strings.Repeat("1", 70*1024)},
		{"above read limit", strings.Repeat("1", maxLineBytes+10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := strings.NewReader(tt.line + "\n1 + 1\n")
			var out bytes.Buffer
			if err := newTestShell(Options{Banner: "hi"}).RunIO(context.Background(), in, &out); err != nil {
				t.Fatalf("RunIO() error = %v", err)
			}
			if want := "hi\n>>> Syntax error.\n>>> 2\n>>> \n"; out.String() != want {
				t.Errorf("transcript = %q, want %q", out.String(), want)
			}
		})
	}
}

func TestRunIO_CRLF(t *testing.T) {
	var out bytes.Buffer
	err := newTestShell(Options{Banner: "hi"}).RunIO(context.Background(), strings.NewReader("2 * 3\r\nexit\r\n"), &out)
	if err != nil {
		t.Fatalf("RunIO() error = %v", err)
	}
	if want := "hi\n>>> 6\n>>> "; out.String() != want {
		t.Errorf("transcript = %q, want %q", out.String(), want)
	}
}

func TestRunIO_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := newTestShell(Options{}).RunIO(ctx, strings.NewReader("1\n"), &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RunIO() error = %v, want context.Canceled", err)
	}
}

func TestEval_Outputs(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"2 ** 10", "1024", true},
		{"1 / 3", "0.3333333333333333333333333333", true},
		{"1 / 0", SyntaxErrorMessage, false},
		{"", SyntaxErrorMessage, false},
		{"#", SyntaxErrorMessage, false},
		{"1 < 2 == true", SyntaxErrorMessage, false},
		{"1 < 2 || false", "True", true},
		{"unknown(1)", SyntaxErrorMessage, false},
		{"sqrt(16)", "4", true},
	}
	s := newTestShell(Options{})
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			var out bytes.Buffer
			ok := s.Eval(context.Background(), tt.line, &out)
			if ok != tt.ok {
				t.Errorf("Eval() ok = %v, want %v", ok, tt.ok)
			}
			if got := strings.TrimSuffix(out.String(), "\n"); got != tt.want {
				t.Errorf("Eval() output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEval_DebugOutput(t *testing.T) {
	var out bytes.Buffer
	newTestShell(Options{Debug: true}).Eval(context.Background(), "-2 + 3", &out)

	want := strings.Join([]string{
		"",
		"Tokens:",
		"SYMBOL(-)",
		"NUMBER(2)",
		"SYMBOL(+)",
		"NUMBER(3)",
		"",
		"Syntax tree:",
		"Binary +:",
		"  Unary -:",
		"    Number 2",
		"  Number 3",
		"1",
	}, "\n") + "\n"
	if out.String() != want {
		t.Errorf("debug output =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestEval_DebugOutputOnLexError(t *testing.T) {
	var out bytes.Buffer
	newTestShell(Options{Debug: true}).Eval(context.Background(), "1 $ 2", &out)
	if want := "\nTokens:\n" + SyntaxErrorMessage + "\n"; out.String() != want {
		t.Errorf("debug output = %q, want %q", out.String(), want)
	}
}

func TestEval_RecordsHistory(t *testing.T) {
	rec := &memoryRecorder{}
	s := newTestShell(Options{Recorder: rec, SessionID: "session-1"})

	s.Eval(context.Background(), "1 + 1", &bytes.Buffer{})
	s.Eval(context.Background(), "1 +", &bytes.Buffer{})

	if len(rec.entries) != 2 {
		t.Fatalf("recorded %d entries, want 2", len(rec.entries))
	}
	first, second := rec.entries[0], rec.entries[1]
	if first.Result != "2" || !first.OK || first.SessionID != "session-1" {
		t.Errorf("first entry = %+v", first)
	}
	if second.Result != SyntaxErrorMessage || second.OK {
		t.Errorf("second entry = %+v", second)
	}
}

func TestEval_RecorderFailureIsNotFatal(t *testing.T) {
	s := newTestShell(Options{Recorder: &memoryRecorder{err: errors.New("disk full")}})
	var out bytes.Buffer
	if !s.Eval(context.Background(), "3", &out) {
		t.Error("Eval() = false, want true")
	}
	if out.String() != "3\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"sq", []string{"sqrt("}},
		{"1 + PH", []string{"1 + PHI"}},
		{"1 + ", nil},
		{"zz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := complete(tt.line)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("complete(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
