package cmd

import (
	"errors"
	"testing"

	perr "github.com/msto63/pascal/foundation/core/error"
)

func TestRemoteErrorContext(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"rejected expression", perr.New("expression too long").WithCode(perr.CodeInvalidInput), "Ausdruck abgelehnt"},
		{"deadline", perr.New("deadline exceeded").WithCode(perr.CodeTimeout), "Zeitüberschreitung"},
		{"unreachable", perr.New("connection refused").WithCode(perr.CodeServiceUnavailable), "Server nicht erreichbar"},
		{"internal", perr.New("panic").WithCode(perr.CodeInternal), "Serverfehler"},
		{"plain error", errors.New("boom"), "Serverfehler"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := remoteErrorContext(tt.err); got != tt.want {
				t.Errorf("remoteErrorContext() = %q, want %q", got, tt.want)
			}
		})
	}
}
