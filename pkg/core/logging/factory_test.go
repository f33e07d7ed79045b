package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	perr "github.com/msto63/pascal/foundation/core/error"
	plog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/pkg/core/config"
)

func TestNewLogger_FileAndAdditionalOutputs(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "pascal.log")

	cfg := DefaultLoggerConfig("test")
	cfg.Level = "debug"
	cfg.File = path
	cfg.AdditionalOutputs = []io.Writer{&buf}

	logger, closer, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Debug("evaluated", plog.Fields{"input": "1+1"})
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "evaluated") {
		t.Errorf("log file = %q, want entry", data)
	}
	if !strings.Contains(buf.String(), "input=1+1") {
		t.Errorf("additional output = %q, want field", buf.String())
	}
}

func TestNewLogger_InvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		cfg  LoggerConfig
	}{
		{"bad level", LoggerConfig{Level: "loud"}},
		{"bad format", LoggerConfig{Format: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, closer, err := NewLogger(tt.cfg)
			if !perr.HasCode(err, perr.CodeInvalidConfig) {
				t.Errorf("NewLogger() error = %v, want %s", err, perr.CodeInvalidConfig)
			}
			if logger != nil {
				t.Error("NewLogger() returned a logger on error")
			}
			if closer == nil {
				t.Error("NewLogger() returned nil closer")
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig("pascal", config.LoggingConfig{Level: "error", Format: "json", File: "/tmp/x.log"})
	if cfg.ServiceName != "pascal" || cfg.Level != "error" || cfg.Format != "json" || cfg.File != "/tmp/x.log" {
		t.Errorf("FromConfig() = %+v", cfg)
	}
}

func TestFromConfig_EmptyKeepsDefaults(t *testing.T) {
	logger, closer, err := NewLogger(FromConfig("pascal", config.LoggingConfig{}))
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer closer.Close()
	if !logger.IsLevelEnabled(plog.LevelWarn) || logger.IsLevelEnabled(plog.LevelInfo) {
		t.Error("logger should log warn and above only")
	}
}
