// ============================================================================
// Pascal - Interaktiver Ausdrucksrechner
// ============================================================================
//
// Package:     config
// Description: Typed application configuration loaded from TOML or YAML
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package config

import (
	"bytes"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	perr "github.com/msto63/pascal/foundation/core/error"
	plog "github.com/msto63/pascal/foundation/core/log"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "PASCAL_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Shell   ShellConfig   `toml:"shell" yaml:"shell"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name           string `toml:"name" yaml:"name"`
	DataDir        string `toml:"data_dir" yaml:"data_dir"`
	MaxInputLength int    `toml:"max_input_length" yaml:"max_input_length"`
}

// LoggingConfig controls the application logger
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	// File receives log output. Empty means stderr.
	File string `toml:"file" yaml:"file"`
}

// ShellConfig controls the interactive read loop
type ShellConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	Banner      string `toml:"banner" yaml:"banner"`
	Debug       bool   `toml:"debug" yaml:"debug"`
	HistoryFile string `toml:"history_file" yaml:"history_file"`
}

// HistoryConfig controls the evaluation history store
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
	Limit   int    `toml:"limit" yaml:"limit"`
}

// ServerConfig holds the network service settings
type ServerConfig struct {
	Host              string   `toml:"host" yaml:"host"`
	GRPCPort          int      `toml:"grpc_port" yaml:"grpc_port"`
	WebSocketPort     int      `toml:"websocket_port" yaml:"websocket_port"`
	EnableReflection  bool     `toml:"enable_reflection" yaml:"enable_reflection"`
	KeepaliveInterval Duration `toml:"keepalive_interval" yaml:"keepalive_interval"`
	KeepaliveTimeout  Duration `toml:"keepalive_timeout" yaml:"keepalive_timeout"`
	ShutdownTimeout   Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.New("config file not found").
				WithCode(perr.CodeConfigError).
				WithOperation("config.Load").
				WithDetail("path", path)
		}
		return nil, perr.Wrap(err, "failed to read config").WithCode(perr.CodeConfigError)
	}

	cfg, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, perr.Wrap(err, "failed to parse config "+path)
	}
	return cfg, nil
}

// Parse decodes configuration from data in the given format ("toml" or "yaml")
func Parse(data []byte, format string) (*Config, error) {
	var cfg Config
	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, perr.Wrap(err, "invalid yaml").WithCode(perr.CodeInvalidConfig)
		}
	case "toml":
		meta, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, perr.Wrap(err, "invalid toml").WithCode(perr.CodeInvalidConfig)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, perr.New("unknown config keys").
				WithCode(perr.CodeInvalidConfig).
				WithDetail("keys", undecoded)
		}
	default:
		return nil, perr.New("unsupported config format").
			WithCode(perr.CodeInvalidConfig).
			WithDetail("format", format)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by PASCAL_CONFIG, else the first file
// found in the default locations, else the defaults.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// DefaultPaths lists the locations searched for a config file
func DefaultPaths() []string {
	paths := []string{
		"./configs/pascal.toml",
		"./configs/pascal.yaml",
		"./pascal.toml",
		"./pascal.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "pascal", "pascal.toml"),
			filepath.Join(home, ".config", "pascal", "pascal.yaml"),
		)
	}
	return paths
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "pascal"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = defaultDataDir()
	}
	if c.General.MaxInputLength == 0 {
		c.General.MaxInputLength = 4096
	}

	// Logging
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	// Shell
	if c.Shell.Prompt == "" {
		c.Shell.Prompt = ">>> "
	}
	if c.Shell.Banner == "" {
		c.Shell.Banner = "Calculator. Type `exit` to exit the program."
	}
	if c.Shell.HistoryFile == "" {
		c.Shell.HistoryFile = filepath.Join(c.General.DataDir, "shell_history")
	}

	// History
	if c.History.Path == "" {
		c.History.Path = filepath.Join(c.General.DataDir, "history.db")
	}
	if c.History.Limit == 0 {
		c.History.Limit = 20
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = 9310
	}
	if c.Server.WebSocketPort == 0 {
		c.Server.WebSocketPort = 9311
	}
	if c.Server.KeepaliveInterval.Duration == 0 {
		c.Server.KeepaliveInterval.Duration = 30 * time.Second
	}
	if c.Server.KeepaliveTimeout.Duration == 0 {
		c.Server.KeepaliveTimeout.Duration = 10 * time.Second
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 5 * time.Second
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.Logging.File = os.ExpandEnv(c.Logging.File)
	c.Shell.HistoryFile = os.ExpandEnv(c.Shell.HistoryFile)
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if _, err := plog.ParseLevel(c.Logging.Level); err != nil {
		return invalid("logging.level", c.Logging.Level)
	}
	if _, err := plog.ParseFormat(c.Logging.Format); err != nil {
		return invalid("logging.format", c.Logging.Format)
	}
	if c.General.MaxInputLength < 0 {
		return invalid("general.max_input_length", c.General.MaxInputLength)
	}
	if c.History.Limit < 0 {
		return invalid("history.limit", c.History.Limit)
	}
	for key, port := range map[string]int{
		"server.grpc_port":      c.Server.GRPCPort,
		"server.websocket_port": c.Server.WebSocketPort,
	} {
		if port < 0 || port > 65535 {
			return invalid(key, port)
		}
	}
	return nil
}

func invalid(key string, value interface{}) error {
	return perr.New("invalid config value").
		WithCode(perr.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("key", key).
		WithDetail("value", value)
}

// GRPCAddress returns host:port of the gRPC listener
func (c *Config) GRPCAddress() string {
	return hostPort(c.Server.Host, c.Server.GRPCPort)
}

// WebSocketAddress returns host:port of the websocket listener
func (c *Config) WebSocketAddress() string {
	return hostPort(c.Server.Host, c.Server.WebSocketPort)
}

func hostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "pascal")
	}
	return "./data"
}
