package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/msto63/pascal/foundation/calc"
	plog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/internal/history"
	"github.com/msto63/pascal/pkg/core/config"
	"github.com/msto63/pascal/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	debugMode bool
)

// errReported marks failures whose message was already printed
var errReported = errors.New("already reported")

var rootCmd = &cobra.Command{
	Use:   "pascal",
	Short: "Pascal - Interaktiver Ausdrucksrechner",
	Long: `Pascal wertet arithmetische und boolesche Ausdrücke aus.

Ohne Unterkommando startet die interaktive Eingabeschleife.

Ausdrücke:
  Zahlen      42, 1.5e-3, 0xff, 0b1010
  Operatoren  + - * / ** < > <= >= == != && || ^ !
  Konstanten  PI, TAU, e, PHI
  Funktionen  sqrt, sin, cos, ln, log, floor, round, ...`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRepl,
}

// Execute runs the command tree
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError("Ausführung fehlgeschlagen", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: $"+config.EnvConfigPath+" oder ./configs/pascal.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output (Log-Level debug)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Tokens und Syntaxbaum ausgeben")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}

// app bundles what every subcommand needs
type app struct {
	cfg     *config.Config
	logger  *plog.Logger
	engine  *calc.Engine
	closers []io.Closer
}

func newApp() (*app, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if debugMode {
		cfg.Shell.Debug = true
	}

	logger, closer, err := logging.NewLogger(logging.FromConfig(cfg.General.Name, cfg.Logging))
	if err != nil {
		return nil, err
	}
	plog.SetDefault(logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		engine:  calc.New(calc.Options{Logger: logger, MaxInputLength: cfg.General.MaxInputLength}),
		closers: []io.Closer{closer},
	}, nil
}

// openHistory opens the history store when enabled. A store that cannot
// be opened disables history with a warning.
func (a *app) openHistory() *history.Store {
	if !a.cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(history.Config{Path: a.cfg.History.Path})
	if err != nil {
		a.logger.WarnWithErr("History disabled", err)
		return nil
	}
	a.closers = append(a.closers, store)
	return store
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

// recorder converts a possibly nil store into an optional Recorder
func recorder(store *history.Store) history.Recorder {
	if store == nil {
		return nil
	}
	return store
}
