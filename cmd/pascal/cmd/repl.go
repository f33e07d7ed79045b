package cmd

import (
	"context"

	"github.com/msto63/pascal/internal/shell"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Startet die interaktive Eingabeschleife",
	Long: `Liest Ausdrücke zeilenweise und gibt ihr Ergebnis aus.

Mit "exit" wird die Schleife beendet, ebenso mit Ctrl+D.
Fehlerhafte Eingaben werden mit "Syntax error." quittiert.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sh := shell.New(shell.Options{
		Engine:      a.engine,
		Logger:      a.logger,
		Prompt:      a.cfg.Shell.Prompt,
		Banner:      a.cfg.Shell.Banner,
		Debug:       a.cfg.Shell.Debug,
		HistoryFile: a.cfg.Shell.HistoryFile,
		Recorder:    recorder(a.openHistory()),
	})
	return sh.Run(context.Background())
}
