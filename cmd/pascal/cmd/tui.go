package cmd

import (
	"github.com/msto63/pascal/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Startet die Terminal-Oberfläche",
	Long: `Startet den Rechner als Terminal-Oberfläche.

Tastenkürzel:
  Enter   Ausdruck auswerten
  ↑/↓     Eingabe-Historie
  Ctrl+D  Debug-Ausgabe an/aus
  Ctrl+L  Verlauf leeren
  Esc     Beenden (ebenso "exit" oder Ctrl+C)`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return tui.Run(tui.Config{
		Engine:   a.engine,
		Logger:   a.logger,
		Debug:    a.cfg.Shell.Debug,
		Recorder: recorder(a.openHistory()),
	})
}
