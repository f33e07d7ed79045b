package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Zeigt oder löscht den Auswertungsverlauf",
	Long: `Zeigt die zuletzt ausgewerteten Ausdrücke aus dem SQLite-Verlauf.

Der Verlauf wird nur geschrieben, wenn [history] enabled = true gesetzt ist.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Anzahl der Einträge (default aus der Config)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Verlauf löschen")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// reading works even when recording is switched off
	a.cfg.History.Enabled = true
	store := a.openHistory()
	if store == nil {
		return fmt.Errorf("verlauf %s kann nicht geöffnet werden", a.cfg.History.Path)
	}

	ctx := context.Background()
	if historyClear {
		n, err := store.Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d Einträge gelöscht\n", n)
		return nil
	}

	limit := historyLimit
	if limit == 0 {
		limit = a.cfg.History.Limit
	}
	entries, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Kein Verlauf vorhanden")
		return nil
	}
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		mark := "✓"
		if !e.OK {
			mark = "✗"
		}
		fmt.Printf("%s %s %s = %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), mark, e.Expression, e.Result)
	}
	fmt.Printf("%d von %d Einträgen\n", len(entries), total)
	return nil
}
