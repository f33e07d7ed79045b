package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	perr "github.com/msto63/pascal/foundation/core/error"
	"github.com/msto63/pascal/internal/server"
	"github.com/msto63/pascal/internal/shell"
	pgrpc "github.com/msto63/pascal/pkg/core/grpc"
	"github.com/spf13/cobra"
)

var evalRemote string

var evalCmd = &cobra.Command{
	Use:   "eval <ausdruck>...",
	Short: "Wertet Ausdrücke einmalig aus",
	Long: `Wertet jedes Argument als eigenen Ausdruck aus und gibt das
Ergebnis zeilenweise aus. Der Exit-Code ist 1, wenn mindestens ein
Ausdruck fehlschlägt.

Beispiele:
  pascal eval "1 + 2 * 3"
  pascal eval --debug "2 ** 10" "PI * 2"
  pascal eval --remote localhost:9310 "sqrt(2)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVar(&evalRemote, "remote", "", "Ausdrücke an einen laufenden 'pascal serve' senden (host:port)")
}

func runEval(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if evalRemote != "" {
		return evalOnServer(a, args)
	}

	sh := shell.New(shell.Options{
		Engine:    a.engine,
		Logger:    a.logger,
		Debug:     a.cfg.Shell.Debug,
		Recorder:  recorder(a.openHistory()),
		SessionID: uuid.New().String(),
	})

	failed := false
	for _, expr := range args {
		if !sh.Eval(context.Background(), expr, os.Stdout) {
			failed = true
		}
	}
	if failed {
		return errReported
	}
	return nil
}

func evalOnServer(a *app, args []string) error {
	clientCfg := pgrpc.DefaultClientConfig(evalRemote)
	conn, err := pgrpc.Dial(clientCfg, a.logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	client := server.NewCalculatorClient(conn)
	failed := false
	for _, expr := range args {
		ctx, cancel := context.WithTimeout(context.Background(), clientCfg.Timeout)
		out, err := client.Evaluate(ctx, expr)
		cancel()
		if err != nil {
			printError(remoteErrorContext(err), err)
			return errReported
		}
		fmt.Println(out.Value)
		if !out.OK {
			failed = true
		}
	}
	if failed {
		return errReported
	}
	return nil
}

// remoteErrorContext names the kind of failure a server call ended with
func remoteErrorContext(err error) string {
	switch perr.GetCode(err) {
	case perr.CodeInvalidInput:
		return "Ausdruck abgelehnt"
	case perr.CodeTimeout:
		return "Zeitüberschreitung"
	case perr.CodeServiceUnavailable:
		return "Server nicht erreichbar"
	default:
		return "Serverfehler"
	}
}
