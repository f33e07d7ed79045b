package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	plog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/internal/server"
	"github.com/msto63/pascal/pkg/core/version"
	"github.com/spf13/cobra"
)

var (
	serveHost   string
	serveGRPC   int
	serveWSPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Startet den Rechner als Netzwerkdienst",
	Long: `Startet den Rechner als Netzwerkdienst.

Endpunkte:
  gRPC       pascal.v1.Calculator/Evaluate, grpc.health.v1 (default :9310)
  WebSocket  /ws, HTTP /health (default :9311)

Beispiele:
  pascal serve
  pascal serve --host 0.0.0.0 --grpc-port 9400`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Adresse, an die gebunden wird")
	serveCmd.Flags().IntVar(&serveGRPC, "grpc-port", 0, "gRPC-Port")
	serveCmd.Flags().IntVar(&serveWSPort, "ws-port", 0, "WebSocket-Port")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if serveHost != "" {
		a.cfg.Server.Host = serveHost
	}
	if serveGRPC != 0 {
		a.cfg.Server.GRPCPort = serveGRPC
	}
	if serveWSPort != 0 {
		a.cfg.Server.WebSocketPort = serveWSPort
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Options{
		Config:  a.cfg,
		Engine:  a.engine,
		History: a.openHistory(),
		Logger:  a.logger,
	})

	a.logger.Info("Starting server", plog.Fields{"version": version.Info()})
	fmt.Printf("Pascal läuft: gRPC %s, WebSocket %s (Ctrl+C zum Beenden)\n",
		a.cfg.GRPCAddress(), a.cfg.WebSocketAddress())
	return srv.Run(ctx)
}
