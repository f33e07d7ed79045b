package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	perr "github.com/msto63/pascal/foundation/core/error"
	plog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/pkg/core/config"
	"google.golang.org/grpc"
)

func TestServerConfigFrom(t *testing.T) {
	cfg := config.Default()
	cfg.Server.GRPCPort = 9400
	cfg.Server.EnableReflection = true

	sc := ServerConfigFrom(cfg)
	if sc.Address != "127.0.0.1:9400" {
		t.Errorf("Address = %q", sc.Address)
	}
	if !sc.EnableReflection {
		t.Error("EnableReflection = false")
	}
	if sc.KeepaliveInterval != 30*time.Second {
		t.Errorf("KeepaliveInterval = %v", sc.KeepaliveInterval)
	}
}

func TestServer_ListenServeAndStop(t *testing.T) {
	sc := ServerConfigFrom(config.Default())
	sc.Address = "127.0.0.1:0"
	srv := NewServer(sc, plog.Discard())

	lis, err := srv.Listen()
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- srv.Serve(lis) }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	srv.StopWithTimeout(ctx)

	select {
	case err := <-done:
		// stopping before Serve accepted reports ErrServerStopped
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after stop")
	}
}

func TestServer_ListenError(t *testing.T) {
	sc := ServerConfigFrom(config.Default())
	sc.Address = "127.0.0.1:99999"
	_, err := NewServer(sc, plog.Discard()).Listen()
	if !perr.HasCode(err, perr.CodeServiceUnavailable) {
		t.Errorf("Listen() error = %v, want %s", err, perr.CodeServiceUnavailable)
	}
}
