// ============================================================================
// Pascal - Interaktiver Ausdrucksrechner
// ============================================================================
//
// Package:     server
// Description: Network service hosting the gRPC and websocket endpoints
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/msto63/pascal/foundation/calc"
	perr "github.com/msto63/pascal/foundation/core/error"
	plog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/internal/history"
	"github.com/msto63/pascal/pkg/core/config"
	pgrpc "github.com/msto63/pascal/pkg/core/grpc"
	"github.com/msto63/pascal/pkg/core/health"
	"github.com/msto63/pascal/pkg/core/version"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// healthInterval is the period between health registry runs
const healthInterval = 15 * time.Second

// healthTimeout bounds one run of the health registry
const healthTimeout = 5 * time.Second

// Options configures a Server
type Options struct {
	Config  *config.Config
	Engine  *calc.Engine
	History *history.Store // optional
	Logger  *plog.Logger
}

// Server runs the calculator over gRPC and websocket
type Server struct {
	cfg       *config.Config
	grpc      *pgrpc.Server
	http      *http.Server
	health    *health.Registry
	healthSrv *grpchealth.Server
	calc      *Calculator
	logger    *plog.Logger
}

// New wires the services. Nothing listens until Run or Serve.
func New(opts Options) *Server {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = plog.GetDefault()
	}
	if opts.Engine == nil {
		opts.Engine = calc.New(calc.Options{Logger: opts.Logger, MaxInputLength: opts.Config.General.MaxInputLength})
	}
	logger := opts.Logger.WithName("server")

	var recorder history.Recorder
	if opts.History != nil {
		recorder = opts.History
	}
	calculator := NewCalculator(opts.Engine, recorder, opts.Logger)

	registry := health.NewRegistry(opts.Config.General.Name, version.ComponentVersion("server"))
	registry.Register(engineProbe(opts.Engine))
	if opts.History != nil {
		registry.Register(health.PingCheck("history", opts.History))
	}

	grpcServer := pgrpc.NewServer(pgrpc.ServerConfigFrom(opts.Config), opts.Logger)
	RegisterCalculatorServer(grpcServer.GRPCServer(), &grpcCalculator{calc: calculator})
	healthSrv := grpchealth.NewServer()
	healthpb.RegisterHealthServer(grpcServer.GRPCServer(), healthSrv)

	s := &Server{
		cfg:       opts.Config,
		grpc:      grpcServer,
		health:    registry,
		healthSrv: healthSrv,
		calc:      calculator,
		logger:    logger,
	}
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// engineProbe checks that the engine still computes 1 + 1 correctly
func engineProbe(engine *calc.Engine) health.Checker {
	return health.Probe("engine", func(ctx context.Context) error {
		res, err := engine.Evaluate(ctx, "1 + 1")
		if err != nil {
			return err
		}
		if got := res.Value.String(); got != "2" {
			return perr.Newf("1 + 1 evaluated to %s", got).WithCode(perr.CodeInternal)
		}
		return nil
	})
}

// Handler returns the HTTP routes: /ws and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", NewWebSocketHandler(s.calc, s.logger))
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.CheckWithTimeout(r.Context(), healthTimeout)
	w.Header().Set("Content-Type", "application/json")
	if !report.Status.Serving() {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(report)
}

// RefreshHealth runs the registry and publishes the result to the gRPC
// health service.
func (s *Server) RefreshHealth(ctx context.Context) *health.Report {
	report := s.health.CheckWithTimeout(ctx, healthTimeout)
	servingStatus := healthpb.HealthCheckResponse_NOT_SERVING
	if report.Status.Serving() {
		servingStatus = healthpb.HealthCheckResponse_SERVING
	}
	s.healthSrv.SetServingStatus("", servingStatus)
	s.healthSrv.SetServingStatus(CalculatorServiceName, servingStatus)
	if report.Status != health.StatusHealthy {
		s.logger.Warn("Health check not healthy", plog.Fields{"status": string(report.Status)})
	}
	return report
}

// Run listens on the configured addresses and serves until ctx ends
func (s *Server) Run(ctx context.Context) error {
	grpcLis, err := s.grpc.Listen()
	if err != nil {
		return err
	}
	httpLis, err := net.Listen("tcp", s.cfg.WebSocketAddress())
	if err != nil {
		grpcLis.Close()
		return listenError(err, s.cfg.WebSocketAddress())
	}
	return s.Serve(ctx, grpcLis, httpLis)
}

// Serve serves gRPC on grpcLis and HTTP on httpLis until ctx ends or one
// of them fails, then shuts both down.
func (s *Server) Serve(ctx context.Context, grpcLis, httpLis net.Listener) error {
	s.RefreshHealth(ctx)

	errc := make(chan error, 2)
	go func() { errc <- s.grpc.Serve(grpcLis) }()
	go func() {
		s.logger.Info("WebSocket server listening", plog.Fields{"address": httpLis.Addr().String()})
		if err := s.http.Serve(httpLis); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
			return
		}
		errc <- nil
	}()

	ticker := time.NewTicker(healthInterval)
	defer ticker.Stop()

	var serveErr error
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			s.RefreshHealth(ctx)
		case serveErr = <-errc:
			break loop
		}
	}

	if serveErr != nil {
		s.logger.ErrorWithErr("Server failed", serveErr)
	}
	s.shutdown()
	return serveErr
}

func (s *Server) shutdown() {
	s.healthSrv.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout.Duration)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.WarnWithErr("HTTP shutdown incomplete", err)
	}
	s.grpc.StopWithTimeout(ctx)
	s.logger.Info("Server stopped")
}

func listenError(err error, addr string) error {
	return perr.Wrap(err, "failed to listen").
		WithCode(perr.CodeServiceUnavailable).
		WithDetail("address", addr)
}
