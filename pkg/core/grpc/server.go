package grpc

import (
	"context"
	"net"
	"time"

	perr "github.com/msto63/pascal/foundation/core/error"
	plog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/pkg/core/config"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

// ServerConfig holds gRPC server configuration
type ServerConfig struct {
	Address           string
	MaxRecvMsgSize    int
	MaxSendMsgSize    int
	EnableReflection  bool
	KeepaliveInterval time.Duration
	KeepaliveTimeout  time.Duration
}

// ServerConfigFrom derives the server settings from the application config
func ServerConfigFrom(cfg *config.Config) ServerConfig {
	return ServerConfig{
		Address: cfg.GRPCAddress(),
		// expressions are bounded by the input length limit
		MaxRecvMsgSize:    1024 * 1024,
		MaxSendMsgSize:    1024 * 1024,
		EnableReflection:  cfg.Server.EnableReflection,
		KeepaliveInterval: cfg.Server.KeepaliveInterval.Duration,
		KeepaliveTimeout:  cfg.Server.KeepaliveTimeout.Duration,
	}
}

// Server wraps a gRPC server with additional functionality
type Server struct {
	server *grpc.Server
	config ServerConfig
	logger *plog.Logger
}

// NewServer creates a new gRPC server with recovery, request ID and
// logging interceptors installed.
func NewServer(cfg ServerConfig, logger *plog.Logger, opts ...grpc.ServerOption) *Server {
	logger = logger.WithName("grpc-server")

	serverOpts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(cfg.MaxSendMsgSize),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    cfg.KeepaliveInterval,
			Timeout: cfg.KeepaliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor(logger),
			RequestIDInterceptor(),
			LoggingInterceptor(logger),
		),
		grpc.ChainStreamInterceptor(
			StreamRecoveryInterceptor(logger),
			StreamLoggingInterceptor(logger),
		),
	}
	serverOpts = append(serverOpts, opts...)

	server := grpc.NewServer(serverOpts...)
	if cfg.EnableReflection {
		reflection.Register(server)
	}

	return &Server{
		server: server,
		config: cfg,
		logger: logger,
	}
}

// GRPCServer returns the underlying gRPC server for service registration
func (s *Server) GRPCServer() *grpc.Server {
	return s.server
}

// Listen binds the configured address
func (s *Server) Listen() (net.Listener, error) {
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return nil, perr.Wrap(err, "failed to listen").
			WithCode(perr.CodeServiceUnavailable).
			WithDetail("address", s.config.Address)
	}
	return listener, nil
}

// Serve serves on listener until the server is stopped
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("gRPC server listening", plog.Fields{"address": listener.Addr().String()})
	return s.server.Serve(listener)
}

// StopWithTimeout stops the server gracefully, forcing it down when ctx
// expires first.
func (s *Server) StopWithTimeout(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("graceful stop timed out, forcing shutdown")
		s.server.Stop()
	}
}
