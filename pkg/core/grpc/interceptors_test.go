package grpc

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	plog "github.com/msto63/pascal/foundation/core/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var testInfo = &grpc.UnaryServerInfo{FullMethod: "/pascal.v1.Calculator/Evaluate"}

func bufferLogger() (*plog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return plog.NewWithConfig(plog.Config{Level: plog.LevelDebug, Format: plog.FormatText, Output: &buf}), &buf
}

func TestRecoveryInterceptor(t *testing.T) {
	logger, buf := bufferLogger()
	interceptor := RecoveryInterceptor(logger)

	_, err := interceptor(context.Background(), nil, testInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		panic("boom")
	})

	if status.Code(err) != codes.Internal {
		t.Errorf("code = %v, want %v", status.Code(err), codes.Internal)
	}
	if !strings.Contains(buf.String(), "gRPC panic recovered") {
		t.Errorf("log = %q, want panic entry", buf.String())
	}
}

func TestRequestIDInterceptor(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{"propagates caller id", "req-42"},
		{"generates missing id", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.incoming != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs(RequestIDHeader, tt.incoming))
			}

			var seen string
			_, err := RequestIDInterceptor()(ctx, nil, testInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
				seen = GetRequestID(ctx)
				return nil, nil
			})
			if err != nil {
				t.Fatalf("interceptor error = %v", err)
			}
			if tt.incoming != "" && seen != tt.incoming {
				t.Errorf("request id = %q, want %q", seen, tt.incoming)
			}
			if seen == "" {
				t.Error("request id is empty")
			}
		})
	}
}

func TestLoggingInterceptor(t *testing.T) {
	logger, buf := bufferLogger()
	ctx := WithRequestID(context.Background(), "req-7")

	_, err := LoggingInterceptor(logger)(ctx, nil, testInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.InvalidArgument, "syntax error")
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("code = %v", status.Code(err))
	}

	out := buf.String()
	for _, want := range []string{"[WRN]", "req=req-7", "status=InvalidArgument", "method=/pascal.v1.Calculator/Evaluate"} {
		if !strings.Contains(out, want) {
			t.Errorf("log = %q, want %q", out, want)
		}
	}
}

func TestClientRequestIDInterceptor(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-9")
	err := ClientRequestIDInterceptor()(ctx, "/x", nil, nil, nil,
		func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
			md, _ := metadata.FromOutgoingContext(ctx)
			if got := md.Get(RequestIDHeader); len(got) != 1 || got[0] != "req-9" {
				return errors.New("request id not propagated")
			}
			return nil
		})
	if err != nil {
		t.Error(err)
	}
}
