package server

import (
	"context"

	perr "github.com/msto63/pascal/foundation/core/error"
	pgrpc "github.com/msto63/pascal/pkg/core/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// gRPC names of the calculator service
const (
	CalculatorServiceName = "pascal.v1.Calculator"
	EvaluateMethod        = "/" + CalculatorServiceName + "/Evaluate"
)

// CalculatorServer is the server API of pascal.v1.Calculator. Requests
// and responses use well-known protobuf types.
type CalculatorServer interface {
	Evaluate(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
}

// CalculatorServiceDesc describes pascal.v1.Calculator for registration
var CalculatorServiceDesc = grpc.ServiceDesc{
	ServiceName: CalculatorServiceName,
	HandlerType: (*CalculatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: evaluateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pascal/v1/calculator.proto",
}

func evaluateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculatorServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: EvaluateMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalculatorServer).Evaluate(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterCalculatorServer registers srv on s
func RegisterCalculatorServer(s grpc.ServiceRegistrar, srv CalculatorServer) {
	s.RegisterService(&CalculatorServiceDesc, srv)
}

// grpcCalculator adapts Calculator to CalculatorServer
type grpcCalculator struct {
	calc *Calculator
}

func (g *grpcCalculator) Evaluate(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	out, err := g.calc.Calculate(ctx, req.GetValue(), pgrpc.GetRequestID(ctx))
	if err != nil {
		return nil, statusFromError(err)
	}
	return outcomeToStruct(out), nil
}

func outcomeToStruct(o Outcome) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"ok":    structpb.NewBoolValue(o.OK),
		"value": structpb.NewStringValue(o.Value),
	}
	if o.Kind != "" {
		fields["kind"] = structpb.NewStringValue(o.Kind)
	}
	if o.ErrorCode != "" {
		fields["error_code"] = structpb.NewStringValue(o.ErrorCode)
	}
	return &structpb.Struct{Fields: fields}
}

// outcomeFromStruct decodes a response. Failure codes this client does
// not know are reported as UNKNOWN.
func outcomeFromStruct(s *structpb.Struct) Outcome {
	f := s.GetFields()
	out := Outcome{
		OK:        f["ok"].GetBoolValue(),
		Kind:      f["kind"].GetStringValue(),
		Value:     f["value"].GetStringValue(),
		ErrorCode: f["error_code"].GetStringValue(),
	}
	if !out.OK && !perr.Code(out.ErrorCode).IsValid() {
		out.ErrorCode = perr.CodeUnknown.String()
	}
	return out
}

// CalculatorClient calls pascal.v1.Calculator on a remote server
type CalculatorClient struct {
	cc grpc.ClientConnInterface
}

// NewCalculatorClient creates a client on an established connection
func NewCalculatorClient(cc grpc.ClientConnInterface) *CalculatorClient {
	return &CalculatorClient{cc: cc}
}

// Evaluate sends one expression to the server
func (c *CalculatorClient) Evaluate(ctx context.Context, expression string, opts ...grpc.CallOption) (Outcome, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, EvaluateMethod, wrapperspb.String(expression), out, opts...); err != nil {
		return Outcome{}, errorFromStatus(err)
	}
	return outcomeFromStruct(out), nil
}

// errorFromStatus turns a gRPC status back into a coded error carrying
// the server's message. It is the inverse of statusFromError.
func errorFromStatus(err error) error {
	st := status.Convert(err)
	code := perr.CodeInternal
	switch st.Code() {
	case codes.InvalidArgument:
		code = perr.CodeInvalidInput
	case codes.DeadlineExceeded, codes.Canceled:
		code = perr.CodeTimeout
	case codes.Unavailable:
		code = perr.CodeServiceUnavailable
	}
	return perr.New(st.Message()).
		WithCode(code).
		WithOperation("server.Evaluate").
		WithDetail("grpc_code", st.Code().String())
}
