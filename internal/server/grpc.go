package server

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

// ScoreMethod is the full gRPC method name of the scoring RPC. The request is
// a google.protobuf.ListValue of roll numbers and the response a
// google.protobuf.Int32Value holding the total.
const ScoreMethod = "/bowling.v1.Scorer/Score"

// ScorerServer is the gRPC scoring service.
type ScorerServer interface {
	Score(context.Context, *structpb.ListValue) (*wrapperspb.Int32Value, error)
}

var scorerServiceDesc = grpc.ServiceDesc{
	ServiceName: "bowling.v1.Scorer",
	HandlerType: (*ScorerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Score", Handler: scoreHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bowling/v1/scorer.proto",
}

func scoreHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.ListValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScorerServer).Score(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ScoreMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ScorerServer).Score(ctx, req.(*structpb.ListValue))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterGRPC registers the scoring service on g.
func (s *Server) RegisterGRPC(g grpc.ServiceRegistrar) {
	g.RegisterService(&scorerServiceDesc, s)
}

// Score implements ScorerServer.
func (s *Server) Score(ctx context.Context, in *structpb.ListValue) (*wrapperspb.Int32Value, error) {
	_, span := s.tracer.Start(ctx, "score.grpc")
	defer span.End()

	rolls, err := rollsFromList(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	span.SetAttributes(attribute.Int("bowling.rolls", len(rolls)))

	total, _, err := s.score(rolls)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, status.Error(grpcCode(err), err.Error())
	}
	return wrapperspb.Int32(int32(total)), nil
}

func rollsFromList(in *structpb.ListValue) ([]int, error) {
	values := in.GetValues()
	rolls := make([]int, len(values))
	for i, v := range values {
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
			return nil, fmt.Errorf("roll %d: must be an integer", i+1)
		}
		rolls[i] = int(n.NumberValue)
	}
	return rolls, nil
}

func grpcCode(err error) codes.Code {
	switch {
	case badInput(err):
		return codes.InvalidArgument
	case errors.Is(err, bowling.ErrIncompleteGame), errors.Is(err, bowling.ErrNoRolls):
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}
