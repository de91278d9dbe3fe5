package grpc

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// The Lexer service has no generated stubs: requests and responses travel
// as google.protobuf.Struct messages described by lexRequest and lexResponse.
const (
	ServiceName = "gqllex.v1.Lexer"
	lexMethod   = "/gqllex.v1.Lexer/Lex"
)

type LexerServer interface {
	Lex(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

func RegisterLexerServer(s grpc.ServiceRegistrar, srv LexerServer) {
	s.RegisterService(&lexerServiceDesc, srv)
}

var lexerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LexerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Lex", Handler: lexHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gqllex/v1/lexer.proto",
}

func lexHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LexerServer).Lex(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: lexMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LexerServer).Lex(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type LexerClient struct {
	cc grpc.ClientConnInterface
}

func NewLexerClient(cc grpc.ClientConnInterface) *LexerClient {
	return &LexerClient{cc: cc}
}

func (c *LexerClient) Lex(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, lexMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// toStruct converts a JSON-tagged Go value into a Struct message.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func fromStruct(s *structpb.Struct, v any) error {
	data, err := protojson.Marshal(s)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
