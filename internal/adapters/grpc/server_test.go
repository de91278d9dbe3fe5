package grpc_test

import (
	"context"
	"net"
	"testing"

	server "github.com/gqllex/gqllex/internal/adapters/grpc"
	"github.com/gqllex/gqllex/internal/adapters/sqlite"
	"github.com/gqllex/gqllex/internal/domain"
	"github.com/gqllex/gqllex/internal/engine"
	"github.com/gqllex/gqllex/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func startServer(t *testing.T) *server.LexerClient {
	t.Helper()

	store, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	lis := bufconn.Listen(1 << 20)
	grpcServer := grpc.NewServer()
	server.RegisterLexerServer(grpcServer, server.NewLexServer(engine.New(store)))
	go grpcServer.Serve(lis)
	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return server.NewLexerClient(conn)
}

func TestServer_LexDocument(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	result, err := client.LexDocument(ctx, domain.Document{Name: "q.graphql", Body: `{ a(s: "x") }`})
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.False(t, result.Cached)
	assert.Equal(t, "q.graphql", result.Name)
	require.Len(t, result.Tokens, 9)

	str := result.Tokens[5]
	assert.Equal(t, "String", str.Kind)
	assert.Equal(t, 7, str.Start)
	assert.Equal(t, 10, str.End)
	require.NotNil(t, str.Value)
	assert.Equal(t, "x", *str.Value)
	assert.Equal(t, "<EOF>", result.Tokens[8].Kind)

	again, err := client.LexDocument(ctx, domain.Document{Name: "q.graphql", Body: `{ a(s: "x") }`})
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, result.Tokens, again.Tokens)
}

func TestServer_SyntaxError(t *testing.T) {
	client := startServer(t)

	result, err := client.LexDocument(context.Background(), domain.Document{Body: "{\n  'oops'\n}"})
	require.NoError(t, err)
	require.NotNil(t, result.Err)
	assert.Equal(t, `Syntax Error: Unexpected single quote character ('), did you mean to use a double quote (")?`, result.Err.Message)
	assert.Equal(t, []source.Location{{Line: 2, Column: 3}}, result.Err.Locations)
	assert.Empty(t, result.Tokens)
}

func TestServer_InvalidOffset(t *testing.T) {
	client := startServer(t)

	_, err := client.LexDocument(context.Background(), domain.Document{Body: "{}", LineOffset: -1})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_RawStructRequest(t *testing.T) {
	client := startServer(t)

	req, err := structpb.NewStruct(map[string]any{"body": "...F"})
	require.NoError(t, err)

	resp, err := client.Lex(context.Background(), req)
	require.NoError(t, err)

	tokens := resp.GetFields()["tokens"].GetListValue().GetValues()
	require.Len(t, tokens, 3)
	assert.Equal(t, "...", tokens[0].GetStructValue().GetFields()["kind"].GetStringValue())
	assert.Equal(t, 3.0, tokens[1].GetStructValue().GetFields()["start"].GetNumberValue())
	assert.False(t, resp.GetFields()["cached"].GetBoolValue())
}

func TestServer_DirectCall(t *testing.T) {
	srv := server.NewLexServer(engine.New(nil))

	req, err := structpb.NewStruct(map[string]any{"body": "a", "name": 12})
	require.NoError(t, err)

	_, err = srv.Lex(context.Background(), req)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
