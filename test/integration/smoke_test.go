package integration_test

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"testing"

	adaptgrpc "github.com/gqllex/gqllex/internal/adapters/grpc"
	"github.com/gqllex/gqllex/internal/adapters/sqlite"
	"github.com/gqllex/gqllex/internal/domain"
	"github.com/gqllex/gqllex/internal/engine"
	"github.com/gqllex/gqllex/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const query = `# fetch a hero
query Hero($episode: Episode = JEDI) {
  hero(episode: $episode) {
    name
    bio: description(format: """
      markdown
    """)
    height(unit: 1.5e2)
  }
}
`

func TestSmoke_DaemonLexesAndCachesOverUnixSocket(t *testing.T) {
	dir := t.TempDir()

	store, err := sqlite.NewStore(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer store.Close()

	grpcServer := grpc.NewServer()
	adaptgrpc.RegisterLexerServer(grpcServer, adaptgrpc.NewLexServer(engine.New(store)))

	sock := filepath.Join(dir, "gqllex.sock")
	lis, err := net.Listen("unix", sock)
	require.NoError(t, err)
	go grpcServer.Serve(lis)
	defer grpcServer.Stop()

	conn, err := grpc.NewClient("unix://"+sock, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()
	client := adaptgrpc.NewLexerClient(conn)

	ctx := context.Background()
	doc := domain.Document{Name: "hero.graphql", Body: query}

	first, err := client.LexDocument(ctx, doc)
	require.NoError(t, err)
	require.True(t, first.OK())
	assert.False(t, first.Cached)

	var kinds []string
	for _, rec := range first.Tokens {
		kinds = append(kinds, rec.Kind)
	}
	assert.Equal(t, "Name", kinds[0])
	assert.Contains(t, kinds, "BlockString")
	assert.Contains(t, kinds, "Float")
	assert.Equal(t, "<EOF>", kinds[len(kinds)-1])

	second, err := client.LexDocument(ctx, doc)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Tokens, second.Tokens)

	stored, err := store.ListResults(ctx, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, doc.Key(), stored[0].Key)
	assert.Equal(t, "hero.graphql", stored[0].Name)

	var buf bytes.Buffer
	w := protocol.NewTokenWriter(&buf)
	for _, rec := range second.Tokens {
		require.NoError(t, w.Token(second.Name, rec))
	}
	require.NoError(t, w.Done(second.Name, len(second.Tokens)))

	msgs, err := protocol.ParseStream(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, msgs, len(second.Tokens)+1)
	assert.Equal(t, "markdown", *msgs[indexOf(kinds, "BlockString")].Token.Value)
}

func TestSmoke_SyntaxErrorIsCachedToo(t *testing.T) {
	dir := t.TempDir()

	store, err := sqlite.NewStore(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer store.Close()

	eng := engine.New(store)
	doc := domain.Document{Name: "bad.graphql", Body: "{\n  name(x: \"\\q\")\n}", LineOffset: 10}

	first, err := eng.Lex(context.Background(), doc)
	require.NoError(t, err)
	require.False(t, first.OK())
	assert.Equal(t, "Syntax Error: Invalid character escape sequence: '\\q'.", first.Err.Message)

	second, err := eng.Lex(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Err, second.Err)
}

func indexOf(items []string, want string) int {
	for i, item := range items {
		if item == want {
			return i
		}
	}
	return -1
}
