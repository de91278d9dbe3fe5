package protocol_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gqllex/gqllex/internal/gqlerror"
	"github.com/gqllex/gqllex/internal/language"
	"github.com/gqllex/gqllex/internal/protocol"
	"github.com/gqllex/gqllex/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenWriter_WritesJSONLines(t *testing.T) {
	tokens, err := language.Tokenize(source.MustNew(`{ a(s: "") }`))
	require.NoError(t, err)

	var buf bytes.Buffer
	w := protocol.NewTokenWriter(&buf)
	for _, rec := range protocol.NewTokenRecords(tokens) {
		require.NoError(t, w.Token("q.graphql", rec))
	}
	require.NoError(t, w.Done("q.graphql", len(tokens)))

	assert.Equal(t, len(tokens)+1, strings.Count(buf.String(), "\n"))

	msgs, err := protocol.ParseStream(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, msgs, len(tokens)+1)

	first := msgs[0]
	assert.Equal(t, protocol.MsgToken, first.Type)
	assert.Equal(t, "q.graphql", first.Document)
	assert.Equal(t, "{", first.Token.Kind)
	assert.Nil(t, first.Token.Value)

	str := msgs[5].Token
	assert.Equal(t, "String", str.Kind)
	require.NotNil(t, str.Value)
	assert.Equal(t, "", *str.Value)
	assert.Equal(t, 7, str.Start)
	assert.Equal(t, 9, str.End)

	last := msgs[len(msgs)-1]
	assert.Equal(t, protocol.MsgDone, last.Type)
	assert.Equal(t, len(tokens), last.Count)
}

func TestTokenWriter_Error(t *testing.T) {
	var buf bytes.Buffer
	w := protocol.NewTokenWriter(&buf)

	_, err := language.Tokenize(source.MustNew("{ ? }"))
	require.Error(t, err)
	require.NoError(t, w.Error("stdin", gqlerror.Format(err)))

	msgs, err := protocol.ParseStream(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, protocol.MsgError, msgs[0].Type)
	assert.Equal(t, "Syntax Error: Cannot parse the unexpected character ?.", msgs[0].Error.Message)
	assert.Equal(t, []source.Location{{Line: 1, Column: 3}}, msgs[0].Error.Locations)
}

func TestParseStream_RejectsGarbage(t *testing.T) {
	_, err := protocol.ParseStream([]byte(`{"type":"token"}` + "\n{oops"))
	assert.Error(t, err)
}
