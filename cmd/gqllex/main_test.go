package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gqllex/gqllex/internal/config"
	"github.com/gqllex/gqllex/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmdTokens_Text(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cmdTokens(config.Default(), []string{"-addr", ""}, strings.NewReader("{ a }"), &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, "1:1\t{\n1:3\tName\t\"a\"\n1:5\t}\n1:6\t<EOF>\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestCmdTokens_JSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cmdTokens(config.Default(), []string{"-addr", "", "-format", "json"}, strings.NewReader("query"), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	msgs, err := protocol.ParseStream(stdout.Bytes())
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, protocol.MsgToken, msgs[0].Type)
	assert.Equal(t, "GraphQL request", msgs[0].Document)
	assert.Equal(t, "query", *msgs[0].Token.Value)
	assert.Equal(t, protocol.MsgDone, msgs[2].Type)
	assert.Equal(t, 2, msgs[2].Count)
}

func TestCmdTokens_SyntaxError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cmdTokens(config.Default(), []string{"-addr", ""}, strings.NewReader("{\n  ?"), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "GraphQL request:2:3: Syntax Error: Cannot parse the unexpected character ?.\n", stderr.String())
}

func TestCmdCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.graphql")
	bad := filepath.Join(dir, "bad.graphql")
	require.NoError(t, os.WriteFile(good, []byte("{ hero { name } }\n"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("{ hero(id: 00) }\n"), 0644))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, cmdCheck(config.Default(), []string{good}, &stdout, &stderr))
	assert.Empty(t, stdout.String())

	code := cmdCheck(config.Default(), []string{good, bad}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "Syntax Error: Invalid number, unexpected digit after 0: '0'.")
	assert.Contains(t, stdout.String(), bad+":1:13")
	assert.Contains(t, stderr.String(), "1 of 2 documents failed")
}

func TestCmdCheck_MissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cmdCheck(config.Default(), []string{filepath.Join(t.TempDir(), "nope.graphql")}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "nope.graphql")
}

func TestCmdHighlight(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cmdHighlight(config.Default(), nil, strings.NewReader("{ hero }"), &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "hero")

	stdout.Reset()
	code = cmdHighlight(config.Default(), nil, strings.NewReader(`"open`), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Syntax Error: Unterminated string.")
}
