package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gqllex/gqllex/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestCmdInit_DefaultFlags(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	assert.Equal(t, 0, cmdInit([]string{}, io.Discard))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestCmdInit_CustomFlags(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	assert.Equal(t, 0, cmdInit([]string{"--name", "schema.graphql", "--format", "json"}, io.Discard))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "schema.graphql", cfg.Source.Name)
	assert.Equal(t, config.FormatJSON, cfg.Output.Format)
}

func TestCmdInit_RejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	assert.Equal(t, 1, cmdInit([]string{"--format", "yaml"}, io.Discard))
	_, err := os.Stat(config.Path(dir))
	assert.True(t, os.IsNotExist(err))
}

func TestCmdInit_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".gqllex"), 0755))
	require.NoError(t, os.WriteFile(config.Path(dir), []byte("custom"), 0644))

	assert.Equal(t, 1, cmdInit([]string{}, io.Discard))

	data, err := os.ReadFile(config.Path(dir))
	require.NoError(t, err)
	assert.Equal(t, "custom", string(data))
}
