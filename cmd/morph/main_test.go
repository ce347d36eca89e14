package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fade = `
name: fade
nodes:
  card: {alpha: 1}
transition: {kind: opacity, node: card}
sample: {frames: 2}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "fade.yaml")
	require.NoError(t, os.WriteFile(file, []byte(fade), 0644))
	store := filepath.Join(dir, "store")

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "morph version")

	out, err = run(t, "sample", "--format", "markdown", file)
	require.NoError(t, err)
	assert.Contains(t, out, "| 1 | 0.5 | 0.5 |")

	out, err = run(t, "validate", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Document is valid")

	out, err = run(t, "graph", file)
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")

	_, err = run(t, "--dir", store, "save", "fade", file)
	require.NoError(t, err)
	out, err = run(t, "--dir", store, "list")
	require.NoError(t, err)
	assert.Equal(t, "fade\n", out)

	_, err = run(t, "sample", "--format", "xml", file)
	assert.Error(t, err)
}
