package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	invalidHCL := `
pipeline "p" {
  element "Source" {
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "main.hcl"), []byte(invalidHCL), 0o600))

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(out, errOut, []string{"--docs", tempDir, "p"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse HCL file")
	require.Empty(t, out.String())
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(out, errOut, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(out, errOut, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_RendersPipeline(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	src := `
element_type "Source" {
  category = "internal"
}

pipeline "p" {
  element "Source" { type = "Source" }
}
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "p.hcl"), []byte(src), 0o600))

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	require.NoError(t, run(out, errOut, []string{"-d", tempDir, "p"}))
	require.Equal(t, "Source [Source]\n", out.String())
}
