package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_ValidDocument(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "page.yaml", yellowDoc)

	out, err := runRoot(t, dir, "", "validate", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "is a valid document")
}

func TestValidateCommand_InvalidDocument(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "bad.yaml", `checks:
  - id: title_length
    status: PASS
    weight: 2
`)

	out, err := runRoot(t, dir, "", "validate", doc)
	require.Error(t, err)
	assert.Equal(t, ExitError, exitCode(err))
	assert.Contains(t, out, "schema violation")
	assert.Contains(t, out, "/checks/0/status")
	assert.Contains(t, out, "/checks/0/weight")
}

func TestValidateCommand_Config(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		cfg := writeFile(t, dir, "good.yaml", "server:\n  port: 8080\nweights:\n  title_length: 2\n")
		out, err := runRoot(t, dir, "", "validate", "--config", cfg)
		require.NoError(t, err)
		assert.Contains(t, out, "is a valid config")
	})

	t.Run("invalid", func(t *testing.T) {
		cfg := writeFile(t, dir, "bad.yaml", "server:\n  port: 0\nunknown: true\n")
		out, err := runRoot(t, dir, "", "validate", "--config", cfg)
		require.Error(t, err)
		assert.Contains(t, out, "/server/port")
	})
}

func TestValidateCommand_MissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := runRoot(t, dir, "", "validate", dir+"/missing.yaml")
	require.Error(t, err)
}
