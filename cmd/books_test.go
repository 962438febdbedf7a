package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCommands_AddListRemove(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("LOG_LEVEL", "error")

	id := strings.TrimSpace(runCommand(t, "add", "--name", "Dune", "--author", "Herbert", "--topic", "SciFi"))
	require.NotEmpty(t, id)
	runCommand(t, "add", "--name", "Dune Messiah", "--author", "Herbert", "--topic", "SciFi")

	listed := runCommand(t, "list", "messiah")
	assert.Contains(t, listed, "Dune Messiah")
	assert.NotContains(t, listed, id)

	removed := runCommand(t, "remove", id)
	assert.Contains(t, removed, "removed Dune")

	listed = runCommand(t, "list")
	assert.NotContains(t, listed, id)
	assert.Contains(t, listed, "Dune Messiah")
}
