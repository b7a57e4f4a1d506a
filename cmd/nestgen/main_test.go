package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLIArgumentParsing tests the CLI argument parsing by running the binary
func TestCLIArgumentParsing(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	tempDir := t.TempDir()
	binaryPath := filepath.Join(tempDir, "nestgen")

	// Build the binary
	build := exec.Command("go", "build", "-o", binaryPath, ".")
	build.Dir = "."
	require.NoError(t, build.Run(), "Failed to build CLI binary")

	t.Run("help flag", func(t *testing.T) {
		output, err := exec.Command(binaryPath, "--help").CombinedOutput()
		assert.NoError(t, err)

		outputStr := string(output)
		assert.Contains(t, outputStr, "Usage:")
		assert.Contains(t, outputStr, "nestgen <model-name> [flags]")
		assert.Contains(t, outputStr, "--seed")
		assert.Contains(t, outputStr, "--strict-registration")
	})

	t.Run("no arguments", func(t *testing.T) {
		project := t.TempDir()
		cmd := exec.Command(binaryPath, "--root", project)
		output, err := cmd.CombinedOutput()

		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 1, exitErr.ExitCode())
		assert.Contains(t, string(output), "model name is required")

		entries, err := os.ReadDir(project)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("generate into project", func(t *testing.T) {
		project := t.TempDir()
		cmd := exec.Command(binaryPath, "widget", "--root", project, "--no-preflight")
		cmd.Env = append(os.Environ(), "NO_COLOR=1")
		output, err := cmd.CombinedOutput()
		require.NoError(t, err, string(output))

		assert.FileExists(t, filepath.Join(project, "src", "modules", "widgets", "widgets.module.ts"))
		assert.Contains(t, string(output), "src/app.module.ts not found")
	})
}
