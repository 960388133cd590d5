package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain lets the test binary act as the logscan executable when
// LOGSCAN_RUN_MAIN is set, so exit codes can be observed from a subprocess.
func TestMain(m *testing.M) {
	if os.Getenv("LOGSCAN_RUN_MAIN") == "1" {
		os.Args = append([]string{"logscan"}, strings.Fields(os.Getenv("LOGSCAN_ARGS"))...)
		main()
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func runMain(t *testing.T, args string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmd := exec.Command(os.Args[0])
	cmd.Env = append(os.Environ(), "LOGSCAN_RUN_MAIN=1", "LOGSCAN_ARGS="+args)
	var out, errOut strings.Builder
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	err := cmd.Run()
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else {
		require.NoError(t, err)
	}
	return out.String(), errOut.String(), exitCode
}

func TestMainExitCodes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(path, []byte("ok\nERROR boom\n"), 0644))

	t.Run("successful scan", func(t *testing.T) {
		stdout, _, code := runMain(t, "--file "+path+" --pattern ERROR --json")
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout, `"matchedCount": 1`)
	})

	t.Run("per-file error still exits zero", func(t *testing.T) {
		stdout, _, code := runMain(t, "--file "+filepath.Join(dir, "missing.log")+" --pattern ERROR --json")
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout, `"errors": [`)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		stdout, stderr, code := runMain(t, "--file "+path+" --pattern /[invalid/")
		assert.Equal(t, 1, code)
		assert.Empty(t, stdout)
		assert.True(t, strings.HasPrefix(stderr, "Error: Invalid regex pattern"), stderr)
	})

	t.Run("missing required flag", func(t *testing.T) {
		_, stderr, code := runMain(t, "--pattern ERROR")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "Error: ")
	})
}
