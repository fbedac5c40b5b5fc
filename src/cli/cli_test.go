package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	execErr := cmd.Execute()

	require.NoError(t, w.Close())
	os.Stdout = old
	var captured bytes.Buffer
	_, _ = captured.ReadFrom(r)

	return captured.String(), execErr
}

func TestExecSafeInterpretsInlineSource(t *testing.T) {
	out, err := runCLI(t, "exec-safe", `print_int(1 + 2);`)
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestRunSafeInterpretsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.zinc")
	require.NoError(t, os.WriteFile(path, []byte(`print_int(41 + 1);`), 0o644))

	out, err := runCLI(t, "run-safe", path)
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestRunSafeMissingFileIsError(t *testing.T) {
	_, err := runCLI(t, "run-safe", "/no/such/file.zinc")
	require.Error(t, err)
}

func TestBuildRequiresExactlyOneArgument(t *testing.T) {
	_, err := runCLI(t, "build")
	require.Error(t, err)
}
