package compiler

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInterpreterReturnsCapturedOutput(t *testing.T) {
	out, err := RunInterpreter(`print_int(1 + 2);`)
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestRunInterpreterPropagatesParseErrors(t *testing.T) {
	_, err := RunInterpreter(`fn (`)
	require.Error(t, err)
}

func TestBuildExecutableProducesRunnableBinary(t *testing.T) {
	if _, err := exec.LookPath("cc"); err != nil {
		t.Skip("no C compiler on PATH")
	}

	dir := t.TempDir()
	input := filepath.Join(dir, "prog.zinc")
	require.NoError(t, os.WriteFile(input, []byte(`print_int(41 + 1);`), 0o644))

	output := filepath.Join(dir, "prog")
	require.NoError(t, BuildExecutable(input, output, false))

	out, err := exec.Command(output).Output()
	require.NoError(t, err)
	assert.Equal(t, "42\n", string(out))
}
