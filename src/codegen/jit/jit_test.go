package jit

import (
	"io"
	"os"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zinc/src/codegen"
	"zinc/src/frontend"
)

// captureStdout redirects the process's stdout file descriptor for the
// duration of fn, since the builtins print via C's printf, which writes
// straight to fd 1 and bypasses Go's os.Stdout buffering entirely.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func buildModule(t *testing.T, src string) *codegen.Module {
	t.Helper()
	fd, err := frontend.Parse(src)
	require.NoError(t, err)

	m := codegen.NewModule("test")
	t.Cleanup(m.Dispose)

	for _, fn := range fd.Functions {
		_, err := m.DeclareFunction(fn)
		require.NoError(t, err)
	}
	main := fd.MainFunction()
	_, err = m.DeclareFunction(main)
	require.NoError(t, err)

	for _, fn := range fd.Functions {
		require.NoError(t, m.BuildFunction(fn))
	}
	require.NoError(t, m.BuildFunction(main))
	return m
}

func TestRunExecutesPrintBuiltin(t *testing.T) {
	m := buildModule(t, `print_int(42);`)

	out := captureStdout(t, func() {
		require.NoError(t, Run(m, false, nil))
	})
	assert.Equal(t, "42\n", out)
}

func TestRunWithOptimizationsEnabled(t *testing.T) {
	m := buildModule(t, `
fn add(a: i32, b: i32) -> i32 {
	return a + b;
}
print_int(add(10, 20));`)

	out := captureStdout(t, func() {
		require.NoError(t, Run(m, true, nil))
	})
	assert.Equal(t, "30\n", out)
}

func TestRunIgnoresExtraSymbolsWithNoMatchingDeclaration(t *testing.T) {
	m := buildModule(t, `print_int(42);`)

	out := captureStdout(t, func() {
		extra := map[string]unsafe.Pointer{"not_declared_in_module": unsafe.Pointer(new(int))}
		require.NoError(t, Run(m, false, extra))
	})
	assert.Equal(t, "42\n", out)
}
