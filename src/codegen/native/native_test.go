package native

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"zinc/src/codegen"
	"zinc/src/frontend"
)

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

func TestEmitObjectWritesNonEmptyFile(t *testing.T) {
	m := buildModule(t, `print_int(1);`)

	path := filepath.Join(t.TempDir(), "out.o")
	require.NoError(t, EmitObject(m, path, false))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NotZero(t, info.Size())
}

func TestEmitObjectWithOptimizationsEnabled(t *testing.T) {
	m := buildModule(t, `
fn add(a: i32, b: i32) -> i32 {
	return a + b;
}
print_int(add(1, 2));`)

	path := filepath.Join(t.TempDir(), "out.o")
	require.NoError(t, EmitObject(m, path, true))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NotZero(t, info.Size())
}
