package link

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"zinc/src/codegen"
	"zinc/src/codegen/native"
	"zinc/src/frontend"
	"zinc/src/util"
)

// requireCC skips the test when no C compiler is available, since Link
// shells out to one and this package can't assume every test runner has
// a toolchain installed.
func requireCC(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(ccCommand()); err != nil {
		t.Skip("no C compiler on PATH")
	}
}

func buildObject(t *testing.T, src, path string) {
	t.Helper()
	fd, err := frontend.Parse(src)
	require.NoError(t, err)

	m := codegen.NewModule("test")
	t.Cleanup(m.Dispose)

	main := fd.MainFunction()
	_, err = m.DeclareFunction(main)
	require.NoError(t, err)
	require.NoError(t, m.BuildFunction(main))

	require.NoError(t, native.EmitObject(m, path, false))
}

func TestLinkProducesRunnableExecutable(t *testing.T) {
	requireCC(t)

	dir := t.TempDir()
	objPath := filepath.Join(dir, "out.o")
	exePath := filepath.Join(dir, "out")

	buildObject(t, `print_int(7);`, objPath)

	err := Link(objPath, exePath, false)
	require.NoError(t, err)

	info, err := os.Stat(exePath)
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&0o111, "expected linked output to be executable")
}

func TestLinkFailsWithLinkErrorOnBadObject(t *testing.T) {
	requireCC(t)

	dir := t.TempDir()
	badObj := filepath.Join(dir, "bad.o")
	require.NoError(t, os.WriteFile(badObj, []byte("not an object file"), 0o644))

	err := Link(badObj, filepath.Join(dir, "out"), false)
	require.Error(t, err)

	var linkErr *util.LinkError
	require.ErrorAs(t, err, &linkErr)
	require.NotEmpty(t, linkErr.Stderr)
}
