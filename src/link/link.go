// Package link turns a relocatable object file produced by src/codegen/native
// into an executable, by shelling out to the system linker the way the
// teacher's own toolchain never needed to (LLVM's object emission stops at
// the .o, same as the original implementation's cranelift backend — both
// leave final linking to the platform's own linker driver).
package link

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"

	"zinc/src/link/cruntime"
	"zinc/src/util"
)

// Link compiles the embedded C runtime alongside objectPath's object file
// and produces an executable at outputPath. optimize is forwarded to the
// C compiler as -O2 vs -O0, mirroring the same flag's effect in
// src/codegen/native's LLVM pass pipeline so a "-optimize" build is
// consistently optimized on both sides of the link.
//
// Linux and macOS only: the original implementation's Windows path shells
// out to cl.exe instead of cc, a surface this Go port does not carry —
// the CLI this package backs only ever runs on a Unix cc toolchain.
func Link(objectPath, outputPath string, optimize bool) error {
	dir, err := os.MkdirTemp("", "zinc-link-*")
	if err != nil {
		return errors.Wrap(err, "creating link scratch directory")
	}
	defer os.RemoveAll(dir)

	stdPath := filepath.Join(dir, "zinc_std_c.c")
	entryPath := filepath.Join(dir, "zinc_entry_c.c")
	if err := os.WriteFile(stdPath, cruntime.StdC, 0o644); err != nil {
		return errors.Wrap(err, "writing runtime sources")
	}
	if err := os.WriteFile(entryPath, cruntime.EntryC, 0o644); err != nil {
		return errors.Wrap(err, "writing runtime sources")
	}

	optFlag := "-O0"
	if optimize {
		optFlag = "-O2"
	}

	cc := ccCommand()
	args := []string{optFlag, "-o", outputPath, objectPath, stdPath, entryPath}
	cmd := exec.Command(cc, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return &util.LinkError{Stderr: string(out)}
	}
	return nil
}

// ccCommand picks the system C compiler to invoke, honoring $CC the way a
// Makefile would so a cross toolchain can be substituted without touching
// this package.
func ccCommand() string {
	if cc := os.Getenv("CC"); cc != "" {
		return cc
	}
	return "cc"
}
