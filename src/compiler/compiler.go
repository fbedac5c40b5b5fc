// Package compiler is the single front door onto all three compilation
// paths, matching the shape of the original implementation's own
// lib.rs: parse once, then hand the AST to whichever backend the caller
// asked for.
package compiler

import (
	"os"
	"unsafe"

	"github.com/pkg/errors"

	"zinc/src/codegen"
	"zinc/src/codegen/jit"
	"zinc/src/codegen/native"
	"zinc/src/frontend"
	"zinc/src/interp"
	"zinc/src/link"
	"zinc/src/util"
)

// buildModule parses src and lowers every declared function plus the
// synthesized zinc_main entry point into a fresh codegen.Module, the
// shared first half of both the native and JIT paths.
func buildModule(src string) (*codegen.Module, error) {
	fd, err := frontend.Parse(src)
	if err != nil {
		return nil, errors.Wrap(err, "parsing")
	}

	m := codegen.NewModule("zinc")
	for _, fn := range fd.Functions {
		if _, err := m.DeclareFunction(fn); err != nil {
			return nil, err
		}
	}
	main := fd.MainFunction()
	if _, err := m.DeclareFunction(main); err != nil {
		return nil, err
	}
	for _, fn := range fd.Functions {
		if err := m.BuildFunction(fn); err != nil {
			m.Dispose()
			return nil, errors.Wrapf(err, "building function %s", fn.Name)
		}
	}
	if err := m.BuildFunction(main); err != nil {
		m.Dispose()
		return nil, errors.Wrap(err, "building zinc_main")
	}
	return m, nil
}

// BuildExecutable compiles the program at input to a native executable at
// output, ahead of time: parse, lower to LLVM IR, emit an object file,
// link it against the embedded C runtime.
func BuildExecutable(input, output string, optimize bool) error {
	src, err := util.ReadSource(input)
	if err != nil {
		return errors.Wrap(err, "reading input file")
	}

	m, err := buildModule(src)
	if err != nil {
		return err
	}
	defer m.Dispose()

	objPath := output + ".o"
	if err := native.EmitObject(m, objPath, optimize); err != nil {
		return errors.Wrap(err, "emitting object file")
	}
	defer os.Remove(objPath)

	if err := link.Link(objPath, output, optimize); err != nil {
		return err
	}
	return nil
}

// RunJIT parses code and executes it in-process via LLVM's MCJIT, with no
// object file and no separate executable ever touching disk. extraSymbols
// is forwarded to jit.Run unchanged, letting an embedder bind host
// function pointers beyond the package's own builtins; the CLI passes nil
// since it has no surface for supplying raw symbol pairs.
func RunJIT(code string, optimize bool, extraSymbols map[string]unsafe.Pointer) error {
	m, err := buildModule(code)
	if err != nil {
		return err
	}
	defer m.Dispose()

	return jit.Run(m, optimize, extraSymbols)
}

// RunInterpreter parses code and tree-walks it, returning everything its
// print calls produced rather than writing to stdout directly.
func RunInterpreter(code string) (string, error) {
	fd, err := frontend.Parse(code)
	if err != nil {
		return "", errors.Wrap(err, "parsing")
	}
	return interp.Run(fd)
}
