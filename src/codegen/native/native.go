// Package native turns a built codegen.Module into a relocatable object
// file on disk, the first half of the native compilation path (the second
// half, turning the object into an executable, is src/link).
package native

import (
	"os"

	"github.com/pkg/errors"
	"tinygo.org/x/go-llvm"

	"zinc/src/codegen"
)

// hostTargetMachine initializes every LLVM target component the emitter
// needs and returns a TargetMachine for the machine this process is
// running on. Unlike the teacher's GenLLVM, which accepts a cross-compile
// target triple/arch/vendor/OS quadruple, this compiler only ever targets
// the host it runs on — spec.md's native path is compile-and-link-locally,
// with no cross-compilation surface to configure.
func hostTargetMachine() (llvm.TargetMachine, error) {
	llvm.InitializeNativeTarget()
	llvm.InitializeNativeAsmPrinter()
	llvm.InitializeNativeAsmParser()

	triple := llvm.DefaultTargetTriple()
	target, err := llvm.GetTargetFromTriple(triple)
	if err != nil {
		return llvm.TargetMachine{}, errors.Wrap(err, "resolving host target triple")
	}
	tm := target.CreateTargetMachine(triple, "generic", "",
		llvm.CodeGenLevelDefault,
		llvm.RelocDefault,
		llvm.CodeModelDefault)
	return tm, nil
}

// EmitObject lowers m's module to a relocatable object file at path,
// applying LLVM's own optimization passes when optimize is set — the
// direct replacement for the interpreter's absence of any optimizer and
// for cranelift's own optimize flag in the original implementation.
func EmitObject(m *codegen.Module, path string, optimize bool) error {
	tm, err := hostTargetMachine()
	if err != nil {
		return err
	}
	defer tm.Dispose()

	if optimize {
		if err := runOptimizationPasses(m); err != nil {
			return err
		}
	}

	td := tm.CreateTargetData()
	defer td.Dispose()
	m.Mod.SetDataLayout(td.String())
	m.Mod.SetTarget(tm.Triple())

	if err := llvm.VerifyModule(m.Mod, llvm.ReturnStatusAction); err != nil {
		return errors.Wrap(err, "module failed verification")
	}

	buf, err := tm.EmitToMemoryBuffer(m.Mod, llvm.ObjectFile)
	if err != nil {
		return errors.Wrap(err, "emitting object code")
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing object file %s", path)
	}
	return nil
}

// runOptimizationPasses runs LLVM's standard function and module pass
// pipeline over m, the teacher's own "-O" story: it never hand-rolls
// constant folding or dead-code elimination the way a from-scratch IR
// optimizer (src/ir/optimise.go) would, it delegates to LLVM.
func runOptimizationPasses(m *codegen.Module) error {
	pmb := llvm.NewPassManagerBuilder()
	defer pmb.Dispose()
	pmb.SetOptLevel(2)

	fpm := llvm.NewFunctionPassManagerForModule(m.Mod)
	defer fpm.Dispose()
	pmb.PopulateFunc(fpm)

	fpm.InitializeFunc()
	for fn := m.Mod.FirstFunction(); !fn.IsNil(); fn = llvm.NextFunction(fn) {
		fpm.RunFunc(fn)
	}
	fpm.FinalizeFunc()

	mpm := llvm.NewPassManager()
	defer mpm.Dispose()
	pmb.Populate(mpm)
	mpm.Run(m.Mod)
	return nil
}
