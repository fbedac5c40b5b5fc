// Package jit runs a built codegen.Module in-process via LLVM's MCJIT,
// binding the same ten builtins the native path links against to host
// function pointers instead of letting the system linker resolve them.
//
// zinc_std_c.c in this package is compiled into the Go binary itself by
// cgo, the same way the original implementation's build.rs compiles
// zinc_std_c.c into the Rust binary only when its "jit" feature is
// enabled — a second copy of the runtime is unavoidable here since the
// native path's copy (src/link/cruntime) is embedded bytes materialized
// for an external `cc` invocation, not code linked into this process.
package jit

/*
extern void *zinc_jit_addr_print_int;
extern void *zinc_jit_addr_print_bool;
extern void *zinc_jit_addr_print_str;
extern void *zinc_jit_addr_str_eq;
extern void *zinc_jit_addr_str_len;
extern void *zinc_jit_addr_str_concat;
extern void *zinc_jit_addr_assert_int_eq;
extern void *zinc_jit_addr_assert_bool_eq;
extern void *zinc_jit_addr_assert_str_eq;
extern void *zinc_jit_addr_panic;
*/
import "C"

import (
	"unsafe"

	"github.com/pkg/errors"
	"tinygo.org/x/go-llvm"

	"zinc/src/codegen"
)

// hostSymbols maps every builtin name to the address of its cgo-compiled
// host implementation, the Go equivalent of the original's
// `vec![("print_int", print_int as *const u8), ...]` symbol table.
var hostSymbols = map[string]unsafe.Pointer{
	"print_int":      unsafe.Pointer(C.zinc_jit_addr_print_int),
	"print_bool":     unsafe.Pointer(C.zinc_jit_addr_print_bool),
	"print_str":      unsafe.Pointer(C.zinc_jit_addr_print_str),
	"str_eq":         unsafe.Pointer(C.zinc_jit_addr_str_eq),
	"str_len":        unsafe.Pointer(C.zinc_jit_addr_str_len),
	"str_concat":     unsafe.Pointer(C.zinc_jit_addr_str_concat),
	"assert_int_eq":  unsafe.Pointer(C.zinc_jit_addr_assert_int_eq),
	"assert_bool_eq": unsafe.Pointer(C.zinc_jit_addr_assert_bool_eq),
	"assert_str_eq":  unsafe.Pointer(C.zinc_jit_addr_assert_str_eq),
	"panic":          unsafe.Pointer(C.zinc_jit_addr_panic),
}

// Run JIT-compiles m and executes its synthesized zinc_main entry point
// in-process, returning once it does (or propagating a runtime abort as
// a process-level crash, the same contract the native executable has:
// assert/panic builtins call the C library's abort(), this process's
// included).
//
// extraSymbols supplies additional (symbol_name, raw_address) host
// bindings beyond the package's own builtins, letting an embedder extend
// the callable surface without forking this package — entries here take
// priority over the built-in table when both name the same symbol.
func Run(m *codegen.Module, optimize bool, extraSymbols map[string]unsafe.Pointer) error {
	if err := llvm.VerifyModule(m.Mod, llvm.ReturnStatusAction); err != nil {
		return errors.Wrap(err, "module failed verification")
	}

	llvm.LinkInMCJIT()
	llvm.InitializeNativeTarget()
	llvm.InitializeNativeAsmPrinter()

	options := llvm.NewMCJITCompilerOptions()
	if optimize {
		options.SetMCJITOptimizationLevel(2)
	}

	ee, err := llvm.NewMCJITCompiler(m.Mod, options)
	if err != nil {
		return errors.Wrap(err, "creating JIT execution engine")
	}
	defer ee.Dispose()

	for name, addr := range hostSymbols {
		fn := m.Mod.NamedFunction(name)
		if fn.IsNil() {
			continue
		}
		ee.AddGlobalMapping(fn, addr)
	}
	for name, addr := range extraSymbols {
		fn := m.Mod.NamedFunction(name)
		if fn.IsNil() {
			continue
		}
		ee.AddGlobalMapping(fn, addr)
	}

	main := m.Mod.NamedFunction("zinc_main")
	if main.IsNil() {
		return errors.New("jit: module has no zinc_main entry point")
	}
	ee.RunFunction(main, nil)
	return nil
}
