// Package codegen builds one LLVM module from a parsed program. It is the
// shared capability both the native object-file backend and the JIT
// backend build on: both want an `llvm.Context`/`llvm.Module`/`llvm.Builder`
// populated with the same functions, they only differ in how the finished
// module is turned into a result (object bytes on disk versus a callable
// function pointer in this process).
package codegen

import (
	"fmt"

	"github.com/pkg/errors"
	"tinygo.org/x/go-llvm"

	"zinc/src/ast"
	"zinc/src/stdlib"
	"zinc/src/util"
)

// Module owns one LLVM context for the lifetime of a single compilation.
// Callers must call Dispose when finished with it.
type Module struct {
	Ctx     llvm.Context
	Mod     llvm.Module
	Builder llvm.Builder

	ptrType llvm.Type
	strings *util.StringCounter
	funcs   map[string]llvm.Value
	rets    map[string]ast.AbstractType
	params  map[string][]ast.AbstractType
}

// NewModule creates an empty module named name and declares every builtin
// as an external function ahead of time, the way the teacher's GenLLVM
// declares printf before any user code references it.
func NewModule(name string) *Module {
	ctx := llvm.NewContext()
	b := ctx.NewBuilder()
	m := ctx.NewModule(name)

	cm := &Module{
		Ctx:     ctx,
		Mod:     m,
		Builder: b,
		ptrType: llvm.PointerType(llvm.Int8Type(), 0),
		strings: util.NewStringCounter(),
		funcs:   make(map[string]llvm.Value, len(stdlib.Builtins)),
		rets:    make(map[string]ast.AbstractType, len(stdlib.Builtins)),
		params:  make(map[string][]ast.AbstractType, len(stdlib.Builtins)),
	}
	for _, bi := range stdlib.Builtins {
		cm.declareBuiltin(bi)
	}
	return cm
}

// Dispose releases the LLVM context, module and builder owned by cm.
func (m *Module) Dispose() {
	m.Builder.Dispose()
	m.Mod.Dispose()
	m.Ctx.Dispose()
}

// declareBuiltin adds an external function declaration for one runtime
// builtin. The native and C runtime paths link against a symbol with the
// same name (src/link/cruntime); the JIT path binds the symbol to a Go
// function at execution-engine construction time instead.
func (m *Module) declareBuiltin(b stdlib.Builtin) {
	params := make([]llvm.Type, len(b.Params))
	for i, p := range b.Params {
		params[i] = m.valueType(p)
	}
	ret := m.returnType(b.Returns)
	fnType := llvm.FunctionType(ret, params, false)
	fn := llvm.AddFunction(m.Mod, b.Name, fnType)
	m.funcs[b.Name] = fn
	m.rets[b.Name] = b.Returns
	m.params[b.Name] = b.Params
}

// DeclareFunction adds fi's signature to the module without a body, so
// forward references (a function calling one declared later in the file)
// resolve during BuildFunction regardless of declaration order.
func (m *Module) DeclareFunction(fi *ast.FunctionInfo) (llvm.Value, error) {
	if _, ok := m.funcs[fi.Name]; ok {
		return llvm.Value{}, &util.LoweringError{Func: fi.Name, Msg: fmt.Sprintf("duplicate declaration of %q", fi.Name)}
	}
	params := make([]llvm.Type, len(fi.Args))
	for i, a := range fi.Args {
		if a.Type == ast.Void {
			return llvm.Value{}, &util.LoweringError{Func: fi.Name, Msg: fmt.Sprintf("parameter %q has type void", a.Name)}
		}
		params[i] = m.valueType(a.Type)
	}
	ret := m.returnType(fi.Return)
	fnType := llvm.FunctionType(ret, params, false)
	fn := llvm.AddFunction(m.Mod, fi.Name, fnType)
	for i, p := range fn.Params() {
		p.SetName(fi.Args[i].Name)
	}
	m.funcs[fi.Name] = fn
	m.rets[fi.Name] = fi.Return
	argTypes := make([]ast.AbstractType, len(fi.Args))
	for i, a := range fi.Args {
		argTypes[i] = a.Type
	}
	m.params[fi.Name] = argTypes
	return fn, nil
}

// lookupFunc resolves a call target. Builtins are declared into m.funcs
// before any user function, so a user function can never shadow a
// builtin's entry — this realizes spec.md's builtin-first resolution
// order without a separate two-table lookup.
func (m *Module) lookupFunc(name string) (llvm.Value, bool) {
	fn, ok := m.funcs[name]
	return fn, ok
}

// returnTypeOf reports the declared AbstractType return of a previously
// declared function or builtin.
func returnTypeOf(m *Module, name string) (ast.AbstractType, bool) {
	t, ok := m.rets[name]
	return t, ok
}

// paramTypesOf reports the declared AbstractType parameters of a previously
// declared function or builtin, in order.
func paramTypesOf(m *Module, name string) ([]ast.AbstractType, bool) {
	t, ok := m.params[name]
	return t, ok
}

// BuildFunction emits fi's body into its previously declared signature.
func (m *Module) BuildFunction(fi *ast.FunctionInfo) error {
	fn, ok := m.funcs[fi.Name]
	if !ok {
		return errors.Errorf("codegen: function %q was not declared before building", fi.Name)
	}

	entry := llvm.AddBasicBlock(fn, "entry")
	m.Builder.SetInsertPointAtEnd(entry)

	fb := &funcBuilder{
		mod:  m,
		fn:   fn,
		vars: make(map[string]*localVar),
		ret:  fi.Return,
	}

	for i, p := range fn.Params() {
		alloc := m.Builder.CreateAlloca(p.Type(), fi.Args[i].Name)
		m.Builder.CreateStore(p, alloc)
		fb.vars[fi.Args[i].Name] = &localVar{ptr: alloc, typ: fi.Args[i].Type}
	}

	terminated, err := fb.buildStatements(fi.Body)
	if err != nil {
		return err
	}
	if !terminated {
		if fi.Return != ast.Void {
			return &util.LoweringError{Func: fi.Name, Msg: "function falls off the end without returning a value"}
		}
		m.Builder.CreateRetVoid()
	}
	return nil
}
