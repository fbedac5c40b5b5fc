package codegen

import (
	"tinygo.org/x/go-llvm"

	"zinc/src/ast"
)

// valueType lowers an AbstractType that appears in value position (a
// parameter, a local, an operand). Void is never valid here; callers that
// might see Void in value position are implementation bugs, not user
// errors, so this panics rather than returning an error the caller would
// have to thread through every expression-lowering call.
func (m *Module) valueType(t ast.AbstractType) llvm.Type {
	switch t {
	case ast.Integer:
		return llvm.Int32Type()
	case ast.Boolean:
		return llvm.Int1Type()
	case ast.String:
		return m.ptrType
	default:
		panic("codegen: void in value position")
	}
}

// returnType lowers an AbstractType that appears in function-return
// position, where Void is valid and maps to LLVM's void type.
func (m *Module) returnType(t ast.AbstractType) llvm.Type {
	if t == ast.Void {
		return llvm.VoidType()
	}
	return m.valueType(t)
}
