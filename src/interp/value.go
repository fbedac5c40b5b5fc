package interp

import "zinc/src/ast"

// Value is the tagged union every expression evaluates to. It has no Go
// interface indirection (unlike ast.Expr/ast.Stmt) because the interpreter
// only ever needs to carry these four shapes around, never extend them.
type Value struct {
	kind ast.AbstractType
	i    int32
	b    bool
	s    string
}

func IntValue(v int32) Value      { return Value{kind: ast.Integer, i: v} }
func BoolValue(v bool) Value      { return Value{kind: ast.Boolean, b: v} }
func StringValue(v string) Value { return Value{kind: ast.String, s: v} }

// noneValue is Value::None from the original implementation: the result of
// evaluating a void call, built-in or user-defined. It is never observable from outside this
// package — every call site that could see one immediately coerces it to
// IntValue(0) for compatibility with the native and JIT paths, which have
// no "no value" representation of their own.
var noneValue = Value{kind: ast.Void}

func (v Value) Type() ast.AbstractType { return v.kind }
func (v Value) Int() int32             { return v.i }
func (v Value) Bool() bool             { return v.b }
func (v Value) Str() string            { return v.s }

// coerceNone turns Value::None into Integer(0), the rule try_std_function
// applies to every void built-in's result (and evalCall applies to every
// void user function's result) so it can still be used in expression
// position the same way native/JIT's synthesized zero constant is.
func coerceNone(v Value) Value {
	if v.kind == ast.Void {
		return IntValue(0)
	}
	return v
}
