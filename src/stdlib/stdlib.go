// Package stdlib describes the fixed set of built-in functions every Zinc
// program can call without declaring them: printing, string primitives,
// the three typed assert helpers used by test programs, and panic.
//
// All three execution paths (native codegen, JIT, interpreter) resolve a
// call name against this table before falling back to user-defined
// functions, so this is the single source of truth for builtin arity and
// typing rather than something each backend re-declares on its own.
package stdlib

import "zinc/src/ast"

// Builtin describes one built-in function's call signature.
type Builtin struct {
	Name    string
	Params  []ast.AbstractType
	Returns ast.AbstractType
}

// Builtins lists every built-in function, in declaration order. Order
// matters only for the deterministic iteration used by codegen when
// declaring external symbols ahead of time.
var Builtins = []Builtin{
	{Name: "print_int", Params: []ast.AbstractType{ast.Integer}, Returns: ast.Void},
	{Name: "print_bool", Params: []ast.AbstractType{ast.Boolean}, Returns: ast.Void},
	{Name: "print_str", Params: []ast.AbstractType{ast.String}, Returns: ast.Void},
	{Name: "str_eq", Params: []ast.AbstractType{ast.String, ast.String}, Returns: ast.Boolean},
	{Name: "str_len", Params: []ast.AbstractType{ast.String}, Returns: ast.Integer},
	{Name: "str_concat", Params: []ast.AbstractType{ast.String, ast.String}, Returns: ast.String},
	{Name: "assert_int_eq", Params: []ast.AbstractType{ast.Integer, ast.Integer}, Returns: ast.Void},
	{Name: "assert_bool_eq", Params: []ast.AbstractType{ast.Boolean, ast.Boolean}, Returns: ast.Void},
	{Name: "assert_str_eq", Params: []ast.AbstractType{ast.String, ast.String}, Returns: ast.Void},
	{Name: "panic", Params: nil, Returns: ast.Void},
}

var byName = func() map[string]Builtin {
	m := make(map[string]Builtin, len(Builtins))
	for _, b := range Builtins {
		m[b.Name] = b
	}
	return m
}()

// Lookup returns the builtin named name, if any.
func Lookup(name string) (Builtin, bool) {
	b, ok := byName[name]
	return b, ok
}
