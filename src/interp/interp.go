// Package interp is the tree-walking third compilation path: it runs a
// parsed program directly against the AST, with no object file and no
// JIT-compiled machine code involved.
package interp

import (
	"strings"

	"zinc/src/ast"
)

// Run interprets fd's synthesized zinc_main entry point and returns
// everything its built-in print calls wrote, captured into a buffer rather
// than written to stdout directly — the same "output_string" contract the
// interpreter this package replaces uses, which is what lets callers like
// the exec-safe CLI subcommand treat interpretation as a pure function
// from source text to output text.
func Run(fd *ast.FileDescription) (string, error) {
	var out strings.Builder
	state := &interpreterState{functions: fd.Functions, out: &out}

	main := fd.MainFunction()
	fs := &functionState{info: main, vars: map[string]Value{}, state: state}
	if _, err := fs.run(nil); err != nil {
		return "", err
	}
	return out.String(), nil
}

// interpreterState is shared by every functionState active during one run:
// the function table (read-only) and the single output buffer every print
// builtin appends to, however deep the call stack is.
type interpreterState struct {
	functions map[string]*ast.FunctionInfo
	out       *strings.Builder
}

// functionState is one activation record: its own flat variable frame (no
// lexical nesting, matching the function-wide scoping rule codegen's
// buildSet also follows) plus a back-reference to the state shared across
// the whole call stack.
type functionState struct {
	info  *ast.FunctionInfo
	vars  map[string]Value
	state *interpreterState
}

// run binds args to info's parameters and evaluates its body, returning
// noneValue if the body falls off the end without an explicit return —
// true for zinc_main and for any Void user function called for effect.
func (fs *functionState) run(args []Value) (Value, error) {
	if len(args) != len(fs.info.Args) {
		return Value{}, argCountError(fs.info.Name)
	}
	for i, def := range fs.info.Args {
		if args[i].Type() != def.Type {
			return Value{}, typeErrorf("%s called with incorrect argument types", fs.info.Name)
		}
		fs.vars[def.Name] = args[i]
	}

	ret, err := fs.evalStatements(fs.info.Body)
	if err != nil {
		return Value{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	return noneValue, nil
}

// evalStatements runs stmts in order, short-circuiting and returning a
// non-nil *Value the moment one of them returns — from an explicit return,
// or from a return nested inside an if/while/loop body propagating back up.
func (fs *functionState) evalStatements(stmts []ast.Stmt) (*Value, error) {
	for _, s := range stmts {
		ret, err := fs.evalStatement(s)
		if err != nil {
			return nil, err
		}
		if ret != nil {
			return ret, nil
		}
	}
	return nil, nil
}

func (fs *functionState) evalStatement(s ast.Stmt) (*Value, error) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		if _, err := fs.evalExpr(n.X); err != nil {
			return nil, err
		}
		return nil, nil

	case *ast.ReturnStmt:
		if n.X == nil {
			v := noneValue
			return &v, nil
		}
		v, err := fs.evalExpr(n.X)
		if err != nil {
			return nil, err
		}
		return &v, nil

	case *ast.IfStmt:
		cond, err := fs.evalExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		if cond.Type() != ast.Boolean {
			return nil, typeErrorf("if condition must be boolean")
		}
		if cond.Bool() {
			return fs.evalStatements(n.Then)
		}
		return fs.evalStatements(n.Else)

	case *ast.WhileStmt:
		for {
			cond, err := fs.evalExpr(n.Cond)
			if err != nil {
				return nil, err
			}
			if cond.Type() != ast.Boolean {
				return nil, typeErrorf("while condition must be boolean")
			}
			if !cond.Bool() {
				return nil, nil
			}
			ret, err := fs.evalStatements(n.Body)
			if err != nil {
				return nil, err
			}
			if ret != nil {
				return ret, nil
			}
		}

	case *ast.LoopStmt:
		for {
			ret, err := fs.evalStatements(n.Body)
			if err != nil {
				return nil, err
			}
			if ret != nil {
				return ret, nil
			}
		}

	default:
		return nil, typeErrorf("unhandled statement kind %T", s)
	}
}

func (fs *functionState) evalExpr(e ast.Expr) (Value, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return IntValue(n.Val), nil

	case *ast.BoolLit:
		return BoolValue(n.Val), nil

	case *ast.StringLit:
		return StringValue(n.Val), nil

	case *ast.BinaryExpr:
		return fs.evalBinary(n)

	case *ast.Set:
		return fs.evalSet(n)

	case *ast.Get:
		v, ok := fs.vars[n.Name]
		if !ok {
			return Value{}, undefinedVariableError(n.Name)
		}
		return v, nil

	case *ast.Call:
		return fs.evalCall(n)

	default:
		return Value{}, typeErrorf("unhandled expression kind %T", e)
	}
}

func (fs *functionState) evalSet(n *ast.Set) (Value, error) {
	v, err := fs.evalExpr(n.Value)
	if err != nil {
		return Value{}, err
	}
	if v.Type() != n.VarType {
		return Value{}, typeErrorf("value must be the same type as variable %s is declared", n.Name)
	}
	if existing, ok := fs.vars[n.Name]; ok && existing.Type() != n.VarType {
		return Value{}, typeErrorf("let redeclares %s with a different type", n.Name)
	}
	fs.vars[n.Name] = v
	return v, nil
}

func (fs *functionState) evalCall(n *ast.Call) (Value, error) {
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := fs.evalExpr(a)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}

	if v, ok, err := tryBuiltin(n.Name, args, fs.state.out); ok {
		return v, err
	}

	info, ok := fs.state.functions[n.Name]
	if !ok {
		return Value{}, undefinedFunctionError(n.Name)
	}
	callee := &functionState{info: info, vars: map[string]Value{}, state: fs.state}
	v, err := callee.run(args)
	if err != nil {
		return Value{}, err
	}
	return coerceNone(v), nil
}
