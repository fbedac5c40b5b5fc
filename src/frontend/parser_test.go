package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zinc/src/ast"
	"zinc/src/util"
)

func TestParseTopLevelStatements(t *testing.T) {
	fd, err := Parse(`let x: i32 = 1; print_int(x);`)
	require.NoError(t, err)
	require.Len(t, fd.Statements, 2)

	first, ok := fd.Statements[0].(*ast.ExprStmt)
	require.True(t, ok)
	set, ok := first.X.(*ast.Set)
	require.True(t, ok)
	assert.Equal(t, "x", set.Name)
	assert.Equal(t, ast.Integer, set.VarType)
	lit, ok := set.Value.(*ast.IntLit)
	require.True(t, ok)
	assert.Equal(t, int32(1), lit.Val)
}

func TestParseFunction(t *testing.T) {
	fd, err := Parse(`
fn add(a: i32, b: i32) -> i32 {
	return a + b;
}`)
	require.NoError(t, err)
	fn, ok := fd.Functions["add"]
	require.True(t, ok)
	assert.Equal(t, ast.Integer, fn.Return)
	require.Len(t, fn.Args, 2)
	assert.Equal(t, "a", fn.Args[0].Name)
	assert.Equal(t, ast.Integer, fn.Args[0].Type)
	require.Len(t, fn.Body, 1)

	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	require.True(t, ok)
	bin, ok := ret.X.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Add, bin.Op)
}

func TestParseBinaryExprIsFlatLeftFold(t *testing.T) {
	fd, err := Parse(`let x: i32 = 1 + 2 - 3 * 4;`)
	require.NoError(t, err)
	set := fd.Statements[0].(*ast.ExprStmt).X.(*ast.Set)

	// 1 + 2 - 3 * 4 folds left-to-right with no precedence climb:
	// ((1 + 2) - 3) * 4.
	outer, ok := set.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Multiply, outer.Op)
	rhs, ok := outer.Rhs.(*ast.IntLit)
	require.True(t, ok)
	assert.Equal(t, int32(4), rhs.Val)

	mid, ok := outer.Lhs.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Subtract, mid.Op)
}

func TestParseIfElse(t *testing.T) {
	fd, err := Parse(`
fn choose(x: bool) -> i32 {
	if (x) {
		return 1;
	} else {
		return 0;
	}
}`)
	require.NoError(t, err)
	fn := fd.Functions["choose"]
	require.Len(t, fn.Body, 1)
	ifStmt, ok := fn.Body[0].(*ast.IfStmt)
	require.True(t, ok)
	assert.Len(t, ifStmt.Then, 1)
	assert.Len(t, ifStmt.Else, 1)
}

func TestParseWhileAndLoop(t *testing.T) {
	fd, err := Parse(`
fn run() -> void {
	while (true) {
		loop {
			return;
		}
	}
}`)
	require.NoError(t, err)
	fn := fd.Functions["run"]
	while, ok := fn.Body[0].(*ast.WhileStmt)
	require.True(t, ok)
	loop, ok := while.Body[0].(*ast.LoopStmt)
	require.True(t, ok)
	assert.Len(t, loop.Body, 1)
	ret, ok := loop.Body[0].(*ast.ReturnStmt)
	require.True(t, ok)
	assert.Nil(t, ret.X)
}

func TestParseCallWithArgs(t *testing.T) {
	fd, err := Parse(`print_str(str_concat("a", "b"));`)
	require.NoError(t, err)
	stmt := fd.Statements[0].(*ast.ExprStmt)
	call, ok := stmt.X.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "print_str", call.Name)
	require.Len(t, call.Args, 1)
	inner, ok := call.Args[0].(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "str_concat", inner.Name)
	assert.Len(t, inner.Args, 2)
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := Parse(`fn broken( -> i32 { return 1; }`)
	require.Error(t, err)

	// The parameter list expects an identifier; "->" sits at line 1, column 12.
	var perr *util.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
	assert.Equal(t, 12, perr.Col)
}

func TestMainFunctionSynthesis(t *testing.T) {
	fd, err := Parse(`let a: i32 = 1; let b: i32 = 2;`)
	require.NoError(t, err)
	main := fd.MainFunction()
	assert.Equal(t, "zinc_main", main.Name)
	assert.Equal(t, ast.Void, main.Return)
	assert.Equal(t, fd.Statements, main.Body)
}
