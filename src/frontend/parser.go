// parser.go is a hand-written recursive-descent parser reproducing the
// ordered-choice (PEG) semantics of the grammar: every rule tries its
// alternatives in the order written and commits to the first one that
// matches, never backtracking past a statement boundary. This mirrors how
// a generated PEG parser (pest, pigeon, peg) would behave, without
// depending on a generator that would have to run via `go generate`.

package frontend

import (
	"strconv"

	"github.com/pkg/errors"

	"zinc/src/ast"
	"zinc/src/util"
)

// parser consumes the token slice produced by lex and builds an AST.
type parser struct {
	items []item
	pos   int
}

// Parse scans and parses src into a FileDescription. Top-level `fn`
// declarations populate Functions; every other top-level statement is
// collected into Statements, which become the body of the synthetic
// zinc_main entry point (ast.FileDescription.MainFunction).
func Parse(src string) (*ast.FileDescription, error) {
	items, err := lex(src)
	if err != nil {
		return nil, errors.Wrap(err, "lexing")
	}

	p := &parser{items: items}
	fd := &ast.FileDescription{Functions: make(map[string]*ast.FunctionInfo)}

	for !p.atEOF() {
		if p.check(itemFn) {
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			fd.Functions[fn.Name] = fn
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		fd.Statements = append(fd.Statements, stmt)
	}
	return fd, nil
}

func (p *parser) cur() item {
	if p.pos >= len(p.items) {
		return item{typ: itemEOF}
	}
	return p.items[p.pos]
}

func (p *parser) atEOF() bool {
	return p.cur().typ == itemEOF
}

func (p *parser) check(typ itemType) bool {
	return p.cur().typ == typ
}

func (p *parser) advance() item {
	it := p.cur()
	if p.pos < len(p.items) {
		p.pos++
	}
	return it
}

func (p *parser) rule(rule string, msg string) error {
	it := p.cur()
	return &util.ParseError{Rule: rule, Line: it.line, Col: it.col, Msg: msg}
}

func (p *parser) expect(typ itemType, rule string) (item, error) {
	if !p.check(typ) {
		return item{}, p.rule(rule, "unexpected token "+p.cur().String())
	}
	return p.advance(), nil
}

// parseType consumes a type keyword and returns its AbstractType.
func (p *parser) parseType() (ast.AbstractType, error) {
	it, err := p.expect(itemType_, "type")
	if err != nil {
		return ast.Void, err
	}
	switch it.val {
	case "i32":
		return ast.Integer, nil
	case "bool":
		return ast.Boolean, nil
	case "str":
		return ast.String, nil
	case "void":
		return ast.Void, nil
	default:
		return ast.Void, p.rule("type", "unrecognised type "+it.val)
	}
}

// parseFunction parses "fn" IDENT "(" params? ")" "->" type "{" stmt* "}".
func (p *parser) parseFunction() (*ast.FunctionInfo, error) {
	if _, err := p.expect(itemFn, "func_declaration"); err != nil {
		return nil, err
	}
	name, err := p.expect(itemIdentifier, "func_declaration")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(itemLParen, "func_declaration"); err != nil {
		return nil, err
	}
	var args []ast.Definition
	for !p.check(itemRParen) {
		argName, err := p.expect(itemIdentifier, "arg_declaration")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(itemColon, "arg_declaration"); err != nil {
			return nil, err
		}
		argType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, ast.Definition{Name: argName.val, Type: argType})
		if p.check(itemComma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(itemRParen, "func_declaration"); err != nil {
		return nil, err
	}
	if _, err := p.expect(itemArrow, "func_declaration"); err != nil {
		return nil, err
	}
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionInfo{Name: name.val, Args: args, Return: retType, Body: body}, nil
}

// parseBlock parses "{" stmt* "}".
func (p *parser) parseBlock() ([]ast.Stmt, error) {
	if _, err := p.expect(itemLBrace, "block"); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.check(itemRBrace) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(itemRBrace, "block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseStatement tries each statement alternative in order, committing to
// the first whose leading token matches.
func (p *parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.check(itemReturn):
		return p.parseReturn()
	case p.check(itemIf):
		return p.parseIf()
	case p.check(itemWhile):
		return p.parseWhile()
	case p.check(itemLoop):
		return p.parseLoop()
	case p.check(itemLet):
		return p.parseLetStatement()
	default:
		return p.parseExprStatement()
	}
}

func (p *parser) parseReturn() (ast.Stmt, error) {
	kw := p.advance()
	if p.check(itemSemi) {
		p.advance()
		return &ast.ReturnStmt{X: nil, P: kw.pos()}, nil
	}
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(itemSemi, "return_statement"); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{X: x, P: kw.pos()}, nil
}

func (p *parser) parseIf() (ast.Stmt, error) {
	kw := p.advance()
	if _, err := p.expect(itemLParen, "if_statement"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(itemRParen, "if_statement"); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var els []ast.Stmt
	if p.check(itemElse) {
		p.advance()
		els, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els, P: kw.pos()}, nil
}

func (p *parser) parseWhile() (ast.Stmt, error) {
	kw := p.advance()
	if _, err := p.expect(itemLParen, "while_loop"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(itemRParen, "while_loop"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, P: kw.pos()}, nil
}

func (p *parser) parseLoop() (ast.Stmt, error) {
	kw := p.advance()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.LoopStmt{Body: body, P: kw.pos()}, nil
}

// parseLetStatement parses "let" IDENT ":" type "=" expr ";" as a
// statement wrapping a Set expression, mirroring var_declaration's role
// in the ordered-choice statement rule.
func (p *parser) parseLetStatement() (ast.Stmt, error) {
	set, err := p.parseLet()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(itemSemi, "var_declaration"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: set, P: set.Position()}, nil
}

func (p *parser) parseLet() (*ast.Set, error) {
	kw := p.advance()
	name, err := p.expect(itemIdentifier, "var_declaration")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(itemColon, "var_declaration"); err != nil {
		return nil, err
	}
	varType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(itemAssign, "var_declaration"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Set{Name: name.val, VarType: varType, Value: value, P: kw.pos()}, nil
}

func (p *parser) parseExprStatement() (ast.Stmt, error) {
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(itemSemi, "expr_statement"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: x, P: x.Position()}, nil
}

// parseExpr parses a binary_expr: a flat, left-folded sequence of operands
// joined by any mix of operators, all at one precedence level — exactly as
// the grammar's own binary_expr rule folds them, without a separate
// precedence climb.
func (p *parser) parseExpr() (ast.Expr, error) {
	if p.check(itemLet) {
		return p.parseLet()
	}
	first, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binOpFor(p.cur().typ)
		if !ok {
			return first, nil
		}
		pos := p.advance().pos()
		rhs, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		first = &ast.BinaryExpr{Op: op, Lhs: first, Rhs: rhs, P: pos}
	}
}

func binOpFor(typ itemType) (ast.BinOp, bool) {
	switch typ {
	case itemPlus:
		return ast.Add, true
	case itemMinus:
		return ast.Subtract, true
	case itemStar:
		return ast.Multiply, true
	case itemSlash:
		return ast.Divide, true
	case itemEqEq:
		return ast.Equal, true
	case itemNotEq:
		return ast.NotEqual, true
	case itemLt:
		return ast.LessThan, true
	case itemLe:
		return ast.LessThanOrEqual, true
	case itemGt:
		return ast.GreaterThan, true
	case itemGe:
		return ast.GreaterThanOrEqual, true
	case itemBoolEq:
		return ast.BoolEqual, true
	case itemBoolNotEq:
		return ast.BoolNotEqual, true
	default:
		return 0, false
	}
}

// parseOperand parses a single operand: a literal, a parenthesised
// sub-expression, or an identifier that resolves to either a call or a
// variable read depending on whether "(" follows.
func (p *parser) parseOperand() (ast.Expr, error) {
	it := p.cur()
	switch it.typ {
	case itemInt:
		p.advance()
		n, err := strconv.ParseInt(it.val, 10, 32)
		if err != nil {
			return nil, p.rule("number", "int out of bounds: "+it.val)
		}
		return &ast.IntLit{Val: int32(n), P: it.pos()}, nil
	case itemTrue:
		p.advance()
		return &ast.BoolLit{Val: true, P: it.pos()}, nil
	case itemFalse:
		p.advance()
		return &ast.BoolLit{Val: false, P: it.pos()}, nil
	case itemString:
		p.advance()
		return &ast.StringLit{Val: it.val, P: it.pos()}, nil
	case itemLParen:
		p.advance()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(itemRParen, "operand"); err != nil {
			return nil, err
		}
		return x, nil
	case itemIdentifier:
		p.advance()
		if p.check(itemLParen) {
			return p.parseCall(it)
		}
		return &ast.Get{Name: it.val, P: it.pos()}, nil
	default:
		return nil, p.rule("operand", "unexpected token "+it.String())
	}
}

func (p *parser) parseCall(name item) (ast.Expr, error) {
	if _, err := p.expect(itemLParen, "function_expr"); err != nil {
		return nil, err
	}
	var args []ast.Expr
	for !p.check(itemRParen) {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.check(itemComma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(itemRParen, "function_expr"); err != nil {
		return nil, err
	}
	return &ast.Call{Name: name.val, Args: args, P: name.pos()}, nil
}
