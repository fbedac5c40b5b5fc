package interp

import "zinc/src/ast"

// evalBinary evaluates both operands and dispatches on n.Op, using checked
// arithmetic for Add/Subtract/Multiply/Divide. This is the one place the
// interpreter's semantics deliberately diverge from codegen's buildBinary,
// which emits unchecked LLVM CreateAdd/CreateSub/CreateMul/CreateSDiv —
// native and JIT code wraps or traps at the hardware level on overflow,
// the interpreter reports a RuntimeError instead, matching the original
// implementation's own i32::checked_* arithmetic.
func (fs *functionState) evalBinary(n *ast.BinaryExpr) (Value, error) {
	lhs, err := fs.evalExpr(n.Lhs)
	if err != nil {
		return Value{}, err
	}
	rhs, err := fs.evalExpr(n.Rhs)
	if err != nil {
		return Value{}, err
	}

	if n.Op.IsBoolean() {
		if lhs.Type() != ast.Boolean || rhs.Type() != ast.Boolean {
			return Value{}, typeErrorf("cannot apply %s to non-booleans", n.Op)
		}
		switch n.Op {
		case ast.BoolEqual:
			return BoolValue(lhs.Bool() == rhs.Bool()), nil
		case ast.BoolNotEqual:
			return BoolValue(lhs.Bool() != rhs.Bool()), nil
		}
	}

	if lhs.Type() != ast.Integer || rhs.Type() != ast.Integer {
		return Value{}, typeErrorf("cannot apply %s to non-integers", n.Op)
	}
	l, r := lhs.Int(), rhs.Int()

	switch n.Op {
	case ast.Add:
		res, ok := checkedAdd(l, r)
		if !ok {
			return Value{}, overflowError(additionOverflow, "addition")
		}
		return IntValue(res), nil
	case ast.Subtract:
		res, ok := checkedSub(l, r)
		if !ok {
			return Value{}, overflowError(subtractionOverflow, "subtraction")
		}
		return IntValue(res), nil
	case ast.Multiply:
		res, ok := checkedMul(l, r)
		if !ok {
			return Value{}, overflowError(multiplicationOverflow, "multiplication")
		}
		return IntValue(res), nil
	case ast.Divide:
		res, ok := checkedDiv(l, r)
		if !ok {
			return Value{}, divisionByZeroError()
		}
		return IntValue(res), nil
	case ast.Equal:
		return BoolValue(l == r), nil
	case ast.NotEqual:
		return BoolValue(l != r), nil
	case ast.LessThan:
		return BoolValue(l < r), nil
	case ast.LessThanOrEqual:
		return BoolValue(l <= r), nil
	case ast.GreaterThan:
		return BoolValue(l > r), nil
	case ast.GreaterThanOrEqual:
		return BoolValue(l >= r), nil
	default:
		return Value{}, typeErrorf("unhandled binary operator %s", n.Op)
	}
}
