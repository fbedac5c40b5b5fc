package interp

import (
	"fmt"
	"strings"

	"zinc/src/stdlib"
)

// tryBuiltin evaluates name as one of the ten built-ins if it is one,
// writing any printed output to out. It returns ok=false when name isn't a
// built-in at all, letting the caller fall through to a user-defined
// function lookup — built-ins are always tried first, exactly like
// try_std_function in the interpreter this package replaces.
//
// Arg-count and type validation is checked once here against stdlib's
// descriptor table rather than duplicated per builtin, so stdlib.Builtins
// is the single source of truth codegen and the interpreter both consult.
func tryBuiltin(name string, args []Value, out *strings.Builder) (Value, bool, error) {
	b, ok := stdlib.Lookup(name)
	if !ok {
		return Value{}, false, nil
	}
	if err := checkBuiltinArgs(b, args); err != nil {
		return Value{}, true, err
	}

	var result Value
	var err error

	switch name {
	case "print_int":
		result, err = builtinPrintInt(args, out)
	case "print_bool":
		result, err = builtinPrintBool(args, out)
	case "print_str":
		result, err = builtinPrintStr(args, out)
	case "str_eq":
		result, err = builtinStrEq(args)
	case "str_len":
		result, err = builtinStrLen(args)
	case "str_concat":
		result, err = builtinStrConcat(args)
	case "assert_int_eq":
		result, err = builtinAssertIntEq(args)
	case "assert_bool_eq":
		result, err = builtinAssertBoolEq(args)
	case "assert_str_eq":
		result, err = builtinAssertStrEq(args)
	case "panic":
		result, err = noneValue, panicError("panic")
	default:
		return Value{}, false, nil
	}
	if err != nil {
		return Value{}, true, err
	}
	return coerceNone(result), true, nil
}

// checkBuiltinArgs validates args against b's declared parameter arity and
// types, the same check every builtinXxx helper used to do by hand.
func checkBuiltinArgs(b stdlib.Builtin, args []Value) error {
	if len(args) != len(b.Params) {
		return typeErrorf("%s called with the wrong number of arguments", b.Name)
	}
	for i, p := range b.Params {
		if args[i].Type() != p {
			return typeErrorf("%s called with incorrect argument types", b.Name)
		}
	}
	return nil
}

func builtinPrintInt(args []Value, out *strings.Builder) (Value, error) {
	fmt.Fprintf(out, "%d\n", args[0].Int())
	return noneValue, nil
}

func builtinPrintBool(args []Value, out *strings.Builder) (Value, error) {
	fmt.Fprintf(out, "%t\n", args[0].Bool())
	return noneValue, nil
}

func builtinPrintStr(args []Value, out *strings.Builder) (Value, error) {
	out.WriteString(args[0].Str())
	out.WriteByte('\n')
	return noneValue, nil
}

func builtinStrEq(args []Value) (Value, error) {
	return BoolValue(args[0].Str() == args[1].Str()), nil
}

func builtinStrLen(args []Value) (Value, error) {
	return IntValue(int32(len(args[0].Str()))), nil
}

func builtinStrConcat(args []Value) (Value, error) {
	return StringValue(args[0].Str() + args[1].Str()), nil
}

func builtinAssertIntEq(args []Value) (Value, error) {
	if args[0].Int() != args[1].Int() {
		return Value{}, panicError("assertion failed: %d != %d", args[0].Int(), args[1].Int())
	}
	return noneValue, nil
}

func builtinAssertBoolEq(args []Value) (Value, error) {
	if args[0].Bool() != args[1].Bool() {
		return Value{}, panicError("assertion failed: %t != %t", args[0].Bool(), args[1].Bool())
	}
	return noneValue, nil
}

func builtinAssertStrEq(args []Value) (Value, error) {
	if args[0].Str() != args[1].Str() {
		return Value{}, panicError("assertion failed: %q != %q", args[0].Str(), args[1].Str())
	}
	return noneValue, nil
}
