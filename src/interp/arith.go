package interp

import "math"

// checkedAdd, checkedSub and checkedMul are the Go equivalents of Rust's
// i32::checked_add/checked_sub/checked_mul: they report whether the 32-bit
// signed result overflowed rather than silently wrapping, which is what
// makes the interpreter's arithmetic deliberately stricter than the
// native/JIT paths' unchecked LLVM instructions.
func checkedAdd(l, r int32) (int32, bool) {
	sum := int64(l) + int64(r)
	if sum > math.MaxInt32 || sum < math.MinInt32 {
		return 0, false
	}
	return int32(sum), true
}

func checkedSub(l, r int32) (int32, bool) {
	diff := int64(l) - int64(r)
	if diff > math.MaxInt32 || diff < math.MinInt32 {
		return 0, false
	}
	return int32(diff), true
}

func checkedMul(l, r int32) (int32, bool) {
	prod := int64(l) * int64(r)
	if prod > math.MaxInt32 || prod < math.MinInt32 {
		return 0, false
	}
	return int32(prod), true
}

// checkedDiv mirrors i32::checked_div: division by zero and the single
// representable overflow case (MinInt32 / -1) both fail rather than
// panicking or wrapping.
func checkedDiv(l, r int32) (int32, bool) {
	if r == 0 {
		return 0, false
	}
	if l == math.MinInt32 && r == -1 {
		return 0, false
	}
	return l / r, true
}
