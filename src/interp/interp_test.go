package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zinc/src/frontend"
)

func run(t *testing.T, src string) string {
	t.Helper()
	fd, err := frontend.Parse(src)
	require.NoError(t, err)
	out, err := Run(fd)
	require.NoError(t, err)
	return out
}

func TestInterpreterCoversTheLanguage(t *testing.T) {
	out := run(t, `
		assert_int_eq(2 + 3, 5);
		assert_int_eq(3 - 2, 1);
		assert_int_eq(5 * 5, 25);
		assert_int_eq(9 / 3, 3);

		assert_bool_eq(1 + 1 == 2, true);
		assert_bool_eq(3 * 5 != 15, false);

		if (false) {
			panic();
		} else {
			assert_bool_eq(true !? false, true);
		}

		if (true) {
			assert_bool_eq(true =? true, true);
		} else {
			panic();
		}

		assert_bool_eq(3 <= 3, true);
		assert_bool_eq(3 >= 3, true);
		assert_bool_eq(3 < 3, false);
		assert_bool_eq(3 > 3, false);
		assert_bool_eq(2 > 1, true);
		assert_bool_eq(1 < 2, true);

		let x: i32 = 3 * 3 + 1;
		assert_int_eq(x, 10);

		let y: bool = x == 10;
		assert_bool_eq(y, true);

		let n: i32 = 50;
		while (n > 0) {
			let n: i32 = n - 1;
		}
		assert_int_eq(n, 0);

		let s: str = "bruh";
		assert_int_eq(str_len(s), 4);

		fn square(n: i32) -> i32 {
			return n * n;
		}
		assert_int_eq(square(5), 25);

		fn cube(n: i32) -> i32 {
			return square(n) * n;
		}
		assert_int_eq(cube(5), 125);

		assert_str_eq(str_concat("br", "uh"), "bruh");

		print_int(60 + 9);
	`)
	assert.Equal(t, "69\n", out)
}

func TestInterpreterDetectsIntegerOverflow(t *testing.T) {
	fd, err := frontend.Parse(`print_int(2147483647 + 1);`)
	require.NoError(t, err)

	_, err = Run(fd)
	require.Error(t, err)
}

func TestInterpreterDetectsDivisionByZero(t *testing.T) {
	fd, err := frontend.Parse(`print_int(1 / 0);`)
	require.NoError(t, err)

	_, err = Run(fd)
	require.Error(t, err)
}

func TestInterpreterAssertionFailureIsPanic(t *testing.T) {
	fd, err := frontend.Parse(`assert_int_eq(1, 2);`)
	require.NoError(t, err)

	_, err = Run(fd)
	require.Error(t, err)

	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.True(t, rerr.IsPanic())
}

func TestInterpreterVoidCallCoercesToZeroInExpressionPosition(t *testing.T) {
	out := run(t, `
fn noop() -> void {}
let x: i32 = noop();
assert_int_eq(x, 0);
print_int(x);`)
	assert.Equal(t, "0\n", out)
}

func TestInterpreterBareReturnEndsVoidFunctionEarly(t *testing.T) {
	out := run(t, `
fn earlyOut(x: bool) -> void {
	if (x) {
		return;
	}
	print_int(1);
}
earlyOut(true);
earlyOut(false);`)
	assert.Equal(t, "1\n", out)
}

func TestInterpreterBuiltinWrongArgCountIsRuntimeError(t *testing.T) {
	fd, err := frontend.Parse(`print_int(1, 2);`)
	require.NoError(t, err)

	_, err = Run(fd)
	require.Error(t, err)
}

func TestInterpreterUndefinedVariableIsRuntimeError(t *testing.T) {
	fd, err := frontend.Parse(`print_int(y);`)
	require.NoError(t, err)

	_, err = Run(fd)
	require.Error(t, err)
}
