// Package safemath provides overflow-checked integer arithmetic.
//
// None of the helpers wrap or panic: overflow, underflow, division by zero
// and lossy narrowing are reported as coded errors (ERR_ADDITION_OVERFLOW,
// ERR_SUBTRACTION_OVERFLOW, ERR_MULTIPLICATION_OVERFLOW,
// ERR_DIVISION_OVERFLOW, ERR_CONVERSION_ERROR).
package safemath

import (
	"github.com/bsv-blockchain/utxomatch/errors"
	"golang.org/x/exp/constraints"
)

// Add returns a + b.
func Add[T constraints.Unsigned](a, b T) (T, error) {
	c := a + b
	if c < a {
		return 0, errors.NewAdditionOverflowError("%d + %d overflows", a, b)
	}

	return c, nil
}

// Sub returns a - b.
func Sub[T constraints.Unsigned](a, b T) (T, error) {
	if b > a {
		return 0, errors.NewSubtractionOverflowError("%d - %d underflows", a, b)
	}

	return a - b, nil
}

// Mul returns a * b.
func Mul[T constraints.Unsigned](a, b T) (T, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}

	c := a * b
	if c/a != b {
		return 0, errors.NewMultiplicationOverflowError("%d * %d overflows", a, b)
	}

	return c, nil
}

// Div returns a / b, failing on a zero divisor.
func Div[T constraints.Unsigned](a, b T) (T, error) {
	if b == 0 {
		return 0, errors.NewDivisionOverflowError("%d / 0", a)
	}

	return a / b, nil
}
