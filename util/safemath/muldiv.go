package safemath

import (
	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/holiman/uint256"
	"lukechampine.com/uint128"
)

// MulDiv returns (a * b) / divisor. The product is computed in 128 bits so it
// may exceed the uint64 range as long as the quotient fits.
func MulDiv(a, b, divisor uint64) (uint64, error) {
	if divisor == 0 {
		return 0, errors.NewDivisionOverflowError("(%d * %d) / 0", a, b)
	}

	q := uint128.From64(a).Mul64(b).Div64(divisor)
	if q.Hi != 0 {
		return 0, errors.NewConversionError("(%d * %d) / %d does not fit in 64 bits", a, b, divisor)
	}

	return q.Lo, nil
}

// MulDiv128 is MulDiv for 128-bit rune amounts, widened to 256 bits.
func MulDiv128(a, b, divisor uint128.Uint128) (uint128.Uint128, error) {
	if divisor.IsZero() {
		return uint128.Zero, errors.NewDivisionOverflowError("(%s * %s) / 0", a, b)
	}

	q, overflow := new(uint256.Int).MulDivOverflow(widen(a), widen(b), widen(divisor))
	if overflow || q[2] != 0 || q[3] != 0 {
		return uint128.Zero, errors.NewConversionError("(%s * %s) / %s does not fit in 128 bits", a, b, divisor)
	}

	return uint128.New(q[0], q[1]), nil
}

func widen(v uint128.Uint128) *uint256.Int {
	return &uint256.Int{v.Lo, v.Hi, 0, 0}
}

// Add128 returns a + b.
func Add128(a, b uint128.Uint128) (uint128.Uint128, error) {
	c := a.AddWrap(b)
	if c.Cmp(a) < 0 {
		return uint128.Zero, errors.NewAdditionOverflowError("%s + %s overflows", a, b)
	}

	return c, nil
}
