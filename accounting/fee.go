package accounting

import (
	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/util/safemath"
	"lukechampine.com/uint128"
)

// Fee returns vsize * feeRate / per, rounded down. The product is taken at
// double width so only a quotient that does not fit 64 bits fails.
func Fee(vsize, feeRate, per uint64) (uint64, error) {
	fee, err := safemath.MulDiv(vsize, feeRate, per)
	if err != nil {
		return 0, errors.NewCalcOverflowError("fee for vsize %d at %d/%d", vsize, feeRate, per, err)
	}

	return fee, nil
}

// RuneShare returns amount * part / whole, rounded down, for splitting a rune
// balance pro rata.
func RuneShare(amount, part, whole uint128.Uint128) (uint128.Uint128, error) {
	share, err := safemath.MulDiv128(amount, part, whole)
	if err != nil {
		return uint128.Zero, errors.NewCalcOverflowError("share %s/%s of %s", part, whole, amount, err)
	}

	return share, nil
}

// Change returns total - spent - fee, failing when the inputs do not cover
// the outputs and fee.
func Change(total, spent, fee uint64) (uint64, error) {
	out, err := safemath.Add(spent, fee)
	if err != nil {
		return 0, errors.NewCalcOverflowError("outputs plus fee overflow", err)
	}

	change, err := safemath.Sub(total, out)
	if err != nil {
		return 0, errors.NewCalcOverflowError("inputs %d do not cover %d", total, out, err)
	}

	return change, nil
}
