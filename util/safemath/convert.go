package safemath

import (
	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/bsv-blockchain/utxomatch/errors"
)

// IntToUint32 narrows v to uint32, rejecting negatives.
func IntToUint32(v int) (uint32, error) {
	n, err := safeconversion.IntToUint32(v)
	if err != nil {
		return 0, errors.NewConversionError("int %d does not fit in uint32", v, err)
	}

	return n, nil
}
