package errors

// IsPredicateError reports whether err carries one of the codes used to say
// which part of a slot predicate rejected a candidate.
func IsPredicateError(err error) bool {
	switch CodeOf(err) {
	case ERR_INVALID_UTXO_VALUE,
		ERR_INVALID_RUNES_PRESENCE,
		ERR_INVALID_RUNE_ID,
		ERR_INVALID_RUNE_AMOUNT,
		ERR_INVALID_ANCHOR:
		return true
	}

	return false
}

// IsArithmeticError reports whether err was raised by checked arithmetic,
// either directly or after translation at a domain boundary.
func IsArithmeticError(err error) bool {
	switch CodeOf(err) {
	case ERR_ADDITION_OVERFLOW,
		ERR_SUBTRACTION_OVERFLOW,
		ERR_MULTIPLICATION_OVERFLOW,
		ERR_DIVISION_OVERFLOW,
		ERR_CONVERSION_ERROR,
		ERR_CALC_OVERFLOW:
		return true
	}

	return false
}

// IsCapacityError reports whether err signals that a bounded list or set
// rejected an insert because it was full.
func IsCapacityError(err error) bool {
	switch CodeOf(err) {
	case ERR_COLLECTION_FULL,
		ERR_TOO_MANY_UTXOS,
		ERR_RUNE_INPUT_LIST_FULL,
		ERR_MODIFIED_ACCOUNT_LIST_FULL,
		ERR_SIGNING_INPUT_LIST_FULL:
		return true
	}

	return false
}

// Translate re-codes err when its code is from, keeping err as the wrapped
// cause. Errors with any other code are returned unchanged.
func Translate(err error, from ERR, to ERR, message string, params ...interface{}) error {
	if err == nil {
		return nil
	}

	if CodeOf(err) != from {
		return err
	}

	return New(to, message, append(params, err)...)
}
