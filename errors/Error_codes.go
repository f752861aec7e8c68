package errors

import "strconv"

// ERR is the closed set of error codes. Values are part of the external
// contract: off-chain clients decode host program errors back into these
// codes, so existing values must never be renumbered.
type ERR int32

//nolint:revive,stylecheck // codes mirror the names clients decode
const (
	ERR_UNKNOWN          ERR = 0
	ERR_INVALID_ARGUMENT ERR = 1
	ERR_CONFIGURATION    ERR = 2
	ERR_PROCESSING       ERR = 3

	// matching
	ERR_MISSING_REQUIRED_UTXO  ERR = 10
	ERR_UNEXPECTED_EXTRA_UTXOS ERR = 11
	ERR_INVALID_UTXO_VALUE     ERR = 12
	ERR_INVALID_RUNES_PRESENCE ERR = 13
	ERR_INVALID_RUNE_ID        ERR = 14
	ERR_INVALID_RUNE_AMOUNT    ERR = 15
	ERR_DUPLICATE_UTXO_META    ERR = 16
	ERR_STRICT_ORDER_MISMATCH  ERR = 17
	ERR_INVALID_ANCHOR         ERR = 18
	ERR_TOO_MANY_UTXOS         ERR = 19
	ERR_UTXO_NOT_FOUND         ERR = 20

	// checked arithmetic
	ERR_ADDITION_OVERFLOW       ERR = 30
	ERR_SUBTRACTION_OVERFLOW    ERR = 31
	ERR_MULTIPLICATION_OVERFLOW ERR = 32
	ERR_DIVISION_OVERFLOW       ERR = 33
	ERR_CONVERSION_ERROR        ERR = 34
	ERR_CALC_OVERFLOW           ERR = 35

	// bounded collections
	ERR_COLLECTION_FULL            ERR = 40
	ERR_COLLECTION_DUPLICATE       ERR = 41
	ERR_RUNE_INPUT_LIST_FULL       ERR = 42
	ERR_MODIFIED_ACCOUNT_LIST_FULL ERR = 43
	ERR_SIGNING_INPUT_LIST_FULL    ERR = 44
	ERR_DUPLICATE_SIGNING_INPUT    ERR = 45

	// declarations
	ERR_INVALID_DECLARATION ERR = 50
)

var ERR_name = map[int32]string{
	0:  "UNKNOWN",
	1:  "INVALID_ARGUMENT",
	2:  "CONFIGURATION",
	3:  "PROCESSING",
	10: "MISSING_REQUIRED_UTXO",
	11: "UNEXPECTED_EXTRA_UTXOS",
	12: "INVALID_UTXO_VALUE",
	13: "INVALID_RUNES_PRESENCE",
	14: "INVALID_RUNE_ID",
	15: "INVALID_RUNE_AMOUNT",
	16: "DUPLICATE_UTXO_META",
	17: "STRICT_ORDER_MISMATCH",
	18: "INVALID_ANCHOR",
	19: "TOO_MANY_UTXOS",
	20: "UTXO_NOT_FOUND",
	30: "ADDITION_OVERFLOW",
	31: "SUBTRACTION_OVERFLOW",
	32: "MULTIPLICATION_OVERFLOW",
	33: "DIVISION_OVERFLOW",
	34: "CONVERSION_ERROR",
	35: "CALC_OVERFLOW",
	40: "COLLECTION_FULL",
	41: "COLLECTION_DUPLICATE",
	42: "RUNE_INPUT_LIST_FULL",
	43: "MODIFIED_ACCOUNT_LIST_FULL",
	44: "SIGNING_INPUT_LIST_FULL",
	45: "DUPLICATE_SIGNING_INPUT",
	50: "INVALID_DECLARATION",
}

var ERR_value = func() map[string]int32 {
	m := make(map[string]int32, len(ERR_name))
	for k, v := range ERR_name {
		m[v] = k
	}

	return m
}()

func (x ERR) String() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return strconv.Itoa(int(x))
}

// ParseERR returns the code for a name such as "DUPLICATE_UTXO_META".
func ParseERR(name string) (ERR, bool) {
	v, ok := ERR_value[name]
	return ERR(v), ok
}
