package errors

var (
	ErrUnknown                 = New(ERR_UNKNOWN, "unknown error")
	ErrInvalidArgument         = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrConfiguration           = New(ERR_CONFIGURATION, "configuration error")
	ErrProcessing              = New(ERR_PROCESSING, "error processing")
	ErrMissingRequiredUtxo     = New(ERR_MISSING_REQUIRED_UTXO, "missing required utxo")
	ErrUnexpectedExtraUtxos    = New(ERR_UNEXPECTED_EXTRA_UTXOS, "unexpected extra utxos")
	ErrInvalidUtxoValue        = New(ERR_INVALID_UTXO_VALUE, "invalid utxo value")
	ErrInvalidRunesPresence    = New(ERR_INVALID_RUNES_PRESENCE, "invalid runes presence")
	ErrInvalidRuneID           = New(ERR_INVALID_RUNE_ID, "invalid rune id")
	ErrInvalidRuneAmount       = New(ERR_INVALID_RUNE_AMOUNT, "invalid rune amount")
	ErrDuplicateUtxoMeta       = New(ERR_DUPLICATE_UTXO_META, "duplicate utxo meta")
	ErrStrictOrderMismatch     = New(ERR_STRICT_ORDER_MISMATCH, "strict order mismatch")
	ErrInvalidAnchor           = New(ERR_INVALID_ANCHOR, "invalid anchor")
	ErrTooManyUtxos            = New(ERR_TOO_MANY_UTXOS, "too many utxos")
	ErrUtxoNotFound            = New(ERR_UTXO_NOT_FOUND, "utxo not found")
	ErrAdditionOverflow        = New(ERR_ADDITION_OVERFLOW, "addition overflow")
	ErrSubtractionOverflow     = New(ERR_SUBTRACTION_OVERFLOW, "subtraction overflow")
	ErrMultiplicationOverflow  = New(ERR_MULTIPLICATION_OVERFLOW, "multiplication overflow")
	ErrDivisionOverflow        = New(ERR_DIVISION_OVERFLOW, "division overflow")
	ErrConversion              = New(ERR_CONVERSION_ERROR, "conversion error")
	ErrCalcOverflow            = New(ERR_CALC_OVERFLOW, "calculation overflow")
	ErrCollectionFull          = New(ERR_COLLECTION_FULL, "collection full")
	ErrCollectionDuplicate     = New(ERR_COLLECTION_DUPLICATE, "duplicate collection element")
	ErrRuneInputListFull       = New(ERR_RUNE_INPUT_LIST_FULL, "rune input list full")
	ErrModifiedAccountListFull = New(ERR_MODIFIED_ACCOUNT_LIST_FULL, "modified account list full")
	ErrSigningInputListFull    = New(ERR_SIGNING_INPUT_LIST_FULL, "signing input list full")
	ErrDuplicateSigningInput   = New(ERR_DUPLICATE_SIGNING_INPUT, "duplicate signing input")
	ErrInvalidDeclaration      = New(ERR_INVALID_DECLARATION, "invalid declaration")
)

// errors initialization functions

func NewUnknownError(message string, params ...interface{}) error {
	return New(ERR_UNKNOWN, message, params...)
}
func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}
func NewMissingRequiredUtxoError(message string, params ...interface{}) error {
	return New(ERR_MISSING_REQUIRED_UTXO, message, params...)
}
func NewUnexpectedExtraUtxosError(message string, params ...interface{}) error {
	return New(ERR_UNEXPECTED_EXTRA_UTXOS, message, params...)
}
func NewInvalidUtxoValueError(message string, params ...interface{}) error {
	return New(ERR_INVALID_UTXO_VALUE, message, params...)
}
func NewInvalidRunesPresenceError(message string, params ...interface{}) error {
	return New(ERR_INVALID_RUNES_PRESENCE, message, params...)
}
func NewInvalidRuneIDError(message string, params ...interface{}) error {
	return New(ERR_INVALID_RUNE_ID, message, params...)
}
func NewInvalidRuneAmountError(message string, params ...interface{}) error {
	return New(ERR_INVALID_RUNE_AMOUNT, message, params...)
}
func NewDuplicateUtxoMetaError(message string, params ...interface{}) error {
	return New(ERR_DUPLICATE_UTXO_META, message, params...)
}
func NewStrictOrderMismatchError(message string, params ...interface{}) error {
	return New(ERR_STRICT_ORDER_MISMATCH, message, params...)
}
func NewInvalidAnchorError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ANCHOR, message, params...)
}
func NewTooManyUtxosError(message string, params ...interface{}) error {
	return New(ERR_TOO_MANY_UTXOS, message, params...)
}
func NewUtxoNotFoundError(message string, params ...interface{}) error {
	return New(ERR_UTXO_NOT_FOUND, message, params...)
}
func NewAdditionOverflowError(message string, params ...interface{}) error {
	return New(ERR_ADDITION_OVERFLOW, message, params...)
}
func NewSubtractionOverflowError(message string, params ...interface{}) error {
	return New(ERR_SUBTRACTION_OVERFLOW, message, params...)
}
func NewMultiplicationOverflowError(message string, params ...interface{}) error {
	return New(ERR_MULTIPLICATION_OVERFLOW, message, params...)
}
func NewDivisionOverflowError(message string, params ...interface{}) error {
	return New(ERR_DIVISION_OVERFLOW, message, params...)
}
func NewConversionError(message string, params ...interface{}) error {
	return New(ERR_CONVERSION_ERROR, message, params...)
}
func NewCalcOverflowError(message string, params ...interface{}) error {
	return New(ERR_CALC_OVERFLOW, message, params...)
}
func NewCollectionFullError(message string, params ...interface{}) error {
	return New(ERR_COLLECTION_FULL, message, params...)
}
func NewCollectionDuplicateError(message string, params ...interface{}) error {
	return New(ERR_COLLECTION_DUPLICATE, message, params...)
}
func NewRuneInputListFullError(message string, params ...interface{}) error {
	return New(ERR_RUNE_INPUT_LIST_FULL, message, params...)
}
func NewModifiedAccountListFullError(message string, params ...interface{}) error {
	return New(ERR_MODIFIED_ACCOUNT_LIST_FULL, message, params...)
}
func NewSigningInputListFullError(message string, params ...interface{}) error {
	return New(ERR_SIGNING_INPUT_LIST_FULL, message, params...)
}
func NewDuplicateSigningInputError(message string, params ...interface{}) error {
	return New(ERR_DUPLICATE_SIGNING_INPUT, message, params...)
}
func NewInvalidDeclarationError(message string, params ...interface{}) error {
	return New(ERR_INVALID_DECLARATION, message, params...)
}
