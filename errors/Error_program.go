package errors

import "math"

// ProgramErrorOffset is added to every ERR value when it is surfaced through
// the host environment's generic program-error representation.
const ProgramErrorOffset uint32 = 6000

// ProgramError returns the host program-error number for the code.
func (x ERR) ProgramError() uint32 {
	if x < 0 {
		return ProgramErrorOffset
	}

	return ProgramErrorOffset + uint32(x)
}

// FromProgramError maps a host program-error number back to its code.
// The second return is false for numbers outside the enumeration.
func FromProgramError(n uint32) (ERR, bool) {
	if n < ProgramErrorOffset || n-ProgramErrorOffset > math.MaxInt32 {
		return ERR_UNKNOWN, false
	}

	code := ERR(n - ProgramErrorOffset)
	if _, ok := ERR_name[int32(code)]; !ok {
		return ERR_UNKNOWN, false
	}

	return code, true
}

// ToProgramError returns the host program-error number for err. Errors that
// carry no code map to ERR_UNKNOWN.
func ToProgramError(err error) uint32 {
	return CodeOf(err).ProgramError()
}
