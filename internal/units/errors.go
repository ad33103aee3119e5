package units

import "errors"

// Size parse failures. Every error returned by ParseSize wraps exactly one of these.
var (
	ErrZeroValue             = errors.New("zero is not a valid value")
	ErrSuffixRequired        = errors.New("non-integer numbers need a unit suffix")
	ErrInvalidMantissa       = errors.New("invalid number")
	ErrSuffixTooLong         = errors.New("the suffix is too long, it can be at most two characters")
	ErrInvalidUnitTerminator = errors.New("the suffix must end with 'B', or with 'b' after an SI prefix")
	ErrUnknownSiPrefix       = errors.New("unsupported SI prefix")
	ErrTooSmall              = errors.New("too small, rounds down to zero bytes")
	ErrOverflow              = errors.New("too large to count in bytes")
)

// ErrInvalidDuration wraps every ParseDelay failure.
var ErrInvalidDuration = errors.New("invalid duration")
