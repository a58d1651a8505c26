package quadrature

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes quadrature errors.
type ErrorCode string

const (
	// CodeInvalidInterval indicates a >= b, a non-finite bound or an
	// interval too wide to represent.
	CodeInvalidInterval ErrorCode = "INVALID_INTERVAL"

	// CodeInvalidPartitionCount indicates n <= 0.
	CodeInvalidPartitionCount ErrorCode = "INVALID_PARTITION_COUNT"

	// CodeInvalidLowerBound indicates a lies outside the integrand's domain.
	CodeInvalidLowerBound ErrorCode = "INVALID_LOWER_BOUND"

	// CodeInvalidUpperBound indicates b lies outside the integrand's domain.
	CodeInvalidUpperBound ErrorCode = "INVALID_UPPER_BOUND"

	// CodeNonFiniteResult indicates the sum overflowed or the integrand
	// produced NaN/Inf without reporting an error.
	CodeNonFiniteResult ErrorCode = "NON_FINITE_RESULT"
)

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	ErrInvalidInterval       = &Error{Code: CodeInvalidInterval}
	ErrInvalidPartitionCount = &Error{Code: CodeInvalidPartitionCount}
	ErrInvalidLowerBound     = &Error{Code: CodeInvalidLowerBound}
	ErrInvalidUpperBound     = &Error{Code: CodeInvalidUpperBound}
	ErrNonFiniteResult       = &Error{Code: CodeNonFiniteResult}
)

// Error is a rejected or failed quadrature call.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// A, B and N are the arguments of the failed call.
	A float64
	B float64
	N int
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s (a=%g, b=%g, n=%d)", e.Code, e.Message, e.A, e.B, e.N)
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Code
	}
	return ""
}

// IsValidationError reports whether err was raised before sampling began.
func IsValidationError(err error) bool {
	switch CodeOf(err) {
	case CodeInvalidInterval, CodeInvalidPartitionCount, CodeInvalidLowerBound, CodeInvalidUpperBound:
		return true
	}
	return false
}

func newError(code ErrorCode, a, b float64, n int, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		A:       a,
		B:       b,
		N:       n,
	}
}
