package quadrature

import (
	"math"

	"github.com/roach88/quadra/internal/integrand"
)

// Validate checks (a, b, n) against f without sampling it.
//
// Checks run in this order and the first failure is returned:
//  1. a < b, b-a and both finite   INVALID_INTERVAL
//  2. n > 0                       INVALID_PARTITION_COUNT
//  3. a inside f.Domain()         INVALID_LOWER_BOUND
//  4. b inside f.Domain()         INVALID_UPPER_BOUND
//
// Equal bounds are rejected rather than integrated to zero.
func Validate(f integrand.Integrand, a, b float64, n int) error {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return newError(CodeInvalidInterval, a, b, n, "integration bounds must be finite")
	}
	// Written as !(a < b) so NaN bounds are rejected too.
	if !(a < b) {
		return newError(CodeInvalidInterval, a, b, n, "lower bound must be less than upper bound")
	}
	if math.IsInf(b-a, 0) {
		return newError(CodeInvalidInterval, a, b, n, "interval width overflows")
	}
	if n <= 0 {
		return newError(CodeInvalidPartitionCount, a, b, n, "partition count must be positive")
	}

	d := f.Domain()
	if !d.Contains(a) {
		return newError(CodeInvalidLowerBound, a, b, n, "lower bound is outside the integrand domain %s", d)
	}
	if !d.Contains(b) {
		return newError(CodeInvalidUpperBound, a, b, n, "upper bound is outside the integrand domain %s", d)
	}
	return nil
}
