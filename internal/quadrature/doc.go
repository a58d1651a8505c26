// Package quadrature approximates definite integrals of one-variable
// integrands with the composite trapezoidal and midpoint rules.
//
// Every call first validates (a, b, n) with Validate. Validation never
// samples the integrand; it rejects reversed or equal bounds, non-positive
// partition counts and bounds outside the integrand's domain. Only then is
// the integrand evaluated, at points inside [a, b] in ascending order, and
// the samples reduced to one float64.
//
// Results are always finite. Errors are *Error values carrying an
// ErrorCode; integrand failures during summation are wrapped so that
// errors.Is(err, integrand.ErrInvalidArgument) still holds.
//
// Calls are stateless and synchronous. There is no cancellation: each
// call runs its O(n) summation to completion.
package quadrature
