// Package integrand defines the functions that the quadrature engine integrates.
//
// An Integrand is a pure real function of one variable together with the
// domain on which it is defined. The domain is a property of the function,
// not of the engine: the engine consults Domain() to reject intervals the
// function cannot be sampled on, and Evaluate refuses out-of-domain points
// with ErrInvalidArgument instead of returning NaN.
//
// Built-in integrands cover the constant, linear, polynomial and
// log-linear families. The reference integrand
//
//	f(x) = 2x - (ln 7 + ln x) - 12,   x > 0
//
// is a log-linear instance. Additional integrands can be declared in CUE
// catalog files and loaded with LoadCatalog.
//
// Integrands in this package are values safe for concurrent use. Polynomial
// shares its Coefficients slice with whoever built it, so that slice must
// not change after construction; New and NewPolynomial never share one.
package integrand
