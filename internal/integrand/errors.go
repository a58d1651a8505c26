package integrand

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched by every out-of-domain evaluation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownIntegrand is returned by Registry.Lookup for unregistered names.
	ErrUnknownIntegrand = errors.New("unknown integrand")

	// ErrDuplicateIntegrand is returned when a name is registered twice.
	ErrDuplicateIntegrand = errors.New("duplicate integrand")
)

// DomainError reports an evaluation outside the integrand's domain.
type DomainError struct {
	X      float64
	Domain Domain
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("invalid argument: x=%g is outside domain %s", e.X, e.Domain)
}

// Is makes errors.Is(err, ErrInvalidArgument) hold for any DomainError.
func (e *DomainError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// checkDomain returns a DomainError if x is outside d.
func checkDomain(d Domain, x float64) error {
	if !d.Contains(x) {
		return &DomainError{X: x, Domain: d}
	}
	return nil
}
