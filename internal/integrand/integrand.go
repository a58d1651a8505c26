package integrand

import (
	"fmt"
	"math"
	"strings"
)

// Integrand is a pure real function of one variable.
//
// Evaluate must return an error matching ErrInvalidArgument for any x
// outside Domain(), and must not have side effects.
type Integrand interface {
	Evaluate(x float64) (float64, error)
	Domain() Domain
}

// Reference returns the reference integrand f(x) = 2x - (ln 7 + ln x) - 12.
func Reference() LogLinear {
	return LogLinear{Slope: 2, Scale: 7, Offset: -12}
}

// Constant is f(x) = Value.
type Constant struct {
	Value float64
}

func (c Constant) Evaluate(x float64) (float64, error) {
	if err := checkDomain(c.Domain(), x); err != nil {
		return 0, err
	}
	return c.Value, nil
}

func (c Constant) Domain() Domain { return Unbounded() }

func (c Constant) String() string { return fmt.Sprintf("%g", c.Value) }

// Linear is f(x) = Slope*x + Intercept.
type Linear struct {
	Slope     float64
	Intercept float64
}

func (l Linear) Evaluate(x float64) (float64, error) {
	if err := checkDomain(l.Domain(), x); err != nil {
		return 0, err
	}
	return l.Slope*x + l.Intercept, nil
}

func (l Linear) Domain() Domain { return Unbounded() }

func (l Linear) String() string {
	if l.Intercept == 0 {
		return fmt.Sprintf("%gx", l.Slope)
	}
	return fmt.Sprintf("%gx %+g", l.Slope, l.Intercept)
}

// Polynomial is f(x) = Σ Coefficients[i]·x^i, lowest degree first.
// The zero value is the zero polynomial. Coefficients must not be modified
// once the value is in use; NewPolynomial takes a private copy.
type Polynomial struct {
	Coefficients []float64
}

// NewPolynomial returns the polynomial with a copy of coeffs.
func NewPolynomial(coeffs ...float64) Polynomial {
	return Polynomial{Coefficients: append([]float64{}, coeffs...)}
}

// Evaluate uses Horner's scheme.
func (p Polynomial) Evaluate(x float64) (float64, error) {
	if err := checkDomain(p.Domain(), x); err != nil {
		return 0, err
	}
	var y float64
	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		y = y*x + p.Coefficients[i]
	}
	return y, nil
}

func (p Polynomial) Domain() Domain { return Unbounded() }

func (p Polynomial) String() string {
	var terms []string
	for i, c := range p.Coefficients {
		if c == 0 {
			continue
		}
		switch i {
		case 0:
			terms = append(terms, fmt.Sprintf("%g", c))
		case 1:
			terms = append(terms, fmt.Sprintf("%gx", c))
		default:
			terms = append(terms, fmt.Sprintf("%gx^%d", c, i))
		}
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

// LogLinear is f(x) = Slope*x - (ln Scale + ln x) + Offset, defined for x > 0.
//
// The logarithm is split as ln Scale + ln x rather than ln(Scale*x) so the
// reference integrand matches its closed form to the last bit.
type LogLinear struct {
	Slope  float64
	Scale  float64
	Offset float64
}

func (l LogLinear) Evaluate(x float64) (float64, error) {
	if err := checkDomain(l.Domain(), x); err != nil {
		return 0, err
	}
	return l.Slope*x - (math.Log(l.Scale) + math.Log(x)) + l.Offset, nil
}

func (l LogLinear) Domain() Domain { return Positive() }

func (l LogLinear) String() string {
	return fmt.Sprintf("%gx - ln(%gx) %+g", l.Slope, l.Scale, l.Offset)
}

// FuncIntegrand adapts a plain function. The domain is enforced before f
// is called, so f may assume its argument is valid.
type FuncIntegrand struct {
	f      func(float64) float64
	domain Domain
	label  string
}

// Func wraps f as an Integrand defined on domain.
func Func(label string, domain Domain, f func(float64) float64) FuncIntegrand {
	return FuncIntegrand{f: f, domain: domain, label: label}
}

func (fi FuncIntegrand) Evaluate(x float64) (float64, error) {
	if err := checkDomain(fi.domain, x); err != nil {
		return 0, err
	}
	return fi.f(x), nil
}

func (fi FuncIntegrand) Domain() Domain { return fi.domain }

func (fi FuncIntegrand) String() string { return fi.label }
