package quadrature

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/quadra/internal/integrand"
)

// Rule selects a composite quadrature rule.
type Rule int

const (
	RuleTrapezoidal Rule = iota
	RuleMidpoint
)

// Rules lists every rule in display order.
var Rules = []Rule{RuleTrapezoidal, RuleMidpoint}

func (r Rule) String() string {
	switch r {
	case RuleTrapezoidal:
		return "trapezoidal"
	case RuleMidpoint:
		return "midpoint"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// ParseRule accepts "trapezoidal"/"trapezoid" and "midpoint"/"rectangle",
// case-insensitively.
func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trapezoidal", "trapezoid":
		return RuleTrapezoidal, nil
	case "midpoint", "rectangle":
		return RuleMidpoint, nil
	default:
		return 0, fmt.Errorf("unknown rule %q: must be trapezoidal or midpoint", s)
	}
}

// Trapezoidal integrates f over [a, b] with the composite trapezoidal rule
// on n equal subintervals. f is sampled at the n+1 points a + i·h in
// ascending order, endpoints weighted by one half.
func Trapezoidal(f integrand.Integrand, a, b float64, n int) (float64, error) {
	if err := Validate(f, a, b, n); err != nil {
		return 0, err
	}

	h := (b - a) / float64(n)
	fa, err := f.Evaluate(a)
	if err != nil {
		return 0, fmt.Errorf("trapezoidal: sample at x=%g: %w", a, err)
	}
	fb, err := f.Evaluate(b)
	if err != nil {
		return 0, fmt.Errorf("trapezoidal: sample at x=%g: %w", b, err)
	}

	sum := 0.5 * (fa + fb)
	for i := 1; i < n; i++ {
		x := a + float64(i)*h
		y, err := f.Evaluate(x)
		if err != nil {
			return 0, fmt.Errorf("trapezoidal: sample %d at x=%g: %w", i, x, err)
		}
		sum += y
	}

	return finite(sum*h, a, b, n)
}

// Midpoint integrates f over [a, b] with the composite midpoint rule on n
// equal subintervals. f is sampled once per subinterval at a + (i+½)·h,
// in ascending order; endpoints are never sampled.
func Midpoint(f integrand.Integrand, a, b float64, n int) (float64, error) {
	if err := Validate(f, a, b, n); err != nil {
		return 0, err
	}

	h := (b - a) / float64(n)
	var sum float64
	for i := 0; i < n; i++ {
		x := a + (float64(i)+0.5)*h
		y, err := f.Evaluate(x)
		if err != nil {
			return 0, fmt.Errorf("midpoint: sample %d at x=%g: %w", i, x, err)
		}
		sum += y
	}

	return finite(sum*h, a, b, n)
}

// Integrate dispatches to the composite rule r.
func Integrate(r Rule, f integrand.Integrand, a, b float64, n int) (float64, error) {
	switch r {
	case RuleTrapezoidal:
		return Trapezoidal(f, a, b, n)
	case RuleMidpoint:
		return Midpoint(f, a, b, n)
	default:
		return 0, fmt.Errorf("unknown rule %v", r)
	}
}

func finite(v, a, b float64, n int) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, newError(CodeNonFiniteResult, a, b, n, "integral evaluated to %g", v)
	}
	return v, nil
}
