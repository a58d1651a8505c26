package quadrature

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/roach88/quadra/internal/integrand"
)

// Engine binds the quadrature rules to one integrand.
//
// Engine holds no mutable state; a single Engine may be used by any number
// of goroutines without locking.
type Engine struct {
	f      integrand.Integrand
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output. Nil keeps the default,
// which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine for f.
func New(f integrand.Integrand, opts ...Option) *Engine {
	e := &Engine{
		f:      f,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Integrand returns the integrand the engine was built with.
func (e *Engine) Integrand() integrand.Integrand {
	return e.f
}

// Function evaluates the integrand at x. A NaN or infinite value is
// reported as NON_FINITE_RESULT.
func (e *Engine) Function(x float64) (float64, error) {
	y, err := e.f.Evaluate(x)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, &Error{Code: CodeNonFiniteResult, Message: fmt.Sprintf("f(%g) evaluated to %g", x, y), A: x, B: x}
	}
	return y, nil
}

// CalculateTrapezoidal integrates over [a, b] with the trapezoidal rule.
func (e *Engine) CalculateTrapezoidal(a, b float64, n int) (float64, error) {
	return e.Calculate(RuleTrapezoidal, a, b, n)
}

// CalculateMidpoint integrates over [a, b] with the midpoint rule.
func (e *Engine) CalculateMidpoint(a, b float64, n int) (float64, error) {
	return e.Calculate(RuleMidpoint, a, b, n)
}

// Calculate integrates over [a, b] with rule r.
func (e *Engine) Calculate(r Rule, a, b float64, n int) (float64, error) {
	v, err := Integrate(r, e.f, a, b, n)
	if err != nil {
		e.logger.Debug("quadrature failed",
			"rule", r.String(), "a", a, "b", b, "n", n, "error", err)
		return 0, err
	}
	e.logger.Debug("quadrature complete",
		"rule", r.String(), "a", a, "b", b, "n", n, "result", v)
	return v, nil
}

// Comparison holds both rule results for one (a, b, n).
type Comparison struct {
	Trapezoidal float64 `json:"trapezoidal"`
	Midpoint    float64 `json:"midpoint"`
	Difference  float64 `json:"difference"` // |Trapezoidal - Midpoint|
}

// Compare runs the trapezoidal rule and then the midpoint rule.
func (e *Engine) Compare(a, b float64, n int) (Comparison, error) {
	trap, err := e.CalculateTrapezoidal(a, b, n)
	if err != nil {
		return Comparison{}, err
	}
	mid, err := e.CalculateMidpoint(a, b, n)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{
		Trapezoidal: trap,
		Midpoint:    mid,
		Difference:  math.Abs(trap - mid),
	}, nil
}
