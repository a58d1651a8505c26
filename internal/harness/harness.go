package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/roach88/quadra/internal/convergence"
	"github.com/roach88/quadra/internal/integrand"
	"github.com/roach88/quadra/internal/quadrature"
)

// Harness runs scenarios against integrands resolved from a registry.
type Harness struct {
	registry *integrand.Registry
	logger   *slog.Logger
}

// New creates a harness. A nil registry means integrand.DefaultRegistry();
// a nil logger discards output.
func New(registry *integrand.Registry, logger *slog.Logger) *Harness {
	if registry == nil {
		registry = integrand.DefaultRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{registry: registry, logger: logger}
}

// Run executes a scenario with the default registry.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil, nil).Run(context.Background(), scenario)
}

// Run executes every case and convergence check of the scenario.
//
// Expectation mismatches are recorded on the Result; the returned error is
// reserved for a nil scenario or a cancelled context.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, errors.New("scenario is nil")
	}
	h.logger.Debug("running scenario", "name", scenario.Name, "cases", len(scenario.Cases))

	result := NewResult()
	for i := range scenario.Cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h.runCase(i, &scenario.Cases[i], result)
	}
	for i := range scenario.Convergence {
		if err := h.runConvergence(ctx, i, &scenario.Convergence[i], result); err != nil {
			return nil, err
		}
	}

	h.logger.Debug("scenario finished", "name", scenario.Name, "pass", result.Pass)
	return result, nil
}

func (h *Harness) runCase(index int, c *Case, result *Result) {
	name := c.Name
	if name == "" {
		name = fmt.Sprintf("case-%d", index)
	}

	f, err := h.registry.Resolve(c.Integrand, c.Params)
	if err != nil {
		result.AddError(fmt.Sprintf("%s: %v", name, err))
		return
	}
	engine := quadrature.New(f, quadrature.WithLogger(h.logger))

	rules := quadrature.Rules
	if len(c.Rules) > 0 {
		rules = make([]quadrature.Rule, 0, len(c.Rules))
		for _, r := range c.Rules {
			// Rules were checked by validateScenario.
			rule, _ := quadrature.ParseRule(r)
			rules = append(rules, rule)
		}
	}

	for _, rule := range rules {
		v, err := engine.Calculate(rule, c.A, c.B, c.N)
		o := Outcome{Case: name, Integrand: c.Integrand, Rule: rule.String(), Value: v}
		if err != nil {
			o.Error = ErrorCode(err)
		}

		msg := check(c.Expect, v, err)
		o.Pass = msg == ""
		result.AddOutcome(o)
		if msg != "" {
			result.AddError(fmt.Sprintf("%s/%s: %s", name, rule, msg))
		}
	}
}

// check returns "" when the outcome meets e, otherwise the reason.
func check(e Expect, v float64, err error) string {
	if e.Error != "" {
		if err == nil {
			return fmt.Sprintf("expected error %s, got value %g", e.Error, v)
		}
		if got := ErrorCode(err); got != e.Error {
			return fmt.Sprintf("expected error %s, got %s (%v)", e.Error, got, err)
		}
		return ""
	}
	if err != nil {
		return fmt.Sprintf("unexpected error: %v", err)
	}
	if e.Value != nil {
		tol := e.Tolerance
		if tol == 0 {
			tol = DefaultTolerance
		}
		if math.Abs(v-*e.Value) > tol {
			return fmt.Sprintf("expected %g ± %g, got %g", *e.Value, tol, v)
		}
	}
	switch e.Sign {
	case SignNegative:
		if !(v < 0) {
			return fmt.Sprintf("expected negative value, got %g", v)
		}
	case SignPositive:
		if !(v > 0) {
			return fmt.Sprintf("expected positive value, got %g", v)
		}
	}
	return ""
}

func (h *Harness) runConvergence(ctx context.Context, index int, c *ConvergenceCheck, result *Result) error {
	name := c.Name
	if name == "" {
		name = fmt.Sprintf("convergence-%d", index)
	}

	f, err := h.registry.Resolve(c.Integrand, c.Params)
	if err != nil {
		result.AddError(fmt.Sprintf("%s: %v", name, err))
		return nil
	}

	study, err := convergence.Run(ctx, quadrature.New(f, quadrature.WithLogger(h.logger)), c.A, c.B, c.N)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		result.AddError(fmt.Sprintf("%s: %v", name, err))
		return nil
	}

	if c.Shrinking && !study.Shrinking() {
		result.AddError(fmt.Sprintf("%s: difference between rules does not shrink as n grows", name))
	}
	if c.Order != nil {
		tol := c.OrderTolerance
		if tol == 0 {
			tol = 0.1
		}
		switch {
		case study.Order == nil:
			result.AddError(fmt.Sprintf("%s: observed order unavailable", name))
		case math.Abs(*study.Order-*c.Order) > tol:
			result.AddError(fmt.Sprintf("%s: expected order %g ± %g, got %.4f", name, *c.Order, tol, *study.Order))
		}
	}
	return nil
}

// ErrorCode maps err to the code used in scenario files.
func ErrorCode(err error) string {
	if code := quadrature.CodeOf(err); code != "" {
		return string(code)
	}
	if errors.Is(err, integrand.ErrInvalidArgument) {
		return CodeInvalidArgument
	}
	return CodeUnknown
}
