package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/quadra/internal/quadrature"
)

// Scenario defines a conformance test scenario.
// A scenario is a list of integration cases, each with an expected value
// or expected error, plus optional convergence checks.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Cases are single integrations checked against Expect.
	Cases []Case `yaml:"cases"`

	// Convergence are multi-level studies checked against their expectations.
	Convergence []ConvergenceCheck `yaml:"convergence,omitempty"`
}

// Case is one integration of one integrand.
type Case struct {
	// Name labels the case in reports. Defaults to "case-<index>".
	Name string `yaml:"name,omitempty"`

	// Integrand is a registry name or family kind.
	Integrand string `yaml:"integrand"`

	// Params are family parameters (only for family kinds).
	Params map[string]float64 `yaml:"params,omitempty"`

	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	N int     `yaml:"n"`

	// Rules to run. Defaults to both.
	Rules []string `yaml:"rules,omitempty"`

	Expect Expect `yaml:"expect"`
}

// Expect describes the expected outcome of a case.
// Error excludes Value and Sign.
type Expect struct {
	// Value is the expected integral.
	Value *float64 `yaml:"value,omitempty"`

	// Tolerance is the allowed absolute deviation from Value.
	// Defaults to DefaultTolerance.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Sign is "negative" or "positive".
	Sign string `yaml:"sign,omitempty"`

	// Error is an error code, e.g. "INVALID_INTERVAL" or "INVALID_ARGUMENT".
	Error string `yaml:"error,omitempty"`
}

// ConvergenceCheck runs both rules at increasing partition counts.
type ConvergenceCheck struct {
	Name      string             `yaml:"name,omitempty"`
	Integrand string             `yaml:"integrand"`
	Params    map[string]float64 `yaml:"params,omitempty"`
	A         float64            `yaml:"a"`
	B         float64            `yaml:"b"`
	N         []int              `yaml:"n"`

	// Shrinking requires the rule difference to decrease at every level.
	Shrinking bool `yaml:"shrinking,omitempty"`

	// Order, if set, is the expected observed order within OrderTolerance.
	Order          *float64 `yaml:"order,omitempty"`
	OrderTolerance float64  `yaml:"order_tolerance,omitempty"`
}

// DefaultTolerance applies when a case sets a value without a tolerance.
const DefaultTolerance = 1e-9

// Expected sign values.
const (
	SignNegative = "negative"
	SignPositive = "positive"
)

// Error codes that are not quadrature.ErrorCode values.
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeUnknown         = "ERROR"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Cases) == 0 && len(s.Convergence) == 0 {
		return fmt.Errorf("at least one case or convergence check is required")
	}

	for i := range s.Cases {
		if err := validateCase(i, &s.Cases[i]); err != nil {
			return err
		}
	}
	for i, c := range s.Convergence {
		if c.Integrand == "" {
			return fmt.Errorf("convergence[%d]: integrand is required", i)
		}
		if len(c.N) < 2 {
			return fmt.Errorf("convergence[%d]: at least two partition counts are required", i)
		}
		if !c.Shrinking && c.Order == nil {
			return fmt.Errorf("convergence[%d]: shrinking or order is required", i)
		}
		if c.OrderTolerance < 0 {
			return fmt.Errorf("convergence[%d]: order_tolerance must be non-negative", i)
		}
	}
	return nil
}

func validateCase(i int, c *Case) error {
	if c.Integrand == "" {
		return fmt.Errorf("cases[%d]: integrand is required", i)
	}
	for _, r := range c.Rules {
		if _, err := quadrature.ParseRule(r); err != nil {
			return fmt.Errorf("cases[%d]: %w", i, err)
		}
	}

	e := c.Expect
	if e.Error == "" && e.Value == nil && e.Sign == "" {
		return fmt.Errorf("cases[%d]: expect needs value, sign or error", i)
	}
	if e.Error != "" && (e.Value != nil || e.Sign != "") {
		return fmt.Errorf("cases[%d]: expect.error excludes value and sign", i)
	}
	if e.Error != "" && !knownCode(e.Error) {
		return fmt.Errorf("cases[%d]: unknown error code %q", i, e.Error)
	}
	if e.Sign != "" && e.Sign != SignNegative && e.Sign != SignPositive {
		return fmt.Errorf("cases[%d]: sign must be %q or %q", i, SignNegative, SignPositive)
	}
	if e.Tolerance < 0 {
		return fmt.Errorf("cases[%d]: tolerance must be non-negative", i)
	}
	return nil
}

func knownCode(code string) bool {
	switch quadrature.ErrorCode(code) {
	case quadrature.CodeInvalidInterval,
		quadrature.CodeInvalidPartitionCount,
		quadrature.CodeInvalidLowerBound,
		quadrature.CodeInvalidUpperBound,
		quadrature.CodeNonFiniteResult:
		return true
	}
	return code == CodeInvalidArgument
}
