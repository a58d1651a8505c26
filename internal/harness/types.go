package harness

// Outcome is the result of running one rule of one case.
type Outcome struct {
	Case      string  `json:"case"`
	Integrand string  `json:"integrand"`
	Rule      string  `json:"rule"`
	Value     float64 `json:"value,omitempty"`
	Error     string  `json:"error,omitempty"` // error code
	Pass      bool    `json:"pass"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every case and convergence check met its expectation.
	Pass bool `json:"pass"`

	// Outcomes lists every (case, rule) run in scenario order.
	Outcomes []Outcome `json:"outcomes"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Outcomes: []Outcome{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddOutcome records an outcome; a failing outcome fails the result.
func (r *Result) AddOutcome(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	if !o.Pass {
		r.Pass = false
	}
}
