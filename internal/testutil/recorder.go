package testutil

import (
	"math"
	"sync"

	"github.com/roach88/quadra/internal/integrand"
)

// Recorder wraps an integrand and records every point it is evaluated at.
//
// Tests use it to check where, in what order and how often the quadrature
// rules sample, and that validation runs before any sample is taken.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Recorder struct {
	inner integrand.Integrand

	mu     sync.Mutex
	points []float64
}

// NewRecorder wraps f.
func NewRecorder(f integrand.Integrand) *Recorder {
	return &Recorder{inner: f}
}

// Evaluate records x and delegates to the wrapped integrand.
// Out-of-domain points are recorded too.
func (r *Recorder) Evaluate(x float64) (float64, error) {
	r.mu.Lock()
	r.points = append(r.points, x)
	r.mu.Unlock()
	return r.inner.Evaluate(x)
}

// Domain returns the wrapped integrand's domain.
func (r *Recorder) Domain() integrand.Domain {
	return r.inner.Domain()
}

// Points returns a copy of the recorded points in call order.
func (r *Recorder) Points() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.points))
	copy(out, r.points)
	return out
}

// Calls returns the number of recorded evaluations.
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.points)
}

// Reset clears the recorded points.
//
// Used for test reuse. After Reset(), Calls() returns 0.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.points = nil
}

// Faulty is an integrand that misbehaves at chosen points. It is defined on
// the whole real line, so validation always accepts it.
type Faulty struct {
	// Value is returned at every other point.
	Value float64

	// FailAt makes Evaluate return ErrInvalidArgument at exactly this x.
	FailAt *float64

	// NaNAt makes Evaluate return NaN, without error, at exactly this x.
	NaNAt *float64
}

func (f Faulty) Evaluate(x float64) (float64, error) {
	if f.FailAt != nil && x == *f.FailAt {
		return 0, &integrand.DomainError{X: x, Domain: f.Domain()}
	}
	if f.NaNAt != nil && x == *f.NaNAt {
		return math.NaN(), nil
	}
	return f.Value, nil
}

func (f Faulty) Domain() integrand.Domain {
	return integrand.Unbounded()
}

// Float returns a pointer to v, for Faulty fields.
func Float(v float64) *float64 {
	return &v
}
