package integrand

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomain_Contains(t *testing.T) {
	closed := Domain{Min: -1, Max: 1}
	halfOpen := Domain{Min: 0, Max: 2, MaxOpen: true}

	tests := []struct {
		name string
		d    Domain
		x    float64
		want bool
	}{
		{"unbounded zero", Unbounded(), 0, true},
		{"unbounded large", Unbounded(), -1e308, true},
		{"unbounded infinity", Unbounded(), math.Inf(1), false},
		{"positive excludes zero", Positive(), 0, false},
		{"positive tiny", Positive(), math.SmallestNonzeroFloat64, true},
		{"closed includes min", closed, -1, true},
		{"closed includes max", closed, 1, true},
		{"closed excludes beyond", closed, 1.0000001, false},
		{"half-open includes min", halfOpen, 0, true},
		{"half-open excludes max", halfOpen, 2, false},
		{"nan", Unbounded(), math.NaN(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.Contains(tt.x))
		})
	}
}

func TestDomain_String(t *testing.T) {
	assert.Equal(t, "(-Inf, +Inf)", Unbounded().String())
	assert.Equal(t, "(0, +Inf)", Positive().String())
	assert.Equal(t, "[0, 2)", Domain{Min: 0, Max: 2, MaxOpen: true}.String())
	assert.Equal(t, "[-1.5, 1]", Domain{Min: -1.5, Max: 1}.String())
}

func TestDomainError_Message(t *testing.T) {
	err := &DomainError{X: -2, Domain: Positive()}
	assert.Equal(t, "invalid argument: x=-2 is outside domain (0, +Inf)", err.Error())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
