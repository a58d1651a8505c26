package convergence

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/quadra/internal/integrand"
	"github.com/roach88/quadra/internal/quadrature"
)

func TestDoubling(t *testing.T) {
	ns, err := Doubling(10, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 40, 80, 160}, ns)

	_, err = Doubling(0, 3)
	assert.Error(t, err)
	_, err = Doubling(1, 0)
	assert.Error(t, err)
	_, err = Doubling(math.MaxInt/2+1, 2)
	assert.ErrorContains(t, err, "overflows")

	ns, err = Doubling(math.MaxInt/2+1, 1)
	require.NoError(t, err)
	assert.Len(t, ns, 1)
}

func TestRun_QuadraticHasOrderTwo(t *testing.T) {
	e := quadrature.New(integrand.Polynomial{Coefficients: []float64{0, 0, 3}})

	s, err := Run(context.Background(), e, 0, 1, []int{1, 2, 4})
	require.NoError(t, err)
	require.Len(t, s.Levels, 3)

	assert.InDelta(t, 1.5, s.Levels[0].Trapezoidal, 1e-12)
	assert.InDelta(t, 0.75, s.Levels[0].Midpoint, 1e-12)
	assert.InDelta(t, 0.75, s.Levels[0].Difference, 1e-12)
	assert.InDelta(t, 0.25, s.Levels[2].H, 1e-15)

	require.NotNil(t, s.Order)
	assert.InDelta(t, 2.0, *s.Order, 1e-9)
	assert.True(t, s.Shrinking())
}

func TestRun_ReferenceConverges(t *testing.T) {
	e := quadrature.New(integrand.Reference())
	ns, err := Doubling(10, 5)
	require.NoError(t, err)

	s, err := Run(context.Background(), e, 1, 10, ns)
	require.NoError(t, err)

	assert.True(t, s.Shrinking())
	require.NotNil(t, s.Order)
	assert.InDelta(t, 2.0, *s.Order, 0.05)
	for _, l := range s.Levels {
		assert.Less(t, l.Trapezoidal, 0.0)
		assert.Less(t, l.Midpoint, 0.0)
	}
}

func TestRun_SortsAndDeduplicates(t *testing.T) {
	e := quadrature.New(integrand.Reference())
	s, err := Run(context.Background(), e, 1, 10, []int{100, 10, 100, 50})
	require.NoError(t, err)

	got := make([]int, len(s.Levels))
	for i, l := range s.Levels {
		got[i] = l.N
	}
	assert.Equal(t, []int{10, 50, 100}, got)
}

func TestRun_NoOrderWhenRulesAgree(t *testing.T) {
	e := quadrature.New(integrand.Constant{Value: 2})
	s, err := Run(context.Background(), e, 0, 1, []int{1, 2})
	require.NoError(t, err)
	assert.Nil(t, s.Order)
	assert.False(t, s.Shrinking())
}

func TestRun_Errors(t *testing.T) {
	e := quadrature.New(integrand.Reference())

	_, err := Run(context.Background(), e, 1, 10, nil)
	assert.Error(t, err)

	_, err = Run(context.Background(), e, 10, 1, []int{10})
	assert.ErrorIs(t, err, quadrature.ErrInvalidInterval)
	assert.ErrorContains(t, err, "level n=10")

	_, err = Run(context.Background(), e, 1, 10, []int{0, 10})
	assert.ErrorIs(t, err, quadrature.ErrInvalidPartitionCount)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, quadrature.New(integrand.Reference()), 1, 10, []int{10})
	assert.ErrorIs(t, err, context.Canceled)
}
