package quadrature

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/quadra/internal/integrand"
	"github.com/roach88/quadra/internal/testutil"
)

func TestRules_ConstantIsExact(t *testing.T) {
	f := integrand.Constant{Value: 5}
	for _, r := range Rules {
		t.Run(r.String(), func(t *testing.T) {
			got, err := Integrate(r, f, 1, 4, 100)
			require.NoError(t, err)
			assert.InDelta(t, 15.0, got, 1e-10)
		})
	}
}

func TestRules_ConstantAnyPartition(t *testing.T) {
	f := integrand.Constant{Value: -2.5}
	for _, n := range []int{1, 2, 7, 64, 1000} {
		for _, r := range Rules {
			got, err := Integrate(r, f, -3, 5, n)
			require.NoError(t, err)
			assert.InDelta(t, -20.0, got, 1e-10, "%s n=%d", r, n)
		}
	}
}

func TestRules_LinearConverges(t *testing.T) {
	f := integrand.Linear{Slope: 2}
	for _, r := range Rules {
		got, err := Integrate(r, f, 0, 2, 1000)
		require.NoError(t, err)
		assert.InDelta(t, 4.0, got, 0.001, r.String())
	}
}

func TestTrapezoidal_ExactForLinear(t *testing.T) {
	got, err := Trapezoidal(integrand.Linear{Slope: 2, Intercept: 1}, 0, 2, 3)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, got, 1e-12)
}

func TestRules_SmallQuadratic(t *testing.T) {
	// 3x^2 over [0, 1] with n=4: trapezoid overestimates, midpoint underestimates.
	f := integrand.Polynomial{Coefficients: []float64{0, 0, 3}}

	trap, err := Trapezoidal(f, 0, 1, 4)
	require.NoError(t, err)
	assert.InDelta(t, 1.03125, trap, 1e-12)

	mid, err := Midpoint(f, 0, 1, 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.984375, mid, 1e-12)
}

func TestTrapezoidal_SamplePoints(t *testing.T) {
	rec := testutil.NewRecorder(integrand.Linear{Slope: 1})

	_, err := Trapezoidal(rec, 0, 1, 4)
	require.NoError(t, err)

	want := []float64{0, 1, 0.25, 0.5, 0.75}
	if diff := cmp.Diff(want, rec.Points(), cmpopts.EquateApprox(0, 1e-15)); diff != "" {
		t.Errorf("sample points mismatch (-want +got):\n%s", diff)
	}
}

func TestMidpoint_SamplePoints(t *testing.T) {
	rec := testutil.NewRecorder(integrand.Linear{Slope: 1})

	_, err := Midpoint(rec, 0, 1, 4)
	require.NoError(t, err)

	want := []float64{0.125, 0.375, 0.625, 0.875}
	if diff := cmp.Diff(want, rec.Points(), cmpopts.EquateApprox(0, 1e-15)); diff != "" {
		t.Errorf("sample points mismatch (-want +got):\n%s", diff)
	}
}

func TestRules_SampleCountAndRange(t *testing.T) {
	tests := []struct {
		rule  Rule
		n     int
		calls int
	}{
		{RuleTrapezoidal, 1, 2},
		{RuleTrapezoidal, 250, 251},
		{RuleMidpoint, 1, 1},
		{RuleMidpoint, 250, 250},
	}
	for _, tt := range tests {
		rec := testutil.NewRecorder(integrand.Reference())
		_, err := Integrate(tt.rule, rec, 1.5, 9.25, tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.calls, rec.Calls(), "%s n=%d", tt.rule, tt.n)
		for _, x := range rec.Points() {
			assert.True(t, x >= 1.5 && x <= 9.25, "%s sampled x=%g outside [a, b]", tt.rule, x)
		}
	}
}

func TestRules_RejectBeforeSampling(t *testing.T) {
	bad := []struct {
		name string
		a, b float64
		n    int
		want error
	}{
		{"reversed", 10, 1, 10, ErrInvalidInterval},
		{"equal", 3, 3, 100, ErrInvalidInterval},
		{"width overflows", -math.MaxFloat64, math.MaxFloat64, 2, ErrInvalidInterval},
		{"zero n", 1, 10, 0, ErrInvalidPartitionCount},
		{"negative n", 1, 10, -1, ErrInvalidPartitionCount},
		{"negative a", -1, 10, 10, ErrInvalidLowerBound},
	}
	for _, tt := range bad {
		for _, r := range Rules {
			t.Run(tt.name+"/"+r.String(), func(t *testing.T) {
				rec := testutil.NewRecorder(integrand.Reference())
				got, err := Integrate(r, rec, tt.a, tt.b, tt.n)
				assert.ErrorIs(t, err, tt.want)
				assert.Equal(t, 0.0, got)
				assert.Equal(t, 0, rec.Calls(), "integrand sampled before rejection")
			})
		}
	}
}

func TestRules_PropagateIntegrandFailure(t *testing.T) {
	f := testutil.Faulty{Value: 1, FailAt: testutil.Float(0.5)}

	_, err := Trapezoidal(f, 0, 1, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, integrand.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "trapezoidal: sample 1 at x=0.5")

	_, err = Midpoint(f, 0.25, 0.75, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, integrand.ErrInvalidArgument)
	assert.Equal(t, ErrorCode(""), CodeOf(err))
}

func TestRules_RejectNonFiniteSum(t *testing.T) {
	nan := testutil.Faulty{Value: 1, NaNAt: testutil.Float(0.5)}
	_, err := Midpoint(nan, 0, 1, 1)
	assert.ErrorIs(t, err, ErrNonFiniteResult)

	huge := integrand.Constant{Value: math.MaxFloat64}
	_, err = Trapezoidal(huge, 0, 10, 10)
	assert.ErrorIs(t, err, ErrNonFiniteResult)
}

func TestReference_NegativeOnOneToTen(t *testing.T) {
	f := integrand.Reference()
	for _, r := range Rules {
		got, err := Integrate(r, f, 1, 10, 100)
		require.NoError(t, err)
		assert.Less(t, got, 0.0, r.String())
		assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
	}
}

func TestReference_AgainstClosedForm(t *testing.T) {
	// Antiderivative: x^2 - (x ln(7x) - x) - 12x.
	F := func(x float64) float64 { return x*x - (x*math.Log(7*x) - x) - 12*x }
	exact := F(10) - F(1)

	for _, r := range Rules {
		got, err := Integrate(r, integrand.Reference(), 1, 10, 10000)
		require.NoError(t, err)
		assert.InDelta(t, exact, got, 1e-6, r.String())
	}
}

func TestParseRule(t *testing.T) {
	for in, want := range map[string]Rule{
		"trapezoidal": RuleTrapezoidal,
		"Trapezoid":   RuleTrapezoidal,
		" midpoint ":  RuleMidpoint,
		"RECTANGLE":   RuleMidpoint,
	} {
		got, err := ParseRule(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRule("simpson")
	assert.ErrorContains(t, err, "unknown rule")

	assert.Equal(t, "Rule(9)", Rule(9).String())
	_, err = Integrate(Rule(9), integrand.Constant{}, 0, 1, 1)
	assert.Error(t, err)
}
