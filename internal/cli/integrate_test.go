package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrate_TextReference(t *testing.T) {
	out, _, err := execute(t, "integrate", "-n", "100")
	require.NoError(t, err)

	assert.Contains(t, out, "Integrand:   reference (2x - ln(7x) -12)")
	assert.Contains(t, out, "n = 100")
	assert.Contains(t, out, "Trapezoidal: -40.54\n")
	assert.Contains(t, out, "Midpoint:    -40.54\n")
	assert.Contains(t, out, "Difference:  9.10909E-04\n")
	assert.Contains(t, out, "Elapsed:")
}

func TestIntegrate_TextSinglePartition(t *testing.T) {
	out, _, err := execute(t, "integrate", "--partitions", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Trapezoidal: -36.87\n")
	assert.Contains(t, out, "Midpoint:    -41.86\n")
	assert.Contains(t, out, "Difference:  4.98110E+00\n")
}

func TestIntegrate_LocalizedNumbers(t *testing.T) {
	out, _, err := execute(t, "integrate", "-n", "100", "--lang", "de")
	require.NoError(t, err)

	assert.Contains(t, out, "Trapezoidal: -40,54\n")
}

func TestIntegrate_JSONConstant(t *testing.T) {
	out, _, err := execute(t, "integrate",
		"--integrand", "constant", "--param", "value=5",
		"--lower", "1", "--upper", "4", "-n", "100",
		"--format", "json")
	require.NoError(t, err)

	var result IntegrateResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assertRunID(t, resp.RunID)

	assert.Equal(t, "constant", result.Integrand)
	assert.Equal(t, map[string]float64{"value": 5}, result.Params)
	assert.Equal(t, 100, result.N)
	assert.InDelta(t, 15.0, result.Trapezoidal, 1e-10)
	assert.InDelta(t, 15.0, result.Midpoint, 1e-10)
	assert.InDelta(t, 0.0, result.Difference, 1e-10)
	assert.GreaterOrEqual(t, result.ElapsedMS, 0.0)
}

func TestIntegrate_RunIDsDiffer(t *testing.T) {
	first, _, err := execute(t, "integrate", "-n", "10", "--format", "json")
	require.NoError(t, err)
	second, _, err := execute(t, "integrate", "-n", "10", "--format", "json")
	require.NoError(t, err)

	a := decodeResponse(t, first, nil)
	b := decodeResponse(t, second, nil)
	assertRunID(t, a.RunID)
	assertRunID(t, b.RunID)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestIntegrate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		code     string
		exitCode int
	}{
		{"reversed interval", []string{"--lower", "10", "--upper", "1", "-n", "10"}, "INVALID_INTERVAL", ExitCommandError},
		{"empty interval", []string{"--lower", "5", "--upper", "5", "-n", "10"}, "INVALID_INTERVAL", ExitCommandError},
		{"zero partitions", []string{"-n", "0"}, "INVALID_PARTITION_COUNT", ExitCommandError},
		{"negative partitions", []string{"--partitions=-3"}, "INVALID_PARTITION_COUNT", ExitCommandError},
		{"lower outside domain", []string{"--lower", "0", "-n", "10"}, "INVALID_LOWER_BOUND", ExitCommandError},
		{"unknown integrand", []string{"--integrand", "ghost", "-n", "10"}, ErrCodeUnknownIntegrand, ExitCommandError},
		{"params on named integrand", []string{"--param", "value=1", "-n", "10"}, ErrCodeInvalidInput, ExitCommandError},
		{"malformed param", []string{"--integrand", "constant", "--param", "value", "-n", "10"}, ErrCodeInvalidInput, ExitCommandError},
		{"unknown family param", []string{"--integrand", "linear", "--param", "scale=2", "-n", "10"}, ErrCodeInvalidInput, ExitCommandError},
		{"missing catalog", []string{"--catalog", "/nonexistent/catalog", "-n", "10"}, ErrCodeCatalog, ExitCommandError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"integrate", "--format", "json"}, tt.args...)
			out, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, GetExitCode(err))

			resp := decodeResponse(t, out, nil)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestIntegrate_TextError(t *testing.T) {
	out, _, err := execute(t, "integrate", "--lower", "10", "--upper", "1", "-n", "10")
	require.Error(t, err)
	assert.Contains(t, out, "Error [INVALID_INTERVAL]")
	assert.Contains(t, out, "lower bound must be less than upper bound")
}

func TestIntegrate_PartitionsRequired(t *testing.T) {
	_, _, err := execute(t, "integrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "partitions" not set`)
}

func TestIntegrate_CatalogIntegrand(t *testing.T) {
	out, _, err := execute(t, "integrate",
		"--catalog", catalogDir,
		"--integrand", "quadratic",
		"--lower", "0", "--upper", "1", "-n", "1000",
		"--format", "json")
	require.NoError(t, err)

	var result IntegrateResult
	decodeResponse(t, out, &result)
	assert.InDelta(t, 1.0, result.Trapezoidal, 1e-5)
	assert.InDelta(t, 1.0, result.Midpoint, 1e-5)
}

func TestIntegrate_VerboseLogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, "integrate", "-n", "10", "--verbose", "--format", "json")
	require.NoError(t, err)

	decodeResponse(t, out, nil)
	assert.Contains(t, errOut, "integrating")
	assert.Contains(t, errOut, "quadrature complete")
}

func TestEval(t *testing.T) {
	out, _, err := execute(t, "eval", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "= -11.945910")

	out, _, err = execute(t, "eval", "--integrand", "linear", "--param", "slope=3", "2", "--format", "json")
	require.NoError(t, err)
	var result EvalResult
	decodeResponse(t, out, &result)
	assert.Equal(t, EvalResult{Integrand: "linear", X: 2, Value: 6}, result)
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		code     string
		exitCode int
	}{
		{"outside domain", []string{"eval", "--", "-1"}, ErrCodeInvalidArgument, ExitCommandError},
		{"at domain boundary", []string{"eval", "0"}, ErrCodeInvalidArgument, ExitCommandError},
		{"not a number", []string{"eval", "abc"}, ErrCodeInvalidInput, ExitCommandError},
		{"overflowing value", []string{"eval", "--integrand", "linear", "--param", "slope=10", "1e308"}, "NON_FINITE_RESULT", ExitFailure},
		{"colliding params", []string{"eval", "--integrand", "constant", "--param", "value=1", "--param", "VALUE=2", "1"}, ErrCodeInvalidInput, ExitCommandError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, append([]string{"--format", "json"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, GetExitCode(err))
			resp := decodeResponse(t, out, nil)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestConverge_JSON(t *testing.T) {
	out, _, err := execute(t, "converge", "--format", "json")
	require.NoError(t, err)

	var result struct {
		Integrand string `json:"integrand"`
		Levels    []struct {
			N          int     `json:"n"`
			Difference float64 `json:"difference"`
		} `json:"levels"`
		Order     *float64 `json:"order"`
		Shrinking bool     `json:"shrinking"`
	}
	decodeResponse(t, out, &result)

	require.Len(t, result.Levels, 4)
	for i, want := range []int{10, 20, 40, 80} {
		assert.Equal(t, want, result.Levels[i].N)
	}
	assert.True(t, result.Shrinking)
	require.NotNil(t, result.Order)
	assert.InDelta(t, 2.0, *result.Order, 0.05)
}

func TestConverge_Text(t *testing.T) {
	out, _, err := execute(t, "converge", "--start", "100", "--levels", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "trapezoidal")
	assert.Contains(t, out, "9.10909E-04")
	assert.Contains(t, out, "Observed order: ")

	out, _, err = execute(t, "converge", "--integrand", "constant", "--lower", "0", "--upper", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Observed order: n/a")
}

func TestConverge_Errors(t *testing.T) {
	_, _, err := execute(t, "converge", "--levels", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "converge", "--lower", "10", "--upper", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConverge_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"converge"})

	err := cmd.ExecuteContext(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
