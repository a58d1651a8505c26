package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/quadra/internal/quadrature"
)

// IntegrateOptions holds flags for the integrate command.
type IntegrateOptions struct {
	*RootOptions
	Integrand  string
	Lower      float64
	Upper      float64
	Partitions int
	Params     []string
}

// IntegrateResult is the JSON payload of the integrate command.
type IntegrateResult struct {
	Integrand string             `json:"integrand"`
	Params    map[string]float64 `json:"params,omitempty"`
	A         float64            `json:"a"`
	B         float64            `json:"b"`
	N         int                `json:"n"`
	quadrature.Comparison
	ElapsedMS float64 `json:"elapsed_ms"`
}

// NewIntegrateCommand creates the integrate command.
func NewIntegrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IntegrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Integrate with both rules and compare",
		Long: `Integrate a function over [lower, upper] with the composite trapezoidal
and composite midpoint rules using n partitions, and report both results,
their absolute difference and the elapsed time.

Inputs are validated before any sampling: lower must be less than upper,
n must be positive and both bounds must lie in the integrand's domain.

Examples:
  quadra integrate -n 100
  quadra integrate --integrand constant --param value=5 --lower 1 --upper 4 -n 100
  quadra integrate --integrand polynomial --param c0=1 --param c2=3 --lower 0 --upper 1 -n 1000
  quadra integrate -n 10000 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntegrate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Integrand, "integrand", "reference", "integrand name or family")
	cmd.Flags().Float64Var(&opts.Lower, "lower", 1, "lower bound a")
	cmd.Flags().Float64Var(&opts.Upper, "upper", 10, "upper bound b")
	cmd.Flags().IntVarP(&opts.Partitions, "partitions", "n", 0, "number of partitions (required)")
	cmd.Flags().StringArrayVar(&opts.Params, "param", nil, "family parameter key=value (repeatable)")
	_ = cmd.MarkFlagRequired("partitions")

	return cmd
}

func runIntegrate(opts *IntegrateOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	reg, err := registryFor(formatter, opts.RootOptions, logger)
	if err != nil {
		return err
	}
	fn, params, err := resolveIntegrand(formatter, reg, opts.Integrand, opts.Params)
	if err != nil {
		return err
	}

	engine := quadrature.New(fn, quadrature.WithLogger(logger))
	logger.Debug("integrating",
		"integrand", opts.Integrand,
		"params", paramList(params),
		"a", opts.Lower,
		"b", opts.Upper,
		"n", opts.Partitions,
		"run_id", formatter.RunID)

	start := time.Now()
	res, err := engine.Compare(opts.Lower, opts.Upper, opts.Partitions)
	elapsed := time.Since(start)
	if err != nil {
		return reportError(formatter, "integration failed", err)
	}

	if opts.Format == "json" {
		return formatter.Success(IntegrateResult{
			Integrand:  opts.Integrand,
			Params:     params,
			A:          opts.Lower,
			B:          opts.Upper,
			N:          opts.Partitions,
			Comparison: res,
			ElapsedMS:  float64(elapsed.Microseconds()) / 1000,
		})
	}

	p := newPrinter(opts.RootOptions)
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Integrand:   %s\n", describe(opts.Integrand, fn))
	p.Fprintf(w, "Interval:    [%v, %v], n = %d\n", opts.Lower, opts.Upper, opts.Partitions)
	p.Fprintf(w, "Trapezoidal: %.2f\n", res.Trapezoidal)
	p.Fprintf(w, "Midpoint:    %.2f\n", res.Midpoint)
	fmt.Fprintf(w, "Difference:  %.5E\n", res.Difference)
	fmt.Fprintf(w, "Elapsed:     %s\n", elapsed.Round(time.Microsecond))
	return nil
}
