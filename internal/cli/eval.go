package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/quadra/internal/quadrature"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Integrand string
	Params    []string
}

// EvalResult is the JSON payload of the eval command.
type EvalResult struct {
	Integrand string  `json:"integrand"`
	X         float64 `json:"x"`
	Value     float64 `json:"value"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <x>",
		Short: "Evaluate an integrand at a point",
		Long: `Evaluate an integrand at x. Points outside the integrand's domain are
rejected rather than producing NaN.

Examples:
  quadra eval 1
  quadra eval --integrand linear --param slope=2 3`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Integrand, "integrand", "reference", "integrand name or family")
	cmd.Flags().StringArrayVar(&opts.Params, "param", nil, "family parameter key=value (repeatable)")

	return cmd
}

func runEval(opts *EvalOptions, arg string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	x, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return inputError(formatter, fmt.Sprintf("x must be a number, got %q", arg))
	}

	reg, err := registryFor(formatter, opts.RootOptions, logger)
	if err != nil {
		return err
	}
	fn, _, err := resolveIntegrand(formatter, reg, opts.Integrand, opts.Params)
	if err != nil {
		return err
	}

	v, err := quadrature.New(fn, quadrature.WithLogger(logger)).Function(x)
	if err != nil {
		return reportError(formatter, "evaluation failed", err)
	}

	if opts.Format == "json" {
		return formatter.Success(EvalResult{Integrand: opts.Integrand, X: x, Value: v})
	}
	newPrinter(opts.RootOptions).Fprintf(cmd.OutOrStdout(), "f(%v) = %.6f\n", x, v)
	return nil
}
