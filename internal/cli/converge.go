package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/quadra/internal/convergence"
	"github.com/roach88/quadra/internal/quadrature"
)

// ConvergeOptions holds flags for the converge command.
type ConvergeOptions struct {
	*RootOptions
	Integrand string
	Params    []string
	Lower     float64
	Upper     float64
	Start     int
	Levels    int
}

// ConvergeResult is the JSON payload of the converge command.
type ConvergeResult struct {
	Integrand string `json:"integrand"`
	*convergence.Study
	Shrinking bool `json:"shrinking"`
}

// NewConvergeCommand creates the converge command.
func NewConvergeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvergeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "converge",
		Short: "Observe how both rules converge as n doubles",
		Long: `Run both rules at n = start, 2·start, 4·start, ... and report the
difference between them at each level, together with the observed order
of convergence (the slope of log difference over log h).

The study is interrupted between levels by Ctrl-C; a level that has
started always completes.

Examples:
  quadra converge
  quadra converge --start 100 --levels 6
  quadra converge --integrand polynomial --param c2=3 --lower 0 --upper 1`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConverge(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Integrand, "integrand", "reference", "integrand name or family")
	cmd.Flags().StringArrayVar(&opts.Params, "param", nil, "family parameter key=value (repeatable)")
	cmd.Flags().Float64Var(&opts.Lower, "lower", 1, "lower bound a")
	cmd.Flags().Float64Var(&opts.Upper, "upper", 10, "upper bound b")
	cmd.Flags().IntVar(&opts.Start, "start", 10, "partition count of the first level")
	cmd.Flags().IntVar(&opts.Levels, "levels", 4, "number of levels")

	return cmd
}

func runConverge(opts *ConvergeOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	ns, err := convergence.Doubling(opts.Start, opts.Levels)
	if err != nil {
		return inputError(formatter, err.Error())
	}

	reg, err := registryFor(formatter, opts.RootOptions, logger)
	if err != nil {
		return err
	}
	fn, _, err := resolveIntegrand(formatter, reg, opts.Integrand, opts.Params)
	if err != nil {
		return err
	}

	// Setup signal handling for graceful interruption
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, stopping after current level", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.Debug("convergence study starting",
		"integrand", opts.Integrand,
		"a", opts.Lower,
		"b", opts.Upper,
		"levels", len(ns),
		"run_id", formatter.RunID)

	study, err := convergence.Run(ctx, quadrature.New(fn, quadrature.WithLogger(logger)), opts.Lower, opts.Upper, ns)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			_ = formatter.Error(ErrCodeGeneric, "convergence study interrupted", nil)
			return WrapExitError(ExitFailure, "convergence study interrupted", err)
		}
		return reportError(formatter, "convergence study failed", err)
	}

	if opts.Format == "json" {
		return formatter.Success(ConvergeResult{
			Integrand: opts.Integrand,
			Study:     study,
			Shrinking: study.Shrinking(),
		})
	}

	p := newPrinter(opts.RootOptions)
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Integrand: %s\n", describe(opts.Integrand, fn))
	p.Fprintf(w, "Interval:  [%v, %v]\n\n", study.A, study.B)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "n\th\ttrapezoidal\tmidpoint\tdifference\t")
	for _, l := range study.Levels {
		fmt.Fprintf(tw, "%d\t%.6g\t%.8f\t%.8f\t%.5E\t\n", l.N, l.H, l.Trapezoidal, l.Midpoint, l.Difference)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	if study.Order != nil {
		fmt.Fprintf(w, "Observed order: %.4f\n", *study.Order)
	} else {
		fmt.Fprintln(w, "Observed order: n/a (rules agree exactly)")
	}
	return nil
}
