package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Catalog string // optional directory of CUE integrand declarations
	Lang    string // BCP 47 tag for number formatting in text output
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the quadra CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "quadra",
		Short: "quadra - composite quadrature",
		Long: `Numerical integration of one-dimensional functions with the composite
trapezoidal and composite midpoint rules.

Integrands are resolved by name: the built-in reference integrand, the
families constant, linear, polynomial and loglinear, and any integrand
declared in a CUE catalog (--catalog).`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if _, err := language.Parse(opts.Lang); err != nil {
				return fmt.Errorf("invalid language %q: %w", opts.Lang, err)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Catalog, "catalog", "", "directory of CUE integrand declarations")
	cmd.PersistentFlags().StringVar(&opts.Lang, "lang", "en", "language for number formatting in text output")

	// Add subcommands
	cmd.AddCommand(NewIntegrateCommand(opts))
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewConvergeCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
