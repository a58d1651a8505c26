package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/quadra/internal/integrand"
)

// ValidationError is one catalog problem.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool              `json:"valid"`
	Integrands []ListEntry       `json:"integrands,omitempty"`
	Errors     []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog-dir>",
		Short: "Validate a CUE integrand catalog",
		Long: `Validate the CUE integrand declarations in a directory.

Every .cue file is compiled and unified. Each integrand must name a
known kind with numeric parameters, and names must not clash with the
built-in integrands or family kinds.

Example:
  quadra validate ./catalog`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, catalogDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	info, err := os.Stat(catalogDir)
	if err != nil || !info.IsDir() {
		msg := fmt.Sprintf("catalog directory not found: %s", catalogDir)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	files, err := integrand.FindCUEFiles(catalogDir)
	if err != nil {
		_ = formatter.Error(ErrCodeScanError, err.Error(), nil)
		return WrapExitError(ExitCommandError, "error scanning directory", err)
	}
	if len(files) == 0 {
		msg := fmt.Sprintf("no CUE files found in %s", catalogDir)
		_ = formatter.Error(ErrCodeNoFiles, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}
	formatter.VerboseLog("Found %d CUE file(s) in %s", len(files), catalogDir)

	entries, err := integrand.LoadCatalog(catalogDir)
	if err == nil {
		err = integrand.RegisterCatalog(integrand.DefaultRegistry(), entries)
	}
	if err != nil {
		return outputValidationErrors(formatter, []ValidationError{toValidationError(err)})
	}

	result := ValidationResult{Valid: true}
	for _, e := range entries {
		formatter.VerboseLog("Validated integrand: %s (%s)", e.Name, e.Kind)
		result.Integrands = append(result.Integrands, ListEntry{
			Name:        e.Name,
			Domain:      e.Integrand.Domain().String(),
			Description: e.Description,
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Catalog valid (%d integrand(s))\n", len(entries))
	return nil
}

// toValidationError keeps the CUE position of catalog errors.
func toValidationError(err error) ValidationError {
	var catErr *integrand.CatalogError
	if errors.As(err, &catErr) {
		v := ValidationError{Field: catErr.Field, Message: catErr.Message}
		if catErr.Pos.IsValid() {
			v.File = catErr.Pos.Filename()
			v.Line = catErr.Pos.Line()
			v.Column = catErr.Pos.Column()
		}
		return v
	}
	return ValidationError{Message: err.Error()}
}

// outputValidationErrors outputs validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []ValidationError) error {
	msg := fmt.Sprintf("validation failed with %d error(s)", len(errs))

	if formatter.Format == "json" {
		if err := formatter.Failure(ErrCodeCatalog, errs[0].Message, ValidationResult{Valid: false, Errors: errs}); err != nil {
			return err
		}
		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, msg)
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n", err.File, err.Line, err.Column)
		}
		if err.Field != "" {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Field, err.Message)
		} else {
			fmt.Fprintf(formatter.Writer, "  %s\n\n", err.Message)
		}
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, msg)
}
