package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/quadra/internal/integrand"
	"github.com/roach88/quadra/internal/quadrature"
)

// newFormatter builds the formatter for one command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
		RunID:     NewRunID(),
	}
}

// newLogger returns a text logger on w; --verbose lowers the level to Debug.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// newPrinter returns a number printer for the --lang tag.
func newPrinter(opts *RootOptions) *message.Printer {
	tag, err := language.Parse(opts.Lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// LoadRegistry returns the default registry extended with the integrands of
// the --catalog directory, if one is set.
func LoadRegistry(opts *RootOptions, logger *slog.Logger) (*integrand.Registry, error) {
	reg := integrand.DefaultRegistry()
	if opts.Catalog == "" {
		return reg, nil
	}

	entries, err := integrand.LoadCatalog(opts.Catalog)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", opts.Catalog, err)
	}
	if err := integrand.RegisterCatalog(reg, entries); err != nil {
		return nil, fmt.Errorf("registering catalog %s: %w", opts.Catalog, err)
	}
	logger.Debug("catalog loaded", "dir", opts.Catalog, "integrands", len(entries))
	return reg, nil
}

// registryFor loads the registry, reporting catalog failures as command
// errors.
func registryFor(f *OutputFormatter, opts *RootOptions, logger *slog.Logger) (*integrand.Registry, error) {
	reg, err := LoadRegistry(opts, logger)
	if err != nil {
		_ = f.Error(ErrCodeCatalog, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "failed to load catalog", err)
	}
	return reg, nil
}

// parseParams parses repeated k=v flags into family parameters.
func parseParams(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		key, raw, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("parameter %q must have the form key=value", p)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: value must be a number", p)
		}
		if _, dup := params[key]; dup {
			return nil, fmt.Errorf("parameter %q given twice", key)
		}
		params[key] = v
	}
	return params, nil
}

// paramList renders params deterministically for logs and text output.
func paramList(params map[string]float64) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, params[k])
	}
	return strings.Join(parts, ",")
}

// classify maps an error to its response code and exit code.
func classify(err error) (string, int) {
	switch {
	case quadrature.CodeOf(err) == quadrature.CodeNonFiniteResult:
		return string(quadrature.CodeNonFiniteResult), ExitFailure
	case quadrature.CodeOf(err) != "":
		return string(quadrature.CodeOf(err)), ExitCommandError
	case errors.Is(err, integrand.ErrUnknownIntegrand):
		return ErrCodeUnknownIntegrand, ExitCommandError
	case errors.Is(err, integrand.ErrInvalidArgument):
		return ErrCodeInvalidArgument, ExitCommandError
	}
	return ErrCodeGeneric, ExitFailure
}

// reportError writes err through the formatter and returns the matching
// ExitError.
func reportError(f *OutputFormatter, msg string, err error) error {
	code, exit := classify(err)
	_ = f.Error(code, fmt.Sprintf("%s: %v", msg, err), nil)
	return WrapExitError(exit, msg, err)
}

// inputError reports a malformed argument or flag.
func inputError(f *OutputFormatter, msg string) error {
	_ = f.Error(ErrCodeInvalidInput, msg, nil)
	return NewExitError(ExitCommandError, msg)
}

// resolveIntegrand resolves name with the raw --param pairs.
func resolveIntegrand(f *OutputFormatter, reg *integrand.Registry, name string, pairs []string) (integrand.Integrand, map[string]float64, error) {
	params, err := parseParams(pairs)
	if err != nil {
		return nil, nil, inputError(f, err.Error())
	}
	fn, err := reg.Resolve(name, params)
	if err != nil {
		code := ErrCodeInvalidInput
		if errors.Is(err, integrand.ErrUnknownIntegrand) {
			code = ErrCodeUnknownIntegrand
		}
		_ = f.Error(code, err.Error(), nil)
		return nil, nil, WrapExitError(ExitCommandError, "failed to resolve integrand", err)
	}
	return fn, params, nil
}

// describe labels an integrand for text output.
func describe(name string, fn integrand.Integrand) string {
	if s, ok := fn.(fmt.Stringer); ok && s.String() != name {
		return fmt.Sprintf("%s (%s)", name, s)
	}
	return name
}
