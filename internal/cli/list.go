package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/quadra/internal/integrand"
)

// ListEntry describes one registered integrand.
type ListEntry struct {
	Name        string `json:"name"`
	Domain      string `json:"domain"`
	Description string `json:"description,omitempty"`
}

// ListFamily describes one parameterised family.
type ListFamily struct {
	Kind   string `json:"kind"`
	Params string `json:"params"`
}

// ListResult is the JSON payload of the list command.
type ListResult struct {
	Integrands []ListEntry  `json:"integrands"`
	Families   []ListFamily `json:"families"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available integrands",
		Long: `List registered integrands with their domains, followed by the
parameterised families accepted by --integrand together with --param.

Integrands declared in a --catalog directory are included.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	logger := newLogger(opts, cmd.ErrOrStderr())

	reg, err := registryFor(formatter, opts, logger)
	if err != nil {
		return err
	}

	result := ListResult{
		Integrands: make([]ListEntry, 0),
		Families:   make([]ListFamily, 0, len(integrand.Kinds)),
	}
	for _, e := range reg.Entries() {
		result.Integrands = append(result.Integrands, ListEntry{
			Name:        e.Name,
			Domain:      e.Integrand.Domain().String(),
			Description: e.Description,
		})
	}
	for _, k := range integrand.Kinds {
		result.Families = append(result.Families, ListFamily{Kind: k, Params: integrand.Usage(k)})
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDOMAIN\tDESCRIPTION")
	for _, e := range result.Integrands {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Domain, e.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Families (--integrand <kind> --param key=value):")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range result.Families {
		fmt.Fprintf(tw, "  %s\t%s\n", f.Kind, f.Params)
	}
	return tw.Flush()
}
