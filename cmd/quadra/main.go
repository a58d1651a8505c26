// Command quadra integrates one-dimensional functions with the composite
// trapezoidal and midpoint rules.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/quadra/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// ExitErrors were already reported by the command's formatter.
		// Anything else comes from cobra: unknown flags, bad arguments.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(cli.ExitCommandError)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
