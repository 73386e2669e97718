// Package cmd implements the naftah CLI: a thin batch driver over
// pkg/naftah, not the REPL/syntax-highlighter spec.md §1 explicitly
// excludes.
//
// Grounded on github.com/cwbudde/go-dws cmd/dwscript/cmd/root.go's
// persistent --verbose flag and root-command wiring.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// Root is the naftah CLI's entry command.
var Root = &cobra.Command{
	Use:           "naftah",
	Short:         "Naftah language core CLI",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	Root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print extra diagnostic trace lines to stderr")
	Root.AddCommand(runCmd)
	Root.AddCommand(versionCmd)
}

// Execute runs the CLI, printing any error to stderr and returning a
// process exit code.
func Execute() int {
	if err := Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "naftah:", err)
		return 1
	}
	return 0
}

func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
