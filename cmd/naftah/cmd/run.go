package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naftah-lang/naftah/internal/ast"
	"github.com/naftah-lang/naftah/pkg/naftah"
)

var (
	evalSource string
	configPath string
)

// Parse turns Naftah source text into an AST. The grammar/parser front-end
// is an external collaborator (spec.md §1's "out of scope" list) that this
// repository does not implement; an embedding host wires its own parser in
// here before calling Execute. Left nil, `run`/`--eval` report a clear
// error rather than silently no-opping.
var Parse func(source string) (*ast.Program, error)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Evaluate a Naftah program from a file or --eval source",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := sourceFrom(args)
		if err != nil {
			return err
		}

		if Parse == nil {
			return fmt.Errorf("no parser wired into this CLI build; the grammar/parser front-end is supplied by the embedding host (spec.md §6)")
		}
		prog, err := Parse(source)
		if err != nil {
			return fmt.Errorf("parse error: %w", err)
		}

		opts := naftah.DefaultOptions()
		if configPath != "" {
			opts, err = naftah.LoadOptions(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
		}
		logVerbose("naftah: running with max call depth %d", opts.MaxCallDepth)

		interp := naftah.New(opts)
		_, err = interp.Eval(prog)
		return err
	},
}

func init() {
	runCmd.Flags().StringVarP(&evalSource, "eval", "e", "", "evaluate inline source instead of a file")
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML options file")
}

func sourceFrom(args []string) (string, error) {
	if evalSource != "" {
		return evalSource, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("expected a file path or --eval source")
}
