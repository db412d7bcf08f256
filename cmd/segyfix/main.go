// Command segyfix is the CLI composition root: it wires planyaml, engine,
// changelog, report, and validate into the four subcommands spec.md §6
// defines (validate, ebcdic, edit, gui), built as a cobra command tree the
// way hailam-genfile/cmd/cli/main.go builds its single root command.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run builds the command tree and executes it, returning the process exit
// code instead of calling os.Exit directly so it can be exercised by tests.
func run(args []string) int {
	root := &cobra.Command{
		Use:          "segyfix",
		Short:        "Batch inspector and in-place editor for SEG-Y files",
		SilenceUsage: true,
	}
	root.AddCommand(newValidateCmd())
	root.AddCommand(newEbcdicCmd())
	root.AddCommand(newEditCmd())
	root.AddCommand(newGUICmd())
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if code, ok := err.(exitError); ok {
			return code.code
		}
		// cobra's own errors (unknown command, bad flag, wrong arg count,
		// missing required flag) are all usage errors.
		return exitUsageOrPlan
	}
	return exitSuccess
}
