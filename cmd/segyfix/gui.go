package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newGUICmd is a stub for the GUI front-end spec.md §6 mentions as
// out-of-core-scope ("launches GUI; not part of the core").
func newGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the graphical front-end (not implemented in this build)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newExitError(exitInternal, fmt.Errorf("gui: not implemented in this build"))
		},
	}
}
