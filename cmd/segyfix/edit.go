package main

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/segytools/segyfix/changelog"
	"github.com/segytools/segyfix/edit"
	"github.com/segytools/segyfix/engine"
	"github.com/segytools/segyfix/planyaml"
	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	var planPath string
	var dryRun bool
	var outputDir string

	cmd := &cobra.Command{
		Use:   "edit <path>",
		Short: "Apply a declarative edit plan to a SEG-Y file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			plan, err := planyaml.Load(planPath)
			if err != nil {
				return newExitError(exitUsageOrPlan, err)
			}
			if dryRun {
				plan.DryRun = true
			}
			if outputDir != "" {
				plan.OutputMode = edit.OutputSeparateFolder
				plan.OutputDir = outputDir
			}

			sink, err := changelog.NewSink(path+".changelog.csv", path, changelog.CompressionNone)
			if err != nil {
				return newExitError(exitIO, err)
			}

			e := engine.New()
			done := make(chan struct{})
			var sinkErr error
			go func() {
				defer close(done)
				for ev := range e.Changes {
					if sinkErr == nil {
						sinkErr = sink.Write(ev)
					}
				}
			}()
			go func() {
				for range e.Findings {
				}
			}()

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			sp.Prefix = fmt.Sprintf("editing %s... ", path)
			sp.Start()
			summary, runErr := e.Run(path, plan)
			sp.Stop()
			<-done

			if closeErr := sink.Close(); closeErr != nil && runErr == nil {
				runErr = closeErr
			}
			if sinkErr != nil && runErr == nil {
				runErr = sinkErr
			}
			if runErr != nil {
				return newExitError(classifyErr(runErr), runErr)
			}
			if summary.Aborted {
				return newExitError(exitValidationErrors, fmt.Errorf("%s: %s", path, summary.AbortReason))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d traces, %d changes, %d findings\n",
				path, summary.TraceCount, summary.ChangeCount, summary.FindingCount)
			if summary.OutputPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "output: %s\n", summary.OutputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&planPath, "plan", "c", "", "edit plan YAML file (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "evaluate the plan without writing output")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "write edited output to this directory instead of in place")
	cmd.MarkFlagRequired("plan")
	return cmd
}
