package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/segytools/segyfix/edit"
	"github.com/segytools/segyfix/engine"
	"github.com/segytools/segyfix/report"
	"github.com/segytools/segyfix/validate"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var reportPath string
	var bounds string
	var outlierK float64

	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Check a SEG-Y file's structure and coordinate sanity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			cfg := edit.ValidationConfig{
				CheckFileStructure:      true,
				CheckCoordinateOutliers: true,
				OutlierK:                outlierK,
			}
			if bounds != "" {
				minX, maxX, minY, maxY, err := parseBounds(bounds)
				if err != nil {
					return newExitError(exitUsageOrPlan, err)
				}
				cfg.CheckCoordinateRange = true
				cfg.CoordMinX, cfg.CoordMaxX = minX, maxX
				cfg.CoordMinY, cfg.CoordMaxY = minY, maxY
			}

			plan := &edit.Plan{DryRun: true, OutputMode: edit.OutputDiscard, Validations: cfg}

			e := engine.New()
			done := make(chan struct{})
			var findings []validate.Finding
			go func() {
				defer close(done)
				for f := range e.Findings {
					findings = append(findings, f)
				}
			}()
			go func() {
				for range e.Changes {
				}
			}()

			summary, err := e.Run(path, plan)
			<-done
			if err != nil {
				return newExitError(classifyErr(err), err)
			}

			errCount := 0
			for _, f := range findings {
				if f.Severity == validate.SeverityError {
					errCount++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d findings (%d error, %d warning), %d traces\n",
				path, len(findings), errCount, len(findings)-errCount, summary.TraceCount)

			if reportPath != "" {
				r := report.New()
				r.Add(path, findings)
				if err := r.Save(reportPath); err != nil {
					return newExitError(exitIO, err)
				}
			}

			if errCount > 0 {
				return newExitError(exitValidationErrors, fmt.Errorf("%s: %d validation errors", path, errCount))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&reportPath, "output", "o", "", "write findings to an .xlsx report")
	cmd.Flags().StringVar(&bounds, "bounds", "", "x_min,x_max,y_min,y_max coordinate bounds to enforce")
	cmd.Flags().Float64Var(&outlierK, "outliers", 0, "median-absolute-deviation multiplier for outlier detection (default 10)")
	return cmd
}

func parseBounds(s string) (minX, maxX, minY, maxY int64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("--bounds must be x_min,x_max,y_min,y_max, got %q", s)
	}
	vals := make([]int64, 4)
	for i, p := range parts {
		v, convErr := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if convErr != nil {
			return 0, 0, 0, 0, fmt.Errorf("--bounds: %q is not an integer: %w", p, convErr)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}
