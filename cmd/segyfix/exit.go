package main

import (
	"errors"

	"github.com/segytools/segyfix/errs"
)

// Exit codes (spec.md §6): 0 success; 1 validation errors; 2 plan
// parse/usage error; 3 I/O error; 4 internal error.
const (
	exitSuccess          = 0
	exitValidationErrors = 1
	exitUsageOrPlan      = 2
	exitIO               = 3
	exitInternal         = 4
)

// exitError pairs an error with the process exit code it should produce.
// Subcommands return one from RunE instead of calling os.Exit directly, so
// cobra still prints the error and run() can recover the code.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string { return e.err.Error() }
func (e exitError) Unwrap() error { return e.err }

func newExitError(code int, err error) error {
	if err == nil {
		return nil
	}
	return exitError{code: code, err: err}
}

// classifyErr maps a core-package error to an exit code by sentinel, falling
// back to exitInternal for anything unrecognized.
func classifyErr(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errs.ErrPlanParse), errors.Is(err, errs.ErrUnknownField):
		return exitUsageOrPlan
	case errors.Is(err, errs.ErrTruncatedFile),
		errors.Is(err, errs.ErrInconsistentSampleCount),
		errors.Is(err, errs.ErrUnknownFormatCode),
		errors.Is(err, errs.ErrWriteSize),
		errors.Is(err, errs.ErrWriteError),
		errors.Is(err, errs.ErrClosed):
		return exitIO
	default:
		return exitInternal
	}
}
