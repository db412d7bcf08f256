// Package errs defines the sentinel errors returned across segyfix's core
// packages. Callers should test for a specific failure with errors.Is, never
// by comparing error strings.
//
// Each sentinel corresponds to one of the error kinds in spec.md's error
// handling table. Call sites wrap a sentinel with fmt.Errorf("%w: ...", ...)
// to attach context (field name, trace index, offending value) without
// losing the ability to match on the sentinel.
package errs

import "errors"

// Plan and field resolution errors. Fatal, raised before any I/O.
var (
	ErrPlanParse    = errors.New("plan parse error")
	ErrUnknownField = errors.New("unknown field")
)

// Field write errors.
var (
	ErrOutOfRange = errors.New("value out of range for field width")
)

// Expression evaluator errors.
var (
	ErrUnknownVariable = errors.New("unknown variable")
	ErrUnknownFunction = errors.New("unknown function")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrExprSyntax      = errors.New("expression syntax error")
)

// Reader errors.
var (
	ErrTruncatedFile          = errors.New("truncated file")
	ErrInconsistentSampleCount = errors.New("inconsistent sample count")
	ErrUnknownFormatCode      = errors.New("unknown format code")
)

// Writer errors.
var (
	ErrWriteSize  = errors.New("write size mismatch")
	ErrWriteError = errors.New("writer I/O error")
	ErrClosed     = errors.New("writer already closed")
)

// CSV binding errors.
var (
	ErrCsvUnderflow  = errors.New("csv underflow")
	ErrCsvKeyMissing = errors.New("csv key missing")
	ErrCsvTypeError  = errors.New("csv type error")
)

// Validator errors.
var (
	ErrInvalidBounds = errors.New("invalid coordinate bounds")
)

// Engine errors.
var (
	ErrValidationFailed  = errors.New("validation failed, aborting before write")
	ErrPayloadMutated    = errors.New("trace payload bytes changed during edit")
	ErrUnsupportedOutput = errors.New("unsupported output mode")
)
