// Package validate implements the three structural and coordinate-sanity
// checks component H runs over a SEG-Y file (spec.md §4.8): file
// structure, coordinate range, and coordinate outliers. None of these are
// statistics any retrieved example repo computes, so the median/MAD math
// here is implemented directly from the specification using only
// sort/math, noted as such in DESIGN.md rather than silently added.
package validate

import "fmt"

// Severity classifies a Finding for the report sink.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Kind names the specific rule that produced a Finding.
type Kind string

const (
	KindFileSizeMismatch   Kind = "file_size_mismatch"
	KindUnrecognizedFormat Kind = "unrecognized_format_code"
	KindNonPositiveSamples Kind = "non_positive_samples_per_trace"
	KindCoordinateOutOfRange Kind = "coordinate_out_of_range"
	KindZeroScalar         Kind = "zero_coordinate_scalar"
	KindCoordinateOutlier  Kind = "coordinate_outlier"
)

// Finding is one row of the validation report (spec.md §6's report columns:
// severity, kind, trace_index_or_blank, message, context). Context carries
// supporting data a reader would otherwise have to recompute (e.g. the
// median and threshold an outlier was measured against); most rules leave
// it blank.
type Finding struct {
	Severity   Severity
	Kind       Kind
	TraceIndex int
	HasTrace   bool
	Message    string
	Context    string
}

func fileFinding(sev Severity, kind Kind, format string, args ...any) Finding {
	return Finding{Severity: sev, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func traceFinding(sev Severity, kind Kind, traceIndex int, format string, args ...any) Finding {
	return Finding{Severity: sev, Kind: kind, TraceIndex: traceIndex, HasTrace: true, Message: fmt.Sprintf(format, args...)}
}
