package validate

import (
	"github.com/segytools/segyfix/ebcdic"
	"github.com/segytools/segyfix/format"
	"github.com/segytools/segyfix/header"
)

// CheckFileStructure implements check_file_structure: the file size must
// account for exactly the textual header, binary header, extended textual
// headers, and a whole number of (trace header + payload) records;
// format_code must be recognized; samples_per_trace must be positive
// (spec.md §4.8).
func CheckFileStructure(fileSize int64, extendedHeaderCount int, formatCode format.Code, samplesPerTrace int) []Finding {
	var findings []Finding

	if !format.IsRecognized(formatCode) {
		findings = append(findings, fileFinding(SeverityError, KindUnrecognizedFormat,
			"format_code %d is not a recognized SEG-Y sample format", int16(formatCode)))
	}
	if samplesPerTrace <= 0 {
		findings = append(findings, fileFinding(SeverityError, KindNonPositiveSamples,
			"samples_per_trace is %d, expected a positive value", samplesPerTrace))
		return findings
	}

	width, err := format.SampleWidth(formatCode)
	if err != nil {
		// Already reported above as an unrecognized format; the remainder of
		// the structural check needs a width to proceed and has none.
		return findings
	}

	preamble := int64(ebcdic.Size) + int64(header.BinaryHeaderSize) + int64(extendedHeaderCount)*int64(ebcdic.Size)
	recordSize := int64(header.TraceHeaderSize) + int64(samplesPerTrace)*int64(width)
	remainder := fileSize - preamble
	if remainder < 0 || recordSize <= 0 || remainder%recordSize != 0 {
		findings = append(findings, fileFinding(SeverityError, KindFileSizeMismatch,
			"file size %d does not divide evenly into %d-byte trace records after a %d-byte preamble",
			fileSize, recordSize, preamble))
	}
	return findings
}
