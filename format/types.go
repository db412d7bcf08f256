// Package format defines the SEG-Y sample format-code enum and the byte
// width each code implies for a single sample, per binary-header bytes 25-26.
package format

import (
	"fmt"

	"github.com/segytools/segyfix/errs"
)

// Code is the binary-header format_code value selecting sample encoding.
type Code int16

const (
	CodeIBMFloat  Code = 1 // 4-byte IBM floating point
	CodeInt32     Code = 2 // 4-byte two's-complement integer
	CodeInt16     Code = 3 // 2-byte two's-complement integer
	CodeFixedGain Code = 4 // 4-byte fixed point with gain
	CodeIEEEFloat Code = 5 // 4-byte IEEE float
	CodeInt8      Code = 8 // 1-byte two's-complement integer
)

func (c Code) String() string {
	switch c {
	case CodeIBMFloat:
		return "IBMFloat"
	case CodeInt32:
		return "Int32"
	case CodeInt16:
		return "Int16"
	case CodeFixedGain:
		return "FixedGain"
	case CodeIEEEFloat:
		return "IEEEFloat"
	case CodeInt8:
		return "Int8"
	default:
		return fmt.Sprintf("Unknown(%d)", int16(c))
	}
}

// SampleWidth returns the number of bytes a single sample occupies for the
// given format code.
//
// Returns errs.ErrUnknownFormatCode for any code outside the recognized set.
func SampleWidth(c Code) (int, error) {
	switch c {
	case CodeIBMFloat, CodeInt32, CodeFixedGain, CodeIEEEFloat:
		return 4, nil
	case CodeInt16:
		return 2, nil
	case CodeInt8:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: %d", errs.ErrUnknownFormatCode, int16(c))
	}
}

// IsRecognized reports whether c is one of the format codes SEG-Y revision 1
// defines a sample width for.
func IsRecognized(c Code) bool {
	_, err := SampleWidth(c)
	return err == nil
}
