// Package header is the single source of truth for SEG-Y's fixed-width
// header layouts. It defines the binary-header and trace-header field
// tables as data (name, byte offset, width, signedness) so the codec, the
// binary/trace header editors, the expression evaluator's variable
// environment, and the plan loader's field-name validation all resolve a
// field name the same way.
package header

import (
	"fmt"

	"github.com/segytools/segyfix/errs"
)

// FieldSpec describes one fixed-width integer field within a header region.
//
// Offset follows the SEG-Y convention of 1-based byte numbering as used in
// the standard and in spec.md; Region-relative slicing (Offset-1) happens at
// the point of use.
type FieldSpec struct {
	Name   string
	Offset int // 1-based byte offset within the region
	Width  int // 2, 4 (or 1 for trace_id byte-sized subfields — unused here, all SEG-Y fields are 2 or 4 bytes)
	Signed bool
}

// end returns the exclusive 0-based byte offset one past the field.
func (f FieldSpec) end() int {
	return f.Offset - 1 + f.Width
}

// Bounds returns the integer range representable in Width bytes: the signed
// range when Signed is set, the unsigned range otherwise.
func (f FieldSpec) Bounds() (min, max int64) {
	if f.Width <= 0 || f.Width > 8 {
		return 0, 0
	}
	bits := uint(f.Width * 8)
	if f.Signed {
		max = int64(1)<<(bits-1) - 1
		min = -(int64(1) << (bits - 1))
	} else {
		max = int64(1)<<bits - 1
		min = 0
	}
	return min, max
}

// CoerceToWidth range-checks v against width/signed and returns it unchanged
// on success. It is the single range-check helper shared by constant writes,
// expression assignment, CopyFrom, and CSV binding (spec.md §4.4/§4.6/§4.7).
func CoerceToWidth(v int64, width int, signed bool) (int64, error) {
	spec := FieldSpec{Width: width, Signed: signed}
	min, max := spec.Bounds()
	if v < min || v > max {
		return 0, fmt.Errorf("%w: value %d outside [%d,%d] for width=%d signed=%v", errs.ErrOutOfRange, v, min, max, width, signed)
	}
	return v, nil
}

// Table is a named, offset-addressable set of FieldSpecs for one header
// region (binary header or trace header).
type Table struct {
	RegionSize int
	byName     map[string]FieldSpec
	order      []string // declaration order, for stable iteration (e.g. listing unknown-field suggestions)
}

// NewTable builds a Table from a field list, validating that every field
// fits within regionSize and that no two fields share a name. Overlapping
// byte ranges are not checked.
func NewTable(regionSize int, fields []FieldSpec) *Table {
	t := &Table{
		RegionSize: regionSize,
		byName:     make(map[string]FieldSpec, len(fields)),
		order:      make([]string, 0, len(fields)),
	}
	for _, f := range fields {
		if f.Offset < 1 || f.end() > regionSize {
			panic(fmt.Sprintf("header: field %q out of region bounds [1,%d]", f.Name, regionSize))
		}
		if _, exists := t.byName[f.Name]; exists {
			panic(fmt.Sprintf("header: duplicate field name %q", f.Name))
		}
		t.byName[f.Name] = f
		t.order = append(t.order, f.Name)
	}
	return t
}

// Lookup resolves a canonical field name to its FieldSpec.
func (t *Table) Lookup(name string) (FieldSpec, error) {
	f, ok := t.byName[name]
	if !ok {
		return FieldSpec{}, fmt.Errorf("%w: %q", errs.ErrUnknownField, name)
	}
	return f, nil
}

// Has reports whether name is a known field.
func (t *Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Names returns all known field names in declaration order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Custom builds a one-off FieldSpec for a (offset, width, signed) edit that
// bypasses the named table, validating the bounds against regionSize.
func (t *Table) Custom(offset, width int, signed bool) (FieldSpec, error) {
	f := FieldSpec{Name: fmt.Sprintf("@%d:%d", offset, width), Offset: offset, Width: width, Signed: signed}
	if offset < 1 || f.end() > t.RegionSize {
		return FieldSpec{}, fmt.Errorf("%w: custom field offset=%d width=%d outside region [1,%d]", errs.ErrOutOfRange, offset, width, t.RegionSize)
	}
	if width != 2 && width != 4 {
		return FieldSpec{}, fmt.Errorf("%w: custom field width must be 2 or 4, got %d", errs.ErrOutOfRange, width)
	}
	return f, nil
}
