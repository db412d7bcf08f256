package header

import (
	"fmt"

	"github.com/segytools/segyfix/endian"
	"github.com/segytools/segyfix/errs"
)

// View is a mutable typed window over a fixed-size header region (binary
// header or trace header). It never copies the underlying bytes; Get/Set
// read and write directly into the caller-owned buffer, mirroring the
// teacher's Parse(data)/Bytes() pair but without the allocation Bytes()
// would cost per trace.
type View struct {
	data   []byte
	table  *Table
	engine endian.EndianEngine
}

// NewView wraps data (which must be exactly table.RegionSize bytes) for
// field-level access. SEG-Y is always big-endian and every caller in
// segyfix passes endian.GetBigEndianEngine(); engine is a parameter rather
// than hardcoded so the byte order stays behind the endian abstraction.
func NewView(data []byte, table *Table, engine endian.EndianEngine) (*View, error) {
	if len(data) != table.RegionSize {
		return nil, fmt.Errorf("%w: region is %d bytes, got %d", errs.ErrWriteSize, table.RegionSize, len(data))
	}
	return &View{data: data, table: table, engine: engine}, nil
}

// Bytes returns the underlying region bytes (shared, not copied).
func (v *View) Bytes() []byte {
	return v.data
}

// Get reads the named field as a signed 64-bit integer.
func (v *View) Get(name string) (int64, error) {
	f, err := v.table.Lookup(name)
	if err != nil {
		return 0, err
	}
	return v.GetSpec(f), nil
}

// GetSpec reads a field by FieldSpec directly, bypassing name lookup. Used
// for custom (offset, width, signed) edits.
func (v *View) GetSpec(f FieldSpec) int64 {
	start := f.Offset - 1
	raw := v.data[start : start+f.Width]
	switch f.Width {
	case 2:
		u := v.engine.Uint16(raw)
		if f.Signed {
			return int64(int16(u))
		}
		return int64(u)
	case 4:
		u := v.engine.Uint32(raw)
		if f.Signed {
			return int64(int32(u))
		}
		return int64(u)
	default:
		panic(fmt.Sprintf("header: unsupported field width %d", f.Width))
	}
}

// Set writes value into the named field, range-checking it against the
// field's width first.
func (v *View) Set(name string, value int64) error {
	f, err := v.table.Lookup(name)
	if err != nil {
		return err
	}
	return v.SetSpec(f, value)
}

// SetSpec writes value into a field located by FieldSpec directly.
func (v *View) SetSpec(f FieldSpec, value int64) error {
	if _, err := CoerceToWidth(value, f.Width, f.Signed); err != nil {
		return err
	}
	start := f.Offset - 1
	raw := v.data[start : start+f.Width]
	switch f.Width {
	case 2:
		v.engine.PutUint16(raw, uint16(int16(value)))
	case 4:
		v.engine.PutUint32(raw, uint32(int32(value)))
	default:
		panic(fmt.Sprintf("header: unsupported field width %d", f.Width))
	}
	return nil
}

// Snapshot returns an independent copy of the region bytes, used wherever
// spec.md requires edits to read "the original" or "pre-edit" values while
// the live view keeps mutating (trace-header apply).
func (v *View) Snapshot() *View {
	cp := make([]byte, len(v.data))
	copy(cp, v.data)
	sv, _ := NewView(cp, v.table, v.engine)
	return sv
}
