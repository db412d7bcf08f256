package header

import (
	"testing"

	"github.com/segytools/segyfix/errs"
	"github.com/stretchr/testify/require"
)

func TestCoerceToWidth_Int16Bounds(t *testing.T) {
	_, err := CoerceToWidth(32767, 2, true)
	require.NoError(t, err)

	_, err = CoerceToWidth(32768, 2, true)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	_, err = CoerceToWidth(-32768, 2, true)
	require.NoError(t, err)

	_, err = CoerceToWidth(-32769, 2, true)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestCoerceToWidth_Int32Bounds(t *testing.T) {
	_, err := CoerceToWidth(2147483647, 4, true)
	require.NoError(t, err)

	_, err = CoerceToWidth(2147483648, 4, true)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestBinaryFields_KnownNames(t *testing.T) {
	require.True(t, BinaryFields.Has("sample_interval"))
	require.True(t, BinaryFields.Has("format_code"))
	require.False(t, BinaryFields.Has("nonexistent"))
}

func TestTraceFields_KnownNames(t *testing.T) {
	for _, name := range CoordinateFieldNames {
		require.True(t, TraceFields.Has(name), "expected %s in trace field table", name)
	}
	require.True(t, TraceFields.Has("trace_sequence_line"))
	require.True(t, TraceFields.Has("inline"))
	require.True(t, TraceFields.Has("crossline"))
}

func TestTraceFields_NoOverlap(t *testing.T) {
	occupied := make([]bool, TraceHeaderSize)
	for _, name := range TraceFields.Names() {
		f, err := TraceFields.Lookup(name)
		require.NoError(t, err)
		for i := f.Offset - 1; i < f.Offset-1+f.Width; i++ {
			require.Falsef(t, occupied[i], "byte %d claimed by more than one field (latest: %s)", i, name)
			occupied[i] = true
		}
	}
}

func TestBinaryFields_NoOverlap(t *testing.T) {
	occupied := make([]bool, BinaryHeaderSize)
	for _, name := range BinaryFields.Names() {
		f, err := BinaryFields.Lookup(name)
		require.NoError(t, err)
		for i := f.Offset - 1; i < f.Offset-1+f.Width; i++ {
			require.Falsef(t, occupied[i], "byte %d claimed by more than one field (latest: %s)", i, name)
			occupied[i] = true
		}
	}
}
