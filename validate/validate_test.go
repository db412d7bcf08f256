package validate

import (
	"testing"

	"github.com/segytools/segyfix/edit"
	"github.com/segytools/segyfix/endian"
	"github.com/segytools/segyfix/format"
	"github.com/segytools/segyfix/header"
	"github.com/stretchr/testify/require"
)

func newTraceView(t *testing.T) *header.View {
	t.Helper()
	data := make([]byte, header.TraceHeaderSize)
	v, err := header.NewView(data, header.TraceFields, endian.GetBigEndianEngine())
	require.NoError(t, err)
	return v
}

func TestCheckFileStructure_Clean(t *testing.T) {
	fileSize := int64(3200 + 400 + 10*(240+4*4))
	findings := CheckFileStructure(fileSize, 0, format.CodeIEEEFloat, 4)
	require.Empty(t, findings)
}

func TestCheckFileStructure_UnrecognizedFormat(t *testing.T) {
	findings := CheckFileStructure(3200+400, 0, format.Code(99), 4)
	require.Len(t, findings, 1)
	require.Equal(t, KindUnrecognizedFormat, findings[0].Kind)
}

func TestCheckFileStructure_NonPositiveSamples(t *testing.T) {
	findings := CheckFileStructure(3200+400, 0, format.CodeIEEEFloat, 0)
	require.Len(t, findings, 1)
	require.Equal(t, KindNonPositiveSamples, findings[0].Kind)
}

func TestCheckFileStructure_SizeMismatch(t *testing.T) {
	fileSize := int64(3200 + 400 + 10*(240+4*4) + 3)
	findings := CheckFileStructure(fileSize, 0, format.CodeIEEEFloat, 4)
	require.Len(t, findings, 1)
	require.Equal(t, KindFileSizeMismatch, findings[0].Kind)
}

func TestScaleCoordinate(t *testing.T) {
	v, warn := ScaleCoordinate(12345, -100)
	require.Equal(t, 123.45, v)
	require.False(t, warn)

	v, warn = ScaleCoordinate(100, 10)
	require.Equal(t, 1000.0, v)
	require.False(t, warn)

	v, warn = ScaleCoordinate(50, 0)
	require.Equal(t, 50.0, v)
	require.True(t, warn)
}

func TestCheckCoordinateRange_OutOfBounds(t *testing.T) {
	v := newTraceView(t)
	require.NoError(t, v.Set("coordinate_scalar", 1))
	require.NoError(t, v.Set("source_x", 5000))

	cfg := edit.ValidationConfig{CoordMinX: 0, CoordMaxX: 1000, CoordMinY: 0, CoordMaxY: 1000}
	findings, err := CheckCoordinateRange(0, v, cfg)
	require.NoError(t, err)

	found := false
	for _, f := range findings {
		if f.Kind == KindCoordinateOutOfRange {
			found = true
		}
	}
	require.True(t, found)
}

func TestCheckCoordinateRange_ZeroScalarWarnsOnce(t *testing.T) {
	v := newTraceView(t)
	require.NoError(t, v.Set("coordinate_scalar", 0))

	cfg := edit.ValidationConfig{CoordMinX: -1e9, CoordMaxX: 1e9, CoordMinY: -1e9, CoordMaxY: 1e9}
	findings, err := CheckCoordinateRange(0, v, cfg)
	require.NoError(t, err)

	warnCount := 0
	for _, f := range findings {
		if f.Kind == KindZeroScalar {
			warnCount++
		}
	}
	require.Equal(t, 1, warnCount)
}

func TestOutlierCollector_FlagsSingleOutlier(t *testing.T) {
	// spec.md §8 scenario 5: 100 traces with source_x in [0,1000] plus one
	// trace with source_x = 10^9; default K=10 flags exactly that trace.
	c := NewOutlierCollector()
	for i := 0; i < 100; i++ {
		v := newTraceView(t)
		require.NoError(t, v.Set("coordinate_scalar", 1))
		require.NoError(t, v.Set("source_x", int64(i*10)))
		require.NoError(t, c.Add(i, v))
	}
	outlierView := newTraceView(t)
	require.NoError(t, outlierView.Set("coordinate_scalar", 1))
	require.NoError(t, outlierView.Set("source_x", 1000000000))
	require.NoError(t, c.Add(100, outlierView))

	findings := c.Finalize(10)

	flaggedTraces := map[int]bool{}
	for _, f := range findings {
		if f.Kind == KindCoordinateOutlier {
			flaggedTraces[f.TraceIndex] = true
		}
	}
	require.True(t, flaggedTraces[100])
	require.Len(t, flaggedTraces, 1, "only the single extreme trace should be flagged")
}
