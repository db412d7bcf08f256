package changelog

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/segytools/segyfix/edit"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, codec Codec, data []byte) {
	t.Helper()
	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}

func TestCodecs_RoundTrip(t *testing.T) {
	data := []byte("file,timestamp,trace_index,region,field,old_value,new_value\n" +
		"fixture.sgy,2026-01-01T00:00:00Z,3,trace,cdp_x,0,120\n")

	for _, ct := range []CompressionType{CompressionNone, CompressionLZ4, CompressionS2, CompressionZstd} {
		ct := ct
		t.Run(string(ct), func(t *testing.T) {
			codec, err := NewCodec(ct)
			require.NoError(t, err)
			roundTrip(t, codec, data)
		})
	}
}

func TestNewCodec_UnknownType(t *testing.T) {
	_, err := NewCodec(CompressionType("brotli"))
	require.Error(t, err)
}

func TestSink_WritesExpectedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changelog.csv")
	sink, err := NewSink(path, "fixture.sgy", CompressionNone)
	require.NoError(t, err)

	require.NoError(t, sink.Write(edit.ChangeEvent{
		HasTrace: true, TraceIndex: 3, Region: edit.RegionTrace,
		Field: "cdp_x", OldValue: "0", NewValue: "120",
	}))
	require.NoError(t, sink.Write(edit.ChangeEvent{
		HasTrace: false, Region: edit.RegionBinary,
		Field: "sample_interval", OldValue: "4000", NewValue: "2000",
	}))
	require.NoError(t, sink.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	require.Equal(t, Columns, rows[0])
	require.Len(t, rows, 3)
	require.Equal(t, "3", rows[1][2])
	require.Equal(t, "", rows[2][2], "binary-header change has no trace index")
}

func TestSink_CompressedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changelog.csv.s2")
	sink, err := NewSink(path, "fixture.sgy", CompressionS2)
	require.NoError(t, err)
	require.NoError(t, sink.Write(edit.ChangeEvent{
		HasTrace: true, TraceIndex: 0, Region: edit.RegionTrace,
		Field: "cdp_x", OldValue: "0", NewValue: "1",
	}))
	require.NoError(t, sink.Close())

	compressed, err := os.ReadFile(path)
	require.NoError(t, err)
	codec, err := NewCodec(CompressionS2)
	require.NoError(t, err)
	raw, err := codec.Decompress(compressed)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	require.Equal(t, Columns, rows[0])
}
