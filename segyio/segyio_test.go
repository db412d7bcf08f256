package segyio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/segytools/segyfix/ebcdic"
	"github.com/segytools/segyfix/endian"
	"github.com/segytools/segyfix/errs"
	"github.com/segytools/segyfix/header"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, samplesPerTrace int, formatCode int64, traceCount int) string {
	t.Helper()

	binary := make([]byte, header.BinaryHeaderSize)
	bv, err := header.NewView(binary, header.BinaryFields, endian.GetBigEndianEngine())
	require.NoError(t, err)
	require.NoError(t, bv.Set("samples_per_trace", int64(samplesPerTrace)))
	require.NoError(t, bv.Set("format_code", formatCode))
	require.NoError(t, bv.Set("sample_interval", 4000))

	path := filepath.Join(t.TempDir(), "fixture.sgy")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := NewWriter(f)

	textual := make([]byte, ebcdic.Size)
	for i := range textual {
		textual[i] = 0x40
	}
	require.NoError(t, w.WriteTextual(textual))
	require.NoError(t, w.WriteBinaryHeader(binary))

	for i := 0; i < traceCount; i++ {
		th := make([]byte, header.TraceHeaderSize)
		tv, err := header.NewView(th, header.TraceFields, endian.GetBigEndianEngine())
		require.NoError(t, err)
		require.NoError(t, tv.Set("trace_sequence_line", int64(i+1)))

		payload := make([]byte, samplesPerTrace*4)
		require.NoError(t, w.WriteTrace(th, payload))
	}
	require.NoError(t, w.Close())
	return path
}

func TestReader_RoundTrip(t *testing.T) {
	path := writeFixture(t, 4, 5, 3)

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.ReadTextual()
	require.NoError(t, err)

	binRaw, err := r.ReadBinaryHeader()
	require.NoError(t, err)
	require.Len(t, binRaw, header.BinaryHeaderSize)
	require.Equal(t, 4, r.Layout().SamplesPerTrace)
	require.Equal(t, 4, r.Layout().SampleWidth)
	require.Equal(t, 0, r.Layout().ExtendedHeaderCount)

	count := 0
	for r.Next() {
		th, err := header.NewView(r.Header(), header.TraceFields, endian.GetBigEndianEngine())
		require.NoError(t, err)
		seq, err := th.Get("trace_sequence_line")
		require.NoError(t, err)
		require.Equal(t, int64(count+1), seq)
		require.Len(t, r.Payload(), 16)
		count++
	}
	require.NoError(t, r.Err())
	require.Equal(t, 3, count)
}

func TestReader_TruncatedFile(t *testing.T) {
	path := writeFixture(t, 4, 5, 1)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	truncated := raw[:len(raw)-10]
	require.NoError(t, os.WriteFile(path, truncated, 0o644))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()
	_, err = r.ReadTextual()
	require.NoError(t, err)
	_, err = r.ReadBinaryHeader()
	require.NoError(t, err)

	for r.Next() {
	}
	require.ErrorIs(t, r.Err(), errs.ErrTruncatedFile)
}

func TestWriter_RejectsWrongSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.sgy")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := NewWriter(f)
	defer w.Close()

	err = w.WriteTextual(make([]byte, 10))
	require.ErrorIs(t, err, errs.ErrWriteSize)
}

func TestWriter_RejectsWrongPayloadSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badpayload.sgy")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := NewWriter(f)
	defer w.Close()

	w.SetPayloadSize(16)
	th := make([]byte, header.TraceHeaderSize)
	err = w.WriteTrace(th, make([]byte, 8))
	require.ErrorIs(t, err, errs.ErrWriteSize)

	require.NoError(t, w.WriteTrace(th, make([]byte, 16)))
}
