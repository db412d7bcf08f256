package changelog

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/segytools/segyfix/edit"
)

// Columns is the exact CSV column set spec.md §6 mandates for the changelog.
var Columns = []string{"file", "timestamp", "trace_index", "region", "field", "old_value", "new_value"}

// Sink accumulates ChangeEvents for one file into a CSV buffer and flushes
// it, optionally compressed, to path on Close. The whole-buffer compress
// step mirrors how the teacher's Codec operates on one complete payload at a
// time rather than as a streaming writer.
type Sink struct {
	path  string
	codec Codec
	buf   bytes.Buffer
	w     *csv.Writer
	file  string
}

// NewSink creates a changelog CSV sink for file, writing its (possibly
// compressed) output to path on Close.
func NewSink(path, file string, compression CompressionType) (*Sink, error) {
	codec, err := NewCodec(compression)
	if err != nil {
		return nil, err
	}
	s := &Sink{path: path, codec: codec, file: file}
	s.w = csv.NewWriter(&s.buf)
	if err := s.w.Write(Columns); err != nil {
		return nil, err
	}
	return s, nil
}

// Write appends one ChangeEvent as a changelog row, stamped with the current
// time.
func (s *Sink) Write(ev edit.ChangeEvent) error {
	traceIndex := ""
	if ev.HasTrace {
		traceIndex = strconv.Itoa(ev.TraceIndex)
	}
	return s.w.Write([]string{
		s.file,
		time.Now().UTC().Format(time.RFC3339Nano),
		traceIndex,
		string(ev.Region),
		ev.Field,
		ev.OldValue,
		ev.NewValue,
	})
}

// Close flushes the buffered CSV, compresses it with the configured codec,
// and writes the result to the sink's path.
func (s *Sink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return err
	}
	compressed, err := s.codec.Compress(s.buf.Bytes())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, compressed, 0o644)
}
