package segyio

import (
	"bufio"
	"fmt"
	"os"

	"github.com/segytools/segyfix/ebcdic"
	"github.com/segytools/segyfix/errs"
	"github.com/segytools/segyfix/header"
)

// Writer streams a SEG-Y file to an already-open file handle in the exact
// region order the format requires: textual header, binary header, optional
// extended textual headers, then one (header, payload) pair per trace.
//
// Writer does not decide where its output file lives — the orchestrator
// owns the temp-file-then-rename swap (spec.md §5) and simply hands Writer
// an *os.File to stream into.
type Writer struct {
	f       *os.File
	bw      *bufio.Writer
	written int64

	payloadSize int // expected bytes per trace payload; 0 = unchecked
}

// NewWriter wraps f for buffered streaming writes.
func NewWriter(f *os.File) *Writer {
	return &Writer{f: f, bw: bufio.NewWriterSize(f, 256*1024)}
}

// SetPayloadSize fixes the expected per-trace payload size (samples_per_trace
// × sample width, per the input file's Layout). Once set, WriteTrace rejects
// any payload whose length disagrees, per spec.md §4.3 ("rejects sample
// buffers whose length disagrees with the effective per-trace payload
// size").
func (w *Writer) SetPayloadSize(n int) {
	w.payloadSize = n
}

// WriteTextual writes the 3200-byte EBCDIC textual header.
func (w *Writer) WriteTextual(data []byte) error {
	return w.writeExact(data, ebcdic.Size, "textual header")
}

// WriteBinaryHeader writes the 400-byte binary header.
func (w *Writer) WriteBinaryHeader(data []byte) error {
	return w.writeExact(data, header.BinaryHeaderSize, "binary header")
}

// WriteExtended writes one 3200-byte extended textual header block.
func (w *Writer) WriteExtended(data []byte) error {
	return w.writeExact(data, ebcdic.Size, "extended textual header")
}

// WriteTrace writes one trace header followed by its raw sample payload.
func (w *Writer) WriteTrace(traceHeader, payload []byte) error {
	if len(traceHeader) != header.TraceHeaderSize {
		return fmt.Errorf("%w: trace header is %d bytes, got %d", errs.ErrWriteSize, header.TraceHeaderSize, len(traceHeader))
	}
	if w.payloadSize > 0 && len(payload) != w.payloadSize {
		return fmt.Errorf("%w: trace payload is %d bytes, expected %d", errs.ErrWriteSize, len(payload), w.payloadSize)
	}
	if _, err := w.bw.Write(traceHeader); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrWriteError, err)
	}
	if _, err := w.bw.Write(payload); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrWriteError, err)
	}
	w.written += int64(len(traceHeader) + len(payload))
	return nil
}

// Close flushes buffered output, fsyncs, and closes the file. The fsync
// happens here (the orchestrator's rename step does not sync) so output is
// durably persisted whether or not the Writer is used by the orchestrator.
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrWriteError, err)
	}
	if err := w.f.Sync(); err != nil {
		return err
	}
	return w.f.Close()
}

// BytesWritten returns the total number of trace header + payload bytes
// written so far, for diagnostics.
func (w *Writer) BytesWritten() int64 {
	return w.written
}

func (w *Writer) writeExact(data []byte, want int, what string) error {
	if len(data) != want {
		return fmt.Errorf("%w: %s must be %d bytes, got %d", errs.ErrWriteSize, what, want, len(data))
	}
	if _, err := w.bw.Write(data); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrWriteError, err)
	}
	w.written += int64(len(data))
	return nil
}
