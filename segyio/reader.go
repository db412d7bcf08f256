// Package segyio implements the streaming SEG-Y reader and writer
// (components B & C). Both operate in constant memory: the reader never
// buffers more than one trace at a time, and the writer streams straight to
// disk through a buffered file handle, mirroring the teacher's
// header-then-payloads staging in blob/numeric_decoder.go without ever
// materializing the whole file.
package segyio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/segytools/segyfix/ebcdic"
	"github.com/segytools/segyfix/endian"
	"github.com/segytools/segyfix/errs"
	"github.com/segytools/segyfix/format"
	"github.com/segytools/segyfix/header"
	"github.com/segytools/segyfix/internal/pool"
)

// Layout captures the parsed binary-header facts that govern how the
// remainder of the file is shaped: the sample format, samples per trace, and
// whether extended textual headers follow the 3200/400-byte preamble.
type Layout struct {
	FormatCode          format.Code
	SampleWidth         int
	SamplesPerTrace     int
	ExtendedHeaderCount int
	TraceHeaderSize     int
}

// Reader streams a SEG-Y file: textual header, binary header, optional
// extended textual headers, then one (header, payload) pair per trace.
type Reader struct {
	f      *os.File
	br     *bufio.Reader
	engine endian.EndianEngine
	layout Layout

	traceHeaderBuf []byte
	payloadBuf     *pool.ByteBuffer
	traceIndex     int
	err            error
}

// Open opens path for streaming read. The caller must call Close when done.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		f:              f,
		br:             bufio.NewReaderSize(f, 256*1024),
		engine:         endian.GetBigEndianEngine(),
		traceHeaderBuf: make([]byte, header.TraceHeaderSize),
	}, nil
}

// Close releases the underlying file handle and any pooled buffer.
func (r *Reader) Close() error {
	if r.payloadBuf != nil {
		pool.PutTraceBuffer(r.payloadBuf)
		r.payloadBuf = nil
	}
	return r.f.Close()
}

// ReadTextual reads the 3200-byte EBCDIC textual header.
func (r *Reader) ReadTextual() ([]byte, error) {
	return r.readFull(ebcdic.Size, "textual header")
}

// ReadBinaryHeader reads the 400-byte binary header and derives Layout from
// it. Callers must call this before ReadExtended or iterating traces.
func (r *Reader) ReadBinaryHeader() ([]byte, error) {
	raw, err := r.readFull(header.BinaryHeaderSize, "binary header")
	if err != nil {
		return nil, err
	}
	view, err := header.NewView(raw, header.BinaryFields, r.engine)
	if err != nil {
		return nil, err
	}

	formatCode, err := view.Get("format_code")
	if err != nil {
		return nil, err
	}
	width, err := format.SampleWidth(format.Code(formatCode))
	if err != nil {
		return nil, err
	}
	samples, err := view.Get("samples_per_trace")
	if err != nil {
		return nil, err
	}
	extCount, err := view.Get("number_of_extended_textual_headers")
	if err != nil {
		return nil, err
	}
	if extCount < 0 {
		extCount = 0
	}

	r.layout = Layout{
		FormatCode:          format.Code(formatCode),
		SampleWidth:         width,
		SamplesPerTrace:     int(samples),
		ExtendedHeaderCount: int(extCount),
		TraceHeaderSize:     header.TraceHeaderSize,
	}
	return raw, nil
}

// Layout returns the layout derived by ReadBinaryHeader.
func (r *Reader) Layout() Layout {
	return r.layout
}

// ReadExtended reads one 3200-byte extended textual header block. Callers
// should invoke it exactly Layout().ExtendedHeaderCount times.
func (r *Reader) ReadExtended() ([]byte, error) {
	return r.readFull(ebcdic.Size, "extended textual header")
}

// Next advances to the next trace, returning false at end of file (err is
// nil in that case) or on read error (err is set).
//
// The trace header and payload returned by Header/Payload are owned by the
// Reader and are only valid until the next call to Next.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	if _, err := io.ReadFull(r.br, r.traceHeaderBuf); err != nil {
		if err == io.EOF {
			return false
		}
		if err == io.ErrUnexpectedEOF {
			r.err = fmt.Errorf("%w: truncated trace header at trace %d", errs.ErrTruncatedFile, r.traceIndex)
			return false
		}
		r.err = err
		return false
	}

	payloadSize := r.layout.SamplesPerTrace * r.layout.SampleWidth
	if r.payloadBuf == nil {
		r.payloadBuf = pool.GetTraceBuffer()
	}
	r.payloadBuf.Reset()
	r.payloadBuf.ExtendOrGrow(payloadSize)
	if _, err := io.ReadFull(r.br, r.payloadBuf.Bytes()); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			r.err = fmt.Errorf("%w: truncated trace payload at trace %d", errs.ErrTruncatedFile, r.traceIndex)
		} else {
			r.err = err
		}
		return false
	}

	r.traceIndex++
	return true
}

// Header returns the current trace's 240-byte header, valid until the next
// Next call.
func (r *Reader) Header() []byte {
	return r.traceHeaderBuf
}

// Payload returns the current trace's raw sample bytes, unparsed, valid
// until the next Next call.
func (r *Reader) Payload() []byte {
	return r.payloadBuf.Bytes()
}

// TraceIndex returns the 0-based index of the trace last returned by Next.
func (r *Reader) TraceIndex() int {
	return r.traceIndex - 1
}

// Err returns the error, if any, that stopped iteration.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) readFull(n int, what string) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: truncated %s", errs.ErrTruncatedFile, what)
		}
		return nil, err
	}
	return buf, nil
}
