// Package changelog writes the edit engine's ChangeEvent stream to a CSV
// changelog file, optionally compressing the whole file with one of a small
// set of pluggable codecs before it hits disk.
//
// The Codec interface, its factory, and the per-algorithm implementations are
// adapted from the teacher's compress package (mebo uses them to shrink
// encoded time-series payloads); here they compress a changelog CSV blob
// instead of a metric blob, so the type is renamed but the shape — a
// Compressor/Decompressor pair selected by a small enum, with a NoOp default
// — is unchanged.
package changelog

import "fmt"

// CompressionType selects the codec a Sink uses before writing its CSV
// payload to disk.
type CompressionType string

const (
	CompressionNone CompressionType = "none"
	CompressionLZ4  CompressionType = "lz4"
	CompressionS2   CompressionType = "s2"
	CompressionZstd CompressionType = "zstd"
)

// Compressor compresses a complete in-memory buffer.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// NewCodec returns the Codec for t, or an error if t is not recognized.
func NewCodec(t CompressionType) (Codec, error) {
	switch t {
	case "", CompressionNone:
		return NewNoOpCodec(), nil
	case CompressionLZ4:
		return NewLZ4Codec(), nil
	case CompressionS2:
		return NewS2Codec(), nil
	case CompressionZstd:
		return NewZstdCodec(), nil
	default:
		return nil, fmt.Errorf("changelog: unknown compression type %q", t)
	}
}
