// Package endian provides byte order utilities for binary encoding and
// decoding.
//
// It extends Go's standard encoding/binary package by combining ByteOrder
// and AppendByteOrder into a unified EndianEngine interface, giving the
// codec a single seam to depend on instead of sprinkling binary.BigEndian
// calls through the reader/writer/header packages.
//
// # Basic usage
//
// SEG-Y mandates big-endian on the wire, so segyio always starts from
// GetBigEndianEngine:
//
//	import "github.com/segytools/segyfix/endian"
//
//	engine := endian.GetBigEndianEngine()
//	v := engine.Uint32(headerBytes[0:4])
//
// GetLittleEndianEngine is available to library callers; nothing in segyfix
// (core codec or CLI) selects it.
//
// # Thread safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	// Create a byte slice pointing to the memory address of 'i'.
	// We only need the first byte.
	b := (*[2]byte)(unsafe.Pointer(&i))

	// Check the first byte at the lowest memory address
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine. This is the engine SEG-Y
// requires for every multi-byte integer in the file.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
