// Package ebcdic transcodes the SEG-Y textual header between EBCDIC
// (IBM code page 500) and UTF-8. The 256-entry translation table is derived
// once, at init, from golang.org/x/text/encoding/charmap.CodePage500 — the
// table is translation data, not logic, so there is no reason to hand-copy
// it into a literal when the standard corpus of encodings already ships one.
package ebcdic

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var decodeTable [256]rune
var encodeTable map[rune]byte

func init() {
	dec := charmap.CodePage500.NewDecoder()
	for i := range 256 {
		out, err := dec.Bytes([]byte{byte(i)})
		if err != nil || len(out) == 0 {
			decodeTable[i] = utf8.RuneError
			continue
		}
		r, size := utf8.DecodeRune(out)
		if size == 0 {
			r = utf8.RuneError
		}
		decodeTable[i] = r
	}

	encodeTable = make(map[rune]byte, 256)
	for i := range 256 {
		r := decodeTable[i]
		if r == utf8.RuneError {
			continue
		}
		if _, exists := encodeTable[r]; !exists {
			encodeTable[r] = byte(i)
		}
	}
}

// substitutionChar replaces an EBCDIC byte with no UTF-8 mapping on decode.
const substitutionChar = '�'

// spaceByte replaces a rune with no EBCDIC mapping on encode (EBCDIC space).
const spaceByte = 0x40

// Decode converts EBCDIC-encoded bytes to a UTF-8 string. Every byte with no
// entry in the code page 500 table is replaced by the Unicode replacement
// character, and its 0-based position is appended to unmapped.
func Decode(data []byte) (text string, unmapped []int) {
	runes := make([]rune, len(data))
	for i, b := range data {
		r := decodeTable[b]
		if r == utf8.RuneError {
			unmapped = append(unmapped, i)
			r = substitutionChar
		}
		runes[i] = r
	}
	return string(runes), unmapped
}

// Encode converts a UTF-8 string to EBCDIC bytes. Every rune with no entry
// in the code page 500 table is replaced by the EBCDIC space byte (0x40),
// and its 0-based rune position is appended to unmapped.
func Encode(s string) (data []byte, unmapped []int) {
	runes := []rune(s)
	data = make([]byte, len(runes))
	for i, r := range runes {
		b, ok := encodeTable[r]
		if !ok {
			unmapped = append(unmapped, i)
			b = spaceByte
		}
		data[i] = b
	}
	return data, unmapped
}
