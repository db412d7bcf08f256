package ebcdic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeEncode_ASCIIRoundTrip(t *testing.T) {
	encoded, unmapped := Encode("HELLO WORLD 123")
	require.Empty(t, unmapped)

	decoded, unmapped := Decode(encoded)
	require.Empty(t, unmapped)
	require.Equal(t, "HELLO WORLD 123", decoded)
}

func TestEncode_UnmappableRune(t *testing.T) {
	data, unmapped := Encode("AB中C")
	require.Equal(t, []int{2}, unmapped)
	require.Equal(t, byte(spaceByte), data[2], "unmappable rune must become EBCDIC space")
}

func TestDecode_UnmappableByte(t *testing.T) {
	// 0xFF is unassigned in code page 500.
	text, unmapped := Decode([]byte{0xC1, 0xFF, 0xC2})
	require.Equal(t, []int{1}, unmapped)
	require.Equal(t, 3, len([]rune(text)))
}

func TestTextualHeader_DecodeHeader_PaddedLines(t *testing.T) {
	raw := make([]byte, Size)
	enc, _ := Encode("C 1 CLIENT   COMPANY")
	copy(raw[0:LineWidth], enc)
	for i := len(enc); i < LineWidth; i++ {
		raw[i] = spaceByte
	}

	h, warnings, err := DecodeHeader(raw)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.True(t, strings.HasPrefix(h.Lines[0], "C 1 CLIENT"))
	require.Len(t, []rune(h.Lines[0]), LineWidth)
}

func TestTextualHeader_Bytes_PadsShortLine(t *testing.T) {
	var h TextualHeader
	h.Lines[0] = "abc"

	data, warnings := h.Bytes()
	require.Empty(t, warnings)
	require.Len(t, data, Size)

	decodedLine, unmapped := Decode(data[0:LineWidth])
	require.Empty(t, unmapped)
	require.Equal(t, "abc"+strings.Repeat(" ", LineWidth-3), decodedLine)
}

func TestTextualHeader_Bytes_TruncatesLongLine(t *testing.T) {
	var h TextualHeader
	h.Lines[1] = strings.Repeat("x", 120)

	data, warnings := h.Bytes()
	require.Len(t, warnings, 1)
	require.Equal(t, WarningLineTruncated, warnings[0].Kind)
	require.Equal(t, 1, warnings[0].Line)

	decodedLine, _ := Decode(data[LineWidth : 2*LineWidth])
	require.Equal(t, strings.Repeat("x", LineWidth), decodedLine)
}

func TestTextualHeader_ApplyLines_EmitsChangeEvents(t *testing.T) {
	var h TextualHeader
	h.Lines[3] = "old content"

	events, warnings, err := h.ApplyLines(map[int]string{3: "new content", 7: ""})
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, events, 1, "line 7 was already empty, no event expected")
	require.Equal(t, "old content", events[0].OldValue)
	require.Equal(t, "new content", events[0].NewValue)
	require.Equal(t, "line_3", events[0].Field)
}

func TestTextualHeader_ApplyLines_OutOfRange(t *testing.T) {
	var h TextualHeader
	_, _, err := h.ApplyLines(map[int]string{40: "x"})
	require.Error(t, err)
}

func TestTextualHeader_ApplyTemplate_WrongLength(t *testing.T) {
	var h TextualHeader
	_, _, err := h.ApplyTemplate([]string{"only one line"})
	require.Error(t, err)
}
