package ebcdic

import (
	"fmt"

	"github.com/segytools/segyfix/edit"
)

// LineCount and LineWidth fix the SEG-Y textual header's shape: 40 lines of
// exactly 80 characters, 3200 bytes total.
const (
	LineCount = 40
	LineWidth = 80
	Size      = LineCount * LineWidth
)

// WarningKind discriminates the line-level problems textual-header decoding
// and editing can raise.
type WarningKind string

const (
	WarningUnmappableByte WarningKind = "unmappable_byte"
	WarningUnmappableRune WarningKind = "unmappable_rune"
	WarningLineTruncated  WarningKind = "line_truncated"
)

// Warning records one line/column-level problem found while decoding or
// applying an EBCDIC edit.
type Warning struct {
	Kind WarningKind
	Line int // 0-based
	Col  int // 0-based, -1 when not applicable (e.g. truncation)
}

// TextualHeader is the decoded, line-oriented view of the 3200-byte textual
// header region.
type TextualHeader struct {
	Lines [LineCount]string
}

// DecodeHeader splits data (which must be exactly Size bytes) into 40 UTF-8
// lines of 80 characters each, surfacing one Warning per unmappable byte.
func DecodeHeader(data []byte) (*TextualHeader, []Warning, error) {
	if len(data) != Size {
		return nil, nil, fmt.Errorf("ebcdic: textual header must be %d bytes, got %d", Size, len(data))
	}
	var h TextualHeader
	var warnings []Warning
	for line := range LineCount {
		raw := data[line*LineWidth : (line+1)*LineWidth]
		text, unmapped := Decode(raw)
		for _, col := range unmapped {
			warnings = append(warnings, Warning{Kind: WarningUnmappableByte, Line: line, Col: col})
		}
		h.Lines[line] = text
	}
	return &h, warnings, nil
}

// Bytes re-encodes the header back to exactly Size EBCDIC bytes. Lines
// shorter than LineWidth are padded with EBCDIC spaces; lines longer are
// truncated with a WarningLineTruncated.
func (h *TextualHeader) Bytes() ([]byte, []Warning) {
	out := make([]byte, 0, Size)
	var warnings []Warning
	for line, text := range h.Lines {
		runes := []rune(text)
		if len(runes) > LineWidth {
			warnings = append(warnings, Warning{Kind: WarningLineTruncated, Line: line, Col: -1})
			runes = runes[:LineWidth]
		}
		encoded, unmapped := Encode(string(runes))
		for _, col := range unmapped {
			warnings = append(warnings, Warning{Kind: WarningUnmappableRune, Line: line, Col: col})
		}
		for len(encoded) < LineWidth {
			encoded = append(encoded, spaceByte)
		}
		out = append(out, encoded...)
	}
	return out, warnings
}

// ApplyLines mutates the given line indices to text, matching
// edit.EbcdicEdit{Mode: edit.EbcdicModeLines}. It returns one ChangeEvent
// per line actually replaced, in ascending line order. The returned warning
// slice is always empty; encoding warnings for the new content are reported
// by Bytes.
func (h *TextualHeader) ApplyLines(lines map[int]string) ([]edit.ChangeEvent, []Warning, error) {
	indices := make([]int, 0, len(lines))
	for i := range lines {
		if i < 0 || i >= LineCount {
			return nil, nil, fmt.Errorf("ebcdic: line index %d out of range [0,%d)", i, LineCount)
		}
		indices = append(indices, i)
	}
	sortInts(indices)

	var events []edit.ChangeEvent
	var warnings []Warning
	for _, i := range indices {
		old := h.Lines[i]
		next := lines[i]
		if old == next {
			continue
		}
		h.Lines[i] = next
		events = append(events, edit.ChangeEvent{
			HasTrace: false,
			Region:   edit.RegionEbcdic,
			Field:    fmt.Sprintf("line_%d", i),
			OldValue: old,
			NewValue: next,
		})
	}
	return events, warnings, nil
}

// ApplyTemplate replaces the entire header with template, matching
// edit.EbcdicEdit{Mode: edit.EbcdicModeTemplate}. template must have exactly
// LineCount entries.
func (h *TextualHeader) ApplyTemplate(template []string) ([]edit.ChangeEvent, []Warning, error) {
	if len(template) != LineCount {
		return nil, nil, fmt.Errorf("ebcdic: template must have exactly %d lines, got %d", LineCount, len(template))
	}
	lines := make(map[int]string, LineCount)
	for i, text := range template {
		lines[i] = text
	}
	return h.ApplyLines(lines)
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
