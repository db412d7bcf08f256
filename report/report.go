// Package report renders validate.Finding slices, one per input file, into a
// single .xlsx workbook: one sheet per file, columns severity, kind,
// trace_index (blank for file-level findings), message, context.
//
// Grounded on hailam-genfile's xlsx generator (internal/adapters/xlsx/generator.go):
// excelize.NewFile(), SetCellValue per cell, SaveAs/Write to persist. That
// generator pads a file to a target size; a validation report has no size
// target, so only the excelize call shape is reused, not the padding logic.
package report

import (
	"fmt"
	"strconv"

	"github.com/segytools/segyfix/validate"
	"github.com/xuri/excelize/v2"
)

// Columns is the report's fixed column order.
var Columns = []string{"severity", "kind", "trace_index", "message", "context"}

// Report accumulates findings per file and renders them to one workbook.
type Report struct {
	files  []string
	byFile map[string][]validate.Finding
}

// New returns an empty report.
func New() *Report {
	return &Report{byFile: make(map[string][]validate.Finding)}
}

// Add appends findings for file, creating its sheet entry on first use.
// Call order determines sheet order in the final workbook.
func (r *Report) Add(file string, findings []validate.Finding) {
	if _, seen := r.byFile[file]; !seen {
		r.files = append(r.files, file)
	}
	r.byFile[file] = append(r.byFile[file], findings...)
}

// Save renders the report as a .xlsx workbook at path.
func (r *Report) Save(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if len(r.files) == 0 {
		if err := f.SaveAs(path); err != nil {
			return fmt.Errorf("report: save empty workbook: %w", err)
		}
		return nil
	}

	for i, file := range r.files {
		sheet := sheetName(file, i)
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("report: create sheet for %q: %w", file, err)
		}
		if err := writeSheet(f, sheet, r.byFile[file]); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %q: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, findings []validate.Finding) error {
	for col, name := range Columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	for row, finding := range findings {
		traceIndex := ""
		if finding.HasTrace {
			traceIndex = strconv.Itoa(finding.TraceIndex)
		}
		values := []any{string(finding.Severity), string(finding.Kind), traceIndex, finding.Message, finding.Context}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// sheetName derives an excelize-legal sheet name from a file path (excelize
// sheet names are capped at 31 characters and may not contain []:*?/\):
// invalid characters become '_' and the name keeps its last 31 characters.
// The positional name is used only when the result is empty; two files that
// map to the same name are not detected.
func sheetName(file string, index int) string {
	name := file
	const maxLen = 31
	replacer := stripInvalidSheetChars
	name = replacer(name)
	if len(name) > maxLen {
		name = name[len(name)-maxLen:]
	}
	if name == "" {
		name = fmt.Sprintf("file_%d", index+1)
	}
	return name
}

func stripInvalidSheetChars(s string) string {
	invalid := map[rune]bool{'[': true, ']': true, ':': true, '*': true, '?': true, '/': true, '\\': true}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if invalid[r] {
			out = append(out, '_')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
