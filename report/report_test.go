package report

import (
	"path/filepath"
	"testing"

	"github.com/segytools/segyfix/validate"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReport_SaveOneSheetPerFile(t *testing.T) {
	r := New()
	r.Add("a.sgy", []validate.Finding{
		{Severity: validate.SeverityError, Kind: validate.KindFileSizeMismatch, Message: "size mismatch"},
	})
	r.Add("b.sgy", []validate.Finding{
		{Severity: validate.SeverityWarning, Kind: validate.KindCoordinateOutlier, HasTrace: true, TraceIndex: 7, Message: "outlier", Context: "field=source_x"},
	})

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, r.Save(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.ElementsMatch(t, []string{"a.sgy", "b.sgy"}, sheets)

	header, err := f.GetRows("a.sgy")
	require.NoError(t, err)
	require.Equal(t, Columns, header[0])
	require.Equal(t, "", header[1][2], "file-level finding has no trace index")

	rows, err := f.GetRows("b.sgy")
	require.NoError(t, err)
	require.Equal(t, "7", rows[1][2])
	require.Equal(t, "field=source_x", rows[1][4])
}

func TestReport_SaveWithNoFindings(t *testing.T) {
	r := New()
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, r.Save(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	require.Len(t, f.GetSheetList(), 1)
}

func TestSheetName_StripsInvalidCharsAndTruncates(t *testing.T) {
	name := sheetName("some/very/long/path/that/exceeds/the/thirty-one/character/limit/file.sgy", 0)
	require.LessOrEqual(t, len(name), 31)
	require.NotContains(t, name, "/")
}
