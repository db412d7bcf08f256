package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/segytools/segyfix/ebcdic"
	"github.com/segytools/segyfix/endian"
	"github.com/segytools/segyfix/header"
	"github.com/segytools/segyfix/segyio"
	"github.com/stretchr/testify/require"
)

// writeFixture builds a minimal valid SEG-Y file for exercising the CLI
// end to end, mirroring engine's test fixture.
func writeFixture(t *testing.T, traceCount int) string {
	t.Helper()

	binary := make([]byte, header.BinaryHeaderSize)
	bv, err := header.NewView(binary, header.BinaryFields, endian.GetBigEndianEngine())
	require.NoError(t, err)
	require.NoError(t, bv.Set("samples_per_trace", 4))
	require.NoError(t, bv.Set("format_code", 5))
	require.NoError(t, bv.Set("sample_interval", 4000))

	path := filepath.Join(t.TempDir(), "fixture.sgy")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := segyio.NewWriter(f)

	textual := make([]byte, ebcdic.Size)
	for i := range textual {
		textual[i] = 0x40
	}
	require.NoError(t, w.WriteTextual(textual))
	require.NoError(t, w.WriteBinaryHeader(binary))

	for i := 0; i < traceCount; i++ {
		th := make([]byte, header.TraceHeaderSize)
		tv, err := header.NewView(th, header.TraceFields, endian.GetBigEndianEngine())
		require.NoError(t, err)
		require.NoError(t, tv.Set("trace_sequence_line", int64(i+1)))
		require.NoError(t, tv.Set("trace_id_code", 1))
		require.NoError(t, tv.Set("coordinate_scalar", 1))
		require.NoError(t, tv.Set("source_x", int64(i*100)))
		require.NoError(t, tv.Set("group_x", int64(i*100+10)))

		payload := make([]byte, 4*4)
		require.NoError(t, w.WriteTrace(th, payload))
	}
	require.NoError(t, w.Close())
	return path
}

func TestRun_GUIStub_ReturnsInternalError(t *testing.T) {
	require.Equal(t, exitInternal, run([]string{"gui"}))
}

func TestRun_EbcdicNoMode_ReturnsUsageError(t *testing.T) {
	path := writeFixture(t, 1)
	require.Equal(t, exitUsageOrPlan, run([]string{"ebcdic", path}))
}

func TestRun_EbcdicShow_Succeeds(t *testing.T) {
	path := writeFixture(t, 1)
	require.Equal(t, exitSuccess, run([]string{"ebcdic", path, "--show"}))
}

func TestRun_EbcdicSetLine_Succeeds(t *testing.T) {
	path := writeFixture(t, 1)
	require.Equal(t, exitSuccess, run([]string{"ebcdic", path, "--set-line", "0=hello"}))
}

func TestRun_EbcdicSetLine_MalformedEntry_ReturnsUsageError(t *testing.T) {
	path := writeFixture(t, 1)
	require.Equal(t, exitUsageOrPlan, run([]string{"ebcdic", path, "--set-line", "nope"}))
}

func TestRun_ValidateCleanFile_Succeeds(t *testing.T) {
	path := writeFixture(t, 5)
	require.Equal(t, exitSuccess, run([]string{"validate", path}))
}

func TestRun_ValidateMissingFile_ReturnsNonZero(t *testing.T) {
	code := run([]string{"validate", filepath.Join(t.TempDir(), "missing.sgy")})
	require.NotEqual(t, exitSuccess, code)
}

func TestRun_ValidateOutOfRangeBounds_ReturnsValidationErrors(t *testing.T) {
	path := writeFixture(t, 5)
	require.Equal(t, exitValidationErrors, run([]string{"validate", path, "--bounds", "0,50,0,50"}))
}

func TestRun_ValidateWritesReport(t *testing.T) {
	path := writeFixture(t, 5)
	reportPath := filepath.Join(t.TempDir(), "report.xlsx")
	require.Equal(t, exitSuccess, run([]string{"validate", path, "-o", reportPath}))
	_, err := os.Stat(reportPath)
	require.NoError(t, err)
}

func TestRun_EditMissingPlanFlag_ReturnsUsageError(t *testing.T) {
	path := writeFixture(t, 1)
	code := run([]string{"edit", path})
	require.Equal(t, exitUsageOrPlan, code)
}

func TestRun_EditDryRun_LeavesFileUntouched(t *testing.T) {
	path := writeFixture(t, 3)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	planPath := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(planPath, []byte(`
dry_run: true
edits:
  - type: ebcdic
    ebcdic:
      mode: lines
      lines:
        0: "hello"
`), 0o644))

	code := run([]string{"edit", path, "-c", planPath, "--dry-run"})
	require.Equal(t, exitSuccess, code)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)

	_, err = os.Stat(path + ".changelog.csv")
	require.NoError(t, err)
}

func TestRun_EditBadPlan_ReturnsUsageError(t *testing.T) {
	path := writeFixture(t, 1)
	planPath := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(planPath, []byte("edits:\n  - type: ebcdic\n    nonsense: true\n"), 0o644))

	code := run([]string{"edit", path, "-c", planPath})
	require.Equal(t, exitUsageOrPlan, code)
}
