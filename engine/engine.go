// Package engine implements the orchestrator (component I): it executes an
// edit.Plan against one SEG-Y file end to end, in the eight-step order
// spec.md §4.9 defines, emitting ChangeEvents and validate.Findings on
// bounded channels and performing the temp-file-then-rename atomic swap for
// in-place output.
package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/segytools/segyfix/binheader"
	"github.com/segytools/segyfix/ebcdic"
	"github.com/segytools/segyfix/edit"
	"github.com/segytools/segyfix/endian"
	"github.com/segytools/segyfix/errs"
	"github.com/segytools/segyfix/header"
	"github.com/segytools/segyfix/internal/options"
	"github.com/segytools/segyfix/segyio"
	"github.com/segytools/segyfix/traceheader"
	"github.com/segytools/segyfix/validate"
)

// Summary is the completion event emitted after a run finishes or aborts
// (spec.md §4.9 step 8).
type Summary struct {
	File            string
	OutputPath      string // where the committed output landed; empty for discard/dry-run
	TraceCount      int
	ChangeCount     int
	FindingCount    int
	Aborted         bool
	AbortReason     string
	PayloadChecksum uint64 // xxhash64 over every trace's raw sample bytes, in order
}

// QueueSize is the default capacity for the Changes and Findings channels.
// The orchestrator blocks sending to a full queue rather than dropping
// events (spec.md §5's backpressure requirement).
const QueueSize = 256

// Engine executes plans and fans their events out on bounded channels.
type Engine struct {
	Changes  chan edit.ChangeEvent
	Findings chan validate.Finding

	warnedOnce   map[string]bool
	findingCount int
}

// Option configures an Engine at construction time, e.g. WithQueueSize.
type Option = options.Option[*Engine]

// WithQueueSize overrides the default channel capacity (QueueSize) for both
// the Changes and Findings queues. Useful for callers that drain eagerly and
// want a smaller backpressure buffer, or that batch many files through a
// worker pool (spec.md §5) and want to bound total queued-event memory.
func WithQueueSize(n int) Option {
	return options.New(func(e *Engine) error {
		if n <= 0 {
			return fmt.Errorf("%w: queue size must be positive", errs.ErrPlanParse)
		}
		e.Changes = make(chan edit.ChangeEvent, n)
		e.Findings = make(chan validate.Finding, n)
		return nil
	})
}

// New returns an Engine with channel capacity QueueSize, or as overridden by
// opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		Changes:    make(chan edit.ChangeEvent, QueueSize),
		Findings:   make(chan validate.Finding, QueueSize),
		warnedOnce: make(map[string]bool),
	}
	if err := options.Apply(e, opts...); err != nil {
		// Only WithQueueSize can fail, and only on a caller-supplied
		// non-positive size; fall back to the channels already
		// allocated above rather than returning a fallible Engine.
		e.Changes = make(chan edit.ChangeEvent, QueueSize)
		e.Findings = make(chan validate.Finding, QueueSize)
	}
	return e
}

// warnOnce reports whether (scope, kind) has already produced a warning
// during this run, recording it if not — "a single warning appears at most
// once per (operation, kind)" (spec.md §7).
func (e *Engine) warnOnce(scope string, kind validate.Kind) bool {
	key := scope + "/" + string(kind)
	if e.warnedOnce[key] {
		return false
	}
	e.warnedOnce[key] = true
	return true
}

func (e *Engine) emitFinding(f validate.Finding) {
	e.findingCount++
	e.Findings <- f
}

func (e *Engine) emitChange(c edit.ChangeEvent) {
	e.Changes <- c
}

// Run executes plan against the file at path. It closes e.Changes and
// e.Findings when done; the caller should be draining both before or
// concurrently with calling Run to avoid deadlocking on QueueSize backpressure.
func (e *Engine) Run(path string, plan *edit.Plan) (summary Summary, err error) {
	defer close(e.Changes)
	defer close(e.Findings)
	defer func() { summary.FindingCount = e.findingCount }()

	summary = Summary{File: path}

	if err := edit.Validate(plan); err != nil {
		return summary, err
	}

	// CSV sources and compiled expressions are cached per-plan (spec.md
	// §5): reset both before streaming so an earlier Run in this process
	// can't leak a stale CsvSource or expr.Program into this one, and
	// again on the way out so nothing from this plan lingers either.
	traceheader.ResetRegistry()
	traceheader.ResetExprCache()
	defer traceheader.ResetRegistry()
	defer traceheader.ResetExprCache()

	reader, err := segyio.Open(path)
	if err != nil {
		return summary, fmt.Errorf("%w: %v", errs.ErrWriteError, err)
	}
	defer reader.Close()

	textual, err := reader.ReadTextual()
	if err != nil {
		return summary, err
	}
	binaryRaw, err := reader.ReadBinaryHeader()
	if err != nil {
		return summary, err
	}
	layout := reader.Layout()

	extended := make([][]byte, layout.ExtendedHeaderCount)
	for i := range extended {
		extended[i], err = reader.ReadExtended()
		if err != nil {
			return summary, err
		}
	}

	aborted, reason, err := e.runValidations(plan, path, layout)
	if err != nil {
		return summary, err
	}
	if aborted && !plan.DryRun {
		summary.Aborted = true
		summary.AbortReason = reason
		return summary, nil
	}

	textHeader, warnings, err := ebcdic.DecodeHeader(textual)
	if err != nil {
		return summary, err
	}
	e.emitEbcdicWarnings(warnings)

	binView, err := header.NewView(binaryRaw, header.BinaryFields, endian.GetBigEndianEngine())
	if err != nil {
		return summary, err
	}

	var ebcdicEvents, binaryEvents []edit.ChangeEvent
	var traceOps []*edit.TraceHeaderEdit
	for _, op := range plan.Edits {
		switch op.Kind {
		case edit.KindEbcdic:
			evs, err := applyEbcdicOp(textHeader, op.Ebcdic)
			if err != nil {
				return summary, err
			}
			ebcdicEvents = append(ebcdicEvents, evs...)
		case edit.KindBinaryHeader:
			evs, err := binheader.Apply(binView, op.Binary.Fields)
			if err != nil {
				return summary, err
			}
			binaryEvents = append(binaryEvents, evs...)
		case edit.KindTraceHeader:
			traceOps = append(traceOps, op.Trace)
		}
	}
	for _, ev := range ebcdicEvents {
		e.emitChange(ev)
	}
	for _, ev := range binaryEvents {
		e.emitChange(ev)
	}
	summary.ChangeCount += len(ebcdicEvents) + len(binaryEvents)

	encodedText, textWarnings := textHeader.Bytes()
	e.emitEbcdicWarnings(textWarnings)

	outFile, outPath, finalize, err := openOutput(path, plan)
	if err != nil {
		return summary, err
	}
	writer := segyio.NewWriter(outFile)
	writer.SetPayloadSize(layout.SamplesPerTrace * layout.SampleWidth)

	runErr := e.stream(reader, writer, binView.Bytes(), encodedText, extended, traceOps, plan, &summary)
	if runErr != nil {
		writer.Close()
		finalize(false)
		return summary, runErr
	}
	if err := writer.Close(); err != nil {
		finalize(false)
		return summary, err
	}
	if err := finalize(true); err != nil {
		return summary, err
	}
	summary.OutputPath = outPath
	return summary, nil
}

func (e *Engine) emitEbcdicWarnings(warnings []ebcdic.Warning) {
	for _, w := range warnings {
		if !e.warnOnce("ebcdic", validate.Kind(w.Kind)) {
			continue
		}
		e.emitFinding(validate.Finding{
			Severity: validate.SeverityWarning,
			Kind:     validate.Kind(w.Kind),
			Message:  fmt.Sprintf("textual header line %d: %s", w.Line, w.Kind),
		})
	}
}

func applyEbcdicOp(h *ebcdic.TextualHeader, e *edit.EbcdicEdit) ([]edit.ChangeEvent, error) {
	switch e.Mode {
	case edit.EbcdicModeLines:
		events, _, err := h.ApplyLines(e.Lines)
		return events, err
	case edit.EbcdicModeTemplate:
		events, _, err := h.ApplyTemplate(e.Template)
		return events, err
	default:
		return nil, fmt.Errorf("%w: unknown ebcdic mode %q", errs.ErrPlanParse, e.Mode)
	}
}

func (e *Engine) runValidations(plan *edit.Plan, path string, layout segyio.Layout) (aborted bool, reason string, err error) {
	cfg := plan.Validations
	hasError := false

	if cfg.CheckFileStructure {
		info, statErr := os.Stat(path)
		if statErr != nil {
			return false, "", statErr
		}
		findings := validate.CheckFileStructure(info.Size(), layout.ExtendedHeaderCount, layout.FormatCode, layout.SamplesPerTrace)
		for _, f := range findings {
			e.emitFinding(f)
			if f.Severity == validate.SeverityError {
				hasError = true
			}
		}
	}

	if hasError {
		aborted = true
		reason = "file structure validation failed"
	}
	return aborted, reason, nil
}

// stream performs spec.md §4.9 step 6: write the (possibly edited) textual,
// binary, and extended headers, then the per-trace header/payload pairs.
func (e *Engine) stream(
	reader *segyio.Reader,
	writer *segyio.Writer,
	binaryRaw []byte,
	textualRaw []byte,
	extended [][]byte,
	traceOps []*edit.TraceHeaderEdit,
	plan *edit.Plan,
	summary *Summary,
) error {
	if err := writer.WriteTextual(textualRaw); err != nil {
		return err
	}
	if err := writer.WriteBinaryHeader(binaryRaw); err != nil {
		return err
	}
	for _, ext := range extended {
		if err := writer.WriteExtended(ext); err != nil {
			return err
		}
	}

	outliers := validate.NewOutlierCollector()
	runOutliers := plan.Validations.CheckCoordinateOutliers
	runRange := plan.Validations.CheckCoordinateRange

	hasher := xxhash.New()
	traceIndex := 0
	for reader.Next() {
		traceData := append([]byte(nil), reader.Header()...)
		view, err := header.NewView(traceData, header.TraceFields, endian.GetBigEndianEngine())
		if err != nil {
			return err
		}

		for i, op := range traceOps {
			events, applyErr := traceheader.Apply(view, traceIndex, op)
			if applyErr != nil {
				if recoverErr := e.recoverTraceError(i, applyErr, plan.Recovery()); recoverErr != nil {
					return recoverErr
				}
				continue
			}
			for _, ev := range events {
				e.emitChange(ev)
			}
			summary.ChangeCount += len(events)
		}

		if runRange {
			findings, err := validate.CheckCoordinateRange(traceIndex, view, plan.Validations)
			if err != nil {
				return err
			}
			for _, f := range findings {
				e.emitFinding(f)
			}
		}
		if runOutliers {
			if err := outliers.Add(traceIndex, view); err != nil {
				return err
			}
		}

		payload := reader.Payload()
		hasher.Write(payload)
		if err := writer.WriteTrace(traceData, payload); err != nil {
			return err
		}

		traceIndex++
		summary.TraceCount++
	}
	if err := reader.Err(); err != nil {
		return err
	}

	if runOutliers {
		k := plan.Validations.OutlierK
		for _, f := range outliers.Finalize(k) {
			e.emitFinding(f)
		}
	}

	summary.PayloadChecksum = hasher.Sum64()
	return nil
}

func (e *Engine) recoverTraceError(opIndex int, err error, mode edit.RecoveryMode) error {
	switch mode {
	case edit.RecoverySkip:
		return nil
	case edit.RecoveryWarn:
		scope := fmt.Sprintf("trace_op_%d", opIndex)
		if e.warnOnce(scope, validate.Kind("trace_edit_error")) {
			e.emitFinding(validate.Finding{
				Severity: validate.SeverityWarning,
				Kind:     validate.Kind("trace_edit_error"),
				Message:  err.Error(),
			})
		}
		return nil
	default:
		return err
	}
}

// openOutput creates the temp file this run writes through, plus a finalize
// closure that either renames it into place (commit=true) or removes it
// (commit=false). in_place and separate_folder both rename within the
// target directory so the swap is atomic on POSIX and Windows alike;
// discard always removes (spec.md §4.9, §9 "Atomic in-place swap").
func openOutput(path string, plan *edit.Plan) (f *os.File, outPath string, finalize func(commit bool) error, err error) {
	mode := plan.OutputMode
	if plan.DryRun {
		mode = edit.OutputDiscard
	}

	switch mode {
	case edit.OutputInPlace:
		dir := filepath.Dir(path)
		tmp, err := os.CreateTemp(dir, ".segyfix-*.tmp")
		if err != nil {
			return nil, "", nil, err
		}
		return tmp, path, func(commit bool) error {
			if !commit {
				os.Remove(tmp.Name())
				return nil
			}
			return os.Rename(tmp.Name(), path)
		}, nil

	case edit.OutputSeparateFolder:
		if plan.OutputDir == "" {
			return nil, "", nil, fmt.Errorf("%w: separate_folder output requires output_dir", errs.ErrPlanParse)
		}
		if err := os.MkdirAll(plan.OutputDir, 0o755); err != nil {
			return nil, "", nil, err
		}
		target := filepath.Join(plan.OutputDir, filepath.Base(path))
		tmp, err := os.CreateTemp(plan.OutputDir, ".segyfix-*.tmp")
		if err != nil {
			return nil, "", nil, err
		}
		return tmp, target, func(commit bool) error {
			if !commit {
				os.Remove(tmp.Name())
				return nil
			}
			return os.Rename(tmp.Name(), target)
		}, nil

	default: // discard
		tmp, err := os.CreateTemp("", "segyfix-discard-*.tmp")
		if err != nil {
			return nil, "", nil, err
		}
		return tmp, "", func(bool) error {
			os.Remove(tmp.Name())
			return nil
		}, nil
	}
}
