package edit

import (
	"fmt"

	"github.com/segytools/segyfix/errs"
	"github.com/segytools/segyfix/expr"
	"github.com/segytools/segyfix/header"
)

// Validate statically checks every operation in p before any trace is read:
// every named field resolves in its table, every expression (condition or
// field value) parses and references only names in the trace-header field
// table plus trace_index, and every tagged union is fully populated. This
// is what makes spec.md §8's expression safety property true in full: a
// syntax error, an unknown function, or an unknown variable all fail here,
// up front, instead of surfacing mid-stream after the reader and output
// temp file already exist.
func Validate(p *Plan) error {
	for i, op := range p.Edits {
		if err := validateOperation(op); err != nil {
			return fmt.Errorf("edit: operation %d: %w", i, err)
		}
	}
	return nil
}

func validateOperation(op Operation) error {
	switch op.Kind {
	case KindEbcdic:
		return validateEbcdic(op.Ebcdic)
	case KindBinaryHeader:
		return validateBinaryHeader(op.Binary)
	case KindTraceHeader:
		return validateTraceHeader(op.Trace)
	default:
		return fmt.Errorf("%w: unknown operation kind %q", errs.ErrPlanParse, op.Kind)
	}
}

func validateEbcdic(e *EbcdicEdit) error {
	if e == nil {
		return fmt.Errorf("%w: ebcdic operation missing its edit payload", errs.ErrPlanParse)
	}
	switch e.Mode {
	case EbcdicModeLines:
		for line := range e.Lines {
			if line < 0 || line >= 40 {
				return fmt.Errorf("%w: ebcdic line index %d out of range [0,40)", errs.ErrPlanParse, line)
			}
		}
	case EbcdicModeTemplate:
		if len(e.Template) != 40 {
			return fmt.Errorf("%w: ebcdic template must have exactly 40 lines, got %d", errs.ErrPlanParse, len(e.Template))
		}
	default:
		return fmt.Errorf("%w: unknown ebcdic mode %q", errs.ErrPlanParse, e.Mode)
	}
	return nil
}

func validateBinaryHeader(b *BinaryHeaderEdit) error {
	if b == nil {
		return fmt.Errorf("%w: binary_header operation missing its edit payload", errs.ErrPlanParse)
	}
	for _, f := range b.Fields {
		if f.UsesCustomOffset() {
			if _, err := header.BinaryFields.Custom(f.Offset, f.Width, f.Signed); err != nil {
				return err
			}
			continue
		}
		if _, err := header.BinaryFields.Lookup(f.Name); err != nil {
			return err
		}
	}
	return nil
}

func validateTraceHeader(t *TraceHeaderEdit) error {
	if t == nil {
		return fmt.Errorf("%w: trace_header operation missing its edit payload", errs.ErrPlanParse)
	}
	if t.Condition != "" {
		if err := validateExpression(t.Condition, "condition"); err != nil {
			return err
		}
	}
	for _, f := range t.Fields {
		if _, err := header.TraceFields.Lookup(f.Name); err != nil {
			return err
		}
		switch f.Kind {
		case TraceFieldConstant:
			// nothing further to check
		case TraceFieldExpression:
			if err := validateExpression(f.Expr, fmt.Sprintf("field %q", f.Name)); err != nil {
				return err
			}
		case TraceFieldCopyFrom:
			if _, err := header.TraceFields.Lookup(f.SourceField); err != nil {
				return err
			}
		case TraceFieldCsvColumn:
			if f.CsvFile == "" || f.CsvColumn == "" {
				return fmt.Errorf("%w: csv_column edit on %q requires csv_file and csv_column", errs.ErrPlanParse, f.Name)
			}
			if f.KeyColumn != "" {
				if _, err := header.TraceFields.Lookup(f.KeyColumn); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("%w: unknown trace field edit kind %q", errs.ErrPlanParse, f.Kind)
		}
	}
	return nil
}

// validateExpression parses src and rejects it unless every variable it
// references is either trace_index or a name in header.TraceFields — the
// closed environment traceheader.Apply actually evaluates against. context
// labels the error (e.g. "condition" or `field "cdp_x"`).
func validateExpression(src, context string) error {
	prog, err := expr.Parse(src)
	if err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	for _, name := range prog.Identifiers() {
		if name == "trace_index" {
			continue
		}
		if !header.TraceFields.Has(name) {
			return fmt.Errorf("%s: %w: %s", context, errs.ErrUnknownVariable, name)
		}
	}
	return nil
}
