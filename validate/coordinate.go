package validate

import (
	"fmt"
	"sort"

	"github.com/segytools/segyfix/edit"
	"github.com/segytools/segyfix/header"
)

// ScaleCoordinate applies SEG-Y's coordinate-scalar convention: a positive
// scalar multiplies the raw integer coordinate, a negative scalar divides
// it, and zero is treated as 1 with a warning (spec.md §4.8, Design note in
// §9: "positive multiplies, negative divides the stored coordinate").
func ScaleCoordinate(raw int64, scalar int64) (value float64, zeroScalarWarning bool) {
	switch {
	case scalar == 0:
		return float64(raw), true
	case scalar > 0:
		return float64(raw) * float64(scalar), false
	default:
		return float64(raw) / float64(-scalar), false
	}
}

// CheckCoordinateRange implements check_coordinate_range for one trace: it
// reads (source_x, source_y, group_x, group_y, cdp_x, cdp_y) from view,
// scales each by coordinate_scalar, and flags any that fall outside the
// configured bounds.
func CheckCoordinateRange(traceIndex int, view *header.View, cfg edit.ValidationConfig) ([]Finding, error) {
	scalar, err := view.Get("coordinate_scalar")
	if err != nil {
		return nil, err
	}

	var findings []Finding
	warnedScalar := false
	for _, name := range header.CoordinateFieldNames {
		raw, err := view.Get(name)
		if err != nil {
			return findings, err
		}
		value, zeroWarn := ScaleCoordinate(raw, scalar)
		if zeroWarn && !warnedScalar {
			findings = append(findings, traceFinding(SeverityWarning, KindZeroScalar, traceIndex,
				"coordinate_scalar is 0, treated as 1"))
			warnedScalar = true
		}

		min, max := bounds(name, cfg)
		if value < float64(min) || value > float64(max) {
			findings = append(findings, traceFinding(SeverityError, KindCoordinateOutOfRange, traceIndex,
				"%s=%.2f is outside configured range [%d,%d]", name, value, min, max))
		}
	}
	return findings, nil
}

func bounds(field string, cfg edit.ValidationConfig) (min, max int64) {
	switch field {
	case "source_x", "group_x", "cdp_x":
		return cfg.CoordMinX, cfg.CoordMaxX
	default:
		return cfg.CoordMinY, cfg.CoordMaxY
	}
}

// OutlierCollector accumulates each trace's scaled coordinates across a
// streaming pass so check_coordinate_outliers can compute a median and
// median-absolute-deviation per coordinate once every trace has been seen,
// then flag traces farther than K·MAD from the median (spec.md §4.8).
type OutlierCollector struct {
	traceIndex []int
	values     map[string][]float64
}

// NewOutlierCollector returns a ready-to-use collector.
func NewOutlierCollector() *OutlierCollector {
	c := &OutlierCollector{values: make(map[string][]float64, len(header.CoordinateFieldNames))}
	for _, name := range header.CoordinateFieldNames {
		c.values[name] = nil
	}
	return c
}

// Add records one trace's scaled coordinates.
func (c *OutlierCollector) Add(traceIndex int, view *header.View) error {
	scalar, err := view.Get("coordinate_scalar")
	if err != nil {
		return err
	}
	c.traceIndex = append(c.traceIndex, traceIndex)
	for _, name := range header.CoordinateFieldNames {
		raw, err := view.Get(name)
		if err != nil {
			return err
		}
		value, _ := ScaleCoordinate(raw, scalar)
		c.values[name] = append(c.values[name], value)
	}
	return nil
}

// Finalize computes median and MAD per coordinate and returns one Finding
// per (trace, coordinate) pair farther than k·MAD from the median. k<=0
// defaults to 10.
func (c *OutlierCollector) Finalize(k float64) []Finding {
	if k <= 0 {
		k = 10
	}
	if len(c.traceIndex) == 0 {
		return nil
	}

	var findings []Finding
	for _, name := range header.CoordinateFieldNames {
		vals := c.values[name]
		med := median(vals)
		mad := medianAbsoluteDeviation(vals, med)
		if mad == 0 {
			continue
		}
		threshold := k * mad
		for i, v := range vals {
			if absFloat(v-med) > threshold {
				f := traceFinding(SeverityWarning, KindCoordinateOutlier, c.traceIndex[i],
					"%s=%.2f is %.1f MAD from the median %.2f (threshold %.1f)", name, v, absFloat(v-med)/mad, med, k)
				f.Context = fmt.Sprintf("field=%s median=%.2f mad=%.2f k=%.1f", name, med, mad, k)
				findings = append(findings, f)
			}
		}
	}
	return findings
}

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func medianAbsoluteDeviation(vals []float64, med float64) float64 {
	deviations := make([]float64, len(vals))
	for i, v := range vals {
		deviations[i] = absFloat(v - med)
	}
	return median(deviations)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
