package traceheader

import (
	"github.com/segytools/segyfix/expr"
	"github.com/segytools/segyfix/header"
)

// viewEnv exposes a trace-header snapshot to the expression evaluator. It is
// the fixed, closed variable environment spec.md's Design Note 1 requires:
// every name resolves to a named header field or the trace_index
// pseudo-variable, nothing else is reachable.
type viewEnv struct {
	snapshot   *header.View
	traceIndex int
}

func (e viewEnv) Lookup(name string) (expr.Value, error) {
	if name == "trace_index" {
		return expr.Int(int64(e.traceIndex)), nil
	}
	v, err := e.snapshot.Get(name)
	if err != nil {
		return expr.Value{}, err
	}
	return expr.Int(v), nil
}
