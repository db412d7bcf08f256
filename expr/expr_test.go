package expr

import (
	"testing"

	"github.com/segytools/segyfix/errs"
	"github.com/stretchr/testify/require"
)

func eval(t *testing.T, src string, env Env) Value {
	t.Helper()
	prog, err := Parse(src)
	require.NoError(t, err)
	v, err := Eval(prog, env)
	require.NoError(t, err)
	return v
}

func TestEval_Arithmetic(t *testing.T) {
	env := MapEnv{"group_x": Int(100), "source_x": Int(40)}
	v := eval(t, "group_x - source_x", env)
	require.False(t, v.IsFloat())
	require.Equal(t, int64(60), v.Int64())
}

func TestEval_FloatPromotion(t *testing.T) {
	env := MapEnv{"a": Int(3), "b": Float(2.0)}
	v := eval(t, "a / b", env)
	require.True(t, v.IsFloat())
	require.InDelta(t, 1.5, v.Float64(), 1e-9)
}

func TestEval_IntegerDivisionTruncates(t *testing.T) {
	v := eval(t, "7 / 2", MapEnv{})
	require.False(t, v.IsFloat())
	require.Equal(t, int64(3), v.Int64())
}

func TestEval_FloorDivision(t *testing.T) {
	require.Equal(t, int64(3), eval(t, "7 // 2", MapEnv{}).Int64())
	require.Equal(t, int64(-4), eval(t, "-7 // 2", MapEnv{}).Int64())
	v := eval(t, "7.5 // 2", MapEnv{})
	require.True(t, v.IsFloat())
	require.InDelta(t, 3.0, v.Float64(), 1e-9)
}

func TestEval_UnaryPlus(t *testing.T) {
	require.Equal(t, int64(5), eval(t, "+5", MapEnv{}).Int64())
	require.Equal(t, int64(3), eval(t, "+(1+2)", MapEnv{}).Int64())
}

func TestEval_DivisionByZero(t *testing.T) {
	prog, err := Parse("1 / 0")
	require.NoError(t, err)
	_, err = Eval(prog, MapEnv{})
	require.ErrorIs(t, err, errs.ErrDivisionByZero)
}

func TestEval_Comparison(t *testing.T) {
	env := MapEnv{"elevation_scalar": Int(-100)}
	v := eval(t, "elevation_scalar < 0", env)
	require.Equal(t, int64(1), v.Int64())
}

func TestEval_LogicalShortCircuit(t *testing.T) {
	env := MapEnv{"trace_id_code": Int(1)}
	v := eval(t, "trace_id_code == 1 and trace_id_code != 2", env)
	require.Equal(t, int64(1), v.Int64())

	v = eval(t, "trace_id_code == 2 or trace_id_code == 1", env)
	require.Equal(t, int64(1), v.Int64())
}

func TestEval_NotOperator(t *testing.T) {
	v := eval(t, "not (1 == 2)", MapEnv{})
	require.Equal(t, int64(1), v.Int64())
}

func TestEval_Functions(t *testing.T) {
	require.Equal(t, int64(5), eval(t, "abs(-5)", MapEnv{}).Int64())
	require.Equal(t, int64(3), eval(t, "min(3, 7)", MapEnv{}).Int64())
	require.Equal(t, int64(7), eval(t, "max(3, 7)", MapEnv{}).Int64())
	require.Equal(t, int64(2), eval(t, "round(2.4)", MapEnv{}).Int64())
	require.Equal(t, int64(3), eval(t, "round(2.6)", MapEnv{}).Int64())
	require.Equal(t, int64(2), eval(t, "int(2.9)", MapEnv{}).Int64())
	require.InDelta(t, 2.0, eval(t, "float(2)", MapEnv{}).Float64(), 1e-9)
}

func TestProgram_Identifiers(t *testing.T) {
	prog, err := Parse("max(source_x, group_x) - trace_index + source_x")
	require.NoError(t, err)
	require.Equal(t, []string{"source_x", "group_x", "trace_index"}, prog.Identifiers())
}

func TestEval_UnknownVariable(t *testing.T) {
	prog, err := Parse("missing_field + 1")
	require.NoError(t, err)
	_, err = Eval(prog, MapEnv{})
	require.ErrorIs(t, err, errs.ErrUnknownVariable)
}

func TestParse_UnknownFunctionRejectedBeforeEval(t *testing.T) {
	_, err := Parse("bogus(1)")
	require.ErrorIs(t, err, errs.ErrUnknownFunction)
}

func TestParse_UnknownFunctionNestedInArgument(t *testing.T) {
	_, err := Parse("abs(bogus(1))")
	require.ErrorIs(t, err, errs.ErrUnknownFunction)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse("1 + ")
	require.ErrorIs(t, err, errs.ErrExprSyntax)
}

func TestParse_UnexpectedTrailingToken(t *testing.T) {
	_, err := Parse("1 + 1 2")
	require.ErrorIs(t, err, errs.ErrExprSyntax)
}

func TestEval_OperatorPrecedence(t *testing.T) {
	v := eval(t, "2 + 3 * 4", MapEnv{})
	require.Equal(t, int64(14), v.Int64())
}

func TestEval_NestedCallsAndParens(t *testing.T) {
	v := eval(t, "max(abs(-3), min(10, 4)) * 2", MapEnv{})
	require.Equal(t, int64(8), v.Int64())
}
