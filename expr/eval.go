package expr

import (
	"fmt"
	"math"

	"github.com/segytools/segyfix/errs"
)

func unknownVariable(name string) error {
	return fmt.Errorf("%w: %s", errs.ErrUnknownVariable, name)
}

func unknownFunction(name string) error {
	return fmt.Errorf("%w: %s", errs.ErrUnknownFunction, name)
}

// Eval evaluates prog against env, returning the fixed set of variables and
// functions the grammar defines — nothing more. There is no way for an
// expression to reach outside this call: no reflection, no index access, no
// attribute access, and env is the only source of external data.
func Eval(prog *Program, env Env) (Value, error) {
	return evalNode(prog.root, env)
}

func evalNode(n node, env Env) (Value, error) {
	switch t := n.(type) {
	case numberLit:
		if t.isInt {
			return Int(int64(t.value)), nil
		}
		return Float(t.value), nil

	case identLit:
		v, err := env.Lookup(t.name)
		if err != nil {
			return Value{}, err
		}
		return v, nil

	case unaryExpr:
		x, err := evalNode(t.x, env)
		if err != nil {
			return Value{}, err
		}
		switch t.op {
		case "-":
			if x.IsFloat() {
				return Float(-x.Float64()), nil
			}
			return Int(-x.Int64()), nil
		case "+":
			return x, nil
		case "not":
			return Bool(!x.Truthy()), nil
		}
		panic("expr: unknown unary op " + t.op)

	case binaryExpr:
		return evalBinary(t, env)

	case callExpr:
		return evalCall(t, env)
	}
	panic(fmt.Sprintf("expr: unknown node type %T", n))
}

func evalBinary(t binaryExpr, env Env) (Value, error) {
	if t.op == "and" {
		x, err := evalNode(t.x, env)
		if err != nil {
			return Value{}, err
		}
		if !x.Truthy() {
			return Bool(false), nil
		}
		y, err := evalNode(t.y, env)
		if err != nil {
			return Value{}, err
		}
		return Bool(y.Truthy()), nil
	}
	if t.op == "or" {
		x, err := evalNode(t.x, env)
		if err != nil {
			return Value{}, err
		}
		if x.Truthy() {
			return Bool(true), nil
		}
		y, err := evalNode(t.y, env)
		if err != nil {
			return Value{}, err
		}
		return Bool(y.Truthy()), nil
	}

	x, err := evalNode(t.x, env)
	if err != nil {
		return Value{}, err
	}
	y, err := evalNode(t.y, env)
	if err != nil {
		return Value{}, err
	}

	switch t.op {
	case "==", "!=", "<", "<=", ">", ">=":
		return compare(t.op, x, y)
	case "+", "-", "*", "/", "%", "//":
		return arithmetic(t.op, x, y)
	}
	panic("expr: unknown binary op " + t.op)
}

func compare(op string, x, y Value) (Value, error) {
	if x.IsFloat() || y.IsFloat() {
		a, b := x.Float64(), y.Float64()
		switch op {
		case "==":
			return Bool(a == b), nil
		case "!=":
			return Bool(a != b), nil
		case "<":
			return Bool(a < b), nil
		case "<=":
			return Bool(a <= b), nil
		case ">":
			return Bool(a > b), nil
		case ">=":
			return Bool(a >= b), nil
		}
	}
	a, b := x.Int64(), y.Int64()
	switch op {
	case "==":
		return Bool(a == b), nil
	case "!=":
		return Bool(a != b), nil
	case "<":
		return Bool(a < b), nil
	case "<=":
		return Bool(a <= b), nil
	case ">":
		return Bool(a > b), nil
	case ">=":
		return Bool(a >= b), nil
	}
	panic("expr: unknown comparison op " + op)
}

func arithmetic(op string, x, y Value) (Value, error) {
	if x.IsFloat() || y.IsFloat() {
		a, b := x.Float64(), y.Float64()
		switch op {
		case "+":
			return Float(a + b), nil
		case "-":
			return Float(a - b), nil
		case "*":
			return Float(a * b), nil
		case "/":
			if b == 0 {
				return Value{}, errs.ErrDivisionByZero
			}
			return Float(a / b), nil
		case "//":
			if b == 0 {
				return Value{}, errs.ErrDivisionByZero
			}
			return Float(math.Floor(a / b)), nil
		case "%":
			if b == 0 {
				return Value{}, errs.ErrDivisionByZero
			}
			return Float(math.Mod(a, b)), nil
		}
	}
	a, b := x.Int64(), y.Int64()
	switch op {
	case "+":
		return Int(a + b), nil
	case "-":
		return Int(a - b), nil
	case "*":
		return Int(a * b), nil
	case "/":
		if b == 0 {
			return Value{}, errs.ErrDivisionByZero
		}
		return Int(a / b), nil
	case "//":
		if b == 0 {
			return Value{}, errs.ErrDivisionByZero
		}
		q := a / b
		if (a%b != 0) && ((a < 0) != (b < 0)) {
			q--
		}
		return Int(q), nil
	case "%":
		if b == 0 {
			return Value{}, errs.ErrDivisionByZero
		}
		return Int(a % b), nil
	}
	panic("expr: unknown arithmetic op " + op)
}

func evalCall(t callExpr, env Env) (Value, error) {
	args := make([]Value, len(t.args))
	for i, a := range t.args {
		v, err := evalNode(a, env)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}

	switch t.name {
	case "abs":
		if err := arity(t.name, args, 1); err != nil {
			return Value{}, err
		}
		x := args[0]
		if x.IsFloat() {
			return Float(math.Abs(x.Float64())), nil
		}
		v := x.Int64()
		if v < 0 {
			v = -v
		}
		return Int(v), nil

	case "int":
		if err := arity(t.name, args, 1); err != nil {
			return Value{}, err
		}
		return Int(args[0].Int64()), nil

	case "float":
		if err := arity(t.name, args, 1); err != nil {
			return Value{}, err
		}
		return Float(args[0].Float64()), nil

	case "round":
		if err := arity(t.name, args, 1); err != nil {
			return Value{}, err
		}
		return Int(int64(math.Round(args[0].Float64()))), nil

	case "min":
		if err := arity(t.name, args, 2); err != nil {
			return Value{}, err
		}
		return pick(args[0], args[1], true), nil

	case "max":
		if err := arity(t.name, args, 2); err != nil {
			return Value{}, err
		}
		return pick(args[0], args[1], false), nil
	}

	return Value{}, unknownFunction(t.name)
}

func arity(name string, args []Value, want int) error {
	if len(args) != want {
		return fmt.Errorf("%w: %s expects %d argument(s), got %d", errs.ErrExprSyntax, name, want, len(args))
	}
	return nil
}

func pick(a, b Value, wantMin bool) Value {
	less := a.Float64() < b.Float64()
	if (wantMin && less) || (!wantMin && !less) {
		return a
	}
	return b
}
