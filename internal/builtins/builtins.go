// Package builtins registers spec.md §4.5/§6's normative built-in function
// surface: one BuiltinFunction per name, each a thin wrapper over the
// internal/ops dispatch tables where an operator of the same name already
// exists, plus the handful of pure numeric/IO helpers §6 names that have no
// operator-table counterpart (print, max, min, pow, round, floor, ceil,
// sqrt, abs, signum, is_zero).
//
// Grounded on the registration-at-startup pattern of github.com/cwbudde/go-dws
// internal/interp/external_functions.go (one RegisterFunction call per
// builtin, closing over the interpreter's stdout for print-like builtins).
package builtins

import (
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/naftah-lang/naftah/internal/errors"
	"github.com/naftah-lang/naftah/internal/function"
	"github.com/naftah-lang/naftah/internal/ops"
	"github.com/naftah-lang/naftah/internal/value"
)

// Register installs the full §6 built-in surface into reg. stdout is the
// stream `print` writes to; tokens controls how None/NaN render in
// `print`'s output (spec.md §4.6's host-configurable tokens).
func Register(reg *function.Registry, stdout io.Writer, tokens value.Tokens) {
	reg.RegisterBuiltin(&function.BuiltinFunction{
		Descriptor:  function.Descriptor{Name: "print", Params: params1("value")},
		Description: "Writes the formatted representation of value, followed by a newline.",
		Usage:       "print(value)",
		Invoke: func(args []value.Value) (value.Value, error) {
			v, err := arg(args, 0, "print")
			if err != nil {
				return nil, err
			}
			fmt.Fprintln(stdout, value.FormatWithTokens(v, tokens))
			return value.None, nil
		},
	})

	registerBinaryOp(reg, "add", ops.Add)
	registerBinaryOp(reg, "subtract", ops.Subtract)
	registerBinaryOp(reg, "multiply", ops.Multiply)
	registerBinaryOp(reg, "divide", ops.Divide)
	registerBinaryOp(reg, "modulo", ops.Modulo)
	registerBinaryOp(reg, "equals", ops.Equals)
	registerBinaryOp(reg, "not_equals", ops.NotEquals)
	registerBinaryOp(reg, "less_than", ops.LessThan)
	registerBinaryOp(reg, "less_than_equals", ops.LessThanEquals)
	registerBinaryOp(reg, "greater_than", ops.GreaterThan)
	registerBinaryOp(reg, "greater_than_equals", ops.GreaterThanEquals)
	registerBinaryOp(reg, "bit_and", ops.BitAnd)
	registerBinaryOp(reg, "bit_or", ops.BitOr)
	registerBinaryOp(reg, "bit_xor", ops.BitXor)
	registerBinaryOp(reg, "shift_left", ops.ShiftLeft)
	registerBinaryOp(reg, "shift_right", ops.ShiftRight)
	registerBinaryOp(reg, "unsigned_shift_right", ops.UnsignedShiftRight)

	registerUnaryOp(reg, "negate", ops.Negate)
	registerUnaryOp(reg, "bit_not", ops.BitNot)

	// The pre/post increment/decrement builtins are the pure-function
	// equivalent of §4.2's mutating operators: called as an ordinary
	// function (not fused into an assignment target), they return the
	// stepped value without writing back to any binding.
	registerStep(reg, "pre_increment", ops.Add)
	registerStep(reg, "post_increment", ops.Add)
	registerStep(reg, "pre_decrement", ops.Subtract)
	registerStep(reg, "post_decrement", ops.Subtract)

	reg.RegisterBuiltin(&function.BuiltinFunction{
		Descriptor:  function.Descriptor{Name: "max", Params: params2("a", "b")},
		Description: "Returns the larger of two values under §4.2's ordering.",
		Usage:       "max(a, b)",
		Invoke:      minMax(false),
	})
	reg.RegisterBuiltin(&function.BuiltinFunction{
		Descriptor:  function.Descriptor{Name: "min", Params: params2("a", "b")},
		Description: "Returns the smaller of two values under §4.2's ordering.",
		Usage:       "min(a, b)",
		Invoke:      minMax(true),
	})

	reg.RegisterBuiltin(&function.BuiltinFunction{
		Descriptor:  function.Descriptor{Name: "pow", Params: params2("base", "exponent")},
		Description: "Raises base to exponent.",
		Usage:       "pow(base, exponent)",
		Invoke:      builtinPow,
	})

	reg.RegisterBuiltin(numericUnary("round", "Rounds a float to the nearest integer value (half away from zero).", math.Round))
	reg.RegisterBuiltin(numericUnary("floor", "Rounds a float down toward negative infinity.", math.Floor))
	reg.RegisterBuiltin(numericUnary("ceil", "Rounds a float up toward positive infinity.", math.Ceil))
	reg.RegisterBuiltin(numericUnary("sqrt", "Returns the square root of a number.", math.Sqrt))

	reg.RegisterBuiltin(&function.BuiltinFunction{
		Descriptor:  function.Descriptor{Name: "abs", Params: params1("value")},
		Description: "Returns the absolute value of a number.",
		Usage:       "abs(value)",
		Invoke:      builtinAbs,
	})
	reg.RegisterBuiltin(&function.BuiltinFunction{
		Descriptor:  function.Descriptor{Name: "signum", Params: params1("value")},
		Description: "Returns -1, 0, or 1 according to the sign of value.",
		Usage:       "signum(value)",
		Invoke:      builtinSignum,
	})
	reg.RegisterBuiltin(&function.BuiltinFunction{
		Descriptor:  function.Descriptor{Name: "is_zero", Params: params1("value")},
		Description: "Reports whether value is numerically zero.",
		Usage:       "is_zero(value)",
		Invoke:      builtinIsZero,
	})
}

func params1(name string) []function.Param { return []function.Param{{Name: name}} }
func params2(a, b string) []function.Param { return []function.Param{{Name: a}, {Name: b}} }

func arg(args []value.Value, i int, name string) (value.Value, error) {
	if i >= len(args) {
		return nil, errors.NewArgumentCountMismatch(name, i+1, len(args))
	}
	return args[i], nil
}

func registerBinaryOp(reg *function.Registry, name string, op ops.Operator) {
	reg.RegisterBuiltin(&function.BuiltinFunction{
		Descriptor:  function.Descriptor{Name: name, Params: params2("a", "b")},
		Description: "The " + name + " operator (spec §4.2) exposed as a callable.",
		Usage:       name + "(a, b)",
		Invoke: func(args []value.Value) (value.Value, error) {
			a, err := arg(args, 0, name)
			if err != nil {
				return nil, err
			}
			b, err := arg(args, 1, name)
			if err != nil {
				return nil, err
			}
			return ops.Binary(op, a, b)
		},
	})
}

func registerUnaryOp(reg *function.Registry, name string, op ops.Operator) {
	reg.RegisterBuiltin(&function.BuiltinFunction{
		Descriptor:  function.Descriptor{Name: name, Params: params1("value")},
		Description: "The " + name + " operator (spec §4.2) exposed as a callable.",
		Usage:       name + "(value)",
		Invoke: func(args []value.Value) (value.Value, error) {
			v, err := arg(args, 0, name)
			if err != nil {
				return nil, err
			}
			return ops.Unary(op, v)
		},
	})
}

func registerStep(reg *function.Registry, name string, op ops.Operator) {
	reg.RegisterBuiltin(&function.BuiltinFunction{
		Descriptor:  function.Descriptor{Name: name, Params: params1("value")},
		Description: "The " + name + " operator (spec §4.2) exposed as a callable, without write-back.",
		Usage:       name + "(value)",
		Invoke: func(args []value.Value) (value.Value, error) {
			v, err := arg(args, 0, name)
			if err != nil {
				return nil, err
			}
			return ops.Binary(op, v, value.NarrowInt(1))
		},
	})
}

func minMax(wantLess bool) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		a, err := arg(args, 0, "min/max")
		if err != nil {
			return nil, err
		}
		b, err := arg(args, 1, "min/max")
		if err != nil {
			return nil, err
		}
		cmp, err := ops.Binary(ops.LessThan, a, b)
		if err != nil {
			return nil, err
		}
		aLess := value.Truthy(cmp)
		if aLess == wantLess {
			return a, nil
		}
		return b, nil
	}
}

func builtinPow(args []value.Value) (value.Value, error) {
	base, err := arg(args, 0, "pow")
	if err != nil {
		return nil, err
	}
	exp, err := arg(args, 1, "pow")
	if err != nil {
		return nil, err
	}

	bi, bIsInt := base.(value.IntValue)
	ei, eIsInt := exp.(value.IntValue)
	if bIsInt && eIsInt && ei.AsInt64() >= 0 {
		result := new(big.Int).Exp(bi.AsBig(), ei.AsBig(), nil)
		return value.NarrowBigInt(result), nil
	}

	bf, err := toFloat64(base)
	if err != nil {
		return nil, err
	}
	ef, err := toFloat64(exp)
	if err != nil {
		return nil, err
	}
	return value.NewFloat64(math.Pow(bf, ef)), nil
}

func numericUnary(name, description string, fn func(float64) float64) *function.BuiltinFunction {
	return &function.BuiltinFunction{
		Descriptor:  function.Descriptor{Name: name, Params: params1("value")},
		Description: description,
		Usage:       name + "(value)",
		Invoke: func(args []value.Value) (value.Value, error) {
			v, err := arg(args, 0, name)
			if err != nil {
				return nil, err
			}
			if iv, ok := v.(value.IntValue); ok && name != "sqrt" {
				return iv, nil
			}
			f, err := toFloat64(v)
			if err != nil {
				return nil, err
			}
			return value.NewFloat64(fn(f)), nil
		},
	}
}

func builtinAbs(args []value.Value) (value.Value, error) {
	v, err := arg(args, 0, "abs")
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case value.IntValue:
		return value.NarrowBigInt(new(big.Int).Abs(t.AsBig())), nil
	case value.FloatValue:
		f, err := toFloat64(v)
		if err != nil {
			return nil, err
		}
		return value.NewFloat64(math.Abs(f)), nil
	default:
		return nil, errors.NewUnsupportedOperation("abs", v.Kind().String(), "")
	}
}

func builtinSignum(args []value.Value) (value.Value, error) {
	v, err := arg(args, 0, "signum")
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case value.IntValue:
		return value.NewInt64(int64(t.AsBig().Sign())), nil
	case value.FloatValue:
		f, err := toFloat64(v)
		if err != nil {
			return nil, err
		}
		switch {
		case f > 0:
			return value.NewInt64(1), nil
		case f < 0:
			return value.NewInt64(-1), nil
		default:
			return value.NewInt64(0), nil
		}
	default:
		return nil, errors.NewUnsupportedOperation("signum", v.Kind().String(), "")
	}
}

func builtinIsZero(args []value.Value) (value.Value, error) {
	v, err := arg(args, 0, "is_zero")
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case value.IntValue:
		return value.NewBool(t.AsBig().Sign() == 0), nil
	case value.FloatValue:
		f, err := toFloat64(v)
		if err != nil {
			return nil, err
		}
		return value.NewBool(f == 0), nil
	default:
		return value.NewBool(false), nil
	}
}

func toFloat64(v value.Value) (float64, error) {
	switch t := v.(type) {
	case value.FloatValue:
		return t.AsFloat64(), nil
	case value.IntValue:
		f := new(big.Float).SetInt(t.AsBig())
		out, _ := f.Float64()
		return out, nil
	default:
		return 0, errors.NewUnsupportedOperation("numeric conversion", v.Kind().String(), "")
	}
}
