package ops

import (
	"math"
	"math/big"

	"github.com/ericlagergren/decimal"

	"github.com/naftah-lang/naftah/internal/errors"
	"github.com/naftah-lang/naftah/internal/value"
)

func negateFloat(f value.FloatValue) value.Value {
	switch f.Width {
	case value.FloatBig:
		neg := new(decimal.Big).Neg(f.AsBig())
		return value.NarrowBigFloat(neg)
	case value.Float32:
		return value.NewFloat32(-f.F32)
	default:
		return value.NewFloat64(-f.AsFloat64())
	}
}

// Unary implements spec.md §4.2's unary operators: arithmetic +/-, logical
// not, bitwise not. Increment/decrement are handled separately by IncDec
// since they need a mutable target.
func Unary(op Operator, operand value.Value) (value.Value, error) {
	switch op {
	case Positive:
		return unaryPositive(operand)
	case Negate:
		return unaryNegate(operand)
	case Not:
		return value.NewBool(!value.Truthy(operand)), nil
	case BitNot:
		return unaryBitNot(operand)
	default:
		return nil, errors.NewUnsupportedOperation(string(op), operand.Kind().String(), "")
	}
}

// unaryPositive: "+x returns x if numeric, NaN if string-like, 0 if None"
// (spec.md §4.2).
func unaryPositive(v value.Value) (value.Value, error) {
	switch v.(type) {
	case value.IntValue, value.FloatValue, value.BoolValue, value.CharValue:
		return v, nil
	case value.NoneValue:
		return value.NarrowInt(0), nil
	case value.StrValue:
		return value.NaN, nil
	default:
		return nil, errors.NewUnsupportedOperation(string(Positive), v.Kind().String(), "")
	}
}

// unaryNegate: "-x negates numeric, yields NaN for string-like, -0 for
// None" (spec.md §4.2).
func unaryNegate(v value.Value) (value.Value, error) {
	switch t := v.(type) {
	case value.IntValue:
		if t.Width == value.IntBig {
			return value.NarrowBigInt(new(big.Int).Neg(t.Big)), nil
		}
		return value.NarrowInt(-t.Small), nil
	case value.FloatValue:
		return negateFloat(t), nil
	case value.BoolValue:
		if t.Value {
			return value.NarrowInt(-1), nil
		}
		return value.NarrowInt(0), nil
	case value.CharValue:
		return value.NarrowInt(-int64(t.Value)), nil
	case value.NoneValue:
		return value.NewFloat64(math.Copysign(0, -1)), nil
	case value.StrValue:
		return value.NaN, nil
	default:
		return nil, errors.NewUnsupportedOperation(string(Negate), v.Kind().String(), "")
	}
}

func unaryBitNot(v value.Value) (value.Value, error) {
	iv, ok := bitwiseOperand(v)
	if !ok {
		return nil, errors.NewUnsupportedOperation(string(BitNot), v.Kind().String(), "")
	}
	if iv.Width == value.IntBig {
		return value.NarrowBigInt(new(big.Int).Not(iv.Big)), nil
	}
	return value.NarrowInt(^iv.Small), nil
}

// IncDec implements pre/post increment/decrement (spec.md §4.2): mutates
// the addressable target in place via set, returning the new value for
// pre-variants and the previous value for post-variants. Callers (the
// evaluator) are responsible for rejecting non-addressable targets before
// calling this.
func IncDec(op Operator, get func() value.Value, set func(value.Value)) (value.Value, error) {
	current := get()
	var delta Operator
	switch op {
	case PreIncrement, PostIncrement:
		delta = Add
	case PreDecrement, PostDecrement:
		delta = Subtract
	default:
		return nil, errors.NewInternalBug("IncDec: unhandled operator %s", op)
	}
	next, err := arithmetic(delta, current, value.NarrowInt(1))
	if err != nil {
		return nil, err
	}
	set(next)
	switch op {
	case PreIncrement, PreDecrement:
		return next, nil
	default:
		return current, nil
	}
}
