package value

import (
	"math/big"

	"github.com/ericlagergren/decimal"
)

// PromoteNumeric implements spec.md §4.1's promotion lattice for a pair of
// numeric operands (IntValue/FloatValue/BoolValue/CharValue). It returns
// both operands coerced to a common representation: either both IntValue
// at the same width, or both FloatValue at the same width. ok is false if
// neither operand is numeric.
//
// Grounded on the promotion discipline github.com/cwbudde/go-dws
// internal/interp/expressions_binary.go's evalBinaryExpression dispatch
// implements ad hoc per type pair; Naftah's version is the single lattice
// spec.md §4.1 demands instead of DWScript's fixed int64/float64 pair.
func PromoteNumeric(l, r Value) (Value, Value, bool) {
	ln, lok := toNumeric(l)
	rn, rok := toNumeric(r)
	if !lok || !rok {
		return nil, nil, false
	}

	_, lFloat := ln.(FloatValue)
	_, rFloat := rn.(FloatValue)

	if lFloat || rFloat {
		lf := toFloatValue(ln)
		rf := toFloatValue(rn)
		return promoteFloats(lf, rf)
	}

	li := ln.(IntValue)
	ri := rn.(IntValue)
	return promoteInts(li, ri)
}

// toNumeric treats Bool as 0/1 and Char as its code point (spec.md §4.1
// rule 3), leaving Int/Float untouched.
func toNumeric(v Value) (Value, bool) {
	switch t := v.(type) {
	case IntValue:
		return t, true
	case FloatValue:
		return t, true
	case BoolValue:
		if t.Value {
			return NarrowInt(1), true
		}
		return NarrowInt(0), true
	case CharValue:
		return NarrowInt(int64(t.Value)), true
	default:
		return nil, false
	}
}

func toFloatValue(v Value) FloatValue {
	switch t := v.(type) {
	case FloatValue:
		return t
	case IntValue:
		if t.Width == IntBig {
			f, _ := new(big.Float).SetInt(t.Big).Float64()
			return FloatValue{Width: Float64, F64: f}
		}
		return FloatValue{Width: Float64, F64: float64(t.Small)}
	default:
		return FloatValue{Width: Float64, F64: 0}
	}
}

func promoteFloats(l, r FloatValue) (Value, Value, bool) {
	width := l.Width
	if r.Width > width {
		width = r.Width
	}
	switch width {
	case FloatBig:
		return FloatValue{Width: FloatBig, Big: l.AsBig()}, FloatValue{Width: FloatBig, Big: r.AsBig()}, true
	case Float64:
		return FloatValue{Width: Float64, F64: l.AsFloat64()}, FloatValue{Width: Float64, F64: r.AsFloat64()}, true
	default:
		return FloatValue{Width: Float32, F32: l.F32}, FloatValue{Width: Float32, F32: r.F32}, true
	}
}

// promoteInts picks the wider of the two widths; overflow that would
// escape int64 promotes both to arbitrary precision (spec.md §4.1 rule 2).
func promoteInts(l, r IntValue) (Value, Value, bool) {
	if l.Width == IntBig || r.Width == IntBig {
		return IntValue{Width: IntBig, Big: l.AsBig()}, IntValue{Width: IntBig, Big: r.AsBig()}, true
	}
	width := widerIntWidth(l.Width, r.Width)
	return IntValue{Width: width, Small: l.Small}, IntValue{Width: width, Small: r.Small}, true
}

// PromoteToBigInt escapes both operands to arbitrary precision, used when
// an Int64 arithmetic result overflows (spec.md §4.1 rule 2 "overflow that
// would escape 64-bit promotes both to arbitrary precision").
func PromoteToBigInt(l, r IntValue) (*big.Int, *big.Int) {
	return l.AsBig(), r.AsBig()
}

// AddOverflowsInt64 reports whether a+b overflows a signed 64-bit integer.
func AddOverflowsInt64(a, b int64) bool {
	sum := a + b
	return ((a ^ sum) & (b ^ sum)) < 0
}

// MulOverflowsInt64 reports whether a*b overflows a signed 64-bit integer.
func MulOverflowsInt64(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	p := a * b
	return p/b != a
}

// NarrowBigInt returns the narrowest IntValue representation of a big.Int,
// demoting back down the tower when the value now fits (mirrors spec.md
// §4.1's literal-parsing order for the integer rungs).
func NarrowBigInt(v *big.Int) Value {
	if v.IsInt64() {
		return NarrowInt(v.Int64())
	}
	return NewBigInt(v)
}

// NarrowBigFloat wraps a decimal.Big result at the arbitrary-precision
// rung. Unlike NarrowBigInt it does not demote: the result stays FloatBig
// even when a float64 would hold it exactly.
func NarrowBigFloat(v *decimal.Big) Value {
	return FloatValue{Width: FloatBig, Big: v}
}
