package ops

import (
	"math/big"

	"github.com/naftah-lang/naftah/internal/errors"
	"github.com/naftah-lang/naftah/internal/value"
)

// bitwise implements spec.md §4.2's bitwise row: integral numerics only
// (floats raise); string×string and string×numeric operate character-wise
// over code points; tuple/seq operate element-wise.
func bitwise(op Operator, l, r value.Value) (value.Value, error) {
	switch lv := l.(type) {
	case value.StrValue:
		return bitwiseString(op, lv, r)
	case *value.SeqValue:
		return bitwiseSeq(op, lv, r)
	case *value.TupleValue:
		return bitwiseTuple(op, lv, r)
	}
	if rs, ok := r.(value.StrValue); ok {
		return bitwiseString(op, rs, l)
	}

	li, lok := bitwiseOperand(l)
	ri, rok := bitwiseOperand(r)
	if !lok || !rok {
		return nil, errors.NewUnsupportedOperation(string(op), l.Kind().String(), r.Kind().String())
	}
	return intBitwise(op, li, ri)
}

// bitwiseOperand coerces an operand to an integral IntValue for bitwise
// dispatch: Int passes through, Bool/Char convert, None becomes 0 (the
// falsy-operand policy), and Float/anything else is rejected since
// spec.md §4.2 says bitwise operators are "integral only; floats raise".
func bitwiseOperand(v value.Value) (value.IntValue, bool) {
	switch t := v.(type) {
	case value.IntValue:
		return t, true
	case value.NoneValue:
		return value.NarrowInt(0).(value.IntValue), true
	case value.BoolValue, value.CharValue:
		return boolOrCharToInt(v)
	default:
		return value.IntValue{}, false
	}
}

func boolOrCharToInt(v value.Value) (value.IntValue, bool) {
	switch t := v.(type) {
	case value.BoolValue:
		if t.Value {
			return value.NarrowInt(1).(value.IntValue), true
		}
		return value.NarrowInt(0).(value.IntValue), true
	case value.CharValue:
		return value.NarrowInt(int64(t.Value)).(value.IntValue), true
	default:
		return value.IntValue{}, false
	}
}

func intBitwise(op Operator, l, r value.IntValue) (value.Value, error) {
	if l.Width == value.IntBig || r.Width == value.IntBig {
		a, b := value.PromoteToBigInt(l, r)
		out := new(big.Int)
		switch op {
		case BitAnd:
			out.And(a, b)
		case BitOr:
			out.Or(a, b)
		case BitXor:
			out.Xor(a, b)
		case ShiftLeft:
			out.Lsh(a, uint(b.Uint64()))
		case ShiftRight, UnsignedShiftRight:
			out.Rsh(a, uint(b.Uint64()))
		default:
			return nil, errors.NewInternalBug("intBitwise: unhandled operator %s", op)
		}
		return value.NarrowBigInt(out), nil
	}

	a, b := l.Small, r.Small
	switch op {
	case BitAnd:
		return value.NarrowInt(a & b), nil
	case BitOr:
		return value.NarrowInt(a | b), nil
	case BitXor:
		return value.NarrowInt(a ^ b), nil
	case ShiftLeft:
		return value.NarrowInt(a << uint(b)), nil
	case ShiftRight:
		return value.NarrowInt(a >> uint(b)), nil
	case UnsignedShiftRight:
		return value.NarrowInt(int64(uint64(a) >> uint(b))), nil
	default:
		return nil, errors.NewInternalBug("intBitwise: unhandled operator %s", op)
	}
}

func bitwiseString(op Operator, l value.StrValue, r value.Value) (value.Value, error) {
	if rs, ok := r.(value.StrValue); ok {
		return charWiseString(l.Value, rs.Value, func(a, b rune) rune { return bitwiseRune(op, a, b) }), nil
	}
	n, ok := repeatCount(r)
	if !ok {
		return nil, errors.NewUnsupportedOperation(string(op), l.Kind().String(), r.Kind().String())
	}
	ra := []rune(l.Value)
	out := make([]rune, len(ra))
	for i, c := range ra {
		out[i] = bitwiseRune(op, c, rune(n))
	}
	return value.NewStr(string(out)), nil
}

func bitwiseRune(op Operator, a, b rune) rune {
	switch op {
	case BitAnd:
		return a & b
	case BitOr:
		return a | b
	case BitXor:
		return a ^ b
	case ShiftLeft:
		return a << uint(b)
	case ShiftRight, UnsignedShiftRight:
		return a >> uint(b)
	default:
		return a
	}
}

func bitwiseSeq(op Operator, l *value.SeqValue, r value.Value) (value.Value, error) {
	rs, ok := r.(*value.SeqValue)
	if !ok || len(l.Elements) != len(rs.Elements) {
		return nil, errors.NewUnsupportedOperation(string(op), l.Kind().String(), r.Kind().String())
	}
	out := make([]value.Value, len(l.Elements))
	for i := range l.Elements {
		v, err := bitwise(op, l.Elements[i], rs.Elements[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return value.NewSeq(out...), nil
}

func bitwiseTuple(op Operator, l *value.TupleValue, r value.Value) (value.Value, error) {
	rt, ok := r.(*value.TupleValue)
	if !ok || len(l.Elements) != len(rt.Elements) {
		return nil, errors.NewUnsupportedOperation(string(op), l.Kind().String(), r.Kind().String())
	}
	out := make([]value.Value, len(l.Elements))
	for i := range l.Elements {
		v, err := bitwise(op, l.Elements[i], rt.Elements[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return value.NewTuple(out...), nil
}
