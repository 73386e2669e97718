package ops

import (
	"math/big"
	"strings"

	"github.com/ericlagergren/decimal"

	"github.com/naftah-lang/naftah/internal/errors"
	"github.com/naftah-lang/naftah/internal/value"
)

// arithmetic implements add/subtract/multiply/divide/modulo across every
// operand-kind pair spec.md §4.2's table names: numeric×numeric, string×
// string, string×numeric, and tuple/seq×tuple/seq (element-wise).
func arithmetic(op Operator, l, r value.Value) (value.Value, error) {
	if isNaNOperand(l) || isNaNOperand(r) {
		if op == Add || op == Subtract || op == Multiply || op == Divide || op == Modulo {
			if _, lStr := l.(value.StrValue); !lStr {
				if _, rStr := r.(value.StrValue); !rStr {
					return value.NaN, nil
				}
			}
		}
	}

	switch lv := l.(type) {
	case value.StrValue:
		return stringArithmetic(op, lv, r)
	case *value.SeqValue:
		return seqArithmetic(op, lv, r)
	case *value.TupleValue:
		return tupleArithmetic(op, lv, r)
	}
	if _, rStr := r.(value.StrValue); rStr {
		return stringArithmetic(op, l, r.(value.StrValue))
	}

	ln, lok := numericOperand(l)
	rn, rok := numericOperand(r)
	if !lok || !rok {
		return nil, errors.NewUnsupportedOperation(string(op), l.Kind().String(), r.Kind().String())
	}
	return numericArithmetic(op, ln, rn)
}

func isNaNOperand(v value.Value) bool {
	_, ok := v.(value.NaNValue)
	return ok
}

// numericOperand applies the falsy-operand policy (None -> 0) then checks
// the value is otherwise numeric (Int/Float/Bool/Char, per §4.1 rule 3).
func numericOperand(v value.Value) (value.Value, bool) {
	nv, isNaN := normalizeFalsy(v)
	if isNaN {
		return value.NaN, true
	}
	switch nv.(type) {
	case value.IntValue, value.FloatValue, value.BoolValue, value.CharValue:
		return nv, true
	default:
		return nil, false
	}
}

func numericArithmetic(op Operator, l, r value.Value) (value.Value, error) {
	if _, ok := l.(value.NaNValue); ok {
		return value.NaN, nil
	}
	if _, ok := r.(value.NaNValue); ok {
		return value.NaN, nil
	}

	pl, pr, ok := value.PromoteNumeric(l, r)
	if !ok {
		return nil, errors.NewUnsupportedOperation(string(op), l.Kind().String(), r.Kind().String())
	}

	if fl, ok := pl.(value.FloatValue); ok {
		fr := pr.(value.FloatValue)
		return floatArithmetic(op, fl, fr)
	}

	il := pl.(value.IntValue)
	ir := pr.(value.IntValue)
	return intArithmetic(op, il, ir)
}

func intArithmetic(op Operator, l, r value.IntValue) (value.Value, error) {
	if op == Divide || op == Modulo {
		if value.IsBigZero(r) {
			return nil, errors.NewArithmeticError(string(op) + " by zero")
		}
	}

	if l.Width == value.IntBig || r.Width == value.IntBig {
		a, b := value.PromoteToBigInt(l, r)
		return bigIntArithmetic(op, a, b)
	}

	a, b := l.Small, r.Small
	switch op {
	case Add:
		if value.AddOverflowsInt64(a, b) {
			return bigIntArithmetic(op, big.NewInt(a), big.NewInt(b))
		}
		return value.NarrowInt(a + b), nil
	case Subtract:
		if value.AddOverflowsInt64(a, -b) {
			return bigIntArithmetic(op, big.NewInt(a), big.NewInt(b))
		}
		return value.NarrowInt(a - b), nil
	case Multiply:
		if value.MulOverflowsInt64(a, b) {
			return bigIntArithmetic(op, big.NewInt(a), big.NewInt(b))
		}
		return value.NarrowInt(a * b), nil
	case Divide:
		q := a / b
		if (a%b != 0) && ((a < 0) != (b < 0)) {
			q-- // floor division, not Go's truncating division
		}
		return value.NarrowInt(q), nil
	case Modulo:
		m := a % b
		if m != 0 && ((m < 0) != (b < 0)) {
			m += b
		}
		return value.NarrowInt(m), nil
	default:
		return nil, errors.NewInternalBug("intArithmetic: unhandled operator %s", op)
	}
}

func bigIntArithmetic(op Operator, a, b *big.Int) (value.Value, error) {
	out := new(big.Int)
	switch op {
	case Add:
		out.Add(a, b)
	case Subtract:
		out.Sub(a, b)
	case Multiply:
		out.Mul(a, b)
	case Divide:
		if b.Sign() == 0 {
			return nil, errors.NewArithmeticError("divide by zero")
		}
		// big.Int.DivMod is Euclidean; step the quotient down for a negative
		// divisor with a nonzero remainder to get floor division.
		m := new(big.Int)
		out.DivMod(a, b, m)
		if m.Sign() != 0 && b.Sign() < 0 {
			out.Sub(out, big.NewInt(1))
		}
	case Modulo:
		if b.Sign() == 0 {
			return nil, errors.NewArithmeticError("modulo by zero")
		}
		// Euclidean remainder is non-negative; floor modulo takes the
		// divisor's sign, so shift it by b for a negative divisor.
		out.Mod(a, b)
		if out.Sign() != 0 && b.Sign() < 0 {
			out.Add(out, b)
		}
	default:
		return nil, errors.NewInternalBug("bigIntArithmetic: unhandled operator %s", op)
	}
	return value.NarrowBigInt(out), nil
}

func floatArithmetic(op Operator, l, r value.FloatValue) (value.Value, error) {
	if l.Width == value.FloatBig || r.Width == value.FloatBig {
		ctx := decimal.Context64
		out := new(decimal.Big)
		a, b := l.AsBig(), r.AsBig()
		switch op {
		case Add:
			ctx.Add(out, a, b)
		case Subtract:
			ctx.Sub(out, a, b)
		case Multiply:
			ctx.Mul(out, a, b)
		case Divide:
			if b.Sign() == 0 {
				return nil, errors.NewArithmeticError("divide by zero")
			}
			ctx.Quo(out, a, b)
		case Modulo:
			if b.Sign() == 0 {
				return nil, errors.NewArithmeticError("modulo by zero")
			}
			ctx.Rem(out, a, b)
		default:
			return nil, errors.NewInternalBug("floatArithmetic: unhandled operator %s", op)
		}
		return value.NarrowBigFloat(out), nil
	}

	a, b := l.AsFloat64(), r.AsFloat64()
	switch op {
	case Add:
		return value.NewFloat64(a + b), nil
	case Subtract:
		return value.NewFloat64(a - b), nil
	case Multiply:
		return value.NewFloat64(a * b), nil
	case Divide:
		return value.NewFloat64(a / b), nil // IEEE: division by zero yields signed Inf/NaN
	case Modulo:
		return value.NewFloat64(floatMod(a, b)), nil
	default:
		return nil, errors.NewInternalBug("floatArithmetic: unhandled operator %s", op)
	}
}

func floatMod(a, b float64) float64 {
	m := a - b*float64(int64(a/b))
	return m
}

// stringArithmetic implements the String×String and String×Numeric columns
// of spec.md §4.2's table.
func stringArithmetic(op Operator, l value.Value, r value.Value) (value.Value, error) {
	ls, lIsStr := l.(value.StrValue)
	rs, rIsStr := r.(value.StrValue)

	switch op {
	case Add:
		if lIsStr && rIsStr {
			return value.NewStr(ls.Value + rs.Value), nil
		}
		if lIsStr {
			return value.NewStr(ls.Value + toStringDisplay(r)), nil
		}
		return value.NewStr(toStringDisplay(l) + rs.Value), nil
	case Subtract:
		if lIsStr && rIsStr {
			return value.NewStr(strings.ReplaceAll(ls.Value, rs.Value, "")), nil
		}
		return value.NewStr(strings.ReplaceAll(toStringDisplay(l), toStringDisplay(r), "")), nil
	case Multiply:
		if lIsStr && rIsStr {
			return charWiseString(ls.Value, rs.Value, func(a, b rune) rune { return rune(int(a) * int(b)) }), nil
		}
		n, ok := repeatCount(r)
		if !lIsStr || !ok {
			return nil, errors.NewUnsupportedOperation(string(op), l.Kind().String(), r.Kind().String())
		}
		return value.NewStr(repeatString(ls.Value, n)), nil
	case Divide:
		if !lIsStr {
			return nil, errors.NewUnsupportedOperation(string(op), l.Kind().String(), r.Kind().String())
		}
		if rIsStr {
			parts := strings.Split(ls.Value, rs.Value)
			elems := make([]value.Value, len(parts))
			for i, p := range parts {
				elems[i] = value.NewStr(p)
			}
			return value.NewSeq(elems...), nil
		}
		n, ok := repeatCount(r)
		if !ok || n <= 0 {
			return nil, errors.NewUnsupportedOperation(string(op), l.Kind().String(), r.Kind().String())
		}
		return value.NewSeq(splitIntoParts(ls.Value, n)...), nil
	case Modulo:
		if lIsStr && rIsStr {
			return charWiseString(ls.Value, rs.Value, func(a, b rune) rune {
				if b == 0 {
					return a
				}
				return rune(int(a) % int(b))
			}), nil
		}
		return value.NewStr(toStringDisplay(l) + toStringDisplay(r)), nil
	default:
		return nil, errors.NewUnsupportedOperation(string(op), l.Kind().String(), r.Kind().String())
	}
}

func toStringDisplay(v value.Value) string {
	if _, ok := v.(value.NoneValue); ok {
		return "None"
	}
	return value.Format(v)
}

func repeatCount(v value.Value) (int, bool) {
	switch t := v.(type) {
	case value.IntValue:
		return int(t.AsInt64()), true
	case value.FloatValue:
		return int(t.AsFloat64()), true
	default:
		return 0, false
	}
}

func repeatString(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

func charWiseString(a, b string, f func(rune, rune) rune) value.Value {
	ra, rb := []rune(a), []rune(b)
	n := len(ra)
	if len(rb) < n {
		n = len(rb)
	}
	out := make([]rune, n)
	for i := 0; i < n; i++ {
		out[i] = f(ra[i], rb[i])
	}
	return value.NewStr(string(out))
}

// splitIntoParts divides s into n near-equal-length parts (spec.md §4.2's
// "split into RHS.integer_value near-equal parts").
func splitIntoParts(s string, n int) []value.Value {
	runes := []rune(s)
	total := len(runes)
	base := total / n
	extra := total % n
	out := make([]value.Value, n)
	pos := 0
	for i := 0; i < n; i++ {
		size := base
		if i < extra {
			size++
		}
		out[i] = value.NewStr(string(runes[pos : pos+size]))
		pos += size
	}
	return out
}

func seqArithmetic(op Operator, l *value.SeqValue, r value.Value) (value.Value, error) {
	rs, ok := r.(*value.SeqValue)
	if !ok {
		return nil, errors.NewUnsupportedOperation(string(op), l.Kind().String(), r.Kind().String())
	}
	if len(l.Elements) != len(rs.Elements) {
		return nil, errors.NewUnsupportedOperation(string(op)+" (length mismatch)", l.Kind().String(), r.Kind().String())
	}
	out := make([]value.Value, len(l.Elements))
	for i := range l.Elements {
		v, err := arithmetic(op, l.Elements[i], rs.Elements[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return value.NewSeq(out...), nil
}

func tupleArithmetic(op Operator, l *value.TupleValue, r value.Value) (value.Value, error) {
	rt, ok := r.(*value.TupleValue)
	if !ok {
		return nil, errors.NewUnsupportedOperation(string(op), l.Kind().String(), r.Kind().String())
	}
	if len(l.Elements) != len(rt.Elements) {
		return nil, errors.NewUnsupportedOperation(string(op)+" (length mismatch)", l.Kind().String(), r.Kind().String())
	}
	out := make([]value.Value, len(l.Elements))
	for i := range l.Elements {
		v, err := arithmetic(op, l.Elements[i], rt.Elements[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return value.NewTuple(out...), nil
}
