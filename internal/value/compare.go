package value

import "math/big"

// CompareNumeric returns -1, 0, or 1 comparing two already-promoted numeric
// values (output of PromoteNumeric). Panics if given non-numeric or
// mismatched-width operands — callers must promote first.
func CompareNumeric(l, r Value) int {
	switch lv := l.(type) {
	case IntValue:
		rv := r.(IntValue)
		if lv.Width == IntBig {
			return lv.Big.Cmp(rv.Big)
		}
		switch {
		case lv.Small < rv.Small:
			return -1
		case lv.Small > rv.Small:
			return 1
		default:
			return 0
		}
	case FloatValue:
		rv := r.(FloatValue)
		if lv.Width == FloatBig {
			return lv.Big.Cmp(rv.Big)
		}
		lf, rf := lv.AsFloat64(), rv.AsFloat64()
		switch {
		case lf < rf:
			return -1
		case lf > rf:
			return 1
		default:
			return 0
		}
	default:
		panic("value: CompareNumeric given non-numeric operand")
	}
}

// IsBigZero reports whether a promoted numeric value is exactly zero,
// used by the divide-by-zero check in the operator dispatcher (§4.2).
func IsBigZero(v Value) bool {
	switch t := v.(type) {
	case IntValue:
		if t.Width == IntBig {
			return t.Big.Sign() == 0
		}
		return t.Small == 0
	case FloatValue:
		if t.Width == FloatBig {
			return t.Big.Sign() == 0
		}
		return t.AsFloat64() == 0
	default:
		return false
	}
}

// ZeroLikeInt is a convenience big.Int zero, used by promotion helpers.
var ZeroLikeInt = big.NewInt(0)
