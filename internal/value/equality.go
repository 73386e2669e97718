package value

// Equals implements spec.md §4.1's equality rules:
//   - None == None is true; None == anything-else is false.
//   - NaN == x is false for every x, including NaN itself.
//   - Numeric equality uses the promoted compare.
//   - String equality is codepoint-wise (Go string ==, since Go strings are
//     already UTF-8 byte-identical iff codepoint-identical).
//   - Bool/Char compare by underlying value.
//   - Tuple/Seq compare element-wise; Map compares by key/value pairs.
func Equals(l, r Value) bool {
	if _, ok := l.(NaNValue); ok {
		return false
	}
	if _, ok := r.(NaNValue); ok {
		return false
	}

	_, lNone := l.(NoneValue)
	_, rNone := r.(NoneValue)
	if lNone || rNone {
		return lNone && rNone
	}

	if ln, lok := toNumeric(l); lok {
		if rn, rok := toNumeric(r); rok {
			pl, pr, _ := PromoteNumeric(ln, rn)
			return CompareNumeric(pl, pr) == 0
		}
	}

	switch lv := l.(type) {
	case StrValue:
		rv, ok := r.(StrValue)
		return ok && lv.Value == rv.Value
	case *SeqValue:
		rv, ok := r.(*SeqValue)
		if !ok || len(lv.Elements) != len(rv.Elements) {
			return false
		}
		for i := range lv.Elements {
			if !Equals(lv.Elements[i], rv.Elements[i]) {
				return false
			}
		}
		return true
	case *TupleValue:
		rv, ok := r.(*TupleValue)
		if !ok || len(lv.Elements) != len(rv.Elements) {
			return false
		}
		for i := range lv.Elements {
			if !Equals(lv.Elements[i], rv.Elements[i]) {
				return false
			}
		}
		return true
	case *MapValue:
		rv, ok := r.(*MapValue)
		if !ok || lv.Len() != rv.Len() {
			return false
		}
		for _, k := range lv.keys {
			lval := lv.values[lv.mapKey(k)]
			rval, found := rv.Get(k)
			if !found || !Equals(lval, rval) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// NotEquals is the strict negation of Equals, matching spec.md's Testable
// Properties ("not_equals(x, y) == !equals(x, y)", with the explicit NaN
// exception that not_equals(NaN, x) is always true — which already follows
// from Equals(NaN, x) always being false).
func NotEquals(l, r Value) bool {
	return !Equals(l, r)
}
