package value

// Truthy implements spec.md §4.1's falsy/truthy table: None, NaN,
// Bool(false), Int(0), Float(0.0), empty string, empty sequence/tuple,
// empty map, and Char('\0') are falsy; everything else is truthy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case NoneValue:
		return false
	case NaNValue:
		return false
	case BoolValue:
		return t.Value
	case CharValue:
		return t.Value != 0
	case IntValue:
		return !IsBigZero(t)
	case FloatValue:
		return !IsBigZero(t)
	case StrValue:
		return t.Value != ""
	case *SeqValue:
		return len(t.Elements) != 0
	case *TupleValue:
		return len(t.Elements) != 0
	case *MapValue:
		return t.Len() != 0
	default:
		// Func and Wrapped values have no falsy form in spec.md §4.1;
		// treat as truthy, same default the teacher's falsey.go uses for
		// reference/object values with no defined falsy state.
		return true
	}
}
