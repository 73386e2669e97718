package ops

import (
	"strings"

	"github.com/naftah-lang/naftah/internal/errors"
	"github.com/naftah-lang/naftah/internal/value"
)

// compare implements the comparison row of spec.md §4.2's dispatch table:
// equals/not_equals use value.Equals (defined for every kind); ordering
// comparisons (<, <=, >, >=) are defined for numeric×numeric (promoted
// compare), string×string (lexicographic), and string×numeric (compare sum
// of codepoints to the number); anything else raises UnsupportedOperation.
func compare(op Operator, l, r value.Value) (value.Value, error) {
	if op == Equals {
		return value.NewBool(value.Equals(l, r)), nil
	}
	if op == NotEquals {
		return value.NewBool(value.NotEquals(l, r)), nil
	}
	if isNaNOperand(l) || isNaNOperand(r) {
		// NaN ordering comparisons are always false (spec.md §4.2
		// falsy-operand policy); NaN != x is the only true relation.
		return value.NewBool(false), nil
	}

	cmp, err := orderingCompare(l, r)
	if err != nil {
		return nil, err
	}
	switch op {
	case LessThan:
		return value.NewBool(cmp < 0), nil
	case LessThanEquals:
		return value.NewBool(cmp <= 0), nil
	case GreaterThan:
		return value.NewBool(cmp > 0), nil
	case GreaterThanEquals:
		return value.NewBool(cmp >= 0), nil
	default:
		return nil, errors.NewInternalBug("compare: unhandled operator %s", op)
	}
}

func orderingCompare(l, r value.Value) (int, error) {
	if isNaNOperand(l) || isNaNOperand(r) {
		// compare answers NaN operands itself before calling here; any
		// other caller gets "neither greater nor less".
		return 0, nil
	}

	ls, lIsStr := l.(value.StrValue)
	rs, rIsStr := r.(value.StrValue)
	if lIsStr && rIsStr {
		return strings.Compare(ls.Value, rs.Value), nil
	}
	if lIsStr || rIsStr {
		lSum, lok := codepointSum(l)
		rSum, rok := codepointSum(r)
		if lok && rok {
			switch {
			case lSum < rSum:
				return -1, nil
			case lSum > rSum:
				return 1, nil
			default:
				return 0, nil
			}
		}
		return 0, errors.NewUnsupportedOperation("comparison", l.Kind().String(), r.Kind().String())
	}

	ln, lok := numericOperand(l)
	rn, rok := numericOperand(r)
	if !lok || !rok {
		return 0, errors.NewUnsupportedOperation("comparison", l.Kind().String(), r.Kind().String())
	}
	pl, pr, ok := value.PromoteNumeric(ln, rn)
	if !ok {
		return 0, errors.NewUnsupportedOperation("comparison", l.Kind().String(), r.Kind().String())
	}
	return value.CompareNumeric(pl, pr), nil
}

// codepointSum implements "converting string via sum of codepoints" for the
// String×Numeric comparison rule; for a numeric value it's just the int64
// value (spec.md §4.2).
func codepointSum(v value.Value) (int64, bool) {
	switch t := v.(type) {
	case value.StrValue:
		var sum int64
		for _, r := range t.Value {
			sum += int64(r)
		}
		return sum, true
	case value.IntValue:
		return t.AsInt64(), true
	case value.FloatValue:
		return int64(t.AsFloat64()), true
	default:
		return 0, false
	}
}
