package function

import (
	"github.com/naftah-lang/naftah/internal/ast"
	"github.com/naftah-lang/naftah/internal/value"
)

// Excluded is the sentinel score for a candidate that cannot accept the
// given arguments at all (spec.md §4.5: "candidate excluded").
const Excluded = -1

// Penalty scores implementing spec.md §4.5's table, lower is better.
const (
	penaltyNoneOrUnset       = 10
	penaltyExactMatch        = 0
	penaltyAssignable        = 1
	penaltyNumericBoxedBoxed = 2
	penaltyNumericBoxedExact = 3
	penaltyNumericBoxedOther = 4
	penaltyOtherConvertible  = 5
	penaltyNullNonPrimitive  = 6
)

// Resolve picks the lowest-scoring candidate for the given arguments from
// candidates, each described by its parameter list and variadic flag.
// Returns the winning index, or -1 and NoSuchMethod-worthy false if no
// candidate is compatible (spec.md §4.5).
func Resolve(candidates [][]Param, variadic []bool, args []value.Value) (int, bool) {
	best := -1
	bestScore := 0
	for i, params := range candidates {
		score := ScoreCandidate(params, variadic[i], args)
		if score == Excluded {
			continue
		}
		if best == -1 || score < bestScore {
			best, bestScore = i, score
		}
	}
	return best, best != -1
}

// ScoreCandidate sums per-parameter penalties for one candidate, after the
// arity/variadic check. Returns Excluded if arity doesn't fit or any
// argument fails conversion.
func ScoreCandidate(params []Param, isVariadic bool, args []value.Value) int {
	paramCount := len(params)

	if isVariadic {
		if len(args) < paramCount-1 {
			return Excluded
		}
	} else if len(args) != paramCount {
		return Excluded
	}

	total := 0
	for i, p := range params {
		if isVariadic && i == paramCount-1 {
			// Variadic tail: synthesize a packed sequence of the remaining
			// arguments (spec.md §4.5), scoring each against the element
			// type implied by p.Type, then summing.
			for _, a := range args[i:] {
				s := penalty(a, p.Type)
				if s == Excluded {
					return Excluded
				}
				total += s
			}
			break
		}
		if i >= len(args) {
			return Excluded
		}
		s := penalty(args[i], p.Type)
		if s == Excluded {
			return Excluded
		}
		total += s
	}
	return total
}

// penalty scores a single argument against a single declared parameter
// type per spec.md §4.5's table.
func penalty(arg value.Value, target *ast.TypeExpr) int {
	if _, isNone := arg.(value.NoneValue); isNone {
		if target == nil || target.Kind == ast.TypeVar {
			return penaltyNoneOrUnset
		}
		if isPrimitiveTypeName(target.Name) {
			return Excluded
		}
		return penaltyNullNonPrimitive
	}

	if target == nil || target.Kind == ast.TypeVar {
		return penaltyAssignable
	}

	argKindName := naturalTypeName(arg.Kind())

	if target.Kind == ast.TypeBuiltin {
		if target.Name == argKindName {
			return penaltyExactMatch
		}
		if isNumericKind(arg.Kind()) && isNumericTypeName(target.Name) {
			switch {
			case arg.Kind() == value.KindInt && target.Name == "int", arg.Kind() == value.KindFloat && target.Name == "float":
				return penaltyNumericBoxedExact
			case isNumericKind(arg.Kind()) && isNumericTypeName(target.Name):
				return penaltyNumericBoxedBoxed
			}
		}
		if isNumericKind(arg.Kind()) || arg.Kind() == value.KindBool || arg.Kind() == value.KindChar {
			if isNumericTypeName(target.Name) {
				return penaltyNumericBoxedOther
			}
		}
		if target.Name == "str" {
			return penaltyOtherConvertible
		}
		return Excluded
	}

	// Qualified (host/wrapped) target type: any non-None value scores as
	// "other convertible"; no exact-match check is made for these types.
	return penaltyOtherConvertible
}

func naturalTypeName(k value.Kind) string {
	switch k {
	case value.KindInt:
		return "int"
	case value.KindFloat:
		return "float"
	case value.KindStr:
		return "str"
	case value.KindBool:
		return "bool"
	case value.KindChar:
		return "char"
	case value.KindSeq:
		return "seq"
	case value.KindTuple:
		return "tuple"
	case value.KindMap:
		return "map"
	case value.KindFunc:
		return "func"
	default:
		return "any"
	}
}

func isNumericKind(k value.Kind) bool {
	return k == value.KindInt || k == value.KindFloat
}

func isNumericTypeName(name string) bool {
	return name == "int" || name == "float"
}

func isPrimitiveTypeName(name string) bool {
	switch name {
	case "int", "float", "bool", "char", "str":
		return true
	default:
		return false
	}
}
