// Package ops implements Naftah's operator dispatch (spec.md §4.2): the
// (operator, left kind, right kind) dispatch table plus the unary operator
// set, grounded on the type-switch dispatch style of github.com/cwbudde/go-dws
// internal/interp/expressions_binary.go (one case per operand-kind pair,
// falling through to a shared error for anything unhandled).
package ops

import (
	"github.com/naftah-lang/naftah/internal/errors"
	"github.com/naftah-lang/naftah/internal/value"
)

// Operator names the binary/unary operation to perform. The operator-backed
// built-ins are registered under these same names ("add", "subtract", ...);
// BinaryOp/UnaryOp nodes carry operator symbols ("+", "-", ...) that the
// evaluator maps onto these constants.
type Operator string

const (
	Add      Operator = "add"
	Subtract Operator = "subtract"
	Multiply Operator = "multiply"
	Divide   Operator = "divide"
	Modulo   Operator = "modulo"

	LessThan           Operator = "less_than"
	LessThanEquals     Operator = "less_than_equals"
	GreaterThan        Operator = "greater_than"
	GreaterThanEquals  Operator = "greater_than_equals"
	Equals             Operator = "equals"
	NotEquals          Operator = "not_equals"

	LogicalAnd Operator = "and"
	LogicalOr  Operator = "or"

	BitAnd            Operator = "bit_and"
	BitOr             Operator = "bit_or"
	BitXor            Operator = "bit_xor"
	ShiftLeft         Operator = "shift_left"
	ShiftRight        Operator = "shift_right"
	UnsignedShiftRight Operator = "unsigned_shift_right"

	Positive Operator = "positive" // unary +
	Negate   Operator = "negate"   // unary -
	Not      Operator = "not"      // logical !
	BitNot   Operator = "bit_not"  // bitwise ~

	PreIncrement  Operator = "pre_increment"
	PostIncrement Operator = "post_increment"
	PreDecrement  Operator = "pre_decrement"
	PostDecrement Operator = "post_decrement"
)

// Binary evaluates l <op> r per spec.md §4.2's dispatch table. Both operands
// must already be evaluated; short-circuit logical AND/OR are handled
// separately by BinaryShortCircuit since their right operand may never be
// evaluated.
func Binary(op Operator, l, r value.Value) (value.Value, error) {
	switch op {
	case Add, Subtract, Multiply, Divide, Modulo:
		return arithmetic(op, l, r)
	case LessThan, LessThanEquals, GreaterThan, GreaterThanEquals, Equals, NotEquals:
		return compare(op, l, r)
	case LogicalAnd, LogicalOr:
		// Reachable only when the caller already evaluated both sides
		// eagerly; prefer BinaryShortCircuit when RHS evaluation has a
		// side effect.
		if op == LogicalAnd {
			if value.Truthy(l) {
				return r, nil
			}
			return l, nil
		}
		if value.Truthy(l) {
			return l, nil
		}
		return r, nil
	case BitAnd, BitOr, BitXor, ShiftLeft, ShiftRight, UnsignedShiftRight:
		return bitwise(op, l, r)
	default:
		return nil, errors.NewUnsupportedOperation(string(op), l.Kind().String(), r.Kind().String())
	}
}

// BinaryShortCircuit evaluates a short-circuit logical operator without
// forcing evaluation of the right operand unless needed (spec.md §4.4:
// "except for short-circuit logical AND/OR which evaluate RHS only when
// needed"). evalRight is called at most once.
func BinaryShortCircuit(op Operator, l value.Value, evalRight func() (value.Value, error)) (value.Value, error) {
	switch op {
	case LogicalAnd:
		if !value.Truthy(l) {
			return l, nil
		}
		return evalRight()
	case LogicalOr:
		if value.Truthy(l) {
			return l, nil
		}
		return evalRight()
	default:
		return nil, errors.NewInternalBug("BinaryShortCircuit called with non-logical operator %s", op)
	}
}

// normalizeFalsy implements the falsy-operand policy for arithmetic/bitwise
// operators (spec.md §4.2): None becomes 0, NaN propagates. The returned
// bool reports whether the caller should short-circuit and return NaN
// immediately.
func normalizeFalsy(v value.Value) (value.Value, bool) {
	switch v.(type) {
	case value.NaNValue:
		return nil, true
	case value.NoneValue:
		return value.NarrowInt(0), false
	default:
		return v, false
	}
}
