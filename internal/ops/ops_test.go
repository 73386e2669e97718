package ops

import "github.com/naftah-lang/naftah/internal/value"
import "testing"

func TestFloorDivisionNegative(t *testing.T) {
	q, err := Binary(Divide, value.NewInt64(-7), value.NewInt64(2))
	if err != nil {
		t.Fatalf("Divide: %v", err)
	}
	iv := q.(value.IntValue)
	if iv.AsInt64() != -4 {
		t.Fatalf("-7 / 2 = %d, want -4 (floor division)", iv.AsInt64())
	}
}

func TestModuloMatchesDivisorSign(t *testing.T) {
	m, err := Binary(Modulo, value.NewInt64(-7), value.NewInt64(2))
	if err != nil {
		t.Fatalf("Modulo: %v", err)
	}
	iv := m.(value.IntValue)
	if iv.AsInt64() != 1 {
		t.Fatalf("-7 %% 2 = %d, want 1", iv.AsInt64())
	}
}

func TestDivideByZeroRaises(t *testing.T) {
	if _, err := Binary(Divide, value.NewInt64(1), value.NewInt64(0)); err == nil {
		t.Fatalf("expected an arithmetic error dividing by zero")
	}
}

func TestIntPromotesToFloatOnMixedOperands(t *testing.T) {
	sum, err := Binary(Add, value.NewInt64(2), value.NewFloat64(3))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, ok := sum.(value.FloatValue); !ok {
		t.Fatalf("2 + 3.0 = %T, want FloatValue", sum)
	}
}

func TestUnaryNegateInt(t *testing.T) {
	got, err := Unary(Negate, value.NewInt64(5))
	if err != nil {
		t.Fatalf("Unary negate: %v", err)
	}
	if got.(value.IntValue).AsInt64() != -5 {
		t.Fatalf("-5 = %v, want -5", got)
	}
}

func TestUnaryNotInvertsTruthiness(t *testing.T) {
	got, err := Unary(Not, value.NewInt64(0))
	if err != nil {
		t.Fatalf("Unary not: %v", err)
	}
	if !value.Truthy(got) {
		t.Fatalf("!0 = %v, want true", got)
	}
}

func TestIncDecPreReturnsUpdatedPostReturnsOriginal(t *testing.T) {
	cur := value.NewInt64(1)
	get := func() value.Value { return cur }
	set := func(v value.Value) { cur = v }

	pre, err := IncDec(PreIncrement, get, set)
	if err != nil {
		t.Fatalf("pre-increment: %v", err)
	}
	if pre.(value.IntValue).AsInt64() != 2 {
		t.Fatalf("++x = %v, want 2", pre)
	}

	post, err := IncDec(PostIncrement, get, set)
	if err != nil {
		t.Fatalf("post-increment: %v", err)
	}
	if post.(value.IntValue).AsInt64() != 2 {
		t.Fatalf("x++ returned %v, want the pre-increment value 2", post)
	}
	if cur.(value.IntValue).AsInt64() != 3 {
		t.Fatalf("target after x++ = %v, want 3", cur)
	}
}

func TestBinaryShortCircuitOrSkipsRightOperand(t *testing.T) {
	evaluated := false
	right := func() (value.Value, error) {
		evaluated = true
		return value.NewBool(false), nil
	}
	got, err := BinaryShortCircuit(LogicalOr, value.NewBool(true), right)
	if err != nil {
		t.Fatalf("BinaryShortCircuit: %v", err)
	}
	if evaluated {
		t.Fatalf("right operand was evaluated despite a truthy left operand for or")
	}
	if !value.Truthy(got) {
		t.Fatalf("true or <unevaluated> = %v, want true", got)
	}
}

func TestBinaryShortCircuitAndEvaluatesRightWhenLeftTruthy(t *testing.T) {
	evaluated := false
	right := func() (value.Value, error) {
		evaluated = true
		return value.NewBool(false), nil
	}
	got, err := BinaryShortCircuit(LogicalAnd, value.NewBool(true), right)
	if err != nil {
		t.Fatalf("BinaryShortCircuit: %v", err)
	}
	if !evaluated {
		t.Fatalf("right operand must be evaluated when the left operand of and is truthy")
	}
	if value.Truthy(got) {
		t.Fatalf("true and false = %v, want false", got)
	}
}
