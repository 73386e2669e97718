package value

import "testing"

func TestFormatPromotedFloat(t *testing.T) {
	got := Format(NewFloat64(5))
	if got != "5.0" {
		t.Fatalf("Format(5.0) = %q, want %q", got, "5.0")
	}
}

func TestNarrowIntChoosesNarrowestWidth(t *testing.T) {
	v := NarrowInt(42)
	iv, ok := v.(IntValue)
	if !ok {
		t.Fatalf("NarrowInt returned %T, want IntValue", v)
	}
	if iv.Width != Int8 {
		t.Fatalf("NarrowInt(42).Width = %v, want Int8", iv.Width)
	}
}

func TestTruthyFalsySet(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"None", None, false},
		{"NaN", NaN, false},
		{"empty string", NewStr(""), false},
		{"zero int", NewInt64(0), false},
		{"nonzero int", NewInt64(1), true},
		{"true", NewBool(true), true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%s) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestEqualsNaNNeverEqual(t *testing.T) {
	if Equals(NaN, NaN) {
		t.Fatalf("NaN must never equal itself")
	}
	if !NotEquals(NaN, NewInt64(1)) {
		t.Fatalf("NaN must not_equal any value")
	}
}

func TestEqualsNoneOnlyEqualsNone(t *testing.T) {
	if !Equals(None, None) {
		t.Fatalf("None must equal None")
	}
	if Equals(None, NewInt64(0)) {
		t.Fatalf("None must not equal a non-None value")
	}
}

func TestMapInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set(NewStr("b"), NewInt64(2))
	m.Set(NewStr("a"), NewInt64(1))
	keys := m.Keys()
	if len(keys) != 2 || Format(keys[0]) != "b" || Format(keys[1]) != "a" {
		t.Fatalf("Keys() = %v, want insertion order [b, a]", keys)
	}
}
