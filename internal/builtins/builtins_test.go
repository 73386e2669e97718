package builtins

import (
	"bytes"
	"strings"
	"testing"

	"github.com/naftah-lang/naftah/internal/function"
	"github.com/naftah-lang/naftah/internal/value"
)

func newRegistry(t *testing.T, stdout *bytes.Buffer) *function.Registry {
	t.Helper()
	reg := function.NewRegistry()
	Register(reg, stdout, value.DefaultTokens)
	return reg
}

func invoke(t *testing.T, reg *function.Registry, name string, args ...value.Value) value.Value {
	t.Helper()
	fns := reg.Builtins(name)
	if len(fns) == 0 {
		t.Fatalf("no builtin registered for %q", name)
	}
	v, err := fns[0].Invoke(args)
	if err != nil {
		t.Fatalf("%s%v: %v", name, args, err)
	}
	return v
}

func TestPrintWritesFormattedValueAndNewline(t *testing.T) {
	var out bytes.Buffer
	reg := newRegistry(t, &out)
	invoke(t, reg, "print", value.NewStr("hi"))
	if got := strings.TrimRight(out.String(), "\n"); got != "hi" {
		t.Fatalf("print output = %q, want %q", got, "hi")
	}
}

func TestPowIntegerExponentStaysInteger(t *testing.T) {
	var out bytes.Buffer
	reg := newRegistry(t, &out)
	got := invoke(t, reg, "pow", value.NewInt64(2), value.NewInt64(10))
	iv, ok := got.(value.IntValue)
	if !ok || iv.AsInt64() != 1024 {
		t.Fatalf("pow(2, 10) = %v, want the int 1024", got)
	}
}

func TestAbsOnNegativeInt(t *testing.T) {
	var out bytes.Buffer
	reg := newRegistry(t, &out)
	got := invoke(t, reg, "abs", value.NewInt64(-9))
	iv, ok := got.(value.IntValue)
	if !ok || iv.AsInt64() != 9 {
		t.Fatalf("abs(-9) = %v, want 9", got)
	}
}

func TestSignumSignsCorrectly(t *testing.T) {
	var out bytes.Buffer
	reg := newRegistry(t, &out)
	cases := []struct {
		in   value.Value
		want int64
	}{
		{value.NewInt64(5), 1},
		{value.NewInt64(-5), -1},
		{value.NewInt64(0), 0},
	}
	for _, c := range cases {
		got := invoke(t, reg, "signum", c.in)
		if got.(value.IntValue).AsInt64() != c.want {
			t.Errorf("signum(%v) = %v, want %d", c.in, got, c.want)
		}
	}
}

func TestIsZeroOnFloatAndInt(t *testing.T) {
	var out bytes.Buffer
	reg := newRegistry(t, &out)
	if !value.Truthy(invoke(t, reg, "is_zero", value.NewFloat64(0))) {
		t.Fatalf("is_zero(0.0) must be true")
	}
	if value.Truthy(invoke(t, reg, "is_zero", value.NewInt64(3))) {
		t.Fatalf("is_zero(3) must be false")
	}
}

func TestMaxMinPickCorrectOperand(t *testing.T) {
	var out bytes.Buffer
	reg := newRegistry(t, &out)
	got := invoke(t, reg, "max", value.NewInt64(3), value.NewInt64(7))
	if got.(value.IntValue).AsInt64() != 7 {
		t.Fatalf("max(3, 7) = %v, want 7", got)
	}
	got = invoke(t, reg, "min", value.NewInt64(3), value.NewInt64(7))
	if got.(value.IntValue).AsInt64() != 3 {
		t.Fatalf("min(3, 7) = %v, want 3", got)
	}
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	var out bytes.Buffer
	reg := newRegistry(t, &out)
	got := invoke(t, reg, "round", value.NewFloat64(2.5))
	fv, ok := got.(value.FloatValue)
	if !ok || fv.AsFloat64() != 3 {
		t.Fatalf("round(2.5) = %v, want 3.0", got)
	}
}

func TestStepBuiltinsDoNotMutateCaller(t *testing.T) {
	var out bytes.Buffer
	reg := newRegistry(t, &out)
	v := value.NewInt64(1)
	got := invoke(t, reg, "pre_increment", v)
	if got.(value.IntValue).AsInt64() != 2 {
		t.Fatalf("pre_increment(1) = %v, want 2", got)
	}
	if v.(value.IntValue).AsInt64() != 1 {
		t.Fatalf("pre_increment must not mutate its argument; v = %v", v)
	}
}
