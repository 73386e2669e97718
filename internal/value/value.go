// Package value implements Naftah's tagged-value model and numeric tower
// (spec.md §3, §4.1). Grounded on github.com/cwbudde/go-dws
// internal/interp/value.go's Value interface + one-struct-per-variant
// layout, generalized to the numeric promotion lattice spec.md §4.1
// requires (DWScript itself has only machine int64/float64 — Naftah adds
// the arbitrary-precision rungs).
package value

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/ericlagergren/decimal"
)

// Value is the tagged sum every runtime value implements. Kept as a small
// interface (not interface{}) for the same reason the teacher gives: static
// type safety at every dispatch site.
type Value interface {
	Kind() Kind
	String() string
}

// Kind names a Value variant for dispatch-table keys and error messages.
type Kind int

const (
	KindNone Kind = iota
	KindNaN
	KindBool
	KindChar
	KindInt
	KindFloat
	KindStr
	KindSeq
	KindTuple
	KindMap
	KindFunc
	KindWrapped
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNaN:
		return "NaN"
	case KindBool:
		return "Bool"
	case KindChar:
		return "Char"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindStr:
		return "Str"
	case KindSeq:
		return "Seq"
	case KindTuple:
		return "Tuple"
	case KindMap:
		return "Map"
	case KindFunc:
		return "Func"
	case KindWrapped:
		return "Wrapped"
	default:
		return "Unknown"
	}
}

// ---------------------------------------------------------------------
// None / NaN singletons
// ---------------------------------------------------------------------

// NoneValue is the "absence" marker, distinct from an unset binding
// (spec.md §3).
type NoneValue struct{}

func (NoneValue) Kind() Kind     { return KindNone }
func (NoneValue) String() string { return "None" }

// None is the shared singleton; comparisons and truthiness never need to
// allocate a fresh one.
var None Value = NoneValue{}

// NaNValue is the singleton non-number marker that propagates through
// arithmetic and is never equal to anything, including another NaN
// (spec.md §3, §4.1).
type NaNValue struct{}

func (NaNValue) Kind() Kind     { return KindNaN }
func (NaNValue) String() string { return "NaN" }

// NaN is the shared singleton.
var NaN Value = NaNValue{}

// ---------------------------------------------------------------------
// Bool / Char
// ---------------------------------------------------------------------

type BoolValue struct{ Value bool }

func (b BoolValue) Kind() Kind { return KindBool }
func (b BoolValue) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

func NewBool(v bool) Value { return BoolValue{Value: v} }

// CharValue is a single Unicode code point, treated as an integer for
// arithmetic (spec.md §3).
type CharValue struct{ Value rune }

func (c CharValue) Kind() Kind     { return KindChar }
func (c CharValue) String() string { return string(c.Value) }

func NewChar(r rune) Value { return CharValue{Value: r} }

// ---------------------------------------------------------------------
// Numeric tower: integers
// ---------------------------------------------------------------------

// IntWidth orders the integer tower's rungs, narrowest first.
type IntWidth int

const (
	Int8 IntWidth = iota
	Int16
	Int32
	Int64
	IntBig
)

// IntValue is a machine-width signed integer at one of the fixed widths.
// Big holds the arbitrary-precision rung's payload; Small holds every
// other rung's payload, since Go has no native int8/16/32/64 union —
// Width says which one is authoritative.
type IntValue struct {
	Width IntWidth
	Small int64
	Big   *big.Int // non-nil iff Width == IntBig
}

func (i IntValue) Kind() Kind { return KindInt }
func (i IntValue) String() string {
	if i.Width == IntBig {
		return i.Big.String()
	}
	return strconv.FormatInt(i.Small, 10)
}

// NewInt64 wraps a Go int64 at the Int64 rung; use NarrowInt to find the
// narrowest width that fits a literal (spec.md §4.1).
func NewInt64(v int64) Value { return IntValue{Width: Int64, Small: v} }

// NewBigInt wraps an arbitrary-precision integer.
func NewBigInt(v *big.Int) Value { return IntValue{Width: IntBig, Big: v} }

// NarrowInt returns the narrowest IntValue that losslessly holds v, per the
// ordering in spec.md §4.1's "Parsing a numeric literal string": 8, then
// 16, then 32, then 64-bit signed.
func NarrowInt(v int64) Value {
	switch {
	case v >= -128 && v <= 127:
		return IntValue{Width: Int8, Small: v}
	case v >= -32768 && v <= 32767:
		return IntValue{Width: Int16, Small: v}
	case v >= -2147483648 && v <= 2147483647:
		return IntValue{Width: Int32, Small: v}
	default:
		return IntValue{Width: Int64, Small: v}
	}
}

func (i IntValue) AsBig() *big.Int {
	if i.Width == IntBig {
		return i.Big
	}
	return big.NewInt(i.Small)
}

func (i IntValue) AsInt64() int64 {
	if i.Width == IntBig {
		return i.Big.Int64()
	}
	return i.Small
}

// widerIntWidth returns the wider of two non-big widths.
func widerIntWidth(a, b IntWidth) IntWidth {
	if a > b {
		return a
	}
	return b
}

// ---------------------------------------------------------------------
// Numeric tower: floats / decimals
// ---------------------------------------------------------------------

// FloatWidth orders the decimal tower's rungs, narrowest first.
type FloatWidth int

const (
	Float32 FloatWidth = iota
	Float64
	FloatBig
)

// FloatValue is an IEEE float at one of the fixed widths, or an arbitrary-
// precision decimal at the FloatBig rung.
type FloatValue struct {
	Width FloatWidth
	F32   float32
	F64   float64
	Big   *decimal.Big // non-nil iff Width == FloatBig
}

func (f FloatValue) Kind() Kind { return KindFloat }
func (f FloatValue) String() string {
	switch f.Width {
	case FloatBig:
		return f.Big.String()
	case Float32:
		return strconv.FormatFloat(float64(f.F32), 'g', -1, 32)
	default:
		return formatFloat64(f.F64)
	}
}

// formatFloat64 renders a float the way an interpolated scalar must
// (spec.md Testable Properties #1: "5.0" for a promoted integer+float add).
func formatFloat64(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && !strings.Contains(s, "NaN") {
		s += ".0"
	}
	return s
}

func NewFloat32(v float32) Value { return FloatValue{Width: Float32, F32: v} }
func NewFloat64(v float64) Value { return FloatValue{Width: Float64, F64: v} }
func NewBigFloat(v *decimal.Big) Value { return FloatValue{Width: FloatBig, Big: v} }

func (f FloatValue) AsFloat64() float64 {
	switch f.Width {
	case FloatBig:
		f64, _ := f.Big.Float64()
		return f64
	case Float32:
		return float64(f.F32)
	default:
		return f.F64
	}
}

func (f FloatValue) AsBig() *decimal.Big {
	if f.Width == FloatBig {
		return f.Big
	}
	return new(decimal.Big).SetFloat64(f.AsFloat64())
}

// ---------------------------------------------------------------------
// Str / Seq / Tuple / Map
// ---------------------------------------------------------------------

// StrValue is an immutable UTF-8 string (spec.md §3).
type StrValue struct{ Value string }

func (s StrValue) Kind() Kind     { return KindStr }
func (s StrValue) String() string { return s.Value }

func NewStr(s string) Value { return StrValue{Value: s} }

// SeqValue is an ordered, mutable sequence of values.
type SeqValue struct{ Elements []Value }

func (s *SeqValue) Kind() Kind { return KindSeq }
func (s *SeqValue) String() string {
	parts := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		parts[i] = Format(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func NewSeq(elements ...Value) *SeqValue { return &SeqValue{Elements: elements} }

// TupleValue is a fixed-arity immutable sequence. Pair/Triple are
// specializations distinguished only by arity (spec.md §3).
type TupleValue struct{ Elements []Value }

func (t *TupleValue) Kind() Kind { return KindTuple }
func (t *TupleValue) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = Format(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func NewTuple(elements ...Value) *TupleValue { return &TupleValue{Elements: elements} }
func NewPair(a, b Value) *TupleValue         { return &TupleValue{Elements: []Value{a, b}} }
func NewTriple(a, b, c Value) *TupleValue    { return &TupleValue{Elements: []Value{a, b, c}} }

// Rebind mutates cell i in place. Tuples are immutable to script code
// (spec.md §3 invariant: "Tuples are immutable") but the native bridge may
// rebind a cell during write-back after a host call mutates it (§4.6, §8
// scenario 6).
func (t *TupleValue) Rebind(i int, v Value) { t.Elements[i] = v }

// MapValue is an insertion-ordered mapping from Value to Value (spec.md
// §3: "insertion order preserved for iteration").
type MapValue struct {
	keys   []Value
	values map[string]Value
	raw    map[string]Value // raw key string -> original key Value, for String()
}

func NewMap() *MapValue {
	return &MapValue{values: make(map[string]Value), raw: make(map[string]Value)}
}

func (m *MapValue) Kind() Kind { return KindMap }

func (m *MapValue) mapKey(k Value) string {
	return k.Kind().String() + ":" + Format(k)
}

func (m *MapValue) Set(k, v Value) {
	key := m.mapKey(k)
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, k)
	}
	m.values[key] = v
	m.raw[key] = k
}

func (m *MapValue) Get(k Value) (Value, bool) {
	v, ok := m.values[m.mapKey(k)]
	return v, ok
}

func (m *MapValue) Delete(k Value) {
	key := m.mapKey(k)
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	delete(m.raw, key)
	for i, existing := range m.keys {
		if m.mapKey(existing) == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m *MapValue) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *MapValue) Keys() []Value { return m.keys }

func (m *MapValue) String() string {
	parts := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		v := m.values[m.mapKey(k)]
		parts = append(parts, Format(k)+": "+Format(v))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// SortedKeysForTest is a test helper that returns a stable, sorted view of
// keys for assertions that don't care about insertion order.
func (m *MapValue) SortedKeysForTest() []string {
	out := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Format(k))
	}
	sort.Strings(out)
	return out
}

// ---------------------------------------------------------------------
// Wrapped — opaque host reference (§4.6 native bridge)
// ---------------------------------------------------------------------

// WrappedValue carries an opaque reference to a host-owned object plus its
// host type tag, used by the native bridge (spec.md §3, §4.6, GLOSSARY).
type WrappedValue struct {
	HostType string
	Host     any
}

func (w *WrappedValue) Kind() Kind     { return KindWrapped }
func (w *WrappedValue) String() string { return fmt.Sprintf("<%s>", w.HostType) }

func NewWrapped(hostType string, host any) *WrappedValue {
	return &WrappedValue{HostType: hostType, Host: host}
}
