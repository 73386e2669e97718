// Package bridge implements Naftah's native bridge (spec.md §4.6, C6): the
// two operations used at every call into a built-in or host-reflected
// function — converting a Value argument to the declared Go target type,
// and writing host-side mutations back into the originating Value after
// the call.
//
// Grounded on the reflection-driven conversion style of
// github.com/cwbudde/go-dws internal/interp/marshal.go's MarshalToGo/
// MarshalToDWS/UnmarshalFromGoPtr, generalized from DWScript's fixed
// ARRAY/RECORD/INTEGER/FLOAT shape to Naftah's numeric tower and Seq/
// Tuple/Map kinds.
package bridge

import (
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/naftah-lang/naftah/internal/value"
)

// valueInterfaceType is the reflect.Type of the value.Value interface
// itself, distinguished from a bare `any`/interface{} target: a host
// function parameter typed as value.Value wants the original Value
// untouched, while an `any`-typed parameter wants ToNative's conversion.
var valueInterfaceType = reflect.TypeOf((*value.Value)(nil)).Elem()

// ConvertArgument converts v to a Go value assignable to targetType
// (spec.md §4.6 operation 1). Unwraps Wrapped, narrows/widens the numeric
// tower to the target's primitive width, maps None/NaN to the host's
// null/NaN idiom, and descends into Seq/Tuple/Map recursively.
func ConvertArgument(v value.Value, targetType reflect.Type) (any, error) {
	if w, ok := v.(*value.WrappedValue); ok {
		if targetType.Kind() == reflect.Interface || reflect.TypeOf(w.Host).AssignableTo(targetType) {
			return w.Host, nil
		}
		return nil, fmt.Errorf("bridge: wrapped host type %s not assignable to %s", w.HostType, targetType)
	}

	// Fall back to identity when v is already assignable to targetType
	// (spec.md:161): lets a host function declare a Naftah Value type
	// directly (e.g. *value.TupleValue for an in-place swap) and receive
	// the original object rather than an unrelated converted copy. The
	// general `any`/interface{} target keeps going through ToNative below,
	// since that conversion produces the native representation hosts
	// actually expect for an untyped parameter.
	if targetType == valueInterfaceType || (targetType.Kind() != reflect.Interface && reflect.TypeOf(v).AssignableTo(targetType)) {
		return v, nil
	}

	switch targetType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(n).Convert(targetType).Interface(), nil

	case reflect.Float32, reflect.Float64:
		f, err := toFloat64(v)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(f).Convert(targetType).Interface(), nil

	case reflect.String:
		return value.Format(v), nil

	case reflect.Bool:
		return value.Truthy(v), nil

	case reflect.Slice:
		seq, ok := v.(*value.SeqValue)
		if !ok {
			return nil, fmt.Errorf("bridge: expected a sequence, got %s", v.Kind())
		}
		elemType := targetType.Elem()
		out := reflect.MakeSlice(targetType, len(seq.Elements), len(seq.Elements))
		for i, e := range seq.Elements {
			goElem, err := ConvertArgument(e, elemType)
			if err != nil {
				return nil, fmt.Errorf("bridge: sequence element %d: %w", i, err)
			}
			out.Index(i).Set(reflect.ValueOf(goElem))
		}
		return out.Interface(), nil

	case reflect.Map:
		m, ok := v.(*value.MapValue)
		if !ok {
			return nil, fmt.Errorf("bridge: expected a map, got %s", v.Kind())
		}
		keyType, elemType := targetType.Key(), targetType.Elem()
		out := reflect.MakeMap(targetType)
		for _, k := range m.Keys() {
			goKey, err := ConvertArgument(k, keyType)
			if err != nil {
				return nil, fmt.Errorf("bridge: map key: %w", err)
			}
			val, _ := m.Get(k)
			goVal, err := ConvertArgument(val, elemType)
			if err != nil {
				return nil, fmt.Errorf("bridge: map value: %w", err)
			}
			out.SetMapIndex(reflect.ValueOf(goKey), reflect.ValueOf(goVal))
		}
		return out.Interface(), nil

	case reflect.Ptr:
		elemType := targetType.Elem()
		elemGo, err := ConvertArgument(v, elemType)
		if err != nil {
			return nil, fmt.Errorf("bridge: pointer element: %w", err)
		}
		ptr := reflect.New(elemType)
		ptr.Elem().Set(reflect.ValueOf(elemGo))
		return ptr.Interface(), nil

	case reflect.Interface:
		return ToNative(v), nil

	default:
		return nil, fmt.Errorf("bridge: unsupported target type %s", targetType)
	}
}

func toInt64(v value.Value) (int64, error) {
	switch t := v.(type) {
	case value.IntValue:
		return t.AsInt64(), nil
	case value.FloatValue:
		return int64(t.AsFloat64()), nil
	case value.BoolValue:
		if t.Value {
			return 1, nil
		}
		return 0, nil
	case value.CharValue:
		return int64(t.Value), nil
	case value.NoneValue:
		return 0, nil
	default:
		return 0, fmt.Errorf("bridge: expected a number, got %s", v.Kind())
	}
}

func toFloat64(v value.Value) (float64, error) {
	switch t := v.(type) {
	case value.FloatValue:
		return t.AsFloat64(), nil
	case value.IntValue:
		f, _ := new(big.Float).SetInt(t.AsBig()).Float64()
		return f, nil
	case value.NoneValue:
		return 0, nil
	case value.NaNValue:
		return nan(), nil
	default:
		return 0, fmt.Errorf("bridge: expected a number, got %s", v.Kind())
	}
}

func nan() float64 { return math.NaN() }

// ToNative unwraps v to the most natural Go value for an `any`-typed
// target: int64/float64/*big.Int/*decimal.Big for numerics, string, bool,
// rune, []any, map[string]any, or the wrapped host value directly.
func ToNative(v value.Value) any {
	switch t := v.(type) {
	case value.NoneValue:
		return nil
	case value.NaNValue:
		return nan()
	case value.BoolValue:
		return t.Value
	case value.CharValue:
		return t.Value
	case value.IntValue:
		if t.Width == value.IntBig {
			return t.Big
		}
		return t.AsInt64()
	case value.FloatValue:
		if t.Width == value.FloatBig {
			return t.Big
		}
		return t.AsFloat64()
	case value.StrValue:
		return t.Value
	case *value.SeqValue:
		out := make([]any, len(t.Elements))
		for i, e := range t.Elements {
			out[i] = ToNative(e)
		}
		return out
	case *value.TupleValue:
		out := make([]any, len(t.Elements))
		for i, e := range t.Elements {
			out[i] = ToNative(e)
		}
		return out
	case *value.MapValue:
		out := make(map[string]any, t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			out[value.Format(k)] = ToNative(val)
		}
		return out
	case *value.WrappedValue:
		return t.Host
	default:
		return v
	}
}
