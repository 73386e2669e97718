package bridge

import (
	"reflect"

	"github.com/naftah-lang/naftah/internal/value"
)

// FromNative converts a Go return value to a Value (spec.md §4.6 "Write
// back" companion operation: a native call's return value must re-enter
// the interpreter the same way a mutated argument does), grounded on
// MarshalToDWS's reflect.Kind switch.
func FromNative(goValue any) value.Value {
	if goValue == nil {
		return value.None
	}
	if v, ok := goValue.(value.Value); ok {
		return v
	}

	rv := reflect.ValueOf(goValue)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.NarrowInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.NarrowInt(int64(rv.Uint()))
	case reflect.Float32:
		return value.NewFloat32(float32(rv.Float()))
	case reflect.Float64:
		return value.NewFloat64(rv.Float())
	case reflect.String:
		return value.NewStr(rv.String())
	case reflect.Bool:
		return value.NewBool(rv.Bool())
	case reflect.Slice, reflect.Array:
		elems := make([]value.Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elems[i] = FromNative(rv.Index(i).Interface())
		}
		return value.NewSeq(elems...)
	case reflect.Map:
		out := value.NewMap()
		for _, k := range rv.MapKeys() {
			out.Set(FromNative(k.Interface()), FromNative(rv.MapIndex(k).Interface()))
		}
		return out
	case reflect.Ptr:
		if rv.IsNil() {
			return value.None
		}
		return FromNative(rv.Elem().Interface())
	default:
		return value.NewWrapped(rv.Type().String(), goValue)
	}
}

// WriteBack copies a potentially-mutated Go argument back into its
// originating Value (spec.md §4.6 operation 2). original is the Value
// that was converted via ConvertArgument; converted is the Go value
// (possibly a pointer) that the native call may have mutated in place.
//
// Numeric wrappers preserve the tower width of original; sequences are
// replaced pointwise; maps replace contents; tuples (immutable to script
// code) have their cells rebound by index, matching spec.md §3's
// "Tuples are immutable but their cells may be rebound by the native
// bridge during write-back" invariant.
func WriteBack(original value.Value, converted any) value.Value {
	rv := reflect.ValueOf(converted)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return value.None
		}
		rv = rv.Elem()
		converted = rv.Interface()
	}

	switch orig := original.(type) {
	case value.IntValue:
		return reWidenInt(orig, converted)
	case value.FloatValue:
		return reWidenFloat(orig, converted)
	case *value.SeqValue:
		src := reflect.ValueOf(converted)
		if src.Kind() != reflect.Slice && src.Kind() != reflect.Array {
			return original
		}
		elems := make([]value.Value, src.Len())
		for i := 0; i < src.Len(); i++ {
			if i < len(orig.Elements) {
				elems[i] = WriteBack(orig.Elements[i], src.Index(i).Interface())
			} else {
				elems[i] = FromNative(src.Index(i).Interface())
			}
		}
		orig.Elements = elems
		return orig
	case *value.TupleValue:
		src := reflect.ValueOf(converted)
		if src.Kind() != reflect.Slice && src.Kind() != reflect.Array {
			return original
		}
		for i := 0; i < src.Len() && i < len(orig.Elements); i++ {
			orig.Rebind(i, WriteBack(orig.Elements[i], src.Index(i).Interface()))
		}
		return orig
	case *value.MapValue:
		src := reflect.ValueOf(converted)
		if src.Kind() != reflect.Map {
			return original
		}
		for _, k := range src.MapKeys() {
			key := FromNative(k.Interface())
			val := FromNative(src.MapIndex(k).Interface())
			orig.Set(key, val)
		}
		return orig
	default:
		return FromNative(converted)
	}
}

func reWidenInt(orig value.IntValue, converted any) value.Value {
	n := FromNative(converted)
	iv, ok := n.(value.IntValue)
	if !ok {
		return n
	}
	if orig.Width == value.IntBig {
		return value.NewBigInt(iv.AsBig())
	}
	return iv
}

func reWidenFloat(orig value.FloatValue, converted any) value.Value {
	n := FromNative(converted)
	switch orig.Width {
	case value.Float32:
		if fv, ok := n.(value.FloatValue); ok {
			return value.NewFloat32(float32(fv.AsFloat64()))
		}
	case value.FloatBig:
		if fv, ok := n.(value.FloatValue); ok {
			return value.NewBigFloat(fv.AsBig())
		}
	}
	return n
}
