package bridge

import (
	"reflect"
	"testing"

	"github.com/naftah-lang/naftah/internal/value"
)

func TestConvertArgumentNarrowsToTargetIntWidth(t *testing.T) {
	got, err := ConvertArgument(value.NewInt64(7), reflect.TypeOf(int32(0)))
	if err != nil {
		t.Fatalf("ConvertArgument: %v", err)
	}
	if got.(int32) != 7 {
		t.Fatalf("ConvertArgument to int32 = %v, want 7", got)
	}
}

func TestConvertArgumentStringFormatsValue(t *testing.T) {
	got, err := ConvertArgument(value.NewInt64(42), reflect.TypeOf(""))
	if err != nil {
		t.Fatalf("ConvertArgument: %v", err)
	}
	if got.(string) != "42" {
		t.Fatalf("ConvertArgument to string = %q, want %q", got, "42")
	}
}

func TestConvertArgumentSliceDescendsElementwise(t *testing.T) {
	seq := value.NewSeq(value.NewInt64(1), value.NewInt64(2), value.NewInt64(3))
	got, err := ConvertArgument(seq, reflect.TypeOf([]int64{}))
	if err != nil {
		t.Fatalf("ConvertArgument: %v", err)
	}
	ints := got.([]int64)
	if len(ints) != 3 || ints[1] != 2 {
		t.Fatalf("ConvertArgument to []int64 = %v, want [1 2 3]", ints)
	}
}

func TestFromNativeRoundTripsSlice(t *testing.T) {
	v := FromNative([]int{1, 2, 3})
	seq, ok := v.(*value.SeqValue)
	if !ok || len(seq.Elements) != 3 {
		t.Fatalf("FromNative([]int{1,2,3}) = %v, want a 3-element SeqValue", v)
	}
}

func TestFromNativeNilReturnsNone(t *testing.T) {
	if FromNative(nil) != value.None {
		t.Fatalf("FromNative(nil) must be value.None")
	}
}

func TestWriteBackPreservesBigIntWidth(t *testing.T) {
	orig := value.NewBigInt(value.NarrowInt(9).(value.IntValue).AsBig())
	result := WriteBack(orig, int64(5))
	iv, ok := result.(value.IntValue)
	if !ok || iv.Width != value.IntBig {
		t.Fatalf("WriteBack onto a big int target = %#v, want a big-width IntValue", result)
	}
	if iv.AsInt64() != 5 {
		t.Fatalf("WriteBack value = %d, want 5", iv.AsInt64())
	}
}

func TestWriteBackReplacesSequenceElements(t *testing.T) {
	orig := value.NewSeq(value.NewInt64(1), value.NewInt64(2))
	result := WriteBack(orig, []int64{10, 20})
	seq := result.(*value.SeqValue)
	if seq.Elements[0].(value.IntValue).AsInt64() != 10 || seq.Elements[1].(value.IntValue).AsInt64() != 20 {
		t.Fatalf("WriteBack sequence = %v, want [10 20]", seq.Elements)
	}
}
