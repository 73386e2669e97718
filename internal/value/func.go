package value

import "fmt"

// FuncValue is the Func(f) variant (spec.md §3): a handle onto one of the
// three function-descriptor kinds C5 defines (Declared/Builtin/Host-
// reflected). Handle is opaque here to avoid an import cycle with the
// function package that defines the concrete descriptor types; callers
// type-assert Handle back to their own descriptor type.
type FuncValue struct {
	Name   string
	Handle any
}

func (f *FuncValue) Kind() Kind     { return KindFunc }
func (f *FuncValue) String() string { return fmt.Sprintf("<func %s>", f.Name) }

func NewFunc(name string, handle any) *FuncValue { return &FuncValue{Name: name, Handle: handle} }
