package context

import (
	"testing"

	"github.com/naftah-lang/naftah/internal/errors"
	"github.com/naftah-lang/naftah/internal/value"
)

func TestDeclareShadowsInChildThenIsRestoredInParent(t *testing.T) {
	root := NewRoot()
	if err := root.Declare("x", false, nil, value.NewInt64(1), nil); err != nil {
		t.Fatalf("Declare: %v", err)
	}

	child := root.NewChild()
	if err := child.Declare("x", false, nil, value.NewInt64(2), nil); err != nil {
		t.Fatalf("Declare in child: %v", err)
	}
	if v, _ := child.Lookup("x"); v.(value.IntValue).AsInt64() != 2 {
		t.Fatalf("child lookup of shadowed x = %v, want 2", v)
	}
	if v, _ := root.Lookup("x"); v.(value.IntValue).AsInt64() != 1 {
		t.Fatalf("root lookup of x after child shadow = %v, want 1", v)
	}
}

func TestAssignWritesNearestExistingBindingAcrossParentChain(t *testing.T) {
	root := NewRoot()
	root.Declare("x", false, nil, value.NewInt64(1), nil)
	child := root.NewChild()

	if err := child.Assign("x", value.NewInt64(9)); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if v, _ := root.Lookup("x"); v.(value.IntValue).AsInt64() != 9 {
		t.Fatalf("root's x after child assign = %v, want 9", v)
	}
}

func TestAssignRejectsConstantRebind(t *testing.T) {
	root := NewRoot()
	root.Declare("c", true, nil, value.NewInt64(1), nil)

	err := root.Assign("c", value.NewInt64(2))
	if !errors.Is(err, errors.KindConstantWrite) {
		t.Fatalf("Assign on a constant: err = %v, want ConstantWrite", err)
	}
}

func TestAssignWithNoExistingBindingDeclaresInCurrentContext(t *testing.T) {
	root := NewRoot()
	if err := root.Assign("y", value.NewInt64(5)); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if v, ok := root.Lookup("y"); !ok || v.(value.IntValue).AsInt64() != 5 {
		t.Fatalf("Lookup(y) = (%v, %v), want (5, true)", v, ok)
	}
}

func TestLookupPrefersArgumentsOverParametersOverVariables(t *testing.T) {
	root := NewRoot()
	call := root.NewCall("f")
	call.BindParameter("n", nil, false, value.NewInt64(1), nil)
	call.variables["n"] = &Binding{Name: "n", Value: value.NewInt64(2)}
	call.BindArgument("n", value.NewInt64(3))

	v, ok := call.Lookup("n")
	if !ok {
		t.Fatalf("Lookup(n) not found")
	}
	if v.(value.IntValue).AsInt64() != 3 {
		t.Fatalf("Lookup(n) = %v, want the bound argument 3", v)
	}
}

func TestChildSharesParentCallFrameForParameterLookup(t *testing.T) {
	root := NewRoot()
	call := root.NewCall("f")
	call.BindParameter("n", nil, false, value.NewInt64(7), nil)

	block := call.NewChild()
	if v, ok := block.Lookup("n"); !ok || v.(value.IntValue).AsInt64() != 7 {
		t.Fatalf("block's Lookup(n) = (%v, %v), want (7, true) via the shared call frame", v, ok)
	}
}

func TestCloseMergesExecutedMarkersIntoParent(t *testing.T) {
	root := NewRoot()
	child := root.NewChild()
	child.MarkExecuted(nil)
	if root.WasExecuted(nil) {
		t.Fatalf("parent must not see the child's executed marker before Close")
	}
	child.Close()
	if !root.WasExecuted(nil) {
		t.Fatalf("parent must see the child's executed marker after Close")
	}
}

func TestCallStackPushPopEnforcesMaxDepth(t *testing.T) {
	cs := NewCallStack(1)
	if err := cs.Push("a", errors.Position{}); err != nil {
		t.Fatalf("first push: %v", err)
	}
	if err := cs.Push("b", errors.Position{}); err == nil {
		t.Fatalf("expected a depth-exceeded error on the second push")
	}
	cs.Pop()
	if cs.Depth() != 0 {
		t.Fatalf("Depth() after pop = %d, want 0", cs.Depth())
	}
}
