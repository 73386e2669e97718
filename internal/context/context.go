// Package context implements Naftah's execution context (spec.md §3, §4.3):
// the parent-linked scope stack that binds variables, parameters, and
// per-call arguments, plus the per-node executed-marker set the evaluator
// uses to suppress re-entrant side effects.
//
// Grounded on the parent-linked scope chain of github.com/cwbudde/go-dws
// internal/interp/runtime/environment.go, generalized from its single
// case-insensitive store to the three-way variables/parameters/arguments
// key space spec.md §3 requires, and on execution_context.go's push/pop
// lifecycle for nested scopes.
package context

import (
	"fmt"
	"sync/atomic"

	"github.com/naftah-lang/naftah/internal/ast"
	"github.com/naftah-lang/naftah/internal/errors"
	"github.com/naftah-lang/naftah/internal/value"
)

// Binding is a DeclaredVariable (spec.md §3): name, declared type, constant
// flag, current value, and the AST node that introduced it.
type Binding struct {
	Name     string
	Type     *ast.TypeExpr
	Constant bool
	Value    value.Value
	Origin   ast.Node
}

var callNonce int64

// nextFunctionCallID mints a globally unique id per call-site invocation
// (spec.md §4.3, GLOSSARY "function-call id"): depth, function name, and a
// monotonically increasing nonce.
func nextFunctionCallID(depth int, functionName string) string {
	n := atomic.AddInt64(&callNonce, 1)
	return fmt.Sprintf("%d:%s:%d", depth, functionName, n)
}

// Context is the evaluator's scope: a node in the parent-linked stack
// described by spec.md §4.3. Only a call frame (the root from NewRoot, or
// a function activation from NewCall) carries non-nil parameters/arguments
// tables;
// plain blocks (see NewChild) carry only variables, and identifier lookup
// climbs to the nearest enclosing call frame for the other two (spec.md
// §4.4: "arguments (of the current call) -> parameters (of the current
// declared function) -> variables").
type Context struct {
	depth   int
	parent  *Context
	call    *Context // nearest ancestor (or self) that is a call frame; the root is its own call frame
	callID  string

	variables  map[string]*Binding
	parameters map[string]*Binding // only non-nil on a call frame
	arguments  map[string]value.Value // only non-nil on a call frame

	executed  map[ast.Node]bool
	callStack *CallStack // shared across the whole evaluation; set at the root
}

// NewRoot creates the depth-0 context. It is also a call frame root so that
// top-level code can use the same identifier-lookup path as a function
// body.
func NewRoot() *Context {
	c := &Context{
		depth:      0,
		variables:  make(map[string]*Binding),
		parameters: make(map[string]*Binding),
		arguments:  make(map[string]value.Value),
		executed:   make(map[ast.Node]bool),
	}
	c.call = c
	return c
}

// NewChild opens a plain nested scope (a Block, per spec.md §4.4: "opening
// a block pushes a child context"). It shares its parent's nearest call
// frame for parameter/argument lookup.
func (c *Context) NewChild() *Context {
	return &Context{
		depth:     c.depth + 1,
		parent:    c,
		call:      c.call,
		variables: make(map[string]*Binding),
		executed:  make(map[ast.Node]bool),
		callStack: c.callStack,
	}
}

// NewCall opens a function activation context: a fresh call frame with its
// own parameter/argument tables and a freshly minted function_call_id.
func (c *Context) NewCall(functionName string) *Context {
	child := &Context{
		depth:      c.depth + 1,
		parent:     c,
		variables:  make(map[string]*Binding),
		parameters: make(map[string]*Binding),
		arguments:  make(map[string]value.Value),
		executed:   make(map[ast.Node]bool),
		callStack:  c.callStack,
	}
	child.call = child
	child.callID = nextFunctionCallID(child.depth, functionName)
	return child
}

// SetCallStack attaches the shared call-stack instance; callers set this
// once on the root context before evaluation begins.
func (c *Context) SetCallStack(cs *CallStack) { c.callStack = cs }

// CallStack returns the shared call-stack instance (spec.md §4.3's call
// stack for return-value propagation and recursion-depth bounding).
func (c *Context) CallStack() *CallStack { return c.callStack }

// Depth returns this context's depth in the live context stack.
func (c *Context) Depth() int { return c.depth }

// Parent returns the weak parent reference (lookup only, per spec.md §3's
// "parent reference (weak -- lookup only, never ownership of the
// parent)").
func (c *Context) Parent() *Context { return c.parent }

// FunctionCallID returns this call frame's nonce, or "" if this context was
// not created by NewCall (the root and plain blocks have none).
func (c *Context) FunctionCallID() string { return c.callID }

func (c *Context) argKey(name string) string {
	return c.call.callID + "::" + name
}

// BindParameter installs a parameter's current value for this call
// activation. Must be called on a call frame (one created via NewCall).
func (c *Context) BindParameter(name string, typ *ast.TypeExpr, constant bool, v value.Value, origin ast.Node) {
	c.parameters[c.argKey(name)] = &Binding{Name: name, Type: typ, Constant: constant, Value: v, Origin: origin}
}

// BindArgument installs an evaluated call argument, namespaced by this
// call's function_call_id so recursive activations never collide (spec.md
// §4.3's "Parameter/argument naming" invariant). Must be called on a call
// frame.
func (c *Context) BindArgument(name string, v value.Value) {
	c.arguments[c.argKey(name)] = v
}

// Declare creates a new binding in the current context only (spec.md §4.4:
// "Explicit declaration always creates in the current context only, and
// shadows the parent"). Raises if name is already declared in this exact
// context.
func (c *Context) Declare(name string, constant bool, typ *ast.TypeExpr, v value.Value, origin ast.Node) error {
	if _, exists := c.variables[name]; exists {
		return errors.NewInternalBug("duplicate declaration of %q in the same context", name)
	}
	c.variables[name] = &Binding{Name: name, Type: typ, Constant: constant, Value: v, Origin: origin}
	return nil
}

// Lookup resolves an identifier per spec.md §4.4's precedence: arguments of
// the current call, then parameters of the current declared function, then
// variables walking the parent chain outward from c.
func (c *Context) Lookup(name string) (value.Value, bool) {
	if c.call != nil {
		if v, ok := c.call.arguments[c.call.argKey(name)]; ok {
			return v, true
		}
		if b, ok := c.call.parameters[c.call.argKey(name)]; ok {
			return b.Value, true
		}
	}
	for cur := c; cur != nil; cur = cur.parent {
		if b, ok := cur.variables[name]; ok {
			return b.Value, true
		}
	}
	return nil, false
}

// LookupBinding is like Lookup but returns the full Binding (needed to
// check the constant flag before an assignment), searching only the
// variables chain (spec.md §4.4's Assignment rule applies to declared
// variables, not parameters/arguments).
func (c *Context) LookupBinding(name string) (*Context, *Binding, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if b, ok := cur.variables[name]; ok {
			return cur, b, true
		}
	}
	return nil, nil, false
}

// Assign implements spec.md §4.4's Assignment rule: if the binding is
// constant and already initialized, raise ConstantWrite; otherwise rebind
// in place. If no binding exists anywhere in the chain, a new one is
// created in the current context (spec.md §4.3: "writes target the
// nearest existing binding or, if none exists, create a new binding in the
// current context").
func (c *Context) Assign(name string, v value.Value) error {
	if _, b, ok := c.LookupBinding(name); ok {
		if b.Constant {
			return errors.NewConstantWrite(name)
		}
		b.Value = v
		return nil
	}
	c.variables[name] = &Binding{Name: name, Value: v}
	return nil
}

// MarkExecuted records that node has already produced its value during the
// current statement's evaluation (spec.md §4.3's executed-marker set).
func (c *Context) MarkExecuted(node ast.Node) { c.executed[node] = true }

// WasExecuted reports whether node was already marked executed in this
// context or any ancestor.
func (c *Context) WasExecuted(node ast.Node) bool {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.executed[node] {
			return true
		}
	}
	return false
}

// Close merges this context's executed-marker set into its parent before
// it goes out of scope (spec.md §4.3: "When a child context is torn down,
// its executed-flags are merged into its parent").
func (c *Context) Close() {
	if c.parent == nil {
		return
	}
	for node := range c.executed {
		c.parent.executed[node] = true
	}
}
