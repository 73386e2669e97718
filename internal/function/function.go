// Package function implements Naftah's function model and dispatch
// (spec.md §4.5, C5): the three function-descriptor kinds (declared,
// built-in, host-reflected) and the best-overload resolver used whenever a
// call site has more than one visible candidate.
//
// Grounded on the call-dispatch shape of github.com/cwbudde/go-dws
// internal/interp/functions.go's evalCallExpression (resolve-by-name, then
// invoke with evaluated arguments) and external_functions.go's built-in
// registration pattern, generalized to the explicit scoring table spec.md
// §4.5 requires (the teacher picks the first arity-matching overload; it
// has no score-based resolver).
package function

import (
	"github.com/naftah-lang/naftah/internal/ast"
	"github.com/naftah-lang/naftah/internal/value"
)

// Kind distinguishes the three function-descriptor kinds spec.md §4.5
// names.
type Kind int

const (
	KindDeclared Kind = iota
	KindBuiltin
	KindHostReflected
)

// Param describes one formal parameter shared by every function kind
// (spec.md §4.5: "common descriptor").
type Param struct {
	Name     string
	Type     *ast.TypeExpr
	Default  ast.Expression // optional
	Constant bool
}

// Descriptor is the common shape every function kind carries: name,
// parameter-type list, return type, variadic flag, and an optional
// instance type for host-reflected instance methods (spec.md §4.5).
type Descriptor struct {
	Name         string
	Params       []Param
	ReturnType   *ast.TypeExpr
	Variadic     bool
	InstanceType string // "" unless this is an instance method
}

// DeclaredFunction is a user-defined function (spec.md §4.4
// FunctionDeclaration): its body is an AST node, invoked by walking §4.4's
// evaluator rules. CapturedScope is a reference to the defining context,
// captured at declaration time per spec.md §9's "Cyclic references" note
// (stored here as an opaque handle so this package does not import the
// context package, keeping the capture a simple reference rather than an
// ownership edge).
type DeclaredFunction struct {
	Descriptor
	Body          *ast.Block
	CapturedScope any
}

func (f *DeclaredFunction) Kind() Kind { return KindDeclared }

// BuiltinFunction is a primitive operation exposed by the runtime, with
// the user-facing metadata spec.md §4.5 requires (name, description,
// usage) plus the Go closure that performs it.
type BuiltinFunction struct {
	Descriptor
	Description string
	Usage       string
	Invoke      func(args []value.Value) (value.Value, error)
}

func (f *BuiltinFunction) Kind() Kind { return KindBuiltin }

// HostReflectedFunction is a callable handle on a native Go value (static
// or instance), invoked through the bridge package's reflective call path.
type HostReflectedFunction struct {
	Descriptor
	Receiver any // nil for a static function
	Call     func(receiver any, args []value.Value) (value.Value, error)
}

func (f *HostReflectedFunction) Kind() Kind { return KindHostReflected }

// Callable is satisfied by every function-descriptor kind; used where
// dispatch only needs the shared descriptor, not the kind-specific
// invocation path.
type Callable interface {
	Kind() Kind
}
