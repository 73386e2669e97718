// Package errors defines the tagged runtime error kinds raised by the Naftah
// evaluator, plus call-stack trace formatting for unwound errors.
//
// Grounded on github.com/cwbudde/go-dws internal/interp/runtime/errors.go
// (per-kind struct + New* constructor + Is*Error predicate) and
// internal/errors/errors.go (source-position formatting), internal/interp/runtime/callstack.go
// (bounded call stack with stack-trace rendering).
package errors

import "fmt"

// Position is a source location, supplied by the external parser (§6).
// The core never constructs one from scratch except for InternalBug.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Line == 0 && p.Column == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Kind enumerates the tagged error kinds from spec.md §7.
type Kind int

const (
	KindParseError Kind = iota
	KindUndefined
	KindArgumentCountMismatch
	KindNoSuchMethod
	KindUnsupportedOperation
	KindArithmeticError
	KindConstantWrite
	KindInternalBug
	KindStackOverflow
)

func (k Kind) String() string {
	switch k {
	case KindParseError:
		return "ParseError"
	case KindUndefined:
		return "Undefined"
	case KindArgumentCountMismatch:
		return "ArgumentCountMismatch"
	case KindNoSuchMethod:
		return "NoSuchMethod"
	case KindUnsupportedOperation:
		return "UnsupportedOperation"
	case KindArithmeticError:
		return "ArithmeticError"
	case KindConstantWrite:
		return "ConstantWrite"
	case KindInternalBug:
		return "InternalBug"
	case KindStackOverflow:
		return "StackOverflow"
	default:
		return "UnknownError"
	}
}

// RuntimeError is the concrete error type raised by every component of the
// core. It carries the tag from §7, a message, an optional source position,
// and an optional call stack. CallSite is set only through WithTrace; the
// core's own raises leave it empty.
type RuntimeError struct {
	Kind     Kind
	Message  string
	Pos      Position
	CallSite StackTrace
}

func (e *RuntimeError) Error() string {
	if e.Pos.String() != "" {
		return fmt.Sprintf("%s: %s at %s", e.Kind, e.Message, e.Pos)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// WithTrace returns a copy of the error with the given call trace attached.
func (e *RuntimeError) WithTrace(trace StackTrace) *RuntimeError {
	cp := *e
	cp.CallSite = trace
	return &cp
}

func newErr(kind Kind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// New constructors, one per kind, matching runtime.New*Error's naming.

func NewUndefined(name string) *RuntimeError {
	return newErr(KindUndefined, "undefined identifier or function: %s", name)
}

func NewArgumentCountMismatch(name string, want, got int) *RuntimeError {
	return newErr(KindArgumentCountMismatch, "%s expects %d argument(s), got %d", name, want, got)
}

func NewNoSuchMethod(name string) *RuntimeError {
	return newErr(KindNoSuchMethod, "no overload of %s matches the given arguments", name)
}

func NewUnsupportedOperation(op string, leftKind, rightKind string) *RuntimeError {
	if rightKind == "" {
		return newErr(KindUnsupportedOperation, "unsupported operation: %s %s", op, leftKind)
	}
	return newErr(KindUnsupportedOperation, "unsupported operation: %s %s %s", leftKind, op, rightKind)
}

func NewArithmeticError(operation string) *RuntimeError {
	return newErr(KindArithmeticError, "arithmetic error: %s", operation)
}

func NewConstantWrite(name string) *RuntimeError {
	return newErr(KindConstantWrite, "cannot assign to constant binding %q after initialization", name)
}

func NewInternalBug(format string, args ...any) *RuntimeError {
	return newErr(KindInternalBug, format, args...)
}

func NewStackOverflow(maxDepth int) *RuntimeError {
	return newErr(KindStackOverflow, "call stack exceeded maximum depth (%d)", maxDepth)
}

// NewParseError wraps an error surfaced by the external parser, propagated
// as-is per §7.
func NewParseError(message string, pos Position) *RuntimeError {
	return &RuntimeError{Kind: KindParseError, Message: message, Pos: pos}
}

// Is reports whether err is a *RuntimeError of the given kind.
func Is(err error, kind Kind) bool {
	re, ok := err.(*RuntimeError)
	return ok && re.Kind == kind
}
