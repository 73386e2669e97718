package context

import "github.com/naftah-lang/naftah/internal/value"

// FlowKind tags a Flow sentinel's variant (spec.md §9's "Exceptions for
// control flow" design note: "use explicit result variants (Normal(v),
// Returning(v), Cancelled) from statement evaluators; never rely on
// host-level exceptions for control flow").
type FlowKind int

const (
	FlowNormal FlowKind = iota
	FlowReturning
	FlowCancelled
)

// Flow is the evaluator's statement-result sentinel. Every statement
// evaluation produces one; callers inspect Kind before continuing to the
// next sibling statement.
type Flow struct {
	Kind  FlowKind
	Value value.Value
}

// Normal wraps an ordinary produced value with no unwind in progress.
func Normal(v value.Value) Flow { return Flow{Kind: FlowNormal, Value: v} }

// Returning signals that a Return statement executed; the enclosing
// function call should stop evaluating further statements and yield v.
func Returning(v value.Value) Flow { return Flow{Kind: FlowReturning, Value: v} }

// Cancelled signals a cooperative cancellation request observed at a block
// boundary or function entry (spec.md §5).
func Cancelled() Flow { return Flow{Kind: FlowCancelled} }

// IsUnwinding reports whether this Flow should stop sibling-statement
// evaluation and propagate upward instead.
func (f Flow) IsUnwinding() bool {
	return f.Kind == FlowReturning || f.Kind == FlowCancelled
}
