package context

import "github.com/naftah-lang/naftah/internal/errors"

// CallStack tracks function activations for stack-trace rendering and
// enforces a bounded recursion depth, grounded on github.com/cwbudde/go-dws
// internal/interp/runtime/callstack.go's Push/Pop/Depth API.
type CallStack struct {
	frames   errors.StackTrace
	maxDepth int
}

// DefaultMaxDepth matches the teacher's default call-stack bound.
const DefaultMaxDepth = 1024

// NewCallStack creates a call stack with the given maximum depth; 0 or
// negative selects DefaultMaxDepth.
func NewCallStack(maxDepth int) *CallStack {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &CallStack{frames: errors.NewStackTrace(), maxDepth: maxDepth}
}

// Push adds a frame, or returns a StackOverflow error if maxDepth would be
// exceeded (supplementing spec.md §7's error-kind list per SPEC_FULL.md
// §12).
func (cs *CallStack) Push(functionName string, pos errors.Position) error {
	if len(cs.frames) >= cs.maxDepth {
		return errors.NewStackOverflow(cs.maxDepth)
	}
	cs.frames = append(cs.frames, errors.StackFrame{FunctionName: functionName, Pos: pos})
	return nil
}

// Pop removes the most recent frame; a no-op on an empty stack.
func (cs *CallStack) Pop() {
	if len(cs.frames) > 0 {
		cs.frames = cs.frames[:len(cs.frames)-1]
	}
}

// Depth returns the current number of frames.
func (cs *CallStack) Depth() int { return len(cs.frames) }

// Trace returns a copy of the current frames, newest last.
func (cs *CallStack) Trace() errors.StackTrace {
	out := make(errors.StackTrace, len(cs.frames))
	copy(out, cs.frames)
	return out
}
