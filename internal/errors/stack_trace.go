package errors

import (
	"fmt"
	"strings"
)

// StackFrame records one activation on the call stack: the function name
// and the position of its call site. Grounded on
// internal/errors/stack_trace.go's StackFrame/StackTrace pair.
type StackFrame struct {
	FunctionName string
	Pos          Position
}

func (f StackFrame) String() string {
	if f.Pos.String() == "" {
		return f.FunctionName
	}
	return fmt.Sprintf("%s (%s)", f.FunctionName, f.Pos)
}

// StackTrace is an ordered list of frames, oldest call first.
type StackTrace []StackFrame

func NewStackTrace() StackTrace {
	return make(StackTrace, 0, 8)
}

func (t StackTrace) String() string {
	if len(t) == 0 {
		return ""
	}
	lines := make([]string, len(t))
	for i := len(t) - 1; i >= 0; i-- {
		lines[len(t)-1-i] = "  at " + t[i].String()
	}
	return strings.Join(lines, "\n")
}
