// Package eval implements Naftah's tree-walking AST evaluator (spec.md
// §4.4, C4): one method per AST node kind, producing a Value (or the unit
// value None for statement forms), threading the execution context (C3)
// and dispatching operators (C2) and calls (C5/C6).
//
// Grounded on the statement/expression dispatch shape of
// github.com/cwbudde/go-dws internal/interp's Eval switch (one evalX
// method per node type, propagating Go errors instead of host exceptions
// for operator-level failures per spec.md §7's error discipline).
package eval

import (
	"io"
	"os"

	"github.com/naftah-lang/naftah/internal/ast"
	"github.com/naftah-lang/naftah/internal/context"
	"github.com/naftah-lang/naftah/internal/function"
	"github.com/naftah-lang/naftah/internal/value"
)

// Evaluator holds the process-wide state shared by every evaluation: the
// frozen function registry and the host-facing output stream `print`
// writes to.
type Evaluator struct {
	Registry *function.Registry
	Stdout   io.Writer
	Tokens   value.Tokens
	MaxDepth int
}

// New creates an Evaluator. registry should already be frozen (spec.md §9:
// "after startup it is read-only").
func New(registry *function.Registry) *Evaluator {
	return &Evaluator{
		Registry: registry,
		Stdout:   os.Stdout,
		Tokens:   value.DefaultTokens,
		MaxDepth: context.DefaultMaxDepth,
	}
}

// EvalProgram evaluates a whole program in a fresh root context (spec.md
// §4.4: "Program: evaluate statements in order; stop at the first
// statement whose subtree executed a return; return the last value
// produced").
func (e *Evaluator) EvalProgram(prog *ast.Program) (value.Value, error) {
	root := context.NewRoot()
	root.SetCallStack(context.NewCallStack(e.maxDepth()))
	flow, err := e.evalStatements(root, prog.Statements)
	if err != nil {
		return nil, err
	}
	return flow.Value, nil
}

func (e *Evaluator) maxDepth() int {
	if e.MaxDepth <= 0 {
		return context.DefaultMaxDepth
	}
	return e.MaxDepth
}
