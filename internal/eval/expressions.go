package eval

import (
	"github.com/naftah-lang/naftah/internal/ast"
	"github.com/naftah-lang/naftah/internal/context"
	"github.com/naftah-lang/naftah/internal/errors"
	"github.com/naftah-lang/naftah/internal/ops"
	"github.com/naftah-lang/naftah/internal/value"
)

func (e *Evaluator) evalExpression(ctx *context.Context, expr ast.Expression) (value.Value, error) {
	switch ex := expr.(type) {
	case *ast.Literal:
		return e.evalLiteral(ctx, ex)
	case *ast.Identifier:
		return e.evalIdentifier(ctx, ex)
	case ast.QualifiedName:
		return e.evalQualifiedName(ctx, ex)
	case *ast.BinaryOp:
		return e.evalBinaryOp(ctx, ex)
	case *ast.UnaryOp:
		return e.evalUnaryOp(ctx, ex)
	case *ast.FunctionCall:
		return e.evalFunctionCall(ctx, ex)
	default:
		return nil, errors.NewInternalBug("eval: unhandled expression node %T", expr)
	}
}

// evalLiteral implements spec.md §4.4's Literal rule: numeric literals use
// §4.1 parsing; strings interpolate ${...} placeholders.
func (e *Evaluator) evalLiteral(ctx *context.Context, lit *ast.Literal) (value.Value, error) {
	switch lit.Kind {
	case ast.LiteralNumber:
		return value.ParseNumericLiteral(lit.Raw)
	case ast.LiteralString:
		return e.interpolate(ctx, lit.Raw)
	case ast.LiteralChar:
		r := []rune(lit.Raw)
		if len(r) == 0 {
			return value.NewChar(0), nil
		}
		return value.NewChar(r[0]), nil
	case ast.LiteralBool:
		return value.NewBool(lit.Bool), nil
	case ast.LiteralNull:
		return value.None, nil
	default:
		return nil, errors.NewInternalBug("eval: unhandled literal kind %v", lit.Kind)
	}
}

// evalIdentifier implements spec.md §4.4's Identifier rule: arguments of
// the current call -> parameters of the current declared function ->
// variables -> Undefined.
func (e *Evaluator) evalIdentifier(ctx *context.Context, id *ast.Identifier) (value.Value, error) {
	if v, ok := ctx.Lookup(id.Name); ok {
		return v, nil
	}
	return nil, errors.NewUndefined(id.Name)
}

func (e *Evaluator) evalQualifiedName(ctx *context.Context, q ast.QualifiedName) (value.Value, error) {
	if q.Scope == "" {
		if v, ok := ctx.Lookup(q.Name); ok {
			return v, nil
		}
		return nil, errors.NewUndefined(q.Name)
	}
	// A bare scope::name reference (not a call) is not resolved: Naftah's
	// core has no property-access AST node, so it raises Undefined. A
	// scope-qualified name is resolved only as a call's callee — see
	// call.go's evalFunctionCall for the QualifiedName callee case.
	return nil, errors.NewUndefined(q.String())
}

func (e *Evaluator) evalBinaryOp(ctx *context.Context, expr *ast.BinaryOp) (value.Value, error) {
	op, ok := binaryOperator(expr.Op)
	if !ok {
		return nil, errors.NewInternalBug("eval: unknown binary operator %q", expr.Op)
	}

	left, err := e.evalExpression(ctx, expr.Left)
	if err != nil {
		return nil, err
	}

	if op == ops.LogicalAnd || op == ops.LogicalOr {
		return ops.BinaryShortCircuit(op, left, func() (value.Value, error) {
			return e.evalExpression(ctx, expr.Right)
		})
	}

	right, err := e.evalExpression(ctx, expr.Right)
	if err != nil {
		return nil, err
	}
	return ops.Binary(op, left, right)
}

func (e *Evaluator) evalUnaryOp(ctx *context.Context, expr *ast.UnaryOp) (value.Value, error) {
	switch expr.Op {
	case "++pre", "++post", "--pre", "--post":
		return e.evalIncDec(ctx, expr)
	}

	operand, err := e.evalExpression(ctx, expr.Operand)
	if err != nil {
		return nil, err
	}
	op, ok := unaryOperator(expr.Op)
	if !ok {
		return nil, errors.NewInternalBug("eval: unknown unary operator %q", expr.Op)
	}
	return ops.Unary(op, operand)
}

// evalIncDec implements spec.md §4.2's pre/post increment/decrement: only
// an addressable target (an Identifier bound to a variable) may be
// mutated; anything else raises.
func (e *Evaluator) evalIncDec(ctx *context.Context, expr *ast.UnaryOp) (value.Value, error) {
	id, ok := expr.Operand.(*ast.Identifier)
	if !ok {
		return nil, errors.NewUnsupportedOperation(expr.Op, "non-addressable", "")
	}
	_, binding, found := ctx.LookupBinding(id.Name)
	if !found {
		return nil, errors.NewUndefined(id.Name)
	}
	if binding.Constant {
		return nil, errors.NewConstantWrite(id.Name)
	}

	op, ok := unaryOperator(expr.Op)
	if !ok {
		return nil, errors.NewInternalBug("eval: unknown unary operator %q", expr.Op)
	}
	return ops.IncDec(op,
		func() value.Value { return binding.Value },
		func(v value.Value) { _ = ctx.Assign(id.Name, v) },
	)
}

func binaryOperator(sym string) (ops.Operator, bool) {
	switch sym {
	case "+":
		return ops.Add, true
	case "-":
		return ops.Subtract, true
	case "*":
		return ops.Multiply, true
	case "/":
		return ops.Divide, true
	case "%":
		return ops.Modulo, true
	case "<":
		return ops.LessThan, true
	case "<=":
		return ops.LessThanEquals, true
	case ">":
		return ops.GreaterThan, true
	case ">=":
		return ops.GreaterThanEquals, true
	case "==":
		return ops.Equals, true
	case "!=":
		return ops.NotEquals, true
	case "and":
		return ops.LogicalAnd, true
	case "or":
		return ops.LogicalOr, true
	case "&":
		return ops.BitAnd, true
	case "|":
		return ops.BitOr, true
	case "^":
		return ops.BitXor, true
	case "<<":
		return ops.ShiftLeft, true
	case ">>":
		return ops.ShiftRight, true
	case ">>>":
		return ops.UnsignedShiftRight, true
	default:
		return "", false
	}
}

func unaryOperator(sym string) (ops.Operator, bool) {
	switch sym {
	case "+":
		return ops.Positive, true
	case "-":
		return ops.Negate, true
	case "!":
		return ops.Not, true
	case "~":
		return ops.BitNot, true
	case "++pre":
		return ops.PreIncrement, true
	case "++post":
		return ops.PostIncrement, true
	case "--pre":
		return ops.PreDecrement, true
	case "--post":
		return ops.PostDecrement, true
	default:
		return "", false
	}
}
