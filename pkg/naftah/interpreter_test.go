package naftah

import (
	"testing"

	"github.com/naftah-lang/naftah/internal/ast"
	"github.com/naftah-lang/naftah/internal/value"
)

func num(raw string) *ast.Literal     { return &ast.Literal{Kind: ast.LiteralNumber, Raw: raw} }
func id(name string) *ast.Identifier  { return &ast.Identifier{Name: name} }
func qn(name string) ast.QualifiedName { return ast.QualifiedName{Name: name} }

func call(name string, args ...ast.Expression) *ast.FunctionCall {
	arguments := make([]ast.Argument, len(args))
	for i, a := range args {
		arguments[i] = ast.Argument{Value: a}
	}
	return &ast.FunctionCall{Callee: qn(name), Arguments: arguments}
}

func declare(name string, init ast.Expression) *ast.Declaration {
	return &ast.Declaration{Name: name, Initializer: init}
}

func exprStmt(e ast.Expression) *ast.ExpressionStatement { return &ast.ExpressionStatement{Expr: e} }
func program(stmts ...ast.Statement) *ast.Program        { return &ast.Program{Statements: stmts} }

func makePair(a, b int64) (value.Value, value.Value) {
	return value.NewInt64(a), value.NewInt64(b)
}

func swapPair(p *value.TupleValue) {
	a, b := p.Elements[0], p.Elements[1]
	p.Rebind(0, b)
	p.Rebind(1, a)
}

// Testable Property 6 (spec.md §8): a host function declared to take a
// Naftah composite Value directly (*value.TupleValue) mutates it in place
// through the native bridge's identity-passthrough + write-back path,
// reachable end-to-end through the public Interpreter.
func TestNativeBridgeWriteBackSwapsPairInPlace(t *testing.T) {
	interp := New(DefaultOptions())
	if err := interp.RegisterHostFunction("make_pair", makePair); err != nil {
		t.Fatalf("RegisterHostFunction(make_pair): %v", err)
	}
	if err := interp.RegisterHostFunction("swap_pair", swapPair); err != nil {
		t.Fatalf("RegisterHostFunction(swap_pair): %v", err)
	}

	prog := program(
		declare("p", call("make_pair", num("1"), num("2"))),
		exprStmt(call("swap_pair", id("p"))),
		exprStmt(id("p")),
	)

	result, err := interp.Eval(prog)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	pair, ok := result.(*value.TupleValue)
	if !ok || len(pair.Elements) != 2 {
		t.Fatalf("result = %#v, want a 2-element *value.TupleValue", result)
	}
	first, ok1 := pair.Elements[0].(value.IntValue)
	second, ok2 := pair.Elements[1].(value.IntValue)
	if !ok1 || !ok2 || first.AsInt64() != 2 || second.AsInt64() != 1 {
		t.Fatalf("swapped pair = (%v, %v), want (2, 1)", pair.Elements[0], pair.Elements[1])
	}
}

func TestOptionsAliasesReachCanonicalBuiltin(t *testing.T) {
	opts := DefaultOptions()
	opts.Aliases = map[string]string{"jamaa": "add"}
	interp := New(opts)

	prog := program(
		exprStmt(call("jamaa", num("2"), num("3"))),
	)
	result, err := interp.Eval(prog)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	iv, ok := result.(value.IntValue)
	if !ok || iv.AsInt64() != 5 {
		t.Fatalf("jamaa(2, 3) = %v, want 5", result)
	}
}
