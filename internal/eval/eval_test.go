package eval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/naftah-lang/naftah/internal/ast"
	"github.com/naftah-lang/naftah/internal/builtins"
	"github.com/naftah-lang/naftah/internal/context"
	"github.com/naftah-lang/naftah/internal/errors"
	"github.com/naftah-lang/naftah/internal/function"
	"github.com/naftah-lang/naftah/internal/value"
)

// --- small AST-construction helpers (spec.md §6's closed node set has no
// parser in this repo's scope, so tests build programs directly) ---

func num(raw string) *ast.Literal  { return &ast.Literal{Kind: ast.LiteralNumber, Raw: raw} }
func str(raw string) *ast.Literal  { return &ast.Literal{Kind: ast.LiteralString, Raw: raw} }
func boolLit(b bool) *ast.Literal  { return &ast.Literal{Kind: ast.LiteralBool, Bool: b} }
func id(name string) *ast.Identifier { return &ast.Identifier{Name: name} }
func qn(name string) ast.QualifiedName { return ast.QualifiedName{Name: name} }

func call(name string, args ...ast.Expression) *ast.FunctionCall {
	arguments := make([]ast.Argument, len(args))
	for i, a := range args {
		arguments[i] = ast.Argument{Value: a}
	}
	return &ast.FunctionCall{Callee: qn(name), Arguments: arguments}
}

func declare(name string, constant bool, init ast.Expression) *ast.Declaration {
	return &ast.Declaration{Name: name, Constant: constant, Initializer: init}
}

func assign(name string, v ast.Expression) *ast.Assignment {
	return &ast.Assignment{Target: qn(name), Value: v}
}

func exprStmt(e ast.Expression) *ast.ExpressionStatement { return &ast.ExpressionStatement{Expr: e} }
func block(stmts ...ast.Statement) *ast.Block            { return &ast.Block{Statements: stmts} }
func program(stmts ...ast.Statement) *ast.Program        { return &ast.Program{Statements: stmts} }
func ret(e ast.Expression) *ast.Return                   { return &ast.Return{Value: e} }
func bin(op string, l, r ast.Expression) *ast.BinaryOp    { return &ast.BinaryOp{Op: op, Left: l, Right: r} }

func newTestEvaluator(stdout *bytes.Buffer) *Evaluator {
	reg := function.NewRegistry()
	builtins.Register(reg, stdout, value.DefaultTokens)
	reg.Freeze()
	ev := New(reg)
	ev.Stdout = stdout
	return ev
}

// Scenario 1: arithmetic promotion and print (spec.md §8 scenario 1).
func TestArithmeticPromotionAndPrint(t *testing.T) {
	var out bytes.Buffer
	ev := newTestEvaluator(&out)

	prog := program(
		declare("x", false, num("2")),
		declare("y", false, num("3.0")),
		exprStmt(call("print", call("add", id("x"), id("y")))),
	)

	if _, err := ev.EvalProgram(prog); err != nil {
		t.Fatalf("EvalProgram: %v", err)
	}
	if got := strings.TrimRight(out.String(), "\n"); got != "5.0" {
		t.Fatalf("print output = %q, want %q", got, "5.0")
	}
}

// Scenario 2: recursive factorial.
func TestRecursiveFactorial(t *testing.T) {
	var out bytes.Buffer
	ev := newTestEvaluator(&out)

	// function factorial(n) { if (n < 2) { return 1; } return multiply(n, factorial(subtract(n, 1))); }
	factorialBody := block(
		&ast.If{
			Condition: bin("<", id("n"), num("2")),
			Then:      block(ret(num("1"))),
		},
		ret(call("multiply", id("n"), call("factorial", call("subtract", id("n"), num("1"))))),
	)
	decl := &ast.FunctionDeclaration{
		Name:       "factorial",
		Parameters: []*ast.Parameter{{Name: "n"}},
		Body:       factorialBody,
	}

	prog := program(
		decl,
		declare("result", false, call("factorial", num("5"))),
		exprStmt(call("print", id("result"))),
	)

	if _, err := ev.EvalProgram(prog); err != nil {
		t.Fatalf("EvalProgram: %v", err)
	}
	if got := strings.TrimRight(out.String(), "\n"); got != "120" {
		t.Fatalf("print output = %q, want %q", got, "120")
	}
}

// Scenario 3: string interpolation with an unresolved name.
func TestStringInterpolationUnresolvedName(t *testing.T) {
	var out bytes.Buffer
	ev := newTestEvaluator(&out)

	prog := program(
		declare("name", false, str("world")),
		exprStmt(call("print", str("hello ${name}, ${missing}"))),
	)

	if _, err := ev.EvalProgram(prog); err != nil {
		t.Fatalf("EvalProgram: %v", err)
	}
	if got := strings.TrimRight(out.String(), "\n"); got != "hello world, <empty>" {
		t.Fatalf("print output = %q, want %q", got, "hello world, <empty>")
	}
}

// Scenario 4: element-wise add over two sequences (spec.md §4.2's
// element-wise row) — evaluated by invoking the registered add builtin
// directly, since the closed AST set has no sequence-literal node.
func TestElementWiseAdd(t *testing.T) {
	left := value.NewSeq(value.NewInt64(1), value.NewInt64(2), value.NewInt64(3))
	right := value.NewSeq(value.NewInt64(10), value.NewInt64(20), value.NewInt64(30))

	var out bytes.Buffer
	ev := newTestEvaluator(&out)
	result, err := ev.Registry.Builtins("add")[0].Invoke([]value.Value{left, right})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	seq, ok := result.(*value.SeqValue)
	if !ok {
		t.Fatalf("result is %T, want *value.SeqValue", result)
	}
	want := []int64{11, 22, 33}
	for i, w := range want {
		iv, ok := seq.Elements[i].(value.IntValue)
		if !ok || iv.AsInt64() != w {
			t.Fatalf("element %d = %v, want %d", i, seq.Elements[i], w)
		}
	}

	// Length mismatch raises, per spec.md §4.2.
	mismatched := value.NewSeq(value.NewInt64(1))
	if _, err := ev.Registry.Builtins("add")[0].Invoke([]value.Value{left, mismatched}); err == nil {
		t.Fatalf("expected a length-mismatch error")
	}
}

// Scenario 5: short-circuit logical operators and a constant-write
// violation (spec.md §8's universal laws).
func TestShortCircuitAndConstantWrite(t *testing.T) {
	var out bytes.Buffer
	ev := newTestEvaluator(&out)

	root := context.NewRoot()
	root.SetCallStack(context.NewCallStack(0))

	// logical_or(true, divide(1,0)) yields true without raising.
	orExpr := bin("or", boolLit(true), call("divide", num("1"), num("0")))
	v, err := ev.evalExpression(root, orExpr)
	if err != nil {
		t.Fatalf("short-circuit or: %v", err)
	}
	if !value.Truthy(v) {
		t.Fatalf("short-circuit or = %v, want true", v)
	}

	// Declaring then re-assigning a constant raises ConstantWrite.
	prog2 := program(
		declare("c", true, num("1")),
		assign("c", num("2")),
	)
	_, err = ev.EvalProgram(prog2)
	if !errors.Is(err, errors.KindConstantWrite) {
		t.Fatalf("assigning a constant: err = %v, want ConstantWrite", err)
	}
}
