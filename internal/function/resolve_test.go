package function

import (
	"testing"

	"github.com/naftah-lang/naftah/internal/ast"
	"github.com/naftah-lang/naftah/internal/value"
)

func intParam(name string) Param  { return Param{Name: name, Type: &ast.TypeExpr{Kind: ast.TypeBuiltin, Name: "int"}} }
func strParam(name string) Param  { return Param{Name: name, Type: &ast.TypeExpr{Kind: ast.TypeBuiltin, Name: "str"}} }
func anyParam(name string) Param  { return Param{Name: name} }

func TestResolvePrefersExactTypeMatchOverConversion(t *testing.T) {
	candidates := [][]Param{
		{strParam("x")},
		{intParam("x")},
	}
	variadic := []bool{false, false}

	idx, ok := Resolve(candidates, variadic, []value.Value{value.NewInt64(1)})
	if !ok {
		t.Fatalf("expected a matching candidate")
	}
	if idx != 1 {
		t.Fatalf("Resolve picked candidate %d, want 1 (exact int match)", idx)
	}
}

func TestResolveExcludesArityMismatch(t *testing.T) {
	candidates := [][]Param{{intParam("x"), intParam("y")}}
	variadic := []bool{false}

	_, ok := Resolve(candidates, variadic, []value.Value{value.NewInt64(1)})
	if ok {
		t.Fatalf("expected no candidate to match a one-argument call against a two-parameter function")
	}
}

func TestResolveVariadicAcceptsExtraTrailingArgs(t *testing.T) {
	candidates := [][]Param{{intParam("first"), anyParam("rest")}}
	variadic := []bool{true}

	_, ok := Resolve(candidates, variadic, []value.Value{
		value.NewInt64(1), value.NewInt64(2), value.NewInt64(3),
	})
	if !ok {
		t.Fatalf("expected the variadic candidate to accept extra trailing arguments")
	}
}

func TestScoreCandidateExcludesNoneForPrimitiveParam(t *testing.T) {
	score := ScoreCandidate([]Param{intParam("x")}, false, []value.Value{value.None})
	if score != Excluded {
		t.Fatalf("ScoreCandidate(None against int) = %d, want Excluded", score)
	}
}

func TestScoreCandidateAllowsNoneForUntypedParam(t *testing.T) {
	score := ScoreCandidate([]Param{anyParam("x")}, false, []value.Value{value.None})
	if score == Excluded {
		t.Fatalf("ScoreCandidate(None against untyped param) must not be excluded")
	}
}
