package eval

import (
	"bytes"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestMain lets go-snaps prune snapshots that no longer correspond to a
// test, per its documented usage.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// End-to-end program-output snapshot of a multi-statement program with a
// nested block and nested declarations, complementing the exact-string
// assertions in eval_test.go.
func TestSnapshotNestedBlockOutput(t *testing.T) {
	var out bytes.Buffer
	ev := newTestEvaluator(&out)

	prog := program(
		declare("outer", false, num("1")),
		block(
			declare("inner", false, num("2")),
			exprStmt(call("print", call("add", id("outer"), id("inner")))),
		),
		exprStmt(call("print", id("outer"))),
	)

	if _, err := ev.EvalProgram(prog); err != nil {
		t.Fatalf("EvalProgram: %v", err)
	}
	snaps.MatchSnapshot(t, out.String())
}
