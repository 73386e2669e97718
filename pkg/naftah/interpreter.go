package naftah

import (
	"fmt"
	"io"
	"reflect"

	"github.com/naftah-lang/naftah/internal/ast"
	"github.com/naftah-lang/naftah/internal/bridge"
	"github.com/naftah-lang/naftah/internal/eval"
	"github.com/naftah-lang/naftah/internal/function"
	"github.com/naftah-lang/naftah/internal/value"

	"github.com/naftah-lang/naftah/internal/builtins"
)

// Interpreter is the embedding entry point: a frozen-at-first-Eval function
// registry plus an Evaluator configured from Options.
type Interpreter struct {
	registry  *function.Registry
	evaluator *eval.Evaluator
	frozen    bool
}

// New creates an Interpreter. Host-reflected functions may be registered
// via RegisterHostFunction up until the first call to Eval, which freezes
// the registry (spec.md §9: "after startup it is read-only").
func New(opts Options) *Interpreter {
	reg := function.NewRegistry()
	ev := eval.New(reg)
	ev.Tokens = opts.tokens()
	ev.MaxDepth = opts.MaxCallDepth

	builtins.Register(reg, stdoutProxy{ev: ev}, opts.tokens())
	for alias, canonical := range opts.Aliases {
		reg.Alias(alias, canonical)
	}

	return &Interpreter{registry: reg, evaluator: ev}
}

// stdoutProxy forwards `print` output to the evaluator's current Stdout,
// so a later SetStdout call takes effect for the already-registered builtin.
type stdoutProxy struct{ ev *eval.Evaluator }

func (p stdoutProxy) Write(b []byte) (int, error) { return p.ev.Stdout.Write(b) }

// SetStdout redirects the stream `print` writes to.
func (in *Interpreter) SetStdout(w io.Writer) { in.evaluator.Stdout = w }

// RegisterHostFunction exposes a native Go function as a host-reflected
// builtin (spec.md §4.5/§4.6): fn must be a Go func value. Each Go
// parameter becomes one untyped descriptor Param (named arg0, arg1, ...),
// so the overload resolver (§4.5) does not see the Go parameter types;
// arguments are converted to those types by the native bridge at call
// time, and return values are converted back via the bridge (§4.6).
// A trailing error return is treated as the call's error result rather
// than part of the Naftah-visible return value.
func (in *Interpreter) RegisterHostFunction(name string, fn any) error {
	if in.frozen {
		return fmt.Errorf("naftah: cannot register %q after Eval has run", name)
	}
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		return fmt.Errorf("naftah: RegisterHostFunction(%q): not a function", name)
	}

	numOut := ft.NumOut()
	errorOut := numOut > 0 && ft.Out(numOut-1) == reflect.TypeOf((*error)(nil)).Elem()
	valueOutCount := numOut
	if errorOut {
		valueOutCount--
	}

	params := make([]function.Param, ft.NumIn())
	for i := range params {
		params[i] = function.Param{Name: fmt.Sprintf("arg%d", i)}
	}

	in.registry.RegisterHost(&function.HostReflectedFunction{
		Descriptor: function.Descriptor{Name: name, Params: params, Variadic: ft.IsVariadic()},
		Call: func(_ any, args []value.Value) (value.Value, error) {
			callArgs := make([]reflect.Value, ft.NumIn())
			originals := make([]value.Value, ft.NumIn())
			for i := 0; i < ft.NumIn(); i++ {
				targetType := ft.In(i)
				if ft.IsVariadic() && i == ft.NumIn()-1 {
					targetType = targetType.Elem()
				}
				var src value.Value
				if i < len(args) {
					src = args[i]
				} else {
					src = value.None
				}
				originals[i] = src
				converted, err := bridge.ConvertArgument(src, targetType)
				if err != nil {
					return nil, err
				}
				callArgs[i] = reflect.ValueOf(converted)
			}

			var out []reflect.Value
			if ft.IsVariadic() {
				out = fv.CallSlice(callArgs)
			} else {
				out = fv.Call(callArgs)
			}

			// Write each possibly-mutated argument back into its
			// originating Value (spec.md §4.6 operation 2), mirroring the
			// per-parameter ConvertArgument call going in. Arguments the
			// caller never supplied (defaulted to None above) have nothing
			// to write back into.
			for i := 0; i < ft.NumIn() && i < len(args); i++ {
				bridge.WriteBack(originals[i], callArgs[i].Interface())
			}

			if errorOut {
				if errVal := out[len(out)-1]; !errVal.IsNil() {
					return nil, errVal.Interface().(error)
				}
				out = out[:len(out)-1]
			}

			switch valueOutCount {
			case 0:
				return value.None, nil
			case 1:
				return bridge.FromNative(out[0].Interface()), nil
			default:
				elems := make([]value.Value, valueOutCount)
				for i, o := range out {
					elems[i] = bridge.FromNative(o.Interface())
				}
				return value.NewTuple(elems...), nil
			}
		},
	})
	return nil
}

// Eval runs a whole program (spec.md §4.4's Program rule), freezing the
// function registry on first use.
func (in *Interpreter) Eval(prog *ast.Program) (value.Value, error) {
	if !in.frozen {
		in.registry.Freeze()
		in.frozen = true
	}
	return in.evaluator.EvalProgram(prog)
}
