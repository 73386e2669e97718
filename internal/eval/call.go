package eval

import (
	"github.com/naftah-lang/naftah/internal/ast"
	"github.com/naftah-lang/naftah/internal/context"
	"github.com/naftah-lang/naftah/internal/errors"
	"github.com/naftah-lang/naftah/internal/function"
	"github.com/naftah-lang/naftah/internal/value"
)

// evalFunctionCall implements spec.md §4.5's call-dispatch rule: evaluate
// arguments left-to-right, then resolve the callee as a declared function
// value visible through the context chain, falling back to the frozen
// registry's built-in/host-reflected overload sets; a scope-qualified
// callee is an instance call against the receiver bound under Scope.
func (e *Evaluator) evalFunctionCall(ctx *context.Context, call *ast.FunctionCall) (value.Value, error) {
	args := make([]value.Value, len(call.Arguments))
	names := make([]string, len(call.Arguments))
	for i, a := range call.Arguments {
		v, err := e.evalExpression(ctx, a.Value)
		if err != nil {
			return nil, err
		}
		args[i] = v
		names[i] = a.Name
	}

	if call.Callee.Scope != "" {
		return e.callQualified(ctx, call.Callee.Scope, call.Callee.Name, args, names, call.Pos())
	}

	name := call.Callee.Name
	if v, ok := ctx.Lookup(name); ok {
		if fv, ok := v.(*value.FuncValue); ok {
			return e.invoke(ctx, fv, args, names, call.Pos())
		}
	}
	return e.callRegistered(ctx, name, args, names, call.Pos())
}

// invoke dispatches by the concrete handle a FuncValue wraps: a declared
// function walks the evaluator, a built-in/host-reflected handle (reached
// when a closure was bound over a registry lookup) calls straight through.
func (e *Evaluator) invoke(ctx *context.Context, fv *value.FuncValue, args []value.Value, names []string, pos errors.Position) (value.Value, error) {
	switch fn := fv.Handle.(type) {
	case *function.DeclaredFunction:
		return e.callDeclared(ctx, fn, args, names, pos)
	case *function.BuiltinFunction:
		return fn.Invoke(orderPositional(fn.Params, args, names))
	case *function.HostReflectedFunction:
		return fn.Call(fn.Receiver, orderPositional(fn.Params, args, names))
	default:
		return nil, errors.NewInternalBug("eval: unhandled function handle %T", fv.Handle)
	}
}

// callDeclared runs a DeclaredFunction's body in a fresh call frame rooted
// at its captured lexical scope (spec.md §9 "Cyclic references": a closure
// resolves free names against the scope present at declaration time, not
// the caller's scope), bounded by the shared call stack (spec.md §4.3
// recursion-depth guard).
func (e *Evaluator) callDeclared(caller *context.Context, fn *function.DeclaredFunction, args []value.Value, names []string, pos errors.Position) (value.Value, error) {
	capturedScope, ok := fn.CapturedScope.(*context.Context)
	if !ok {
		return nil, errors.NewInternalBug("eval: function %q has no captured scope", fn.Name)
	}

	stack := caller.CallStack()
	if stack == nil {
		stack = capturedScope.CallStack()
	}
	if stack != nil {
		if err := stack.Push(fn.Name, pos); err != nil {
			return nil, err
		}
		defer stack.Pop()
	}

	callCtx := capturedScope.NewCall(fn.Name)
	if err := e.bindParameters(callCtx, fn.Params, fn.Variadic, args, names); err != nil {
		return nil, err
	}

	flow, err := e.evalStatements(callCtx, fn.Body.Statements)
	callCtx.Close()
	if err != nil {
		return nil, err
	}
	if flow.Kind == context.FlowReturning {
		return flow.Value, nil
	}
	return value.None, nil
}

// bindParameters matches call arguments (positional, then named overrides)
// against a declared parameter list, evaluating any unfilled parameter's
// default expression in the call's own frame, and packing a trailing
// variadic parameter into a Seq of the remaining positional arguments
// (spec.md §4.5).
func (e *Evaluator) bindParameters(callCtx *context.Context, params []function.Param, variadic bool, args []value.Value, names []string) error {
	byName := make(map[string]value.Value, len(names))
	var positional []value.Value
	for i, n := range names {
		if n != "" {
			byName[n] = args[i]
		} else {
			positional = append(positional, args[i])
		}
	}

	posIdx := 0
	for i, p := range params {
		last := i == len(params)-1
		if variadic && last {
			rest := make([]value.Value, 0, len(positional)-posIdx)
			rest = append(rest, positional[posIdx:]...)
			callCtx.BindParameter(p.Name, p.Type, p.Constant, value.NewSeq(rest...), nil)
			posIdx = len(positional)
			continue
		}

		if v, ok := byName[p.Name]; ok {
			callCtx.BindParameter(p.Name, p.Type, p.Constant, v, nil)
			continue
		}
		if posIdx < len(positional) {
			callCtx.BindParameter(p.Name, p.Type, p.Constant, positional[posIdx], nil)
			posIdx++
			continue
		}
		if p.Default != nil {
			// Defaults evaluate in the call's own frame: they may reference
			// earlier parameters of the same call, matching ordinary
			// left-to-right expression evaluation.
			v, err := e.evalExpression(callCtx, p.Default)
			if err != nil {
				return err
			}
			callCtx.BindParameter(p.Name, p.Type, p.Constant, v, nil)
			continue
		}
		return errors.NewArgumentCountMismatch(p.Name, len(params), len(positional)+len(byName))
	}
	return nil
}

// orderPositional reorders named arguments into a candidate's declared
// parameter order for a built-in/host-reflected call; positional arguments
// pass through untouched when no call site used named arguments.
func orderPositional(params []function.Param, args []value.Value, names []string) []value.Value {
	named := false
	for _, n := range names {
		if n != "" {
			named = true
			break
		}
	}
	if !named {
		return args
	}

	byName := make(map[string]value.Value, len(names))
	var positional []value.Value
	for i, n := range names {
		if n != "" {
			byName[n] = args[i]
		} else {
			positional = append(positional, args[i])
		}
	}
	out := make([]value.Value, len(params))
	posIdx := 0
	for i, p := range params {
		if v, ok := byName[p.Name]; ok {
			out[i] = v
			continue
		}
		if posIdx < len(positional) {
			out[i] = positional[posIdx]
			posIdx++
			continue
		}
		out[i] = value.None
	}
	return out
}

// callRegistered resolves name against the frozen registry's built-in and
// host-reflected overload sets (spec.md §4.5's best-overload scoring),
// preferring built-ins when both tables define a same-named overload with
// an equal score.
func (e *Evaluator) callRegistered(ctx *context.Context, name string, args []value.Value, names []string, pos errors.Position) (value.Value, error) {
	if e.Registry == nil {
		return nil, errors.NewUndefined(name)
	}

	builtins := e.Registry.Builtins(name)
	hosts := e.Registry.Hosts(name)
	if len(builtins) == 0 && len(hosts) == 0 {
		return nil, errors.NewUndefined(name)
	}

	var candidates [][]function.Param
	var variadicFlags []bool
	for _, b := range builtins {
		candidates = append(candidates, b.Params)
		variadicFlags = append(variadicFlags, b.Variadic)
	}
	for _, h := range hosts {
		candidates = append(candidates, h.Params)
		variadicFlags = append(variadicFlags, h.Variadic)
	}

	ordered := make([][]value.Value, len(candidates))
	for i, params := range candidates {
		ordered[i] = orderPositional(params, args, names)
	}

	best, ok := function.Resolve(candidates, variadicFlags, args)
	if !ok {
		return nil, errors.NewNoSuchMethod(name)
	}

	callArgs := ordered[best]
	if best < len(builtins) {
		return builtins[best].Invoke(callArgs)
	}
	host := hosts[best-len(builtins)]

	if stack := ctx.CallStack(); stack != nil {
		if err := stack.Push(name, pos); err != nil {
			return nil, err
		}
		defer stack.Pop()
	}
	return host.Call(host.Receiver, callArgs)
}

// callQualified implements spec.md §4.5's instance-method qualified call:
// the receiver is looked up by name through the context chain, then name
// is resolved among the host-reflected overloads carrying a matching
// InstanceType.
func (e *Evaluator) callQualified(ctx *context.Context, scope, name string, args []value.Value, names []string, pos errors.Position) (value.Value, error) {
	receiver, ok := ctx.Lookup(scope)
	if !ok {
		return nil, errors.NewUndefined(scope)
	}
	wrapped, ok := receiver.(*value.WrappedValue)
	if !ok {
		return nil, errors.NewNoSuchMethod(scope + "::" + name)
	}

	hosts := e.Registry.Hosts(name)
	var candidates [][]function.Param
	var variadicFlags []bool
	var matched []*function.HostReflectedFunction
	for _, h := range hosts {
		if h.InstanceType != "" && h.InstanceType != wrapped.HostType {
			continue
		}
		candidates = append(candidates, h.Params)
		variadicFlags = append(variadicFlags, h.Variadic)
		matched = append(matched, h)
	}
	if len(matched) == 0 {
		return nil, errors.NewNoSuchMethod(scope + "::" + name)
	}

	best, ok := function.Resolve(candidates, variadicFlags, args)
	if !ok {
		return nil, errors.NewNoSuchMethod(scope + "::" + name)
	}
	host := matched[best]
	callArgs := orderPositional(host.Params, args, names)

	if stack := ctx.CallStack(); stack != nil {
		if err := stack.Push(scope+"::"+name, pos); err != nil {
			return nil, err
		}
		defer stack.Pop()
	}
	return host.Call(wrapped.Host, callArgs)
}
