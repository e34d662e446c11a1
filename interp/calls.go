package interp

import (
	"go.tfp.dev/shapecheck/ir"
	"go.tfp.dev/shapecheck/symbolic"
)

// resolveCall resolves callee (chasing any PartialApply/FunctionRef chain), dispatches the call,
// and binds op's result register(s).
func resolveCall(st *state, callee Value, argRegs []ir.Register, resultType ir.Type, results []ir.Register, loc *ir.SourceLocation, assume symbolic.BoolExpr) []RawConstraint {
	return resolveResolvedCall(st, callee, regsToValues(st, argRegs), resultType, results, loc, assume)
}

func resolveResolvedCall(st *state, callee Value, callArgs []Value, resultType ir.Type, results []ir.Register, loc *ir.SourceLocation, assume symbolic.BoolExpr) []RawConstraint {
	name, args := resolveCallee(callee, callArgs)
	return dispatchCall(st, name, args, resultType, results, loc, assume)
}

// resolveCallee chases a PartialApply chain down to a terminal FunctionVal, concatenating
// captured arguments ahead of the call-site arguments at every level, in application order.
func resolveCallee(callee Value, trailingArgs []Value) (string, []Value) {
	switch c := callee.(type) {
	case FunctionVal:
		return c.Name, trailingArgs
	case PartialAppVal:
		combined := append(append([]Value{}, c.Args...), trailingArgs...)
		return resolveCallee(c.Fn, combined)
	default:
		return "", nil
	}
}

// dispatchCall handles the three kinds of callee a resolved call can have: the assert builtin
// (which emits a CallConstraint and an Asserted constraint instead of a value), an ordinary builtin (resolved
// immediately to a value), or a user-defined function (whose result is left as a fresh value and
// stood for by a CallConstraint, resolved later during call-stack inlining, per §4.5).
func dispatchCall(st *state, name string, args []Value, resultType ir.Type, results []ir.Register, loc *ir.SourceLocation, assume symbolic.BoolExpr) []RawConstraint {
	if name == "" {
		for _, r := range results {
			st.bind(r, nil)
		}
		return nil
	}

	if name == BuiltinAssert {
		return emitAssert(st, args, loc, assume)
	}

	if h, ok := builtins[name]; ok {
		v, ok := h(args)
		if !ok {
			v = nil
		}
		for _, r := range results {
			st.bind(r, v)
		}
		return nil
	}

	resultVal := st.freshValue(resultType)
	for _, r := range results {
		st.bind(r, resultVal)
	}
	argExprs := make([]symbolic.Expr, len(args))
	for i, a := range args {
		argExprs[i] = ValueExpr(a)
	}
	return []RawConstraint{CallConstraint{
		Name:   name,
		Args:   argExprs,
		Result: ValueExpr(resultVal),
		Assume: assume,
		Loc:    loc,
	}}
}

// emitAssert builds the two constraints a user-written assert(cond, ...) contributes, per §4.2
// point 3: cond is itself an autoclosure, so it must resolve to a function reference rather than
// an already-computed BoolVal. The interpreter binds a fresh boolean variable to that closure's
// result via a CallConstraint, then asserts the fresh variable holds whenever the call site is
// reached. A cond that doesn't resolve to a callee (untracked, or the wrong sort entirely)
// contributes nothing, rather than asserting something meaningless.
func emitAssert(st *state, args []Value, loc *ir.SourceLocation, assume symbolic.BoolExpr) []RawConstraint {
	if len(args) == 0 {
		return nil
	}
	name, closureArgs := resolveCallee(args[0], nil)
	if name == "" {
		return nil
	}
	argExprs := make([]symbolic.Expr, len(closureArgs))
	for i, a := range closureArgs {
		argExprs[i] = ValueExpr(a)
	}
	fresh := st.counter.FreshBool()
	return []RawConstraint{
		CallConstraint{
			Name:   name,
			Args:   argExprs,
			Result: fresh,
			Assume: assume,
			Loc:    loc,
		},
		ExprConstraint{
			Pred:   fresh,
			Assume: assume,
			Origin: Asserted,
			Loc:    loc,
		},
	}
}
