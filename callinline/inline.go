package callinline

import (
	"fmt"

	"go.tfp.dev/shapecheck/config"
	"go.tfp.dev/shapecheck/interp"
	"go.tfp.dev/shapecheck/symbolic"
)

// CycleError reports a call cycle discovered while inlining, naming the chain of function names
// from the root being checked down to the function that closes the cycle. Recursive calls are
// reported rather than silently treated as opaque, since a cyclic constraint set has no finite
// final form to converge to.
type CycleError struct{ Chain []string }

func (e *CycleError) Error() string {
	return fmt.Sprintf("shapecheck: call cycle detected: %v", e.Chain)
}

// Inline resolves every CallConstraint reachable from rootName's raw constraints against
// summaries, producing one flat list of final constraints whose provenance is tracked by
// CallStack instead of a single call-site location (§4.5). It fails with a *CycleError if the
// call graph reachable from rootName contains a cycle, and with a plain error if a call chain
// nests deeper than config.CallGraphDepthLimit.
func Inline(rootName string, raw []interp.RawConstraint, summaries map[string]*interp.Summary) ([]Constraint, error) {
	fresh := symbolic.NewCounter()
	var out []Constraint
	for _, c := range raw {
		resolved, err := inlineOne(c, nil, symbolic.NewSubstitution(), []string{rootName}, summaries, fresh)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved...)
	}
	return out, nil
}

func inlineOne(c interp.RawConstraint, stack CallStack, sub *symbolic.Substitution, visiting []string, summaries map[string]*interp.Summary, fresh *symbolic.Counter) ([]Constraint, error) {
	switch v := c.(type) {
	case interp.ExprConstraint:
		return []Constraint{{
			Pred:   symbolic.SubstituteBool(v.Pred, sub),
			Assume: symbolic.SubstituteBool(v.Assume, sub),
			Origin: v.Origin,
			Stack:  stack,
			Loc:    v.Loc,
		}}, nil

	case interp.CallConstraint:
		for _, name := range visiting {
			if name == v.Name {
				return nil, &CycleError{Chain: append(append([]string{}, visiting...), v.Name)}
			}
		}
		if len(visiting) > config.CallGraphDepthLimit {
			return nil, fmt.Errorf("shapecheck: call inlining from %q exceeded depth limit %d", visiting[0], config.CallGraphDepthLimit)
		}
		callee, ok := summaries[v.Name]
		if !ok {
			// the callee has no Summary (it was skipped during abstraction, or is external);
			// its effect is simply dropped rather than fabricated.
			return nil, nil
		}

		callerAssume := symbolic.SubstituteBool(v.Assume, sub)
		callArgs := make([]symbolic.Expr, len(v.Args))
		for i, a := range v.Args {
			callArgs[i] = symbolic.SubstituteExpr(a, sub)
		}
		callResult := symbolic.SubstituteExpr(v.Result, sub)

		calleeArgExprs, calleeRetExpr, calleeConstraints := freshenCallee(callee, fresh)

		callSub := symbolic.NewSubstitution()
		n := len(calleeArgExprs)
		if len(callArgs) < n {
			n = len(callArgs)
		}
		for i := 0; i < n; i++ {
			bindFormalToActual(calleeArgExprs[i], callArgs[i], callSub)
		}
		bindFormalToActual(calleeRetExpr, callResult, callSub)

		nextStack := stack.Push(Frame{Callee: v.Name, Loc: v.Loc})
		nextVisiting := append(append([]string{}, visiting...), v.Name)

		var out []Constraint
		for _, cc := range calleeConstraints {
			resolved, err := inlineOne(cc, nextStack, callSub, nextVisiting, summaries, fresh)
			if err != nil {
				return nil, err
			}
			for i := range resolved {
				resolved[i].Assume = symbolic.And{Xs: []symbolic.BoolExpr{callerAssume, resolved[i].Assume}}
			}
			out = append(out, resolved...)
		}
		return out, nil

	default:
		return nil, nil
	}
}
