package transform

import (
	"go.tfp.dev/shapecheck/callinline"
	"go.tfp.dev/shapecheck/symbolic"
)

type boolCandidate struct {
	idx int
	v   symbolic.BoolVar
	e   symbolic.BoolExpr
}

// InlineBoolVars finds unconditioned boolean let-bindings (b = e, e not mentioning b, regardless
// of whether the interpreter derived the binding or the user asserted it) and substitutes them
// everywhere, dropping the now-redundant binding constraint - an asserted binding's content
// survives modulo the substitution, same as Inline. Kept separate from Inline because a bound
// boolean variable commonly appears inside other constraints' Assume trees (path conditions), not
// only inside Pred, and because its defining expression is usually itself a comparison worth
// folding into every place that references it. As in Inline, a variable bound by more than one
// candidate equality is ambiguous and none of its candidates are touched - e.g. b0 = b1 and
// b0 = (d0>4) can't both be "the" definition of b0.
func InlineBoolVars(cs []callinline.Constraint) []callinline.Constraint {
	var cands []boolCandidate
	for i, c := range cs {
		if _, unconditioned := c.Assume.(symbolic.BoolTrue); !unconditioned {
			continue
		}
		if v, e, ok := matchBoolEq(c.Pred); ok {
			cands = append(cands, boolCandidate{idx: i, v: v, e: e})
		}
	}

	count := map[symbolic.BoolVar]int{}
	for _, c := range cands {
		count[c.v]++
	}

	sub := symbolic.NewSubstitution()
	drop := map[int]bool{}
	for _, c := range cands {
		if count[c.v] == 1 {
			sub.BindBool(c.v, c.e)
			drop[c.idx] = true
		}
	}

	if sub.Empty() {
		return cs
	}
	keep := make([]callinline.Constraint, 0, len(cs))
	for i, c := range cs {
		if drop[i] {
			continue
		}
		keep = append(keep, c)
	}
	return substituteAll(keep, saturate(sub))
}

// matchBoolEq reports whether pred is `v = e` or `e = v` for some boolean variable v not
// mentioned in e, returning (v, e, true) in that case.
func matchBoolEq(pred symbolic.BoolExpr) (symbolic.BoolVar, symbolic.BoolExpr, bool) {
	eq, ok := pred.(symbolic.BoolEq)
	if !ok {
		return symbolic.BoolVar{}, nil, false
	}
	if v, ok := eq.LHS.(symbolic.BoolVar); ok && !mentionsBoolVar(eq.RHS, v) {
		return v, eq.RHS, true
	}
	if v, ok := eq.RHS.(symbolic.BoolVar); ok && !mentionsBoolVar(eq.LHS, v) {
		return v, eq.LHS, true
	}
	return symbolic.BoolVar{}, nil, false
}

func mentionsBoolVar(e symbolic.Expr, v symbolic.BoolVar) bool {
	return mentions(e, func(x symbolic.Expr) bool {
		bv, ok := x.(symbolic.BoolVar)
		return ok && bv == v
	})
}
