package transform

import (
	"go.tfp.dev/shapecheck/callinline"
	"go.tfp.dev/shapecheck/symbolic"
)

type intCandidate struct {
	idx int
	v   symbolic.IntVar
	e   symbolic.IntExpr
}

type listCandidate struct {
	idx int
	v   symbolic.ListVar
	e   symbolic.ListExpr
}

// Inline finds unconditioned integer and shape let-bindings - a constraint of the exact shape
// `d = e` or `s = e` where e does not itself mention the bound variable, regardless of whether the
// interpreter derived it or the user asserted it - and substitutes them everywhere, dropping the
// now-redundant binding constraint. Dropping an asserted binding this way still satisfies asserted
// preservation: its content survives modulo the substitution, folded into whatever constraint
// used the bound variable. A variable that more than one candidate binds is ambiguous (collapsing
// either one would silently discard the other), so none of its candidates are touched. A binding
// whose variable already appears in an earlier constraint is left alone too, so a use that
// precedes its definition is never rewritten.
func Inline(cs []callinline.Constraint) []callinline.Constraint {
	var intCands []intCandidate
	var listCands []listCandidate
	for i, c := range cs {
		if _, unconditioned := c.Assume.(symbolic.BoolTrue); !unconditioned {
			continue
		}
		if v, e, ok := matchIntEq(c.Pred); ok {
			intCands = append(intCands, intCandidate{idx: i, v: v, e: e})
		} else if v, e, ok := matchListEq(c.Pred); ok {
			listCands = append(listCands, listCandidate{idx: i, v: v, e: e})
		}
	}

	intCount := map[symbolic.IntVar]int{}
	for _, c := range intCands {
		intCount[c.v]++
	}
	listCount := map[symbolic.ListVar]int{}
	for _, c := range listCands {
		listCount[c.v]++
	}

	sub := symbolic.NewSubstitution()
	drop := map[int]bool{}
	for _, c := range intCands {
		if intCount[c.v] == 1 && !usedBefore(cs[:c.idx], func(e symbolic.Expr) bool { return mentionsIntVar(e, c.v) }) {
			sub.BindInt(c.v, c.e)
			drop[c.idx] = true
		}
	}
	for _, c := range listCands {
		if listCount[c.v] == 1 && !usedBefore(cs[:c.idx], func(e symbolic.Expr) bool { return mentionsListVar(e, c.v) }) {
			sub.BindList(c.v, c.e)
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

// matchIntEq reports whether pred is `v = e` (the variable on the left) for some integer
// variable v not mentioned in e, returning (v, e, true) in that case.
func matchIntEq(pred symbolic.BoolExpr) (symbolic.IntVar, symbolic.IntExpr, bool) {
	eq, ok := pred.(symbolic.IntCompare)
	if !ok || eq.Op != symbolic.CmpEq {
		return symbolic.IntVar{}, nil, false
	}
	if v, ok := eq.LHS.(symbolic.IntVar); ok && !mentionsIntVar(eq.RHS, v) {
		return v, eq.RHS, true
	}
	return symbolic.IntVar{}, nil, false
}

func matchListEq(pred symbolic.BoolExpr) (symbolic.ListVar, symbolic.ListExpr, bool) {
	eq, ok := pred.(symbolic.ListEq)
	if !ok {
		return symbolic.ListVar{}, nil, false
	}
	if v, ok := eq.LHS.(symbolic.ListVar); ok && !mentionsListVar(eq.RHS, v) {
		return v, eq.RHS, true
	}
	return symbolic.ListVar{}, nil, false
}

// usedBefore reports whether uses holds for the Pred or the Assume of any of cs.
func usedBefore(cs []callinline.Constraint, uses func(symbolic.Expr) bool) bool {
	for _, c := range cs {
		if uses(c.Pred) || uses(c.Assume) {
			return true
		}
	}
	return false
}

func mentionsIntVar(e symbolic.Expr, v symbolic.IntVar) bool {
	return mentions(e, func(x symbolic.Expr) bool {
		iv, ok := x.(symbolic.IntVar)
		return ok && iv == v
	})
}

func mentionsListVar(e symbolic.Expr, v symbolic.ListVar) bool {
	return mentions(e, func(x symbolic.Expr) bool {
		lv, ok := x.(symbolic.ListVar)
		return ok && lv == v
	})
}

func substituteAll(cs []callinline.Constraint, sub *symbolic.Substitution) []callinline.Constraint {
	out := make([]callinline.Constraint, len(cs))
	for i, c := range cs {
		out[i] = callinline.Constraint{
			Pred:   symbolic.SubstituteBool(c.Pred, sub),
			Assume: symbolic.SubstituteBool(c.Assume, sub),
			Origin: c.Origin,
			Stack:  c.Stack,
			Loc:    c.Loc,
		}
	}
	return out
}
