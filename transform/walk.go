// Package transform rewrites a function's final constraints into an equivalent but smaller and
// more readable form: constant folding, deduplication, let-binding inlining, and variable
// equality resolution, run to a bounded fixpoint by Pipeline (§4.3 of the distilled spec).
package transform

import "go.tfp.dev/shapecheck/symbolic"

// mentions reports whether match holds for e or any subexpression reachable from it, regardless
// of sort. It is the shared occurs-check used before every let-binding substitution, so that a
// binding can never introduce a cycle through itself (e.g. d0 = d0 + 1).
func mentions(e symbolic.Expr, match func(symbolic.Expr) bool) bool {
	if e == nil {
		return false
	}
	if match(e) {
		return true
	}
	switch v := e.(type) {
	case symbolic.Length:
		return mentions(v.Of, match)
	case symbolic.Element:
		return mentions(v.Of, match)
	case symbolic.IntBinOp:
		return mentions(v.LHS, match) || mentions(v.RHS, match)
	case symbolic.ListLit:
		for _, d := range v.Dims {
			if d != nil && mentions(d, match) {
				return true
			}
		}
		return false
	case symbolic.Broadcast:
		return mentions(v.LHS, match) || mentions(v.RHS, match)
	case symbolic.Not:
		return mentions(v.X, match)
	case symbolic.And:
		return anyMentions(v.Xs, match)
	case symbolic.Or:
		return anyMentions(v.Xs, match)
	case symbolic.IntCompare:
		return mentions(v.LHS, match) || mentions(v.RHS, match)
	case symbolic.ListEq:
		return mentions(v.LHS, match) || mentions(v.RHS, match)
	case symbolic.BoolEq:
		return mentions(v.LHS, match) || mentions(v.RHS, match)
	case symbolic.Tuple:
		for _, el := range v.Elements {
			if mentions(el, match) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func anyMentions(xs []symbolic.BoolExpr, match func(symbolic.Expr) bool) bool {
	for _, x := range xs {
		if mentions(x, match) {
			return true
		}
	}
	return false
}

// saturate self-composes sub until a binding's value no longer changes, resolving chains like
// d0 = 2+3; d1 = d0*d0 into a single hop (d1 -> (2+3)*(2+3)) before it is applied to the
// remaining constraints. Each round at least doubles how many hops are resolved, so the loop
// bound only needs to cover the longest possible chain, not its number of rounds.
func saturate(sub *symbolic.Substitution) *symbolic.Substitution {
	bound := len(sub.Ints) + len(sub.Lists) + len(sub.Bools) + 1
	for i := 0; i < bound; i++ {
		next := symbolic.Compose(sub, sub)
		if substitutionEqual(next, sub) {
			return next
		}
		sub = next
	}
	return sub
}

func substitutionEqual(a, b *symbolic.Substitution) bool {
	if len(a.Ints) != len(b.Ints) || len(a.Lists) != len(b.Lists) || len(a.Bools) != len(b.Bools) {
		return false
	}
	for k, v := range a.Ints {
		bv, ok := b.Ints[k]
		if !ok || !v.Equal(bv) {
			return false
		}
	}
	for k, v := range a.Lists {
		bv, ok := b.Lists[k]
		if !ok || !v.Equal(bv) {
			return false
		}
	}
	for k, v := range a.Bools {
		bv, ok := b.Bools[k]
		if !ok || !v.Equal(bv) {
			return false
		}
	}
	return true
}
