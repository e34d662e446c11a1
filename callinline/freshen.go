package callinline

import (
	"go.tfp.dev/shapecheck/interp"
	"go.tfp.dev/shapecheck/symbolic"
)

// freshener renames every variable appearing in a callee's Summary to a brand new variable drawn
// from a counter shared across one Inline call, so that two call sites of the same (or mutually
// recursive) function never collide on variable identity. The substitution it builds is populated
// lazily, assigning one fresh replacement per distinct variable the first time it's seen.
type freshener struct {
	fresh *symbolic.Counter
	sub   *symbolic.Substitution
}

func newFreshener(fresh *symbolic.Counter) *freshener {
	return &freshener{fresh: fresh, sub: symbolic.NewSubstitution()}
}

func (f *freshener) int(e symbolic.IntExpr) symbolic.IntExpr {
	switch v := e.(type) {
	case symbolic.IntVar:
		if r, ok := f.sub.Ints[v]; ok {
			return r
		}
		r := f.fresh.FreshInt()
		f.sub.BindInt(v, r)
		return r
	case symbolic.Length:
		return symbolic.Length{Of: f.list(v.Of)}
	case symbolic.Element:
		return symbolic.Element{K: v.K, Of: f.list(v.Of)}
	case symbolic.IntBinOp:
		return symbolic.IntBinOp{Op: v.Op, LHS: f.int(v.LHS), RHS: f.int(v.RHS)}
	default:
		return e
	}
}

func (f *freshener) list(e symbolic.ListExpr) symbolic.ListExpr {
	switch v := e.(type) {
	case symbolic.ListVar:
		if r, ok := f.sub.Lists[v]; ok {
			return r
		}
		r := f.fresh.FreshList()
		f.sub.BindList(v, r)
		return r
	case symbolic.ListLit:
		dims := make([]symbolic.IntExpr, len(v.Dims))
		for i, d := range v.Dims {
			if d == nil {
				continue
			}
			dims[i] = f.int(d)
		}
		return symbolic.ListLit{Dims: dims}
	case symbolic.Broadcast:
		return symbolic.Broadcast{LHS: f.list(v.LHS), RHS: f.list(v.RHS)}
	default:
		return e
	}
}

func (f *freshener) bool(e symbolic.BoolExpr) symbolic.BoolExpr {
	switch v := e.(type) {
	case symbolic.BoolVar:
		if r, ok := f.sub.Bools[v]; ok {
			return r
		}
		r := f.fresh.FreshBool()
		f.sub.BindBool(v, r)
		return r
	case symbolic.Not:
		return symbolic.Not{X: f.bool(v.X)}
	case symbolic.And:
		return symbolic.And{Xs: f.boolSlice(v.Xs)}
	case symbolic.Or:
		return symbolic.Or{Xs: f.boolSlice(v.Xs)}
	case symbolic.IntCompare:
		return symbolic.IntCompare{Op: v.Op, LHS: f.int(v.LHS), RHS: f.int(v.RHS)}
	case symbolic.ListEq:
		return symbolic.ListEq{LHS: f.list(v.LHS), RHS: f.list(v.RHS)}
	case symbolic.BoolEq:
		return symbolic.BoolEq{LHS: f.bool(v.LHS), RHS: f.bool(v.RHS)}
	default:
		return e
	}
}

func (f *freshener) boolSlice(xs []symbolic.BoolExpr) []symbolic.BoolExpr {
	out := make([]symbolic.BoolExpr, len(xs))
	for i, x := range xs {
		out[i] = f.bool(x)
	}
	return out
}

func (f *freshener) expr(e symbolic.Expr) symbolic.Expr {
	switch v := e.(type) {
	case nil:
		return nil
	case symbolic.IntExpr:
		return f.int(v)
	case symbolic.ListExpr:
		return f.list(v)
	case symbolic.BoolExpr:
		return f.bool(v)
	case symbolic.Tuple:
		elems := make([]symbolic.Expr, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = f.expr(el)
		}
		return symbolic.Tuple{Elements: elems}
	default:
		return e
	}
}

func (f *freshener) rawConstraint(c interp.RawConstraint) interp.RawConstraint {
	switch v := c.(type) {
	case interp.ExprConstraint:
		return interp.ExprConstraint{
			Pred:   f.bool(v.Pred),
			Assume: f.bool(v.Assume),
			Origin: v.Origin,
			Loc:    v.Loc,
		}
	case interp.CallConstraint:
		args := make([]symbolic.Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = f.expr(a)
		}
		return interp.CallConstraint{
			Name:   v.Name,
			Args:   args,
			Result: f.expr(v.Result),
			Assume: f.bool(v.Assume),
			Loc:    v.Loc,
		}
	default:
		return c
	}
}

// freshenCallee renames every variable in callee's Summary, returning the renamed argument
// expressions, return expression, and constraints.
func freshenCallee(callee *interp.Summary, fresh *symbolic.Counter) ([]symbolic.Expr, symbolic.Expr, []interp.RawConstraint) {
	f := newFreshener(fresh)
	argExprs := make([]symbolic.Expr, len(callee.ArgExprs))
	for i, a := range callee.ArgExprs {
		argExprs[i] = f.expr(a)
	}
	retExpr := f.expr(callee.RetExpr)
	constraints := make([]interp.RawConstraint, len(callee.Constraints))
	for i, c := range callee.Constraints {
		constraints[i] = f.rawConstraint(c)
	}
	return argExprs, retExpr, constraints
}

// bindFormalToActual recurses formal's (tuple) structure, binding each variable leaf to the
// corresponding leaf of actual. It silently skips anything that isn't a variable or a tuple of
// variables, which a freshened Summary's ArgExprs/RetExpr never are (they are always built from
// state.freshValue, which only ever produces fresh variables or tuples of them).
func bindFormalToActual(formal, actual symbolic.Expr, sub *symbolic.Substitution) {
	if formal == nil || actual == nil {
		return
	}
	switch fv := formal.(type) {
	case symbolic.IntVar:
		if av, ok := actual.(symbolic.IntExpr); ok {
			sub.BindInt(fv, av)
		}
	case symbolic.ListVar:
		if av, ok := actual.(symbolic.ListExpr); ok {
			sub.BindList(fv, av)
		}
	case symbolic.BoolVar:
		if av, ok := actual.(symbolic.BoolExpr); ok {
			sub.BindBool(fv, av)
		}
	case symbolic.Tuple:
		at, ok := actual.(symbolic.Tuple)
		if !ok {
			return
		}
		n := len(fv.Elements)
		if len(at.Elements) < n {
			n = len(at.Elements)
		}
		for i := 0; i < n; i++ {
			bindFormalToActual(fv.Elements[i], at.Elements[i], sub)
		}
	}
}
