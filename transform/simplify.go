package transform

import (
	"go.tfp.dev/shapecheck/callinline"
	"go.tfp.dev/shapecheck/symbolic"
)

// Simplify rewrites every constraint's Pred and Assume bottom-up: constant folding arithmetic and
// comparisons over literals, flattening nested And/Or, eliminating double negation, and resolving
// Length/Element/Broadcast/ListEq against literal shapes wherever their operands are fully known.
// A Broadcast is resolved only when both sides are literal shapes of equal rank and every paired
// dimension resolves under broadcastDim; shapes of different rank, or with an unknown (nil) or
// non-literal dimension, are left as a Broadcast. A constraint whose Pred folds to BoolTrue conveys no information and is dropped; one that folds
// to BoolFalse is a genuine, statically-known violation and is kept as-is, since presentation of
// that fact is a concern for the constraint's consumer, not this transform.
func Simplify(cs []callinline.Constraint) []callinline.Constraint {
	out := make([]callinline.Constraint, 0, len(cs))
	for _, c := range cs {
		pred := simplifyBool(c.Pred)
		if _, ok := pred.(symbolic.BoolTrue); ok {
			continue
		}
		out = append(out, callinline.Constraint{
			Pred:   pred,
			Assume: simplifyBool(c.Assume),
			Origin: c.Origin,
			Stack:  c.Stack,
			Loc:    c.Loc,
		})
	}
	return out
}

func simplifyInt(e symbolic.IntExpr) symbolic.IntExpr {
	switch v := e.(type) {
	case symbolic.Length:
		of := simplifyList(v.Of)
		if lit, ok := of.(symbolic.ListLit); ok {
			return symbolic.IntLit{Value: int64(lit.Rank())}
		}
		return symbolic.Length{Of: of}
	case symbolic.Element:
		of := simplifyList(v.Of)
		if lit, ok := of.(symbolic.ListLit); ok {
			if d, ok := lit.At(v.K); ok && d != nil {
				return simplifyInt(d)
			}
		}
		return symbolic.Element{K: v.K, Of: of}
	case symbolic.IntBinOp:
		lhs, rhs := simplifyInt(v.LHS), simplifyInt(v.RHS)
		ll, lok := lhs.(symbolic.IntLit)
		rl, rok := rhs.(symbolic.IntLit)
		if lok && rok {
			if folded, ok := foldIntOp(v.Op, ll.Value, rl.Value); ok {
				return symbolic.IntLit{Value: folded}
			}
		}
		if identity, ok := foldIntIdentity(v.Op, lhs, rhs, lok, rok, ll, rl); ok {
			return identity
		}
		return symbolic.IntBinOp{Op: v.Op, LHS: lhs, RHS: rhs}
	default:
		return e
	}
}

func foldIntOp(op symbolic.IntOp, l, r int64) (int64, bool) {
	switch op {
	case symbolic.Add:
		return l + r, true
	case symbolic.Sub:
		return l - r, true
	case symbolic.Mul:
		return l * r, true
	case symbolic.Div:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	default:
		return 0, false
	}
}

// foldIntIdentity applies the algebraic identities that hold regardless of what the non-literal
// side turns out to be: x+0=0+x=x, x-0=x, x*1=1*x=x, and x*0=0*x=0. lok/rok/ll/rl mirror the
// literal-or-not classification the caller already did for the literal-literal fold.
func foldIntIdentity(op symbolic.IntOp, lhs, rhs symbolic.IntExpr, lok, rok bool, ll, rl symbolic.IntLit) (symbolic.IntExpr, bool) {
	switch op {
	case symbolic.Add:
		if rok && rl.Value == 0 {
			return lhs, true
		}
		if lok && ll.Value == 0 {
			return rhs, true
		}
	case symbolic.Sub:
		if rok && rl.Value == 0 {
			return lhs, true
		}
	case symbolic.Mul:
		if rok && rl.Value == 1 {
			return lhs, true
		}
		if lok && ll.Value == 1 {
			return rhs, true
		}
		if rok && rl.Value == 0 {
			return symbolic.IntLit{Value: 0}, true
		}
		if lok && ll.Value == 0 {
			return symbolic.IntLit{Value: 0}, true
		}
	}
	return nil, false
}

func simplifyList(e symbolic.ListExpr) symbolic.ListExpr {
	switch v := e.(type) {
	case symbolic.ListLit:
		dims := make([]symbolic.IntExpr, len(v.Dims))
		for i, d := range v.Dims {
			if d == nil {
				continue
			}
			dims[i] = simplifyInt(d)
		}
		return symbolic.ListLit{Dims: dims}
	case symbolic.Broadcast:
		lhs, rhs := simplifyList(v.LHS), simplifyList(v.RHS)
		ll, lok := lhs.(symbolic.ListLit)
		rl, rok := rhs.(symbolic.ListLit)
		if lok && rok && ll.Rank() == rl.Rank() {
			dims := make([]symbolic.IntExpr, ll.Rank())
			resolved := true
			for i := range dims {
				d, ok := broadcastDim(ll.Dims[i], rl.Dims[i])
				if !ok {
					resolved = false
					break
				}
				dims[i] = d
			}
			if resolved {
				return symbolic.ListLit{Dims: dims}
			}
		}
		return symbolic.Broadcast{LHS: lhs, RHS: rhs}
	default:
		return e
	}
}

// broadcastDim resolves one dimension of a NumPy-style broadcast when both sides are literal:
// a 1 always yields the other side, equal dims yield that dim, and anything else is reported as
// unresolved (mismatched static dims are left to IntCompare, not collapsed into a placeholder).
func broadcastDim(a, b symbolic.IntExpr) (symbolic.IntExpr, bool) {
	if a == nil || b == nil {
		return nil, false
	}
	al, aok := a.(symbolic.IntLit)
	bl, bok := b.(symbolic.IntLit)
	if !aok || !bok {
		return nil, false
	}
	if al.Value == 1 {
		return b, true
	}
	if bl.Value == 1 {
		return a, true
	}
	if al.Value == bl.Value {
		return a, true
	}
	return nil, false
}

func simplifyBool(e symbolic.BoolExpr) symbolic.BoolExpr {
	switch v := e.(type) {
	case symbolic.Not:
		x := simplifyBool(v.X)
		if inner, ok := x.(symbolic.Not); ok {
			return inner.X
		}
		if _, ok := x.(symbolic.BoolTrue); ok {
			return symbolic.BoolFalse{}
		}
		if _, ok := x.(symbolic.BoolFalse); ok {
			return symbolic.BoolTrue{}
		}
		return symbolic.Not{X: x}

	case symbolic.And:
		var xs []symbolic.BoolExpr
		for _, x := range v.Xs {
			sx := simplifyBool(x)
			if inner, ok := sx.(symbolic.And); ok {
				xs = append(xs, inner.Xs...)
				continue
			}
			if _, ok := sx.(symbolic.BoolTrue); ok {
				continue
			}
			if _, ok := sx.(symbolic.BoolFalse); ok {
				return symbolic.BoolFalse{}
			}
			xs = append(xs, sx)
		}
		if len(xs) == 0 {
			return symbolic.BoolTrue{}
		}
		if len(xs) == 1 {
			return xs[0]
		}
		return symbolic.And{Xs: xs}

	case symbolic.Or:
		var xs []symbolic.BoolExpr
		for _, x := range v.Xs {
			sx := simplifyBool(x)
			if inner, ok := sx.(symbolic.Or); ok {
				xs = append(xs, inner.Xs...)
				continue
			}
			if _, ok := sx.(symbolic.BoolFalse); ok {
				continue
			}
			if _, ok := sx.(symbolic.BoolTrue); ok {
				return symbolic.BoolTrue{}
			}
			xs = append(xs, sx)
		}
		if len(xs) == 0 {
			return symbolic.BoolFalse{}
		}
		if len(xs) == 1 {
			return xs[0]
		}
		return symbolic.Or{Xs: xs}

	case symbolic.IntCompare:
		lhs, rhs := simplifyInt(v.LHS), simplifyInt(v.RHS)
		ll, lok := lhs.(symbolic.IntLit)
		rl, rok := rhs.(symbolic.IntLit)
		if lok && rok {
			if foldCompare(v.Op, ll.Value, rl.Value) {
				return symbolic.BoolTrue{}
			}
			return symbolic.BoolFalse{}
		}
		return symbolic.IntCompare{Op: v.Op, LHS: lhs, RHS: rhs}

	case symbolic.ListEq:
		lhs, rhs := simplifyList(v.LHS), simplifyList(v.RHS)
		ll, lok := lhs.(symbolic.ListLit)
		rl, rok := rhs.(symbolic.ListLit)
		if lok && rok {
			if eq, known := literalShapesEqual(ll, rl); known {
				if eq {
					return symbolic.BoolTrue{}
				}
				return symbolic.BoolFalse{}
			}
		}
		return symbolic.ListEq{LHS: lhs, RHS: rhs}

	case symbolic.BoolEq:
		lhs, rhs := simplifyBool(v.LHS), simplifyBool(v.RHS)
		if lhs.Equal(rhs) {
			return symbolic.BoolTrue{}
		}
		return symbolic.BoolEq{LHS: lhs, RHS: rhs}

	default:
		return e
	}
}

func foldCompare(op symbolic.CmpOp, l, r int64) bool {
	switch op {
	case symbolic.CmpEq:
		return l == r
	case symbolic.CmpGt:
		return l > r
	case symbolic.CmpGe:
		return l >= r
	case symbolic.CmpLt:
		return l < r
	case symbolic.CmpLe:
		return l <= r
	default:
		return false
	}
}

// literalShapesEqual compares two literal shapes dimension-by-dimension, returning known=false
// as soon as an unknown (nil) dimension makes the overall comparison impossible to resolve
// statically.
func literalShapesEqual(a, b symbolic.ListLit) (eq bool, known bool) {
	if a.Rank() != b.Rank() {
		return false, true
	}
	for i := range a.Dims {
		ad, bd := a.Dims[i], b.Dims[i]
		if ad == nil || bd == nil {
			return false, false
		}
		al, aok := ad.(symbolic.IntLit)
		bl, bok := bd.(symbolic.IntLit)
		if !aok || !bok {
			return false, false
		}
		if al.Value != bl.Value {
			return false, true
		}
	}
	return true, true
}
