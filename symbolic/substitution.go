package symbolic

// Substitution is a simultaneous mapping from variables to terms of the same sort, one map per
// sort (design note in spec §9): this keeps substitution statically sort-preserving instead of a
// dynamically-typed callback that re-dispatches per sort at every call site.
type Substitution struct {
	Ints  map[IntVar]IntExpr
	Lists map[ListVar]ListExpr
	Bools map[BoolVar]BoolExpr
}

// NewSubstitution returns an empty substitution.
func NewSubstitution() *Substitution {
	return &Substitution{
		Ints:  map[IntVar]IntExpr{},
		Lists: map[ListVar]ListExpr{},
		Bools: map[BoolVar]BoolExpr{},
	}
}

// BindInt adds (or overwrites) a binding for an integer variable.
func (s *Substitution) BindInt(v IntVar, e IntExpr) { s.Ints[v] = e }

// BindList adds (or overwrites) a binding for a list variable.
func (s *Substitution) BindList(v ListVar, e ListExpr) { s.Lists[v] = e }

// BindBool adds (or overwrites) a binding for a boolean variable.
func (s *Substitution) BindBool(v BoolVar, e BoolExpr) { s.Bools[v] = e }

// Empty reports whether the substitution has no bindings at all.
func (s *Substitution) Empty() bool {
	return len(s.Ints) == 0 && len(s.Lists) == 0 && len(s.Bools) == 0
}

// SubstituteInt applies s to an integer term, recursing into subterms of any sort it contains.
func SubstituteInt(e IntExpr, s *Substitution) IntExpr {
	switch v := e.(type) {
	case IntVar:
		if repl, ok := s.Ints[v]; ok {
			return repl
		}
		return v
	case IntLit:
		return v
	case IntHole:
		return v
	case Length:
		return Length{Of: SubstituteList(v.Of, s)}
	case Element:
		return Element{K: v.K, Of: SubstituteList(v.Of, s)}
	case IntBinOp:
		return IntBinOp{Op: v.Op, LHS: SubstituteInt(v.LHS, s), RHS: SubstituteInt(v.RHS, s)}
	default:
		return e
	}
}

// SubstituteList applies s to a list (shape) term.
func SubstituteList(e ListExpr, s *Substitution) ListExpr {
	switch v := e.(type) {
	case ListVar:
		if repl, ok := s.Lists[v]; ok {
			return repl
		}
		return v
	case ListLit:
		dims := make([]IntExpr, len(v.Dims))
		for i, d := range v.Dims {
			if d == nil {
				continue
			}
			dims[i] = SubstituteInt(d, s)
		}
		return ListLit{Dims: dims}
	case Broadcast:
		return Broadcast{LHS: SubstituteList(v.LHS, s), RHS: SubstituteList(v.RHS, s)}
	default:
		return e
	}
}

// SubstituteBool applies s to a boolean term.
func SubstituteBool(e BoolExpr, s *Substitution) BoolExpr {
	switch v := e.(type) {
	case BoolVar:
		if repl, ok := s.Bools[v]; ok {
			return repl
		}
		return v
	case BoolTrue:
		return v
	case BoolFalse:
		return v
	case Not:
		return Not{X: SubstituteBool(v.X, s)}
	case And:
		return And{Xs: substituteBoolSlice(v.Xs, s)}
	case Or:
		return Or{Xs: substituteBoolSlice(v.Xs, s)}
	case IntCompare:
		return IntCompare{Op: v.Op, LHS: SubstituteInt(v.LHS, s), RHS: SubstituteInt(v.RHS, s)}
	case ListEq:
		return ListEq{LHS: SubstituteList(v.LHS, s), RHS: SubstituteList(v.RHS, s)}
	case BoolEq:
		return BoolEq{LHS: SubstituteBool(v.LHS, s), RHS: SubstituteBool(v.RHS, s)}
	default:
		return e
	}
}

func substituteBoolSlice(xs []BoolExpr, s *Substitution) []BoolExpr {
	out := make([]BoolExpr, len(xs))
	for i, x := range xs {
		out[i] = SubstituteBool(x, s)
	}
	return out
}

// SubstituteExpr applies s to an arbitrary (possibly compound) expression, re-dispatching to the
// sort-specific substitution once the concrete sort is known.
func SubstituteExpr(e Expr, s *Substitution) Expr {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case IntExpr:
		return SubstituteInt(v, s)
	case ListExpr:
		return SubstituteList(v, s)
	case BoolExpr:
		return SubstituteBool(v, s)
	case Tuple:
		elems := make([]Expr, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = SubstituteExpr(el, s)
		}
		return Tuple{Elements: elems}
	default:
		return e
	}
}

// Compose returns a substitution equivalent to applying s1 and then s2 in a single pass, so that
// for every term t: Substitute(Substitute(t, s1), s2) == Substitute(t, Compose(s1, s2)).
func Compose(s1, s2 *Substitution) *Substitution {
	out := NewSubstitution()
	for v, e := range s1.Ints {
		out.Ints[v] = SubstituteInt(e, s2)
	}
	for v, e := range s1.Lists {
		out.Lists[v] = SubstituteList(e, s2)
	}
	for v, e := range s1.Bools {
		out.Bools[v] = SubstituteBool(e, s2)
	}
	for v, e := range s2.Ints {
		if _, ok := out.Ints[v]; !ok {
			out.Ints[v] = e
		}
	}
	for v, e := range s2.Lists {
		if _, ok := out.Lists[v]; !ok {
			out.Lists[v] = e
		}
	}
	for v, e := range s2.Bools {
		if _, ok := out.Bools[v]; !ok {
			out.Bools[v] = e
		}
	}
	return out
}
