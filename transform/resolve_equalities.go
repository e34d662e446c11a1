package transform

import (
	"go.tfp.dev/shapecheck/callinline"
	"go.tfp.dev/shapecheck/interp"
	"go.tfp.dev/shapecheck/symbolic"
)

// Strength controls which variable-to-variable equality constraints ResolveEqualities treats as
// safe to collapse via union-find.
type Strength int

const (
	// StrengthShape unions only shape-variable equalities (ListVar = ListVar); integer and
	// boolean variables are left alone. Useful as a cheap, conservative pre-pass before a
	// caller commits to the stronger levels below.
	StrengthShape Strength = iota
	// StrengthImplied unions variable equalities of any sort, but only ones the interpreter
	// derived on its own (Origin == Implied); an asserted equality is never used to rename
	// variables, since doing so could obscure which variable the user actually wrote about.
	StrengthImplied
	// StrengthEverything unions variable equalities of any sort regardless of origin.
	StrengthEverything
)

type varKey struct {
	sort byte
	id   int
}

// ResolveEqualities partitions variables related by an equality constraint at or above the given
// strength into classes via union-find, then substitutes every variable in a class with that
// class's canonical (lowest-ID) representative throughout every constraint.
func ResolveEqualities(cs []callinline.Constraint, strength Strength) []callinline.Constraint {
	uf := newUnionFind()
	consumed := map[int]bool{}
	for i, c := range cs {
		if strength == StrengthImplied && c.Origin != interp.Implied {
			continue
		}
		switch eq := c.Pred.(type) {
		case symbolic.IntCompare:
			if strength == StrengthShape || eq.Op != symbolic.CmpEq {
				continue
			}
			if lv, lok := eq.LHS.(symbolic.IntVar); lok {
				if rv, rok := eq.RHS.(symbolic.IntVar); rok {
					uf.union(varKey{'i', lv.ID}, varKey{'i', rv.ID})
					consumed[i] = true
				}
			}
		case symbolic.ListEq:
			if lv, lok := eq.LHS.(symbolic.ListVar); lok {
				if rv, rok := eq.RHS.(symbolic.ListVar); rok {
					uf.union(varKey{'l', lv.ID}, varKey{'l', rv.ID})
					consumed[i] = true
				}
			}
		case symbolic.BoolEq:
			if strength == StrengthShape {
				continue
			}
			if lv, lok := eq.LHS.(symbolic.BoolVar); lok {
				if rv, rok := eq.RHS.(symbolic.BoolVar); rok {
					uf.union(varKey{'b', lv.ID}, varKey{'b', rv.ID})
					consumed[i] = true
				}
			}
		}
	}

	sub := symbolic.NewSubstitution()
	for k := range uf.parent {
		rep := uf.find(k)
		if rep == k {
			continue
		}
		switch k.sort {
		case 'i':
			sub.BindInt(symbolic.IntVar{ID: k.id}, symbolic.IntVar{ID: rep.id})
		case 'l':
			sub.BindList(symbolic.ListVar{ID: k.id}, symbolic.ListVar{ID: rep.id})
		case 'b':
			sub.BindBool(symbolic.BoolVar{ID: k.id}, symbolic.BoolVar{ID: rep.id})
		}
	}
	if len(consumed) == 0 {
		return cs
	}
	keep := make([]callinline.Constraint, 0, len(cs))
	for i, c := range cs {
		if consumed[i] {
			continue
		}
		keep = append(keep, c)
	}
	if sub.Empty() {
		return keep
	}
	return substituteAll(keep, sub)
}

type unionFind struct {
	parent map[varKey]varKey
}

func newUnionFind() *unionFind { return &unionFind{parent: map[varKey]varKey{}} }

func (u *unionFind) find(k varKey) varKey {
	p, ok := u.parent[k]
	if !ok {
		u.parent[k] = k
		return k
	}
	if p == k {
		return k
	}
	root := u.find(p)
	u.parent[k] = root
	return root
}

func (u *unionFind) union(a, b varKey) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if ra.id > rb.id {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
}
