package symbolic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.tfp.dev/shapecheck/symbolic"
)

func TestSubstituteIntRecursesIntoSubterms(t *testing.T) {
	d0 := symbolic.IntVar{ID: 0}
	s0 := symbolic.ListVar{ID: 0}

	sub := symbolic.NewSubstitution()
	sub.BindInt(d0, symbolic.IntLit{Value: 7})
	sub.BindList(s0, symbolic.ListLit{Dims: []symbolic.IntExpr{symbolic.IntLit{Value: 2}}})

	e := symbolic.IntBinOp{Op: symbolic.Add, LHS: d0, RHS: symbolic.Length{Of: s0}}
	got := symbolic.SubstituteInt(e, sub)

	want := symbolic.IntBinOp{
		Op:  symbolic.Add,
		LHS: symbolic.IntLit{Value: 7},
		RHS: symbolic.Length{Of: symbolic.ListLit{Dims: []symbolic.IntExpr{symbolic.IntLit{Value: 2}}}},
	}
	assert.True(t, got.Equal(want))
}

func TestSubstituteLeavesUnboundVarsAlone(t *testing.T) {
	d0 := symbolic.IntVar{ID: 0}
	d1 := symbolic.IntVar{ID: 1}
	sub := symbolic.NewSubstitution()
	sub.BindInt(d0, symbolic.IntLit{Value: 1})

	got := symbolic.SubstituteInt(d1, sub)
	assert.Equal(t, d1, got)
}

func TestSubstituteExprHandlesTuplesAndNilSlots(t *testing.T) {
	d0 := symbolic.IntVar{ID: 0}
	sub := symbolic.NewSubstitution()
	sub.BindInt(d0, symbolic.IntLit{Value: 9})

	tup := symbolic.Tuple{Elements: []symbolic.Expr{d0, nil}}
	got := symbolic.SubstituteExpr(tup, sub)

	want := symbolic.Tuple{Elements: []symbolic.Expr{symbolic.IntLit{Value: 9}, nil}}
	assert.True(t, want.Equal(got.(symbolic.Tuple)))

	assert.Nil(t, symbolic.SubstituteExpr(nil, sub))
}

func TestComposeMatchesSequentialSubstitution(t *testing.T) {
	d0 := symbolic.IntVar{ID: 0}
	d1 := symbolic.IntVar{ID: 1}
	d2 := symbolic.IntVar{ID: 2}

	s1 := symbolic.NewSubstitution()
	s1.BindInt(d0, d1)

	s2 := symbolic.NewSubstitution()
	s2.BindInt(d1, d2)

	term := symbolic.IntBinOp{Op: symbolic.Add, LHS: d0, RHS: symbolic.IntLit{Value: 1}}

	sequential := symbolic.SubstituteInt(symbolic.SubstituteInt(term, s1), s2)
	composed := symbolic.SubstituteInt(term, symbolic.Compose(s1, s2))

	assert.True(t, sequential.Equal(composed))
}

func TestComposePrefersS1BindingOnOverlap(t *testing.T) {
	d0 := symbolic.IntVar{ID: 0}
	s1 := symbolic.NewSubstitution()
	s1.BindInt(d0, symbolic.IntLit{Value: 1})
	s2 := symbolic.NewSubstitution()
	s2.BindInt(d0, symbolic.IntLit{Value: 2})

	out := symbolic.Compose(s1, s2)
	assert.Equal(t, symbolic.IntLit{Value: 1}, out.Ints[d0], "s1's own binding for a variable is substituted through s2, not overwritten by s2's binding for the same variable")
}

func TestSubstitutionEmpty(t *testing.T) {
	sub := symbolic.NewSubstitution()
	assert.True(t, sub.Empty())
	sub.BindBool(symbolic.BoolVar{ID: 0}, symbolic.BoolTrue{})
	assert.False(t, sub.Empty())
}
