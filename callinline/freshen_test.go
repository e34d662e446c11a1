package callinline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tfp.dev/shapecheck/interp"
	"go.tfp.dev/shapecheck/symbolic"
)

func TestFreshenerAssignsOneReplacementPerVariable(t *testing.T) {
	d0 := symbolic.IntVar{ID: 0}
	f := newFreshener(symbolic.NewCounter())

	first := f.int(d0)
	second := f.int(d0)
	assert.Equal(t, first, second, "the same source variable must always freshen to the same replacement within one pass")

	other := f.int(symbolic.IntVar{ID: 1})
	assert.NotEqual(t, first, other)
}

func TestFreshenCalleeKeepsArgRetAndConstraintsConsistent(t *testing.T) {
	d0 := symbolic.IntVar{ID: 0}
	callee := &interp.Summary{
		ArgExprs: []symbolic.Expr{d0},
		RetExpr:  d0,
		Constraints: []interp.RawConstraint{
			interp.ExprConstraint{
				Pred:   symbolic.IntCompare{Op: symbolic.CmpGt, LHS: d0, RHS: symbolic.IntLit{Value: 0}},
				Assume: symbolic.BoolTrue{},
				Origin: interp.Asserted,
			},
		},
	}

	argExprs, retExpr, constraints := freshenCallee(callee, symbolic.NewCounter())
	require.Len(t, argExprs, 1)
	assert.Equal(t, argExprs[0], retExpr, "arg and ret referred to the same source variable, so must still refer to the same fresh one")

	ec := constraints[0].(interp.ExprConstraint)
	cmp := ec.Pred.(symbolic.IntCompare)
	assert.Equal(t, argExprs[0], cmp.LHS, "the freshened constraint must reference the same renamed variable as the freshened arg")
}

func TestBindFormalToActualRecursesIntoTuples(t *testing.T) {
	d0 := symbolic.IntVar{ID: 0}
	d1 := symbolic.IntVar{ID: 1}
	formal := symbolic.Tuple{Elements: []symbolic.Expr{d0, d1}}
	actual := symbolic.Tuple{Elements: []symbolic.Expr{symbolic.IntLit{Value: 1}, symbolic.IntLit{Value: 2}}}

	sub := symbolic.NewSubstitution()
	bindFormalToActual(formal, actual, sub)

	assert.Equal(t, symbolic.IntLit{Value: 1}, sub.Ints[d0])
	assert.Equal(t, symbolic.IntLit{Value: 2}, sub.Ints[d1])
}

func TestBindFormalToActualIgnoresNonVariableFormal(t *testing.T) {
	sub := symbolic.NewSubstitution()
	bindFormalToActual(symbolic.IntLit{Value: 1}, symbolic.IntLit{Value: 2}, sub)
	assert.True(t, sub.Empty(), "a non-variable formal has nothing to bind")
}

func TestCallStackPushIsImmutable(t *testing.T) {
	base := CallStack{{Callee: "a"}}
	extended := base.Push(Frame{Callee: "b"})

	assert.Len(t, base, 1)
	require.Len(t, extended, 2)
	assert.Equal(t, "b", extended[1].Callee)
}
