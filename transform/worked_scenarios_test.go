package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.tfp.dev/shapecheck/callinline"
	"go.tfp.dev/shapecheck/interp"
	"go.tfp.dev/shapecheck/symbolic"
)

func TestSimplifyArithmeticOnLiterals(t *testing.T) {
	add := symbolic.IntBinOp{Op: symbolic.Add, LHS: symbolic.IntLit{Value: 2}, RHS: symbolic.IntLit{Value: 4}}
	assert.Equal(t, symbolic.IntLit{Value: 6}, simplifyInt(add))

	d1 := symbolic.IntVar{ID: 1}
	addZero := symbolic.IntBinOp{Op: symbolic.Add, LHS: d1, RHS: symbolic.IntLit{Value: 0}}
	assert.Equal(t, symbolic.IntExpr(d1), simplifyInt(addZero), "add(x,0)=x")

	zeroAdd := symbolic.IntBinOp{Op: symbolic.Add, LHS: symbolic.IntLit{Value: 0}, RHS: d1}
	assert.Equal(t, symbolic.IntExpr(d1), simplifyInt(zeroAdd), "add(0,x)=x")

	subZero := symbolic.IntBinOp{Op: symbolic.Sub, LHS: d1, RHS: symbolic.IntLit{Value: 0}}
	assert.Equal(t, symbolic.IntExpr(d1), simplifyInt(subZero), "sub(x,0)=x")

	mulOne := symbolic.IntBinOp{Op: symbolic.Mul, LHS: d1, RHS: symbolic.IntLit{Value: 1}}
	assert.Equal(t, symbolic.IntExpr(d1), simplifyInt(mulOne), "mul(x,1)=x")

	oneMul := symbolic.IntBinOp{Op: symbolic.Mul, LHS: symbolic.IntLit{Value: 1}, RHS: d1}
	assert.Equal(t, symbolic.IntExpr(d1), simplifyInt(oneMul), "mul(1,x)=x")

	mulZero := symbolic.IntBinOp{Op: symbolic.Mul, LHS: d1, RHS: symbolic.IntLit{Value: 0}}
	assert.Equal(t, symbolic.IntExpr(symbolic.IntLit{Value: 0}), simplifyInt(mulZero), "mul(x,0)=0")

	zeroMul := symbolic.IntBinOp{Op: symbolic.Mul, LHS: symbolic.IntLit{Value: 0}, RHS: d1}
	assert.Equal(t, symbolic.IntExpr(symbolic.IntLit{Value: 0}), simplifyInt(zeroMul), "mul(0,x)=0")

	sub := symbolic.IntBinOp{Op: symbolic.Sub, LHS: symbolic.IntLit{Value: 6}, RHS: symbolic.IntLit{Value: 2}}
	assert.Equal(t, symbolic.IntLit{Value: 4}, simplifyInt(sub))

	mul := symbolic.IntBinOp{Op: symbolic.Mul, LHS: symbolic.IntLit{Value: 6}, RHS: symbolic.IntLit{Value: 2}}
	assert.Equal(t, symbolic.IntLit{Value: 12}, simplifyInt(mul))

	div := symbolic.IntBinOp{Op: symbolic.Div, LHS: symbolic.IntLit{Value: 5}, RHS: symbolic.IntLit{Value: 2}}
	assert.Equal(t, symbolic.IntLit{Value: 2}, simplifyInt(div), "division truncates toward zero")
}

func TestSimplifyElementAndBroadcast(t *testing.T) {
	d0 := symbolic.IntVar{ID: 0}
	elem := symbolic.Element{K: -2, Of: symbolic.ListLit{Dims: []symbolic.IntExpr{d0, nil}}}
	assert.Equal(t, symbolic.IntExpr(d0), simplifyInt(elem))

	lhs := symbolic.ListLit{Dims: []symbolic.IntExpr{symbolic.IntLit{Value: 4}, symbolic.IntLit{Value: 5}}}
	rhs := symbolic.ListLit{Dims: []symbolic.IntExpr{symbolic.IntLit{Value: 8}, symbolic.IntLit{Value: 4}, symbolic.IntLit{Value: 1}}}
	_, rankMismatch := simplifyList(symbolic.Broadcast{LHS: lhs, RHS: rhs}).(symbolic.ListLit)
	assert.False(t, rankMismatch, "unequal rank never resolves to a literal here")

	samerank := symbolic.Broadcast{
		LHS: symbolic.ListLit{Dims: []symbolic.IntExpr{symbolic.IntLit{Value: 8}, symbolic.IntLit{Value: 4}, symbolic.IntLit{Value: 5}}},
		RHS: symbolic.ListLit{Dims: []symbolic.IntExpr{symbolic.IntLit{Value: 8}, symbolic.IntLit{Value: 4}, symbolic.IntLit{Value: 1}}},
	}
	got, ok := simplifyList(samerank).(symbolic.ListLit)
	assert.True(t, ok)
	want := symbolic.ListLit{Dims: []symbolic.IntExpr{symbolic.IntLit{Value: 8}, symbolic.IntLit{Value: 4}, symbolic.IntLit{Value: 5}}}
	assert.True(t, want.Equal(got))

	unknownDimAbsorbed := symbolic.Broadcast{
		LHS: symbolic.ListLit{Dims: []symbolic.IntExpr{symbolic.IntLit{Value: 4}, nil}},
		RHS: symbolic.ListLit{Dims: []symbolic.IntExpr{symbolic.IntLit{Value: 8}, symbolic.IntLit{Value: 4}, symbolic.IntLit{Value: 5}}},
	}
	_, resolved := simplifyList(unknownDimAbsorbed).(symbolic.ListLit)
	assert.False(t, resolved, "rank mismatch alone (2 vs 3) blocks resolution regardless of the nil dim")

	bothUnknown := symbolic.Broadcast{
		LHS: symbolic.ListLit{Dims: []symbolic.IntExpr{symbolic.IntLit{Value: 4}, nil}},
		RHS: symbolic.ListLit{Dims: []symbolic.IntExpr{symbolic.IntLit{Value: 8}, symbolic.IntLit{Value: 4}}},
	}
	got2 := simplifyList(bothUnknown)
	_, ok = got2.(symbolic.ListLit)
	assert.False(t, ok, "4 against 8 is an incompatible pair, so the broadcast is not resolved")
	assert.Equal(t, symbolic.ListExpr(bothUnknown), got2, "the unresolved broadcast is left as it was")
}

func TestDeduplicateCollapsesRepeatsPreservingFirstOccurrence(t *testing.T) {
	d0 := symbolic.IntVar{ID: 0}
	gt := symbolic.IntCompare{Op: symbolic.CmpGt, LHS: d0, RHS: symbolic.IntLit{Value: 0}}
	eq := symbolic.IntCompare{Op: symbolic.CmpEq, LHS: d0, RHS: symbolic.IntLit{Value: 1}}
	lt := symbolic.IntCompare{Op: symbolic.CmpLt, LHS: d0, RHS: symbolic.IntLit{Value: 10}}

	cs := []callinline.Constraint{
		{Pred: gt, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
		{Pred: eq, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
		{Pred: gt, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
		{Pred: lt, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
		{Pred: eq, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
		{Pred: gt, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
	}
	out := Deduplicate(cs)
	assert.Len(t, out, 3)
	assert.Equal(t, gt, out[0].Pred)
	assert.Equal(t, eq, out[1].Pred)
	assert.Equal(t, lt, out[2].Pred)
}

func TestInlineChainCollapsesToSingleBinding(t *testing.T) {
	d0 := symbolic.IntVar{ID: 0}
	d1 := symbolic.IntVar{ID: 1}
	d2 := symbolic.IntVar{ID: 2}
	s0 := symbolic.ListVar{ID: 0}

	cs := []callinline.Constraint{
		{Pred: symbolic.IntCompare{Op: symbolic.CmpEq, LHS: d0, RHS: symbolic.IntBinOp{Op: symbolic.Add, LHS: symbolic.IntLit{Value: 2}, RHS: symbolic.IntLit{Value: 3}}}, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
		{Pred: symbolic.IntCompare{Op: symbolic.CmpEq, LHS: d1, RHS: symbolic.IntBinOp{Op: symbolic.Mul, LHS: d0, RHS: d0}}, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
		{Pred: symbolic.IntCompare{Op: symbolic.CmpEq, LHS: d2, RHS: symbolic.IntBinOp{Op: symbolic.Sub, LHS: d1, RHS: symbolic.IntLit{Value: 5}}}, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
		{Pred: symbolic.IntCompare{Op: symbolic.CmpEq, LHS: symbolic.Element{K: 0, Of: s0}, RHS: d2}, Assume: symbolic.BoolTrue{}, Origin: interp.Asserted},
	}

	out := Pipeline(cs)
	assert.Len(t, out, 1)
	assert.Equal(t, "s0[0]=20", out[0].Pred.String())
}

func TestInlineParticipatesOnAssertedBindingsToo(t *testing.T) {
	d0 := symbolic.IntVar{ID: 0}
	s0 := symbolic.ListVar{ID: 0}

	cs := []callinline.Constraint{
		{Pred: symbolic.IntCompare{Op: symbolic.CmpEq, LHS: d0, RHS: symbolic.IntLit{Value: 4}}, Assume: symbolic.BoolTrue{}, Origin: interp.Asserted},
		{Pred: symbolic.IntCompare{Op: symbolic.CmpEq, LHS: symbolic.Element{K: 0, Of: s0}, RHS: d0}, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
	}
	out := Inline(cs)
	assert.Len(t, out, 1, "the asserted binding d0=4 is consumed and dropped, its content folded into the remaining constraint")
	assert.Equal(t, "s0[0]=4", out[0].Pred.String())
}

func TestInlineLeavesUseBeforeDefUnchanged(t *testing.T) {
	d0 := symbolic.IntVar{ID: 0}
	d1 := symbolic.IntVar{ID: 1}
	cs := []callinline.Constraint{
		{Pred: symbolic.IntCompare{Op: symbolic.CmpGt, LHS: d0, RHS: d1}, Assume: symbolic.BoolTrue{}, Origin: interp.Asserted},
		{Pred: symbolic.IntCompare{Op: symbolic.CmpEq, LHS: d0, RHS: symbolic.IntLit{Value: 2}}, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
	}
	out := Inline(cs)
	assert.Len(t, out, 2, "d0 is used in the first constraint before its binding, so the binding is not inlined and both constraints stay")
	assert.Equal(t, "d0>d1", out[0].Pred.String())
	assert.Equal(t, "d0=2", out[1].Pred.String())
}

func TestResolveEqualitiesShapeStrengthIgnoresIntEqualities(t *testing.T) {
	s0, s1 := symbolic.ListVar{ID: 0}, symbolic.ListVar{ID: 1}
	d0, d1 := symbolic.IntVar{ID: 0}, symbolic.IntVar{ID: 1}

	cs := []callinline.Constraint{
		{Pred: symbolic.ListEq{LHS: s0, RHS: s1}, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
		{Pred: symbolic.ListEq{LHS: s1, RHS: symbolic.ListLit{Dims: []symbolic.IntExpr{nil}}}, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
		{Pred: symbolic.IntCompare{Op: symbolic.CmpGt, LHS: d1, RHS: symbolic.IntLit{Value: 2}}, Assume: symbolic.BoolTrue{}, Origin: interp.Asserted},
		{Pred: symbolic.IntCompare{Op: symbolic.CmpEq, LHS: d0, RHS: d1}, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
	}

	everything := ResolveEqualities(cs, StrengthEverything)
	assert.Len(t, everything, 2, "both the s0=s1 and d0=d1 equalities are consumed and dropped, leaving only the two non-equality constraints")
	assert.Equal(t, "s0=[nil]", everything[0].Pred.String())
	assert.Equal(t, "d0>2", everything[1].Pred.String())

	shapeOnly := ResolveEqualities(cs, StrengthShape)
	assert.Len(t, shapeOnly, 3, "only the s0=s1 shape equality is consumed; the integer equality survives untouched")
	assert.Equal(t, "s0=[nil]", shapeOnly[0].Pred.String(), "the list equality is still consumed at shape strength")
	assert.Equal(t, "d1>2", shapeOnly[1].Pred.String(), "but the integer equality is left alone")
	assert.Equal(t, "d0=d1", shapeOnly[2].Pred.String())
}

func TestInlineBoolVarsCollapsesSimpleBindingButNotTheHardCase(t *testing.T) {
	b0 := symbolic.BoolVar{ID: 0}
	d0 := symbolic.IntVar{ID: 0}
	gt := symbolic.IntCompare{Op: symbolic.CmpGt, LHS: d0, RHS: symbolic.IntLit{Value: 2}}

	simple := []callinline.Constraint{
		{Pred: b0, Assume: symbolic.BoolTrue{}, Origin: interp.Asserted},
		{Pred: symbolic.BoolEq{LHS: b0, RHS: gt}, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
	}
	out := InlineBoolVars(simple)
	assert.Len(t, out, 1)
	assert.Equal(t, "d0>2", out[0].Pred.String())

	b1 := symbolic.BoolVar{ID: 1}
	gt4 := symbolic.IntCompare{Op: symbolic.CmpGt, LHS: d0, RHS: symbolic.IntLit{Value: 4}}
	hard := []callinline.Constraint{
		{Pred: symbolic.BoolEq{LHS: b0, RHS: b1}, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
		{Pred: symbolic.BoolEq{LHS: b0, RHS: gt4}, Assume: symbolic.BoolTrue{}, Origin: interp.Implied},
		{Pred: b1, Assume: symbolic.BoolTrue{}, Origin: interp.Asserted},
	}
	outHard := InlineBoolVars(hard)
	assert.Len(t, outHard, 3, "b0 is bound twice (to b1 and to gt4); neither binding is a safe substitution on its own, so both survive unresolved")
}
