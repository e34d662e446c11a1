package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tfp.dev/shapecheck/ir"
	"go.tfp.dev/shapecheck/symbolic"
)

func TestResolveCalleeChasesPartialApplyChain(t *testing.T) {
	fn := FunctionVal{Name: "add3"}
	captured := IntVal{Expr: symbolic.IntLit{Value: 1}}
	inner := PartialAppVal{Fn: fn, Args: []Value{captured}}
	outerCaptured := IntVal{Expr: symbolic.IntLit{Value: 2}}
	outer := PartialAppVal{Fn: inner, Args: []Value{outerCaptured}}

	trailing := IntVal{Expr: symbolic.IntLit{Value: 3}}
	name, args := resolveCallee(outer, []Value{trailing})

	assert.Equal(t, "add3", name)
	require.Len(t, args, 3)
	assert.Equal(t, captured, args[0])
	assert.Equal(t, outerCaptured, args[1])
	assert.Equal(t, trailing, args[2])
}

func TestResolveCalleeOnUnresolvedValueReturnsEmptyName(t *testing.T) {
	name, args := resolveCallee(nil, []Value{IntVal{Expr: symbolic.IntLit{Value: 1}}})
	assert.Equal(t, "", name)
	assert.Nil(t, args)
}

func TestDispatchCallUnresolvedCalleeLeavesResultsUntracked(t *testing.T) {
	st := freshTestState()
	cs := dispatchCall(st, "", nil, ir.NamedType{Name: "Int"}, []ir.Register{"r"}, nil, symbolic.BoolTrue{})
	assert.Nil(t, cs)
	assert.Nil(t, st.regs["r"])
}

func TestDispatchCallBuiltinResolvesImmediately(t *testing.T) {
	st := freshTestState()
	d0 := symbolic.IntVar{ID: 0}
	d1 := symbolic.IntVar{ID: 1}
	args := []Value{IntVal{Expr: d0}, IntVal{Expr: d1}}

	cs := dispatchCall(st, builtinIntAdd, args, ir.NamedType{Name: "Int"}, []ir.Register{"r"}, nil, symbolic.BoolTrue{})
	assert.Nil(t, cs, "a resolved builtin call contributes no raw constraint of its own")
	iv, ok := st.regs["r"].(IntVal)
	require.True(t, ok)
	assert.Equal(t, symbolic.IntBinOp{Op: symbolic.Add, LHS: d0, RHS: d1}, iv.Expr)
}

func TestDispatchCallUserFunctionEmitsCallConstraint(t *testing.T) {
	st := freshTestState()
	d0 := symbolic.IntVar{ID: 0}
	args := []Value{IntVal{Expr: d0}}

	cs := dispatchCall(st, "userFn", args, ir.NamedType{Name: "Int"}, []ir.Register{"r"}, nil, symbolic.BoolTrue{})
	require.Len(t, cs, 1)
	cc, ok := cs[0].(CallConstraint)
	require.True(t, ok)
	assert.Equal(t, "userFn", cc.Name)
	require.Len(t, cc.Args, 1)
	assert.Equal(t, d0, cc.Args[0])

	resultVal, ok := st.regs["r"].(IntVal)
	require.True(t, ok)
	assert.Equal(t, resultVal.Expr, cc.Result)
}

func TestDispatchCallAssertEmitsAssertedConstraint(t *testing.T) {
	st := freshTestState()
	b0 := symbolic.BoolVar{ID: 0}
	loc := &ir.SourceLocation{Path: "f.swift", Line: 9}

	// cond is the assert's autoclosure: a function reference, not an already-computed Bool.
	cs := dispatchCall(st, BuiltinAssert, []Value{FunctionVal{Name: "condClosure"}}, nil, nil, loc, symbolic.BoolTrue{})
	require.Len(t, cs, 2)
	cc, ok := cs[0].(CallConstraint)
	require.True(t, ok)
	assert.Equal(t, "condClosure", cc.Name)
	assert.Equal(t, b0, cc.Result)
	ec, ok := cs[1].(ExprConstraint)
	require.True(t, ok)
	assert.Equal(t, b0, ec.Pred)
	assert.Equal(t, Asserted, ec.Origin)
	assert.Equal(t, loc, ec.Loc)
}

func TestEmitAssertOnUntrackedConditionContributesNothing(t *testing.T) {
	cs := emitAssert(freshTestState(), []Value{nil}, nil, symbolic.BoolTrue{})
	assert.Nil(t, cs)

	cs = emitAssert(freshTestState(), nil, nil, symbolic.BoolTrue{})
	assert.Nil(t, cs)
}
