package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tfp.dev/shapecheck/symbolic"
)

func TestIntCompareHandler(t *testing.T) {
	handler := builtins[builtinIntGt]
	d0 := symbolic.IntVar{ID: 0}
	d1 := symbolic.IntVar{ID: 1}

	v, ok := handler([]Value{IntVal{Expr: d0}, IntVal{Expr: d1}})
	require.True(t, ok)
	bv, ok := v.(BoolVal)
	require.True(t, ok)
	assert.Equal(t, symbolic.IntCompare{Op: symbolic.CmpGt, LHS: d0, RHS: d1}, bv.Expr)

	_, ok = handler([]Value{IntVal{Expr: d0}})
	assert.False(t, ok, "wrong arity must not produce a result")

	_, ok = handler([]Value{BoolVal{Expr: symbolic.BoolTrue{}}, IntVal{Expr: d1}})
	assert.False(t, ok, "a non-IntVal operand degrades to untracked")
}

func TestIntArithHandler(t *testing.T) {
	handler := builtins[builtinIntAdd]
	d0 := symbolic.IntVar{ID: 0}
	d1 := symbolic.IntVar{ID: 1}

	v, ok := handler([]Value{IntVal{Expr: d0}, IntVal{Expr: d1}})
	require.True(t, ok)
	iv, ok := v.(IntVal)
	require.True(t, ok)
	assert.Equal(t, symbolic.IntBinOp{Op: symbolic.Add, LHS: d0, RHS: d1}, iv.Expr)
}

func TestShapeSubscriptHandlerDegradesOnNonLiteralIndex(t *testing.T) {
	handler := builtins[builtinShapeSub]
	s0 := symbolic.ListVar{ID: 0}
	idxVar := symbolic.IntVar{ID: 1}

	_, ok := handler([]Value{ListVal{Expr: s0}, IntVal{Expr: idxVar}})
	assert.False(t, ok, "an index that isn't a known literal can't be represented as Element")

	v, ok := handler([]Value{ListVal{Expr: s0}, IntVal{Expr: symbolic.IntLit{Value: -1}}})
	require.True(t, ok)
	iv := v.(IntVal)
	assert.Equal(t, symbolic.Element{K: -1, Of: s0}, iv.Expr)
}

func TestRankGetHandler(t *testing.T) {
	handler := builtins[builtinRankGet]
	s0 := symbolic.ListVar{ID: 0}

	v, ok := handler([]Value{TensorVal{Shape: s0}})
	require.True(t, ok)
	assert.Equal(t, symbolic.Length{Of: s0}, v.(IntVal).Expr)
}

func TestBroadcastHandler(t *testing.T) {
	handler := builtins[builtinBroadcast]
	s0 := symbolic.ListVar{ID: 0}
	s1 := symbolic.ListVar{ID: 1}

	v, ok := handler([]Value{ListVal{Expr: s0}, ListVal{Expr: s1}})
	require.True(t, ok)
	assert.Equal(t, symbolic.Broadcast{LHS: s0, RHS: s1}, v.(ListVal).Expr)
}
