package interp

import "go.tfp.dev/shapecheck/symbolic"

// Mangled builtin symbol names, per the builtin symbol table in §6 of the distilled spec.
// Compatibility is by symbol name only - these are opaque strings to everything except the
// dispatch table below.
const (
	builtinIntEq  = "$sSi2eeoiySbSi_SitFZ"
	builtinIntGt  = "$sSi1goiySbSi_SitFZ"
	builtinIntGe  = "$sSi2geoiySbSi_SitFZ"
	builtinIntLt  = "$sSi1loiySbSi_SitFZ"
	builtinIntLe  = "$sSi2leoiySbSi_SitFZ"
	builtinIntAdd = "$sSi1poiyS2i_SitFZ"
	builtinIntSub = "$sSi1soiyS2i_SitFZ"
	builtinIntMul = "$sSi1moiyS2i_SitFZ"
	builtinIntDiv = "$sSi1doiyS2i_SitFZ"
	builtinIntLit = "$sSi22_builtinIntegerLiteralSiBI_tcfC"

	// BuiltinAssert is the mangled name of the assert(_:_:file:line:) builtin. It is handled
	// specially by calls.go before generic builtin dispatch, since it must emit two raw
	// constraints rather than produce a single result value.
	BuiltinAssert = "$ss6assert__4file4lineySbyXK_SSyXKs12StaticStringVSutF"

	builtinShapeCtor = "$s10TensorFlow0A5ShapeV12arrayLiteralACSid_tcfC"
	builtinShapeGet  = "$s10TensorFlow0A0V5shapeAA0A5ShapeVvg"
	builtinShapeSub  = "$s10TensorFlow0A5ShapeVyS2icir"
	builtinRankGet   = "$s10TensorFlow0A0V4rankSivg"
	builtinShapeEq   = "$s10TensorFlow0A5ShapeV2eeoiySbAC_ACtFZ"
	builtinBroadcast = "broadcast"
)

// builtinHandler computes the result of a builtin call from its already-resolved argument values.
// It returns (nil, false) when the arguments don't carry enough information to produce a
// meaningful result (e.g. a non-literal shape-subscript index), in which case the caller falls
// back to treating the result as untracked.
type builtinHandler func(args []Value) (Value, bool)

var builtins = map[string]builtinHandler{
	builtinIntEq: intCompareHandler(symbolic.CmpEq),
	builtinIntGt: intCompareHandler(symbolic.CmpGt),
	builtinIntGe: intCompareHandler(symbolic.CmpGe),
	builtinIntLt: intCompareHandler(symbolic.CmpLt),
	builtinIntLe: intCompareHandler(symbolic.CmpLe),

	builtinIntAdd: intArithHandler(symbolic.Add),
	builtinIntSub: intArithHandler(symbolic.Sub),
	builtinIntMul: intArithHandler(symbolic.Mul),
	builtinIntDiv: intArithHandler(symbolic.Div),

	builtinIntLit: func(args []Value) (Value, bool) {
		if len(args) != 1 {
			return nil, false
		}
		iv, ok := args[0].(IntVal)
		if !ok {
			return nil, false
		}
		return iv, true
	},

	builtinShapeCtor: func(args []Value) (Value, bool) {
		if len(args) != 1 {
			return nil, false
		}
		lv, ok := args[0].(ListVal)
		if !ok {
			return nil, false
		}
		return lv, true
	},

	builtinShapeGet: func(args []Value) (Value, bool) {
		if len(args) != 1 {
			return nil, false
		}
		tv, ok := args[0].(TensorVal)
		if !ok {
			return nil, false
		}
		return ListVal{Expr: tv.Shape}, true
	},

	builtinShapeSub: func(args []Value) (Value, bool) {
		if len(args) != 2 {
			return nil, false
		}
		lv, ok := args[0].(ListVal)
		if !ok {
			return nil, false
		}
		idx, ok := args[1].(IntVal)
		if !ok {
			return nil, false
		}
		lit, ok := idx.Expr.(symbolic.IntLit)
		if !ok {
			// the index isn't known at this call site; the element access can't be
			// represented symbolically, so the result degrades to untracked.
			return nil, false
		}
		return IntVal{Expr: symbolic.Element{K: int(lit.Value), Of: lv.Expr}}, true
	},

	builtinRankGet: func(args []Value) (Value, bool) {
		if len(args) != 1 {
			return nil, false
		}
		tv, ok := args[0].(TensorVal)
		if !ok {
			return nil, false
		}
		return IntVal{Expr: symbolic.Length{Of: tv.Shape}}, true
	},

	builtinShapeEq: func(args []Value) (Value, bool) {
		if len(args) != 2 {
			return nil, false
		}
		lhs, lok := args[0].(ListVal)
		rhs, rok := args[1].(ListVal)
		if !lok || !rok {
			return nil, false
		}
		return BoolVal{Expr: symbolic.ListEq{LHS: lhs.Expr, RHS: rhs.Expr}}, true
	},

	builtinBroadcast: func(args []Value) (Value, bool) {
		if len(args) != 2 {
			return nil, false
		}
		lhs, lok := args[0].(ListVal)
		rhs, rok := args[1].(ListVal)
		if !lok || !rok {
			return nil, false
		}
		return ListVal{Expr: symbolic.Broadcast{LHS: lhs.Expr, RHS: rhs.Expr}}, true
	},
}

func intCompareHandler(op symbolic.CmpOp) builtinHandler {
	return func(args []Value) (Value, bool) {
		if len(args) != 2 {
			return nil, false
		}
		lhs, lok := args[0].(IntVal)
		rhs, rok := args[1].(IntVal)
		if !lok || !rok {
			return nil, false
		}
		return BoolVal{Expr: symbolic.IntCompare{Op: op, LHS: lhs.Expr, RHS: rhs.Expr}}, true
	}
}

func intArithHandler(op symbolic.IntOp) builtinHandler {
	return func(args []Value) (Value, bool) {
		if len(args) != 2 {
			return nil, false
		}
		lhs, lok := args[0].(IntVal)
		rhs, rok := args[1].(IntVal)
		if !lok || !rok {
			return nil, false
		}
		return IntVal{Expr: symbolic.IntBinOp{Op: op, LHS: lhs.Expr, RHS: rhs.Expr}}, true
	}
}
