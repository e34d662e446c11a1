// Package interp implements the abstract interpreter: it walks one function's unlooped,
// reducible CFG and produces a Summary of the constraints implied by its tensor operations and
// user-written asserts (§4.1-4.2 of the distilled spec).
package interp

import (
	"go.tfp.dev/shapecheck/ir"
	"go.tfp.dev/shapecheck/symbolic"
)

// Value is the abstract value an SSA register can hold during interpretation. A nil Value means
// the register is untracked (its type couldn't be given a fresh value, or it flows from an
// operator the interpreter doesn't understand).
type Value interface{ isValue() }

// IntVal wraps a symbolic integer expression.
type IntVal struct{ Expr symbolic.IntExpr }

func (IntVal) isValue() {}

// ListVal wraps a symbolic shape expression.
type ListVal struct{ Expr symbolic.ListExpr }

func (ListVal) isValue() {}

// BoolVal wraps a symbolic boolean expression.
type BoolVal struct{ Expr symbolic.BoolExpr }

func (BoolVal) isValue() {}

// TensorVal is a tensor value, tracked only by its symbolic shape.
type TensorVal struct{ Shape symbolic.ListExpr }

func (TensorVal) isValue() {}

// TupleVal is a tuple (or struct-with-known-fields) value; any element may be nil if that slot
// is untracked.
type TupleVal struct{ Elements []Value }

func (TupleVal) isValue() {}

// FunctionVal is a first-class reference to a named function.
type FunctionVal struct{ Name string }

func (FunctionVal) isValue() {}

// PartialAppVal is a partially-applied function value; resolving a call chases through these to
// a terminal FunctionVal, concatenating captured arguments along the way.
type PartialAppVal struct {
	Fn       Value
	Args     []Value
	ArgTypes []ir.Type
}

func (PartialAppVal) isValue() {}

// AddressVal is the address of a global symbol, produced by ir.GlobalAddr.
type AddressVal struct{ Symbol string }

func (AddressVal) isValue() {}

// CoroutineVal is the pending state of a BeginApply, held until the matching EndApply.
type CoroutineVal struct {
	Callee Value
	Args   []Value
}

func (CoroutineVal) isValue() {}

// ValueExpr projects an abstract value to a symbolic.Expr for use in constraints. Function-typed
// values (FunctionVal, PartialAppVal, CoroutineVal) and untracked (nil) values have no
// expression-level representation and project to nil.
func ValueExpr(v Value) symbolic.Expr {
	switch t := v.(type) {
	case nil:
		return nil
	case IntVal:
		return t.Expr
	case ListVal:
		return t.Expr
	case BoolVal:
		return t.Expr
	case TensorVal:
		return symbolic.Tuple{Elements: []symbolic.Expr{t.Shape}}
	case TupleVal:
		elems := make([]symbolic.Expr, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = ValueExpr(e)
		}
		return symbolic.Tuple{Elements: elems}
	default:
		return nil
	}
}
