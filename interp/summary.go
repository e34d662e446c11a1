package interp

import (
	"go.tfp.dev/shapecheck/ir"
	"go.tfp.dev/shapecheck/symbolic"
)

// Origin marks whether a RawConstraint came from a user-written assert or was derived by the
// interpreter itself. Transforms must preserve Asserted constraints while being free to rewrite
// or drop Implied ones.
type Origin uint8

const (
	// Asserted marks user-written assert calls.
	Asserted Origin = iota + 1
	// Implied marks everything the interpreter derives on its own.
	Implied
)

// RawConstraint is the tagged union of constraints the interpreter emits: a predicate that must
// hold under a path condition (ExprConstraint), or an unresolved call site standing for the
// callee's constraints (CallConstraint).
type RawConstraint interface {
	isRawConstraint()
	// Assuming is the path condition under which this constraint's effect applies.
	Assuming() symbolic.BoolExpr
	// Location is the source location responsible for this constraint, if any.
	Location() *ir.SourceLocation
}

// ExprConstraint asserts that Pred must hold whenever Assuming holds.
type ExprConstraint struct {
	Pred     symbolic.BoolExpr
	Assume   symbolic.BoolExpr
	Origin   Origin
	Loc      *ir.SourceLocation
}

func (ExprConstraint) isRawConstraint()             {}
func (c ExprConstraint) Assuming() symbolic.BoolExpr { return c.Assume }
func (c ExprConstraint) Location() *ir.SourceLocation { return c.Loc }

// CallConstraint stands for an unresolved call site: Result (if non-nil) is equated with the
// callee's return expression, and Args are equated positionally with the callee's argument
// expressions, once Name's Summary is known.
type CallConstraint struct {
	Name    string
	Args    []symbolic.Expr
	Result  symbolic.Expr
	Assume  symbolic.BoolExpr
	Loc     *ir.SourceLocation
}

func (CallConstraint) isRawConstraint()              {}
func (c CallConstraint) Assuming() symbolic.BoolExpr { return c.Assume }
func (c CallConstraint) Location() *ir.SourceLocation { return c.Loc }

// Summary is a function's abstracted signature: the symbolic expressions standing for its
// arguments and return value, and the raw constraints relating them.
type Summary struct {
	ArgExprs    []symbolic.Expr
	RetExpr     symbolic.Expr
	Constraints []RawConstraint
}
