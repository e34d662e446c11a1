package callinline

import (
	"go.tfp.dev/shapecheck/interp"
	"go.tfp.dev/shapecheck/ir"
	"go.tfp.dev/shapecheck/symbolic"
)

// Constraint is a final constraint: Pred must hold whenever Assume holds. Unlike interp's raw
// constraints, a Constraint that originated inside a callee carries the full Stack of calls
// inlining traversed to reach it, rather than a single call-site location.
type Constraint struct {
	Pred   symbolic.BoolExpr
	Assume symbolic.BoolExpr
	Origin interp.Origin
	Stack  CallStack
	Loc    *ir.SourceLocation
}
