package transform

import (
	"go.tfp.dev/shapecheck/callinline"
	"go.tfp.dev/shapecheck/config"
)

// Pipeline runs every transform to a fixpoint: each round applies Simplify, Deduplicate, Inline,
// ResolveEqualities (at StrengthEverything), and InlineBoolVars in sequence, stopping as soon as a
// round leaves the constraint set textually unchanged. It panics if no fixpoint is reached within
// config.TransformFixpointRoundLimit rounds; non-convergence here is a bug in the transforms
// themselves; every individual rewrite strictly shrinks or simplifies its input, not transient
// input size.
func Pipeline(cs []callinline.Constraint) []callinline.Constraint {
	rounds := 0
	for {
		rounds++
		config.CheckFixpointRoundLimit("transform.Pipeline", rounds, config.TransformFixpointRoundLimit)

		next := Simplify(cs)
		next = Deduplicate(next)
		next = Inline(next)
		next = ResolveEqualities(next, StrengthEverything)
		next = InlineBoolVars(next)
		next = Deduplicate(next)

		if sameConstraints(cs, next) {
			return next
		}
		cs = next
	}
}

func sameConstraints(a, b []callinline.Constraint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Pred.String() != b[i].Pred.String() {
			return false
		}
		if a[i].Assume.String() != b[i].Assume.String() {
			return false
		}
		if a[i].Origin != b[i].Origin {
			return false
		}
	}
	return true
}
