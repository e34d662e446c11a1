package transform

import (
	"go.tfp.dev/shapecheck/callinline"
	"go.tfp.dev/shapecheck/interp"
)

// Deduplicate drops constraints that are textually identical to one already kept (same Pred and
// Assume). When a duplicate pair disagrees on Origin, the kept copy is upgraded to Asserted: an
// assert anywhere in the program is enough to mark the predicate as user-intended, even if some
// other path derives the same predicate on its own.
func Deduplicate(cs []callinline.Constraint) []callinline.Constraint {
	type key struct{ pred, assume string }
	index := map[key]int{}
	out := make([]callinline.Constraint, 0, len(cs))
	for _, c := range cs {
		k := key{c.Pred.String(), c.Assume.String()}
		if idx, ok := index[k]; ok {
			if c.Origin == interp.Asserted {
				out[idx].Origin = interp.Asserted
			}
			continue
		}
		index[k] = len(out)
		out = append(out, c)
	}
	return out
}
