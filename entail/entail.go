// Package entail implements the entailment oracle: a single, deliberately incomplete operator
// that decides whether one boolean term provably implies another by cheap syntactic rules only
// (§4.4 of the distilled spec). Consumers must tolerate false negatives - Implies returning false
// never means "provably not implied", only "not provable by these rules".
package entail

import "go.tfp.dev/shapecheck/symbolic"

// Implies reports whether a provably entails b, using only:
//   - anything implies true
//   - false implies anything
//   - syntactic equality
//   - conjunction/disjunction decomposition on either side
//
// No distributive or negation reasoning is performed, so e.g. Implies(Not{Not{x}}, x) is false
// even though it holds semantically. Cost is worst-case quadratic in term size.
func Implies(a, b symbolic.BoolExpr) bool {
	if _, ok := b.(symbolic.BoolTrue); ok {
		return true
	}
	if _, ok := a.(symbolic.BoolFalse); ok {
		return true
	}
	if a.Equal(b) {
		return true
	}

	// clause ⇒? and(cs) iff ∀c∈cs: clause⇒?c
	if andB, ok := b.(symbolic.And); ok {
		for _, c := range andB.Xs {
			if !Implies(a, c) {
				return false
			}
		}
		return true
	}

	// and(cs) ⇒? clause iff ∃c∈cs: c⇒?clause
	if andA, ok := a.(symbolic.And); ok {
		for _, c := range andA.Xs {
			if Implies(c, b) {
				return true
			}
		}
		return false
	}

	// clause ⇒? or(cs) iff ∃c∈cs: clause⇒?c
	if orB, ok := b.(symbolic.Or); ok {
		for _, c := range orB.Xs {
			if Implies(a, c) {
				return true
			}
		}
		return false
	}

	// or(cs) ⇒? clause iff ∀c∈cs: c⇒?clause
	if orA, ok := a.(symbolic.Or); ok {
		for _, c := range orA.Xs {
			if !Implies(c, b) {
				return false
			}
		}
		return true
	}

	return false
}
