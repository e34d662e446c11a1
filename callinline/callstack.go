// Package callinline resolves the unresolved CallConstraints an abstracted function's Summary
// carries into a flat list of final constraints, by inlining each callee's own Summary in place
// (§4.5 of the distilled spec).
package callinline

import "go.tfp.dev/shapecheck/ir"

// Frame is one call site entered during inlining: the callee's name and the location of the call
// within its caller.
type Frame struct {
	Callee string
	Loc    *ir.SourceLocation
}

// CallStack records the chain of inlined calls responsible for a constraint that originated
// inside a callee, outermost call first. An empty CallStack means the constraint originated
// directly in the function being checked, with no inlining involved.
type CallStack []Frame

// Push returns a new CallStack with frame appended, leaving cs unmodified.
func (cs CallStack) Push(frame Frame) CallStack {
	out := make(CallStack, len(cs)+1)
	copy(out, cs)
	out[len(cs)] = frame
	return out
}
