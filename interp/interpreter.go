package interp

import (
	"fmt"
	"sort"

	"go.tfp.dev/shapecheck/diagnostic"
	"go.tfp.dev/shapecheck/ir"
	"go.tfp.dev/shapecheck/symbolic"
)

// InducesReducibleCFG reports whether blocks form a reducible control-flow graph (every loop has
// a single entry point) - the precondition Unloop relies on to turn loops into a DAG (§4.1, §6).
type InducesReducibleCFG func(blocks []ir.Block) bool

// Unloop rewrites blocks, unrolling or peeling any loop into an acyclic control-flow graph that
// conservatively over-approximates the original (§4.1, §6).
type Unloop func(blocks []ir.Block) []ir.Block

// TrivialInducesReducibleCFG always reports blocks as reducible. Real CFG reducibility analysis
// is out of scope; functions whose graph is still cyclic after IdentityUnloop are caught and
// skipped by Abstract's own topological sort below, exactly as a genuinely non-reducible CFG
// would be.
func TrivialInducesReducibleCFG(blocks []ir.Block) bool { return true }

// IdentityUnloop returns blocks unchanged. Real loop unrolling/peeling is out of scope; a
// function that actually loops is left cyclic and skipped by Abstract's topological sort.
func IdentityUnloop(blocks []ir.Block) []ir.Block { return blocks }

// Abstract walks fn's control-flow graph and produces its Summary: the symbolic expressions
// standing for its arguments and return value, and the raw constraints relating them (§4.1-4.2).
//
// inducesReducibleCFG and unloop are the externally supplied CFG-preprocessing collaborators of
// §4.1/§6: fn is rejected outright if its blocks aren't reducible, otherwise unloop runs first to
// turn any loop into an acyclic approximation before the rest of abstraction ever sees it. If
// unloop leaves a cycle behind anyway, the entry block is missing, or Abstract finds a terminator
// it cannot recognize, it warns through sink and returns nil: abstraction failures are a
// per-function skip, never a reason to abort the whole build. Operators it does not understand
// (ir.Unknown) only leave their results untracked.
func Abstract(fn *ir.Function, tenv ir.TypeEnvironment, sink diagnostic.Sink, inducesReducibleCFG InducesReducibleCFG, unloop Unloop) *Summary {
	if !inducesReducibleCFG(fn.Blocks) {
		sink.Warn(fmt.Sprintf("function %q has a non-reducible control-flow graph; skipping", fn.Name), nil)
		return nil
	}
	fn = &ir.Function{Name: fn.Name, Entry: fn.Entry, Blocks: unloop(fn.Blocks), ArgType: fn.ArgType, RetType: fn.RetType}

	order, ok := topoSort(fn)
	if !ok {
		sink.Warn(fmt.Sprintf("function %q has a cyclic control-flow graph after unlooping; skipping", fn.Name), nil)
		return nil
	}
	entry, ok := fn.Block(fn.Entry)
	if !ok {
		sink.Warn(fmt.Sprintf("function %q names entry block %q, which does not exist; skipping", fn.Name, fn.Entry), nil)
		return nil
	}

	st := newState(symbolic.NewCounter(), tenv)

	argExprs := make([]symbolic.Expr, len(entry.Arguments))
	for i, a := range entry.Arguments {
		v := st.freshValue(a.Type)
		st.bind(a.Register, v)
		argExprs[i] = ValueExpr(v)
	}

	// Every non-entry block argument is a "phi" placeholder: allocated fresh up front, then
	// equated with whatever actually flows in along each incoming edge below.
	for _, b := range fn.Blocks {
		if b.Name == fn.Entry {
			continue
		}
		for _, a := range b.Arguments {
			st.bind(a.Register, st.freshValue(a.Type))
		}
	}

	retVal := st.freshValue(fn.RetType)

	pathConds := map[ir.BlockName][]symbolic.BoolExpr{fn.Entry: {symbolic.BoolTrue{}}}
	var constraints []RawConstraint
	unrecognized := false

	for _, name := range order {
		b, _ := fn.Block(name)
		cond := foldPathCondition(pathConds[name])
		loc := b.Terminator.Location

		for _, op := range b.Operators {
			constraints = append(constraints, interpretOperator(st, op, cond)...)
		}

		switch term := b.Terminator.Variant.(type) {
		case ir.Br:
			propagate(pathConds, term.Target, cond)
			constraints = append(constraints, equateBlockArgs(st, fn, term.Target, term.Operands, cond, loc)...)

		case ir.CondBr:
			trueEdge, falseEdge := symbolic.BoolExpr(symbolic.BoolTrue{}), symbolic.BoolExpr(symbolic.BoolTrue{})
			if cv, ok := st.regs[term.Cond].(BoolVal); ok {
				trueEdge = cv.Expr
				falseEdge = symbolic.Not{X: cv.Expr}
			}
			trueCond := symbolic.And{Xs: []symbolic.BoolExpr{cond, trueEdge}}
			falseCond := symbolic.And{Xs: []symbolic.BoolExpr{cond, falseEdge}}
			propagate(pathConds, term.TrueTarget, trueCond)
			propagate(pathConds, term.FalseTarget, falseCond)
			constraints = append(constraints, equateBlockArgs(st, fn, term.TrueTarget, term.TrueOperands, trueCond, loc)...)
			constraints = append(constraints, equateBlockArgs(st, fn, term.FalseTarget, term.FalseOperands, falseCond, loc)...)

		case ir.Return:
			constraints = append(constraints,
				emitEquality(ValueExpr(retVal), ValueExpr(st.regs[term.Operand]), cond, Implied, loc)...)

		case ir.SwitchEnum:
			// enum payloads carry no data across case edges (out of scope), but each case still
			// gets its own fresh boolean conjoined onto the switch's path condition, so that two
			// cases reached from the same switch are never folded into one indistinguishable edge.
			for _, c := range term.Cases {
				caseCond := symbolic.And{Xs: []symbolic.BoolExpr{cond, st.counter.FreshBool()}}
				propagate(pathConds, c.Target, caseCond)
			}

		case ir.Unreachable:
			// contributes no successor edges and no constraints.

		default:
			unrecognized = true
		}
	}

	if unrecognized {
		sink.Warn(fmt.Sprintf("function %q has an unrecognized terminator; skipping", fn.Name), nil)
		return nil
	}

	return &Summary{ArgExprs: argExprs, RetExpr: ValueExpr(retVal), Constraints: constraints}
}

func propagate(pathConds map[ir.BlockName][]symbolic.BoolExpr, target ir.BlockName, edgeCond symbolic.BoolExpr) {
	pathConds[target] = append(pathConds[target], edgeCond)
}

// foldPathCondition combines a block's incoming edge conditions with Or, sorting disjuncts by
// their textual form first so that a block reached the same way in two different interpreter runs
// always gets a textually identical path condition (§4.2 determinism rule).
func foldPathCondition(conds []symbolic.BoolExpr) symbolic.BoolExpr {
	switch len(conds) {
	case 0:
		return symbolic.BoolFalse{}
	case 1:
		return conds[0]
	default:
		sorted := append([]symbolic.BoolExpr{}, conds...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })
		return symbolic.Or{Xs: sorted}
	}
}

// equateBlockArgs equates target's block-argument placeholders with the operands passed to it
// along one edge, gated on that edge's condition.
func equateBlockArgs(st *state, fn *ir.Function, target ir.BlockName, operands []ir.Register, edgeCond symbolic.BoolExpr, loc *ir.SourceLocation) []RawConstraint {
	blk, ok := fn.Block(target)
	if !ok {
		return nil
	}
	n := len(blk.Arguments)
	if len(operands) < n {
		n = len(operands)
	}
	var out []RawConstraint
	for i := 0; i < n; i++ {
		argVal := st.regs[blk.Arguments[i].Register]
		opVal := st.regs[operands[i]]
		out = append(out, emitEquality(ValueExpr(argVal), ValueExpr(opVal), edgeCond, Implied, loc)...)
	}
	return out
}

// emitEquality builds the ExprConstraint(s) asserting a == b, recursing into tuple structure so
// that a struct- or tuple-typed equality becomes one constraint per tracked leaf, and skipping
// untracked (nil) slots and sort mismatches rather than fabricating a meaningless predicate.
func emitEquality(a, b symbolic.Expr, assume symbolic.BoolExpr, origin Origin, loc *ir.SourceLocation) []RawConstraint {
	if a == nil || b == nil {
		return nil
	}
	ta, aok := a.(symbolic.Tuple)
	tb, bok := b.(symbolic.Tuple)
	if aok && bok {
		n := len(ta.Elements)
		if len(tb.Elements) < n {
			n = len(tb.Elements)
		}
		var out []RawConstraint
		for i := 0; i < n; i++ {
			out = append(out, emitEquality(ta.Elements[i], tb.Elements[i], assume, origin, loc)...)
		}
		return out
	}
	pred := equalityPredicate(a, b)
	if pred == nil {
		return nil
	}
	return []RawConstraint{ExprConstraint{Pred: pred, Assume: assume, Origin: origin, Loc: loc}}
}

func equalityPredicate(a, b symbolic.Expr) symbolic.BoolExpr {
	switch av := a.(type) {
	case symbolic.IntExpr:
		bv, ok := b.(symbolic.IntExpr)
		if !ok {
			return nil
		}
		return symbolic.IntCompare{Op: symbolic.CmpEq, LHS: av, RHS: bv}
	case symbolic.ListExpr:
		bv, ok := b.(symbolic.ListExpr)
		if !ok {
			return nil
		}
		return symbolic.ListEq{LHS: av, RHS: bv}
	case symbolic.BoolExpr:
		bv, ok := b.(symbolic.BoolExpr)
		if !ok {
			return nil
		}
		return symbolic.BoolEq{LHS: av, RHS: bv}
	default:
		return nil
	}
}

// topoSort orders fn's blocks via Kahn's algorithm. It returns ok=false if the block graph
// contains a cycle, in which case the order is meaningless.
func topoSort(fn *ir.Function) ([]ir.BlockName, bool) {
	indegree := make(map[ir.BlockName]int, len(fn.Blocks))
	succs := make(map[ir.BlockName][]ir.BlockName, len(fn.Blocks))
	for _, b := range fn.Blocks {
		if _, ok := indegree[b.Name]; !ok {
			indegree[b.Name] = 0
		}
		for _, s := range successors(b.Terminator.Variant) {
			succs[b.Name] = append(succs[b.Name], s)
			indegree[s]++
		}
	}

	var queue []ir.BlockName
	for _, b := range fn.Blocks {
		if indegree[b.Name] == 0 {
			queue = append(queue, b.Name)
		}
	}

	order := make([]ir.BlockName, 0, len(fn.Blocks))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, s := range succs[n] {
			indegree[s]--
			if indegree[s] == 0 {
				queue = append(queue, s)
			}
		}
	}

	if len(order) != len(fn.Blocks) {
		return nil, false
	}
	return order, true
}

func successors(term ir.Terminator) []ir.BlockName {
	switch t := term.(type) {
	case ir.Br:
		return []ir.BlockName{t.Target}
	case ir.CondBr:
		return []ir.BlockName{t.TrueTarget, t.FalseTarget}
	case ir.SwitchEnum:
		out := make([]ir.BlockName, len(t.Cases))
		for i, c := range t.Cases {
			out[i] = c.Target
		}
		return out
	default:
		return nil
	}
}
