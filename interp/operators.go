package interp

import (
	"fmt"
	"strings"

	"go.tfp.dev/shapecheck/ir"
	"go.tfp.dev/shapecheck/symbolic"
)

// interpretOperator executes one OperatorDef against st, binding its result register(s) and
// returning any raw constraints it emits (only calls emit constraints directly; every other
// operator only updates the register valuation). Arity or sort mismatches on operators this
// function claims to understand are structural contract violations and panic, naming the
// offending operator, per §7.
func interpretOperator(st *state, op ir.OperatorDef, pathCond symbolic.BoolExpr) []RawConstraint {
	switch v := op.Variant.(type) {
	case ir.BeginBorrow:
		st.bind(result1(op), st.regs[v.Operand])
	case ir.CopyValue:
		st.bind(result1(op), st.regs[v.Operand])
	case ir.ConvertFunction:
		st.bind(result1(op), st.regs[v.Operand])
	case ir.ConvertEscapeToNoescape:
		st.bind(result1(op), st.regs[v.Operand])
	case ir.ThinToThickFunction:
		st.bind(result1(op), st.regs[v.Operand])
	case ir.MarkDependence:
		st.bind(result1(op), st.regs[v.Operand])

	case ir.IntegerLiteral:
		st.bind(result1(op), IntVal{Expr: symbolic.IntLit{Value: v.Value}})

	case ir.ArrayLiteral:
		dims := make([]symbolic.IntExpr, len(v.Elements))
		for i, reg := range v.Elements {
			if iv, ok := st.regs[reg].(IntVal); ok {
				dims[i] = iv.Expr
			}
		}
		st.bind(result1(op), ListVal{Expr: symbolic.ListLit{Dims: dims}})

	case ir.LiteralEqual:
		lhs, lok := st.regs[v.LHS].(IntVal)
		rhs, rok := st.regs[v.RHS].(IntVal)
		if !lok || !rok {
			panic(fmt.Sprintf("literal_equal operand is not a tracked Int at %s", op.Location.String()))
		}
		st.bind(result1(op), BoolVal{Expr: symbolic.IntCompare{Op: symbolic.CmpEq, LHS: lhs.Expr, RHS: rhs.Expr}})

	case ir.FunctionRef:
		st.bind(result1(op), FunctionVal{Name: v.Name})

	case ir.PartialApply:
		args := make([]Value, len(v.Args))
		for i, reg := range v.Args {
			args[i] = st.regs[reg]
		}
		st.bind(result1(op), PartialAppVal{Fn: st.regs[v.Function], Args: args, ArgTypes: v.ArgTypes})

	case ir.StructInit:
		elems := make([]Value, len(v.Fields))
		for i, reg := range v.Fields {
			elems[i] = st.regs[reg]
		}
		st.bind(result1(op), TupleVal{Elements: elems})

	case ir.TupleInit:
		elems := make([]Value, len(v.Elements))
		for i, reg := range v.Elements {
			elems[i] = st.regs[reg]
		}
		st.bind(result1(op), TupleVal{Elements: elems})

	case ir.DestructureTuple:
		tv, ok := st.regs[v.Operand].(TupleVal)
		if !ok {
			// operand type wasn't derivable into a tuple value (e.g. untracked); leave every
			// result register untracked rather than treat this as a contract violation, since
			// an unknown-typed tuple is a legitimate (if unfortunate) abstraction outcome.
			for _, r := range op.Results {
				st.bind(r, nil)
			}
			return nil
		}
		if len(tv.Elements) != len(op.Results) {
			panic(fmt.Sprintf("destructure_tuple arity mismatch at %s: tuple has %d elements, %d results expected",
				op.Location.String(), len(tv.Elements), len(op.Results)))
		}
		for i, r := range op.Results {
			st.bind(r, tv.Elements[i])
		}

	case ir.StructExtract:
		idx := -1
		if fields, ok := st.tenv.Fields(v.TypeName); ok {
			for i, f := range fields {
				if f.Name == v.FieldName {
					idx = i
					break
				}
			}
		}
		tv, ok := st.regs[v.Operand].(TupleVal)
		if !ok || idx < 0 || idx >= len(tv.Elements) {
			st.bind(result1(op), nil)
			break
		}
		st.bind(result1(op), tv.Elements[idx])

	case ir.TupleExtract:
		tv, ok := st.regs[v.Operand].(TupleVal)
		if !ok || v.Index < 0 || v.Index >= len(tv.Elements) {
			st.bind(result1(op), nil)
			break
		}
		st.bind(result1(op), tv.Elements[v.Index])

	case ir.GlobalAddr:
		st.bind(result1(op), AddressVal{Symbol: v.Symbol})

	case ir.Load:
		addr, ok := st.regs[v.Operand].(AddressVal)
		if !ok || !strings.HasSuffix(addr.Symbol, intPropertyMangledSuffix) {
			st.bind(result1(op), nil)
			break
		}
		st.bind(result1(op), IntVal{Expr: symbolic.IntHole{Loc: op.Location}})

	case ir.Apply:
		return resolveCall(st, st.regs[v.Callee], v.Args, v.ResultType, op.Results, op.Location, pathCond)

	case ir.BeginApply:
		st.bind(result1(op), CoroutineVal{Callee: st.regs[v.Callee], Args: regsToValues(st, v.Args)})

	case ir.EndApply:
		cv, ok := st.regs[v.Token].(CoroutineVal)
		if !ok {
			panic(fmt.Sprintf("end_apply at %s does not reference a matching begin_apply token", op.Location.String()))
		}
		return resolveResolvedCall(st, cv.Callee, cv.Args, v.ResultType, op.Results, op.Location, pathCond)

	case ir.Unknown:
		for _, r := range op.Results {
			st.bind(r, nil)
		}

	default:
		panic(fmt.Sprintf("unrecognized operator variant %T at %s", op.Variant, op.Location.String()))
	}
	return nil
}

func result1(op ir.OperatorDef) ir.Register {
	if len(op.Results) != 1 {
		panic(fmt.Sprintf("operator %T expected exactly one result, got %d", op.Variant, len(op.Results)))
	}
	return op.Results[0]
}

func regsToValues(st *state, regs []ir.Register) []Value {
	out := make([]Value, len(regs))
	for i, r := range regs {
		out[i] = st.regs[r]
	}
	return out
}
