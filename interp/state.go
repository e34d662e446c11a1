package interp

import (
	"go.tfp.dev/shapecheck/ir"
	"go.tfp.dev/shapecheck/symbolic"
)

// tensorTypeName is the nominal type name that triggers the special tensor(shape = fresh list
// variable) fresh-value rule, rather than the generic named-type-with-known-fields rule.
const tensorTypeName = "Tensor"

// intPropertyMangledSuffix is the mangling suffix the language uses for Int property accessors.
// An address whose symbol ends in this suffix is understood to address a global Int property, so
// a Load through it produces an opaque hole rather than an untracked value.
const intPropertyMangledSuffix = "Sivg"

// state is the per-function interpreter state: the register valuation, the shared fresh-variable
// counter, and the function's type environment. It is owned exclusively by the goroutine
// abstracting one function and is discarded once Summary is produced.
type state struct {
	counter *symbolic.Counter
	tenv    ir.TypeEnvironment
	regs    map[ir.Register]Value
}

func newState(counter *symbolic.Counter, tenv ir.TypeEnvironment) *state {
	return &state{counter: counter, tenv: tenv, regs: map[ir.Register]Value{}}
}

// valueFor implements the "get-or-fresh" pattern (design note §9): if reg already has a value,
// return it; otherwise allocate a fresh value for typ, store it, and return it. Keeping this as
// one method co-locates the fresh-variable counter with the map it populates.
func (s *state) valueFor(reg ir.Register, typ ir.Type) Value {
	if v, ok := s.regs[reg]; ok {
		return v
	}
	v := s.freshValue(typ)
	s.regs[reg] = v
	return v
}

// bind records v as the value of reg, overwriting the register's single SSA definition (the IR
// being SSA-form on input, this is only ever called once per register).
func (s *state) bind(reg ir.Register, v Value) {
	s.regs[reg] = v
}

// freshValue allocates a new symbolic value appropriate to typ, per the fresh-value-by-type rules
// of §4.2: Int -> fresh integer variable; Bool -> fresh boolean variable; TensorShape -> fresh
// list variable; named Tensor<...> -> fresh tensor(shape = fresh list variable); tuple -> tuple of
// fresh values; other named type whose fields are known -> tuple of fresh values per field;
// unknown -> no value (nil, untracked).
func (s *state) freshValue(typ ir.Type) Value {
	if typ == nil {
		return nil
	}
	simplified := ir.SimplifyType(typ)
	switch t := simplified.(type) {
	case ir.NamedType:
		switch t.Name {
		case "Int":
			return IntVal{Expr: s.counter.FreshInt()}
		case "Bool":
			return BoolVal{Expr: s.counter.FreshBool()}
		case "TensorShape":
			return ListVal{Expr: s.counter.FreshList()}
		default:
			if fields, ok := s.tenv.Fields(t.Name); ok {
				return s.freshTupleFromFields(fields)
			}
			return nil
		}
	case ir.SpecializedType:
		if t.Base.Name == tensorTypeName {
			return TensorVal{Shape: s.counter.FreshList()}
		}
		if fields, ok := s.tenv.Fields(t.Base.Name); ok {
			return s.freshTupleFromFields(fields)
		}
		return nil
	case ir.TupleType:
		elems := make([]Value, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = s.freshValue(e)
		}
		return TupleVal{Elements: elems}
	default:
		// FunctionType, AddressedType, BuiltinQualifiedType, and any other form have no
		// fresh-value rule of their own; they are untracked until bound directly (e.g. by
		// FunctionRef or GlobalAddr).
		return nil
	}
}

func (s *state) freshTupleFromFields(fields []ir.FieldDecl) Value {
	elems := make([]Value, len(fields))
	for i, f := range fields {
		elems[i] = s.freshValue(f.Type)
	}
	return TupleVal{Elements: elems}
}
