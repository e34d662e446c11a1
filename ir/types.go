package ir

import "strings"

// Type is the tagged union of type forms the IR parser may hand us: nominal, specialized
// generic, tuple, function, addressed, attributed, generic-wrapped, and builtin-qualified.
type Type interface {
	isType()
	String() string
}

// NamedType is a nominal type reference, e.g. "Int", "Bool", "TensorShape", or a user struct
// name. Builtin scalar/shape types are represented as NamedType with their exact spelling.
type NamedType struct{ Name string }

func (NamedType) isType()        {}
func (t NamedType) String() string { return t.Name }

// SpecializedType is a specialized generic, e.g. Tensor<Float>.
type SpecializedType struct {
	Base NamedType
	Args []Type
}

func (SpecializedType) isType() {}
func (t SpecializedType) String() string {
	var b strings.Builder
	b.WriteString(t.Base.Name)
	b.WriteByte('<')
	for i, a := range t.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte('>')
	return b.String()
}

// TupleType is a fixed-arity tuple of element types.
type TupleType struct{ Elements []Type }

func (TupleType) isType() {}
func (t TupleType) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, e := range t.Elements {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(')')
	return b.String()
}

// FunctionType is the type of a function value (used for functionRef / partialApply chains).
type FunctionType struct {
	Params []Type
	Result Type
}

func (FunctionType) isType() {}
func (t FunctionType) String() string { return "Function" }

// AddressedType is a pointer/address-of some other type, produced by global-address operators.
type AddressedType struct{ Pointee Type }

func (AddressedType) isType() {}
func (t AddressedType) String() string { return "*" + t.Pointee.String() }

// AttributedType wraps another type with a source-level attribute that carries no shape
// information of its own (e.g. `@noescape`, `@convention(thin)`).
type AttributedType struct {
	Inner     Type
	Attribute string
}

func (AttributedType) isType() {}
func (t AttributedType) String() string { return t.Inner.String() }

// OwnershipType wraps another type with an ownership marker (borrowed / owned / inout) that
// carries no shape information of its own.
type OwnershipType struct {
	Inner Type
	Kind  string
}

func (OwnershipType) isType() {}
func (t OwnershipType) String() string { return t.Inner.String() }

// GenericType wraps another type with a generic-parameter marker (e.g. an archetype `T`) that
// has since been resolved to Inner by the parser.
type GenericType struct{ Inner Type }

func (GenericType) isType() {}
func (t GenericType) String() string { return t.Inner.String() }

// BuiltinQualifiedType is a builtin type qualified by the builtin module, e.g. `Builtin.Int64`,
// as opposed to a user-level NamedType of the same name.
type BuiltinQualifiedType struct{ Name string }

func (BuiltinQualifiedType) isType() {}
func (t BuiltinQualifiedType) String() string { return "Builtin." + t.Name }

// SimplifyType strips attribute wrappers, ownership markers, and resolved generic wrappers,
// returning the underlying nominal/specialized/tuple/function/addressed/builtin form that the
// interpreter's fresh-value-by-type rules switch on.
func SimplifyType(t Type) Type {
	for {
		switch v := t.(type) {
		case AttributedType:
			t = v.Inner
		case OwnershipType:
			t = v.Inner
		case GenericType:
			t = v.Inner
		default:
			return t
		}
	}
}

// FieldDecl is one declared field of a nominal struct type, in declaration order.
type FieldDecl struct {
	Name string
	Type Type
}

// TypeEnvironment maps nominal type names to their declared fields in order, as required to
// resolve structExtract by (typeName, fieldName) and to build fresh tuple values for named types
// with known fields.
type TypeEnvironment map[string][]FieldDecl

// Fields returns the ordered field declarations for a nominal type name, or (nil, false) if the
// type is unknown to this environment.
func (e TypeEnvironment) Fields(typeName string) ([]FieldDecl, bool) {
	fields, ok := e[typeName]
	return fields, ok
}
