package symbolic

// Expr is the tagged union of all expression sorts plus the compound tuple form used only at
// call-site boundaries (matching an entire argument list or a tuple-typed result/argument
// positionally against another tuple).
type Expr interface {
	isExpr()
	String() string
}

// IntExpr is the sort of integer-valued terms.
type IntExpr interface {
	Expr
	isIntExpr()
	// Equal reports whether two IntExpr trees are structurally identical.
	Equal(IntExpr) bool
}

// ListExpr is the sort of shape-valued (integer list) terms.
type ListExpr interface {
	Expr
	isListExpr()
	Equal(ListExpr) bool
}

// BoolExpr is the sort of boolean-valued terms.
type BoolExpr interface {
	Expr
	isBoolExpr()
	Equal(BoolExpr) bool
}

// Tuple is a compound expression: a fixed-arity list of (possibly absent) element expressions.
// A nil element represents an untracked slot - e.g. a tuple field whose type the interpreter
// could not give a fresh value to.
type Tuple struct{ Elements []Expr }

func (Tuple) isExpr() {}

func (t Tuple) String() string {
	s := "("
	for i, e := range t.Elements {
		if i > 0 {
			s += ", "
		}
		if e == nil {
			s += "_"
		} else {
			s += e.String()
		}
	}
	return s + ")"
}

// Equal reports whether two tuples have the same arity and structurally-equal elements
// (comparing sort-appropriately), treating absent slots as equal to each other only.
func (t Tuple) Equal(other Tuple) bool {
	if len(t.Elements) != len(other.Elements) {
		return false
	}
	for i, e := range t.Elements {
		o := other.Elements[i]
		if (e == nil) != (o == nil) {
			return false
		}
		if e == nil {
			continue
		}
		if !ExprEqual(e, o) {
			return false
		}
	}
	return true
}

// ExprEqual compares two Expr values of possibly-heterogeneous concrete sort. Expressions of
// different sorts are never equal.
func ExprEqual(a, b Expr) bool {
	switch av := a.(type) {
	case IntExpr:
		bv, ok := b.(IntExpr)
		return ok && av.Equal(bv)
	case ListExpr:
		bv, ok := b.(ListExpr)
		return ok && av.Equal(bv)
	case BoolExpr:
		bv, ok := b.(BoolExpr)
		return ok && av.Equal(bv)
	case Tuple:
		bv, ok := b.(Tuple)
		return ok && av.Equal(bv)
	default:
		return false
	}
}
