package symbolic

import "fmt"

// ListVar is a shape variable, identified by a slot in the shared Counter namespace.
type ListVar struct{ ID int }

func (ListVar) isExpr()     {}
func (ListVar) isListExpr() {}
func (v ListVar) String() string { return fmt.Sprintf("s%d", v.ID) }
func (v ListVar) Equal(other ListExpr) bool {
	o, ok := other.(ListVar)
	return ok && o.ID == v.ID
}

// ListLit is a fixed-rank shape literal. Dims[i] == nil means that dimension's size is unknown
// (an absent slot), as opposed to a known-but-symbolic dimension which would be a non-nil
// IntExpr such as an IntVar.
type ListLit struct{ Dims []IntExpr }

func (ListLit) isExpr()     {}
func (ListLit) isListExpr() {}

func (l ListLit) String() string {
	s := "["
	for i, d := range l.Dims {
		if i > 0 {
			s += ", "
		}
		if d == nil {
			s += "nil"
		} else {
			s += d.String()
		}
	}
	return s + "]"
}

func (l ListLit) Equal(other ListExpr) bool {
	o, ok := other.(ListLit)
	if !ok || len(l.Dims) != len(o.Dims) {
		return false
	}
	for i, d := range l.Dims {
		od := o.Dims[i]
		if (d == nil) != (od == nil) {
			return false
		}
		if d != nil && !d.Equal(od) {
			return false
		}
	}
	return true
}

// Rank returns the number of dimensions in the literal.
func (l ListLit) Rank() int { return len(l.Dims) }

// At returns the dimension at logical index k, supporting negative indices counted from the
// right, and whether that index is in range.
func (l ListLit) At(k int) (IntExpr, bool) {
	n := len(l.Dims)
	if k < 0 {
		k += n
	}
	if k < 0 || k >= n {
		return nil, false
	}
	return l.Dims[k], true
}

// Broadcast is the elementwise NumPy-style broadcast of two shapes (see transform.Simplify for
// the simplification rules that resolve it when both sides are literals).
type Broadcast struct{ LHS, RHS ListExpr }

func (Broadcast) isExpr()     {}
func (Broadcast) isListExpr() {}
func (b Broadcast) String() string {
	return "broadcast(" + b.LHS.String() + ", " + b.RHS.String() + ")"
}
func (b Broadcast) Equal(other ListExpr) bool {
	o, ok := other.(Broadcast)
	return ok && b.LHS.Equal(o.LHS) && b.RHS.Equal(o.RHS)
}
