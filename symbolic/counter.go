// Package symbolic implements the constraint IR: the three term sorts (IntExpr, ListExpr,
// BoolExpr) plus the compound Expr union, structural substitution, equality, and printing. All
// terms are immutable value types; substitution always produces new terms.
package symbolic

// Counter is the single monotonically increasing source of fresh variable identifiers shared
// across all three sorts, so that printed variable names never collide between sorts even though
// each sort has its own namespace (d-, s-, b- prefixes).
type Counter struct {
	next int
}

// NewCounter returns a Counter starting at zero.
func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) take() int {
	id := c.next
	c.next++
	return id
}

// FreshInt allocates a new, previously-unused integer variable.
func (c *Counter) FreshInt() IntVar { return IntVar{ID: c.take()} }

// FreshList allocates a new, previously-unused list (shape) variable.
func (c *Counter) FreshList() ListVar { return ListVar{ID: c.take()} }

// FreshBool allocates a new, previously-unused boolean variable.
func (c *Counter) FreshBool() BoolVar { return BoolVar{ID: c.take()} }
