// Package ir defines the data model that shapecheck consumes from the (out-of-scope) IR parser:
// functions, blocks, typed operators and terminators, and the nominal type environment. Nothing
// in this package performs analysis; it is purely the shape of the input contract described in
// the builtin symbol table and type grammar the abstract interpreter walks.
package ir

import "fmt"

// SourceLocation is a position in the original user program, carried through from the parser so
// that constraints can be traced back to the line responsible for them.
type SourceLocation struct {
	Path string
	Line int
}

// String renders a SourceLocation as "path:line", or "<unknown>" for the zero value.
func (l *SourceLocation) String() string {
	if l == nil || l.Path == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", l.Path, l.Line)
}
