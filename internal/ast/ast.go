// Package ast holds source positions shared by the Core AST and
// diagnostics.
package ast

import "fmt"

// Pos represents a position in source code
type Pos struct {
	File   string
	Line   int
	Column int
	Offset int // Byte offset from the start of the file
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsZero reports whether the position carries no location information
func (p Pos) IsZero() bool {
	return p == Pos{}
}

// Span represents a range in source code
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string {
	return s.Start.String()
}
