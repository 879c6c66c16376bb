package core

import (
	"fmt"
	"strings"

	"github.com/mbcrawfo/vibefun/internal/ast"
)

// Pattern is the base interface for match and binding patterns
type Pattern interface {
	Pos() ast.Pos
	String() string
	pattern()
}

// WildcardPattern matches anything and binds nothing
type WildcardPattern struct {
	Node
}

func (p *WildcardPattern) pattern()       {}
func (p *WildcardPattern) String() string { return "_" }

// VarPattern matches anything and binds one name
type VarPattern struct {
	Node
	Name string
}

func (p *VarPattern) pattern()       {}
func (p *VarPattern) String() string { return p.Name }

// LitPattern matches a literal value. The value is the raw literal as
// produced by the desugarer; its type is derived from its shape.
type LitPattern struct {
	Node
	Value interface{}
}

func (p *LitPattern) pattern() {}
func (p *LitPattern) String() string {
	if p.Value == nil {
		return "()"
	}
	if s, ok := p.Value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", p.Value)
}

// VariantPattern matches a constructor application
type VariantPattern struct {
	Node
	Ctor string
	Args []Pattern
}

func (p *VariantPattern) pattern() {}
func (p *VariantPattern) String() string {
	if len(p.Args) == 0 {
		return p.Ctor
	}
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.Ctor, strings.Join(args, ", "))
}

// PatternField is a labeled sub-pattern of a record pattern
type PatternField struct {
	Name    string
	Pattern Pattern
	Pos     ast.Pos
}

// RecordPattern matches a record by a subset of its fields
type RecordPattern struct {
	Node
	Fields []PatternField
}

func (p *RecordPattern) pattern() {}
func (p *RecordPattern) String() string {
	fields := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		fields[i] = fmt.Sprintf("%s: %s", f.Name, f.Pattern)
	}
	return fmt.Sprintf("{%s}", strings.Join(fields, ", "))
}

// TuplePattern is reserved for a future tuple extension. The checker
// currently treats it as a pass-through on the expected type.
type TuplePattern struct {
	Node
	Elems []Pattern
}

func (p *TuplePattern) pattern() {}
func (p *TuplePattern) String() string {
	elems := make([]string, len(p.Elems))
	for i, e := range p.Elems {
		elems[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(elems, ", "))
}
