package core

import (
	"fmt"
	"strings"

	"github.com/mbcrawfo/vibefun/internal/ast"
)

// TypeExpr is the base interface for type expressions as written in
// source: annotations, type declarations, and external signatures.
type TypeExpr interface {
	Pos() ast.Pos
	String() string
	typeExpr()
}

// ConstType names a type constant: Int, String, or a user type
type ConstType struct {
	Node
	Name string
}

func (t *ConstType) typeExpr()      {}
func (t *ConstType) String() string { return t.Name }

// FuncType is a function type expression
type FuncType struct {
	Node
	Params []TypeExpr
	Return TypeExpr
}

func (t *FuncType) typeExpr() {}
func (t *FuncType) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	if len(params) == 1 {
		return fmt.Sprintf("%s -> %s", params[0], t.Return)
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.Return)
}

// AppType applies a type constructor to arguments: List<Int>
type AppType struct {
	Node
	Ctor TypeExpr
	Args []TypeExpr
}

func (t *AppType) typeExpr() {}
func (t *AppType) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Ctor, strings.Join(args, ", "))
}

// VarType names a type variable: 'a' in ∀a. a -> a
type VarType struct {
	Node
	Name string
}

func (t *VarType) typeExpr()      {}
func (t *VarType) String() string { return t.Name }

// TypeExprField is a labeled field of a record type expression
type TypeExprField struct {
	Name string
	Type TypeExpr
	Pos  ast.Pos
}

// RecordType is a structural record type expression
type RecordType struct {
	Node
	Fields []TypeExprField
}

func (t *RecordType) typeExpr() {}
func (t *RecordType) String() string {
	fields := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = fmt.Sprintf("%s: %s", f.Name, f.Type)
	}
	return fmt.Sprintf("{%s}", strings.Join(fields, ", "))
}

// CtorSpec is a single constructor of a variant type expression
type CtorSpec struct {
	Name string
	Args []TypeExpr
	Pos  ast.Pos
}

// VariantType is a named-sum type expression
type VariantType struct {
	Node
	Ctors []CtorSpec
}

func (t *VariantType) typeExpr() {}
func (t *VariantType) String() string {
	ctors := make([]string, len(t.Ctors))
	for i, c := range t.Ctors {
		if len(c.Args) == 0 {
			ctors[i] = c.Name
			continue
		}
		args := make([]string, len(c.Args))
		for j, a := range c.Args {
			args[j] = a.String()
		}
		ctors[i] = fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
	}
	return strings.Join(ctors, " | ")
}

// UnionType is an ad-hoc union of type expressions, used for external
// host types
type UnionType struct {
	Node
	Types []TypeExpr
}

func (t *UnionType) typeExpr() {}
func (t *UnionType) String() string {
	parts := make([]string, len(t.Types))
	for i, m := range t.Types {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}
