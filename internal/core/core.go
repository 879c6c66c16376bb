// Package core defines the desugared Core AST consumed by the type
// checker. Surface syntax is lowered to this form before checking:
// pipelines, string interpolation, and multi-clause functions are gone,
// and every node carries the position of the surface syntax it came
// from.
package core

import (
	"fmt"
	"strings"

	"github.com/mbcrawfo/vibefun/internal/ast"
)

// Node is the base for all Core AST nodes
type Node struct {
	NodePos ast.Pos
}

func (n Node) Pos() ast.Pos { return n.NodePos }

// Module is a single compilation unit: an ordered list of top-level
// declarations.
type Module struct {
	Name  string
	Decls []Decl
}

// Decl is the base interface for top-level declarations
type Decl interface {
	Pos() ast.Pos
	decl()
}

// LetDecl is a top-level let binding, possibly recursive or mutable
type LetDecl struct {
	Node
	Pattern   Pattern
	Value     Expr
	Mutable   bool
	Recursive bool
	Exported  bool
}

func (d *LetDecl) decl() {}

// LetRecGroup is a group of mutually recursive top-level bindings
type LetRecGroup struct {
	Node
	Bindings []RecDeclBinding
}

type RecDeclBinding struct {
	Pattern Pattern
	Value   Expr
	Pos     ast.Pos
}

func (d *LetRecGroup) decl() {}

// TypeDecl declares a named type, optionally parameterized
type TypeDecl struct {
	Node
	TypeName string
	Params   []string
	Body     TypeExpr
}

func (d *TypeDecl) decl() {}

// ExternalDecl declares a value implemented by the host runtime
type ExternalDecl struct {
	Node
	ExtName  string
	Type     TypeExpr
	JSName   string
	From     string // import source, empty for globals
	Exported bool
}

func (d *ExternalDecl) decl() {}

// ExternalTypeDecl declares an opaque host type
type ExternalTypeDecl struct {
	Node
	TypeName string
}

func (d *ExternalTypeDecl) decl() {}

// ImportDecl records an import; the loader has already resolved it
type ImportDecl struct {
	Node
	Path  string
	Names []string
}

func (d *ImportDecl) decl() {}

// Expr is the base interface for Core expressions
type Expr interface {
	Pos() ast.Pos
	String() string
	expr()
}

// LitKind discriminates literal values
type LitKind int

const (
	IntLit LitKind = iota
	FloatLit
	StringLit
	BoolLit
	UnitLit
)

// Lit represents a literal value
type Lit struct {
	Node
	Kind  LitKind
	Value interface{}
}

func (l *Lit) expr() {}
func (l *Lit) String() string {
	if l.Kind == UnitLit {
		return "()"
	}
	if l.Kind == StringLit {
		return fmt.Sprintf("%q", l.Value)
	}
	return fmt.Sprintf("%v", l.Value)
}

// Var represents a variable reference
type Var struct {
	Node
	Name string
}

func (v *Var) expr()          {}
func (v *Var) String() string { return v.Name }

// Lambda represents a function value. Parameters are patterns, but
// only variable patterns are accepted by the checker.
type Lambda struct {
	Node
	Params []Pattern
	Body   Expr
}

func (l *Lambda) expr() {}
func (l *Lambda) String() string {
	params := make([]string, len(l.Params))
	for i, p := range l.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("λ%s. %s", strings.Join(params, " "), l.Body)
}

// App represents function application
type App struct {
	Node
	Func Expr
	Args []Expr
}

func (a *App) expr() {}
func (a *App) String() string {
	args := make([]string, len(a.Args))
	for i, arg := range a.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", a.Func, strings.Join(args, ", "))
}

// Let represents a non-recursive let binding
type Let struct {
	Node
	Pattern Pattern
	Value   Expr
	Body    Expr
}

func (l *Let) expr() {}
func (l *Let) String() string {
	return fmt.Sprintf("let %s = %s in %s", l.Pattern, l.Value, l.Body)
}

// LetRec represents a group of mutually recursive bindings in
// expression position
type LetRec struct {
	Node
	Bindings []RecBinding
	Body     Expr
}

type RecBinding struct {
	Pattern Pattern
	Value   Expr
	Pos     ast.Pos
}

func (l *LetRec) expr() {}
func (l *LetRec) String() string {
	binds := make([]string, len(l.Bindings))
	for i, b := range l.Bindings {
		binds[i] = fmt.Sprintf("%s = %s", b.Pattern, b.Value)
	}
	return fmt.Sprintf("let rec %s in %s", strings.Join(binds, " and "), l.Body)
}

// Match represents pattern matching
type Match struct {
	Node
	Scrutinee Expr
	Arms      []MatchArm
}

type MatchArm struct {
	Pattern Pattern
	Guard   Expr // optional
	Body    Expr
	Pos     ast.Pos
}

func (m *Match) expr() {}
func (m *Match) String() string {
	arms := make([]string, len(m.Arms))
	for i, arm := range m.Arms {
		if arm.Guard != nil {
			arms[i] = fmt.Sprintf("%s if %s -> %s", arm.Pattern, arm.Guard, arm.Body)
		} else {
			arms[i] = fmt.Sprintf("%s -> %s", arm.Pattern, arm.Body)
		}
	}
	return fmt.Sprintf("match %s { %s }", m.Scrutinee, strings.Join(arms, " | "))
}

// BinOp represents a binary operation
type BinOp struct {
	Node
	Op    BinOpKind
	Left  Expr
	Right Expr
}

func (b *BinOp) expr() {}
func (b *BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// UnOp represents a unary operation
type UnOp struct {
	Node
	Op      UnOpKind
	Operand Expr
}

func (u *UnOp) expr() {}
func (u *UnOp) String() string {
	return fmt.Sprintf("%s%s", u.Op, u.Operand)
}

// Annot represents a type annotation on an expression
type Annot struct {
	Node
	Expr Expr
	Type TypeExpr
}

func (a *Annot) expr() {}
func (a *Annot) String() string {
	return fmt.Sprintf("(%s : %s)", a.Expr, a.Type)
}

// RecordField is a single labeled field in a record literal or update
type RecordField struct {
	Name  string
	Value Expr
	Pos   ast.Pos
}

// Record represents record construction
type Record struct {
	Node
	Fields []RecordField
}

func (r *Record) expr() {}
func (r *Record) String() string {
	fields := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = fmt.Sprintf("%s: %s", f.Name, f.Value)
	}
	return fmt.Sprintf("{%s}", strings.Join(fields, ", "))
}

// RecordAccess represents field access
type RecordAccess struct {
	Node
	Record Expr
	Field  string
}

func (r *RecordAccess) expr()          {}
func (r *RecordAccess) String() string { return fmt.Sprintf("%s.%s", r.Record, r.Field) }

// RecordUpdate represents functional record update
type RecordUpdate struct {
	Node
	Record Expr
	Fields []RecordField
}

func (r *RecordUpdate) expr() {}
func (r *RecordUpdate) String() string {
	fields := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = fmt.Sprintf("%s: %s", f.Name, f.Value)
	}
	return fmt.Sprintf("{%s with %s}", r.Record, strings.Join(fields, ", "))
}

// VariantLit represents construction of a variant value by applying a
// constructor name
type VariantLit struct {
	Node
	Ctor string
	Args []Expr
}

func (v *VariantLit) expr() {}
func (v *VariantLit) String() string {
	if len(v.Args) == 0 {
		return v.Ctor
	}
	args := make([]string, len(v.Args))
	for i, a := range v.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", v.Ctor, strings.Join(args, ", "))
}

// Unsafe marks a trusted host-interop boundary. The body is still
// checked, but the asserted type is taken at face value.
type Unsafe struct {
	Node
	Body Expr
	Type TypeExpr // optional assertion
}

func (u *Unsafe) expr() {}
func (u *Unsafe) String() string {
	if u.Type != nil {
		return fmt.Sprintf("unsafe (%s : %s)", u.Body, u.Type)
	}
	return fmt.Sprintf("unsafe %s", u.Body)
}
