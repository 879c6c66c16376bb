package types

import (
	"github.com/mbcrawfo/vibefun/internal/ast"
)

// Binding is what a name resolves to in the value environment
type Binding interface {
	binding()
	BindingPos() ast.Pos
}

// ValueBinding is a user-defined or inferred name
type ValueBinding struct {
	Scheme *Scheme
	Pos    ast.Pos
}

func (b *ValueBinding) binding()            {}
func (b *ValueBinding) BindingPos() ast.Pos { return b.Pos }

// ExternalBinding is a single externally declared function or value
type ExternalBinding struct {
	Scheme *Scheme
	JSName string
	From   string
	Pos    ast.Pos
}

func (b *ExternalBinding) binding()            {}
func (b *ExternalBinding) BindingPos() ast.Pos { return b.Pos }

// OverloadEntry is one member of an overload group; its scheme body is
// always a TFunc
type OverloadEntry struct {
	Scheme *Scheme
	Pos    ast.Pos
}

// Arity returns the entry's parameter count
func (e *OverloadEntry) Arity() int {
	if f, ok := e.Scheme.Type.(*TFunc); ok {
		return len(f.Params)
	}
	return -1
}

// ExternalOverloadBinding groups two or more external declarations
// sharing a name. All entries share JSName and From.
type ExternalOverloadBinding struct {
	Overloads []OverloadEntry
	JSName    string
	From      string
	Pos       ast.Pos
}

func (b *ExternalOverloadBinding) binding()            {}
func (b *ExternalOverloadBinding) BindingPos() ast.Pos { return b.Pos }

// TypeDef records a declared type constructor and its arity
type TypeDef struct {
	Name  string
	Arity int
	Pos   ast.Pos
}

// TypeEnv maps names to bindings and type names to definitions.
// Extension is functional: Extend returns a child environment and the
// parent remains usable.
type TypeEnv struct {
	values map[string]Binding
	types  map[string]*TypeDef
	parent *TypeEnv
}

// NewTypeEnv creates a new empty type environment
func NewTypeEnv() *TypeEnv {
	return &TypeEnv{
		values: make(map[string]Binding),
		types:  make(map[string]*TypeDef),
	}
}

// Extend creates a child environment with one additional value binding
func (env *TypeEnv) Extend(name string, b Binding) *TypeEnv {
	child := &TypeEnv{
		values: map[string]Binding{name: b},
		types:  make(map[string]*TypeDef),
		parent: env,
	}
	return child
}

// ExtendScheme creates a child environment binding name to a scheme
func (env *TypeEnv) ExtendScheme(name string, s *Scheme, pos ast.Pos) *TypeEnv {
	return env.Extend(name, &ValueBinding{Scheme: s, Pos: pos})
}

// Lookup resolves a value name, walking parent environments
func (env *TypeEnv) Lookup(name string) (Binding, bool) {
	for e := env; e != nil; e = e.parent {
		if b, ok := e.values[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// LookupType resolves a type name, walking parent environments
func (env *TypeEnv) LookupType(name string) (*TypeDef, bool) {
	for e := env; e != nil; e = e.parent {
		if d, ok := e.types[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// Define installs a value binding in this environment frame. Used by
// the environment builder; inference extends functionally instead.
func (env *TypeEnv) Define(name string, b Binding) {
	env.values[name] = b
}

// DefineType installs a type definition in this environment frame
func (env *TypeEnv) DefineType(d *TypeDef) {
	env.types[d.Name] = d
}

// Range visits every visible value binding exactly once, child frames
// shadowing parents. Iteration stops when f returns false.
func (env *TypeEnv) Range(f func(name string, b Binding) bool) {
	seen := make(map[string]bool)
	for e := env; e != nil; e = e.parent {
		for name, b := range e.values {
			if seen[name] {
				continue
			}
			seen[name] = true
			if !f(name, b) {
				return
			}
		}
	}
}
