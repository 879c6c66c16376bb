// Package types implements the vibefun type checker: Hindley-Milner
// inference with level-based let-polymorphism over the Core AST.
package types

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

// Type represents a type in the vibefun type system
type Type interface {
	String() string
	Equals(Type) bool
	Substitute(Substitution) Type
	typ()
}

// Well-known type constant names
const (
	IntName    = "Int"
	FloatName  = "Float"
	StringName = "String"
	BoolName   = "Bool"
	UnitName   = "Unit"
	NeverName  = "Never"
	RefName    = "Ref"
)

// TVar represents a unification variable. Identity is the ID; the
// level marks the let-depth at which the variable was created and is
// lowered in place during unification.
type TVar struct {
	ID    int
	Level int
}

func (t *TVar) typ()           {}
func (t *TVar) String() string { return fmt.Sprintf("t%d", t.ID) }

func (t *TVar) Equals(other Type) bool {
	if o, ok := other.(*TVar); ok {
		return t.ID == o.ID
	}
	return false
}

func (t *TVar) Substitute(sub Substitution) Type {
	if bound, ok := sub[t.ID]; ok {
		return bound.Substitute(sub)
	}
	return t
}

// TCon represents a nullary type constant (Int, Bool, user types)
type TCon struct {
	Name string
}

func (t *TCon) typ()           {}
func (t *TCon) String() string { return t.Name }

func (t *TCon) Equals(other Type) bool {
	if o, ok := other.(*TCon); ok {
		return t.Name == o.Name
	}
	return false
}

func (t *TCon) Substitute(Substitution) Type { return t }

// TFunc represents an n-ary function type; curried forms are nested
type TFunc struct {
	Params []Type
	Return Type
}

func (t *TFunc) typ() {}

func (t *TFunc) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	if len(params) == 1 {
		return fmt.Sprintf("%s -> %s", params[0], t.Return)
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.Return)
}

func (t *TFunc) Equals(other Type) bool {
	o, ok := other.(*TFunc)
	if !ok || len(t.Params) != len(o.Params) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equals(o.Params[i]) {
			return false
		}
	}
	return t.Return.Equals(o.Return)
}

func (t *TFunc) Substitute(sub Substitution) Type {
	params := make([]Type, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.Substitute(sub)
	}
	return &TFunc{Params: params, Return: t.Return.Substitute(sub)}
}

// TApp represents an applied type constructor: List<Int>, Ref<a>
type TApp struct {
	Con  Type
	Args []Type
}

func (t *TApp) typ() {}

func (t *TApp) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Con, strings.Join(args, ", "))
}

func (t *TApp) Equals(other Type) bool {
	o, ok := other.(*TApp)
	if !ok || !t.Con.Equals(o.Con) || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

func (t *TApp) Substitute(sub Substitution) Type {
	args := make([]Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Substitute(sub)
	}
	return &TApp{Con: t.Con.Substitute(sub), Args: args}
}

// TRecord represents a structural record type
type TRecord struct {
	Fields map[string]Type
}

func (t *TRecord) typ() {}

func (t *TRecord) String() string {
	names := make([]string, 0, len(t.Fields))
	for name := range t.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %s", name, t.Fields[name])
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

func (t *TRecord) Equals(other Type) bool {
	o, ok := other.(*TRecord)
	if !ok || len(t.Fields) != len(o.Fields) {
		return false
	}
	for name, ft := range t.Fields {
		ot, ok := o.Fields[name]
		if !ok || !ft.Equals(ot) {
			return false
		}
	}
	return true
}

func (t *TRecord) Substitute(sub Substitution) Type {
	fields := make(map[string]Type, len(t.Fields))
	for name, ft := range t.Fields {
		fields[name] = ft.Substitute(sub)
	}
	return &TRecord{Fields: fields}
}

// TVariant represents a named sum with constructor payload arities
type TVariant struct {
	Ctors map[string][]Type
}

func (t *TVariant) typ() {}

func (t *TVariant) String() string {
	names := make([]string, 0, len(t.Ctors))
	for name := range t.Ctors {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		payload := t.Ctors[name]
		if len(payload) == 0 {
			parts[i] = name
			continue
		}
		args := make([]string, len(payload))
		for j, a := range payload {
			args[j] = a.String()
		}
		parts[i] = fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
	}
	return strings.Join(parts, " | ")
}

func (t *TVariant) Equals(other Type) bool {
	o, ok := other.(*TVariant)
	if !ok || len(t.Ctors) != len(o.Ctors) {
		return false
	}
	for name, payload := range t.Ctors {
		opayload, ok := o.Ctors[name]
		if !ok || len(payload) != len(opayload) {
			return false
		}
		for i := range payload {
			if !payload[i].Equals(opayload[i]) {
				return false
			}
		}
	}
	return true
}

func (t *TVariant) Substitute(sub Substitution) Type {
	ctors := make(map[string][]Type, len(t.Ctors))
	for name, payload := range t.Ctors {
		args := make([]Type, len(payload))
		for i, a := range payload {
			args[i] = a.Substitute(sub)
		}
		ctors[name] = args
	}
	return &TVariant{Ctors: ctors}
}

// TUnion represents an ad-hoc union of types, used for external host
// types. Unions never unify structurally beyond exact equality, and
// member order is significant.
type TUnion struct {
	Types []Type
}

func (t *TUnion) typ() {}

func (t *TUnion) String() string {
	parts := make([]string, len(t.Types))
	for i, m := range t.Types {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

func (t *TUnion) Equals(other Type) bool {
	o, ok := other.(*TUnion)
	if !ok || len(t.Types) != len(o.Types) {
		return false
	}
	for i := range t.Types {
		if !t.Types[i].Equals(o.Types[i]) {
			return false
		}
	}
	return true
}

func (t *TUnion) Substitute(sub Substitution) Type {
	members := make([]Type, len(t.Types))
	for i, m := range t.Types {
		members[i] = m.Substitute(sub)
	}
	return &TUnion{Types: members}
}

// Fresh variable generation. The counter is process-wide; embedders
// that compile modules concurrently must partition the id space.
var varCounter atomic.Int64

// FreshVar returns a new unification variable at the given level
func FreshVar(level int) *TVar {
	id := varCounter.Add(1)
	return &TVar{ID: int(id), Level: level}
}

// ResetVarCounter resets the fresh-variable counter. Tests only.
func ResetVarCounter() {
	varCounter.Store(0)
}

// FreeTypeVars returns the free unification variables of t, keyed by id
func FreeTypeVars(t Type) map[int]*TVar {
	free := make(map[int]*TVar)
	collectFreeTypeVars(t, free)
	return free
}

func collectFreeTypeVars(t Type, free map[int]*TVar) {
	switch t := t.(type) {
	case *TVar:
		free[t.ID] = t
	case *TCon:
	case *TFunc:
		for _, p := range t.Params {
			collectFreeTypeVars(p, free)
		}
		collectFreeTypeVars(t.Return, free)
	case *TApp:
		collectFreeTypeVars(t.Con, free)
		for _, a := range t.Args {
			collectFreeTypeVars(a, free)
		}
	case *TRecord:
		for _, ft := range t.Fields {
			collectFreeTypeVars(ft, free)
		}
	case *TVariant:
		for _, payload := range t.Ctors {
			for _, a := range payload {
				collectFreeTypeVars(a, free)
			}
		}
	case *TUnion:
		for _, m := range t.Types {
			collectFreeTypeVars(m, free)
		}
	}
}

// FreeTypeVarsAbove returns the free variables of t whose level
// exceeds the given level. These are the generalization candidates at
// a let boundary at that level.
func FreeTypeVarsAbove(t Type, level int) map[int]*TVar {
	above := make(map[int]*TVar)
	for id, v := range FreeTypeVars(t) {
		if v.Level > level {
			above[id] = v
		}
	}
	return above
}

// sortedVarIDs returns the ids of a free-variable set in ascending
// order, which is creation order.
func sortedVarIDs(vars map[int]*TVar) []int {
	ids := make([]int, 0, len(vars))
	for id := range vars {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
