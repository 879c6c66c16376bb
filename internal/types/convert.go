package types

import (
	"github.com/mbcrawfo/vibefun/internal/core"
)

// typeVarScope tracks the type variables introduced while converting
// one type expression, so repeated names refer to the same variable
type typeVarScope map[string]*TVar

// convertTypeExpr turns a source-level type expression into a Type.
// Named type variables are looked up in scope, creating a fresh
// variable at the given level on first use. Conversion is total: name
// resolution happened upstream, so unknown constants stay nominal.
func convertTypeExpr(te core.TypeExpr, scope typeVarScope, level int) Type {
	switch te := te.(type) {
	case *core.ConstType:
		return &TCon{Name: te.Name}

	case *core.VarType:
		if v, ok := scope[te.Name]; ok {
			return v
		}
		v := FreshVar(level)
		scope[te.Name] = v
		return v

	case *core.FuncType:
		params := make([]Type, len(te.Params))
		for i, p := range te.Params {
			params[i] = convertTypeExpr(p, scope, level)
		}
		return &TFunc{Params: params, Return: convertTypeExpr(te.Return, scope, level)}

	case *core.AppType:
		args := make([]Type, len(te.Args))
		for i, a := range te.Args {
			args[i] = convertTypeExpr(a, scope, level)
		}
		return &TApp{Con: convertTypeExpr(te.Ctor, scope, level), Args: args}

	case *core.RecordType:
		fields := make(map[string]Type, len(te.Fields))
		for _, f := range te.Fields {
			fields[f.Name] = convertTypeExpr(f.Type, scope, level)
		}
		return &TRecord{Fields: fields}

	case *core.VariantType:
		ctors := make(map[string][]Type, len(te.Ctors))
		for _, c := range te.Ctors {
			payload := make([]Type, len(c.Args))
			for i, a := range c.Args {
				payload[i] = convertTypeExpr(a, scope, level)
			}
			ctors[c.Name] = payload
		}
		return &TVariant{Ctors: ctors}

	case *core.UnionType:
		members := make([]Type, len(te.Types))
		for i, m := range te.Types {
			members[i] = convertTypeExpr(m, scope, level)
		}
		return &TUnion{Types: members}

	default:
		return &TCon{Name: NeverName}
	}
}

// convertScheme converts a type expression and closes over every type
// variable it introduced, as external and annotated declarations are
// implicitly universally quantified.
func convertScheme(te core.TypeExpr) *Scheme {
	scope := make(typeVarScope)
	t := convertTypeExpr(te, scope, 0)
	if len(scope) == 0 {
		return SchemeOf(t)
	}
	vars := make(map[int]*TVar, len(scope))
	for _, v := range scope {
		vars[v.ID] = v
	}
	return &Scheme{Vars: sortedVarIDs(vars), Type: t}
}
