package types

import (
	"math"

	"github.com/mbcrawfo/vibefun/internal/ast"
	"github.com/mbcrawfo/vibefun/internal/core"
)

// patternBindings accumulates the names a pattern introduces, in
// source order, rejecting duplicates within one pattern.
type patternBindings struct {
	names []string
	types map[string]Type
}

func newPatternBindings() *patternBindings {
	return &patternBindings{types: make(map[string]Type)}
}

func (pb *patternBindings) add(name string, t Type, pos ast.Pos) error {
	if _, dup := pb.types[name]; dup {
		return errDuplicateBinding(name, pos)
	}
	pb.names = append(pb.names, name)
	pb.types[name] = t
	return nil
}

// extend binds every collected name monomorphically in env
func (pb *patternBindings) extend(env *TypeEnv, sub Substitution, pos ast.Pos) *TypeEnv {
	for _, name := range pb.names {
		env = env.ExtendScheme(name, SchemeOf(sub.Apply(pb.types[name])), pos)
	}
	return env
}

// checkPattern checks a pattern against the expected type, extending
// the substitution and collecting fresh bindings. The substitution is
// threaded forward and applied before any type escapes.
func (tc *CoreTypeChecker) checkPattern(env *TypeEnv, pat core.Pattern, expected Type, sub Substitution, level int, binds *patternBindings) (Substitution, error) {
	switch p := pat.(type) {
	case *core.WildcardPattern:
		return sub, nil

	case *core.VarPattern:
		if err := binds.add(p.Name, sub.Apply(expected), p.Pos()); err != nil {
			return nil, err
		}
		return sub, nil

	case *core.LitPattern:
		sub, err := tc.unifier.Unify(literalType(p.Value), expected, sub)
		if err != nil {
			return nil, reportAt(err, p.Pos())
		}
		return sub, nil

	case *core.VariantPattern:
		binding, ok := env.Lookup(p.Ctor)
		if !ok {
			return nil, errCtorNotFound(p.Ctor, p.Pos())
		}
		var scheme *Scheme
		switch b := binding.(type) {
		case *ValueBinding:
			scheme = b.Scheme
		case *ExternalBinding:
			scheme = b.Scheme
		default:
			return nil, errCtorNotFound(p.Ctor, p.Pos())
		}

		inst := scheme.Instantiate(level)
		fn, isFunc := inst.(*TFunc)
		if !isFunc {
			if len(p.Args) != 0 {
				return nil, errPatternArity(p.Ctor, 0, len(p.Args), p.Pos())
			}
			sub, err := tc.unifier.Unify(inst, expected, sub)
			if err != nil {
				return nil, reportAt(err, p.Pos())
			}
			return sub, nil
		}

		if len(p.Args) != len(fn.Params) {
			return nil, errPatternArity(p.Ctor, len(fn.Params), len(p.Args), p.Pos())
		}
		// Fix the type variables through the result type first, then
		// push the refined parameter types into the sub-patterns.
		sub, err := tc.unifier.Unify(fn.Return, expected, sub)
		if err != nil {
			return nil, reportAt(err, p.Pos())
		}
		for i, arg := range p.Args {
			sub, err = tc.checkPattern(env, arg, sub.Apply(fn.Params[i]), sub, level, binds)
			if err != nil {
				return nil, err
			}
		}
		return sub, nil

	case *core.RecordPattern:
		applied := sub.Apply(expected)
		rec, ok := applied.(*TRecord)
		if !ok {
			return nil, errRecordPatternOnNonRecord(applied, p.Pos())
		}
		var err error
		for _, f := range p.Fields {
			fieldType, ok := rec.Fields[f.Name]
			if !ok {
				return nil, errFieldNotFound(f.Name, rec, f.Pos)
			}
			sub, err = tc.checkPattern(env, f.Pattern, fieldType, sub, level, binds)
			if err != nil {
				return nil, err
			}
		}
		return sub, nil

	case *core.TuplePattern:
		// Reserved for a future extension: identity on the expected type
		return sub, nil

	default:
		return nil, errUnsupportedPattern(pat.String(), pat.Pos())
	}
}

// literalType classifies a raw literal value the way the host runtime
// would: null is Unit, integral numbers are Int, the rest Float.
func literalType(v interface{}) Type {
	switch v := v.(type) {
	case nil:
		return &TCon{Name: UnitName}
	case bool:
		return &TCon{Name: BoolName}
	case string:
		return &TCon{Name: StringName}
	case int:
		return &TCon{Name: IntName}
	case int64:
		return &TCon{Name: IntName}
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return &TCon{Name: IntName}
		}
		return &TCon{Name: FloatName}
	default:
		return &TCon{Name: NeverName}
	}
}
