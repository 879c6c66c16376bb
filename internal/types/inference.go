package types

import (
	"github.com/mbcrawfo/vibefun/internal/ast"
	"github.com/mbcrawfo/vibefun/internal/core"
)

// InferCtx carries the state of one declaration's inference: the
// current environment, the growing substitution, and the let-depth.
// Environments are snapshots; the substitution is threaded forward and
// never rolled back.
type InferCtx struct {
	Env   *TypeEnv
	Sub   Substitution
	Level int
}

// unify unifies two types in the context, attaching pos to any failure
func (tc *CoreTypeChecker) unify(ctx *InferCtx, a, b Type, pos ast.Pos) error {
	sub, err := tc.unifier.Unify(a, b, ctx.Sub)
	if err != nil {
		return reportAt(err, pos)
	}
	ctx.Sub = sub
	return nil
}

// inferIn infers e under a different environment, threading the
// substitution back into ctx
func (tc *CoreTypeChecker) inferIn(env *TypeEnv, ctx *InferCtx, e core.Expr) (Type, error) {
	child := &InferCtx{Env: env, Sub: ctx.Sub, Level: ctx.Level}
	t, err := tc.inferExpr(child, e)
	ctx.Sub = child.Sub
	return t, err
}

// inferExpr infers the type of a Core expression. Every branch returns
// the substitution-applied type and leaves ctx.Sub holding every
// rewrite it produced.
func (tc *CoreTypeChecker) inferExpr(ctx *InferCtx, e core.Expr) (Type, error) {
	switch e := e.(type) {
	case *core.Lit:
		return litType(e.Kind), nil

	case *core.Var:
		binding, ok := ctx.Env.Lookup(e.Name)
		if !ok {
			return nil, errUndefined(e.Name, e.Pos())
		}
		switch b := binding.(type) {
		case *ValueBinding:
			return ctx.Sub.Apply(b.Scheme.Instantiate(ctx.Level)), nil
		case *ExternalBinding:
			return ctx.Sub.Apply(b.Scheme.Instantiate(ctx.Level)), nil
		case *ExternalOverloadBinding:
			// Only a direct call can pick an entry by arity
			return nil, errUnresolvedOverload(e.Name, e.Pos())
		default:
			return nil, errUndefined(e.Name, e.Pos())
		}

	case *core.Lambda:
		env := ctx.Env
		paramVars := make([]*TVar, len(e.Params))
		for i, p := range e.Params {
			vp, ok := p.(*core.VarPattern)
			if !ok {
				return nil, errUnsupportedPattern("lambda parameters must be variables", p.Pos())
			}
			paramVars[i] = FreshVar(ctx.Level)
			env = env.ExtendScheme(vp.Name, SchemeOf(paramVars[i]), vp.Pos())
		}
		bodyType, err := tc.inferIn(env, ctx, e.Body)
		if err != nil {
			return nil, err
		}
		params := make([]Type, len(paramVars))
		for i, v := range paramVars {
			params[i] = ctx.Sub.Apply(v)
		}
		return &TFunc{Params: params, Return: bodyType}, nil

	case *core.App:
		var fnType Type
		if v, ok := e.Func.(*core.Var); ok {
			res, err := ResolveOverload(ctx.Env, v.Name, len(e.Args), v.Pos())
			if err != nil {
				return nil, err
			}
			if res.Entry != nil {
				fnType = res.Entry.Scheme.Instantiate(ctx.Level)
			}
		}
		if fnType == nil {
			var err error
			fnType, err = tc.inferExpr(ctx, e.Func)
			if err != nil {
				return nil, err
			}
		}
		return tc.inferApply(ctx, fnType, e.Args, e.Pos())

	case *core.VariantLit:
		binding, ok := ctx.Env.Lookup(e.Ctor)
		if !ok {
			return nil, errCtorNotFound(e.Ctor, e.Pos())
		}
		var scheme *Scheme
		switch b := binding.(type) {
		case *ValueBinding:
			scheme = b.Scheme
		case *ExternalBinding:
			scheme = b.Scheme
		default:
			return nil, errCtorNotFound(e.Ctor, e.Pos())
		}
		inst := scheme.Instantiate(ctx.Level)
		if len(e.Args) == 0 {
			return ctx.Sub.Apply(inst), nil
		}
		return tc.inferApply(ctx, inst, e.Args, e.Pos())

	case *core.BinOp:
		return tc.inferBinOp(ctx, e)

	case *core.UnOp:
		return tc.inferUnOp(ctx, e)

	case *core.Annot:
		annot := convertTypeExpr(e.Type, make(typeVarScope), ctx.Level)
		actual, err := tc.inferExpr(ctx, e.Expr)
		if err != nil {
			return nil, err
		}
		if sub, err := tc.unifier.Unify(annot, actual, ctx.Sub); err != nil {
			return nil, errAnnotationMismatch(ctx.Sub.Apply(annot), ctx.Sub.Apply(actual), e.Pos())
		} else {
			ctx.Sub = sub
		}
		return ctx.Sub.Apply(annot), nil

	case *core.Let:
		valueType, err := tc.inferAt(ctx.Level+1, ctx, e.Value)
		if err != nil {
			return nil, err
		}
		valueType = ctx.Sub.Apply(valueType)

		env, _, err := tc.bindPattern(ctx, e.Pattern, e.Value, valueType, false)
		if err != nil {
			return nil, err
		}
		return tc.inferIn(env, ctx, e.Body)

	case *core.LetRec:
		env, err := tc.inferRecBindings(ctx, letRecBindings(e.Bindings))
		if err != nil {
			return nil, err
		}
		return tc.inferIn(env, ctx, e.Body)

	case *core.Match:
		return tc.inferMatch(ctx, e)

	case *core.Record:
		fields := make(map[string]Type, len(e.Fields))
		for _, f := range e.Fields {
			ft, err := tc.inferExpr(ctx, f.Value)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = ft
		}
		return ctx.Sub.Apply(&TRecord{Fields: fields}), nil

	case *core.RecordAccess:
		recType, err := tc.inferExpr(ctx, e.Record)
		if err != nil {
			return nil, err
		}
		applied := ctx.Sub.Apply(recType)
		rec, ok := applied.(*TRecord)
		if !ok {
			return nil, errFieldOnNonRecord(e.Field, applied, e.Pos())
		}
		fieldType, ok := rec.Fields[e.Field]
		if !ok {
			return nil, errFieldNotFound(e.Field, rec, e.Pos())
		}
		return ctx.Sub.Apply(fieldType), nil

	case *core.RecordUpdate:
		recType, err := tc.inferExpr(ctx, e.Record)
		if err != nil {
			return nil, err
		}
		applied := ctx.Sub.Apply(recType)
		rec, ok := applied.(*TRecord)
		if !ok {
			return nil, errFieldOnNonRecord("<update>", applied, e.Pos())
		}
		for _, f := range e.Fields {
			fieldType, ok := rec.Fields[f.Name]
			if !ok {
				return nil, errFieldNotFound(f.Name, rec, f.Pos)
			}
			valueType, err := tc.inferExpr(ctx, f.Value)
			if err != nil {
				return nil, err
			}
			if err := tc.unify(ctx, fieldType, valueType, f.Pos); err != nil {
				return nil, err
			}
		}
		return ctx.Sub.Apply(rec), nil

	case *core.Unsafe:
		bodyType, err := tc.inferExpr(ctx, e.Body)
		if err != nil {
			return nil, err
		}
		if e.Type != nil {
			// Trusted assertion: the declared type wins without
			// unifying against the body
			return convertTypeExpr(e.Type, make(typeVarScope), ctx.Level), nil
		}
		return bodyType, nil

	default:
		return nil, errInternal("unknown expression form", e.Pos())
	}
}

// inferAt infers e one let-level deeper
func (tc *CoreTypeChecker) inferAt(level int, ctx *InferCtx, e core.Expr) (Type, error) {
	child := &InferCtx{Env: ctx.Env, Sub: ctx.Sub, Level: level}
	t, err := tc.inferExpr(child, e)
	ctx.Sub = child.Sub
	return t, err
}

// inferApply types a call of fnType to args: arguments are inferred in
// sequence, then the whole application is pinned with a fresh result
// variable.
func (tc *CoreTypeChecker) inferApply(ctx *InferCtx, fnType Type, args []core.Expr, pos ast.Pos) (Type, error) {
	argTypes := make([]Type, len(args))
	for i, arg := range args {
		t, err := tc.inferExpr(ctx, arg)
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
	}
	result := FreshVar(ctx.Level)
	if err := tc.unify(ctx, ctx.Sub.Apply(fnType), &TFunc{Params: argTypes, Return: result}, pos); err != nil {
		return nil, err
	}
	return ctx.Sub.Apply(result), nil
}

// recBinding is one member of a recursive group, declaration- or
// expression-level
type recBinding struct {
	Pattern core.Pattern
	Value   core.Expr
	Pos     ast.Pos
}

func letRecBindings(bs []core.RecBinding) []recBinding {
	out := make([]recBinding, len(bs))
	for i, b := range bs {
		out[i] = recBinding{Pattern: b.Pattern, Value: b.Value, Pos: b.Pos}
	}
	return out
}

// inferRecBindings implements recursion via placeholders: every
// binding gets a fresh variable one level deeper, visible while the
// bodies are inferred, then each inferred type is unified with its
// placeholder and generalized independently.
func (tc *CoreTypeChecker) inferRecBindings(ctx *InferCtx, bindings []recBinding) (*TypeEnv, error) {
	names := make([]string, len(bindings))
	placeholders := make([]*TVar, len(bindings))
	inner := ctx.Env
	for i, b := range bindings {
		vp, ok := b.Pattern.(*core.VarPattern)
		if !ok {
			return nil, errUnsupportedPattern("recursive bindings must be variables", b.Pattern.Pos())
		}
		names[i] = vp.Name
		placeholders[i] = FreshVar(ctx.Level + 1)
		inner = inner.ExtendScheme(vp.Name, SchemeOf(placeholders[i]), vp.Pos())
	}

	innerCtx := &InferCtx{Env: inner, Sub: ctx.Sub, Level: ctx.Level + 1}
	for i, b := range bindings {
		valueType, err := tc.inferExpr(innerCtx, b.Value)
		if err != nil {
			ctx.Sub = innerCtx.Sub
			return nil, err
		}
		if sub, err := tc.unifier.Unify(placeholders[i], valueType, innerCtx.Sub); err != nil {
			ctx.Sub = innerCtx.Sub
			return nil, reportAt(err, b.Pos)
		} else {
			innerCtx.Sub = sub
		}
	}
	ctx.Sub = innerCtx.Sub

	env := ctx.Env
	for i, b := range bindings {
		finalType := ctx.Sub.Apply(placeholders[i])
		if isSyntacticValue(b.Value) {
			env = env.ExtendScheme(names[i], generalize(ctx.Level, finalType), b.Pos)
		} else {
			env = env.ExtendScheme(names[i], SchemeOf(finalType), b.Pos)
		}
	}
	return env, nil
}

// inferMatch types a match expression: every arm's pattern is checked
// against the scrutinee, guards must be Bool, all bodies unify with
// one result variable, and the arm list must be exhaustive.
func (tc *CoreTypeChecker) inferMatch(ctx *InferCtx, m *core.Match) (Type, error) {
	scrutinee, err := tc.inferExpr(ctx, m.Scrutinee)
	if err != nil {
		return nil, err
	}
	result := FreshVar(ctx.Level)

	patterns := make([]core.Pattern, len(m.Arms))
	for i, arm := range m.Arms {
		patterns[i] = arm.Pattern

		binds := newPatternBindings()
		sub, err := tc.checkPattern(ctx.Env, arm.Pattern, ctx.Sub.Apply(scrutinee), ctx.Sub, ctx.Level, binds)
		if err != nil {
			return nil, err
		}
		ctx.Sub = sub
		armEnv := binds.extend(ctx.Env, ctx.Sub, arm.Pos)

		if arm.Guard != nil {
			guardType, err := tc.inferIn(armEnv, ctx, arm.Guard)
			if err != nil {
				return nil, err
			}
			if err := tc.unify(ctx, guardType, &TCon{Name: BoolName}, arm.Guard.Pos()); err != nil {
				return nil, err
			}
		}

		bodyType, err := tc.inferIn(armEnv, ctx, arm.Body)
		if err != nil {
			return nil, err
		}
		if err := tc.unify(ctx, bodyType, result, arm.Pos); err != nil {
			return nil, err
		}
	}

	missing := checkExhaustiveness(ctx.Env, patterns, ctx.Sub.Apply(scrutinee))
	if len(missing) > 0 {
		return nil, errNonExhaustive(missing, m.Pos())
	}
	return ctx.Sub.Apply(result), nil
}

// litType maps literal kinds to their primitive types
func litType(kind core.LitKind) Type {
	switch kind {
	case core.IntLit:
		return &TCon{Name: IntName}
	case core.FloatLit:
		return &TCon{Name: FloatName}
	case core.StringLit:
		return &TCon{Name: StringName}
	case core.BoolLit:
		return &TCon{Name: BoolName}
	default:
		return &TCon{Name: UnitName}
	}
}

// isSyntacticValue implements the value restriction's classifier:
// literals, variables, lambdas, and constructors of syntactic values.
// Applications of any kind, ref creation included, are not values.
func isSyntacticValue(e core.Expr) bool {
	switch e := e.(type) {
	case *core.Lit, *core.Var, *core.Lambda:
		return true
	case *core.VariantLit:
		for _, arg := range e.Args {
			if !isSyntacticValue(arg) {
				return false
			}
		}
		return true
	case *core.Annot:
		return isSyntacticValue(e.Expr)
	default:
		return false
	}
}
