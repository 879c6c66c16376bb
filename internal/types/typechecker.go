package types

import (
	stderrors "errors"

	"github.com/mbcrawfo/vibefun/internal/core"
	"github.com/mbcrawfo/vibefun/internal/errors"
)

// CoreTypeChecker type checks a Core module. Diagnostics accumulate
// across declarations: a failure is fatal for its declaration only,
// and checking continues at the next declaration boundary.
type CoreTypeChecker struct {
	unifier *Unifier
	reports []*errors.Report
	sink    func(*errors.Report)
}

// Option configures a CoreTypeChecker
type Option func(*CoreTypeChecker)

// WithDiagnosticSink registers a callback invoked for every diagnostic
// as it is produced, before checking continues
func WithDiagnosticSink(sink func(*errors.Report)) Option {
	return func(tc *CoreTypeChecker) {
		tc.sink = sink
	}
}

// NewCoreTypeChecker creates a new checker
func NewCoreTypeChecker(opts ...Option) *CoreTypeChecker {
	tc := &CoreTypeChecker{unifier: NewUnifier()}
	for _, opt := range opts {
		opt(tc)
	}
	return tc
}

// TypedModule is the checker's output: the module (operator tags may
// have been rewritten in place), the final environment, and the fully
// substituted type of every top-level name.
type TypedModule struct {
	Module           *core.Module
	Env              *TypeEnv
	DeclarationTypes map[string]Type
}

// Reports returns every diagnostic produced so far, in order
func (tc *CoreTypeChecker) Reports() []*errors.Report {
	return tc.reports
}

// CheckModule walks the module's declarations in order, threading the
// environment forward so later declarations see earlier binders. The
// returned error joins every diagnostic; the TypedModule is returned
// either way with whatever checked successfully.
func (tc *CoreTypeChecker) CheckModule(mod *core.Module) (*TypedModule, error) {
	env, envReports := NewEnvBuilder().Build(mod)
	for _, r := range envReports {
		tc.report(r)
	}

	declTypes := make(map[string]Type)

	for _, decl := range mod.Decls {
		switch d := decl.(type) {
		case *core.LetDecl:
			next, err := tc.checkLetDecl(env, d, declTypes)
			if err != nil {
				tc.reportErr(err)
				continue
			}
			env = next

		case *core.LetRecGroup:
			bindings := make([]recBinding, len(d.Bindings))
			for i, b := range d.Bindings {
				bindings[i] = recBinding{Pattern: b.Pattern, Value: b.Value, Pos: b.Pos}
			}
			ctx := &InferCtx{Env: env, Sub: make(Substitution)}
			next, declared, err := tc.inferRecGroup(ctx, bindings)
			if err != nil {
				tc.reportErr(err)
				continue
			}
			for name, t := range declared {
				declTypes[name] = t
			}
			env = next

		case *core.ExternalDecl:
			// Registered by the environment builder; record its type
			name := internName(d.ExtName)
			if b, ok := env.Lookup(name); ok {
				if ext, ok := b.(*ExternalBinding); ok {
					declTypes[name] = ext.Scheme.Type
				}
			}

		case *core.TypeDecl, *core.ExternalTypeDecl, *core.ImportDecl:
			// Handled by the environment builder, or trusted

		default:
		}
	}

	typed := &TypedModule{Module: mod, Env: env, DeclarationTypes: declTypes}
	if len(tc.reports) > 0 {
		errs := make([]error, len(tc.reports))
		for i, r := range tc.reports {
			errs[i] = errors.WrapReport(r)
		}
		return typed, stderrors.Join(errs...)
	}
	return typed, nil
}

// checkLetDecl checks one top-level let declaration and returns the
// extended environment
func (tc *CoreTypeChecker) checkLetDecl(env *TypeEnv, d *core.LetDecl, declTypes map[string]Type) (*TypeEnv, error) {
	ctx := &InferCtx{Env: env, Sub: make(Substitution)}

	if d.Recursive {
		next, declared, err := tc.inferRecGroup(ctx, []recBinding{{Pattern: d.Pattern, Value: d.Value, Pos: d.Pos()}})
		if err != nil {
			return nil, err
		}
		for name, t := range declared {
			declTypes[name] = t
		}
		return next, nil
	}

	valueType, err := tc.inferAt(ctx.Level+1, ctx, d.Value)
	if err != nil {
		return nil, err
	}
	valueType = ctx.Sub.Apply(valueType)

	next, declared, err := tc.bindPattern(ctx, d.Pattern, d.Value, valueType, d.Mutable)
	if err != nil {
		return nil, err
	}
	for name, t := range declared {
		declTypes[name] = ctx.Sub.Apply(t)
	}
	return next, nil
}

// bindPattern extends the environment for a checked let binding and
// reports the names it introduced with their final types
func (tc *CoreTypeChecker) bindPattern(ctx *InferCtx, pat core.Pattern, value core.Expr, valueType Type, mutable bool) (*TypeEnv, map[string]Type, error) {
	if vp, ok := pat.(*core.VarPattern); ok && !mutable && isSyntacticValue(value) {
		scheme := generalize(ctx.Level, valueType)
		env := ctx.Env.ExtendScheme(vp.Name, scheme, vp.Pos())
		return env, map[string]Type{vp.Name: valueType}, nil
	}

	binds := newPatternBindings()
	sub, err := tc.checkPattern(ctx.Env, pat, valueType, ctx.Sub, ctx.Level, binds)
	if err != nil {
		return nil, nil, err
	}
	ctx.Sub = sub

	declared := make(map[string]Type, len(binds.names))
	for _, name := range binds.names {
		declared[name] = ctx.Sub.Apply(binds.types[name])
	}
	return binds.extend(ctx.Env, ctx.Sub, pat.Pos()), declared, nil
}

// inferRecGroup runs the placeholder technique for a recursive group
// and reports the introduced names with their final types
func (tc *CoreTypeChecker) inferRecGroup(ctx *InferCtx, bindings []recBinding) (*TypeEnv, map[string]Type, error) {
	env, err := tc.inferRecBindings(ctx, bindings)
	if err != nil {
		return nil, nil, err
	}
	declared := make(map[string]Type, len(bindings))
	for _, b := range bindings {
		vp := b.Pattern.(*core.VarPattern)
		if binding, ok := env.Lookup(vp.Name); ok {
			if vb, ok := binding.(*ValueBinding); ok {
				declared[vp.Name] = vb.Scheme.Type
			}
		}
	}
	return env, declared, nil
}

func (tc *CoreTypeChecker) report(r *errors.Report) {
	tc.reports = append(tc.reports, r)
	if tc.sink != nil {
		tc.sink(r)
	}
}

// reportErr records the report carried by err; a non-report error is
// an internal invariant violation and is converted to a generic report
// so it still surfaces.
func (tc *CoreTypeChecker) reportErr(err error) {
	if rep, ok := errors.AsReport(err); ok {
		tc.report(rep)
		return
	}
	tc.report(errors.New("INTERNAL", errors.PhaseTypecheck, err.Error()))
}
