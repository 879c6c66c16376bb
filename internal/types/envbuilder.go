package types

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/mbcrawfo/vibefun/internal/core"
	"github.com/mbcrawfo/vibefun/internal/errors"
)

// EnvBuilder seeds the global type environment: builtin types, the
// standard library schemes, and the module's own type and external
// declarations.
type EnvBuilder struct {
	reports []*errors.Report
}

// NewEnvBuilder creates a new environment builder
func NewEnvBuilder() *EnvBuilder {
	return &EnvBuilder{}
}

// Build returns a seeded environment for the module plus any
// diagnostics produced while ingesting its declarations.
func (eb *EnvBuilder) Build(mod *core.Module) (*TypeEnv, []*errors.Report) {
	env := NewTypeEnvWithBuiltins()
	eb.ingestTypeDecls(env, mod)
	eb.ingestExternals(env, mod)
	return env, eb.reports
}

// NewTypeEnvWithBuiltins creates the environment every module starts
// from: List, Option, Result, Ref, their constructors, and the stdlib.
func NewTypeEnvWithBuiltins() *TypeEnv {
	env := NewTypeEnv()
	T := NewBuilder()

	for name, arity := range map[string]int{
		IntName: 0, FloatName: 0, StringName: 0, BoolName: 0,
		UnitName: 0, NeverName: 0,
		"List": 1, "Option": 1, "Result": 2, RefName: 1,
	} {
		env.DefineType(&TypeDef{Name: name, Arity: arity})
	}

	bind := func(name string, s *Scheme) {
		env.Define(name, &ValueBinding{Scheme: s})
	}

	// Constructors
	{
		a := T.Fresh()
		bind("Cons", T.Scheme(T.Func(a, T.List(a)).Returns(T.List(a)), a))
	}
	{
		a := T.Fresh()
		bind("Nil", T.Scheme(T.List(a), a))
	}
	{
		a := T.Fresh()
		bind("Some", T.Scheme(T.Func(a).Returns(T.Option(a)), a))
	}
	{
		a := T.Fresh()
		bind("None", T.Scheme(T.Option(a), a))
	}
	{
		a, e := T.Fresh(), T.Fresh()
		bind("Ok", T.Scheme(T.Func(a).Returns(T.Result(a, e)), a, e))
	}
	{
		a, e := T.Fresh(), T.Fresh()
		bind("Err", T.Scheme(T.Func(e).Returns(T.Result(a, e)), a, e))
	}

	// List
	{
		a, b := T.Fresh(), T.Fresh()
		bind("List.map", T.Scheme(T.Func(T.Func(a).Returns(b), T.List(a)).Returns(T.List(b)), a, b))
	}
	{
		a := T.Fresh()
		bind("List.filter", T.Scheme(T.Func(T.Func(a).Returns(T.Bool()), T.List(a)).Returns(T.List(a)), a))
	}
	{
		a, b := T.Fresh(), T.Fresh()
		bind("List.foldLeft", T.Scheme(T.Func(T.Func(b, a).Returns(b), b, T.List(a)).Returns(b), a, b))
	}
	{
		a, b := T.Fresh(), T.Fresh()
		bind("List.foldRight", T.Scheme(T.Func(T.Func(a, b).Returns(b), T.List(a), b).Returns(b), a, b))
	}
	{
		a := T.Fresh()
		bind("List.length", T.Scheme(T.Func(T.List(a)).Returns(T.Int()), a))
	}
	{
		a := T.Fresh()
		bind("List.head", T.Scheme(T.Func(T.List(a)).Returns(T.Option(a)), a))
	}
	{
		a := T.Fresh()
		bind("List.tail", T.Scheme(T.Func(T.List(a)).Returns(T.Option(T.List(a))), a))
	}
	{
		a := T.Fresh()
		bind("List.reverse", T.Scheme(T.Func(T.List(a)).Returns(T.List(a)), a))
	}
	{
		a := T.Fresh()
		bind("List.append", T.Scheme(T.Func(T.List(a), T.List(a)).Returns(T.List(a)), a))
	}
	{
		a := T.Fresh()
		bind("List.concat", T.Scheme(T.Func(T.List(T.List(a))).Returns(T.List(a)), a))
	}
	{
		a := T.Fresh()
		bind("List.isEmpty", T.Scheme(T.Func(T.List(a)).Returns(T.Bool()), a))
	}
	bind("List.range", SchemeOf(T.Func(T.Int(), T.Int()).Returns(T.List(T.Int()))))

	// Option
	{
		a, b := T.Fresh(), T.Fresh()
		bind("Option.map", T.Scheme(T.Func(T.Func(a).Returns(b), T.Option(a)).Returns(T.Option(b)), a, b))
	}
	{
		a, b := T.Fresh(), T.Fresh()
		bind("Option.flatMap", T.Scheme(T.Func(T.Func(a).Returns(T.Option(b)), T.Option(a)).Returns(T.Option(b)), a, b))
	}
	{
		a := T.Fresh()
		bind("Option.getOrElse", T.Scheme(T.Func(T.Option(a), a).Returns(a), a))
	}
	{
		a := T.Fresh()
		bind("Option.isSome", T.Scheme(T.Func(T.Option(a)).Returns(T.Bool()), a))
	}
	{
		a := T.Fresh()
		bind("Option.isNone", T.Scheme(T.Func(T.Option(a)).Returns(T.Bool()), a))
	}
	{
		a := T.Fresh()
		bind("Option.filter", T.Scheme(T.Func(T.Func(a).Returns(T.Bool()), T.Option(a)).Returns(T.Option(a)), a))
	}

	// Result
	{
		a, b, e := T.Fresh(), T.Fresh(), T.Fresh()
		bind("Result.map", T.Scheme(T.Func(T.Func(a).Returns(b), T.Result(a, e)).Returns(T.Result(b, e)), a, b, e))
	}
	{
		a, e, f := T.Fresh(), T.Fresh(), T.Fresh()
		bind("Result.mapError", T.Scheme(T.Func(T.Func(e).Returns(f), T.Result(a, e)).Returns(T.Result(a, f)), a, e, f))
	}
	{
		a, b, e := T.Fresh(), T.Fresh(), T.Fresh()
		bind("Result.flatMap", T.Scheme(T.Func(T.Func(a).Returns(T.Result(b, e)), T.Result(a, e)).Returns(T.Result(b, e)), a, b, e))
	}
	{
		a, e := T.Fresh(), T.Fresh()
		bind("Result.getOrElse", T.Scheme(T.Func(T.Result(a, e), a).Returns(a), a, e))
	}
	{
		a, e := T.Fresh(), T.Fresh()
		bind("Result.isOk", T.Scheme(T.Func(T.Result(a, e)).Returns(T.Bool()), a, e))
	}
	{
		a, e := T.Fresh(), T.Fresh()
		bind("Result.isError", T.Scheme(T.Func(T.Result(a, e)).Returns(T.Bool()), a, e))
	}

	// String
	bind("String.length", SchemeOf(T.Func(T.String()).Returns(T.Int())))
	bind("String.concat", SchemeOf(T.Func(T.String(), T.String()).Returns(T.String())))
	bind("String.slice", SchemeOf(T.Func(T.String(), T.Int(), T.Int()).Returns(T.String())))
	bind("String.split", SchemeOf(T.Func(T.String(), T.String()).Returns(T.List(T.String()))))
	bind("String.trim", SchemeOf(T.Func(T.String()).Returns(T.String())))
	bind("String.toUpper", SchemeOf(T.Func(T.String()).Returns(T.String())))
	bind("String.toLower", SchemeOf(T.Func(T.String()).Returns(T.String())))
	bind("String.contains", SchemeOf(T.Func(T.String(), T.String()).Returns(T.Bool())))
	bind("String.indexOf", SchemeOf(T.Func(T.String(), T.String()).Returns(T.Option(T.Int()))))
	bind("String.replace", SchemeOf(T.Func(T.String(), T.String(), T.String()).Returns(T.String())))
	bind("String.fromInt", SchemeOf(T.Func(T.Int()).Returns(T.String())))
	bind("String.fromFloat", SchemeOf(T.Func(T.Float()).Returns(T.String())))

	// Int
	bind("Int.toFloat", SchemeOf(T.Func(T.Int()).Returns(T.Float())))
	bind("Int.toString", SchemeOf(T.Func(T.Int()).Returns(T.String())))
	bind("Int.parse", SchemeOf(T.Func(T.String()).Returns(T.Option(T.Int()))))
	bind("Int.abs", SchemeOf(T.Func(T.Int()).Returns(T.Int())))
	bind("Int.min", SchemeOf(T.Func(T.Int(), T.Int()).Returns(T.Int())))
	bind("Int.max", SchemeOf(T.Func(T.Int(), T.Int()).Returns(T.Int())))

	// Float
	bind("Float.toInt", SchemeOf(T.Func(T.Float()).Returns(T.Int())))
	bind("Float.toString", SchemeOf(T.Func(T.Float()).Returns(T.String())))
	bind("Float.parse", SchemeOf(T.Func(T.String()).Returns(T.Option(T.Float()))))
	bind("Float.round", SchemeOf(T.Func(T.Float()).Returns(T.Int())))

	bind("panic", SchemeOf(T.Func(T.String()).Returns(T.Never())))
	{
		a := T.Fresh()
		bind("ref", T.Scheme(T.Func(a).Returns(T.Ref(a)), a))
	}

	return env
}

// ingestTypeDecls registers user type declarations: the type def, and
// for variant bodies, one value scheme per constructor. User
// declarations override builtins, last write wins.
func (eb *EnvBuilder) ingestTypeDecls(env *TypeEnv, mod *core.Module) {
	for _, decl := range mod.Decls {
		switch d := decl.(type) {
		case *core.TypeDecl:
			name := internName(d.TypeName)
			env.DefineType(&TypeDef{Name: name, Arity: len(d.Params), Pos: d.Pos()})

			variant, ok := d.Body.(*core.VariantType)
			if !ok {
				continue
			}

			scope := make(typeVarScope, len(d.Params))
			paramVars := make([]*TVar, len(d.Params))
			for i, p := range d.Params {
				v := FreshVar(0)
				scope[p] = v
				paramVars[i] = v
			}

			var result Type = &TCon{Name: name}
			if len(paramVars) > 0 {
				args := make([]Type, len(paramVars))
				for i, v := range paramVars {
					args[i] = v
				}
				result = &TApp{Con: &TCon{Name: name}, Args: args}
			}

			for _, ctor := range variant.Ctors {
				ctorName := internName(ctor.Name)
				var body Type = result
				if len(ctor.Args) > 0 {
					params := make([]Type, len(ctor.Args))
					for i, a := range ctor.Args {
						params[i] = convertTypeExpr(a, scope, 0)
					}
					body = &TFunc{Params: params, Return: result}
				}
				var ids []int
				for _, v := range paramVars {
					ids = append(ids, v.ID)
				}
				env.Define(ctorName, &ValueBinding{
					Scheme: &Scheme{Vars: ids, Type: body},
					Pos:    ctor.Pos,
				})
			}

		case *core.ExternalTypeDecl:
			env.DefineType(&TypeDef{Name: internName(d.TypeName), Arity: 0, Pos: d.Pos()})
		}
	}
}

// ingestExternals walks external declarations in order, merging
// same-named groups into overload bindings.
func (eb *EnvBuilder) ingestExternals(env *TypeEnv, mod *core.Module) {
	groups := make(map[string][]*core.ExternalDecl)
	var order []string
	for _, decl := range mod.Decls {
		d, ok := decl.(*core.ExternalDecl)
		if !ok {
			continue
		}
		name := internName(d.ExtName)
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], d)
	}

	for _, name := range order {
		decls := groups[name]
		if len(decls) == 1 {
			d := decls[0]
			env.Define(name, &ExternalBinding{
				Scheme: convertScheme(d.Type),
				JSName: d.JSName,
				From:   d.From,
				Pos:    d.Pos(),
			})
			continue
		}
		eb.ingestOverloadGroup(env, name, decls)
	}
}

// ingestOverloadGroup validates a group of two or more externals
// sharing one name: identical jsName, identical import source, and
// every entry a function type.
func (eb *EnvBuilder) ingestOverloadGroup(env *TypeEnv, name string, decls []*core.ExternalDecl) {
	first := decls[0]
	var entries []OverloadEntry

	for _, d := range decls {
		if d.JSName != first.JSName {
			eb.report(errors.New(errors.ENV001, errors.PhaseEnv,
				fmt.Sprintf("overload group %s has inconsistent jsName: %q vs %q", name, first.JSName, d.JSName)).
				At(d.Pos()).With("name", name))
			continue
		}
		if d.From != first.From {
			eb.report(errors.New(errors.ENV002, errors.PhaseEnv,
				fmt.Sprintf("overload group %s has inconsistent import source: %q vs %q", name, first.From, d.From)).
				At(d.Pos()).With("name", name))
			continue
		}
		scheme := convertScheme(d.Type)
		if _, ok := scheme.Type.(*TFunc); !ok {
			eb.report(errors.New(errors.ENV003, errors.PhaseEnv,
				fmt.Sprintf("overload group %s entry is not a function: %s", name, scheme.Type)).
				At(d.Pos()).With("name", name).With("type", scheme.Type.String()))
			continue
		}
		entries = append(entries, OverloadEntry{Scheme: scheme, Pos: d.Pos()})
	}

	switch len(entries) {
	case 0:
		// Every entry was rejected; leave the name unbound
	case 1:
		env.Define(name, &ExternalBinding{
			Scheme: entries[0].Scheme,
			JSName: first.JSName,
			From:   first.From,
			Pos:    entries[0].Pos,
		})
	default:
		env.Define(name, &ExternalOverloadBinding{
			Overloads: entries,
			JSName:    first.JSName,
			From:      first.From,
			Pos:       first.Pos(),
		})
	}
}

func (eb *EnvBuilder) report(r *errors.Report) {
	eb.reports = append(eb.reports, r)
}

// internName NFC-normalizes a user-supplied identifier before it is
// interned in the environment, matching the lexer's convention for
// source identifiers.
func internName(name string) string {
	return norm.NFC.String(name)
}
