package types

import (
	"github.com/mbcrawfo/vibefun/internal/ast"
	"github.com/mbcrawfo/vibefun/internal/core"
)

// Compact constructors for Core fragments used across the package's
// tests.

func tpos() ast.Pos {
	return ast.Pos{File: "test.vf", Line: 1, Column: 1}
}

func node() core.Node {
	return core.Node{NodePos: tpos()}
}

func intLit(n int) *core.Lit {
	return &core.Lit{Node: node(), Kind: core.IntLit, Value: n}
}

func strLit(s string) *core.Lit {
	return &core.Lit{Node: node(), Kind: core.StringLit, Value: s}
}

func boolLit(b bool) *core.Lit {
	return &core.Lit{Node: node(), Kind: core.BoolLit, Value: b}
}

func vr(name string) *core.Var {
	return &core.Var{Node: node(), Name: name}
}

func lam(body core.Expr, params ...string) *core.Lambda {
	ps := make([]core.Pattern, len(params))
	for i, p := range params {
		ps[i] = varPat(p)
	}
	return &core.Lambda{Node: node(), Params: ps, Body: body}
}

func app(f core.Expr, args ...core.Expr) *core.App {
	return &core.App{Node: node(), Func: f, Args: args}
}

func letIn(name string, value, body core.Expr) *core.Let {
	return &core.Let{Node: node(), Pattern: varPat(name), Value: value, Body: body}
}

func letRecIn(name string, value, body core.Expr) *core.LetRec {
	return &core.LetRec{
		Node:     node(),
		Bindings: []core.RecBinding{{Pattern: varPat(name), Value: value, Pos: tpos()}},
		Body:     body,
	}
}

func binOp(op core.BinOpKind, l, r core.Expr) *core.BinOp {
	return &core.BinOp{Node: node(), Op: op, Left: l, Right: r}
}

func unOp(op core.UnOpKind, operand core.Expr) *core.UnOp {
	return &core.UnOp{Node: node(), Op: op, Operand: operand}
}

func variant(ctor string, args ...core.Expr) *core.VariantLit {
	return &core.VariantLit{Node: node(), Ctor: ctor, Args: args}
}

func match(scrutinee core.Expr, arms ...core.MatchArm) *core.Match {
	return &core.Match{Node: node(), Scrutinee: scrutinee, Arms: arms}
}

func arm(pat core.Pattern, body core.Expr) core.MatchArm {
	return core.MatchArm{Pattern: pat, Body: body, Pos: tpos()}
}

func varPat(name string) *core.VarPattern {
	return &core.VarPattern{Node: node(), Name: name}
}

func wildPat() *core.WildcardPattern {
	return &core.WildcardPattern{Node: node()}
}

func litPat(v interface{}) *core.LitPattern {
	return &core.LitPattern{Node: node(), Value: v}
}

func variantPat(ctor string, args ...core.Pattern) *core.VariantPattern {
	return &core.VariantPattern{Node: node(), Ctor: ctor, Args: args}
}

// inferOne infers a single expression against the builtin environment
// and returns its fully substituted type
func inferOne(e core.Expr) (Type, error) {
	tc := NewCoreTypeChecker()
	env := NewTypeEnvWithBuiltins()
	ctx := &InferCtx{Env: env, Sub: make(Substitution)}
	typ, err := tc.inferExpr(ctx, e)
	if err != nil {
		return nil, err
	}
	return ctx.Sub.Apply(typ), nil
}

// inferWith is inferOne against an extended environment
func inferWith(env *TypeEnv, e core.Expr) (Type, error) {
	tc := NewCoreTypeChecker()
	ctx := &InferCtx{Env: env, Sub: make(Substitution)}
	typ, err := tc.inferExpr(ctx, e)
	if err != nil {
		return nil, err
	}
	return ctx.Sub.Apply(typ), nil
}
