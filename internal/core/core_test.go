package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbcrawfo/vibefun/internal/ast"
)

func n() Node {
	return Node{NodePos: ast.Pos{File: "m.vf", Line: 2, Column: 5}}
}

func TestExprString(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"int", &Lit{Node: n(), Kind: IntLit, Value: 42}, "42"},
		{"string", &Lit{Node: n(), Kind: StringLit, Value: "hi"}, `"hi"`},
		{"unit", &Lit{Node: n(), Kind: UnitLit}, "()"},
		{"var", &Var{Node: n(), Name: "x"}, "x"},
		{
			"app",
			&App{Node: n(), Func: &Var{Node: n(), Name: "f"}, Args: []Expr{&Lit{Node: n(), Kind: IntLit, Value: 1}}},
			"f(1)",
		},
		{
			"binop",
			&BinOp{Node: n(), Op: OpAdd, Left: &Var{Node: n(), Name: "a"}, Right: &Var{Node: n(), Name: "b"}},
			"(a + b)",
		},
		{
			"deref",
			&UnOp{Node: n(), Op: OpDeref, Operand: &Var{Node: n(), Name: "r"}},
			"!r",
		},
		{
			"let",
			&Let{Node: n(), Pattern: &VarPattern{Node: n(), Name: "x"}, Value: &Lit{Node: n(), Kind: IntLit, Value: 1}, Body: &Var{Node: n(), Name: "x"}},
			"let x = 1 in x",
		},
		{
			"variant",
			&VariantLit{Node: n(), Ctor: "Some", Args: []Expr{&Lit{Node: n(), Kind: IntLit, Value: 3}}},
			"Some(3)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.String())
		})
	}
}

func TestPatternString(t *testing.T) {
	pat := &VariantPattern{Node: n(), Ctor: "Cons", Args: []Pattern{
		&VarPattern{Node: n(), Name: "h"},
		&WildcardPattern{Node: n()},
	}}
	assert.Equal(t, "Cons(h, _)", pat.String())

	rec := &RecordPattern{Node: n(), Fields: []PatternField{
		{Name: "x", Pattern: &LitPattern{Node: n(), Value: 1}},
	}}
	assert.Equal(t, "{x: 1}", rec.String())
}

func TestOperatorNames(t *testing.T) {
	assert.Equal(t, "+", OpAdd.String())
	assert.Equal(t, ":=", OpAssign.String())
	assert.Equal(t, "!", OpDeref.String())
	assert.Equal(t, "<?>", BinOpKind(999).String())
}

func TestNodePos(t *testing.T) {
	v := &Var{Node: n(), Name: "x"}
	assert.Equal(t, "m.vf:2:5", v.Pos().String())
}
