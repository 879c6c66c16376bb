package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyReplacesBoundVars(t *testing.T) {
	ResetVarCounter()
	a := FreshVar(0)
	b := FreshVar(0)

	sub := Substitution{a.ID: &TCon{Name: IntName}}
	listA := &TApp{Con: &TCon{Name: "List"}, Args: []Type{a}}

	assert.True(t, sub.Apply(listA).Equals(&TApp{Con: &TCon{Name: "List"}, Args: []Type{&TCon{Name: IntName}}}))
	assert.True(t, sub.Apply(b).Equals(b), "unbound vars map to themselves")
}

func TestApplyIsTransitive(t *testing.T) {
	ResetVarCounter()
	a := FreshVar(0)
	b := FreshVar(0)

	sub := Substitution{
		a.ID: b,
		b.ID: &TCon{Name: BoolName},
	}
	assert.True(t, sub.Apply(a).Equals(&TCon{Name: BoolName}))
}

func TestApplyIdempotence(t *testing.T) {
	ResetVarCounter()
	a := FreshVar(0)
	b := FreshVar(0)

	sub := Substitution{
		a.ID: &TApp{Con: &TCon{Name: "List"}, Args: []Type{b}},
		b.ID: &TCon{Name: IntName},
	}

	tests := []Type{
		a,
		b,
		&TFunc{Params: []Type{a, b}, Return: a},
		&TRecord{Fields: map[string]Type{"x": a, "y": &TCon{Name: StringName}}},
	}
	for _, typ := range tests {
		once := sub.Apply(typ)
		twice := sub.Apply(once)
		assert.True(t, once.Equals(twice), "apply must be idempotent for %s", typ)
	}
}

func TestComposeLaw(t *testing.T) {
	ResetVarCounter()
	a := FreshVar(0)
	b := FreshVar(0)
	c := FreshVar(0)

	s1 := Substitution{a.ID: b}
	s2 := Substitution{b.ID: &TCon{Name: IntName}, c.ID: &TCon{Name: BoolName}}

	composed := Compose(s2, s1)

	tests := []Type{
		a, b, c,
		&TFunc{Params: []Type{a}, Return: c},
		&TApp{Con: &TCon{Name: "Option"}, Args: []Type{a}},
	}
	for _, typ := range tests {
		want := s2.Apply(s1.Apply(typ))
		got := composed.Apply(typ)
		assert.True(t, got.Equals(want), "compose law broken for %s: got %s want %s", typ, got, want)
	}
}

func TestComposeKeepsDisjointBindings(t *testing.T) {
	ResetVarCounter()
	a := FreshVar(0)
	b := FreshVar(0)

	s1 := Substitution{a.ID: &TCon{Name: IntName}}
	s2 := Substitution{b.ID: &TCon{Name: StringName}}

	composed := Compose(s2, s1)
	require.Len(t, composed, 2)
	assert.True(t, composed.Apply(a).Equals(&TCon{Name: IntName}))
	assert.True(t, composed.Apply(b).Equals(&TCon{Name: StringName}))
}
