package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbcrawfo/vibefun/internal/ast"
)

func TestReportError(t *testing.T) {
	r := New(TC002, PhaseTypecheck, "cannot unify Int with Bool").
		At(ast.Pos{File: "m.vf", Line: 3, Column: 7})
	err := WrapReport(r)

	assert.Equal(t, "m.vf:3:7: TC002: cannot unify Int with Bool", err.Error())
}

func TestAsReportSurvivesWrapping(t *testing.T) {
	r := New(TC001, PhaseTypecheck, "undefined name: x")
	err := fmt.Errorf("checking failed: %w", WrapReport(r))

	got, ok := AsReport(err)
	require.True(t, ok)
	assert.Same(t, r, got)
}

func TestAsReportOnPlainError(t *testing.T) {
	_, ok := AsReport(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestAtIgnoresZeroPos(t *testing.T) {
	r := New(TC001, PhaseTypecheck, "msg").At(ast.Pos{})
	assert.Nil(t, r.Pos)
}

func TestWith(t *testing.T) {
	r := New(TC005, PhaseTypecheck, "non-exhaustive").With("missing", []string{"None"})
	assert.Equal(t, []string{"None"}, r.Data["missing"])
}

func TestToJSONDeterministic(t *testing.T) {
	r := New(TC002, PhaseTypecheck, "boom").
		At(ast.Pos{File: "m.vf", Line: 1, Column: 2}).
		With("left", "Int").
		With("right", "Bool")

	first, err := r.ToJSON(true)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := r.ToJSON(true)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Contains(t, first, `"schema":"vibefun.error/v1"`)
	assert.Contains(t, first, `"code":"TC002"`)
}

func TestEncodeAll(t *testing.T) {
	out, err := EncodeAll(nil, true)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	out, err = EncodeAll([]*Report{New(TC001, PhaseTypecheck, "a"), New(TC002, PhaseTypecheck, "b")}, true)
	require.NoError(t, err)
	assert.Contains(t, out, "TC001")
	assert.Contains(t, out, "TC002")
}
