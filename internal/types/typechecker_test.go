package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbcrawfo/vibefun/internal/core"
	"github.com/mbcrawfo/vibefun/internal/errors"
)

func letDecl(name string, value core.Expr) *core.LetDecl {
	return &core.LetDecl{Node: node(), Pattern: varPat(name), Value: value}
}

func mkMod(decls ...core.Decl) *core.Module {
	return &core.Module{Name: "main", Decls: decls}
}

// declTypeStrings projects DeclarationTypes for comparison
func declTypeStrings(tm *TypedModule) map[string]string {
	out := make(map[string]string, len(tm.DeclarationTypes))
	for name, t := range tm.DeclarationTypes {
		out[name] = t.String()
	}
	return out
}

func TestCheckSimpleDecl(t *testing.T) {
	tc := NewCoreTypeChecker()
	typed, err := tc.CheckModule(mkMod(letDecl("x", intLit(42))))
	require.NoError(t, err)

	if diff := cmp.Diff(map[string]string{"x": "Int"}, declTypeStrings(typed)); diff != "" {
		t.Errorf("declaration types mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckGeneralizesTopLevelValue(t *testing.T) {
	tc := NewCoreTypeChecker()
	typed, err := tc.CheckModule(mkMod(letDecl("id", lam(vr("x"), "x"))))
	require.NoError(t, err)

	b, ok := typed.Env.Lookup("id")
	require.True(t, ok)
	scheme := b.(*ValueBinding).Scheme
	require.Len(t, scheme.Vars, 1)
	assert.Equal(t, "∀a. a -> a", scheme.String())
}

func TestCheckValueRestriction(t *testing.T) {
	// let r = ref(Nil): the application never generalizes, so the cell
	// type stays monomorphic
	tc := NewCoreTypeChecker()
	typed, err := tc.CheckModule(mkMod(letDecl("r", app(vr("ref"), variant("Nil")))))
	require.NoError(t, err)

	b, ok := typed.Env.Lookup("r")
	require.True(t, ok)
	assert.True(t, b.(*ValueBinding).Scheme.IsMonomorphic())
}

func TestCheckMutableNeverGeneralizes(t *testing.T) {
	tc := NewCoreTypeChecker()
	mod := mkMod(&core.LetDecl{Node: node(), Pattern: varPat("f"), Value: lam(vr("x"), "x"), Mutable: true})
	typed, err := tc.CheckModule(mod)
	require.NoError(t, err)

	b, ok := typed.Env.Lookup("f")
	require.True(t, ok)
	assert.True(t, b.(*ValueBinding).Scheme.IsMonomorphic())
}

func TestEnvThreadsForward(t *testing.T) {
	tc := NewCoreTypeChecker()
	typed, err := tc.CheckModule(mkMod(
		letDecl("one", intLit(1)),
		letDecl("two", binOp(core.OpAdd, vr("one"), intLit(1))),
	))
	require.NoError(t, err)

	if diff := cmp.Diff(map[string]string{"one": "Int", "two": "Int"}, declTypeStrings(typed)); diff != "" {
		t.Errorf("declaration types mismatch (-want +got):\n%s", diff)
	}
}

func TestContinueOnDeclarationBoundary(t *testing.T) {
	tc := NewCoreTypeChecker()
	typed, err := tc.CheckModule(mkMod(
		letDecl("bad", binOp(core.OpAdd, intLit(1), boolLit(true))),
		letDecl("good", intLit(7)),
	))
	require.Error(t, err)

	require.Len(t, tc.Reports(), 1)
	assert.Equal(t, errors.TC002, tc.Reports()[0].Code)

	// The failing declaration is abandoned; the next one still checks
	assert.NotContains(t, typed.DeclarationTypes, "bad")
	assert.Equal(t, "Int", typed.DeclarationTypes["good"].String())
}

func TestRecursiveDecl(t *testing.T) {
	// let rec count = λn. match n < 1 { true -> 0 | _ -> count(n - 1) }
	body := match(binOp(core.OpLt, vr("n"), intLit(1)),
		arm(litPat(true), intLit(0)),
		arm(wildPat(), app(vr("count"), binOp(core.OpSub, vr("n"), intLit(1)))),
	)
	mod := mkMod(&core.LetDecl{
		Node:      node(),
		Pattern:   varPat("count"),
		Value:     lam(body, "n"),
		Recursive: true,
	})

	tc := NewCoreTypeChecker()
	typed, err := tc.CheckModule(mod)
	require.NoError(t, err)
	assert.Equal(t, "Int -> Int", typed.DeclarationTypes["count"].String())
}

func TestLetRecGroupMutualRecursion(t *testing.T) {
	// let rec isEven = λn. match n { 0 -> true | _ -> isOdd(n - 1) }
	// and isOdd = λn. match n { 0 -> false | _ -> isEven(n - 1) }
	evenBody := match(vr("n"),
		arm(litPat(0), boolLit(true)),
		arm(wildPat(), app(vr("isOdd"), binOp(core.OpSub, vr("n"), intLit(1)))),
	)
	oddBody := match(vr("n"),
		arm(litPat(0), boolLit(false)),
		arm(wildPat(), app(vr("isEven"), binOp(core.OpSub, vr("n"), intLit(1)))),
	)
	mod := mkMod(&core.LetRecGroup{Node: node(), Bindings: []core.RecDeclBinding{
		{Pattern: varPat("isEven"), Value: lam(evenBody, "n"), Pos: tpos()},
		{Pattern: varPat("isOdd"), Value: lam(oddBody, "n"), Pos: tpos()},
	}})

	tc := NewCoreTypeChecker()
	typed, err := tc.CheckModule(mod)
	require.NoError(t, err)

	want := map[string]string{"isEven": "Int -> Bool", "isOdd": "Int -> Bool"}
	if diff := cmp.Diff(want, declTypeStrings(typed)); diff != "" {
		t.Errorf("declaration types mismatch (-want +got):\n%s", diff)
	}
}

func TestExternalDeclRecorded(t *testing.T) {
	tc := NewCoreTypeChecker()
	typed, err := tc.CheckModule(mkMod(
		external("now", funcTE(constTE("Int"), constTE("Unit")), "Date.now", ""),
		letDecl("t0", app(vr("now"), &core.Lit{Node: node(), Kind: core.UnitLit})),
	))
	require.NoError(t, err)

	assert.Equal(t, "Unit -> Int", typed.DeclarationTypes["now"].String())
	assert.Equal(t, "Int", typed.DeclarationTypes["t0"].String())
}

func TestDiagnosticSink(t *testing.T) {
	var seen []string
	tc := NewCoreTypeChecker(WithDiagnosticSink(func(r *errors.Report) {
		seen = append(seen, r.Code)
	}))
	_, err := tc.CheckModule(mkMod(letDecl("bad", vr("missing"))))
	require.Error(t, err)
	assert.Equal(t, []string{errors.TC001}, seen)
}

func TestNoBoundVarsInDeclarationTypes(t *testing.T) {
	tc := NewCoreTypeChecker()
	typed, err := tc.CheckModule(mkMod(
		letDecl("xs", app(vr("List.map"), lam(binOp(core.OpAdd, vr("x"), intLit(1)), "x"), variant("Nil"))),
	))
	require.NoError(t, err)
	assert.Equal(t, "List<Int>", typed.DeclarationTypes["xs"].String())
}

func TestPatternDeclBindsAllNames(t *testing.T) {
	// let {x: a, y: b} = {x: 1, y: "s"}
	rec := &core.Record{Node: node(), Fields: []core.RecordField{
		{Name: "x", Value: intLit(1), Pos: tpos()},
		{Name: "y", Value: strLit("s"), Pos: tpos()},
	}}
	pat := &core.RecordPattern{Node: node(), Fields: []core.PatternField{
		{Name: "x", Pattern: varPat("a"), Pos: tpos()},
		{Name: "y", Pattern: varPat("b"), Pos: tpos()},
	}}
	mod := mkMod(&core.LetDecl{Node: node(), Pattern: pat, Value: rec})

	tc := NewCoreTypeChecker()
	typed, err := tc.CheckModule(mod)
	require.NoError(t, err)

	want := map[string]string{"a": "Int", "b": "String"}
	if diff := cmp.Diff(want, declTypeStrings(typed)); diff != "" {
		t.Errorf("declaration types mismatch (-want +got):\n%s", diff)
	}
}
