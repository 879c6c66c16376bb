package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbcrawfo/vibefun/internal/errors"
)

// fetchEnv builds an environment with the canonical two-arity fetch
// overload group
func fetchEnv() *TypeEnv {
	T := NewBuilder()
	env := NewTypeEnvWithBuiltins()
	response := T.Con("Response")
	env.Define("fetch", &ExternalOverloadBinding{
		Overloads: []OverloadEntry{
			{Scheme: SchemeOf(T.Func(T.String()).Returns(response))},
			{Scheme: SchemeOf(T.Func(T.String(), T.Con("Opts")).Returns(response))},
		},
		JSName: "fetch",
	})
	return env
}

func TestResolveByArity(t *testing.T) {
	env := fetchEnv()

	res, err := ResolveOverload(env, "fetch", 1, tpos())
	require.NoError(t, err)
	require.NotNil(t, res.Entry)
	assert.Equal(t, 0, res.Index)
	assert.Equal(t, "fetch", res.JSName)

	res, err = ResolveOverload(env, "fetch", 2, tpos())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Index)
}

func TestResolveNoMatch(t *testing.T) {
	env := fetchEnv()
	for _, argc := range []int{0, 3} {
		_, err := ResolveOverload(env, "fetch", argc, tpos())
		requireCode(t, err, errors.OVL002)
	}
}

func TestResolveAmbiguous(t *testing.T) {
	T := NewBuilder()
	env := NewTypeEnvWithBuiltins()
	env.Define("parse", &ExternalOverloadBinding{
		Overloads: []OverloadEntry{
			{Scheme: SchemeOf(T.Func(T.String()).Returns(T.Int()))},
			{Scheme: SchemeOf(T.Func(T.Int()).Returns(T.Int()))},
		},
		JSName: "parse",
	})
	_, err := ResolveOverload(env, "parse", 1, tpos())
	requireCode(t, err, errors.OVL003)
}

func TestResolveUndefined(t *testing.T) {
	env := NewTypeEnvWithBuiltins()
	_, err := ResolveOverload(env, "missing", 1, tpos())
	requireCode(t, err, errors.OVL001)
}

func TestResolveSingleBinding(t *testing.T) {
	env := NewTypeEnvWithBuiltins()
	res, err := ResolveOverload(env, "panic", 1, tpos())
	require.NoError(t, err)
	assert.Nil(t, res.Entry)
	assert.NotNil(t, res.Binding)
}

func TestOverloadedCallInfersEntryType(t *testing.T) {
	env := fetchEnv()

	typ, err := inferWith(env, app(vr("fetch"), strLit("u")))
	require.NoError(t, err)
	assert.Equal(t, "Response", typ.String())

	_, err = inferWith(env, app(vr("fetch"), strLit("u"), strLit("not opts")))
	requireCode(t, err, errors.TC002)
}

func TestStandaloneOverloadUse(t *testing.T) {
	env := fetchEnv()
	_, err := inferWith(env, vr("fetch"))
	requireCode(t, err, errors.TC014)
}
