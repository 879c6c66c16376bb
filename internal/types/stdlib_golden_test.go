package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestStdlibGoldenSnapshot ensures builtin signatures don't change
// accidentally. The golden file is a consolidated snapshot of every
// seeded value scheme; a signature change must be mirrored there on
// purpose.
func TestStdlibGoldenSnapshot(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "stdlib_golden.yaml"))
	require.NoError(t, err)

	var golden struct {
		Values map[string]string `yaml:"values"`
	}
	require.NoError(t, yaml.Unmarshal(data, &golden))
	require.NotEmpty(t, golden.Values)

	env := NewTypeEnvWithBuiltins()

	actual := make(map[string]string)
	env.Range(func(name string, b Binding) bool {
		vb, ok := b.(*ValueBinding)
		require.True(t, ok, "builtin %s must be a value binding", name)
		actual[name] = vb.Scheme.String()
		return true
	})

	for name, want := range golden.Values {
		got, ok := actual[name]
		if assert.True(t, ok, "builtin %s is missing from the environment", name) {
			assert.Equal(t, want, got, "signature drift for %s", name)
		}
	}
	for name := range actual {
		_, ok := golden.Values[name]
		assert.True(t, ok, "builtin %s is not covered by the golden file", name)
	}
}
