package check

import (
	"testing"

	"github.com/cottand/gradual/frontend/types"
	"github.com/stretchr/testify/assert"
)

func TestEnv(t *testing.T) {
	var zero Env
	assert.Equal(t, 0, zero.Len())
	assert.Equal(t, types.Dyn{}, zero.TypeOf("x"))
	assert.Equal(t, "{}", zero.String())

	outer := EnvOf(map[string]types.Type{"x": types.Int(), "y": types.Str()})
	inner := outer.With("x", types.Float())

	assert.Equal(t, types.Int(), outer.TypeOf("x"), "With must not modify its receiver")
	assert.Equal(t, types.Float(), inner.TypeOf("x"))

	merged := outer.Merge(EnvOf(map[string]types.Type{"y": types.Bool(), "z": types.Void()}))
	assert.Equal(t, []string{"x", "y", "z"}, merged.Names())
	assert.Equal(t, types.Bool(), merged.TypeOf("y"))
	assert.Equal(t, "{x: int, y: bool, z: None}", merged.String())
	assert.Equal(t, 2, outer.Len())
}

func TestBuiltins(t *testing.T) {
	b := Builtins()
	for _, name := range []string{"print", "len", "isinstance"} {
		_, ok := b.Lookup(name)
		assert.True(t, ok, name)
	}
	_, ok := b.Lookup("frobnicate")
	assert.False(t, ok)
}
