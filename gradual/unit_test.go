package gradual

import (
	"testing"
	"testing/fstest"

	"github.com/cottand/gradual/frontend/check"
	"github.com/cottand/gradual/frontend/ilerr"
	"github.com/cottand/gradual/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// name builds a Name node at line:col.
func name(id, line, col string) string {
	return `{"_type": "Name", "id": "` + id + `", "ctx": {"_type": "Load"}, "lineno": ` + line + `, "col_offset": ` + col + `}`
}

// def f(x: int) -> <returns>:
//     return x
func returnsParam(returns string) []byte {
	return []byte(`{"_type": "Module", "body": [{
		"_type": "FunctionDef", "lineno": 1, "col_offset": 0, "name": "f",
		"args": {"_type": "arguments", "args": [{"_type": "arg", "arg": "x", "annotation": ` + name("int", "1", "9") + `}],
		         "defaults": [], "kwonlyargs": [], "kw_defaults": []},
		"body": [{"_type": "Return", "lineno": 2, "col_offset": 4, "value": ` + name("x", "2", "11") + `}],
		"decorator_list": [],
		"returns": ` + name(returns, "1", "17") + `
	}]}`)
}

func TestLoadUnit(t *testing.T) {
	unit, err := NewUnitFromBytes(returnsParam("int"), check.Settings{})
	require.NoError(t, err)
	assert.False(t, unit.Errors().HasError(), unit.Errors())
	require.NotNil(t, unit.Module())

	f, ok := unit.Scope().Lookup("f")
	require.True(t, ok)
	assert.True(t, f.Equal(types.Function{
		From: types.Named{Bindings: []types.Binding{{Name: "x", Type: types.Int()}}},
		To:   types.Int(),
	}), f.String())
	assert.Equal(t, "f: "+f.String()+"\n", unit.DisplayScope())
}

func TestLoadUnitStaticError(t *testing.T) {
	unit, err := NewUnitFromBytes(returnsParam("str"), check.Settings{})
	require.NoError(t, err)
	require.True(t, unit.Errors().HasError())

	errs := unit.Errors().Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, ilerr.BadReturn, errs[0].Code())
	assert.Equal(t, 2, errs[0].Pos().Line)
	assert.Equal(t, 0, unit.Scope().Len())
}

func TestLoadUnitDecodeError(t *testing.T) {
	unit, err := NewUnitFromBytes([]byte(`{"_type": "Module", "body": [{"_type": "Frobnicate"}]}`), check.Settings{})
	require.NoError(t, err)
	require.True(t, unit.Errors().HasError())
	assert.Equal(t, ilerr.Decode, unit.Errors().Errors()[0].Code())
	assert.Nil(t, unit.Module())
	assert.Contains(t, unit.Errors().Error(), "test.json")
}

func TestLoadUnitMissing(t *testing.T) {
	_, err := LoadUnit(fstest.MapFS{}, "nope.json", check.Settings{})
	assert.ErrorContains(t, err, "nope.json")
}
