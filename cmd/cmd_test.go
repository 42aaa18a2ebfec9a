package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// y = 1
// y = "a"
const unionModule = `{"_type": "Module", "body": [
	{"_type": "Assign", "lineno": 1, "col_offset": 0,
	 "targets": [{"_type": "Name", "id": "y", "ctx": {"_type": "Store"}}],
	 "value": {"_type": "Constant", "value": 1}},
	{"_type": "Assign", "lineno": 2, "col_offset": 0,
	 "targets": [{"_type": "Name", "id": "y", "ctx": {"_type": "Store"}}],
	 "value": {"_type": "Constant", "value": "a"}}
]}`

// x: int = 1
// del x
const deleteModule = `{"_type": "Module", "body": [
	{"_type": "AnnAssign", "lineno": 1, "col_offset": 0, "simple": 1,
	 "target": {"_type": "Name", "id": "x", "ctx": {"_type": "Store"}},
	 "annotation": {"_type": "Name", "id": "int"},
	 "value": {"_type": "Constant", "value": 1}},
	{"_type": "Delete", "lineno": 2, "col_offset": 0,
	 "targets": [{"_type": "Name", "id": "x", "ctx": {"_type": "Del"}, "lineno": 2, "col_offset": 4}]}
]}`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	_, err := c.ExecuteC()
	return out.String(), err
}

func TestCheckCmd(t *testing.T) {
	dir := writeFiles(t, map[string]string{"good.json": unionModule, "bad.json": deleteModule})
	good, bad := filepath.Join(dir, "good.json"), filepath.Join(dir, "bad.json")

	out, err := execute(t, CheckCmd, "--color", "never", good)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = execute(t, CheckCmd, "--color", "never", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 unit of 2 units failed")
	assert.Contains(t, out, bad+":2:4: (E008) Statically typed values cannot be deleted")
	assert.NotContains(t, out, good)
}

func TestScopeCmd(t *testing.T) {
	dir := writeFiles(t, map[string]string{"union.json": unionModule})

	out, err := execute(t, ScopeCmd, "--color", "never", filepath.Join(dir, "union.json"))
	require.NoError(t, err)
	assert.Equal(t, "y: Union[int, str]\n", out)
}

func TestConfigFlags(t *testing.T) {
	// y = x
	// x = 1
	// y only gets a type on the second pass
	dir := writeFiles(t, map[string]string{
		"late.json": `{"_type": "Module", "body": [
			{"_type": "Assign", "targets": [{"_type": "Name", "id": "y", "ctx": {"_type": "Store"}}],
			 "value": {"_type": "Name", "id": "x"}},
			{"_type": "Assign", "targets": [{"_type": "Name", "id": "x", "ctx": {"_type": "Store"}}],
			 "value": {"_type": "Constant", "value": 1}}]}`,
		"gradual.yaml": "maxInferenceIterations: 1\ncolor: never\n",
	})
	config, late := filepath.Join(dir, "gradual.yaml"), filepath.Join(dir, "late.json")

	out, err := execute(t, CheckCmd, "--config", config, late)
	require.Error(t, err)
	assert.Contains(t, out, "(E015)")

	out, err = execute(t, CheckCmd, "--config", config, "--max-iterations", "2", late)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = execute(t, CheckCmd, "--config", config, "--color", "sometimes", late)
	assert.ErrorContains(t, err, "color")
}
