package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
maxInferenceIterations: 10
logLevel: debug
logSections: [check, infer]
color: never
`), "test.yaml")
	require.NoError(t, err)
	assert.Equal(t, Config{
		MaxInferenceIterations: 10,
		LogLevel:               "debug",
		LogSections:            []string{"check", "infer"},
		Color:                  ColorNever,
	}, cfg)
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("maxInferenceIterations: 3\n"), "test.yaml")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxInferenceIterations)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ColorAuto, cfg.Color)
}

func TestParseInvalid(t *testing.T) {
	for desc, doc := range map[string]string{
		"negative cap": "maxInferenceIterations: -1",
		"bad level":    "logLevel: chatty",
		"bad color":    "color: sometimes",
		"not yaml":     "maxInferenceIterations: [",
		"wrong type":   "maxInferenceIterations: many",
	} {
		t.Run(desc, func(t *testing.T) {
			_, err := Parse([]byte(doc), "test.yaml")
			assert.ErrorContains(t, err, "test.yaml")
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("color: always\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, cfg.Color)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
