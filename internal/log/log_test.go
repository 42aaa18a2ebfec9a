package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(&filteringHandler{underlying: slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})})
}

func TestSectionFiltering(t *testing.T) {
	t.Cleanup(func() { EnableSections() })
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	EnableSections("infer")
	logger.With("section", "check").Debug("hidden")
	logger.Debug("no section")
	assert.Empty(t, buf.String())

	logger.With("section", "infer").Debug("shown via With")
	assert.Contains(t, buf.String(), "shown via With")

	buf.Reset()
	logger.Debug("shown via attr", "section", "infer.fixpoint")
	assert.Contains(t, buf.String(), "shown via attr")

	buf.Reset()
	logger.With("section", "check").Warn("always shown")
	assert.Contains(t, buf.String(), "always shown")
}

func TestSectionsResolvedAtHandleTime(t *testing.T) {
	t.Cleanup(func() { EnableSections() })
	var buf bytes.Buffer
	logger := newTestLogger(&buf).With("section", "mro")

	logger.Info("before")
	EnableSections("mro")
	logger.Info("after")

	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "after")
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
