package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info().Str("operation", "simple_search").Msg("started")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "simple_search", entry["operation"])
	assert.Equal(t, "started", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	ctx := WithContext(context.Background(), log)
	ctxLog := FromContext(ctx)
	ctxLog.Warn().Msg("from context")
	assert.Contains(t, buf.String(), "from context")

	// a bare context yields a disabled logger rather than panicking
	bare := FromContext(context.Background())
	bare.Error().Msg("dropped")
}

func TestFactory_WritesComponentFiles(t *testing.T) {
	dir := t.TempDir()
	f := NewFactory(Config{Level: "debug", Dir: dir})

	svcLog := f.For(ComponentService)
	svcLog.Debug().Msg("service line")
	quotesLog := f.For(ComponentQuotes)
	quotesLog.Info().Msg("quotes line")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(filepath.Join(dir, "service.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "service line")
	assert.Contains(t, string(data), `"component":"service"`)
	assert.NotContains(t, string(data), "quotes line")

	data, err = os.ReadFile(filepath.Join(dir, "quotes.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "quotes line")
}

func TestFactory_LevelFallback(t *testing.T) {
	dir := t.TempDir()
	f := NewFactory(Config{Level: "nonsense", Dir: dir})

	hiddenLog := f.For(ComponentApp)
	hiddenLog.Debug().Msg("hidden")
	shownLog := f.For(ComponentApp)
	shownLog.Info().Msg("shown")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
