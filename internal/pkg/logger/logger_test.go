package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandlerAddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)}).With("stage", "test")

	ctx := context.WithValue(context.Background(), TraceIDKey, "job-test-1")
	l.InfoContext(ctx, "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "job-test-1", rec[TraceIDKey])
	assert.Equal(t, "test", rec["stage"])
}

func TestTeeHandlerRespectsLevels(t *testing.T) {
	var info, warn bytes.Buffer
	h := NewTeeHandler(
		log.NewJSONHandler(&info, &log.HandlerOptions{Level: log.LevelInfo}),
		log.NewJSONHandler(&warn, &log.HandlerOptions{Level: log.LevelWarn}),
	)
	l := log.New(h)

	l.Info("only info")
	l.Warn("both")

	assert.Contains(t, info.String(), "only info")
	assert.Contains(t, info.String(), "both")
	assert.NotContains(t, warn.String(), "only info")
	assert.Contains(t, warn.String(), "both")
}

func TestInitLoggerWritesFile(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() {
		_ = Close()
		log.SetDefault(prev)
	})

	path := filepath.Join(t.TempDir(), "logs", "upstat.log")
	require.NoError(t, InitLogger(path))
	log.Info("written to file")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
