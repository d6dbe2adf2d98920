package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func countLines(buf *bytes.Buffer) int {
	return bytes.Count(buf.Bytes(), []byte{'\n'})
}

func TestLogEverySuppressesRepeats(t *testing.T) {
	buf := captureLogs(t)
	ctx := context.Background()
	key := "test.suppress." + t.Name()

	for i := 0; i < 5; i++ {
		LogEvery(ctx, key, time.Minute, slog.LevelInfo, "noisy")
	}
	assert.Equal(t, 1, countLines(buf))
}

func TestLogEveryAllowsAfterInterval(t *testing.T) {
	buf := captureLogs(t)
	ctx := context.Background()
	key := "test.interval." + t.Name()

	LogEvery(ctx, key, 10*time.Millisecond, slog.LevelInfo, "tick")
	time.Sleep(20 * time.Millisecond)
	LogEvery(ctx, key, 10*time.Millisecond, slog.LevelInfo, "tick")
	assert.Equal(t, 2, countLines(buf))
}

func TestLogEveryDistinctKeys(t *testing.T) {
	buf := captureLogs(t)
	ctx := context.Background()

	LogEvery(ctx, "test.a."+t.Name(), time.Minute, slog.LevelInfo, "a")
	LogEvery(ctx, "test.b."+t.Name(), time.Minute, slog.LevelInfo, "b")
	assert.Equal(t, 2, countLines(buf))
}

func TestLogEveryEmptyKeyAlwaysLogs(t *testing.T) {
	buf := captureLogs(t)
	ctx := context.Background()

	LogEvery(ctx, "", time.Minute, slog.LevelInfo, "always")
	LogEvery(ctx, "", time.Minute, slog.LevelInfo, "always")
	assert.Equal(t, 2, countLines(buf))
}

func TestLogEverySkipsDisabledLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError})))

	LogEvery(context.Background(), "test.disabled."+t.Name(), time.Minute, slog.LevelDebug, "hidden")
	require.Zero(t, buf.Len())
}
