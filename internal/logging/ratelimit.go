package logging

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const maxLogEveryKeys = 1024

var (
	logEveryMu   sync.Mutex
	logEveryLast = map[string]time.Time{}
)

// LogEvery emits a log entry at most once per interval for a key.
// Used on hot paths (PTY resize failures, read-loop noise) where a
// per-call log would flood the sink.
func LogEvery(ctx context.Context, key string, interval time.Duration, level slog.Level, msg string, attrs ...slog.Attr) {
	if !slog.Default().Enabled(ctx, level) {
		return
	}
	if key == "" || interval <= 0 {
		slog.LogAttrs(ctx, level, msg, attrs...)
		return
	}

	now := time.Now()
	logEveryMu.Lock()
	last, seen := logEveryLast[key]
	if seen && now.Sub(last) < interval {
		logEveryMu.Unlock()
		return
	}
	if len(logEveryLast) >= maxLogEveryKeys && !seen {
		// Cheap bound: reset rather than tracking an eviction order.
		logEveryLast = map[string]time.Time{}
	}
	logEveryLast[key] = now
	logEveryMu.Unlock()

	slog.LogAttrs(ctx, level, msg, attrs...)
}
