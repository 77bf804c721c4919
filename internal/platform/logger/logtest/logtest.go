// Package logtest captures slog output in tests.
package logtest

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// Buffer is a thread-safe buffer for capturing log output in tests.
type Buffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

// Write implements io.Writer for Buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns the buffer contents as a string.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Entries parses the buffer contents as JSON log entries, one per line.
func (b *Buffer) Entries() ([]map[string]any, error) {
	lines := strings.Split(b.String(), "\n")
	entries := make([]map[string]any, 0, len(lines))

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// New creates a debug-level JSON logger writing to a fresh Buffer.
func New(t *testing.T) (*slog.Logger, *Buffer) {
	t.Helper()

	buf := &Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, buf
}

// AssertContains fails the test if the captured logs do not contain content.
func AssertContains(t *testing.T, buf *Buffer, content string) {
	t.Helper()

	if logs := buf.String(); !strings.Contains(logs, content) {
		t.Errorf("expected log to contain %q, but it doesn't.\nLogs:\n%s", content, logs)
	}
}

// AssertNotContains fails the test if the captured logs contain content.
func AssertNotContains(t *testing.T, buf *Buffer, content string) {
	t.Helper()

	if logs := buf.String(); strings.Contains(logs, content) {
		t.Errorf("expected log not to contain %q.\nLogs:\n%s", content, logs)
	}
}
