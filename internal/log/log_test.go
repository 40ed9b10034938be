package log

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordAttrs(r slog.Record) map[string]string {
	attrs := map[string]string{}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})
	return attrs
}

func TestTUIHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	ch := make(chan tea.Msg, 1)
	h := NewTUIHandler(slog.NewTextHandler(&buf, nil), ch)

	logger := slog.New(h).With("search", "abc").WithGroup("ap")
	logger.Info("access point found", "ssid", "Office")

	assert.Contains(t, buf.String(), "search=abc")
	assert.Contains(t, buf.String(), "ap.ssid=Office")

	logs := h.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "access point found", logs[0].Message)
	assert.Equal(t, "abc", recordAttrs(logs[0])["search"])

	msg := <-ch
	r, ok := msg.(LogMsg)
	require.True(t, ok)
	assert.Equal(t, "access point found", slog.Record(r).Message)
}

func TestTUIHandler_DoesNotBlock(t *testing.T) {
	// Nobody reads ch, so every send has to be dropped.
	ch := make(chan tea.Msg)
	h := NewTUIHandler(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}), ch)
	logger := slog.New(h)
	for i := 0; i < maxLogs+5; i++ {
		logger.Warn("scan failed", "pass", i)
	}

	logs := h.Logs()
	require.Len(t, logs, maxLogs)
	assert.Equal(t, "5", recordAttrs(logs[0])["pass"], "oldest records are evicted first")
	assert.Equal(t, "24", recordAttrs(logs[maxLogs-1])["pass"])
}

func TestTUIHandler_Level(t *testing.T) {
	h := NewTUIHandler(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}), nil)
	slog.New(h).Debug("ssid matched")
	assert.Empty(t, h.Logs())
}
