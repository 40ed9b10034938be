package log

import (
	"context"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// maxLogs is how many records are kept for display.
const maxLogs = 20

// LogMsg is a tea.Msg that represents a log message.
type LogMsg slog.Record

// sink is shared by a handler and every handler derived from it with
// WithAttrs or WithGroup.
type sink struct {
	mu   sync.Mutex
	ch   chan<- tea.Msg
	logs []slog.Record
}

func (s *sink) add(r slog.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = append(s.logs, r)
	if len(s.logs) > maxLogs {
		s.logs = s.logs[1:]
	}

	if s.ch == nil {
		return
	}
	// Drop the message rather than block logging on a busy UI.
	select {
	case s.ch <- LogMsg(r):
	default:
	}
}

// TUIHandler is a slog.Handler that keeps recent records and forwards them to
// a tea.Program, in addition to passing them on to another handler.
type TUIHandler struct {
	next   slog.Handler
	sink   *sink
	prefix string
	attrs  []slog.Attr
}

// NewTUIHandler creates a new TUIHandler.
func NewTUIHandler(handler slog.Handler, ch chan<- tea.Msg) *TUIHandler {
	return &TUIHandler{
		next: handler,
		sink: &sink{ch: ch},
	}
}

func (h *TUIHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle records r for display and passes it on.
func (h *TUIHandler) Handle(ctx context.Context, r slog.Record) error {
	display := r.Clone()
	display.AddAttrs(h.attrs...)
	h.sink.add(display)

	return h.next.Handle(ctx, r)
}

func (h *TUIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.next = h.next.WithAttrs(attrs)
	c.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		c.attrs = append(c.attrs, a)
	}
	return &c
}

func (h *TUIHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.next = h.next.WithGroup(name)
	c.prefix = h.prefix + name + "."
	return &c
}

// Logs returns the stored log messages, oldest first.
func (h *TUIHandler) Logs() []slog.Record {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	return append([]slog.Record(nil), h.sink.logs...)
}

// SetOutput sets the output channel for the handler.
func (h *TUIHandler) SetOutput(ch chan<- tea.Msg) {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	h.sink.ch = ch
}

var defaultHandler *TUIHandler

// Init initializes the default logger.
func Init(handler slog.Handler) {
	defaultHandler = NewTUIHandler(handler, nil)
	slog.SetDefault(slog.New(defaultHandler))
}

// SetOutput sets the output channel for the default logger.
func SetOutput(ch chan<- tea.Msg) {
	if defaultHandler != nil {
		defaultHandler.SetOutput(ch)
	}
}

// Logs returns the stored log messages from the default logger.
func Logs() []slog.Record {
	if defaultHandler == nil {
		return nil
	}
	return defaultHandler.Logs()
}
