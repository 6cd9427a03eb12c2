package testenv

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// TestLogHandler is a slog.Handler that prints message index (starting from 0)
// level, and message content, without the timestamp.
// This allows test log output to be deterministic.
//
// Request logs carry timings and generated ids; WithIgnoreAttrs drops such
// attributes so that examples can assert on the rest.
type TestLogHandler struct {
	index       *int
	attrs       []slog.Attr
	ignoreAttrs []string
	ignoreDebug bool
}

// TestLogHandlerOption is a function that configures a TestLogHandler
type TestLogHandlerOption func(*TestLogHandler)

// WithIgnoreAttrs omits the attributes with the given keys from the output
func WithIgnoreAttrs(keys ...string) TestLogHandlerOption {
	return func(h *TestLogHandler) {
		h.ignoreAttrs = append(h.ignoreAttrs, keys...)
	}
}

// WithIgnoreDebug configures the handler to ignore DEBUG level messages
func WithIgnoreDebug() TestLogHandlerOption {
	return func(h *TestLogHandler) {
		h.ignoreDebug = true
	}
}

func NewTestLogHandler(opts ...TestLogHandlerOption) *TestLogHandler {
	h := &TestLogHandler{index: new(int)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

//nolint:gocritic
func (h *TestLogHandler) Handle(_ context.Context, r slog.Record) error {
	var parts []string
	for _, a := range h.attrs {
		parts = h.appendAttr(parts, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		parts = h.appendAttr(parts, a)
		return true
	})

	if len(parts) > 0 {
		fmt.Printf("[%d] %s: %s %s\n", *h.index, r.Level, r.Message, strings.Join(parts, ", "))
	} else {
		fmt.Printf("[%d] %s: %s\n", *h.index, r.Level, r.Message)
	}
	*h.index++
	return nil
}

func (h *TestLogHandler) appendAttr(parts []string, a slog.Attr) []string {
	if slices.Contains(h.ignoreAttrs, a.Key) {
		return parts
	}
	return append(parts, fmt.Sprintf("%s=%v", a.Key, a.Value))
}

func (h *TestLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level != slog.LevelDebug || !h.ignoreDebug
}

func (h *TestLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TestLogHandler{
		index:       h.index,
		attrs:       append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
		ignoreAttrs: h.ignoreAttrs,
		ignoreDebug: h.ignoreDebug,
	}
}

// WithGroup is a no-op: the client logs flat key/value pairs only.
func (h *TestLogHandler) WithGroup(string) slog.Handler {
	return h
}
