package logging

import (
	"context"
	"log/slog"
	"os"
)

// ringHandler wraps a slog.Handler, additionally recording every record
// into a Ring so the UI can show "recent log lines" in the Help overlay
// without reading anything back off disk.
type ringHandler struct {
	inner slog.Handler
	ring  *Ring
}

func (h *ringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ringHandler) Handle(ctx context.Context, r slog.Record) error {
	h.ring.Add(Entry{Time: r.Time, Level: r.Level, Message: r.Message})
	return h.inner.Handle(ctx, r)
}

func (h *ringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ringHandler{inner: h.inner.WithAttrs(attrs), ring: h.ring}
}

func (h *ringHandler) WithGroup(name string) slog.Handler {
	return &ringHandler{inner: h.inner.WithGroup(name), ring: h.ring}
}

// LevelVar allows the --debug flag to raise verbosity after the logger has
// already been constructed and handed to every component.
type LevelVar = slog.LevelVar

// New builds the process logger: a text handler to stderr, mirrored into
// ring so recent lines survive the alternate screen. The components that
// log (config.LoadRemotes, the tui Model) receive this *slog.Logger by
// injection, never through a package global, matching the teacher's
// pkg/fleet and pkg/relay constructors.
func New(level *LevelVar, ring *Ring) *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(&ringHandler{inner: h, ring: ring})
}
