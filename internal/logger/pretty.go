package logger

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
)

// levelStyle is the tag and color printed for a level.
type levelStyle struct {
	min   slog.Level
	tag   string
	color string
}

// Highest level first.
//
//nolint:gochecknoglobals // Static lookup table
var levelStyles = []levelStyle{
	{slog.LevelError, "ERR", "\033[31m"},
	{slog.LevelWarn, "WRN", "\033[33m"},
	{slog.LevelInfo, "INF", "\033[32m"},
	{slog.LevelDebug, "DBG", "\033[35m"},
}

func styleFor(level slog.Level) levelStyle {
	for _, s := range levelStyles {
		if level >= s.min {
			return s
		}
	}
	return levelStyle{min: level, tag: level.String(), color: "\033[37m"}
}

// PrettyHandler writes one line per record for terminals:
//
//	15:04:05 INF message key=value group.key=value
type PrettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	color  bool
	prefix string   // open group path, "a.b."
	fields []string // pre-rendered key=value pairs from WithAttrs
}

// NewPrettyHandler creates a pretty handler. With color false no ANSI codes are written.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions, color bool) *PrettyHandler {
	h := &PrettyHandler{mu: &sync.Mutex{}, w: w, color: color}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.opts.Level == nil {
		return level >= slog.LevelInfo
	}
	return level >= h.opts.Level.Level()
}

// Handle formats and writes the log record.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	style := styleFor(r.Level)

	h.segment(&b, ansiDim, r.Time.Format(time.TimeOnly))
	b.WriteByte(' ')
	h.segment(&b, style.color, style.tag)
	b.WriteByte(' ')
	if src := h.source(r); src != "" {
		h.segment(&b, ansiDim, src)
		b.WriteByte(' ')
	}
	h.segment(&b, ansiBold, r.Message)

	fields := append([]string(nil), h.fields...)
	r.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, h.prefix, a)
		return true
	})
	if len(fields) > 0 {
		b.WriteByte(' ')
		h.segment(&b, ansiCyan, strings.Join(fields, " "))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// WithAttrs returns a handler that prints attrs on every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.fields = append([]string(nil), h.fields...)
	for _, a := range attrs {
		next.fields = appendAttr(next.fields, h.prefix, a)
	}
	return &next
}

// WithGroup returns a handler that qualifies later keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func (h *PrettyHandler) segment(b *strings.Builder, color, s string) {
	if h.color {
		b.WriteString(color)
		b.WriteString(s)
		b.WriteString(ansiReset)
		return
	}
	b.WriteString(s)
}

func (h *PrettyHandler) source(r slog.Record) string {
	if !h.opts.AddSource || r.PC == 0 {
		return ""
	}
	f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	return filepath.Base(f.File) + ":" + strconv.Itoa(f.Line)
}

// appendAttr renders a as key=value, flattening group values into dotted keys.
func appendAttr(fields []string, prefix string, a slog.Attr) []string {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range v.Group() {
			fields = appendAttr(fields, prefix, ga)
		}
		return fields
	}
	if a.Key == "" {
		return fields
	}
	return append(fields, prefix+a.Key+"="+renderValue(v))
}

func renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindString:
		if s := v.String(); s == "" || strings.ContainsAny(s, " \t\"=") {
			return strconv.Quote(s)
		}
		return v.String()
	default:
		return v.String()
	}
}
