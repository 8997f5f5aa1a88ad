package xlog

import (
	"context"
	"log/slog"
	"strconv"
	"time"
)

// 编译期确保实现 slog.Handler
var _ slog.Handler = (*handler)(nil)

// handler 把 slog 记录桥接到 Logger。
//
// 属性以 " key=value" 追加在消息之后，分组名以 "." 连接到键前；
// 最终文本经过 logger 的 pattern 作为 %v 输出。
type handler struct {
	l       *Logger
	prefix  string // 组前缀，形如 "a.b."
	preAttr []byte // WithAttrs 预先格式化的属性
}

// Handler 返回驱动该 logger 的 slog.Handler。
//
// sink 错误按 logger 的错误处理规则处理，无处理器时由 Handle 返回。
func (l *Logger) Handler() slog.Handler {
	return &handler{l: l}
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.l.Enabled(Level(level))
}

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	level := Level(r.Level)
	if !h.l.Enabled(level) {
		return nil
	}

	buf := make([]byte, 0, len(r.Message)+len(h.preAttr)+16*r.NumAttrs())
	buf = append(buf, r.Message...)
	buf = append(buf, h.preAttr...)
	r.Attrs(func(a slog.Attr) bool {
		buf = appendAttr(buf, h.prefix, a)
		return true
	})

	t := r.Time
	if t.IsZero() {
		t = h.l.now()
	}
	return h.l.logAt(level, t, string(buf))
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	pre := append([]byte(nil), h.preAttr...)
	for _, a := range attrs {
		pre = appendAttr(pre, h.prefix, a)
	}
	return &handler{l: h.l, prefix: h.prefix, preAttr: pre}
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &handler{l: h.l, prefix: h.prefix + name + ".", preAttr: h.preAttr}
}

// appendAttr 追加 " key=value"，组属性展开为带前缀的多个键值
func appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		if len(attrs) == 0 {
			return buf
		}
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range attrs {
			buf = appendAttr(buf, prefix, ga)
		}
		return buf
	}

	buf = append(buf, ' ')
	buf = append(buf, prefix...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	return appendValue(buf, a.Value)
}

func appendValue(buf []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if needsQuote(s) {
			return strconv.AppendQuote(buf, s)
		}
		return append(buf, s...)
	case slog.KindInt64:
		return strconv.AppendInt(buf, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(buf, v.Uint64(), 10)
	case slog.KindBool:
		return strconv.AppendBool(buf, v.Bool())
	case slog.KindDuration:
		return append(buf, v.Duration().String()...)
	case slog.KindTime:
		return v.Time().AppendFormat(buf, time.RFC3339Nano)
	default:
		s := v.String()
		if needsQuote(s) {
			return strconv.AppendQuote(buf, s)
		}
		return append(buf, s...)
	}
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	for _, c := range s {
		if c <= ' ' || c == '=' || c == '"' || c == 0x7f {
			return true
		}
	}
	return false
}
