package xlog

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/omeyang/xlogkit/pkg/observability/xsink"
)

// Logger 具名、带级别阈值、扇出到多个 sink 的 logger。
//
// sink 列表在创建后不可变；级别、pattern 和错误处理器可在运行时修改。
// 所有方法并发安全。
type Logger struct {
	name  string
	sinks []xsink.Sink
	level atomic.Int64

	mu         sync.RWMutex
	fmt        *formatter
	errHandler ErrorHandler

	errOut io.Writer
	errMu  sync.Mutex // 串行化兜底输出
	now    func() time.Time

	async  *asyncWorker
	closed atomic.Bool
}

// NewLogger 创建 logger。
//
// sinks 按顺序接收记录，不能包含 nil。不经过 [Store] 创建的 logger 不会被注册。
func NewLogger(name string, sinks []xsink.Sink, opts ...Option) (*Logger, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	for i, s := range sinks {
		if s == nil {
			return nil, fmt.Errorf("%w: logger %q, index %d", ErrNilSink, name, i)
		}
	}

	o := defaultLoggerOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	l := &Logger{
		name:       name,
		sinks:      append([]xsink.Sink(nil), sinks...),
		fmt:        compilePattern(o.pattern),
		errHandler: o.errHandler,
		errOut:     o.errOut,
		now:        o.now,
	}
	l.level.Store(int64(o.level))

	if o.async != nil {
		if err := o.async.validate(); err != nil {
			return nil, err
		}
		w, err := newAsyncWorker(l, *o.async)
		if err != nil {
			return nil, err
		}
		l.async = w
	}
	return l, nil
}

// Name 返回 logger 名称
func (l *Logger) Name() string { return l.name }

// Sinks 返回 sink 列表的副本，顺序与创建时一致
func (l *Logger) Sinks() []xsink.Sink {
	return append([]xsink.Sink(nil), l.sinks...)
}

// Level 返回当前阈值
func (l *Logger) Level() Level { return Level(l.level.Load()) }

// SetLevel 设置阈值
func (l *Logger) SetLevel(level Level) { l.level.Store(int64(level)) }

// Enabled 报告 level 级别的记录是否会被输出
func (l *Logger) Enabled(level Level) bool {
	threshold := l.Level()
	return threshold != LevelOff && level >= threshold
}

// Pattern 返回当前 pattern
func (l *Logger) Pattern() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fmt.pattern
}

// SetPattern 替换格式 pattern
func (l *Logger) SetPattern(p string) {
	f := compilePattern(p)
	l.mu.Lock()
	l.fmt = f
	l.mu.Unlock()
}

// SetErrorHandler 替换错误处理器，nil 表示不处理（错误返回给调用方）
func (l *Logger) SetErrorHandler(h ErrorHandler) {
	l.mu.Lock()
	l.errHandler = h
	l.mu.Unlock()
}

// Async 报告 logger 是否运行在异步模式
func (l *Logger) Async() bool { return l.async != nil }

// Log 记录一条日志。
//
// 同步模式下，sink 错误在没有错误处理器时合并返回；
// 异步模式下只返回入队错误，sink 错误由 worker 交给错误处理器或兜底输出。
func (l *Logger) Log(level Level, msg string) error {
	if !l.Enabled(level) {
		return nil
	}
	return l.logAt(level, l.now(), msg)
}

func (l *Logger) logAt(level Level, t time.Time, msg string) error {
	if l.closed.Load() {
		return ErrClosed
	}

	rec := l.newRecord(level, t, msg)
	if l.async != nil {
		return l.async.submit(rec)
	}
	return l.report(l.dispatch(rec))
}

// Logf 按 fmt.Sprintf 格式化后记录
func (l *Logger) Logf(level Level, format string, args ...any) error {
	if !l.Enabled(level) {
		return nil
	}
	return l.Log(level, fmt.Sprintf(format, args...))
}

// Trace 记录 TRACE 级别日志
func (l *Logger) Trace(msg string) { l.logOrFallback(LevelTrace, msg) }

// Debug 记录 DEBUG 级别日志
func (l *Logger) Debug(msg string) { l.logOrFallback(LevelDebug, msg) }

// Info 记录 INFO 级别日志
func (l *Logger) Info(msg string) { l.logOrFallback(LevelInfo, msg) }

// Warn 记录 WARN 级别日志
func (l *Logger) Warn(msg string) { l.logOrFallback(LevelWarn, msg) }

// Error 记录 ERROR 级别日志
func (l *Logger) Error(msg string) { l.logOrFallback(LevelError, msg) }

// Critical 记录 CRITICAL 级别日志
func (l *Logger) Critical(msg string) { l.logOrFallback(LevelCritical, msg) }

func (l *Logger) logOrFallback(level Level, msg string) {
	if err := l.Log(level, msg); err != nil {
		l.fallback(err)
	}
}

// Flush 刷新所有 sink。
//
// 异步模式下先等待调用前已入队的记录写完。
func (l *Logger) Flush() error {
	if l.closed.Load() {
		return ErrClosed
	}
	if l.async != nil {
		return l.async.flush()
	}
	return l.report(l.flushSinks())
}

// Close 停止异步 worker（如有）并刷新 sink，不关闭 sink 本身。
//
// sink 可能被多个 logger 共享，其生命周期由创建方管理。重复调用返回 [ErrClosed]。
func (l *Logger) Close() error {
	if l.closed.Swap(true) {
		return ErrClosed
	}
	if l.async != nil {
		return l.async.close()
	}
	return l.report(l.flushSinks())
}

func (l *Logger) newRecord(level Level, t time.Time, msg string) xsink.Record {
	l.mu.RLock()
	f := l.fmt
	l.mu.RUnlock()

	return xsink.Record{
		Time:      t,
		Logger:    l.name,
		Level:     slogLevel(level),
		Message:   msg,
		Formatted: f.format(make([]byte, 0, len(msg)+64), l.name, level, t, msg),
	}
}

// dispatch 按顺序写入每个 sink，单个 sink 失败不影响其余 sink
func (l *Logger) dispatch(rec xsink.Record) error {
	var errs []error
	for _, s := range l.sinks {
		if err := safeCall(func() error { return s.Log(rec) }); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (l *Logger) flushSinks() error {
	var errs []error
	for _, s := range l.sinks {
		if err := safeCall(s.Flush); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// report 有错误处理器时逐个交给处理器并返回 nil，否则包装后返回
func (l *Logger) report(err error) error {
	if err == nil {
		return nil
	}

	l.mu.RLock()
	h := l.errHandler
	l.mu.RUnlock()

	if h == nil {
		return fmt.Errorf("xlog: logger %q: %w", l.name, err)
	}
	for _, e := range unjoin(err) {
		l.safeHandle(h, e)
	}
	return nil
}

// safeHandle 隔离错误处理器的 panic，防止扩散到业务调用链
func (l *Logger) safeHandle(h ErrorHandler, err error) {
	defer func() {
		if r := recover(); r != nil {
			l.fallback(fmt.Errorf("xlog: error handler panicked: %v (handling %w)", r, err))
		}
	}()
	h(err)
}

// fallback 最后的兜底：写到错误输出，自身失败时静默
func (l *Logger) fallback(err error) {
	l.errMu.Lock()
	defer l.errMu.Unlock()
	_, _ = fmt.Fprintf(l.errOut, "[*** LOG ERROR ***] [%s] [%s] %v\n",
		l.now().Format("2006-01-02 15:04:05"), l.name, err)
}

// safeCall 执行 fn 并把 panic 转换为 ErrSinkPanic
func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSinkPanic, r)
		}
	}()
	return fn()
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
