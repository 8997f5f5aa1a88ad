package xlog

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/omeyang/xlogkit/pkg/util/xpool"
)

// ErrorHandler 处理 sink 写入或刷新时返回的错误。
//
// 处理器在写入方（同步模式）或异步 worker 中调用，不得向同一 logger 写日志。
type ErrorHandler func(err error)

// AsyncConfig 异步模式配置
type AsyncConfig struct {
	// QueueSize 每个 logger 的队列容量，必须 > 0
	QueueSize int
	// Overflow 队列满时的策略，默认阻塞
	Overflow xpool.Overflow
	// FlushInterval > 0 时 worker 按该间隔周期性刷新 sink
	FlushInterval time.Duration
	// OnStart 每个 worker 启动时调用一次
	OnStart func()
	// OnStop 每个 worker 退出时调用一次
	OnStop func()
}

func (c *AsyncConfig) validate() error {
	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQueueSize, c.QueueSize)
	}
	return nil
}

type loggerOptions struct {
	level      Level
	pattern    string
	errHandler ErrorHandler
	async      *AsyncConfig
	errOut     io.Writer
	now        func() time.Time
}

func defaultLoggerOptions() loggerOptions {
	return loggerOptions{
		level:   LevelInfo,
		pattern: DefaultPattern,
		errOut:  os.Stderr,
		now:     time.Now,
	}
}

// Option logger 配置选项函数
type Option func(*loggerOptions)

// WithLevel 设置初始阈值，默认 LevelInfo
func WithLevel(l Level) Option {
	return func(o *loggerOptions) {
		o.level = l
	}
}

// WithPattern 设置格式 pattern，默认 [DefaultPattern]
func WithPattern(p string) Option {
	return func(o *loggerOptions) {
		o.pattern = p
	}
}

// WithErrorHandler 设置 sink 错误处理器
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *loggerOptions) {
		o.errHandler = h
	}
}

// WithAsync 以异步模式创建 logger，nil 表示同步
func WithAsync(cfg *AsyncConfig) Option {
	return func(o *loggerOptions) {
		o.async = cfg
	}
}

// WithErrorOutput 设置没有错误处理器时的兜底输出，默认 os.Stderr
func WithErrorOutput(w io.Writer) Option {
	return func(o *loggerOptions) {
		if w != nil {
			o.errOut = w
		}
	}
}

// WithClock 替换时间来源，仅用于测试
func WithClock(now func() time.Time) Option {
	return func(o *loggerOptions) {
		if now != nil {
			o.now = now
		}
	}
}
