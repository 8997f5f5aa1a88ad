package xpool

import "log/slog"

// Overflow 队列满时的提交策略。
type Overflow int

const (
	// Block 阻塞直到有空位或 pool 关闭。
	Block Overflow = iota
	// Discard 立即丢弃任务并返回 ErrQueueFull。
	Discard
)

// String 返回策略名。
func (o Overflow) String() string {
	switch o {
	case Block:
		return "block"
	case Discard:
		return "discard"
	default:
		return "unknown"
	}
}

// Option 定义 Pool 可选配置函数类型。
type Option func(*options)

type options struct {
	logger   *slog.Logger
	name     string
	overflow Overflow
	onStart  func()
	onStop   func()
}

func defaultOptions() options {
	return options{
		logger:   slog.Default(),
		overflow: Block,
	}
}

// WithLogger 设置自定义日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略，保持使用默认值。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置 pool 名称，用于在多实例场景下区分日志来源。
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithOverflow 设置队列满时的提交策略，默认 [Block]。
func WithOverflow(policy Overflow) Option {
	return func(o *options) {
		o.overflow = policy
	}
}

// WithOnStart 设置每个 worker 启动时调用的钩子。
func WithOnStart(fn func()) Option {
	return func(o *options) {
		o.onStart = fn
	}
}

// WithOnStop 设置每个 worker 退出时调用的钩子。
func WithOnStop(fn func()) Option {
	return func(o *options) {
		o.onStop = fn
	}
}
