package xsink

import (
	"os"
	"sync"
)

// DefaultFileMode 日志文件默认权限。
const DefaultFileMode os.FileMode = 0o644

type options struct {
	locker     sync.Locker
	forceFlush bool
	fileMode   os.FileMode
}

func defaultOptions() options {
	return options{
		locker:   &sync.Mutex{},
		fileMode: DefaultFileMode,
	}
}

// Option sink 配置选项函数。
type Option func(*options)

// WithLocker 设置锁策略，nil 时保持默认互斥锁。
func WithLocker(l sync.Locker) Option {
	return func(o *options) {
		if l != nil {
			o.locker = l
		}
	}
}

// WithForceFlush 设置每次写入后是否立即刷新。
func WithForceFlush(b bool) Option {
	return func(o *options) {
		o.forceFlush = b
	}
}

// WithFileMode 设置文件 sink 创建文件时使用的权限，仅取低 9 位。
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		if mode != 0 {
			o.fileMode = mode.Perm()
		}
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
