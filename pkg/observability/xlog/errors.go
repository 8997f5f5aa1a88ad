package xlog

import "errors"

var (
	// ErrLoggerExists 同名 logger 已存在。
	ErrLoggerExists = errors.New("xlog: logger with name already exists")

	// ErrLoggerNotFound logger 不存在。
	ErrLoggerNotFound = errors.New("xlog: logger not found")

	// ErrEmptyName logger 名为空。
	ErrEmptyName = errors.New("xlog: logger name is required")

	// ErrNilSink sink 为 nil。
	ErrNilSink = errors.New("xlog: sink cannot be nil")

	// ErrInvalidQueueSize 异步队列大小无效。
	ErrInvalidQueueSize = errors.New("xlog: invalid async queue size")

	// ErrClosed logger 已关闭。
	ErrClosed = errors.New("xlog: logger is closed")

	// ErrSinkPanic sink 在写入或刷新时 panic。
	ErrSinkPanic = errors.New("xlog: sink panicked")
)
