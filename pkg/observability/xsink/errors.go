package xsink

import "errors"

var (
	// ErrClosed sink 已关闭。
	ErrClosed = errors.New("xsink: sink is closed")

	// ErrNilWriter 写入目标为 nil。
	ErrNilWriter = errors.New("xsink: writer is nil")
)
