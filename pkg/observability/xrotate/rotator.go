package xrotate

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/omeyang/xlogkit/pkg/observability/xsink"
)

// 编译时断言
var (
	_ io.WriteCloser = (Rotator)(nil)
	_ Rotator        = (*FileSink)(nil)
	_ xsink.Sink     = (*FileSink)(nil)
	_ xsink.Sink     = (*rotatorSink)(nil)
)

// Rotator 日志轮转器接口
//
// 隐式实现 [io.WriteCloser]，可直接用于任何接受 io.Writer 的场景。
// Rotate 可以在任意时刻调用。Close 之后的行为由实现决定：[FileSink] 返回
// [ErrClosed]，lumberjack 会在下一次写入时重新打开文件。经 [NewSink] 适配后
// 统一为返回 [ErrClosed]。
type Rotator interface {
	// Write 写入日志数据，满足轮转条件时自动轮转
	Write(p []byte) (n int, err error)

	// Close 关闭轮转器，重复调用返回 [ErrClosed]
	Close() error

	// Rotate 手动触发轮转
	Rotate() error
}

// rotatorSink 将 Rotator 适配为 xsink.Sink
type rotatorSink struct {
	mu     sync.Locker
	r      Rotator
	closed atomic.Bool
}

// NewSink 把任意 Rotator 包装成 xsink.Sink。
//
// l 为 nil 时使用互斥锁；Rotator 本身已并发安全时可传 [xsink.NoopLocker]。
// 返回值同时实现 io.Closer，关闭时关闭底层 Rotator。
func NewSink(r Rotator, l sync.Locker) xsink.Sink {
	if l == nil {
		l = &sync.Mutex{}
	}
	return &rotatorSink{mu: l, r: r}
}

func (s *rotatorSink) Log(rec xsink.Record) error {
	if s.closed.Load() {
		return ErrClosed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.r.Write(rec.Formatted)
	return err
}

// Flush 无操作：Rotator 的 Write 不经过用户态缓冲
func (s *rotatorSink) Flush() error { return nil }

// Close 重复调用返回 [ErrClosed]
func (s *rotatorSink) Close() error {
	if s.closed.Swap(true) {
		return ErrClosed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Close()
}
