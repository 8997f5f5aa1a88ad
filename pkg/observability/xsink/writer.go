package xsink

import (
	"bufio"
	"io"
	"os"
	"sync"
)

// Writer 写入 io.Writer 的 sink，内部带缓冲。
type Writer struct {
	mu         sync.Locker
	w          *bufio.Writer
	forceFlush bool
}

// NewWriter 创建写入 w 的 sink。
func NewWriter(w io.Writer, opts ...Option) (*Writer, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	o := applyOptions(opts)
	return &Writer{
		mu:         o.locker,
		w:          bufio.NewWriter(w),
		forceFlush: o.forceFlush,
	}, nil
}

// Stdout 创建写入标准输出的 sink，每条记录后立即刷新。
func Stdout(l sync.Locker) *Writer {
	return stream(os.Stdout, l)
}

// Stderr 创建写入标准错误的 sink，每条记录后立即刷新。
func Stderr(l sync.Locker) *Writer {
	return stream(os.Stderr, l)
}

func stream(f *os.File, l sync.Locker) *Writer {
	// f 非 nil，NewWriter 不会失败
	w, _ := NewWriter(f, WithLocker(l), WithForceFlush(true)) //nolint:errcheck // 见上
	return w
}

// Log 写入 rec.Formatted。
func (s *Writer) Log(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.Write(rec.Formatted); err != nil {
		return err
	}
	if s.forceFlush {
		return s.w.Flush()
	}
	return nil
}

// Flush 刷新缓冲区。
func (s *Writer) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Flush()
}
