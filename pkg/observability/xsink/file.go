package xsink

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/omeyang/xlogkit/pkg/util/xfile"
)

// File 写入单个文件、不做轮转的 sink。
type File struct {
	mu         sync.Locker
	path       string
	f          *os.File
	w          *bufio.Writer
	forceFlush bool
	closed     bool
}

// NewFile 打开 path 作为日志文件。
//
// truncate 为 true 时清空已有内容，否则追加。父目录不存在时自动创建。
func NewFile(path string, truncate bool, opts ...Option) (*File, error) {
	safePath, err := xfile.SanitizePath(path)
	if err != nil {
		return nil, err
	}
	if err := xfile.EnsureDir(safePath); err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	flag := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if truncate {
		flag |= os.O_TRUNC
	}
	f, err := os.OpenFile(safePath, flag, o.fileMode) //#nosec G304 -- 路径已经过 SanitizePath
	if err != nil {
		return nil, fmt.Errorf("xsink: open %s: %w", safePath, err)
	}

	return &File{
		mu:         o.locker,
		path:       safePath,
		f:          f,
		w:          bufio.NewWriter(f),
		forceFlush: o.forceFlush,
	}, nil
}

// Path 返回规范化后的文件路径。
func (s *File) Path() string { return s.path }

// Log 写入 rec.Formatted。
func (s *File) Log(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if _, err := s.w.Write(rec.Formatted); err != nil {
		return err
	}
	if s.forceFlush {
		return s.w.Flush()
	}
	return nil
}

// Flush 刷新缓冲区到文件。
func (s *File) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	return s.w.Flush()
}

// Close 刷新并关闭文件。重复调用返回 [ErrClosed]。
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return errors.Join(s.w.Flush(), s.f.Close())
}
