package xlog

import (
	"bytes"
	"sync"
	"time"

	"github.com/omeyang/xlogkit/pkg/observability/xsink"
)

// memorySink 记录收到的格式化行，可注入错误或 panic
type memorySink struct {
	mu      sync.Mutex
	lines   []string
	flushes int
	err     error
	panicV  any
}

func (s *memorySink) Log(rec xsink.Record) error {
	if s.panicV != nil {
		panic(s.panicV)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.lines = append(s.lines, string(rec.Formatted))
	return nil
}

func (s *memorySink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
	return nil
}

func (s *memorySink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

func (s *memorySink) Flushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}

// syncBuffer 并发安全的 bytes.Buffer
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

var fixedTime = time.Date(2024, 3, 7, 9, 5, 2, 123456789, time.Local)

func fixedClock() time.Time { return fixedTime }
