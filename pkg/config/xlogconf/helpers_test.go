package xlogconf

import (
	"errors"
	"sync"

	"github.com/omeyang/xlogkit/pkg/config/xdirective"
	"github.com/omeyang/xlogkit/pkg/observability/xlog"
	"github.com/omeyang/xlogkit/pkg/observability/xsink"
)

// recordingSink 只保存原始消息
type recordingSink struct {
	mu       sync.Mutex
	messages []string
}

func (s *recordingSink) Log(rec xsink.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, rec.Message)
	return nil
}

func (s *recordingSink) Flush() error { return nil }

func (s *recordingSink) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

// throwingSink 每次写入都失败，错误消息包含原始消息
type throwingSink struct{}

func (throwingSink) Log(rec xsink.Record) error {
	return errors.New("Error in 'throwing_sink': " + rec.Message)
}

func (throwingSink) Flush() error { return nil }

// testEnv 返回互相隔离的注册表和 Store，并注册测试用 sink 类型
func testEnv() Env {
	regs := NewRegistries()
	recording := func(xdirective.Attributes) (xsink.Sink, error) { return &recordingSink{}, nil }
	_ = regs.Sinks.Register("test_sink_mt", recording)
	_ = regs.Sinks.Register("test_sink_st", recording)
	_ = regs.Sinks.Register("throwing_sink", func(xdirective.Attributes) (xsink.Sink, error) {
		return throwingSink{}, nil
	})
	return Env{Registries: regs, Store: xlog.NewStore()}
}

func mustLines(lines ...string) *Configuration {
	c, err := CreateFromLines(lines)
	if err != nil {
		panic(err)
	}
	return c
}
