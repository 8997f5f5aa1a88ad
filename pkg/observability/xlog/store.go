package xlog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xlogkit/pkg/observability/xsink"
)

// Store 按名称管理 logger 的注册表，并保存新建 logger 的默认设置。
//
// 默认设置（pattern、级别、错误处理器、异步模式）只影响之后创建的 logger；
// SetPattern、SetErrorHandler 和 SetLevel 同时作用于已存在的 logger。
type Store struct {
	base []Option

	mu         sync.RWMutex
	loggers    map[string]*Logger
	pattern    string
	level      *Level
	errHandler ErrorHandler
	async      *AsyncConfig
}

// NewStore 创建空 Store。opts 作为其中每个 logger 的基础选项，
// 优先级低于 Store 的默认设置和 Create 的显式选项。
func NewStore(opts ...Option) *Store {
	return &Store{
		base:    opts,
		loggers: make(map[string]*Logger),
	}
}

// Create 创建并注册 logger。同名 logger 已存在时返回 [ErrLoggerExists]。
func (s *Store) Create(name string, sinks []xsink.Sink, opts ...Option) (*Logger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.loggers[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrLoggerExists, name)
	}

	all := make([]Option, 0, len(s.base)+4+len(opts))
	all = append(all, s.base...)
	if s.pattern != "" {
		all = append(all, WithPattern(s.pattern))
	}
	if s.level != nil {
		all = append(all, WithLevel(*s.level))
	}
	if s.errHandler != nil {
		all = append(all, WithErrorHandler(s.errHandler))
	}
	if s.async != nil {
		cfg := *s.async
		all = append(all, WithAsync(&cfg))
	}
	all = append(all, opts...)

	l, err := NewLogger(name, sinks, all...)
	if err != nil {
		return nil, err
	}
	s.loggers[name] = l
	return l, nil
}

// Get 按名称查找 logger
func (s *Store) Get(name string) (*Logger, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.loggers[name]
	return l, ok
}

// Drop 注销并关闭 logger。异步 logger 会排空队列并调用 teardown 回调。
func (s *Store) Drop(name string) error {
	s.mu.Lock()
	l, ok := s.loggers[name]
	delete(s.loggers, name)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrLoggerNotFound, name)
	}
	return l.Close()
}

// DropAll 注销并关闭所有 logger
func (s *Store) DropAll() error {
	s.mu.Lock()
	loggers := s.loggers
	s.loggers = make(map[string]*Logger)
	s.mu.Unlock()

	var errs []error
	for _, name := range sortedNames(loggers) {
		if err := loggers[name].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ApplyAll 按名称顺序对每个 logger 调用 fn。
//
// fn 在 Store 锁之外执行，可以安全地调用 Store 的其他方法。
func (s *Store) ApplyAll(fn func(*Logger)) {
	for _, l := range s.snapshot() {
		fn(l)
	}
}

// FlushAll 并发刷新所有 logger，返回第一个错误。
//
// ctx 取消后尚未开始的刷新被跳过。
func (s *Store) FlushAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, l := range s.snapshot() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return l.Flush()
		})
	}
	return g.Wait()
}

// SetAsync 让之后创建的 logger 运行在异步模式
func (s *Store) SetAsync(cfg AsyncConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.async = &cfg
	s.mu.Unlock()
	return nil
}

// SetSync 让之后创建的 logger 运行在同步模式
func (s *Store) SetSync() {
	s.mu.Lock()
	s.async = nil
	s.mu.Unlock()
}

// AsyncConfig 返回当前异步配置，同步模式下 ok 为 false
func (s *Store) AsyncConfig() (cfg AsyncConfig, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.async == nil {
		return AsyncConfig{}, false
	}
	return *s.async, true
}

// SetPattern 设置默认 pattern 并应用到所有已存在的 logger
func (s *Store) SetPattern(p string) {
	s.mu.Lock()
	s.pattern = p
	s.mu.Unlock()
	s.ApplyAll(func(l *Logger) { l.SetPattern(p) })
}

// SetErrorHandler 设置默认错误处理器并应用到所有已存在的 logger
func (s *Store) SetErrorHandler(h ErrorHandler) {
	s.mu.Lock()
	s.errHandler = h
	s.mu.Unlock()
	s.ApplyAll(func(l *Logger) { l.SetErrorHandler(h) })
}

// SetLevel 设置默认级别并应用到所有已存在的 logger
func (s *Store) SetLevel(level Level) {
	s.mu.Lock()
	s.level = &level
	s.mu.Unlock()
	s.ApplyAll(func(l *Logger) { l.SetLevel(level) })
}

// Names 返回已注册的 logger 名称，按字典序排列
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedNames(s.loggers)
}

// Len 返回已注册的 logger 数量
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.loggers)
}

func (s *Store) snapshot() []*Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Logger, 0, len(s.loggers))
	for _, name := range sortedNames(s.loggers) {
		out = append(out, s.loggers[name])
	}
	return out
}

func sortedNames(m map[string]*Logger) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
