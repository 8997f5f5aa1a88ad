package xconf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce 默认防抖时间
const DefaultDebounce = 100 * time.Millisecond

// WatchCallback 文件变更回调。err 非 nil 表示重载失败，此时 cfg 保持旧内容。
type WatchCallback func(cfg Config, err error)

// Watcher 配置文件监视器，文件变更时自动重载并回调。
type Watcher struct {
	cfg      *koanfConfig
	watcher  *fsnotify.Watcher
	callback WatchCallback
	debounce time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	running bool
	stopped bool
	timer   *time.Timer
	loopWG  sync.WaitGroup
}

// WatchOption 监视器配置选项
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

// WithDebounce 设置防抖时间，时间窗内的多次变更只触发一次重载。
// d <= 0 时保持默认值 [DefaultDebounce]。
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// Watch 创建配置文件监视器。
//
// 监视的是文件所在目录而不是文件本身：编辑器保存时常常先写临时文件再 rename，
// 直接监视文件会丢失事件。返回的 Watcher 需要调用 Start 或 StartAsync 开始监视，
// 用完后调用 Stop。
func Watch(cfg Config, callback WatchCallback, opts ...WatchOption) (*Watcher, error) {
	kc, ok := cfg.(*koanfConfig)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedFormat, cfg)
	}
	if kc.isBytes {
		return nil, ErrNotFromFile
	}
	if kc.path == "" {
		return nil, ErrEmptyPath
	}

	o := &watchOptions{debounce: DefaultDebounce}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xconf: failed to create watcher: %w", err)
	}
	dir := filepath.Dir(kc.path)
	if err := fsw.Add(dir); err != nil {
		return nil, errors.Join(
			fmt.Errorf("xconf: failed to watch directory %s: %w", dir, err),
			fsw.Close(),
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		cfg:      kc,
		watcher:  fsw,
		callback: callback,
		debounce: o.debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start 阻塞运行监视循环，直到 Stop 被调用。
func (w *Watcher) Start() {
	if !w.markRunning() {
		return
	}
	defer w.loopWG.Done()
	w.run()
}

// StartAsync 在后台 goroutine 中运行监视循环。
func (w *Watcher) StartAsync() {
	if !w.markRunning() {
		return
	}
	go func() {
		defer w.loopWG.Done()
		w.run()
	}()
}

func (w *Watcher) markRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running || w.stopped {
		return false
	}
	w.running = true
	w.loopWG.Add(1)
	return true
}

// Stop 停止监视并释放 fsnotify 资源，可重复调用。
//
// 返回后不会再有新的回调开始执行。在回调中调用 Stop 不会死锁。
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.cancel()
	w.mu.Unlock()

	err := w.watcher.Close()
	w.loopWG.Wait()
	return err
}

func (w *Watcher) run() {
	filename := filepath.Base(w.cfg.path)
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event, filename)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.notify(fmt.Errorf("xconf: watch error: %w", err))
		}
	}
}

// handleEvent 目标文件的 Write/Create/Rename 事件经防抖后触发重载
func (w *Watcher) handleEvent(event fsnotify.Event, filename string) {
	if filepath.Base(event.Name) != filename {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if w.ctx.Err() != nil {
			return
		}
		w.notify(w.cfg.Reload())
	})
}

// notify 调用回调并隔离其 panic
func (w *Watcher) notify(err error) {
	if w.callback == nil {
		return
	}
	defer func() {
		_ = recover() //nolint:errcheck // 回调 panic 不能中断监视
	}()
	w.callback(w.cfg, err)
}

// WatchConfig 带监视能力的 Config
type WatchConfig interface {
	Config
	Watch(callback WatchCallback, opts ...WatchOption) (*Watcher, error)
}

var _ WatchConfig = (*koanfConfig)(nil)

// Watch 等价于包级函数 [Watch]
func (c *koanfConfig) Watch(callback WatchCallback, opts ...WatchOption) (*Watcher, error) {
	return Watch(c, callback, opts...)
}
