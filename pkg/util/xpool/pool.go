package xpool

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"
	"sync"
)

const (
	maxWorkers   = 1 << 16
	maxQueueSize = 1 << 24
)

// 编译期确保关闭契约
var _ io.Closer = (*Pool[int])(nil)

// Pool 泛型 worker pool。
type Pool[T any] struct {
	handler func(T)
	opts    options
	workers int
	queue   chan T

	// mu 保证 Submit 的发送与 Shutdown 的 close(queue) 互斥
	mu       sync.RWMutex
	closed   bool
	stopped  chan struct{}
	stopOnce sync.Once

	wg   sync.WaitGroup
	done chan struct{}
}

// New 创建并启动 worker pool。
func New[T any](workers, queueSize int, handler func(T), opts ...Option) (*Pool[T], error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if workers < 1 || workers > maxWorkers {
		return nil, fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidWorkers, workers, maxWorkers)
	}
	if queueSize < 1 || queueSize > maxQueueSize {
		return nil, fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidQueueSize, queueSize, maxQueueSize)
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	p := &Pool[T]{
		handler: handler,
		opts:    o,
		workers: workers,
		queue:   make(chan T, queueSize),
		stopped: make(chan struct{}),
		done:    make(chan struct{}),
	}
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p, nil
}

// worker 只从 queue 读取任务直到 channel 关闭，保证关闭前已入队的任务全部处理
func (p *Pool[T]) worker() {
	defer p.wg.Done()

	p.runHook("start", p.opts.onStart)
	defer p.runHook("stop", p.opts.onStop)

	for task := range p.queue {
		p.handle(task)
	}
}

func (p *Pool[T]) handle(task T) {
	defer func() {
		if r := recover(); r != nil {
			p.opts.logger.Error("xpool: worker panic recovered",
				"pool", p.opts.name,
				"task_type", fmt.Sprintf("%T", task),
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()
	p.handler(task)
}

func (p *Pool[T]) runHook(stage string, fn func()) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.opts.logger.Error("xpool: worker hook panic recovered",
				"pool", p.opts.name, "stage", stage, "panic", r)
		}
	}()
	fn()
}

// Submit 提交任务。
//
// Block 策略下队列满时阻塞，直到入队或 pool 关闭；
// Discard 策略下队列满时立即返回 [ErrQueueFull]。
func (p *Pool[T]) Submit(task T) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolStopped
	}

	if p.opts.overflow == Discard {
		select {
		case p.queue <- task:
			return nil
		default:
			p.opts.logger.Debug("xpool: queue full, task dropped", "pool", p.opts.name)
			return ErrQueueFull
		}
	}

	return p.enqueue(task)
}

// SubmitWait 忽略溢出策略，始终阻塞直到入队或 pool 关闭。
//
// 用于不能丢弃的控制类任务，例如刷新标记。
func (p *Pool[T]) SubmitWait(task T) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolStopped
	}
	return p.enqueue(task)
}

// enqueue 调用方必须持有读锁
func (p *Pool[T]) enqueue(task T) error {
	select {
	case p.queue <- task:
		return nil
	case <-p.stopped:
		return ErrPoolStopped
	}
}

// Shutdown 停止接收新任务并等待已入队任务处理完成。
//
// ctx 到期时返回 ctx.Err()，worker 继续在后台处理剩余任务。
func (p *Pool[T]) Shutdown(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}

	p.stopOnce.Do(func() {
		// 先唤醒阻塞中的 Submit，它们释放读锁后才能拿到写锁
		close(p.stopped)

		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()

		go func() {
			p.wg.Wait()
			close(p.done)
		}()
	})

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close 等价于 Shutdown(context.Background())。
func (p *Pool[T]) Close() error {
	return p.Shutdown(context.Background())
}

// Done 返回在所有 worker 退出后关闭的 channel。
func (p *Pool[T]) Done() <-chan struct{} {
	return p.done
}

// Workers 返回 worker 数量。
func (p *Pool[T]) Workers() int {
	return p.workers
}

// QueueSize 返回队列容量。
func (p *Pool[T]) QueueSize() int {
	return cap(p.queue)
}

// Pending 返回当前排队中的任务数。
func (p *Pool[T]) Pending() int {
	return len(p.queue)
}
