package xlog

import (
	"errors"
	"sync"
	"time"

	"github.com/omeyang/xlogkit/pkg/observability/xsink"
	"github.com/omeyang/xlogkit/pkg/util/xpool"
)

type taskKind uint8

const (
	taskRecord taskKind = iota
	taskFlush
)

// asyncTask 队列元素：一条记录或一个刷新标记
type asyncTask struct {
	kind taskKind
	rec  xsink.Record
	done chan error // 仅刷新标记使用，nil 表示周期刷新
}

// asyncWorker 每个异步 logger 独占的单 worker 队列，保证记录按提交顺序写出
type asyncWorker struct {
	l    *Logger
	pool *xpool.Pool[asyncTask]

	stopTicker chan struct{}
	tickerWG   sync.WaitGroup
}

func newAsyncWorker(l *Logger, cfg AsyncConfig) (*asyncWorker, error) {
	w := &asyncWorker{
		l:          l,
		stopTicker: make(chan struct{}),
	}
	pool, err := xpool.New(1, cfg.QueueSize, w.handle,
		xpool.WithName("xlog."+l.name),
		xpool.WithOverflow(cfg.Overflow),
		xpool.WithOnStart(cfg.OnStart),
		xpool.WithOnStop(cfg.OnStop),
	)
	if err != nil {
		return nil, err
	}
	w.pool = pool

	if cfg.FlushInterval > 0 {
		w.tickerWG.Add(1)
		go w.flushEvery(cfg.FlushInterval)
	}
	return w, nil
}

func (w *asyncWorker) handle(t asyncTask) {
	switch t.kind {
	case taskFlush:
		err := w.l.report(w.l.flushSinks())
		if t.done != nil {
			t.done <- err
			return
		}
		if err != nil {
			w.l.fallback(err)
		}
	default:
		if err := w.l.report(w.l.dispatch(t.rec)); err != nil {
			w.l.fallback(err)
		}
	}
}

// submit 入队一条记录；discard 策略下队列满时静默丢弃
func (w *asyncWorker) submit(rec xsink.Record) error {
	err := w.pool.Submit(asyncTask{kind: taskRecord, rec: rec})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, xpool.ErrQueueFull):
		return nil
	case errors.Is(err, xpool.ErrPoolStopped):
		return ErrClosed
	default:
		return err
	}
}

// flush 提交刷新标记并等待 worker 处理到该标记
func (w *asyncWorker) flush() error {
	done := make(chan error, 1)
	if err := w.pool.SubmitWait(asyncTask{kind: taskFlush, done: done}); err != nil {
		return ErrClosed
	}
	return <-done
}

func (w *asyncWorker) flushEvery(d time.Duration) {
	defer w.tickerWG.Done()

	ticker := time.NewTicker(d)
	defer ticker.Stop()
	for {
		select {
		case <-w.stopTicker:
			return
		case <-ticker.C:
			// 周期刷新允许在队列满时被丢弃
			_ = w.pool.Submit(asyncTask{kind: taskFlush})
		}
	}
}

// close 停止周期刷新，排空队列后做最后一次刷新
func (w *asyncWorker) close() error {
	close(w.stopTicker)
	w.tickerWG.Wait()

	if err := w.pool.Close(); err != nil {
		return err
	}
	return w.l.report(w.l.flushSinks())
}
