package xlog

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xlogkit/pkg/observability/xsink"
	"github.com/omeyang/xlogkit/pkg/util/xpool"
)

func TestAsync_KeepsOrder(t *testing.T) {
	s := &memorySink{}
	l, err := NewLogger("app", []xsink.Sink{s}, WithPattern("%v"),
		WithAsync(&AsyncConfig{QueueSize: 8}))
	require.NoError(t, err)
	assert.True(t, l.Async())

	want := make([]string, 0, 100)
	for i := range 100 {
		require.NoError(t, l.Logf(LevelInfo, "m%d", i))
		want = append(want, fmt.Sprintf("m%d\n", i))
	}
	require.NoError(t, l.Flush())
	assert.Equal(t, want, s.Lines())
	assert.Equal(t, 1, s.Flushes())

	require.NoError(t, l.Close())
}

func TestAsync_WarmupTeardownPerLogger(t *testing.T) {
	var started, stopped atomic.Int32
	cfg := AsyncConfig{
		QueueSize: 4,
		OnStart:   func() { started.Add(1) },
		OnStop:    func() { stopped.Add(1) },
	}

	a, err := NewLogger("a", nil, WithAsync(&cfg))
	require.NoError(t, err)
	b, err := NewLogger("b", nil, WithAsync(&cfg))
	require.NoError(t, err)

	// 刷新保证 worker 已启动
	require.NoError(t, a.Flush())
	require.NoError(t, b.Flush())
	assert.Equal(t, int32(2), started.Load())
	assert.Equal(t, int32(0), stopped.Load())

	require.NoError(t, a.Close())
	require.NoError(t, b.Close())
	assert.Equal(t, int32(2), started.Load())
	assert.Equal(t, int32(2), stopped.Load())
}

// blockingSink 第一条记录阻塞直到 release 关闭
type blockingSink struct {
	memorySink
	started chan struct{}
	release chan struct{}
	first   atomic.Bool
}

func (s *blockingSink) Log(rec xsink.Record) error {
	if !s.first.Swap(true) {
		close(s.started)
		<-s.release
	}
	return s.memorySink.Log(rec)
}

func TestAsync_DiscardWhenFull(t *testing.T) {
	s := &blockingSink{started: make(chan struct{}), release: make(chan struct{})}
	l, err := NewLogger("app", []xsink.Sink{s}, WithPattern("%v"),
		WithAsync(&AsyncConfig{QueueSize: 1, Overflow: xpool.Discard}))
	require.NoError(t, err)

	require.NoError(t, l.Log(LevelInfo, "1"))
	<-s.started
	require.NoError(t, l.Log(LevelInfo, "2")) // 占满队列
	for range 5 {
		assert.NoError(t, l.Log(LevelInfo, "dropped"), "丢弃是静默的")
	}

	close(s.release)
	require.NoError(t, l.Close())
	assert.Equal(t, []string{"1\n", "2\n"}, s.Lines())
}

func TestAsync_FlushInterval(t *testing.T) {
	s := &memorySink{}
	l, err := NewLogger("app", []xsink.Sink{s},
		WithAsync(&AsyncConfig{QueueSize: 4, FlushInterval: 5 * time.Millisecond}))
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return s.Flushes() >= 2 }, time.Second, 5*time.Millisecond)
	require.NoError(t, l.Close())
}

func TestAsync_SinkErrorGoesToHandler(t *testing.T) {
	got := make(chan error, 1)
	l, err := NewLogger("app", []xsink.Sink{&memorySink{err: errors.New("hello")}},
		WithAsync(&AsyncConfig{QueueSize: 4}),
		WithErrorHandler(func(err error) { got <- err }))
	require.NoError(t, err)

	require.NoError(t, l.Log(LevelInfo, "x"))
	select {
	case err := <-got:
		assert.EqualError(t, err, "hello")
	case <-time.After(time.Second):
		t.Fatal("error handler not called")
	}
	require.NoError(t, l.Close())
}

func TestAsync_SinkErrorFallback(t *testing.T) {
	var out syncBuffer
	l, err := NewLogger("app", []xsink.Sink{&memorySink{err: errors.New("hello")}},
		WithAsync(&AsyncConfig{QueueSize: 4}), WithErrorOutput(&out))
	require.NoError(t, err)

	require.NoError(t, l.Log(LevelInfo, "x"), "异步模式只返回入队错误")
	require.NoError(t, l.Flush())
	assert.Contains(t, out.String(), "hello")
	require.NoError(t, l.Close())
}

func TestAsync_Closed(t *testing.T) {
	s := &memorySink{}
	l, err := NewLogger("app", []xsink.Sink{s}, WithAsync(&AsyncConfig{QueueSize: 4}))
	require.NoError(t, err)

	require.NoError(t, l.Log(LevelInfo, "x"))
	require.NoError(t, l.Close())
	assert.Len(t, s.Lines(), 1, "关闭前入队的记录全部写出")
	assert.Equal(t, 1, s.Flushes())

	assert.ErrorIs(t, l.Log(LevelInfo, "y"), ErrClosed)
	assert.ErrorIs(t, l.Flush(), ErrClosed)
}
