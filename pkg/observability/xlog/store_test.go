package xlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xlogkit/pkg/observability/xsink"
)

func TestStore_CreateGet(t *testing.T) {
	st := NewStore()
	l, err := st.Create("b", nil)
	require.NoError(t, err)
	_, err = st.Create("a", nil)
	require.NoError(t, err)

	got, ok := st.Get("b")
	require.True(t, ok)
	assert.Same(t, l, got)

	_, ok = st.Get("missing")
	assert.False(t, ok)

	_, err = st.Create("b", nil)
	assert.ErrorIs(t, err, ErrLoggerExists)

	_, err = st.Create("", nil)
	assert.ErrorIs(t, err, ErrEmptyName)

	assert.Equal(t, []string{"a", "b"}, st.Names())
	assert.Equal(t, 2, st.Len())
	require.NoError(t, st.DropAll())
}

func TestStore_Drop(t *testing.T) {
	st := NewStore()
	l, err := st.Create("app", nil)
	require.NoError(t, err)

	require.NoError(t, st.Drop("app"))
	assert.ErrorIs(t, l.Log(LevelError, "x"), ErrClosed)
	assert.ErrorIs(t, st.Drop("app"), ErrLoggerNotFound)

	// 删除后可以重新创建同名 logger
	_, err = st.Create("app", nil)
	require.NoError(t, err)
	require.NoError(t, st.DropAll())
	assert.Zero(t, st.Len())
}

func TestStore_Defaults(t *testing.T) {
	var out syncBuffer
	st := NewStore(WithErrorOutput(&out))

	early := &memorySink{}
	_, err := st.Create("early", []xsink.Sink{early})
	require.NoError(t, err)

	st.SetPattern("%n:%v")
	st.SetLevel(LevelWarn)

	late := &memorySink{}
	l, err := st.Create("late", []xsink.Sink{late})
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, l.Level())
	assert.Equal(t, "%n:%v", l.Pattern())

	st.ApplyAll(func(l *Logger) {
		l.Info("dropped")
		l.Warn("kept")
	})
	assert.Equal(t, []string{"early:kept\n"}, early.Lines())
	assert.Equal(t, []string{"late:kept\n"}, late.Lines())

	// 显式选项优先于 Store 默认设置
	l, err = st.Create("explicit", nil, WithLevel(LevelTrace), WithPattern("%v"))
	require.NoError(t, err)
	assert.Equal(t, LevelTrace, l.Level())
	assert.Equal(t, "%v", l.Pattern())

	require.NoError(t, st.DropAll())
	assert.Empty(t, out.String())
}

func TestStore_SetErrorHandler(t *testing.T) {
	st := NewStore()
	boom := errors.New("boom")
	existing, err := st.Create("existing", []xsink.Sink{&memorySink{err: boom}})
	require.NoError(t, err)

	var got []error
	st.SetErrorHandler(func(err error) { got = append(got, err) })

	created, err := st.Create("created", []xsink.Sink{&memorySink{err: boom}})
	require.NoError(t, err)

	require.NoError(t, existing.Log(LevelInfo, "x"))
	require.NoError(t, created.Log(LevelInfo, "x"))
	assert.Equal(t, []error{boom, boom}, got)
	require.NoError(t, st.DropAll())
}

func TestStore_AsyncMode(t *testing.T) {
	st := NewStore()

	assert.ErrorIs(t, st.SetAsync(AsyncConfig{}), ErrInvalidQueueSize)
	_, ok := st.AsyncConfig()
	assert.False(t, ok)

	require.NoError(t, st.SetAsync(AsyncConfig{QueueSize: 16}))
	cfg, ok := st.AsyncConfig()
	require.True(t, ok)
	assert.Equal(t, 16, cfg.QueueSize)

	a, err := st.Create("async", nil)
	require.NoError(t, err)
	assert.True(t, a.Async())

	st.SetSync()
	s, err := st.Create("sync", nil)
	require.NoError(t, err)
	assert.False(t, s.Async())

	require.NoError(t, st.DropAll())
}

func TestStore_FlushAll(t *testing.T) {
	st := NewStore()
	sinks := []*memorySink{{}, {}, {}}
	for i, s := range sinks {
		_, err := st.Create(string(rune('a'+i)), []xsink.Sink{s})
		require.NoError(t, err)
	}

	require.NoError(t, st.FlushAll(context.Background()))
	for _, s := range sinks {
		assert.Equal(t, 1, s.Flushes())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, st.FlushAll(ctx), context.Canceled)
	for _, s := range sinks {
		assert.Equal(t, 1, s.Flushes(), "已取消时不刷新")
	}

	require.NoError(t, st.DropAll())
}

func TestStore_ApplyAllOrder(t *testing.T) {
	st := NewStore()
	for _, name := range []string{"c", "a", "b"} {
		_, err := st.Create(name, nil)
		require.NoError(t, err)
	}

	var order []string
	st.ApplyAll(func(l *Logger) {
		order = append(order, l.Name())
		// fn 在锁外执行
		_, _ = st.Get(l.Name())
	})
	assert.Equal(t, []string{"a", "b", "c"}, order)
	require.NoError(t, st.DropAll())
}

func TestDefaultStore(t *testing.T) {
	assert.Same(t, DefaultStore(), DefaultStore())

	l, err := DefaultStore().Create("xlog-default-store-test", nil)
	require.NoError(t, err)

	got, ok := Get("xlog-default-store-test")
	require.True(t, ok)
	assert.Same(t, l, got)

	require.NoError(t, Drop("xlog-default-store-test"))
	_, ok = Get("xlog-default-store-test")
	assert.False(t, ok)
	require.NoError(t, DropAll())
}
