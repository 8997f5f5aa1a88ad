package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut syncBuffer
	code = run(context.Background(), append([]string{"xlogctl"}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCheck(t *testing.T) {
	path := writeConfig(t, "logging.conf", `spdlog.set_pattern=%v
spdlog.sink.null=null_sink_mt
spdlog.sink.err=stderr_sink_st
spdlog.logger.app=WARNINGS,[sinks=null:err]
spdlog.logger.db=BOGUS,[sinks=null]
`)

	code, out, _ := runCLI(t, "check", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "(lines)")
	assert.Contains(t, out, "全局指令: 1")
	assert.Contains(t, out, "  set_pattern=%v")
	assert.Contains(t, out, "sink: 2")
	assert.Contains(t, out, "  err (stderr_sink_st)")
	assert.Contains(t, out, "logger: 2")
	assert.Contains(t, out, "  app WARN -> null,err")
	assert.Contains(t, out, "  db INFO -> null", "未知级别回退为 INFO")
}

func TestCheck_YAML(t *testing.T) {
	path := writeConfig(t, "logging.yaml", `
spdlog:
  sink:
    null: null_sink_st
  logger:
    app: "DEBUG,[sinks=null]"
`)
	code, out, _ := runCLI(t, "check", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "(yaml)")
	assert.Contains(t, out, "  app DEBUG -> null")
}

func TestCheck_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     func(t *testing.T) []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "缺少文件参数",
			args:     func(*testing.T) []string { return []string{"check"} },
			wantCode: 2,
			wantErr:  "参数错误",
		},
		{
			name: "文件不存在",
			args: func(t *testing.T) []string {
				return []string{"check", filepath.Join(t.TempDir(), "missing.conf")}
			},
			wantCode: 1,
			wantErr:  "错误",
		},
		{
			name: "无法识别的指令",
			args: func(t *testing.T) []string {
				return []string{"check", writeConfig(t, "bad.conf", "spdlog.a.b.c=x\n")}
			},
			wantCode: 1,
			wantErr:  "cannot understand",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args(t)...)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestEmit(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")
	path := writeConfig(t, "logging.conf",
		"spdlog.sink.file=simple_file_sink_mt,[file_path="+logPath+"]\n"+
			"spdlog.logger.app=INFO,[sinks=file,pattern=%l %v]\n")

	code, out, stderr := runCLI(t, "emit", "--level", "warn", "--message", "disk almost full", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "已向 1 个 logger 写入 WARN 消息")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, "warning disk almost full\n", string(data))
}

func TestEmit_BelowThreshold(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")
	path := writeConfig(t, "logging.conf",
		"spdlog.sink.file=simple_file_sink_st,[file_path="+logPath+"]\n"+
			"spdlog.logger.app=ERROR,[sinks=file]\n")

	code, _, _ := runCLI(t, "emit", "--level", "info", path)
	require.Equal(t, 0, code)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestEmit_Async(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")
	path := writeConfig(t, "logging.conf",
		"spdlog.set_async=16,[overflow_policy=block_retry]\n"+
			"spdlog.set_pattern=%v\n"+
			"spdlog.sink.file=simple_file_sink_mt,[file_path="+logPath+"]\n"+
			"spdlog.logger.a=TRACE,[sinks=file]\n"+
			"spdlog.logger.b=TRACE,[sinks=file]\n")

	code, out, stderr := runCLI(t, "emit", "-m", "hello", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "已向 2 个 logger")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, "hello\nhello\n", string(data))
}

func TestEmit_Errors(t *testing.T) {
	good := writeConfig(t, "logging.conf", "spdlog.sink.n=null_sink_st\nspdlog.logger.app=INFO,[sinks=n]\n")

	code, _, stderr := runCLI(t, "emit", "--level", "loud", good)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown level")

	missing := writeConfig(t, "missing.conf", "spdlog.logger.app=INFO,[sinks=nowhere]\n")
	code, _, stderr = runCLI(t, "emit", missing)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "nowhere")

	code, _, _ = runCLI(t, "emit", good, good)
	assert.Equal(t, 2, code)
}

func TestWatch_Reconfigures(t *testing.T) {
	path := writeConfig(t, "logging.conf", "spdlog.sink.n=null_sink_st\nspdlog.logger.app=INFO,[sinks=n]\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out, errOut syncBuffer
	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"xlogctl", "watch", path}, &out, &errOut)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "正在监视")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "配置 #1: 1 个 sink，1 个 logger")

	require.NoError(t, os.WriteFile(path, []byte(
		"spdlog.sink.n=null_sink_st\nspdlog.logger.a=INFO,[sinks=n]\nspdlog.logger.b=INFO,[sinks=n]\n"), 0o600))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "配置 #2: 1 个 sink，2 个 logger")
	}, 3*time.Second, 10*time.Millisecond)

	// 错误的配置不替换当前配置
	require.NoError(t, os.WriteFile(path, []byte("spdlog.logger.a=INFO,[sinks=gone]\n"), 0o600))
	require.Eventually(t, func() bool {
		return strings.Contains(errOut.String(), "reconfigure failed")
	}, 3*time.Second, 10*time.Millisecond)
	assert.NotContains(t, out.String(), "配置 #3")

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, 0, code)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not return after cancel")
	}
}

func TestWatch_MissingFile(t *testing.T) {
	code, _, _ := runCLI(t, "watch", filepath.Join(t.TempDir(), "none.conf"))
	assert.Equal(t, 1, code)
}

func TestExitError(t *testing.T) {
	assert.Empty(t, (&exitError{code: 3}).Error())
	assert.Equal(t, "bad", (&usageError{msg: "bad"}).Error())
}
