package xrotate

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/omeyang/xlogkit/pkg/observability/xsink"
	"github.com/omeyang/xlogkit/pkg/util/xfile"
)

// FileSink 按时间和大小轮转的文件 sink
//
// 所有可变状态（当前大小、下一次轮转时刻、文件句柄）都在构造时注入的
// sync.Locker 保护下修改，"累加大小 → 可能轮转 → 写入"作为一个临界区执行。
type FileSink struct {
	mu      sync.Locker
	cfg     fileConfig
	base    string
	maxSize int64
	metrics *rotateMetrics

	current  string // 活动文件（第 0 代）路径
	file     *os.File
	w        *bufio.Writer
	size     int64
	deadline time.Time
	closed   bool
}

// NewFileSink 创建按时间和大小轮转的文件 sink
//
// 参数:
//   - basePath: 基础路径，活动文件名由 NameFunc 基于它计算
//   - maxSize: 活动文件累计写入超过该字节数时执行编号轮转，必须 > 0
//   - opts: 可选配置项
//
// 构造时打开活动文件（追加模式），并读取一次其现有大小。
func NewFileSink(basePath string, maxSize int64, opts ...FileOption) (*FileSink, error) {
	if basePath == "" {
		return nil, ErrEmptyFilename
	}

	cfg := defaultFileConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := validateFileConfig(&cfg, maxSize); err != nil {
		return nil, err
	}

	safePath, err := xfile.SanitizePath(basePath)
	if err != nil {
		return nil, err
	}

	metrics, err := newRotateMetrics(cfg.meterProvider)
	if err != nil {
		return nil, err
	}

	s := &FileSink{
		mu:      cfg.locker,
		cfg:     cfg,
		base:    safePath,
		maxSize: maxSize,
		metrics: metrics,
	}

	now := cfg.now()
	s.deadline = nextDeadline(now, cfg.hour, cfg.minute, cfg.period)
	s.current = cfg.nameFn(safePath, now)
	if err := s.open(false); err != nil {
		return nil, err
	}

	info, err := s.file.Stat()
	if err != nil {
		_ = s.file.Close()
		return nil, fmt.Errorf("xrotate: stat %s: %w", s.current, err)
	}
	s.size = info.Size()
	return s, nil
}

func validateFileConfig(cfg *fileConfig, maxSize int64) error {
	if maxSize <= 0 {
		return fmt.Errorf("%w: got %d, want > 0", ErrInvalidMaxSize, maxSize)
	}
	if cfg.maxFiles < 0 {
		return fmt.Errorf("%w: got %d, want >= 0", ErrInvalidMaxFiles, cfg.maxFiles)
	}
	if cfg.hour < 0 || cfg.hour > 23 || cfg.minute < 0 || cfg.minute > 59 {
		return fmt.Errorf("%w: %02d:%02d", ErrInvalidRotationTime, cfg.hour, cfg.minute)
	}
	if cfg.period <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidPeriod, cfg.period)
	}
	if cfg.fileMode&^os.FileMode(0o777) != 0 {
		return fmt.Errorf("%w: got %04o, only permission bits (0000~0777) allowed",
			ErrInvalidFileMode, cfg.fileMode)
	}
	return nil
}

// Write 写入一段数据，必要时先轮转
func (s *FileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(p)
}

// Log 写入 rec.Formatted，实现 xsink.Sink
func (s *FileSink) Log(rec xsink.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.write(rec.Formatted)
	return err
}

func (s *FileSink) write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	n := int64(len(p))
	s.size += n

	now := s.cfg.now()
	switch {
	case !now.Before(s.deadline):
		err := s.rotateByTime(now)
		s.metrics.record(triggerTime, err)
		if err != nil {
			return 0, err
		}
		s.size = n
	case s.size > s.maxSize:
		err := s.rotateBySize()
		s.metrics.record(triggerSize, err)
		if err != nil {
			return 0, err
		}
		s.size = n
	}

	// 上一次轮转失败后没有打开的文件，以追加方式恢复
	if s.file == nil {
		if err := s.open(false); err != nil {
			return 0, err
		}
	}

	written, err := s.w.Write(p)
	if err != nil {
		return written, err
	}
	if s.cfg.forceFlush {
		return written, s.w.Flush()
	}
	return written, nil
}

// rotateByTime 切换到按新时间计算的活动文件，不重命名任何文件
func (s *FileSink) rotateByTime(now time.Time) error {
	if err := s.closeFile(); err != nil {
		return err
	}
	s.current = s.cfg.nameFn(s.base, now)
	if err := s.open(false); err != nil {
		return err
	}
	s.deadline = nextDeadline(now, s.cfg.hour, s.cfg.minute, s.cfg.period)
	return nil
}

type renamePair struct {
	src, dst string
}

// rotateBySize 编号轮转
//
// app.log   → app.log.1
// app.log.1 → app.log.2
// app.log.2 → app.log.3
// app.log.3 → 删除（maxFiles=3）
func (s *FileSink) rotateBySize() error {
	if err := s.closeFile(); err != nil {
		return err
	}

	chain := s.generationChain()

	keep := min(len(chain), s.cfg.maxFiles)
	for _, p := range chain[keep:] {
		if err := os.Remove(p.src); err != nil {
			return fmt.Errorf("%w %s: %w", ErrRemoveFailed, p.src, err)
		}
	}

	for i := keep - 1; i >= 0; i-- {
		p := chain[i]
		if !xfile.Exists(p.src) {
			continue
		}
		if err := os.Rename(p.src, p.dst); err != nil {
			return fmt.Errorf("%w %s to %s: %w", ErrRenameFailed, p.src, p.dst, err)
		}
	}

	return s.open(true)
}

// generationChain 从第 0 代开始枚举待重命名的文件对
//
// 第一对固定为 0 → 1；之后只要第 i 代存在且 i 未超过 maxFiles 就继续延伸。
// 超出 maxFiles 的那一对由调用方删除其源文件。
func (s *FileSink) generationChain() []renamePair {
	chain := []renamePair{{generationName(s.current, 0), generationName(s.current, 1)}}
	for i := 1; i <= s.cfg.maxFiles && xfile.Exists(generationName(s.current, i)); i++ {
		chain = append(chain, renamePair{generationName(s.current, i), generationName(s.current, i+1)})
	}
	return chain
}

// Rotate 手动执行一次编号轮转，当前大小归零
func (s *FileSink) Rotate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	err := s.rotateBySize()
	s.metrics.record(triggerManual, err)
	if err != nil {
		return err
	}
	s.size = 0
	return nil
}

// Flush 刷新缓冲区到文件
func (s *FileSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.w == nil {
		return nil
	}
	return s.w.Flush()
}

// Close 刷新并关闭活动文件，重复调用返回 [ErrClosed]
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return s.closeFile()
}

// Filename 返回当前活动文件路径
func (s *FileSink) Filename() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Size 返回当前记录的活动文件大小
func (s *FileSink) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// NextRotation 返回下一次时间轮转的时刻
func (s *FileSink) NextRotation() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deadline
}

func (s *FileSink) open(truncate bool) error {
	if err := xfile.EnsureDir(s.current); err != nil {
		return err
	}
	flag := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if truncate {
		flag |= os.O_TRUNC
	}
	f, err := os.OpenFile(s.current, flag, s.cfg.fileMode) //#nosec G304 -- 路径已经过 SanitizePath
	if err != nil {
		return fmt.Errorf("xrotate: open %s: %w", s.current, err)
	}
	s.file = f
	s.w = bufio.NewWriter(f)
	return nil
}

func (s *FileSink) closeFile() error {
	if s.file == nil {
		return nil
	}
	err := errors.Join(s.w.Flush(), s.file.Close())
	s.file = nil
	s.w = nil
	return err
}
