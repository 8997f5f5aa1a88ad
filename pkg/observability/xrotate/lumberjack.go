package xrotate

import (
	"fmt"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omeyang/xlogkit/pkg/util/xfile"
)

const mib = 1 << 20

var _ Rotator = (*lumberjack.Logger)(nil)

// LumberjackConfig 按大小轮转的参数，零值字段沿用 lumberjack 的默认值
// （100 MB，不限备份数量和天数）。
type LumberjackConfig struct {
	// MaxSize 单个文件的字节上限，按 MiB 向上取整
	MaxSize    int64
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewLumberjack 返回基于 lumberjack 的按大小轮转器，经 [NewSink] 接入 sink 链。
//
// 与 [FileSink] 相比，备份文件名带时间戳，支持压缩和按天清理，
// 但不支持按时刻轮转。父目录不存在时自动创建。
func NewLumberjack(filename string, cfg LumberjackConfig) (Rotator, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}
	switch {
	case cfg.MaxSize < 0:
		return nil, fmt.Errorf("%w: got %d, want >= 0", ErrInvalidMaxSize, cfg.MaxSize)
	case cfg.MaxBackups < 0:
		return nil, fmt.Errorf("%w: got %d, want >= 0", ErrInvalidMaxFiles, cfg.MaxBackups)
	case cfg.MaxAgeDays < 0:
		return nil, fmt.Errorf("%w: got %d, want >= 0", ErrInvalidMaxAge, cfg.MaxAgeDays)
	}

	path, err := xfile.SanitizePath(filename)
	if err != nil {
		return nil, err
	}
	if err := xfile.EnsureDir(path); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    sizeInMiB(cfg.MaxSize),
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}, nil
}

func sizeInMiB(n int64) int {
	mb := n / mib
	if n%mib != 0 {
		mb++
	}
	return int(mb)
}
