package xrotate

import (
	"math"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// FileSink 默认配置值
const (
	// DefaultMaxFiles 默认不限制备份数量
	DefaultMaxFiles = math.MaxInt

	// DefaultRotationPeriod 默认轮转周期
	DefaultRotationPeriod = 24 * time.Hour

	// DefaultFileMode 默认文件权限
	DefaultFileMode os.FileMode = 0o644
)

type fileConfig struct {
	maxFiles      int
	hour, minute  int
	period        time.Duration
	nameFn        NameFunc
	locker        sync.Locker
	forceFlush    bool
	now           func() time.Time
	meterProvider metric.MeterProvider
	fileMode      os.FileMode
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		maxFiles: DefaultMaxFiles,
		period:   DefaultRotationPeriod,
		nameFn:   DateOnlyName,
		locker:   &sync.Mutex{},
		now:      time.Now,
		fileMode: DefaultFileMode,
	}
}

// FileOption FileSink 配置选项函数
type FileOption func(*fileConfig)

// WithMaxFiles 设置保留的编号备份数量，0 表示不保留备份
func WithMaxFiles(n int) FileOption {
	return func(c *fileConfig) {
		c.maxFiles = n
	}
}

// WithRotationTime 设置每天的轮转时刻（本地时间）
func WithRotationTime(hour, minute int) FileOption {
	return func(c *fileConfig) {
		c.hour = hour
		c.minute = minute
	}
}

// WithRotationPeriod 设置相邻两次时间轮转的间隔
func WithRotationPeriod(d time.Duration) FileOption {
	return func(c *fileConfig) {
		c.period = d
	}
}

// WithNameFunc 设置活动文件名计算函数，nil 时保持默认 [DateOnlyName]
func WithNameFunc(fn NameFunc) FileOption {
	return func(c *fileConfig) {
		if fn != nil {
			c.nameFn = fn
		}
	}
}

// WithLocker 设置锁策略
//
// 单生产者场景可传 [xsink.NoopLocker] 省去加锁开销，nil 时保持默认互斥锁。
func WithLocker(l sync.Locker) FileOption {
	return func(c *fileConfig) {
		if l != nil {
			c.locker = l
		}
	}
}

// WithForceFlush 设置每次写入后是否立即刷新到文件
func WithForceFlush(b bool) FileOption {
	return func(c *fileConfig) {
		c.forceFlush = b
	}
}

// WithClock 替换时间来源，仅用于测试
func WithClock(now func() time.Time) FileOption {
	return func(c *fileConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMeterProvider 设置上报轮转指标的 MeterProvider，nil 时使用全局 provider
func WithMeterProvider(mp metric.MeterProvider) FileOption {
	return func(c *fileConfig) {
		if mp != nil {
			c.meterProvider = mp
		}
	}
}

// WithFileMode 设置新建日志文件的权限，0 时保持默认 0644
func WithFileMode(mode os.FileMode) FileOption {
	return func(c *fileConfig) {
		if mode != 0 {
			c.fileMode = mode
		}
	}
}
