package xlogconf

import (
	"fmt"
	"math"
	"time"

	"github.com/omeyang/xlogkit/pkg/config/xdirective"
	"github.com/omeyang/xlogkit/pkg/observability/xrotate"
	"github.com/omeyang/xlogkit/pkg/observability/xsink"
)

// 内置 sink 的属性名
const (
	attrFilePath              = "file_path"
	attrTruncate              = "truncate"
	attrMaxSize               = "max_size"
	attrMaxFiles              = "max_files"
	attrForceFlush            = "force_flush"
	attrRotationHour          = "rotation_hour"
	attrRotationMinute        = "rotation_minute"
	attrRotationPeriodHours   = "rotation_period_hours"
	attrRotationPeriodMinutes = "rotation_period_minutes"
	attrMaxBackups            = "max_backups"
	attrMaxAgeDays            = "max_age_days"
	attrCompress              = "compress"
)

// lumberjack_file_sink 的属性默认值
const (
	defaultLumberjackMaxSize    = 500 << 20
	defaultLumberjackMaxBackups = 7
	defaultLumberjackMaxAgeDays = 30
)

// builtinSinks 内置 sink 类型。_st 后缀不加锁，_mt 后缀使用互斥锁。
func builtinSinks() map[string]SinkFactory {
	m := make(map[string]SinkFactory)
	for _, threadSafe := range []bool{false, true} {
		suffix := "_st"
		if threadSafe {
			suffix = "_mt"
		}
		m["stdout_sink"+suffix] = stdoutSink(threadSafe)
		m["stderr_sink"+suffix] = stderrSink(threadSafe)
		m["null_sink"+suffix] = nullSink
		m["simple_file_sink"+suffix] = simpleFileSink(threadSafe)
		m["daily_rotating_file_sink"+suffix] = dailyRotatingSink(threadSafe)
		m["periodically_rotating_file_sink"+suffix] = periodicRotatingSink(threadSafe, xrotate.DateTimeName)
		m["rotating_file_sink"+suffix] = periodicRotatingSink(threadSafe, xrotate.PlainName)
		m["lumberjack_file_sink"+suffix] = lumberjackSink(threadSafe)
	}
	return m
}

func stdoutSink(threadSafe bool) SinkFactory {
	return func(xdirective.Attributes) (xsink.Sink, error) {
		return xsink.Stdout(xsink.NewLocker(threadSafe)), nil
	}
}

func stderrSink(threadSafe bool) SinkFactory {
	return func(xdirective.Attributes) (xsink.Sink, error) {
		return xsink.Stderr(xsink.NewLocker(threadSafe)), nil
	}
}

func nullSink(xdirective.Attributes) (xsink.Sink, error) {
	return xsink.Null{}, nil
}

func simpleFileSink(threadSafe bool) SinkFactory {
	return func(attrs xdirective.Attributes) (xsink.Sink, error) {
		path, err := attrs.String(attrFilePath)
		if err != nil {
			return nil, err
		}
		truncate, err := attrs.BoolOr(attrTruncate, false)
		if err != nil {
			return nil, err
		}
		f, err := xsink.NewFile(path, truncate, xsink.WithLocker(xsink.NewLocker(threadSafe)))
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

// rotatingAttrs 轮转类 sink 的公共属性
type rotatingAttrs struct {
	path       string
	maxSize    int64
	maxFiles   int
	forceFlush bool
}

func parseRotatingAttrs(attrs xdirective.Attributes) (rotatingAttrs, error) {
	var (
		ra  rotatingAttrs
		err error
	)
	if ra.path, err = attrs.String(attrFilePath); err != nil {
		return ra, err
	}
	if ra.maxSize, err = attrs.Size(attrMaxSize); err != nil {
		return ra, err
	}
	if ra.maxFiles, err = attrs.IntOr(attrMaxFiles, xrotate.DefaultMaxFiles); err != nil {
		return ra, err
	}
	if ra.forceFlush, err = attrs.BoolOr(attrForceFlush, false); err != nil {
		return ra, err
	}
	return ra, nil
}

func (ra rotatingAttrs) newSink(threadSafe bool, opts ...xrotate.FileOption) (xsink.Sink, error) {
	base := []xrotate.FileOption{
		xrotate.WithMaxFiles(ra.maxFiles),
		xrotate.WithForceFlush(ra.forceFlush),
		xrotate.WithLocker(xsink.NewLocker(threadSafe)),
	}
	s, err := xrotate.NewFileSink(ra.path, ra.maxSize, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// dailyRotatingSink 每天 00:00 轮转，文件名只带日期
func dailyRotatingSink(threadSafe bool) SinkFactory {
	return func(attrs xdirective.Attributes) (xsink.Sink, error) {
		ra, err := parseRotatingAttrs(attrs)
		if err != nil {
			return nil, err
		}
		return ra.newSink(threadSafe, xrotate.WithNameFunc(xrotate.DateOnlyName))
	}
}

// periodicRotatingSink 在 rotation_hour:rotation_minute 首次轮转，之后按周期轮转
func periodicRotatingSink(threadSafe bool, name xrotate.NameFunc) SinkFactory {
	return func(attrs xdirective.Attributes) (xsink.Sink, error) {
		ra, err := parseRotatingAttrs(attrs)
		if err != nil {
			return nil, err
		}
		hour, err := attrs.IntOr(attrRotationHour, 0)
		if err != nil {
			return nil, err
		}
		minute, err := attrs.IntOr(attrRotationMinute, 0)
		if err != nil {
			return nil, err
		}
		periodHours, err := attrs.IntOr(attrRotationPeriodHours, 24)
		if err != nil {
			return nil, err
		}
		periodMinutes, err := attrs.IntOr(attrRotationPeriodMinutes, 0)
		if err != nil {
			return nil, err
		}
		period, err := rotationPeriod(periodHours, periodMinutes)
		if err != nil {
			return nil, err
		}
		return ra.newSink(threadSafe,
			xrotate.WithNameFunc(name),
			xrotate.WithRotationTime(hour, minute),
			xrotate.WithRotationPeriod(period),
		)
	}
}

// rotationPeriod 把 rotation_period_hours/minutes 合成为周期，拒绝负数和溢出。
func rotationPeriod(hours, minutes int) (time.Duration, error) {
	if hours < 0 || minutes < 0 {
		return 0, fmt.Errorf("%w: %s=%d, %s=%d must not be negative", xdirective.ErrInvalidAttribute,
			attrRotationPeriodHours, hours, attrRotationPeriodMinutes, minutes)
	}
	if int64(hours) > math.MaxInt64/int64(time.Hour) {
		return 0, fmt.Errorf("%w: %s=%d is out of range", xdirective.ErrInvalidAttribute,
			attrRotationPeriodHours, hours)
	}
	h := time.Duration(hours) * time.Hour
	if int64(minutes) > (math.MaxInt64-int64(h))/int64(time.Minute) {
		return 0, fmt.Errorf("%w: %s=%d is out of range", xdirective.ErrInvalidAttribute,
			attrRotationPeriodMinutes, minutes)
	}
	return h + time.Duration(minutes)*time.Minute, nil
}

// lumberjackSink 按大小轮转，max_size 与其他 sink 一样按字节解析（支持 "100MB"），
// 交给 lumberjack 时向上取整到 MiB
func lumberjackSink(threadSafe bool) SinkFactory {
	return func(attrs xdirective.Attributes) (xsink.Sink, error) {
		var cfg xrotate.LumberjackConfig
		path, err := attrs.String(attrFilePath)
		if err != nil {
			return nil, err
		}
		if cfg.MaxSize, err = attrs.SizeOr(attrMaxSize, defaultLumberjackMaxSize); err != nil {
			return nil, err
		}
		if cfg.MaxSize == 0 {
			return nil, fmt.Errorf("%w: %s must be positive", xdirective.ErrInvalidAttribute, attrMaxSize)
		}
		if cfg.MaxBackups, err = attrs.IntOr(attrMaxBackups, defaultLumberjackMaxBackups); err != nil {
			return nil, err
		}
		if cfg.MaxAgeDays, err = attrs.IntOr(attrMaxAgeDays, defaultLumberjackMaxAgeDays); err != nil {
			return nil, err
		}
		if cfg.Compress, err = attrs.BoolOr(attrCompress, false); err != nil {
			return nil, err
		}
		r, err := xrotate.NewLumberjack(path, cfg)
		if err != nil {
			return nil, err
		}
		return xrotate.NewSink(r, xsink.NewLocker(threadSafe)), nil
	}
}
