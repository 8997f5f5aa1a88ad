package xlog

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
)

// Level 日志级别，与 slog.Level 兼容
type Level slog.Level

// 日志级别常量，DEBUG/INFO/WARN/ERROR 与 slog 保持一致
const (
	LevelTrace    = Level(-8)
	LevelDebug    = Level(slog.LevelDebug)
	LevelInfo     = Level(slog.LevelInfo)
	LevelWarn     = Level(slog.LevelWarn)
	LevelError    = Level(slog.LevelError)
	LevelCritical = Level(12)
	// LevelOff 作为阈值时关闭所有输出
	LevelOff = Level(math.MaxInt32)
)

// String 返回级别的字符串表示
//
// 标准级别返回大写名称，非标准级别委托给 slog.Level.String()（如 "INFO+2"）。
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	case LevelOff:
		return "OFF"
	default:
		return slog.Level(l).String()
	}
}

// name 返回 %l 使用的小写名称
func (l Level) name() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warning"
	case LevelError:
		return "error"
	case LevelCritical:
		return "critical"
	case LevelOff:
		return "off"
	default:
		return strings.ToLower(slog.Level(l).String())
	}
}

// shortName 返回 %L 使用的单字母缩写
func (l Level) shortName() string {
	switch l {
	case LevelTrace:
		return "T"
	case LevelDebug:
		return "D"
	case LevelInfo:
		return "I"
	case LevelWarn:
		return "W"
	case LevelError:
		return "E"
	case LevelCritical:
		return "C"
	case LevelOff:
		return "O"
	default:
		return l.String()[:1]
	}
}

// MarshalText 实现 encoding.TextMarshaler 接口
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// directiveLevels 配置指令可用的级别名（区分大小写）
var directiveLevels = map[string]Level{
	"TRACE":    LevelTrace,
	"DEBUG":    LevelDebug,
	"INFO":     LevelInfo,
	"WARNINGS": LevelWarn,
	"ERROR":    LevelError,
	"FATAL":    LevelCritical,
	"OFF":      LevelOff,
}

// LookupLevel 按配置指令的级别名查找级别
//
// 只识别 TRACE、DEBUG、INFO、WARNINGS、ERROR、FATAL、OFF（精确匹配），
// 其他任何输入都返回 LevelInfo。
//
// 设计决策: 未知级别名不报错，使旧版本程序能读取带新级别名的配置。
func LookupLevel(name string) Level {
	if l, ok := directiveLevels[name]; ok {
		return l
	}
	return LevelInfo
}

// ParseLevel 解析字符串为日志级别
//
// 支持 trace/debug/info/warn/warning/warnings/error/err/critical/fatal/off
// （大小写不敏感，自动 TrimSpace）。
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning", "warnings":
		return LevelWarn, nil
	case "error", "err":
		return LevelError, nil
	case "critical", "fatal":
		return LevelCritical, nil
	case "off":
		return LevelOff, nil
	default:
		return LevelInfo, fmt.Errorf("xlog: unknown level %q", s)
	}
}

// slogLevel 转换为 slog.Level，供 sink 记录使用
func slogLevel(l Level) slog.Level { return slog.Level(l) }
