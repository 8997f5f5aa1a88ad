package xdirective

import (
	"fmt"
	"strings"
)

// Kind 指令类型。
type Kind int

const (
	// KindGlobal 全局函数指令（spdlog.<name>=...）。
	KindGlobal Kind = iota
	// KindSink sink 指令（spdlog.sink.<name>=...）。
	KindSink
	// KindLogger logger 指令（spdlog.logger.<name>=...）。
	KindLogger
)

// String 返回指令类型名。
func (k Kind) String() string {
	switch k {
	case KindGlobal:
		return "global"
	case KindSink:
		return "sink"
	case KindLogger:
		return "logger"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// SinksAttribute logger 指令中列出 sink 名称的属性，冒号分隔。
const SinksAttribute = "sinks"

// Global 全局函数指令。
type Global struct {
	// Value 全局函数的主参数
	Value      string
	Attributes Attributes
}

// Sink sink 指令。
type Sink struct {
	// Type sink 类型名，用于在 sink 注册表中查找工厂
	Type       string
	Attributes Attributes
}

// Logger logger 指令。
type Logger struct {
	// Threshold 级别名，无法识别时由执行阶段回退为 INFO
	Threshold string
	// Sinks 按声明顺序排列的 sink 名称
	Sinks      []string
	Attributes Attributes
}

// ParseGlobal 解析全局函数指令的右值。
func ParseGlobal(raw string) (Global, error) {
	line, err := ParseLine(raw)
	if err != nil {
		return Global{}, err
	}
	return Global{Value: line.Value, Attributes: line.Attributes}, nil
}

// ParseSink 解析 sink 指令的右值。
func ParseSink(raw string) (Sink, error) {
	line, err := ParseLine(raw)
	if err != nil {
		return Sink{}, err
	}
	return Sink{Type: line.Value, Attributes: line.Attributes}, nil
}

// ParseLogger 解析 logger 指令的右值，sinks 属性必填。
func ParseLogger(raw string) (Logger, error) {
	line, err := ParseLine(raw)
	if err != nil {
		return Logger{}, err
	}
	sinks, err := line.Attributes.String(SinksAttribute)
	if err != nil {
		return Logger{}, err
	}
	return Logger{
		Threshold:  line.Value,
		Sinks:      SplitSinkNames(sinks),
		Attributes: line.Attributes,
	}, nil
}

// SplitSinkNames 拆分冒号分隔的 sink 名称列表，空段被忽略。
func SplitSinkNames(s string) []string {
	parts := strings.Split(s, ":")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}
