package xlogconf

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/omeyang/xlogkit/pkg/config/xdirective"
)

// Prefix 配置行的保留前缀，不以此开头的行被忽略。
const Prefix = "spdlog."

// maxLineSize 单行最大长度
const maxLineSize = 1 << 20

// Configuration 按名称收集的全局、sink 和 logger 指令。
//
// 三类指令各自保持插入顺序；同名指令覆盖旧值但保留原位置。
// 零值可直接使用。Configuration 不是并发安全的。
type Configuration struct {
	globals *orderedmap.OrderedMap[string, xdirective.Global]
	sinks   *orderedmap.OrderedMap[string, xdirective.Sink]
	loggers *orderedmap.OrderedMap[string, xdirective.Logger]
}

// New 创建空配置。
func New() *Configuration {
	c := &Configuration{}
	c.init()
	return c
}

// init 按需创建三张有序表，使零值 Configuration 可用
func (c *Configuration) init() {
	if c.globals == nil {
		c.globals = orderedmap.New[string, xdirective.Global]()
	}
	if c.sinks == nil {
		c.sinks = orderedmap.New[string, xdirective.Sink]()
	}
	if c.loggers == nil {
		c.loggers = orderedmap.New[string, xdirective.Logger]()
	}
}

// AddGlobal 添加全局指令，同名时覆盖。
func (c *Configuration) AddGlobal(name string, d xdirective.Global) {
	c.init()
	c.globals.Set(name, d)
}

// AddSink 添加 sink 指令，同名时覆盖。
func (c *Configuration) AddSink(name string, d xdirective.Sink) {
	c.init()
	c.sinks.Set(name, d)
}

// AddLogger 添加 logger 指令，同名时覆盖。
func (c *Configuration) AddLogger(name string, d xdirective.Logger) {
	c.init()
	c.loggers.Set(name, d)
}

// Global 按名称查找全局指令。
func (c *Configuration) Global(name string) (xdirective.Global, bool) {
	c.init()
	return c.globals.Get(name)
}

// Sink 按名称查找 sink 指令。
func (c *Configuration) Sink(name string) (xdirective.Sink, bool) {
	c.init()
	return c.sinks.Get(name)
}

// Logger 按名称查找 logger 指令。
func (c *Configuration) Logger(name string) (xdirective.Logger, bool) {
	c.init()
	return c.loggers.Get(name)
}

// GlobalNames 按插入顺序返回全局指令名。
func (c *Configuration) GlobalNames() []string {
	c.init()
	return keys(c.globals)
}

// SinkNames 按插入顺序返回 sink 指令名。
func (c *Configuration) SinkNames() []string {
	c.init()
	return keys(c.sinks)
}

// LoggerNames 按插入顺序返回 logger 指令名。
func (c *Configuration) LoggerNames() []string {
	c.init()
	return keys(c.loggers)
}

func keys[V any](m *orderedmap.OrderedMap[string, V]) []string {
	out := make([]string, 0, m.Len())
	for p := m.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Create 逐行读取 r 并解析配置。
//
// 只处理以 [Prefix] 开头的行。行在第一个 '=' 处分成键和值，没有 '=' 的行被忽略。
// 键去掉前缀后按 '.' 切分：一段为全局指令，"sink.<name>" 和 "logger.<name>"
// 分别为 sink 和 logger 指令，其他形式返回 [ErrUnknownDirective]。
// 任何一行出错都会中止解析。
func Create(r io.Reader) (*Configuration, error) {
	c := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		if err := c.addLine(sc.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("xlogconf: read configuration: %w", err)
	}
	return c, nil
}

// CreateFromLines 与 [Create] 相同，但直接接受行列表。
func CreateFromLines(lines []string) (*Configuration, error) {
	c := New()
	for i, line := range lines {
		if err := c.addLine(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return c, nil
}

func (c *Configuration) addLine(line string) error {
	line = strings.TrimSuffix(line, "\r")
	if !strings.HasPrefix(line, Prefix) {
		return nil
	}
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return nil
	}

	segments := strings.Split(key, ".")
	switch {
	case len(segments) == 2:
		d, err := xdirective.ParseGlobal(value)
		if err != nil {
			return fmt.Errorf("%s: %w", line, err)
		}
		c.AddGlobal(segments[1], d)
	case len(segments) == 3 && segments[1] == "sink":
		d, err := xdirective.ParseSink(value)
		if err != nil {
			return fmt.Errorf("%s: %w", line, err)
		}
		c.AddSink(segments[2], d)
	case len(segments) == 3 && segments[1] == "logger":
		d, err := xdirective.ParseLogger(value)
		if err != nil {
			return fmt.Errorf("%s: %w", line, err)
		}
		c.AddLogger(segments[2], d)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownDirective, line)
	}
	return nil
}
