package xconf

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// delim koanf 键分隔符，与指令键的分隔符一致
const delim = "."

const directivePrefix = DirectiveRoot + delim

// snapshot 一次加载的结果，Reload 时整体替换
type snapshot struct {
	k          *koanf.Koanf
	directives []string
}

// koanfConfig 是 Config 接口的 koanf 实现。
type koanfConfig struct {
	path    string
	format  Format
	opts    *Options
	isBytes bool

	reloadMu sync.Mutex // 串行化 Reload，防止旧内容覆盖新内容
	mu       sync.RWMutex
	cur      snapshot
}

// New 从文件路径创建配置实例。
//
// 格式按扩展名检测：.yaml/.yml 为 YAML，.json 为 JSON，其他为逐行指令。
func New(path string, opts ...Option) (Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	format := detectFormat(path)
	snap, err := load(data, format)
	if err != nil {
		return nil, err
	}

	return &koanfConfig{
		path:   path,
		format: format,
		opts:   applyOptions(opts),
		cur:    snap,
	}, nil
}

// NewFromBytes 从字节数据创建配置实例，需要显式指定格式。
//
// 空数据创建空配置，与读取空文件的行为一致。
func NewFromBytes(data []byte, format Format, opts ...Option) (Config, error) {
	if !isValidFormat(format) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	snap, err := load(data, format)
	if err != nil {
		return nil, err
	}

	return &koanfConfig{
		format:  format,
		opts:    applyOptions(opts),
		isBytes: true,
		cur:     snap,
	}, nil
}

func applyOptions(opts []Option) *Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (c *koanfConfig) Client() *koanf.Koanf {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cur.k
}

func (c *koanfConfig) Directives() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.cur.directives)
}

func (c *koanfConfig) Unmarshal(path string, target any) error {
	k := c.Client()
	if err := k.UnmarshalWithConf(path, target, koanf.UnmarshalConf{Tag: c.opts.Tag}); err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return nil
}

func (c *koanfConfig) MustUnmarshal(path string, target any) {
	if err := c.Unmarshal(path, target); err != nil {
		panic(err)
	}
}

// Reload 重新读取文件，解析失败时保留旧内容。
func (c *koanfConfig) Reload() error {
	if c.isBytes {
		return ErrNotFromFile
	}

	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	snap, err := load(data, c.format)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.cur = snap
	c.mu.Unlock()
	return nil
}

func (c *koanfConfig) Path() string { return c.path }

func (c *koanfConfig) Format() Format { return c.format }

// detectFormat 根据文件扩展名检测配置格式
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatLines
	}
}

func isValidFormat(format Format) bool {
	switch format {
	case FormatLines, FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

func load(data []byte, format Format) (snapshot, error) {
	k := koanf.New(delim)
	switch format {
	case FormatLines:
		directives, err := scanDirectives(data)
		if err != nil {
			return snapshot{}, err
		}
		for _, d := range directives {
			key, value, _ := strings.Cut(d, "=")
			if err := k.Set(key, value); err != nil {
				return snapshot{}, fmt.Errorf("%w: %s: %w", ErrParseFailed, key, err)
			}
		}
		return snapshot{k: k, directives: directives}, nil

	case FormatYAML, FormatJSON:
		if len(data) > 0 {
			var parser koanf.Parser = yaml.Parser()
			if format == FormatJSON {
				parser = json.Parser()
			}
			if err := k.Load(rawbytes.Provider(data), parser); err != nil {
				return snapshot{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
			}
		}
		return snapshot{k: k, directives: flattenDirectives(k)}, nil

	default:
		return snapshot{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// scanDirectives 逐行挑出以 "spdlog." 开头且包含 '=' 的行
func scanDirectives(data []byte) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, directivePrefix) && strings.Contains(line, "=") {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return out, nil
}

// flattenDirectives 把 spdlog 下的叶子节点还原成 key=value 行
func flattenDirectives(k *koanf.Koanf) []string {
	var globals, sinks, loggers []string
	for _, key := range k.Keys() {
		if !strings.HasPrefix(key, directivePrefix) {
			continue
		}
		line := key + "=" + k.String(key)
		switch {
		case strings.HasPrefix(key, directivePrefix+"sink"+delim):
			sinks = append(sinks, line)
		case strings.HasPrefix(key, directivePrefix+"logger"+delim):
			loggers = append(loggers, line)
		default:
			globals = append(globals, line)
		}
	}
	// Keys 已排序
	return slices.Concat(globals, sinks, loggers)
}
