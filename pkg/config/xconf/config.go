package xconf

import "github.com/knadh/koanf/v2"

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	// FormatLines 逐行的指令文本，每行形如 spdlog.sink.console=stdout_sink_mt。
	FormatLines Format = "lines"

	// FormatYAML YAML 格式，指令嵌套在 spdlog 键下（推荐用于 K8s ConfigMap）。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式，结构同 YAML。
	FormatJSON Format = "json"
)

// DirectiveRoot 结构化文档中存放指令的顶层键。
const DirectiveRoot = "spdlog"

// Config 定义配置接口。
type Config interface {
	// Client 返回底层的 koanf 实例。
	// 三种格式都会加载到 koanf 中，指令键形如 spdlog.sink.<name>。
	Client() *koanf.Koanf

	// Directives 返回文档中的指令行（key=value 形式）。
	//
	// FormatLines 按文件顺序返回以 "spdlog." 开头的行；
	// YAML/JSON 把 spdlog 下的叶子节点按 全局、sink、logger 分组、组内按键名排序返回。
	Directives() []string

	// Unmarshal 将指定路径的配置反序列化到目标结构体。
	// path 为空字符串时反序列化整个配置。
	Unmarshal(path string, target any) error

	// MustUnmarshal 与 Unmarshal 相同，但失败时 panic。
	MustUnmarshal(path string, target any)

	// Reload 重新加载配置文件，并发安全。
	// 从字节数据创建的 Config 返回 [ErrNotFromFile]。
	Reload() error

	// Path 返回配置文件路径，从字节数据创建时为空。
	Path() string

	// Format 返回配置格式。
	Format() Format
}
