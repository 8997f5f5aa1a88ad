package xlogconf

import (
	"sync"

	"github.com/omeyang/xlogkit/pkg/config/xdirective"
	"github.com/omeyang/xlogkit/pkg/observability/xlog"
	"github.com/omeyang/xlogkit/pkg/observability/xsink"
	"github.com/omeyang/xlogkit/pkg/util/xregistry"
)

// SinkFactory 根据 sink 指令的属性创建 sink。
//
// 返回的 sink 如果实现了 io.Closer，由 [Result.Close] 负责关闭。
type SinkFactory func(attrs xdirective.Attributes) (xsink.Sink, error)

// GlobalFunc 执行一条全局指令。env 中的字段均已填充默认值。
type GlobalFunc func(env Env, d xdirective.Global) error

// Callback 异步 worker 的启动或退出回调。
type Callback func()

// Registries 执行配置时使用的五个独立注册表。
//
// 各注册表命名空间互不相干，同一名称可以同时出现在不同注册表中。
type Registries struct {
	Sinks         *xregistry.Registry[SinkFactory]
	Globals       *xregistry.Registry[GlobalFunc]
	Warmups       *xregistry.Registry[Callback]
	Teardowns     *xregistry.Registry[Callback]
	ErrorHandlers *xregistry.Registry[xlog.ErrorHandler]
}

// NewRegistries 返回预置内置 sink 类型和全局指令的新注册表集合。
func NewRegistries() *Registries {
	return &Registries{
		Sinks:         xregistry.New(builtinSinks()),
		Globals:       xregistry.New(builtinGlobals()),
		Warmups:       xregistry.New[Callback](nil),
		Teardowns:     xregistry.New[Callback](nil),
		ErrorHandlers: xregistry.New[xlog.ErrorHandler](nil),
	}
}

var defaultRegistries = sync.OnceValue(NewRegistries)

// Default 返回进程级注册表集合，首次调用时创建。
func Default() *Registries { return defaultRegistries() }

// RegisterSink 在默认注册表中注册 sink 类型，已存在时替换。
func RegisterSink(name string, f SinkFactory) error {
	return Default().Sinks.Register(name, f)
}

// RegisterGlobal 在默认注册表中注册全局指令。
func RegisterGlobal(name string, f GlobalFunc) error {
	return Default().Globals.Register(name, f)
}

// RegisterWarmup 在默认注册表中注册 worker 启动回调。
func RegisterWarmup(name string, f Callback) error {
	return Default().Warmups.Register(name, f)
}

// RegisterTeardown 在默认注册表中注册 worker 退出回调。
func RegisterTeardown(name string, f Callback) error {
	return Default().Teardowns.Register(name, f)
}

// RegisterErrorHandler 在默认注册表中注册错误处理器。
func RegisterErrorHandler(name string, h xlog.ErrorHandler) error {
	return Default().ErrorHandlers.Register(name, h)
}
