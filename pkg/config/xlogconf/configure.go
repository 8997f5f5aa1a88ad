package xlogconf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/omeyang/xlogkit/pkg/config/xdirective"
	"github.com/omeyang/xlogkit/pkg/observability/xlog"
	"github.com/omeyang/xlogkit/pkg/observability/xsink"
	"github.com/omeyang/xlogkit/pkg/util/xregistry"
)

// logger 指令的可选属性
const (
	attrPattern         = "pattern"
	attrSetErrorHandler = "set_error_handler"
)

// Env 执行配置时的依赖，零值字段使用进程级默认值。
type Env struct {
	// Registries 为 nil 时使用 [Default]
	Registries *Registries
	// Store 为 nil 时使用 xlog.DefaultStore()
	Store *xlog.Store
	// Logger 记录执行过程的诊断日志，为 nil 时使用 slog.Default()
	Logger *slog.Logger
}

func (e Env) withDefaults() Env {
	if e.Registries == nil {
		e.Registries = Default()
	}
	if e.Store == nil {
		e.Store = xlog.DefaultStore()
	}
	if e.Logger == nil {
		e.Logger = slog.Default()
	}
	return e
}

// Result 一次执行创建的 sink 和 logger。
type Result struct {
	store     *xlog.Store
	sinkNames []string
	sinks     map[string]xsink.Sink
	loggers   []*xlog.Logger
}

// Sink 按名称返回创建的 sink。
func (r *Result) Sink(name string) (xsink.Sink, bool) {
	s, ok := r.sinks[name]
	return s, ok
}

// SinkNames 按创建顺序返回 sink 名称。
func (r *Result) SinkNames() []string {
	return append([]string(nil), r.sinkNames...)
}

// Loggers 按创建顺序返回 logger。
func (r *Result) Loggers() []*xlog.Logger {
	return append([]*xlog.Logger(nil), r.loggers...)
}

// Close 从 Store 中注销本次创建的 logger，然后关闭实现了 io.Closer 的 sink。
func (r *Result) Close() error {
	var errs []error
	for _, l := range r.loggers {
		if err := r.store.Drop(l.Name()); err != nil && !errors.Is(err, xlog.ErrLoggerNotFound) {
			errs = append(errs, err)
		}
	}
	for _, name := range r.sinkNames {
		if c, ok := r.sinks[name].(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("sink %q: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Configure 依次执行全局指令、创建 sink、创建 logger。
//
// 未注册的全局指令被跳过。出错时立即停止，已执行的副作用不回滚：
// 返回的 Result 包含出错前已创建的 sink 和 logger，调用方可以用 Close 清理。
func (c *Configuration) Configure(env Env) (*Result, error) {
	c.init()
	env = env.withDefaults()
	res := &Result{store: env.Store, sinks: make(map[string]xsink.Sink)}

	for p := c.globals.Oldest(); p != nil; p = p.Next() {
		fn, err := env.Registries.Globals.Lookup(p.Key)
		if err != nil || fn == nil {
			env.Logger.Debug("xlogconf: skipping unknown global directive", "name", p.Key)
			continue
		}
		if err := fn(env, p.Value); err != nil {
			return res, fmt.Errorf("global %q: %w", p.Key, err)
		}
		env.Logger.Debug("xlogconf: global directive applied", "name", p.Key)
	}

	for p := c.sinks.Oldest(); p != nil; p = p.Next() {
		s, err := makeSink(env.Registries, p.Key, p.Value)
		if err != nil {
			return res, err
		}
		res.sinkNames = append(res.sinkNames, p.Key)
		res.sinks[p.Key] = s
		env.Logger.Debug("xlogconf: sink created", "name", p.Key, "type", p.Value.Type)
	}

	for p := c.loggers.Oldest(); p != nil; p = p.Next() {
		l, err := makeLogger(env, res.sinks, p.Key, p.Value)
		if err != nil {
			return res, err
		}
		res.loggers = append(res.loggers, l)
		env.Logger.Debug("xlogconf: logger created", "name", p.Key, "level", l.Level().String())
	}
	return res, nil
}

func makeSink(r *Registries, name string, d xdirective.Sink) (xsink.Sink, error) {
	factory, err := r.Sinks.Lookup(d.Type)
	if errors.Is(err, xregistry.ErrNotFound) || (err == nil && factory == nil) {
		return nil, fmt.Errorf("%w: type %q for sink %q", ErrUnknownSinkType, d.Type, name)
	}
	if err != nil {
		return nil, err
	}

	s, err := factory(d.Attributes)
	if err != nil {
		return nil, fmt.Errorf("sink %q: %w", name, err)
	}
	if s == nil {
		return nil, fmt.Errorf("sink %q: %w", name, xlog.ErrNilSink)
	}
	return s, nil
}

func makeLogger(env Env, sinks map[string]xsink.Sink, name string, d xdirective.Logger) (*xlog.Logger, error) {
	resolved := make([]xsink.Sink, 0, len(d.Sinks))
	for _, sn := range d.Sinks {
		s, ok := sinks[sn]
		if !ok {
			return nil, fmt.Errorf("%w: logger %q references undefined sink %q", ErrSinkNotFound, name, sn)
		}
		resolved = append(resolved, s)
	}

	opts := []xlog.Option{xlog.WithLevel(xlog.LookupLevel(d.Threshold))}
	if p, ok := nonEmpty(d.Attributes, attrPattern); ok {
		opts = append(opts, xlog.WithPattern(p))
	}
	if hn, ok := nonEmpty(d.Attributes, attrSetErrorHandler); ok {
		h, err := lookupErrorHandler(env.Registries, hn)
		if err != nil {
			return nil, fmt.Errorf("logger %q: %w", name, err)
		}
		opts = append(opts, xlog.WithErrorHandler(h))
	}

	l, err := env.Store.Create(name, resolved, opts...)
	if err != nil {
		return nil, fmt.Errorf("logger %q: %w", name, err)
	}
	return l, nil
}
