package xlogconf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/omeyang/xlogkit/pkg/config/xdirective"
	"github.com/omeyang/xlogkit/pkg/observability/xlog"
	"github.com/omeyang/xlogkit/pkg/util/xpool"
	"github.com/omeyang/xlogkit/pkg/util/xregistry"
)

// set_async 的属性名
const (
	attrOverflowPolicy   = "overflow_policy"
	attrFlushIntervalMS  = "flush_interval_ms"
	attrWorkerWarmupCB   = "worker_warmup_cb"
	attrWorkerTeardownCB = "worker_teardown_cb"
)

// overflowPolicies 指令中的溢出策略名
var overflowPolicies = map[string]xpool.Overflow{
	"block_retry":     xpool.Block,
	"discard_log_msg": xpool.Discard,
}

func builtinGlobals() map[string]GlobalFunc {
	return map[string]GlobalFunc{
		"set_async":         setAsync,
		"set_pattern":       setPattern,
		"set_error_handler": setErrorHandler,
		"set_level":         setLevel,
	}
}

// setAsync 处理 set_async=<queue_size>,[overflow_policy=...,flush_interval_ms=...,
// worker_warmup_cb=...,worker_teardown_cb=...]
func setAsync(env Env, d xdirective.Global) error {
	size, err := strconv.Atoi(strings.TrimSpace(d.Value))
	if err != nil {
		return fmt.Errorf("%w: set_async queue size %q is not an integer", ErrInvalidGlobal, d.Value)
	}

	cfg := xlog.AsyncConfig{QueueSize: size, Overflow: xpool.Block}

	if name, ok := nonEmpty(d.Attributes, attrOverflowPolicy); ok {
		policy, ok := overflowPolicies[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownOverflowPolicy, name)
		}
		cfg.Overflow = policy
	}

	if v, ok := nonEmpty(d.Attributes, attrFlushIntervalMS); ok {
		ms, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a valid millisecond count", ErrInvalidGlobal, attrFlushIntervalMS, v)
		}
		cfg.FlushInterval = time.Duration(ms) * time.Millisecond
	}

	// 未注册的回调名视为未设置
	if name, ok := nonEmpty(d.Attributes, attrWorkerWarmupCB); ok {
		cfg.OnStart = lookupCallback(env.Registries.Warmups, name)
	}
	if name, ok := nonEmpty(d.Attributes, attrWorkerTeardownCB); ok {
		cfg.OnStop = lookupCallback(env.Registries.Teardowns, name)
	}

	return env.Store.SetAsync(cfg)
}

func lookupCallback(r *xregistry.Registry[Callback], name string) func() {
	cb, err := r.Lookup(name)
	if err != nil || cb == nil {
		return nil
	}
	return cb
}

// setPattern 处理 set_pattern=<pattern>
func setPattern(env Env, d xdirective.Global) error {
	env.Store.SetPattern(d.Value)
	return nil
}

// setErrorHandler 处理 set_error_handler=<name>
func setErrorHandler(env Env, d xdirective.Global) error {
	h, err := lookupErrorHandler(env.Registries, d.Value)
	if err != nil {
		return err
	}
	env.Store.SetErrorHandler(h)
	return nil
}

// setLevel 处理 set_level=<level>，级别名规则同 logger 指令
func setLevel(env Env, d xdirective.Global) error {
	env.Store.SetLevel(xlog.LookupLevel(d.Value))
	return nil
}

func lookupErrorHandler(r *Registries, name string) (xlog.ErrorHandler, error) {
	h, err := r.ErrorHandlers.Lookup(name)
	if errors.Is(err, xregistry.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrErrorHandlerNotFound, name)
	}
	return h, err
}

// nonEmpty 返回存在且非空的属性值
func nonEmpty(attrs xdirective.Attributes, name string) (string, bool) {
	v, ok := attrs.Lookup(name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
