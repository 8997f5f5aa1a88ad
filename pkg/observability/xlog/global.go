package xlog

import "sync"

var defaultStore = sync.OnceValue(func() *Store { return NewStore() })

// DefaultStore 返回进程级 Store，首次调用时创建
func DefaultStore() *Store { return defaultStore() }

// Get 在默认 Store 中查找 logger
func Get(name string) (*Logger, bool) { return DefaultStore().Get(name) }

// Drop 从默认 Store 注销并关闭 logger
func Drop(name string) error { return DefaultStore().Drop(name) }

// DropAll 注销并关闭默认 Store 中的所有 logger
func DropAll() error { return DefaultStore().DropAll() }
