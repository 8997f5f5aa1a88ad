package xregistry

import (
	"fmt"
	"slices"
	"sync"
)

// Registry 按名称索引的注册表。
//
// 零值可直接使用。V 通常是函数类型（工厂、回调）。
type Registry[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

// New 创建注册表，可选地预置条目。
func New[V any](initial map[string]V) *Registry[V] {
	r := &Registry[V]{entries: make(map[string]V, len(initial))}
	for name, v := range initial {
		r.entries[name] = v
	}
	return r
}

// Register 注册 name 对应的值，已存在时替换。
func (r *Registry[V]) Register(name string, v V) error {
	if name == "" {
		return ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]V)
	}
	r.entries[name] = v
	return nil
}

// Lookup 查找 name 对应的值。
// 不存在时返回零值和包装了 [ErrNotFound] 的错误。
func (r *Registry[V]) Lookup(name string) (V, error) {
	r.mu.RLock()
	v, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return v, nil
}

// Has 报告 name 是否已注册。
func (r *Registry[V]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// Names 返回已注册名称，按字典序排列。
func (r *Registry[V]) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Len 返回已注册条目数。
func (r *Registry[V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
