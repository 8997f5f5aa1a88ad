package xsink

import "sync"

// 编译时接口检查
var _ sync.Locker = NoopLocker{}

// NoopLocker 不做任何同步的 [sync.Locker]。
//
// 仅用于调用方保证单生产者的场景（*_st sink 类型）。
type NoopLocker struct{}

// Lock 无操作。
func (NoopLocker) Lock() {}

// Unlock 无操作。
func (NoopLocker) Unlock() {}

// NewLocker 按是否需要并发安全返回锁策略。
func NewLocker(threadSafe bool) sync.Locker {
	if threadSafe {
		return &sync.Mutex{}
	}
	return NoopLocker{}
}
