// Package xregistry 提供按名称索引的并发安全注册表。
//
// Registry 是一个泛型的 name → value 映射，用于在运行时按字符串类型名
// 查找工厂函数、回调等可调用对象，使调用方无需在编译期依赖具体实现。
//
// # 语义
//
//   - Register: 插入或替换（后注册覆盖先注册），不提供删除操作
//   - Lookup: 名称不存在时返回 [ErrNotFound]
//   - 零值可用：首次 Register 时惰性创建内部 map
//
// # 并发安全
//
// 所有方法都是并发安全的，内部使用 sync.RWMutex。
// 每个 Registry 持有独立的锁，不同注册表之间互不影响。
package xregistry
