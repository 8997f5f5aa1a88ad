// Package xpool 提供通用的泛型 worker pool。
//
// 特性：
//   - 泛型任务类型
//   - 可配置的 worker 数量（[1, 65536]）和队列大小（[1, 16777216]）
//   - 队列满时的两种策略：[Block] 阻塞等待，[Discard] 丢弃并返回 [ErrQueueFull]
//   - worker 生命周期钩子：每个 worker 启动时调用一次 OnStart，退出时调用一次 OnStop
//   - 优雅关闭（处理完队列中的任务后退出），Shutdown(ctx) 支持超时
//   - panic 恢复（单个任务失败不影响 pool，含堆栈日志）
//   - 可注入日志记录器（WithLogger）和名称（WithName）
//
// # 注意事项
//
//   - New 创建后自动启动 worker
//   - Close/Shutdown 不可在 handler 内调用，否则会死锁
//   - panic 的任务不会被重试，仅记录日志后丢弃；日志只记录 task 类型
//   - Block 策略下 Submit 在队列满时阻塞，pool 关闭时返回 [ErrPoolStopped]
//
// # 关闭策略
//
// Close 等价于 Shutdown(context.Background())，无限等待所有任务完成。
// Shutdown(ctx) 在 ctx 到期后立即返回 context 错误，残留 worker 继续在后台
// 处理剩余任务；调用方可通过 Done() 等待它们最终退出。
package xpool
