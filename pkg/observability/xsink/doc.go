// Package xsink 定义日志输出目标（Sink）能力以及几种基础实现。
//
// Sink 只有两个能力：Log 写入一条已格式化的记录，Flush 把缓冲数据刷到底层介质。
// 格式化由上游 logger 完成，sink 直接写 [Record.Formatted]。
//
// # 同步策略
//
// 每个 sink 在构造时注入一个 [sync.Locker]：
//
//   - &sync.Mutex{}: 多个 goroutine 并发写入（默认，对应 *_mt 类型）
//   - [NoopLocker]: 调用方保证单生产者（对应 *_st 类型）
//
// 同一个实现类型，锁策略在构造时选定，不在写入路径上分支。
//
// # 内置实现
//
//   - [Null]: 丢弃所有记录
//   - [NewWriter]、[Stdout]、[Stderr]: 写入 io.Writer
//   - [NewFile]: 写入单个文件，可选截断
//
// 按大小/时间轮转的文件 sink 见 xrotate 包。
package xsink
