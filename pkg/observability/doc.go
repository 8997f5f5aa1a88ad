// Package observability 提供日志输出相关的子包。
//
// 子包列表：
//   - xlog: 具名 logger、级别过滤、pattern 格式化、同步/异步分发
//   - xsink: sink 接口及流、文件、空 sink 等基础实现
//   - xrotate: 按大小和时间轮转的文件 sink，另有基于 lumberjack 的实现
//
// 设计原则：
//   - logger 只负责过滤和格式化，落盘交给 sink
//   - sink 自带锁策略，单线程场景可以去掉锁开销
//   - 轮转次数和失败次数通过 OpenTelemetry 指标暴露
package observability
