// Package xlog 提供按名称管理、按级别过滤、扇出到多个 sink 的 logger。
//
// # 核心概念
//
//   - [Logger]: 具名的扇出点，低于阈值的记录被丢弃，其余按 pattern 格式化一次后
//     依次交给各个 sink（xsink.Sink）
//   - [Store]: logger 注册表，负责默认 pattern、默认错误处理器、同步/异步模式
//   - [Level]: 基于 slog.Level 的级别，在 slog 四级之外增加 TRACE、CRITICAL、OFF
//
// # 级别名
//
// [LookupLevel] 是配置指令使用的宽松查找：只接受 TRACE、DEBUG、INFO、WARNINGS、
// ERROR、FATAL、OFF 这几个精确名称（区分大小写），其余一律回退为 INFO，不报错。
// [ParseLevel] 是严格解析，大小写不敏感，未知名称返回错误，供命令行参数等场景使用。
//
// # 错误处理
//
// sink 返回错误或 panic 时：
//
//   - logger 设置了 [ErrorHandler]：错误原样交给处理器，Log 返回 nil
//   - 否则 [Logger.Log] 返回错误；Info 等便利方法没有返回值，把错误写到
//     错误输出（默认 os.Stderr）
//
// # 异步模式
//
// [Store.SetAsync] 之后创建的 logger 各自拥有一个有界队列和单个 worker（xpool）。
// worker 启动时调用一次 OnStart，logger 被 Drop 时 worker 退出并调用一次 OnStop。
// 队列满时按 [AsyncConfig.Overflow] 阻塞或丢弃。[Logger.Flush] 在异步模式下
// 等待队列中已有的记录全部写出后再刷新 sink。
//
// # Pattern
//
// 支持 %v（消息）%n（logger 名）%l（级别）%L（级别缩写）%Y %m %d %H %M %S
// %e（毫秒）%f（微秒）%c（ctime 格式）%P（进程号）%%。未知标志原样输出。
// 每条记录末尾总是追加换行符。默认 pattern 为 [DefaultPattern]。
//
// # 与 slog 集成
//
// [Logger.Handler] 返回 slog.Handler，可以用 slog.New(l.Handler()) 驱动已配置的 logger。
package xlog
