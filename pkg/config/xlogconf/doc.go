// Package xlogconf 根据 "spdlog." 前缀的指令行配置 logger。
//
// # 指令
//
//	spdlog.<global>=<value>[,[k=v,...]]          全局指令，如 set_async、set_pattern
//	spdlog.sink.<name>=<type>[,[k=v,...]]        sink 指令，type 在 sink 注册表中查找
//	spdlog.logger.<name>=<level>,[sinks=a:b,...] logger 指令，sinks 必填
//
// 不以 "spdlog." 开头的行被忽略，因此指令可以和其他配置写在同一个文件里。
//
// # 执行顺序
//
// [Configuration.Configure] 严格按三个阶段执行：全局指令、sink、logger。
// 每个阶段内按指令首次出现的顺序处理。未注册的全局指令被跳过；
// 未注册的 sink 类型、未声明的 sink、未注册的错误处理器都会中止执行。
//
// # 内置 sink 类型
//
// 每种类型都有 _st（不加锁）和 _mt（互斥锁）两个变体：
//
//   - stdout_sink、stderr_sink、null_sink
//   - simple_file_sink: file_path（必填）、truncate
//   - daily_rotating_file_sink: file_path、max_size（必填），max_files、force_flush
//   - periodically_rotating_file_sink: 另加 rotation_hour、rotation_minute、
//     rotation_period_hours、rotation_period_minutes
//   - rotating_file_sink: 属性同上，文件名不带时间
//   - lumberjack_file_sink: file_path（必填），max_size（MB）、max_backups、max_age_days、compress
//
// max_size 接受纯字节数，也接受 10MB、1GiB 这样的单位后缀（lumberjack 除外）。
//
// # 内置全局指令
//
//   - set_async=<queue_size>,[overflow_policy=block_retry|discard_log_msg,flush_interval_ms=N,
//     worker_warmup_cb=name,worker_teardown_cb=name]
//   - set_pattern=<pattern>
//   - set_error_handler=<name>
//   - set_level=<level>
//
// 自定义 sink 类型、全局指令、回调和错误处理器通过 Register* 函数注册到 [Default]，
// 或者构造独立的 [Registries] 放进 [Env]。
package xlogconf
