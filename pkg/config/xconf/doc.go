// Package xconf 加载 logger 指令文档，基于 koanf 实现，支持热重载。
//
// # 支持的格式
//
//   - 逐行指令（默认，扩展名不是 .yaml/.yml/.json 的文件）：
//
//	spdlog.sink.console=stdout_sink_mt
//	spdlog.logger.app=INFO,[sinks=console]
//
//   - YAML / JSON：指令嵌套在 spdlog 键下，叶子节点按 "." 拼接还原成指令行：
//
//	spdlog:
//	  set_pattern: "%v"
//	  sink:
//	    console: stdout_sink_mt
//	  logger:
//	    app: "INFO,[sinks=console]"
//
// 三种格式都会加载到 koanf，[Config.Client] 可以读取文档中其他部分的配置，
// [Config.Unmarshal] 把它们反序列化到结构体。[Config.Directives] 返回的指令行
// 可直接交给 xlogconf.CreateFromLines。
//
// # 并发安全
//
// 所有方法都是并发安全的。Reload 串行执行，解析成功后整体替换内部快照；
// 解析失败时保留旧内容。Client() 返回的实例在 Reload 后仍可使用，但内容是旧的，
// 需要最新配置时应重新调用 Client()。
//
// # 配置监视
//
// [Watch] 基于 fsnotify 监视文件所在目录，内置防抖，兼容 vim/emacs 的原子写入。
// 从字节数据创建的 Config 不支持监视。回调中的 panic 被隔离，不会中断监视。
package xconf
