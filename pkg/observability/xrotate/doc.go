// Package xrotate 提供日志文件轮转。
//
// Rotator 接口定义了轮转器的核心行为（Write/Close/Rotate），所有实现并发安全
// （FileSink 使用 [xsink.NoopLocker] 时由调用方保证单生产者）。
//
// # 当前实现
//
//   - [NewFileSink]: 按时间和大小轮转，带编号的备份链（app.log.1、app.log.2 …）
//   - [NewLumberjack]: 直接返回 lumberjack v2 的 Logger，按大小轮转，带压缩和按天清理
//
// 两者都可以作为 xsink.Sink 使用：FileSink 直接实现，其余 Rotator 经 [NewSink] 适配。
//
// # FileSink 的轮转规则
//
// 每次写入长度为 L 的消息时：
//
//  1. 当前大小累加 L
//  2. 到达轮转时刻：按 NameFunc 计算新文件名并以追加方式打开，重算下一次轮转
//     时刻，当前大小重置为 L。时间轮转不重命名任何文件
//  3. 否则当前大小超过 maxSize：执行编号轮转，当前大小重置为 L
//  4. 写入消息
//
// 编号轮转先枚举已有备份链，删除超出 maxFiles 的部分，再从最大编号开始倒序
// 重命名（app.log.2 → app.log.3，app.log.1 → app.log.2，app.log → app.log.1），
// 最后以截断方式重新打开 app.log。倒序保证任何文件在被覆盖前已经移走。
//
// 删除或重命名失败会原样返回给写入方，不做重试；失败后备份链可能处于中间状态。
//
// 当前大小只在构造时从磁盘读取一次，之后按写入字节数累加。轮转之间若有外部
// 进程改写活动文件，记录的大小会与实际不符。
//
// # 文件名
//
//   - [DateOnlyName]: app_2024-01-02.log
//   - [DateTimeName]: app_2024-01-02_15-04.log
//   - [PlainName]: 原样使用 basePath
//
// # 指标
//
// 通过 [WithMeterProvider] 注入 OpenTelemetry MeterProvider 后上报：
//
//   - xlogkit.rotate.total: 轮转次数，属性 trigger=size|time|manual
//   - xlogkit.rotate.errors: 轮转失败次数，属性同上
package xrotate
