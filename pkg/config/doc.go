// Package config 提供 logger 配置相关的子包。
//
// 子包列表：
//   - xdirective: 指令右值的解析（CSV 拆分、属性表、全局/sink/logger 指令）
//   - xlogconf: spdlog. 前缀指令的解析与执行，内置 sink 类型和全局函数
//   - xconf: 基于 koanf 的指令文档加载（逐行、YAML、JSON）与热重载
package config
