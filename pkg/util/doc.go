// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 文件操作工具，目录创建、路径处理等
//   - xpool: 泛型 Worker Pool，可配置 worker/队列大小、溢出策略、优雅关闭
//   - xregistry: 按名称注册和查找的并发安全注册表
package util
