// Package xdirective 解析日志配置指令的文本语法。
//
// 一条指令的右值形如：
//
//	value
//	value,[k1=v1,k2=v2,...]
//
// value 与属性段之间只按第一个未被引号包围的逗号切分；属性段取第一个 '['
// 与最后一个 ']' 之间的内容，按 CSV 规则拆分为 k=v 记号。
//
// # 引号规则
//
//   - 双引号切换"引号内"状态，引号内的逗号是字面量
//   - 引号内连续两个双引号 "" 表示一个字面双引号
//   - 引号结束后只能紧跟逗号或输入结尾，否则返回 [ErrMalformedCSV]
//
// 示例：
//
//	TRACE,[sinks=sink_a:sink_b,pattern="%v,%v"]
//	→ value: "TRACE"
//	  attributes: {sinks: "sink_a:sink_b", pattern: "%v,%v"}
//
// # 指令类型
//
//   - [Global]: 全局函数指令，Value 为全局函数参数
//   - [Sink]: sink 指令，Type 为 sink 类型名
//   - [Logger]: logger 指令，Threshold 为级别名，sinks 属性必填（冒号分隔）
//
// # 属性读取
//
// [Attributes] 提供必填/默认两类类型化读取方法（String、Bool、Int、Size、Duration）。
// 必填属性缺失返回 [ErrMissingAttribute]，类型转换失败返回 [ErrInvalidAttribute]。
// 默认值仅在属性缺失时生效，属性存在但格式错误仍然返回错误。
package xdirective
