package xsink

import (
	"log/slog"
	"time"
)

// Record 一条交给 sink 的日志记录。
//
// Formatted 是 logger 按 pattern 格式化后的完整一行（含行尾换行符），
// 其余字段保留原始信息，供需要自行处理的 sink 使用。
// sink 不得修改或持有 Formatted 的底层数组。
type Record struct {
	Time    time.Time
	Logger  string
	Level   slog.Level
	Message string

	Formatted []byte
}

// Sink 日志输出目标。
//
// 实现必须按构造时注入的 [sync.Locker] 串行化 Log 与 Flush。
type Sink interface {
	// Log 写入一条记录，可能触发轮转等副作用
	Log(rec Record) error
	// Flush 将缓冲数据刷到底层介质
	Flush() error
}

// Func 将普通函数适配为 Sink，Flush 为空操作。
type Func func(rec Record) error

// Log 调用 f。
func (f Func) Log(rec Record) error { return f(rec) }

// Flush 无操作。
func (Func) Flush() error { return nil }

// Null 丢弃所有记录的 sink。零值可用。
type Null struct{}

// Log 丢弃记录。
func (Null) Log(Record) error { return nil }

// Flush 无操作。
func (Null) Flush() error { return nil }
