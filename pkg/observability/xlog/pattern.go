package xlog

import (
	"os"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultPattern 默认格式：[2024-01-02 15:04:05.123] [name] [info] message
const DefaultPattern = "[%Y-%m-%d %H:%M:%S.%e] [%n] [%l] %v"

// patternCacheSize 编译后 pattern 的缓存容量
//
// 每个 logger 只持有一个 pattern，实际使用的 pattern 种类很少；
// 缓存让 SetPattern 批量作用于大量 logger 时只编译一次。
const patternCacheSize = 64

var (
	patternCache = mustPatternCache()
	pid          = os.Getpid()
)

func mustPatternCache() *lru.Cache[string, *formatter] {
	c, err := lru.New[string, *formatter](patternCacheSize)
	if err != nil {
		// 仅在 size <= 0 时失败
		panic(err)
	}
	return c
}

// segment pattern 的一段：字面量或单个标志
type segment struct {
	literal string
	flag    byte // 0 表示字面量
}

// formatter 编译后的 pattern，并发只读
type formatter struct {
	pattern  string
	segments []segment
}

// compilePattern 编译 pattern，结果按原文缓存
func compilePattern(pattern string) *formatter {
	if f, ok := patternCache.Get(pattern); ok {
		return f
	}
	f := parsePattern(pattern)
	patternCache.Add(pattern, f)
	return f
}

func parsePattern(pattern string) *formatter {
	f := &formatter{pattern: pattern}
	var lit []byte

	flushLiteral := func() {
		if len(lit) > 0 {
			f.segments = append(f.segments, segment{literal: string(lit)})
			lit = lit[:0]
		}
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' || i+1 == len(pattern) {
			lit = append(lit, c)
			continue
		}
		i++
		switch flag := pattern[i]; flag {
		case '%':
			lit = append(lit, '%')
		case 'v', 'n', 'l', 'L', 'Y', 'm', 'd', 'H', 'M', 'S', 'e', 'f', 'c', 'P':
			flushLiteral()
			f.segments = append(f.segments, segment{flag: flag})
		default:
			// 未知标志原样输出
			lit = append(lit, '%', flag)
		}
	}
	flushLiteral()
	return f
}

// format 按 pattern 追加一条记录到 buf，末尾追加换行符
func (f *formatter) format(buf []byte, name string, level Level, t time.Time, msg string) []byte {
	for _, s := range f.segments {
		if s.flag == 0 {
			buf = append(buf, s.literal...)
			continue
		}
		switch s.flag {
		case 'v':
			buf = append(buf, msg...)
		case 'n':
			buf = append(buf, name...)
		case 'l':
			buf = append(buf, level.name()...)
		case 'L':
			buf = append(buf, level.shortName()...)
		case 'Y':
			buf = appendPadded(buf, t.Year(), 4)
		case 'm':
			buf = appendPadded(buf, int(t.Month()), 2)
		case 'd':
			buf = appendPadded(buf, t.Day(), 2)
		case 'H':
			buf = appendPadded(buf, t.Hour(), 2)
		case 'M':
			buf = appendPadded(buf, t.Minute(), 2)
		case 'S':
			buf = appendPadded(buf, t.Second(), 2)
		case 'e':
			buf = appendPadded(buf, t.Nanosecond()/int(time.Millisecond), 3)
		case 'f':
			buf = appendPadded(buf, t.Nanosecond()/int(time.Microsecond), 6)
		case 'c':
			buf = t.AppendFormat(buf, time.ANSIC)
		case 'P':
			buf = strconv.AppendInt(buf, int64(pid), 10)
		}
	}
	return append(buf, '\n')
}

// appendPadded 以 width 位补零的十进制追加 v
func appendPadded(buf []byte, v, width int) []byte {
	var tmp [20]byte
	digits := strconv.AppendInt(tmp[:0], int64(v), 10)
	for i := len(digits); i < width; i++ {
		buf = append(buf, '0')
	}
	return append(buf, digits...)
}
