package xrotate

import (
	"fmt"
	"time"

	"github.com/omeyang/xlogkit/pkg/util/xfile"
)

// NameFunc 根据基础路径和当前时间计算活动文件路径。
type NameFunc func(base string, t time.Time) string

// DateOnlyName 在扩展名前插入日期：app.log → app_2024-01-02.log
func DateOnlyName(base string, t time.Time) string {
	stem, ext := xfile.SplitExt(base)
	return fmt.Sprintf("%s_%04d-%02d-%02d%s", stem, t.Year(), int(t.Month()), t.Day(), ext)
}

// DateTimeName 在扩展名前插入日期和时分：app.log → app_2024-01-02_15-04.log
func DateTimeName(base string, t time.Time) string {
	stem, ext := xfile.SplitExt(base)
	return fmt.Sprintf("%s_%04d-%02d-%02d_%02d-%02d%s",
		stem, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), ext)
}

// PlainName 原样返回基础路径，只按大小轮转时使用。
func PlainName(base string, _ time.Time) string {
	return base
}

// generationName 返回第 n 代文件名，0 代为活动文件本身
func generationName(path string, n int) string {
	if n == 0 {
		return path
	}
	return fmt.Sprintf("%s.%d", path, n)
}

const day = 24 * time.Hour

// nextDeadline 计算下一次轮转时刻
//
// 取 now 所在日期的 hour:minute:00（now 的时区），若不晚于 now 则向后推进，
// 保证结果严格晚于 now。整天数的周期按日历日推进，跨夏令时切换后仍落在
// hour:minute；其余周期按绝对时长的整数倍推进。
func nextDeadline(now time.Time, hour, minute int, period time.Duration) time.Time {
	y, m, d := now.Date()
	t := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	if t.After(now) {
		return t
	}
	if period%day == 0 {
		// t 与 now 同一天，推进一个周期必然晚于 now
		return time.Date(y, m, d+int(period/day), hour, minute, 0, 0, now.Location())
	}
	steps := now.Sub(t)/period + 1
	return t.Add(steps * period)
}
