package xrotate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNameFuncs(t *testing.T) {
	ts := time.Date(2024, 1, 2, 15, 4, 5, 0, time.Local)

	tests := []struct {
		name string
		fn   NameFunc
		base string
		want string
	}{
		{"仅日期", DateOnlyName, "/var/log/app.log", "/var/log/app_2024-01-02.log"},
		{"仅日期无扩展名", DateOnlyName, "/var/log/app", "/var/log/app_2024-01-02"},
		{"日期和时分", DateTimeName, "/var/log/app.log", "/var/log/app_2024-01-02_15-04.log"},
		{"隐藏文件", DateTimeName, "logs/.app", "logs/.app_2024-01-02_15-04"},
		{"原样", PlainName, "/var/log/app.log", "/var/log/app.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.base, ts))
		})
	}
}

func TestGenerationName(t *testing.T) {
	assert.Equal(t, "app.log", generationName("app.log", 0))
	assert.Equal(t, "app.log.1", generationName("app.log", 1))
	assert.Equal(t, "app.log.12", generationName("app.log", 12))
}

func TestNextDeadline(t *testing.T) {
	day := func(d, h, m, s int) time.Time {
		return time.Date(2024, 1, d, h, m, s, 0, time.Local)
	}

	tests := []struct {
		name         string
		now          time.Time
		hour, minute int
		period       time.Duration
		want         time.Time
	}{
		{"当天时刻未到", day(2, 8, 0, 0), 10, 30, 24 * time.Hour, day(2, 10, 30, 0)},
		{"当天时刻已过推到明天", day(2, 15, 0, 0), 10, 30, 24 * time.Hour, day(3, 10, 30, 0)},
		{"恰好等于时刻也推后", day(2, 10, 30, 0), 10, 30, 24 * time.Hour, day(3, 10, 30, 0)},
		{"午夜轮转", day(2, 23, 59, 59), 0, 0, 24 * time.Hour, day(3, 0, 0, 0)},
		{"短周期跨多个周期", day(2, 15, 0, 0), 10, 30, 4 * time.Hour, day(2, 18, 30, 0)},
		{"按分钟周期", day(2, 0, 7, 10), 0, 0, 5 * time.Minute, day(2, 0, 10, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextDeadline(tt.now, tt.hour, tt.minute, tt.period)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.True(t, got.After(tt.now))
		})
	}
}

func TestNextDeadline_DaylightSaving(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("时区数据不可用: %v", err)
	}
	at := func(mon time.Month, d, h, m int) time.Time {
		return time.Date(2024, mon, d, h, m, 0, 0, ny)
	}

	tests := []struct {
		name         string
		now          time.Time
		hour, minute int
		period       time.Duration
		want         time.Time
	}{
		{"夏令时开始当天午夜轮转", at(time.March, 10, 12, 0), 0, 0, 24 * time.Hour, at(time.March, 11, 0, 0)},
		{"夏令时结束当天午夜轮转", at(time.November, 3, 12, 0), 0, 0, 24 * time.Hour, at(time.November, 4, 0, 0)},
		{"跨切换的两天周期", at(time.March, 9, 12, 0), 6, 0, 48 * time.Hour, at(time.March, 11, 6, 0)},
		{"跨切换的整周周期", at(time.October, 30, 23, 0), 3, 0, 7 * 24 * time.Hour, at(time.November, 6, 3, 0)},
		{"短周期按绝对时长推进", at(time.March, 10, 1, 30), 0, 0, time.Hour, at(time.March, 10, 3, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextDeadline(tt.now, tt.hour, tt.minute, tt.period)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			if tt.period%day == 0 {
				assert.Equal(t, tt.hour, got.Hour(), "整天周期保持墙上时刻")
			}
		})
	}
}
