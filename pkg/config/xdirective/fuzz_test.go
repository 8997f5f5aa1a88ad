package xdirective

import (
	"errors"
	"testing"
)

// =============================================================================
// 模糊测试（Fuzz）
//
// 运行方式：go test -fuzz=FuzzParseLine -fuzztime=30s
// =============================================================================

// FuzzParseLine 任意输入不 panic，且只返回已知的错误类型
func FuzzParseLine(f *testing.F) {
	f.Add("TRACE")
	f.Add(`TRACE,[sinks=a:b,pattern="%v,%v"]`)
	f.Add(`"a,b",[k=v]`)
	f.Add(`"unterminated`)
	f.Add(`x,[a=b=c]`)
	f.Add(`,,,`)
	f.Add(`"""",[""=""]`)

	f.Fuzz(func(t *testing.T, s string) {
		line, err := ParseLine(s)
		if err != nil {
			if !errors.Is(err, ErrMalformedCSV) &&
				!errors.Is(err, ErrMalformedAttribute) &&
				!errors.Is(err, ErrEmptyLine) &&
				!errors.Is(err, ErrInvalidLine) {
				t.Fatalf("unexpected error type: %v", err)
			}
			return
		}
		if line.Attributes == nil {
			t.Fatal("attributes must not be nil on success")
		}
	})
}
