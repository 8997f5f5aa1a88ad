package xdirective

import (
	"fmt"
	"strings"
)

// Line 一条指令的右值：主值加属性表。
type Line struct {
	Value      string
	Attributes Attributes
}

// ParseLine 解析 `value` 或 `value,[k=v,...]`。
//
// 只在第一个未被引号包围的逗号处切分，因此 value 可以用引号包含逗号：
//
//	ParseLine(`"a,b",[k=v]`) → {Value: "a,b", Attributes: {k: v}}
func ParseLine(s string) (Line, error) {
	tokens, err := SplitCSV(s, 1)
	if err != nil {
		return Line{}, err
	}
	if len(tokens) == 0 {
		return Line{}, ErrEmptyLine
	}
	if len(tokens) > 2 {
		return Line{}, fmt.Errorf("%w: %s", ErrInvalidLine, s)
	}

	line := Line{Value: tokens[0], Attributes: Attributes{}}
	if len(tokens) == 1 {
		return line, nil
	}

	rest := tokens[1]
	start := strings.IndexByte(rest, '[')
	end := strings.LastIndexByte(rest, ']')
	if start < 0 || end < start {
		return Line{}, fmt.Errorf("%w: attribute section must be enclosed in []: %s", ErrInvalidLine, s)
	}

	attrs, err := ParseAttributes(rest[start+1 : end])
	if err != nil {
		return Line{}, err
	}
	line.Attributes = attrs
	return line, nil
}
