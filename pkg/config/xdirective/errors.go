package xdirective

import "errors"

// 指令解析错误。
var (
	// ErrMalformedCSV 引号使用不合法（闭合引号后既不是引号也不是逗号，或引号未闭合）。
	ErrMalformedCSV = errors.New("xdirective: malformed csv")

	// ErrMalformedAttribute 属性记号不是恰好一个 '=' 分隔的 k=v 形式。
	ErrMalformedAttribute = errors.New("xdirective: invalid attribute definition")

	// ErrEmptyLine 指令右值为空。
	ErrEmptyLine = errors.New("xdirective: empty config line")

	// ErrInvalidLine 指令右值格式错误（如属性段缺少方括号）。
	ErrInvalidLine = errors.New("xdirective: invalid config line")
)

// 属性读取错误。
var (
	// ErrMissingAttribute 必填属性缺失。
	ErrMissingAttribute = errors.New("xdirective: attribute is required but cannot be found")

	// ErrInvalidAttribute 属性值无法转换为目标类型。
	ErrInvalidAttribute = errors.New("xdirective: invalid attribute value")
)
