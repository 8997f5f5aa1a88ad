package xlogconf

import "errors"

var (
	// ErrUnknownDirective 带前缀的行无法识别为全局、sink 或 logger 指令。
	ErrUnknownDirective = errors.New("xlogconf: cannot understand configuration string")

	// ErrUnknownSinkType sink 类型未注册。
	ErrUnknownSinkType = errors.New("xlogconf: cannot create sink of unknown type")

	// ErrSinkNotFound logger 引用的 sink 未声明。
	ErrSinkNotFound = errors.New("xlogconf: cannot find sink")

	// ErrErrorHandlerNotFound 错误处理器未注册。
	ErrErrorHandlerNotFound = errors.New("xlogconf: cannot find error handler")

	// ErrUnknownOverflowPolicy set_async 的 overflow_policy 无法识别。
	ErrUnknownOverflowPolicy = errors.New("xlogconf: cannot find overflow policy")

	// ErrInvalidGlobal 全局指令的值无效。
	ErrInvalidGlobal = errors.New("xlogconf: invalid global directive")
)
