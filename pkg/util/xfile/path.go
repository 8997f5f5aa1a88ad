package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// SanitizePath 对日志文件路径进行格式检查和规范化。
//
// 拒绝空路径、含空字节的路径和以分隔符结尾的目录路径。".." 由 filepath.Clean
// 解析，相对路径开头无法消去的 ".." 原样保留（"../logs/a.log" 指向上级目录）。
//
// 本函数只做格式净化，不把路径限制在特定目录内：日志路径来自部署方的配置，
// 与进程的其他文件访问同等可信。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if containsNullByte(filename) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}

	// 必须在 filepath.Clean 之前检查，Clean 会移除尾部斜杠
	if strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, "\\") {
		return "", fmt.Errorf("path is a directory: %w", ErrInvalidPath)
	}

	cleaned := filepath.Clean(filename)

	base := filepath.Base(cleaned)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no file name specified: %w", ErrInvalidPath)
	}
	return cleaned, nil
}

// SplitExt 将路径拆分为主体和扩展名（含前导点）。
//
// 以点开头的隐藏文件（".mylog"）和以点结尾的文件名（"mylog."）视为没有扩展名；
// 目录名中的点不参与拆分。
func SplitExt(path string) (stem, ext string) {
	ext = filepath.Ext(path)
	if ext == "" || ext == "." || ext == filepath.Base(path) {
		return path, ""
	}
	return path[:len(path)-len(ext)], ext
}
