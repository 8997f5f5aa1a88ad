package xregistry

import "errors"

var (
	// ErrNotFound 表示注册表中不存在指定名称。
	ErrNotFound = errors.New("xregistry: name not registered")

	// ErrEmptyName 表示注册名称为空。
	ErrEmptyName = errors.New("xregistry: empty name")
)
