package xrotate

import "errors"

// 配置校验错误
var (
	// ErrEmptyFilename 文件名为空
	ErrEmptyFilename = errors.New("xrotate: filename is required")

	// ErrInvalidMaxSize 最大文件大小无效
	ErrInvalidMaxSize = errors.New("xrotate: invalid max size")

	// ErrInvalidMaxFiles 最大备份数无效（不能为负）
	ErrInvalidMaxFiles = errors.New("xrotate: invalid max files")

	// ErrInvalidRotationTime 轮转时刻无效（小时 0~23，分钟 0~59）
	ErrInvalidRotationTime = errors.New("xrotate: invalid rotation time")

	// ErrInvalidPeriod 轮转周期无效（必须 > 0）
	ErrInvalidPeriod = errors.New("xrotate: invalid rotation period")

	// ErrInvalidMaxAge 备份保留天数无效（不能为负）
	ErrInvalidMaxAge = errors.New("xrotate: invalid max age")

	// ErrInvalidFileMode FileMode 包含非权限位（仅允许低 9 位 0000~0777）
	ErrInvalidFileMode = errors.New("xrotate: invalid FileMode")
)

// 运行期错误
var (
	// ErrRemoveFailed 轮转时删除超出保留数量的备份失败
	ErrRemoveFailed = errors.New("xrotate: failed removing")

	// ErrRenameFailed 轮转时重命名备份失败
	ErrRenameFailed = errors.New("xrotate: failed renaming")

	// ErrClosed 轮转器已关闭
	ErrClosed = errors.New("xrotate: rotator is closed")
)
