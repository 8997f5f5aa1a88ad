// Package xfile 提供日志文件相关的文件系统工具。
//
// # 路径净化
//
// [SanitizePath] 对日志文件路径做格式检查：拒绝空路径、空字节和目录路径，
// 返回 filepath.Clean 后的路径。相对路径可以指向上级目录（"../logs/app.log"）。
//
// # 扩展名拆分
//
// [SplitExt] 把路径拆成"主体 + 扩展名"，供带日期的文件名计算使用：
//
//	SplitExt("/var/log/app.log")  // "/var/log/app", ".log"
//	SplitExt("/var/log/.hidden")  // "/var/log/.hidden", ""
//	SplitExt("my.dir/app")        // "my.dir/app", ""
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断：
//
//	_, err := xfile.SanitizePath("/var/log/")
//	if errors.Is(err, xfile.ErrInvalidPath) {
//	    // 路径指向目录
//	}
package xfile
