// xlogctl 是 logger 指令配置的命令行工具。
//
// 用法:
//
//	xlogctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-v, --verbose  输出配置执行过程的诊断日志
//
// 命令:
//
//	check <file>   解析配置文件，打印全局指令、sink、logger
//	emit <file>    执行配置，向每个 logger 写一条消息后刷新并注销
//	watch <file>   执行配置，文件变化时重新配置，直到被中断
//	help           显示帮助信息
//
// 配置文件格式按扩展名识别：.yaml/.yml、.json，其他按逐行指令处理。
//
// 退出码:
//
//	0: 命令执行成功
//	1: 解析或执行失败
//	2: 参数错误（缺少文件、无效级别、未知命令等）
//
// 示例:
//
//	xlogctl check logging.conf
//	xlogctl emit --level warn --message "disk almost full" logging.yaml
//	xlogctl -v watch logging.conf
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(cancel)

	os.Exit(run(ctx, os.Args, os.Stdout, os.Stderr))
}

// createApp 创建 CLI 应用。
func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xlogctl",
		Usage:     "logger 指令配置检查与调试工具",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "输出配置执行过程的诊断日志",
			},
		},
		Commands:       createCommands(stdout, stderr),
		DefaultCommand: "help",
		OnUsageError:   wrapUsageError,
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			var coder cli.ExitCoder
			if errors.As(err, &coder) && err.Error() != "" {
				fmt.Fprintln(stderr, err)
			}
		},
		Description: `xlogctl 读取 spdlog. 前缀的指令文件，检查语法或在本进程内执行配置。

指令示例:
  spdlog.set_async=8192,[overflow_policy=discard_log_msg]
  spdlog.sink.file=rotating_file_sink_mt,[file_path=/var/log/app.log,max_size=10MB,max_files=5]
  spdlog.logger.app=INFO,[sinks=file,pattern=%v]`,
	}
}

// run 执行命令并返回退出码。
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)

	err := app.Run(ctx, args)
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	// CLI 框架产生的参数错误（如未知命令）已由 ExitErrHandler 输出
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return 2
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}
