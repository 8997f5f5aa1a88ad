package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xlogkit/pkg/config/xconf"
	"github.com/omeyang/xlogkit/pkg/config/xlogconf"
	"github.com/omeyang/xlogkit/pkg/observability/xlog"
)

// exitError 表示需要非零退出码但已完成输出的场景。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 参数错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func wrapUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return &usageError{msg: err.Error()}
}

// 创建所有子命令。
func createCommands(stdout, stderr io.Writer) []*cli.Command {
	return []*cli.Command{
		{
			Name:         "check",
			Aliases:      []string{"c"},
			Usage:        "解析配置文件并打印指令",
			ArgsUsage:    "<file>",
			OnUsageError: wrapUsageError,
			Action: func(_ context.Context, cmd *cli.Command) error {
				path, err := fileArg(cmd)
				if err != nil {
					return err
				}
				return cmdCheck(stdout, path)
			},
		},
		{
			Name:         "emit",
			Aliases:      []string{"e"},
			Usage:        "执行配置并向每个 logger 写一条消息",
			ArgsUsage:    "<file>",
			OnUsageError: wrapUsageError,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "level",
					Aliases: []string{"l"},
					Usage:   "消息级别 (trace/debug/info/warn/error/critical)",
					Value:   "info",
				},
				&cli.StringFlag{
					Name:    "message",
					Aliases: []string{"m"},
					Usage:   "消息内容",
					Value:   "xlogctl test message",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				path, err := fileArg(cmd)
				if err != nil {
					return err
				}
				level, err := xlog.ParseLevel(cmd.String("level"))
				if err != nil {
					return &usageError{msg: err.Error()}
				}
				diag := diagLogger(stderr, cmd.Bool("verbose"))
				return cmdEmit(ctx, stdout, diag, path, level, cmd.String("message"))
			},
		},
		{
			Name:         "watch",
			Aliases:      []string{"w"},
			Usage:        "执行配置，文件变化时重新配置",
			ArgsUsage:    "<file>",
			OnUsageError: wrapUsageError,
			Action: func(ctx context.Context, cmd *cli.Command) error {
				path, err := fileArg(cmd)
				if err != nil {
					return err
				}
				diag := diagLogger(stderr, cmd.Bool("verbose"))
				return cmdWatch(ctx, stdout, diag, path)
			},
		},
	}
}

func fileArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", &usageError{msg: cmd.Name + " 命令需要且只需要一个配置文件参数"}
	}
	return cmd.Args().First(), nil
}

// diagLogger 诊断日志写到 stderr，不开启 verbose 时只输出警告以上
func diagLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfiguration 读取文件并解析其中的指令
func loadConfiguration(path string) (xconf.Config, *xlogconf.Configuration, error) {
	doc, err := xconf.New(path)
	if err != nil {
		return nil, nil, err
	}
	c, err := xlogconf.CreateFromLines(doc.Directives())
	if err != nil {
		return nil, nil, err
	}
	return doc, c, nil
}

// cmdCheck 解析配置并打印摘要。
func cmdCheck(out io.Writer, path string) error {
	doc, c, err := loadConfiguration(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "文件: %s (%s)\n", path, doc.Format())

	globals := c.GlobalNames()
	fmt.Fprintf(out, "全局指令: %d\n", len(globals))
	for _, name := range globals {
		g, _ := c.Global(name)
		fmt.Fprintf(out, "  %s=%s\n", name, g.Value)
	}

	sinks := c.SinkNames()
	fmt.Fprintf(out, "sink: %d\n", len(sinks))
	for _, name := range sinks {
		s, _ := c.Sink(name)
		fmt.Fprintf(out, "  %s (%s)\n", name, s.Type)
	}

	loggers := c.LoggerNames()
	fmt.Fprintf(out, "logger: %d\n", len(loggers))
	for _, name := range loggers {
		l, _ := c.Logger(name)
		fmt.Fprintf(out, "  %s %s -> %s\n", name, xlog.LookupLevel(l.Threshold), strings.Join(l.Sinks, ","))
	}
	return nil
}

// cmdEmit 在独立的 Store 中执行配置，写一条消息后刷新并清理。
func cmdEmit(ctx context.Context, out io.Writer, diag *slog.Logger, path string, level xlog.Level, msg string) (err error) {
	_, c, err := loadConfiguration(path)
	if err != nil {
		return err
	}

	store := xlog.NewStore()
	res, err := c.Configure(xlogconf.Env{Store: store, Logger: diag})
	defer func() {
		err = errors.Join(err, res.Close())
	}()
	if err != nil {
		return err
	}

	var errs []error
	for _, l := range res.Loggers() {
		if logErr := l.Log(level, msg); logErr != nil {
			errs = append(errs, logErr)
		}
	}
	if flushErr := store.FlushAll(ctx); flushErr != nil {
		errs = append(errs, flushErr)
	}

	fmt.Fprintf(out, "已向 %d 个 logger 写入 %s 消息\n", len(res.Loggers()), level)
	return errors.Join(errs...)
}

// cmdWatch 执行配置，文件每次变化后丢弃旧的 logger 重新配置，直到 ctx 取消。
//
// 重新配置失败时保留当前已生效的 logger。
func cmdWatch(ctx context.Context, out io.Writer, diag *slog.Logger, path string) error {
	doc, err := xconf.New(path)
	if err != nil {
		return err
	}

	r := &reconfigurer{out: out, diag: diag}
	if err := r.apply(doc.Directives()); err != nil {
		return err
	}
	defer r.close()

	w, err := xconf.Watch(doc, func(cfg xconf.Config, err error) {
		if err != nil {
			diag.Warn("xlogctl: reload failed", "path", path, "error", err)
			return
		}
		if err := r.apply(cfg.Directives()); err != nil {
			diag.Warn("xlogctl: reconfigure failed", "path", path, "error", err)
		}
	})
	if err != nil {
		return err
	}
	w.StartAsync()
	fmt.Fprintf(out, "正在监视 %s，按 Ctrl+C 退出\n", path)

	<-ctx.Done()
	return w.Stop()
}

// reconfigurer 持有当前生效的配置结果
type reconfigurer struct {
	out  io.Writer
	diag *slog.Logger

	mu  sync.Mutex
	cur *xlogconf.Result
	gen int
}

func (r *reconfigurer) apply(lines []string) error {
	c, err := xlogconf.CreateFromLines(lines)
	if err != nil {
		return err
	}
	res, err := c.Configure(xlogconf.Env{Store: xlog.NewStore(), Logger: r.diag})
	if err != nil {
		return errors.Join(err, res.Close())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cur != nil {
		if err := r.cur.Close(); err != nil {
			r.diag.Warn("xlogctl: closing previous configuration", "error", err)
		}
	}
	r.cur = res
	r.gen++
	fmt.Fprintf(r.out, "配置 #%d: %d 个 sink，%d 个 logger\n", r.gen, len(res.SinkNames()), len(res.Loggers()))
	return nil
}

func (r *reconfigurer) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cur == nil {
		return
	}
	if err := r.cur.Close(); err != nil {
		r.diag.Warn("xlogctl: closing configuration", "error", err)
	}
	r.cur = nil
}

// setupSignalHandler 设置信号处理。
// 设计决策: 第一次信号优雅取消，第二次信号强制退出（退出码 130 = 128 + SIGINT）。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()

		<-sigCh
		signal.Stop(sigCh)
		os.Exit(130)
	}()
}
