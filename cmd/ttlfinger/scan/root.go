/*
 * @date: 2026.10.14
 * @description: scan / watch 子命令
 */

package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"ttlfinger/internal/config"
	"ttlfinger/internal/core/model"
	"ttlfinger/internal/core/options"
	"ttlfinger/internal/core/reporter"
	"ttlfinger/internal/core/runner"
	"ttlfinger/internal/pkg/logger"
)

// ConfigFunc 返回 root 命令加载好的配置
type ConfigFunc func() *config.Config

// promptInputPath 没有指定输入文件时交互式询问
var promptInputPath = func() (string, error) {
	path, err := pterm.DefaultInteractiveTextInput.Show("Please enter input filepath")
	if err != nil {
		return "", fmt.Errorf("read input path: %w", err)
	}
	return strings.TrimSpace(path), nil
}

// NewScanCmd 创建 scan 命令
func NewScanCmd(cfg ConfigFunc) *cobra.Command {
	return newCommand(cfg, false)
}

// NewWatchCmd 创建 watch 命令: 先识别一次，之后每次输入文件被重写都重新识别
func NewWatchCmd(cfg ConfigFunc) *cobra.Command {
	return newCommand(cfg, true)
}

func newCommand(cfg ConfigFunc, watch bool) *cobra.Command {
	opts := options.NewOsTTLScanOptions(nil)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "识别输入文件中每个主机的操作系统",
		Long: `对输入文件中每一行的第一个地址发送一个 ICMP echo，根据 TTL 判断操作系统:
  128 -> Windows, 64x -> Linux, 254 -> Solaris/AIX, 其它 -> uncertain
第四段为 0 的网络地址和不可达主机不会输出。`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Path == "" && len(args) == 1 {
				opts.Path = args[0]
			}
			if opts.Path == "" {
				path, err := promptInputPath()
				if err != nil {
					return err
				}
				opts.Path = path
			}

			c := cfg()
			if c == nil {
				return fmt.Errorf("config not loaded")
			}
			applyConfig(cmd, opts, c.Scan)

			if err := opts.Validate(); err != nil {
				return err
			}

			manager := runner.NewRunnerManager(runner.NewOsTTLRunner(c.Scan, nil))
			if watch {
				return runWatch(cmd.Context(), manager, opts)
			}
			return runOnce(cmd.Context(), manager, opts)
		},
	}
	if watch {
		cmd.Use = "watch [path]"
		cmd.Short = "监视输入文件，变化时重新识别"
	}

	// 绑定 Flags
	flags := cmd.Flags()
	flags.StringVarP(&opts.Path, "path", "p", "", "输入文件路径 (缺省时交互式输入)")
	flags.StringVarP(&opts.Output, "output", "o", opts.Output, "输出目标，cmd 为终端，其它值为文件路径 (会被覆盖)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "输出 TTL 和原始 ping 回复")
	flags.BoolVar(&opts.HeaderSkip, "ps", false, "输入为 ping sweep 输出，跳过前 8 行")
	flags.StringVar(&opts.Engine, "engine", opts.Engine, "探测引擎 (exec: 系统 ping, native: 原生 ICMP)")
	flags.StringVar(&opts.Extract, "extract", opts.Extract, "TTL 提取方式 (marker, offset)")
	flags.IntVarP(&opts.Concurrency, "concurrency", "c", opts.Concurrency, "最大并发探测数 (1 为顺序执行)")
	flags.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "单个探测的硬超时")
	flags.BoolVar(&opts.Table, "table", false, "结束后打印汇总表格")

	flags.StringVar(&opts.Export.OutputJson, "outputJson", "", "导出 JSON 报告 (alias: --oj)")
	flags.StringVar(&opts.Export.OutputCsv, "outputCsv", "", "导出 CSV 报告 (alias: --oc)")
	flags.StringVar(&opts.Export.OutputYaml, "outputYaml", "", "导出 YAML 报告 (alias: --oy)")

	// 注册别名 (Hidden flags) 方便用户使用简短命令
	flags.StringVar(&opts.Export.OutputJson, "oj", "", "outputJson 简写")
	flags.Lookup("oj").Hidden = true
	flags.StringVar(&opts.Export.OutputCsv, "oc", "", "outputCsv 简写")
	flags.Lookup("oc").Hidden = true
	flags.StringVar(&opts.Export.OutputYaml, "oy", "", "outputYaml 简写")
	flags.Lookup("oy").Hidden = true

	return cmd
}

// applyConfig 没有显式指定的 Flag 使用配置文件/环境变量中的值
func applyConfig(cmd *cobra.Command, opts *options.OsTTLScanOptions, scan *config.ScanConfig) {
	if scan == nil {
		return
	}
	flags := cmd.Flags()
	if !flags.Changed("engine") {
		opts.Engine = scan.Engine
	}
	if !flags.Changed("extract") {
		opts.Extract = scan.Extract
	}
	if !flags.Changed("concurrency") {
		opts.Concurrency = scan.Concurrency
	}
	if !flags.Changed("timeout") {
		opts.Timeout = scan.ProbeTimeout
	}
}

func runOnce(ctx context.Context, manager *runner.RunnerManager, opts *options.OsTTLScanOptions) error {
	task := opts.ToTask()
	logger.WithField("task_id", task.ID).Debugf("Executing %s on %s", task.Type, task.Target)

	results, err := manager.Execute(ctx, task)

	if opts.Table && len(results) > 0 {
		console := reporter.NewConsoleReporter()
		if tableErr := console.PrintResults(results); tableErr != nil {
			logger.Warnf("Failed to print result table: %v", tableErr)
		}
		if report, ok := results[0].Result.(*model.ScanReport); ok {
			console.PrintSummary(report)
		}
	}
	return err
}

func runWatch(ctx context.Context, manager *runner.RunnerManager, opts *options.OsTTLScanOptions) error {
	changes := make(chan struct{}, 1)
	watcher, err := config.NewInputWatcher(opts.Path, 500*time.Millisecond, func(string) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}

	watchErr := make(chan error, 1)
	go func() { watchErr <- watcher.Run(ctx) }()

	pterm.Info.Printfln("Watching %s for changes (Ctrl+C to stop)", opts.Path)
	rescan := func() {
		if err := runOnce(ctx, manager, opts); err != nil && !errors.Is(err, context.Canceled) {
			// 扫描工具重写文件的瞬间可能读不到，等下一次变化
			logger.Warnf("Scan of %s failed: %v", opts.Path, err)
		}
	}
	rescan()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-watchErr:
			return err
		case <-changes:
			logger.LogSystemEvent("input_changed", "Input file changed, rescanning", nil)
			rescan()
		}
	}
}
