/*
 * @date: 2026.10.14
 * @description: Cobra Root Command 定义
 */

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ttlfinger/cmd/ttlfinger/scan"
	"ttlfinger/internal/config"
	"ttlfinger/internal/pkg/logger"
)

var (
	cfgFile   string
	appConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ttlfinger",
	Short: "基于 ICMP TTL 的被动操作系统识别",
	Long: `ttlfinger 向输入文件中的每个地址发送一个 ICMP echo，
根据回复中的 TTL 推断操作系统家族 (Windows / Linux / Solaris/AIX / uncertain)。

示例:
  1.识别文件中的主机并输出到终端
	ttlfinger scan -p hosts.txt
  2.读取 ping sweep 的输出 (跳过 8 行表头)，详细模式写入文件
	ttlfinger scan -p sweep.txt --ps -v -o result.txt
  3.并发探测并导出 JSON
	ttlfinger scan -p hosts.txt -c 16 --oj result.json
  4.输入文件变化时自动重新识别
	ttlfinger watch -p sweep.txt --ps
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// PersistentPreRunE: 全局初始化逻辑，确保所有子命令都能使用配置和日志
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewConfigLoader(cfgFile, config.DefaultEnvPrefix, viper.GetViper()).LoadConfig()
		if err != nil {
			return err
		}
		appConfig = cfg
		return initCLILogger(cfg.Log)
	},
}

func Execute() {
	// 全局 Panic Recovery
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n[FATAL] ttlfinger crashed unexpectedly: %v\n", r)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// 全局 Flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径 (默认: ./configs/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "日志级别 (debug, info, warn, error)")

	// 绑定 Viper
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	// 注册子命令
	currentConfig := func() *config.Config { return appConfig }
	rootCmd.AddCommand(scan.NewScanCmd(currentConfig))
	rootCmd.AddCommand(scan.NewWatchCmd(currentConfig))
}

// initCLILogger 初始化 CLI 模式下的日志
// pterm 的 info/debug 提示与日志级别保持一致
func initCLILogger(cfg *config.LogConfig) error {
	switch strings.ToLower(cfg.Level) {
	case "debug":
		pterm.EnableDebugMessages()
	case "info":
		pterm.DisableDebugMessages()
	default:
		pterm.DisableDebugMessages()
		pterm.Info = *pterm.Info.WithWriter(io.Discard)
	}

	if _, err := logger.InitLogger(cfg); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	return nil
}
