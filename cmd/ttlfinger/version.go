package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ttlfinger/internal/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Long:  "显示 ttlfinger 的版本信息，包括版本号、构建时间、Git 提交和 Go 版本。",
	// 不需要加载配置
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ttlfinger %s\n", version.GetFullVersion())
		if version.BuildTime != "" {
			fmt.Fprintf(out, "Build Time: %s\n", version.BuildTime)
		}
		if version.GitCommit != "" {
			fmt.Fprintf(out, "Git Commit: %s\n", version.GitCommit)
		}
		fmt.Fprintf(out, "Go Version: %s\n", version.GoVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
