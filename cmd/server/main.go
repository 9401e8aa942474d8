package main

import (
	"os"

	"github.com/spf13/cobra"

	"terminal-terrace/blog/config"
	"terminal-terrace/blog/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "blog",
	Short: "Posts and tags HTTP service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		if err := config.Load(cfgFile); err != nil {
			return err
		}
		// 2. 初始化日志
		logger.Init(config.Conf.Log.Level, config.Conf.Log.Format)
		return nil
	},
	SilenceUsage: true,
	// 不带子命令时直接启动服务
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// @title Blog API
// @version 1.0
// @description 文章与标签服务
// @host localhost:8080
// @BasePath /
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
