package cmd

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/moyu-x/desktop-automation/app"
	"github.com/moyu-x/desktop-automation/config"
	"github.com/moyu-x/desktop-automation/pkg/logger"
)

var (
	cfgFile    string // 配置文件路径
	verbose    bool   // 调试日志
	ledgerPath string // 覆盖配置中的账本路径
)

// rootCmd 不带子命令时直接进入交互菜单
var rootCmd = &cobra.Command{
	Use:   "desktop-automation",
	Short: "一个整理文件、记录支出的桌面自动化工具",
	Long: `Desktop Automation 是一个交互式命令行工具，通过编号菜单完成日常的桌面整理工作。

主要功能:
- 按扩展名分类整理下载目录，并生成 Excel 报告
- 记录支出，查看汇总、月度趋势并导出 Excel
- 按文件大小查找疑似重复文件
- 分析文件年龄分布并给出清理建议
- 按前缀、后缀、替换或顺序编号批量重命名`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if ledgerPath != "" {
		if cfg.Ledger.Path, err = config.ExpandPath(ledgerPath); err != nil {
			return err
		}
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	if err := logger.Init(level, cfg.Logging.File); err != nil {
		return err
	}
	defer logger.Close()

	logger.Get().Debug().
		Str("ledger", cfg.Ledger.Path).
		Str("organizer_dir", cfg.Organizer.Dir).
		Str("report_dir", cfg.Report.Dir).
		Msg("加载配置完成")

	return app.NewShell(cmd.InOrStdin(), cmd.OutOrStdout(), afero.NewOsFs(), cfg).Run()
}

// Execute 由 main.main() 调用
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径 (默认查找 $HOME/.desktop-automation/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "显示详细日志")
	rootCmd.PersistentFlags().StringVar(&ledgerPath, "ledger", "", "支出账本 CSV 文件路径")
}
