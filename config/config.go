package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/moyu-x/desktop-automation/internal"
)

const EnvPrefix = "DESKTOP_AUTOMATION"

type Config struct {
	Ledger struct {
		Path string
	}
	Organizer struct {
		Dir string
	}
	Report struct {
		Dir string
	}
	Logging struct {
		Level string
		File  string
	}
}

// Load 读取配置，优先级：环境变量 > 配置文件 > 默认值
// file 为空时在默认路径中查找 config.yaml，找不到也不报错
func Load(file string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.desktop-automation")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/desktop-automation")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("ledger.path", internal.DefaultLedgerPath)
	v.SetDefault("organizer.dir", internal.DefaultOrganizeDir)
	v.SetDefault("report.dir", internal.DefaultReportDir)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	for _, p := range []*string{&cfg.Ledger.Path, &cfg.Organizer.Dir, &cfg.Report.Dir, &cfg.Logging.File} {
		expanded, err := ExpandPath(*p)
		if err != nil {
			return nil, err
		}
		*p = expanded
	}

	return &cfg, nil
}

// ExpandPath 展开开头的 ~/
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("获取用户目录失败: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
