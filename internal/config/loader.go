package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvPrefix 环境变量前缀，例如 TTLFINGER_SCAN_ENGINE
const DefaultEnvPrefix = "TTLFINGER"

// ConfigLoader 配置加载器
// 优先级: 显式 Set / 绑定的 CLI Flag > 环境变量 (.env 也算) > 配置文件 > 默认值
type ConfigLoader struct {
	configFile string
	envPrefix  string
	envFiles   []string
	viper      *viper.Viper
}

// NewConfigLoader 创建配置加载器
// v 为空时使用独立的 viper 实例；CLI 传入全局实例以复用已经绑定的 Flag
func NewConfigLoader(configFile, envPrefix string, v *viper.Viper) *ConfigLoader {
	if envPrefix == "" {
		envPrefix = DefaultEnvPrefix
	}
	if v == nil {
		v = viper.New()
	}

	return &ConfigLoader{
		configFile: configFile,
		envPrefix:  envPrefix,
		envFiles:   []string{".env"},
		viper:      v,
	}
}

// WithEnvFiles 指定需要加载的 .env 文件
func (cl *ConfigLoader) WithEnvFiles(files ...string) *ConfigLoader {
	cl.envFiles = files
	return cl
}

// LoadConfig 加载配置
func (cl *ConfigLoader) LoadConfig() (*Config, error) {
	if err := cl.loadEnvFiles(); err != nil {
		return nil, err
	}

	cl.viper.SetConfigType("yaml")
	cl.viper.SetEnvPrefix(cl.envPrefix)
	cl.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cl.viper.AutomaticEnv()

	cl.setDefaults()

	if err := cl.loadConfigFile(); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	var config Config
	if err := cl.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.Scan.Engine = strings.ToLower(config.Scan.Engine)
	config.Scan.Extract = strings.ToLower(config.Scan.Extract)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// loadEnvFiles 加载 .env 文件，文件不存在不算错误
func (cl *ConfigLoader) loadEnvFiles() error {
	for _, f := range cl.envFiles {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// loadConfigFile 配置文件是可选的：显式指定时必须存在，否则按默认路径搜索
func (cl *ConfigLoader) loadConfigFile() error {
	if cl.configFile != "" {
		cl.viper.SetConfigFile(cl.configFile)
		return cl.viper.ReadInConfig()
	}

	if envPath := os.Getenv(cl.envPrefix + "_CONFIG_PATH"); envPath != "" {
		cl.viper.SetConfigFile(envPath)
		return cl.viper.ReadInConfig()
	}

	cl.viper.AddConfigPath("./configs")
	cl.viper.AddConfigPath(".")
	cl.viper.SetConfigName("config")

	if err := cl.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// setDefaults 设置默认值
func (cl *ConfigLoader) setDefaults() {
	// 日志默认值，CLI 下日志走 stderr，避免和结果输出混在一起
	cl.viper.SetDefault("log.level", "warn")
	cl.viper.SetDefault("log.format", "text")
	cl.viper.SetDefault("log.output", "stderr")
	cl.viper.SetDefault("log.file_path", "./logs/ttlfinger.log")
	cl.viper.SetDefault("log.max_size", 100)
	cl.viper.SetDefault("log.max_backups", 3)
	cl.viper.SetDefault("log.max_age", 28)
	cl.viper.SetDefault("log.compress", true)
	cl.viper.SetDefault("log.caller", false)

	// 扫描默认值
	cl.viper.SetDefault("scan.engine", EngineExec)
	cl.viper.SetDefault("scan.extract", ExtractMarker)
	cl.viper.SetDefault("scan.concurrency", 1)
	cl.viper.SetDefault("scan.probe_timeout", "3s")
	cl.viper.SetDefault("scan.ping_binary", "ping")
	cl.viper.SetDefault("scan.encoding", "")
	cl.viper.SetDefault("scan.privileged", false)
}

// GetConfigPath 获取实际使用的配置文件路径 (未使用配置文件时为空)
func (cl *ConfigLoader) GetConfigPath() string {
	return cl.viper.ConfigFileUsed()
}
