/**
 * 配置定义
 * @date: 2026.10.14
 * @description: ttlfinger 的全部配置项。CLI 参数、配置文件、环境变量最终都汇总到 Config。
 */
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config 全局配置
type Config struct {
	// 日志配置
	Log *LogConfig `yaml:"log" mapstructure:"log"`

	// 扫描配置
	Scan *ScanConfig `yaml:"scan" mapstructure:"scan"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`             // 日志级别 (debug/info/warn/error)
	Format     string `yaml:"format" mapstructure:"format"`           // 日志格式 (json/text)
	Output     string `yaml:"output" mapstructure:"output"`           // 日志输出 (stdout/stderr/file)
	FilePath   string `yaml:"file_path" mapstructure:"file_path"`     // 日志文件路径
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`       // 最大文件大小（MB）
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"` // 最大备份数
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`         // 最大保留天数
	Compress   bool   `yaml:"compress" mapstructure:"compress"`       // 是否压缩
	Caller     bool   `yaml:"caller" mapstructure:"caller"`           // 是否显示调用者信息
}

// ScanConfig 扫描配置
type ScanConfig struct {
	Engine       string        `yaml:"engine" mapstructure:"engine"`               // 探测引擎 (exec/native)
	Extract      string        `yaml:"extract" mapstructure:"extract"`             // TTL 提取方式 (marker/offset)
	Concurrency  int           `yaml:"concurrency" mapstructure:"concurrency"`     // 最大并发探测数，1 为顺序执行
	ProbeTimeout time.Duration `yaml:"probe_timeout" mapstructure:"probe_timeout"` // 单个探测的硬超时 (由调用方强制)
	PingBinary   string        `yaml:"ping_binary" mapstructure:"ping_binary"`     // ping 可执行文件
	Encoding     string        `yaml:"encoding" mapstructure:"encoding"`           // ping 输出编码 (空表示 UTF-8)
	Privileged   bool          `yaml:"privileged" mapstructure:"privileged"`       // native 引擎是否使用 raw socket
}

const (
	EngineExec   = "exec"
	EngineNative = "native"

	ExtractMarker = "marker"
	ExtractOffset = "offset"
)

// Validate 校验配置合法性
func (c *Config) Validate() error {
	if c.Log == nil || c.Scan == nil {
		return fmt.Errorf("incomplete config: log and scan sections are required")
	}
	return c.Scan.Validate()
}

// Validate 校验扫描配置
func (s *ScanConfig) Validate() error {
	switch strings.ToLower(s.Engine) {
	case EngineExec, EngineNative:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEngine, s.Engine)
	}

	switch strings.ToLower(s.Extract) {
	case ExtractMarker, ExtractOffset:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidExtractor, s.Extract)
	}

	if s.Concurrency < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidConcurrency, s.Concurrency)
	}
	if s.ProbeTimeout <= 0 {
		return fmt.Errorf("probe timeout must be positive, got %v", s.ProbeTimeout)
	}
	if s.Engine == EngineExec && s.PingBinary == "" {
		return fmt.Errorf("ping binary is required for the exec engine")
	}
	return nil
}
