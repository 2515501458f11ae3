// 日志管理器
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"ttlfinger/internal/config"
)

// LoggerManager 日志管理器
type LoggerManager struct {
	logger *logrus.Logger
	config *config.LogConfig
	closer io.Closer // 文件输出时为 lumberjack，其它情况为 nil
}

// LoggerInstance 全局日志实例
var LoggerInstance *LoggerManager

// timestampFormat 毫秒精度，不显示时区
const timestampFormat = "2006-01-02 15:04:05.000"

// InitLogger 初始化日志管理器并设置为全局实例
// 日志只用于诊断，结果流始终走 reporter，因此默认输出到 stderr
func InitLogger(cfg *config.LogConfig) (*LoggerManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("log config cannot be nil")
	}

	formatter, err := newFormatter(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set log formatter: %w", err)
	}
	writer, closer, err := newWriter(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set log output: %w", err)
	}

	logger := logrus.New()
	logger.SetFormatter(formatter)
	logger.SetOutput(writer)
	logger.SetReportCaller(cfg.Caller)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.WarnLevel
		logger.Warnf("Invalid log level '%s', using 'warn' as default", cfg.Level)
	}
	logger.SetLevel(level)

	if LoggerInstance != nil {
		_ = LoggerInstance.Close()
	}
	LoggerInstance = &LoggerManager{
		logger: logger,
		config: cfg,
		closer: closer,
	}
	return LoggerInstance, nil
}

// newFormatter 按配置创建格式化器
func newFormatter(cfg *config.LogConfig) (logrus.Formatter, error) {
	switch strings.ToLower(cfg.Format) {
	case "json":
		return &logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
				logrus.FieldKeyFile:  "file",
			},
		}, nil
	case "text", "":
		return &logrus.TextFormatter{
			TimestampFormat: timestampFormat,
			FullTimestamp:   true,
			// 写文件时不要颜色控制符
			DisableColors: strings.ToLower(cfg.Output) == "file",
		}, nil
	}
	return nil, fmt.Errorf("unsupported log format: %s", cfg.Format)
}

// newWriter 按配置创建输出目标
func newWriter(cfg *config.LogConfig) (io.Writer, io.Closer, error) {
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		return os.Stdout, nil, nil
	case "stderr", "":
		return os.Stderr, nil, nil
	case "file":
	default:
		return nil, nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}

	if cfg.FilePath == "" {
		return nil, nil, fmt.Errorf("file path is required when output is file")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,    // MB
		MaxBackups: cfg.MaxBackups, // 保留的备份文件数
		MaxAge:     cfg.MaxAge,     // 保留天数
		Compress:   cfg.Compress,
	}

	// debug 级别同时输出到 stderr，方便排查
	if strings.ToLower(cfg.Level) == "debug" {
		return io.MultiWriter(os.Stderr, rotated), rotated, nil
	}
	return rotated, rotated, nil
}

// GetLogger 获取logrus实例
func (lm *LoggerManager) GetLogger() *logrus.Logger {
	return lm.logger
}

// GetConfig 获取日志配置
func (lm *LoggerManager) GetConfig() *config.LogConfig {
	return lm.config
}

// SetOutput 替换输出，测试中用来捕获日志
func (lm *LoggerManager) SetOutput(w io.Writer) {
	lm.logger.SetOutput(w)
}

// Close 关闭日志文件，非文件输出时什么都不做
func (lm *LoggerManager) Close() error {
	if lm.closer == nil {
		return nil
	}
	return lm.closer.Close()
}

// 便捷方法：获取全局日志实例，未初始化时丢弃

func entry() *logrus.Logger {
	if LoggerInstance != nil {
		return LoggerInstance.logger
	}
	return discard
}

// Debugf 记录格式化调试日志
func Debugf(format string, args ...interface{}) {
	entry().Debugf(format, args...)
}

// Infof 记录格式化信息日志
func Infof(format string, args ...interface{}) {
	entry().Infof(format, args...)
}

// Warnf 记录格式化警告日志
func Warnf(format string, args ...interface{}) {
	entry().Warnf(format, args...)
}

// WithField 添加单个字段
func WithField(key string, value interface{}) *logrus.Entry {
	return entry().WithField(key, value)
}

// WithFields 添加多个字段
func WithFields(fields logrus.Fields) *logrus.Entry {
	return entry().WithFields(fields)
}

// discard 库代码在测试中不需要先 InitLogger
var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
