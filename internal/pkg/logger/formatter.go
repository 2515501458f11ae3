// 扫描日志格式化
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// LogType 日志类型
type LogType string

const (
	// ScanLog 扫描日志 - 记录每个主机的探测与识别结果
	ScanLog LogType = "scan"
	// SystemLog 系统日志 - 记录启动、配置、输入输出等运行状态
	SystemLog LogType = "system"
)

// ProbeLogEntry 单个主机的探测日志
type ProbeLogEntry struct {
	Host     string        `json:"host"`
	Platform string        `json:"platform"`
	TTL      string        `json:"ttl"`
	OS       string        `json:"os"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// LogProbe 记录探测日志
// 探测失败属于单主机的局部降级，只在 debug 级别可见
func LogProbe(entry ProbeLogEntry) {
	fields := logrus.Fields{
		"type":     ScanLog,
		"host":     entry.Host,
		"platform": entry.Platform,
		"ttl":      entry.TTL,
		"os":       entry.OS,
		"duration": entry.Duration.Milliseconds(),
	}
	if entry.Error != "" {
		fields["error"] = entry.Error
		WithFields(fields).Debug("probe failed")
		return
	}
	WithFields(fields).Debug("probe classified")
}

// LogSystemEvent 记录系统事件
func LogSystemEvent(event, message string, extra logrus.Fields) {
	fields := logrus.Fields{
		"type":  SystemLog,
		"event": event,
	}
	for k, v := range extra {
		fields[k] = v
	}
	WithFields(fields).Info(message)
}
