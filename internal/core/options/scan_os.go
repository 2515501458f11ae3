package options

import (
	"fmt"
	"strings"
	"time"

	"ttlfinger/internal/config"
	"ttlfinger/internal/core/model"
)

// OsTTLScanOptions 对应 TTL OS 识别的参数
type OsTTLScanOptions struct {
	Path        string        // -p, --path 输入文件
	Output      string        // -o, --output 输出目标，"cmd" 为标准输出
	Verbose     bool          // -v, --verbose
	HeaderSkip  bool          // --ps 跳过 ping sweep 的 8 行表头
	Engine      string        // --engine exec/native
	Extract     string        // --extract marker/offset
	Concurrency int           // -c, --concurrency
	Timeout     time.Duration // --timeout 单个探测的硬超时
	Table       bool          // --table 结束后打印汇总表格
	Export      OutputOptions
}

// NewOsTTLScanOptions 用扫描配置填充默认值
func NewOsTTLScanOptions(cfg *config.ScanConfig) *OsTTLScanOptions {
	o := &OsTTLScanOptions{
		Output:      "cmd",
		Engine:      config.EngineExec,
		Extract:     config.ExtractMarker,
		Concurrency: 1,
		Timeout:     3 * time.Second,
	}
	if cfg != nil {
		o.Engine = cfg.Engine
		o.Extract = cfg.Extract
		o.Concurrency = cfg.Concurrency
		o.Timeout = cfg.ProbeTimeout
	}
	return o
}

func (o *OsTTLScanOptions) Validate() error {
	if strings.TrimSpace(o.Path) == "" {
		return ErrNoInput
	}
	if o.Output == "" {
		o.Output = "cmd"
	}

	switch strings.ToLower(o.Engine) {
	case config.EngineExec, config.EngineNative:
	default:
		return fmt.Errorf("%w: %q", config.ErrInvalidEngine, o.Engine)
	}
	switch strings.ToLower(o.Extract) {
	case config.ExtractMarker, config.ExtractOffset:
	default:
		return fmt.Errorf("%w: %q", config.ErrInvalidExtractor, o.Extract)
	}
	if o.Concurrency < 1 {
		return fmt.Errorf("%w: %d", config.ErrInvalidConcurrency, o.Concurrency)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("probe timeout must be positive, got %v", o.Timeout)
	}
	return nil
}

func (o *OsTTLScanOptions) ToTask() *model.Task {
	task := model.NewTask(model.TaskTypeOsTTLScan, o.Path)

	task.Params[ParamOutput] = o.Output
	task.Params[ParamVerbose] = o.Verbose
	task.Params[ParamSkipHeader] = o.HeaderSkip
	task.Params[ParamEngine] = strings.ToLower(o.Engine)
	task.Params[ParamExtract] = strings.ToLower(o.Extract)
	task.Params[ParamConcurrency] = o.Concurrency
	task.Params[ParamTimeout] = o.Timeout

	o.Export.ApplyToParams(task.Params)
	return task
}
