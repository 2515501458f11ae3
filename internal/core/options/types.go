package options

import (
	"errors"

	"ttlfinger/internal/core/model"
)

// ErrNoInput 没有提供输入文件
var ErrNoInput = errors.New("input path is required")

// TaskOption 定义所有指令参数结构体必须实现的接口
type TaskOption interface {
	// Validate 验证参数合法性
	Validate() error

	// ToTask 将参数转换为核心任务模型
	ToTask() *model.Task
}

// Task 参数键
const (
	ParamOutput      = "output"
	ParamVerbose     = "verbose"
	ParamSkipHeader  = "skip_header"
	ParamEngine      = "engine"
	ParamExtract     = "extract"
	ParamConcurrency = "concurrency"
	ParamTimeout     = "probe_timeout"
	ParamOutputJson  = "output_json"
	ParamOutputCsv   = "output_csv"
	ParamOutputYaml  = "output_yaml"
)
