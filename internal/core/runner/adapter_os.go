package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"ttlfinger/internal/config"
	"ttlfinger/internal/core/model"
	"ttlfinger/internal/core/options"
	"ttlfinger/internal/core/pipeline"
	"ttlfinger/internal/core/reporter"
	osscan "ttlfinger/internal/core/scanner/os"
	"ttlfinger/internal/pkg/logger"
)

// ScannerFactory 按扫描配置创建扫描器
type ScannerFactory func(cfg *config.ScanConfig) (*osscan.Scanner, error)

// OsTTLRunner TTL OS 识别适配器
// 负责打开输入和输出、组装扫描器、流式输出结果，结束后按参数导出报告
type OsTTLRunner struct {
	base    config.ScanConfig
	factory ScannerFactory
}

// NewOsTTLRunner 创建适配器
// base 提供 Task 参数里没有的配置项 (ping 路径、编码、权限等)
func NewOsTTLRunner(base *config.ScanConfig, factory ScannerFactory) *OsTTLRunner {
	r := &OsTTLRunner{factory: factory}
	if base != nil {
		r.base = *base
	}
	if r.factory == nil {
		r.factory = osscan.NewScannerFromConfig
	}
	return r
}

// Name 返回Runner名称
func (r *OsTTLRunner) Name() model.TaskType {
	return model.TaskTypeOsTTLScan
}

// scanConfig Task 参数覆盖基础配置
func (r *OsTTLRunner) scanConfig(task *model.Task) *config.ScanConfig {
	cfg := r.base
	cfg.Engine = task.ParamString(options.ParamEngine, cfg.Engine)
	cfg.Extract = task.ParamString(options.ParamExtract, cfg.Extract)
	cfg.Concurrency = task.ParamInt(options.ParamConcurrency, cfg.Concurrency)
	cfg.ProbeTimeout = task.ParamDuration(options.ParamTimeout, cfg.ProbeTimeout)
	return &cfg
}

// Run 执行 TTL OS 识别
func (r *OsTTLRunner) Run(ctx context.Context, task *model.Task) ([]*model.TaskResult, error) {
	startTime := time.Now()

	cfg := r.scanConfig(task)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scanner, err := r.factory(cfg)
	if err != nil {
		return nil, err
	}

	in, err := os.Open(task.Target)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", task.Target, err)
	}
	defer in.Close()

	sink, err := reporter.OpenSink(task.ParamString(options.ParamOutput, reporter.StdoutTarget))
	if err != nil {
		return nil, err
	}
	defer sink.Close()

	if task.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, task.Timeout)
		defer cancel()
	}

	logger.LogSystemEvent("scan_started", "TTL scan started", logrus.Fields{
		"task_id":     task.ID,
		"input":       task.Target,
		"engine":      cfg.Engine,
		"extract":     cfg.Extract,
		"concurrency": cfg.Concurrency,
	})

	collector := reporter.NewCollector()
	out := reporter.NewMultiReporter(
		reporter.NewTextReporter(sink, task.ParamBool(options.ParamVerbose, false)),
		collector,
	)
	hosts := pipeline.NewHostScanner(in, task.ParamBool(options.ParamSkipHeader, false))

	stats, runErr := scanner.Run(ctx, hosts, cfg.Concurrency, func(res *model.OsTTLResult) error {
		return out.Report(ctx, res)
	})
	if closeErr := sink.Close(); closeErr != nil && runErr == nil {
		runErr = fmt.Errorf("close output: %w", closeErr)
	}

	report := &model.ScanReport{
		Input:      task.Target,
		Engine:     cfg.Engine,
		Extract:    cfg.Extract,
		StartedAt:  startTime,
		FinishedAt: time.Now(),
		Stats:      stats,
		Results:    collector.Results(),
	}

	result := &model.TaskResult{
		TaskID:      task.ID,
		Status:      model.TaskStatusSuccess,
		Result:      report,
		ExecutedAt:  startTime,
		CompletedAt: report.FinishedAt,
	}

	if runErr != nil {
		result.Status = model.TaskStatusFailed
		if errors.Is(runErr, context.Canceled) {
			result.Status = model.TaskStatusCancelled
		}
		result.Error = runErr.Error()
	}

	logger.LogSystemEvent("scan_finished", "TTL scan finished", logrus.Fields{
		"task_id":    task.ID,
		"status":     result.Status,
		"total":      stats.Total,
		"reported":   stats.Reported,
		"suppressed": stats.Suppressed,
		"failed":     stats.Failed,
		"duration":   report.FinishedAt.Sub(startTime).String(),
	})

	// 扫描中途失败也导出已有结果
	if err := exportReport(task, report); err != nil && runErr == nil {
		runErr = err
	}

	return []*model.TaskResult{result}, runErr
}

// exportReport 按 Task 参数导出 JSON/CSV/YAML
func exportReport(task *model.Task, report *model.ScanReport) error {
	var errs []error
	if path := task.ParamString(options.ParamOutputJson, ""); path != "" {
		if err := reporter.SaveJsonResult(path, report); err != nil {
			errs = append(errs, err)
		} else {
			logger.Infof("Results saved to %s", path)
		}
	}
	if path := task.ParamString(options.ParamOutputCsv, ""); path != "" {
		if err := reporter.SaveCsvResult(path, report); err != nil {
			errs = append(errs, err)
		} else {
			logger.Infof("Results saved to %s", path)
		}
	}
	if path := task.ParamString(options.ParamOutputYaml, ""); path != "" {
		if err := reporter.SaveYamlResult(path, report); err != nil {
			errs = append(errs, err)
		} else {
			logger.Infof("Results saved to %s", path)
		}
	}
	return errors.Join(errs...)
}
