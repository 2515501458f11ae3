/**
 * 结果输出接口定义
 * @date: 2026.10.14
 * @description: 定义结果输出的通用接口，解耦文本流/控制台表格/文件导出。
 */

package reporter

import (
	"context"
	"errors"

	"ttlfinger/internal/core/model"
)

// TabularData 是一个可以被渲染为表格的数据接口
// 任何想要在控制台漂亮打印或导出 CSV 的结果都应该实现此接口
type TabularData interface {
	Headers() []string
	Rows() [][]string
}

// Reporter 逐条输出识别结果
// 返回错误表示输出目标已不可用，调用方应中止扫描
type Reporter interface {
	Report(ctx context.Context, result *model.OsTTLResult) error
}

// MultiReporter 同时向多个目标输出 (e.g., 文本流 + 内存收集)
type MultiReporter struct {
	reporters []Reporter
}

func NewMultiReporter(reporters ...Reporter) *MultiReporter {
	return &MultiReporter{
		reporters: reporters,
	}
}

func (m *MultiReporter) Report(ctx context.Context, result *model.OsTTLResult) error {
	var errs []error
	for _, r := range m.reporters {
		if err := r.Report(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Collector 在内存中收集结果，供扫描结束后的表格和文件导出使用
type Collector struct {
	results []*model.OsTTLResult
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Report(_ context.Context, result *model.OsTTLResult) error {
	c.results = append(c.results, result)
	return nil
}

// Results 返回已收集的结果 (按输出顺序)
func (c *Collector) Results() []*model.OsTTLResult {
	return c.results
}
