package reporter

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"ttlfinger/internal/core/model"
)

// ConsoleReporter 扫描结束后在控制台打印汇总表格
type ConsoleReporter struct{}

func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// PrintResults 打印任务结果，Result 实现了 TabularData 的会被聚合成一张表
func (r *ConsoleReporter) PrintResults(results []*model.TaskResult) error {
	var headers []string
	var allRows [][]string

	for _, res := range results {
		if res == nil || res.Result == nil {
			continue
		}
		if tabular, ok := res.Result.(TabularData); ok {
			if len(headers) == 0 {
				headers = tabular.Headers()
			}
			allRows = append(allRows, tabular.Rows()...)
		}
	}

	if len(allRows) == 0 {
		pterm.Warning.Println("No results found.")
		return nil
	}
	return r.printTableFromData(headers, allRows)
}

// PrintSummary 打印统计信息
func (r *ConsoleReporter) PrintSummary(report *model.ScanReport) {
	if report == nil {
		return
	}
	pterm.Info.Printfln("%d hosts probed, %d reported (%d uncertain), %d suppressed, %d probe failures in %s",
		report.Stats.Total, report.Stats.Reported, report.Stats.Uncertain, report.Stats.Suppressed,
		report.Stats.Failed, report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
}

func (r *ConsoleReporter) printTableFromData(headers []string, rows [][]string) error {
	tableData := pterm.TableData{headers}
	tableData = append(tableData, rows...)

	err := pterm.DefaultTable.
		WithHasHeader(true).
		WithBoxed(false).
		WithData(tableData).
		Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
