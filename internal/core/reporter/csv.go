package reporter

import (
	"encoding/csv"
	"fmt"
	"os"
)

// SaveCsvResult 一次性将结果保存为 CSV
// 写入 UTF-8 BOM，防止 Excel 打开乱码
func SaveCsvResult(path string, data TabularData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("\xEF\xBB\xBF"); err != nil {
		return fmt.Errorf("failed to write csv bom: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(data.Headers()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.WriteAll(data.Rows()); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return f.Close()
}
