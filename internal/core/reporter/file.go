package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// StdoutTarget 输出到标准输出的特殊目标名
const StdoutTarget = "cmd"

// nopCloser 标准输出不由我们关闭
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// OpenSink 打开文本输出目标
// "cmd" 表示标准输出，其它值作为文件路径 (截断后写入)
func OpenSink(target string) (io.WriteCloser, error) {
	if target == "" || target == StdoutTarget {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(target)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", target, err)
	}
	return f, nil
}

// SaveJsonResult 将结果保存为缩进的 JSON
func SaveJsonResult(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create json file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to write json output: %w", err)
	}
	return f.Close()
}

// SaveYamlResult 将结果保存为 YAML
func SaveYamlResult(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create yaml file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to write yaml output: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush yaml output: %w", err)
	}
	return f.Close()
}
