package model

import (
	"time"
)

// HostEntry 输入文件中的一个候选目标
type HostEntry struct {
	Address string `json:"address"` // 行首第一个空白分隔的 token，预期为点分十进制 IPv4
	Line    int    `json:"line"`    // 所在行号 (从 1 开始)，仅用于诊断
}

// ProbeResult 一次探测的原始输出
type ProbeResult struct {
	Host     string        `json:"host"`
	Raw      string        `json:"raw"`      // ping 的标准输出 (已解码为 UTF-8)
	Platform string        `json:"platform"` // 产生输出的调用约定 (windows/posix/native)
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// TtlToken 从探测输出中提取出的 TTL 字段，可以为空
type TtlToken string

// Classification 操作系统家族
type Classification string

const (
	OSWindows    Classification = "Windows"
	OSLinux      Classification = "Linux"
	OSSolarisAIX Classification = "Solaris/AIX"
	OSUncertain  Classification = "uncertain"

	// OSSuppressed 目标不可达，不输出任何结果
	OSSuppressed Classification = ""
)

// Suppressed 是否为跳过结果
func (c Classification) Suppressed() bool {
	return c == OSSuppressed
}

// OsTTLResult 单个主机的识别结果
type OsTTLResult struct {
	Host     string         `json:"host" yaml:"host"`
	OS       Classification `json:"os" yaml:"os"`
	TTL      TtlToken       `json:"ttl" yaml:"ttl"`
	Platform string         `json:"platform" yaml:"platform"`
	Raw      string         `json:"raw,omitempty" yaml:"raw,omitempty"`
	Error    string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// Headers 实现 TabularData 接口
// Host     | OS      | TTL | Platform
// 10.0.0.5 | Windows | 128 | windows
func (r OsTTLResult) Headers() []string {
	return []string{"Host", "OS", "TTL", "Platform"}
}

// Rows 实现 TabularData 接口
func (r OsTTLResult) Rows() [][]string {
	ttl := string(r.TTL)
	if ttl == "" {
		ttl = "N/A"
	}
	return [][]string{{r.Host, string(r.OS), ttl, r.Platform}}
}

// ScanStats 一次扫描的统计
type ScanStats struct {
	Total      int `json:"total" yaml:"total"`           // 实际探测的主机数
	Reported   int `json:"reported" yaml:"reported"`     // 输出的结果数
	Suppressed int `json:"suppressed" yaml:"suppressed"` // 判定为不可达被跳过的主机数
	Uncertain  int `json:"uncertain" yaml:"uncertain"`
	Failed     int `json:"failed" yaml:"failed"` // 探测出错 (超时/非零退出/无回复)
}

// ScanReport 一次扫描的完整报告，用于 JSON/YAML/CSV 导出和控制台表格
type ScanReport struct {
	Input      string         `json:"input" yaml:"input"`
	Engine     string         `json:"engine" yaml:"engine"`
	Extract    string         `json:"extract" yaml:"extract"`
	StartedAt  time.Time      `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time      `json:"finished_at" yaml:"finished_at"`
	Stats      ScanStats      `json:"stats" yaml:"stats"`
	Results    []*OsTTLResult `json:"results" yaml:"results"`
}

// Headers 实现 TabularData 接口
func (r *ScanReport) Headers() []string {
	return OsTTLResult{}.Headers()
}

// Rows 实现 TabularData 接口
func (r *ScanReport) Rows() [][]string {
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		rows = append(rows, res.Rows()...)
	}
	return rows
}
