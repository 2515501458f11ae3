package pipeline

import (
	"bufio"
	"io"
	"strings"

	"ttlfinger/internal/core/model"
	"ttlfinger/internal/pkg/logger"
)

// HeaderLines ping sweep 工具输出的固定表头行数
const HeaderLines = 8

// HostScanner 输入规范化器
// 把按行组织的输入转换为惰性的 HostEntry 序列，用法与 bufio.Scanner 相同:
//
//	hs := pipeline.NewHostScanner(f, skipHeader)
//	for hs.Next() {
//		host := hs.Host()
//	}
//	if err := hs.Err(); err != nil { ... }
//
// 序列只能消费一次。
type HostScanner struct {
	scanner    *bufio.Scanner
	skipHeader bool
	skipped    bool
	line       int
	current    model.HostEntry
}

// NewHostScanner 创建输入规范化器
// skipHeader 为 true 时无条件丢弃前 HeaderLines 行 (不看内容)
func NewHostScanner(r io.Reader, skipHeader bool) *HostScanner {
	return &HostScanner{
		scanner:    bufio.NewScanner(r),
		skipHeader: skipHeader,
	}
}

// Next 前进到下一个有效主机，没有更多主机或读取出错时返回 false
func (h *HostScanner) Next() bool {
	if h.skipHeader && !h.skipped {
		h.skipped = true
		for i := 0; i < HeaderLines; i++ {
			if !h.scanner.Scan() {
				return false
			}
			h.line++
		}
	}

	for h.scanner.Scan() {
		h.line++

		fields := strings.Fields(h.scanner.Text())
		if len(fields) == 0 {
			continue
		}
		address := fields[0]

		if IsNetworkAddress(address) {
			logger.Debugf("Skipping network address %s (line %d)", address, h.line)
			continue
		}

		h.current = model.HostEntry{Address: address, Line: h.line}
		return true
	}
	return false
}

// Host 返回当前主机
func (h *HostScanner) Host() model.HostEntry {
	return h.current
}

// Err 返回读取过程中遇到的第一个错误 (EOF 不算)
func (h *HostScanner) Err() error {
	return h.scanner.Err()
}

// IsNetworkAddress 第四个点分段为 "0" 视为网络地址
// 段数不足 4 的地址不做判断，原样交给探测阶段
func IsNetworkAddress(address string) bool {
	parts := strings.Split(address, ".")
	return len(parts) >= 4 && parts[3] == "0"
}

// CollectHosts 读取全部主机，主要给 watch 模式和测试使用
func CollectHosts(r io.Reader, skipHeader bool) ([]model.HostEntry, error) {
	hs := NewHostScanner(r, skipHeader)
	var hosts []model.HostEntry
	for hs.Next() {
		hosts = append(hosts, hs.Host())
	}
	return hosts, hs.Err()
}
