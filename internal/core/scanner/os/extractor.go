package os

import (
	"regexp"
	"strings"

	"ttlfinger/internal/core/model"
)

// Extractor 从 ping 输出中提取 TTL
// 提取失败返回空 token，不返回错误，也不会 panic
type Extractor interface {
	Extract(raw string) model.TtlToken
}

// NewExtractor 按名称创建提取器 (marker/offset)
func NewExtractor(name string) (Extractor, bool) {
	switch strings.ToLower(name) {
	case "marker", "":
		return MarkerExtractor{}, true
	case "offset":
		return OffsetExtractor{}, true
	}
	return nil, false
}

// 固定偏移位置
const (
	offsetTokenIndex = 11
	offsetStart      = 4
	offsetEnd        = 7
)

// OffsetExtractor 按固定位置切片
// 输出按单个空格切分 (换行不作分隔符)，取第 12 个 token 的 [4:7] 字节:
//
//	Linux:   "... icmp_seq=1 ttl=64 time=0.04 ms"  -> "64"
//	Windows: "... time<1ms TTL=128\r\n\r\nPing ..." -> "128"
//
// 依赖 ping 成功时的英文输出布局，换语言或换版本就会失效，仅为兼容保留
type OffsetExtractor struct{}

func (OffsetExtractor) Extract(raw string) model.TtlToken {
	tokens := strings.Split(raw, " ")
	if len(tokens) <= offsetTokenIndex {
		return ""
	}
	token := tokens[offsetTokenIndex]
	if len(token) <= offsetStart {
		return ""
	}
	end := offsetEnd
	if end > len(token) {
		end = len(token)
	}
	return model.TtlToken(token[offsetStart:end])
}

// Windows 中文版输出同样是 "TTL=128"，BSD/macOS 为 "ttl=64"，部分实现为 "ttl:64"
var ttlMarker = regexp.MustCompile(`(?i)\bttl\s*[=:]\s*(\d+)`)

// MarkerExtractor 搜索 ttl= 标记并提取紧随其后的数字
type MarkerExtractor struct{}

func (MarkerExtractor) Extract(raw string) model.TtlToken {
	matches := ttlMarker.FindStringSubmatch(raw)
	if len(matches) < 2 {
		return ""
	}
	return model.TtlToken(matches[1])
}
