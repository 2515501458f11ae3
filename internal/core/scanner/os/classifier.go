package os

import (
	"strings"

	"ttlfinger/internal/core/model"
)

// Classify 根据 TTL 推断操作系统家族，按顺序匹配，命中即返回:
//
//	"128"          -> Windows
//	"64" 前缀       -> Linux
//	"254"          -> Solaris/AIX
//	"0.1" / "ets"  -> 跳过 (不可达)
//	其它 (含空串)    -> uncertain
//
// "0.1" 和 "ets" 不是真实的 TTL，而是固定偏移提取在 "Destination Host Unreachable"
// 一类输出上切出来的碎片。marker 提取只会返回数字，不会命中这一条。
// TODO: offset 提取下线后删除这条兼容规则
func Classify(token model.TtlToken) model.Classification {
	t := string(token)
	switch {
	case t == "128":
		return model.OSWindows
	case strings.HasPrefix(t, "64"):
		return model.OSLinux
	case t == "254":
		return model.OSSolarisAIX
	case t == "0.1" || t == "ets":
		return model.OSSuppressed
	default:
		return model.OSUncertain
	}
}
