package os

import (
	"context"
	"errors"

	"ttlfinger/internal/core/model"
)

var (
	// ErrProbeTimeout 调用方的硬超时先于 ping 自身的超时触发
	ErrProbeTimeout = errors.New("probe timed out")
	// ErrNoReply 没有收到 echo reply
	ErrNoReply = errors.New("no echo reply received")
)

// Prober 定义探测器接口
// 每个主机只探测一次，失败写入 ProbeResult.Err，不会中断整个扫描
type Prober interface {
	Probe(ctx context.Context, host string) *model.ProbeResult
}

// ProberFunc 让普通函数实现 Prober，测试中常用
type ProberFunc func(ctx context.Context, host string) *model.ProbeResult

func (f ProberFunc) Probe(ctx context.Context, host string) *model.ProbeResult {
	return f(ctx, host)
}
