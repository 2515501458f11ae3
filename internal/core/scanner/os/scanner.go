package os

import (
	"context"
	"errors"
	"sync"

	"ttlfinger/internal/core/lib/network/qos"
	"ttlfinger/internal/core/model"
	"ttlfinger/internal/pkg/logger"
)

// HostSource 主机序列，pipeline.HostScanner 实现了该接口
type HostSource interface {
	Next() bool
	Host() model.HostEntry
	Err() error
}

// EmitFunc 输出一条识别结果，返回错误时整个扫描中止
type EmitFunc func(result *model.OsTTLResult) error

// Scanner TTL OS 识别主控: Prober -> Extractor -> Classify
type Scanner struct {
	prober    Prober
	extractor Extractor
}

// NewScanner 创建扫描器，extractor 为 nil 时使用 MarkerExtractor
func NewScanner(prober Prober, extractor Extractor) *Scanner {
	if extractor == nil {
		extractor = MarkerExtractor{}
	}
	return &Scanner{prober: prober, extractor: extractor}
}

// Scan 识别单个主机
// 第二个返回值为 false 表示结果被抑制，不应输出
func (s *Scanner) Scan(ctx context.Context, host string) (*model.OsTTLResult, bool) {
	result, _ := s.scan(ctx, host)
	return result, !result.OS.Suppressed()
}

// scan 额外返回探测错误，供限流器判断是否需要收缩
func (s *Scanner) scan(ctx context.Context, host string) (*model.OsTTLResult, error) {
	probe := s.prober.Probe(ctx, host)
	ttl := s.extractor.Extract(probe.Raw)
	class := Classify(ttl)

	result := &model.OsTTLResult{
		Host:     host,
		OS:       class,
		TTL:      ttl,
		Platform: probe.Platform,
		Raw:      probe.Raw,
	}

	entry := logger.ProbeLogEntry{
		Host:     host,
		Platform: probe.Platform,
		TTL:      string(ttl),
		OS:       string(class),
		Duration: probe.Duration,
	}
	if probe.Err != nil {
		result.Error = probe.Err.Error()
		entry.Error = probe.Err.Error()
	}
	logger.LogProbe(entry)

	return result, probe.Err
}

// Run 处理整个主机序列
// concurrency <= 1 时严格按输入顺序逐个探测；> 1 时由 AdaptiveLimiter 限制并发，
// 结果仍按输入顺序交给 emit
func (s *Scanner) Run(ctx context.Context, hosts HostSource, concurrency int, emit EmitFunc) (model.ScanStats, error) {
	if concurrency <= 1 {
		return s.runSequential(ctx, hosts, emit)
	}
	return s.runConcurrent(ctx, hosts, concurrency, emit)
}

func (s *Scanner) runSequential(ctx context.Context, hosts HostSource, emit EmitFunc) (model.ScanStats, error) {
	var stats model.ScanStats
	for hosts.Next() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		result, err := s.scan(ctx, hosts.Host().Address)
		if err := record(&stats, result, err, emit); err != nil {
			return stats, err
		}
	}
	return stats, hosts.Err()
}

// pendingScan 按输入顺序排队的探测
type pendingScan struct {
	host   string
	result *model.OsTTLResult
	err    error
	done   chan struct{}
}

func (s *Scanner) runConcurrent(ctx context.Context, hosts HostSource, concurrency int, emit EmitFunc) (model.ScanStats, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	limiter := qos.NewAdaptiveLimiter(concurrency, 1, concurrency)
	queue := make(chan *pendingScan, concurrency)

	var (
		wg        sync.WaitGroup
		sourceErr error
	)

	go func() {
		defer close(queue)
		for hosts.Next() {
			if err := limiter.Acquire(runCtx); err != nil {
				return
			}
			p := &pendingScan{host: hosts.Host().Address, done: make(chan struct{})}

			wg.Add(1)
			go func() {
				defer wg.Done()
				defer close(p.done)
				defer limiter.Release()

				p.result, p.err = s.scan(runCtx, p.host)
				// 只有调用方硬超时才视为过载信号，普通的不可达不收缩并发
				if errors.Is(p.err, ErrProbeTimeout) {
					limiter.OnFailure()
				} else {
					limiter.OnSuccess()
				}
			}()

			select {
			case queue <- p:
			case <-runCtx.Done():
				return
			}
		}
		sourceErr = hosts.Err()
	}()

	var (
		stats   model.ScanStats
		emitErr error
	)
	for p := range queue {
		<-p.done
		if emitErr != nil {
			continue
		}
		if err := record(&stats, p.result, p.err, emit); err != nil {
			emitErr = err
			cancel()
		}
	}
	wg.Wait()

	switch {
	case emitErr != nil:
		return stats, emitErr
	case ctx.Err() != nil:
		return stats, ctx.Err()
	}
	return stats, sourceErr
}

// record 统计并输出一条结果
func record(st *model.ScanStats, result *model.OsTTLResult, probeErr error, emit EmitFunc) error {
	st.Total++
	if probeErr != nil {
		st.Failed++
	}
	switch {
	case result.OS.Suppressed():
		st.Suppressed++
		return nil
	case result.OS == model.OSUncertain:
		st.Uncertain++
	}
	st.Reported++
	return emit(result)
}
