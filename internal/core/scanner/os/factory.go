package os

import (
	"fmt"
	"strings"
	"time"

	"ttlfinger/internal/config"
)

// nativeReplyTimeout pro-bing 等待 echo reply 的时间，与 ping -w 1 对齐
const nativeReplyTimeout = time.Second

// NewProber 按配置创建探测器
func NewProber(cfg *config.ScanConfig) (Prober, error) {
	switch strings.ToLower(cfg.Engine) {
	case config.EngineExec, "":
		enc, err := LookupEncoding(cfg.Encoding)
		if err != nil {
			return nil, err
		}
		return NewCommandProber(cfg.PingBinary, DefaultConvention(), cfg.ProbeTimeout, WithEncoding(enc)), nil
	case config.EngineNative:
		timeout := nativeReplyTimeout
		if cfg.ProbeTimeout > 0 && cfg.ProbeTimeout < timeout {
			timeout = cfg.ProbeTimeout
		}
		return NewNativeProber(timeout, cfg.Privileged), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrInvalidEngine, cfg.Engine)
}

// NewScannerFromConfig 按配置组装 Prober 和 Extractor
func NewScannerFromConfig(cfg *config.ScanConfig) (*Scanner, error) {
	prober, err := NewProber(cfg)
	if err != nil {
		return nil, err
	}
	extractor, ok := NewExtractor(cfg.Extract)
	if !ok {
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidExtractor, cfg.Extract)
	}
	return NewScanner(prober, extractor), nil
}
