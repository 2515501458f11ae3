package os

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ttlfinger/internal/config"
)

func TestNewScannerFromConfig(t *testing.T) {
	cfg := &config.ScanConfig{
		Engine:       config.EngineExec,
		Extract:      config.ExtractOffset,
		ProbeTimeout: 3 * time.Second,
		PingBinary:   "ping",
		Encoding:     "gbk",
	}

	s, err := NewScannerFromConfig(cfg)
	require.NoError(t, err)
	assert.IsType(t, OffsetExtractor{}, s.extractor)

	cp, ok := s.prober.(*CommandProber)
	require.True(t, ok)
	assert.Equal(t, DefaultConvention(), cp.Convention())
	assert.NotNil(t, cp.decoder)
	assert.Equal(t, 3*time.Second, cp.timeout)
}

func TestNewProber_Native(t *testing.T) {
	p, err := NewProber(&config.ScanConfig{Engine: config.EngineNative, ProbeTimeout: 3 * time.Second})
	require.NoError(t, err)
	np, ok := p.(*NativeProber)
	require.True(t, ok)
	assert.Equal(t, time.Second, np.timeout)
}

func TestNewScannerFromConfig_Errors(t *testing.T) {
	_, err := NewScannerFromConfig(&config.ScanConfig{Engine: "raw"})
	assert.ErrorIs(t, err, config.ErrInvalidEngine)

	_, err = NewScannerFromConfig(&config.ScanConfig{Engine: config.EngineExec, PingBinary: "ping", Extract: "regex"})
	assert.ErrorIs(t, err, config.ErrInvalidExtractor)

	_, err = NewScannerFromConfig(&config.ScanConfig{Engine: config.EngineExec, PingBinary: "ping", Encoding: "klingon-8"})
	assert.Error(t, err)
}
