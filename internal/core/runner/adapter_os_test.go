package runner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ttlfinger/internal/config"
	"ttlfinger/internal/core/model"
	"ttlfinger/internal/core/options"
	osscan "ttlfinger/internal/core/scanner/os"
)

var replies = map[string]string{
	"10.0.0.5": "\r\nPinging 10.0.0.5 with 32 bytes of data:\r\nReply from 10.0.0.5: bytes=32 time<1ms TTL=128\r\n",
	"10.0.0.8": "PING 10.0.0.8 (10.0.0.8) 56(84) bytes of data.\n64 bytes from 10.0.0.8: icmp_seq=1 ttl=64 time=0.045 ms\n",
}

func baseConfig() *config.ScanConfig {
	return &config.ScanConfig{
		Engine:       config.EngineExec,
		Extract:      config.ExtractMarker,
		Concurrency:  1,
		ProbeTimeout: time.Second,
		PingBinary:   "ping",
	}
}

// fakeFactory 返回使用预置回复的扫描器，并统计探测次数
func fakeFactory(probes *int32) ScannerFactory {
	return func(cfg *config.ScanConfig) (*osscan.Scanner, error) {
		prober := osscan.ProberFunc(func(_ context.Context, host string) *model.ProbeResult {
			atomic.AddInt32(probes, 1)
			raw, ok := replies[host]
			if !ok {
				return &model.ProbeResult{Host: host, Platform: osscan.PlatformPosix, Err: osscan.ErrProbeTimeout}
			}
			return &model.ProbeResult{Host: host, Raw: raw, Platform: osscan.PlatformPosix}
		})
		extractor, _ := osscan.NewExtractor(cfg.Extract)
		return osscan.NewScanner(prober, extractor), nil
	}
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hosts.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTask(input, output string) *model.Task {
	o := options.NewOsTTLScanOptions(baseConfig())
	o.Path = input
	o.Output = output
	return o.ToTask()
}

func TestOsTTLRunner_EndToEnd(t *testing.T) {
	var probes int32
	dir := t.TempDir()
	output := filepath.Join(dir, "result.txt")
	task := newTask(writeInput(t, "10.0.0.5\n10.0.0.0\n10.0.0.8\n"), output)
	task.Params[options.ParamOutputJson] = filepath.Join(dir, "result.json")
	task.Params[options.ParamOutputCsv] = filepath.Join(dir, "result.csv")
	task.Params[options.ParamOutputYaml] = filepath.Join(dir, "result.yaml")

	r := NewOsTTLRunner(baseConfig(), fakeFactory(&probes))
	results, err := r.Run(context.Background(), task)
	require.NoError(t, err)
	require.Len(t, results, 1)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t,
		"The operating system at 10.0.0.5 is Windows.\nThe operating system at 10.0.0.8 is Linux.\n",
		string(data))
	assert.Equal(t, int32(2), atomic.LoadInt32(&probes))

	res := results[0]
	assert.Equal(t, task.ID, res.TaskID)
	assert.Equal(t, model.TaskStatusSuccess, res.Status)
	report, ok := res.Result.(*model.ScanReport)
	require.True(t, ok)
	assert.Equal(t, model.ScanStats{Total: 2, Reported: 2}, report.Stats)
	assert.Len(t, report.Results, 2)

	for _, name := range []string{"result.json", "result.csv", "result.yaml"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestOsTTLRunner_VerboseAndHeaderSkip(t *testing.T) {
	var probes int32
	output := filepath.Join(t.TempDir(), "result.txt")
	input := "Starting sweep\n\n\n\n\n\n\n10.0.0.5\n10.0.0.8 up\n"
	task := newTask(writeInput(t, input), output)
	task.Params[options.ParamSkipHeader] = true
	task.Params[options.ParamVerbose] = true
	task.Params[options.ParamConcurrency] = 2

	_, err := NewOsTTLRunner(baseConfig(), fakeFactory(&probes)).Run(context.Background(), task)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "=>The operating system at 10.0.0.8 is Linux. TTL = 64\nPing response: ")
	assert.NotContains(t, string(data), "10.0.0.5 is", "line 8 belongs to the header")
	assert.Equal(t, int32(1), atomic.LoadInt32(&probes))
}

func TestOsTTLRunner_TimeoutHostIsUncertain(t *testing.T) {
	var probes int32
	output := filepath.Join(t.TempDir(), "result.txt")
	task := newTask(writeInput(t, "10.0.0.7\n10.0.0.8\n"), output)

	results, err := NewOsTTLRunner(baseConfig(), fakeFactory(&probes)).Run(context.Background(), task)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t,
		"The operating system at 10.0.0.7 is uncertain.\nThe operating system at 10.0.0.8 is Linux.\n",
		string(data))
	report := results[0].Result.(*model.ScanReport)
	assert.Equal(t, 1, report.Stats.Failed)
}

func TestOsTTLRunner_MissingInputIsFatal(t *testing.T) {
	var probes int32
	output := filepath.Join(t.TempDir(), "result.txt")
	task := newTask(filepath.Join(t.TempDir(), "nope.txt"), output)

	results, err := NewOsTTLRunner(baseConfig(), fakeFactory(&probes)).Run(context.Background(), task)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Nil(t, results)
	assert.Zero(t, atomic.LoadInt32(&probes))
	assert.NoFileExists(t, output)
}

func TestOsTTLRunner_UnwritableOutputIsFatal(t *testing.T) {
	var probes int32
	task := newTask(writeInput(t, "10.0.0.5\n"), filepath.Join(t.TempDir(), "missing", "result.txt"))

	_, err := NewOsTTLRunner(baseConfig(), fakeFactory(&probes)).Run(context.Background(), task)
	assert.Error(t, err)
	assert.Zero(t, atomic.LoadInt32(&probes))
}

func TestOsTTLRunner_InvalidParams(t *testing.T) {
	var probes int32
	task := newTask(writeInput(t, "10.0.0.5\n"), "cmd")
	task.Params[options.ParamEngine] = "raw"

	_, err := NewOsTTLRunner(baseConfig(), fakeFactory(&probes)).Run(context.Background(), task)
	assert.ErrorIs(t, err, config.ErrInvalidEngine)
}

func TestRunnerManager(t *testing.T) {
	var probes int32
	m := NewRunnerManager(NewOsTTLRunner(baseConfig(), fakeFactory(&probes)))

	r, err := m.Get(model.TaskTypeOsTTLScan)
	require.NoError(t, err)
	assert.Equal(t, model.TaskTypeOsTTLScan, r.Name())

	_, err = m.Get("port_scan")
	assert.Error(t, err)

	_, err = m.Execute(context.Background(), &model.Task{Type: "port_scan"})
	assert.Error(t, err)

	output := filepath.Join(t.TempDir(), "result.txt")
	results, err := m.Execute(context.Background(), newTask(writeInput(t, "10.0.0.8\n"), output))
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
