package reporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"ttlfinger/internal/core/model"
)

func sampleReport() *model.ScanReport {
	start := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	return &model.ScanReport{
		Input:      "sweep.txt",
		Engine:     "exec",
		Extract:    "marker",
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
		Stats:      model.ScanStats{Total: 3, Reported: 2, Suppressed: 1},
		Results: []*model.OsTTLResult{
			{Host: "10.0.0.5", OS: model.OSWindows, TTL: "128", Platform: "posix"},
			{Host: "10.0.0.7", OS: model.OSUncertain, Platform: "posix", Error: "probe timed out"},
		},
	}
}

func TestOpenSink(t *testing.T) {
	w, err := OpenSink(StdoutTarget)
	require.NoError(t, err)
	assert.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale content that must disappear\n"), 0644))

	w, err = OpenSink(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("fresh\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh\n", string(data))

	_, err = OpenSink(filepath.Join(t.TempDir(), "missing", "dir", "out.txt"))
	assert.Error(t, err)
}

func TestSaveCsvResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.csv")
	require.NoError(t, SaveCsvResult(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "\xEF\xBB\xBF"))
	assert.Equal(t,
		"Host,OS,TTL,Platform\n10.0.0.5,Windows,128,posix\n10.0.0.7,uncertain,N/A,posix\n",
		strings.TrimPrefix(content, "\xEF\xBB\xBF"))
}

func TestSaveJsonResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, SaveJsonResult(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "sweep.txt", decoded["input"])
	results := decoded["results"].([]interface{})
	require.Len(t, results, 2)
	assert.Equal(t, "Windows", results[0].(map[string]interface{})["os"])
	assert.Equal(t, "probe timed out", results[1].(map[string]interface{})["error"])
}

func TestSaveYamlResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.yaml")
	require.NoError(t, SaveYamlResult(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "engine: exec")

	var decoded struct {
		Stats   model.ScanStats      `yaml:"stats"`
		Results []model.OsTTLResult `yaml:"results"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded.Stats.Suppressed)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, model.OSWindows, decoded.Results[0].OS)
	assert.Equal(t, model.TtlToken("128"), decoded.Results[0].TTL)
}

func TestConsoleReporter(t *testing.T) {
	pterm.DisableOutput()
	t.Cleanup(pterm.EnableOutput)

	c := NewConsoleReporter()
	assert.NoError(t, c.PrintResults([]*model.TaskResult{{Result: sampleReport()}}))
	assert.NoError(t, c.PrintResults(nil))
	assert.NotPanics(t, func() { c.PrintSummary(sampleReport()) })
}
