package combine

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/seriescombine/internal/monitoring"
)

func newTestEngine(buf *bytes.Buffer) *Engine {
	return NewEngine(Config{
		Logger:  monitoring.NewLoggerWithWriter(buf, slog.LevelDebug),
		Metrics: monitoring.NewMetrics(),
	})
}

func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNewEngine_Defaults(t *testing.T) {
	engine := NewEngine(Config{})
	require.NotNil(t, engine)
	require.NotNil(t, engine.Metrics())

	res, err := engine.Combine([][]float64{{1, 1, 1}, {3, 3, 3}}, "add", 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 2}, res.Result)
}

func TestEngine_Combine(t *testing.T) {
	var buf bytes.Buffer
	engine := newTestEngine(&buf)

	res, err := engine.Combine([][]float64{{2, 3, 4}, {5, 6, 7}}, "*", 0.3)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 18, 28}, res.Result)

	stats := engine.Metrics().GetStats()
	assert.Equal(t, int64(1), stats["combine_count"])
	assert.Equal(t, int64(6), stats["points_processed"])
	assert.Equal(t, map[string]int64{"multiply": 1}, engine.Metrics().GetOperatorDistribution())

	entries := logEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "Combination Completed", entries[0]["msg"])
	assert.Equal(t, "multiply", entries[0]["operator"])
}

func TestEngine_UnsupportedOperatorIsReturnedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	engine := newTestEngine(&buf)

	res, err := engine.Combine([][]float64{{1, 2}, {3, 4}}, "divide", 0.5)
	require.Error(t, err)
	assert.True(t, IsUnsupportedOperation(err))
	assert.Nil(t, res.Result)

	entries := logEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Contains(t, entries[0]["msg"], "divide")
	assert.Equal(t, "unsupported_operation", entries[0]["error_category"])

	stats := engine.Metrics().GetStats()
	assert.Equal(t, int64(0), stats["combine_count"])
	assert.Equal(t, int64(1), stats["unsupported_operation_errors"])
}

func TestEngine_ValidationFailures(t *testing.T) {
	var buf bytes.Buffer
	engine := newTestEngine(&buf)

	_, err := engine.Combine(nil, "add", 0.5)
	assert.True(t, IsInvalidArgument(err))

	_, err = engine.CombineWith([][]float64{{1, 2, 3}, {1, 2}}, PointwiseProduct, 0.5)
	assert.True(t, IsInvalidArgument(err))

	stats := engine.Metrics().GetStats()
	assert.Equal(t, int64(2), stats["validation_errors"])
	assert.Equal(t, int64(2), stats["error_count"])

	entries := logEntries(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "series collection is empty", entries[0]["msg"])
	assert.Equal(t, "series length mismatch", entries[1]["msg"])
}

func TestEngine_ConcurrentUse(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	shared := [][]float64{{1, 2, 3, 4}, {4, 3, 2, 1}}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := engine.Combine(shared, "add", 0.5)
			assert.NoError(t, err)
			assert.Equal(t, []float64{2.5, 2.5, 2.5, 2.5}, res.Result)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(32), engine.Metrics().GetStats()["combine_count"])
	assert.Equal(t, []float64{1, 2, 3, 4}, shared[0])
}
