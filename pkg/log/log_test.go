package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scigo-cluster/pkg/errors"
)

func TestTestLogger_Levels(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelInfo)

	testLogger.Debug("hidden")
	testLogger.Info("fit started", OperationKey, OperationFit, SamplesKey, 200)
	testLogger.Warn("empty cluster", "cluster", 2)
	testLogger.Error("predict failed", fmt.Errorf("boom"), OperationKey, OperationPredict)

	require.NotEmpty(t, buffer.String())
	assert.False(t, testLogger.ContainsMessage("hidden"))
	assert.True(t, testLogger.ContainsMessage("fit started"))
	assert.True(t, testLogger.ContainsField(SamplesKey, 200.0)) // JSON numbers are float64
	assert.True(t, testLogger.ContainsField(ErrAttrKey, "boom"))
	assert.True(t, testLogger.ContainsField(OperationKey, OperationPredict))

	assert.True(t, testLogger.Enabled(context.Background(), LevelWarn))
	assert.False(t, testLogger.Enabled(context.Background(), LevelDebug))
}

func TestTestLogger_With(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	child := testLogger.With(ModelNameKey, "KMeans", ClusterCountKey, 4)
	child.Debug("iteration", IterationKey, 1, ChangedLabelsKey, 17)

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "KMeans", entries[0][ModelNameKey])
	assert.Equal(t, 4.0, entries[0][ClusterCountKey])
	assert.Equal(t, 17.0, entries[0][ChangedLabelsKey])
}

func TestTestLogger_Concurrent(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				testLogger.Info("message", "goroutine_id", id, "message_id", j)
			}
		}(g)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(NewJSONHandler(&buf, slog.LevelDebug)))

	logger.With(ModelNameKey, "KMeans").Info("fit completed", ConvergedKey, true)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "fit completed", entry["message"])
	assert.Equal(t, "INFO", entry["severity"])
	assert.Equal(t, "KMeans", entry[ModelNameKey])
	assert.Equal(t, true, entry[ConvergedKey])
	assert.True(t, logger.Enabled(context.Background(), LevelDebug))
}

func TestSlogLogger_ErrorStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(NewJSONHandler(&buf, slog.LevelInfo)))

	err := errors.NewDimensionMismatchError("KMeans.Predict", 2, 3)
	logger.Error("predict failed", err, ErrorCodeKey, ErrorDimensionMismatch)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, ErrorDimensionMismatch, entry[ErrorCodeKey])
	assert.Contains(t, entry[ErrAttrKey], "dimension mismatch")
	assert.NotEmpty(t, entry[StacktraceAttrKey])
}

func TestToLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ToLogLevel("debug"))
	assert.Equal(t, slog.LevelError, ToLogLevel("error"))
	assert.Panics(t, func() { ToLogLevel("verbose") })
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger.Debug("hidden")
	logger.With(ModelNameKey, "KMeans").Info("fit completed", IterationKey, 7)
	logger.Error("fit failed", errors.NewShapeMismatchError("ComputeCentroids", []int{1, 2}, []int{1, 3}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &info))
	assert.Equal(t, "KMeans", info[ModelNameKey])
	assert.Equal(t, 7.0, info[IterationKey])

	assert.Contains(t, lines[1], `"type":"ShapeMismatchError"`)
	assert.Contains(t, lines[1], `"error":`)

	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), LevelWarn))
}

func TestEnableZerologWarnings(t *testing.T) {
	t.Cleanup(func() { errors.SetZerologWarnFunc(nil) })

	var buf bytes.Buffer
	EnableZerologWarnings(zerolog.New(&buf))
	errors.Warn(errors.NewConvergenceWarning("KMeans", 10, ""))

	assert.Contains(t, buf.String(), `"type":"ConvergenceWarning"`)
	assert.Contains(t, buf.String(), `"iterations":10`)
}

func TestDefaultLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	testLogger, _ := NewTestLogger(LevelInfo)
	SetLogger(testLogger)
	GetLogger().Info("through default")
	assert.True(t, testLogger.ContainsMessage("through default"))

	SetLogger(nil)
	assert.NotNil(t, GetLogger())
}
