package nexuslogger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestLogger builds a file-backed handle in a temp directory
func createTestLogger(t *testing.T) (*Logger, string) {
	t.Helper()
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	cfg := DefaultConfig()
	cfg.Path = logPath
	cfg.Level = int64(LevelTrace)
	cfg.FlushIntervalMs = 10

	logger, err := New(cfg)
	require.NoError(t, err)
	return logger, logPath
}

// readTodayLog reads the dated file the sink writes for basePath
func readTodayLog(t *testing.T, basePath string) string {
	t.Helper()
	y, m, d := time.Now().Date()
	data, err := os.ReadFile(rotatedPath(basePath, y, int(m), d))
	require.NoError(t, err)
	return string(data)
}

// TestNewValidation verifies invalid configurations are rejected up front
func TestNewValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = 3 // not one of the constants
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.ConsoleTarget = "syslog"
	_, err = New(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.BatchSize = 0
	_, err = New(cfg)
	assert.Error(t, err)
}

// TestEndToEndFileOutput verifies logged entries reach the dated file after
// an explicit flush
func TestEndToEndFileOutput(t *testing.T) {
	logger, logPath := createTestLogger(t)
	defer logger.Close()

	logger.Info("service ready")
	logger.Warn("cache miss rate high")
	require.NoError(t, logger.Flush(2*time.Second))

	content := readTodayLog(t, logPath)
	assert.Contains(t, content, `level=info msg="service ready"`)
	assert.Contains(t, content, `level=warn msg="cache miss rate high"`)
}

// TestSingleGoroutineOrdering verifies entries from one goroutine persist
// in call order
func TestSingleGoroutineOrdering(t *testing.T) {
	logger, logPath := createTestLogger(t)

	const n = 200
	for i := 0; i < n; i++ {
		logger.Infof("seq %04d", i)
	}
	require.NoError(t, logger.Close())

	content := readTodayLog(t, logPath)
	prev := -1
	for i := 0; i < n; i++ {
		pos := strings.Index(content, fmt.Sprintf(`msg="seq %04d"`, i))
		require.GreaterOrEqual(t, pos, 0, "entry %d missing", i)
		assert.Greater(t, pos, prev, "entry %d out of order", i)
		prev = pos
	}
}

// TestLevelFiltering verifies entries below the minimum are dropped on the
// producer side and SetLevel takes effect immediately
func TestLevelFiltering(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "filter.log")

	cfg := DefaultConfig()
	cfg.Path = logPath
	cfg.Level = int64(LevelWarn)

	logger, err := New(cfg)
	require.NoError(t, err)

	logger.Trace("dropped trace")
	logger.Debug("dropped debug")
	logger.Info("dropped info")
	logger.Warn("kept warn")
	logger.Error("kept error")

	logger.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, logger.Level())
	logger.Debug("kept after lowering")
	logger.Trace("still dropped")

	require.NoError(t, logger.Close())

	content := readTodayLog(t, logPath)
	assert.NotContains(t, content, "dropped")
	assert.Contains(t, content, `msg="kept warn"`)
	assert.Contains(t, content, `msg="kept error"`)
	assert.Contains(t, content, `msg="kept after lowering"`)
	assert.NotContains(t, content, "still dropped")
}

// TestFlushPartialBatch verifies Flush hands off a batch below the size
// threshold and syncs it to disk
func TestFlushPartialBatch(t *testing.T) {
	logger, logPath := createTestLogger(t)
	defer logger.Close()

	// Well under the batch size, so nothing has been handed off yet
	logger.Info("partial one")
	logger.Info("partial two")
	require.NoError(t, logger.Flush(2*time.Second))

	content := readTodayLog(t, logPath)
	assert.Contains(t, content, `msg="partial one"`)
	assert.Contains(t, content, `msg="partial two"`)
}

// TestCloseDrainsSynchronously verifies everything logged before the last
// Close is on disk when Close returns
func TestCloseDrainsSynchronously(t *testing.T) {
	logger, logPath := createTestLogger(t)

	for i := 0; i < 50; i++ {
		logger.Infof("drained %d", i)
	}
	require.NoError(t, logger.Close())

	content := readTodayLog(t, logPath)
	for i := 0; i < 50; i++ {
		assert.Contains(t, content, fmt.Sprintf(`msg="drained %d"`, i))
	}
}

// TestClosedHandleNoOp verifies a closed handle ignores logging, rejects
// Flush, and tolerates repeated Close
func TestClosedHandleNoOp(t *testing.T) {
	logger, _ := createTestLogger(t)
	require.NoError(t, logger.Close())

	assert.NotPanics(t, func() {
		logger.Info("into the void")
		logger.Errorf("also %s", "ignored")
	})
	assert.Error(t, logger.Flush(100*time.Millisecond))
	assert.NoError(t, logger.Close())
}

// TestConcurrentProducers verifies no entries are lost under concurrent
// logging through one handle
func TestConcurrentProducers(t *testing.T) {
	logger, logPath := createTestLogger(t)

	const goroutines = 8
	const perGoroutine = 100

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				logger.Infof("g%d-%d", g, i)
			}
		}(g)
	}
	wg.Wait()
	require.NoError(t, logger.Close())

	content := readTodayLog(t, logPath)
	count := strings.Count(content, "\n")
	assert.Equal(t, goroutines*perGoroutine, count)

	// Per-goroutine order is preserved even when interleaved
	for g := 0; g < goroutines; g++ {
		prev := -1
		for i := 0; i < perGoroutine; i++ {
			pos := strings.Index(content, fmt.Sprintf(`msg="g%d-%d"`, g, i))
			require.GreaterOrEqual(t, pos, 0)
			assert.Greater(t, pos, prev)
			prev = pos
		}
	}
}

// TestFormattedLogging verifies the printf variants render through the same
// pipeline
func TestFormattedLogging(t *testing.T) {
	logger, logPath := createTestLogger(t)
	defer logger.Close()

	logger.Tracef("trace %d", 1)
	logger.Debugf("debug %s", "msg")
	logger.Infof("info %.2f", 3.14159)
	logger.Warnf("warn %v", true)
	logger.Errorf("error %q", "quoted")
	require.NoError(t, logger.Flush(2*time.Second))

	content := readTodayLog(t, logPath)
	assert.Contains(t, content, `msg="trace 1"`)
	assert.Contains(t, content, `msg="debug msg"`)
	assert.Contains(t, content, `msg="info 3.14"`)
	assert.Contains(t, content, `msg="warn true"`)
	assert.Contains(t, content, `msg="error \"quoted\""`)
}

// TestNamedHandle verifies the handle name lands on every entry
func TestNamedHandle(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "named.log")

	cfg := DefaultConfig()
	cfg.Path = logPath
	cfg.Name = "billing"

	logger, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "billing", logger.Name())

	logger.Info("charge posted")
	require.NoError(t, logger.Close())

	content := readTodayLog(t, logPath)
	assert.Contains(t, content, `name=billing msg="charge posted"`)
}

// TestUnixTimestampOutput verifies the epoch time format end to end
func TestUnixTimestampOutput(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "unix.log")

	cfg := DefaultConfig()
	cfg.Path = logPath
	cfg.UnixTimestamp = true

	logger, err := New(cfg)
	require.NoError(t, err)
	logger.Info("epoch mode")
	require.NoError(t, logger.Close())

	content := readTodayLog(t, logPath)
	require.NotEmpty(t, content)
	line := strings.SplitN(content, "\n", 2)[0]
	assert.Regexp(t, `^time=\d+\.\d{9} level=info msg="epoch mode"$`, line)
}

// TestSpilledMessageEndToEnd verifies a message past the inline capacity
// arrives whole
func TestSpilledMessageEndToEnd(t *testing.T) {
	logger, logPath := createTestLogger(t)

	big := strings.Repeat("k", inlineMessageCapacity+1)
	logger.Info(big)
	require.NoError(t, logger.Close())

	content := readTodayLog(t, logPath)
	assert.Contains(t, content, `msg="`+big+`"`)
}

// TestLoggerWithFailedSink verifies producers never block or panic once the
// sink worker has terminated on an open failure
func TestLoggerWithFailedSink(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	cfg := DefaultConfig()
	cfg.Path = filepath.Join(blocker, "app.log")
	cfg.ChannelCapacity = 2
	cfg.BatchSize = 1

	logger, err := New(cfg)
	require.NoError(t, err)

	// Wait for the worker to give up on the target
	select {
	case <-logger.sink.tr.done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not terminate")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			logger.Info("discarded", i)
		}
		_ = logger.Flush(100 * time.Millisecond)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("logging blocked on a dead sink")
	}
	assert.NoError(t, logger.Close())
}
