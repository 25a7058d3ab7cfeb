package nexuslogger

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Logger is one handle onto a shared sink. Handles are cheap to create;
// every handle resolved for the same target feeds the same worker, and the
// sink lives until the last handle is closed.
type Logger struct {
	name   string
	level  atomic.Int32
	key    sinkKey
	sink   *sharedSink
	closed atomic.Bool

	// mu guards the handle's batch buffer and clock anchor. Append, swap
	// and hand-off happen in one critical section so entries from any
	// single caller reach the transport in call order.
	mu        sync.Mutex
	batch     []entry
	batchSize int
	clock     anchoredClock
}

// New creates a logger handle from cfg. An existing sink for the same
// target is shared; otherwise a transport and worker are spawned for it.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	key := sinkKeyFor(cfg)
	settings := sinkSettings{
		path:            cfg.Path,
		consoleTarget:   cfg.ConsoleTarget,
		unixTimestamp:   cfg.UnixTimestamp,
		channelCapacity: cfg.ChannelCapacity,
		flushInterval:   time.Duration(cfg.FlushIntervalMs) * time.Millisecond,
	}

	l := &Logger{
		name:      cfg.Name,
		key:       key,
		sink:      registry.resolve(key, settings),
		batch:     make([]entry, 0, cfg.BatchSize),
		batchSize: int(cfg.BatchSize),
	}
	l.level.Store(int32(cfg.Level))
	return l, nil
}

// Name returns the label attached to every entry from this handle.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the current minimum severity.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// SetLevel changes the minimum severity at runtime. Safe to call while
// other goroutines are logging through the same handle.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// Trace logs a message at trace level.
func (l *Logger) Trace(args ...any) { l.log(LevelTrace, args) }

// Debug logs a message at debug level.
func (l *Logger) Debug(args ...any) { l.log(LevelDebug, args) }

// Info logs a message at info level.
func (l *Logger) Info(args ...any) { l.log(LevelInfo, args) }

// Warn logs a message at warning level.
func (l *Logger) Warn(args ...any) { l.log(LevelWarn, args) }

// Error logs a message at error level.
func (l *Logger) Error(args ...any) { l.log(LevelError, args) }

// Tracef logs a printf-formatted message at trace level.
func (l *Logger) Tracef(format string, args ...any) { l.logf(LevelTrace, format, args) }

// Debugf logs a printf-formatted message at debug level.
func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args) }

// Infof logs a printf-formatted message at info level.
func (l *Logger) Infof(format string, args ...any) { l.logf(LevelInfo, format, args) }

// Warnf logs a printf-formatted message at warning level.
func (l *Logger) Warnf(format string, args ...any) { l.logf(LevelWarn, format, args) }

// Errorf logs a printf-formatted message at error level.
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args) }

func (l *Logger) log(level Level, args []any) {
	if int32(level) < l.level.Load() || l.closed.Load() {
		return
	}
	l.push(level, renderMessage(args))
}

func (l *Logger) logf(level Level, format string, args []any) {
	if int32(level) < l.level.Load() || l.closed.Load() {
		return
	}
	var scratch [inlineMessageCapacity]byte
	rendered := fmt.Appendf(scratch[:0], format, args...)
	l.push(level, messageFromBytes(rendered))
}

// push appends one entry to the handle's batch, handing the batch to the
// transport when full. The hand-off happens inside the critical section; a
// full transport therefore applies backpressure to this handle's callers
// rather than dropping or reordering entries.
func (l *Logger) push(level Level, msg message) {
	l.mu.Lock()
	ts := l.clock.now()
	l.batch = append(l.batch, entry{ts: ts, name: l.name, level: level, msg: msg})
	if len(l.batch) >= l.batchSize {
		full := l.batch
		l.batch = make([]entry, 0, l.batchSize)
		l.sink.tr.send(directive{kind: dirWriteBatch, batch: full})
	}
	l.mu.Unlock()
}

// Flush hands off the handle's partial batch, asks the worker to flush the
// buffered target, and waits for confirmation or the timeout.
func (l *Logger) Flush(timeout time.Duration) error {
	if l.closed.Load() {
		return fmtErrorf("logger is closed")
	}

	confirm := make(chan struct{})
	l.mu.Lock()
	if len(l.batch) > 0 {
		full := l.batch
		l.batch = make([]entry, 0, l.batchSize)
		l.sink.tr.send(directive{kind: dirWriteBatch, batch: full})
	}
	sent := l.sink.tr.send(directive{kind: dirFlush, confirm: confirm})
	l.mu.Unlock()

	if !sent {
		// Sink already terminated; nothing left to flush.
		return nil
	}
	select {
	case <-confirm:
		return nil
	case <-l.sink.tr.done:
		return nil
	case <-time.After(timeout):
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}

// Close flushes this handle's pending batch and releases its sink
// reference. Releasing the last reference for the target blocks until the
// worker has drained and terminated. Close is idempotent; logging through
// a closed handle is a silent no-op.
func (l *Logger) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}

	l.mu.Lock()
	if len(l.batch) > 0 {
		l.sink.tr.send(directive{kind: dirWriteBatch, batch: l.batch})
		l.batch = nil
	}
	l.mu.Unlock()

	registry.release(l.key, l.sink)
	return nil
}
