package nexuslogger

import (
	"sync"
	"time"
)

// Package-level default logger and the configuration shared by GetLogger
var (
	defaultMu     sync.Mutex
	defaultCfg    = DefaultConfig()
	defaultLogger *Logger
)

// Configure sets the configuration used by the package-level functions and
// by GetLogger. Any existing default handle is closed and replaced lazily
// on next use.
func Configure(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger != nil {
		defaultLogger.Close()
		defaultLogger = nil
	}
	defaultCfg = cfg.Clone()
	return nil
}

// GetLogger returns a new named handle sharing the configured default
// target. Handles from GetLogger and the package-level functions feed the
// same sink worker.
func GetLogger(name string, level Level) (*Logger, error) {
	defaultMu.Lock()
	cfg := defaultCfg.Clone()
	defaultMu.Unlock()

	cfg.Name = name
	cfg.Level = int64(level)
	return New(cfg)
}

// Default returns the package-level logger, creating it on first use.
func Default() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		l, err := New(defaultCfg)
		if err != nil {
			// Configure validated the stored config; fall back to a
			// console handle so package-level calls stay usable.
			l, _ = New(DefaultConfig())
		}
		defaultLogger = l
	}
	return defaultLogger
}

// Trace logs a message at trace level through the default logger.
func Trace(args ...any) {
	Default().Trace(args...)
}

// Debug logs a message at debug level through the default logger.
func Debug(args ...any) {
	Default().Debug(args...)
}

// Info logs a message at info level through the default logger.
func Info(args ...any) {
	Default().Info(args...)
}

// Warn logs a message at warning level through the default logger.
func Warn(args ...any) {
	Default().Warn(args...)
}

// Error logs a message at error level through the default logger.
func Error(args ...any) {
	Default().Error(args...)
}

// Flush drains the default logger and waits for the sink to sync.
func Flush(timeout time.Duration) error {
	return Default().Flush(timeout)
}

// Shutdown closes the default logger, draining and joining its sink worker
// if this was the last reference.
func Shutdown() error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		return nil
	}
	err := defaultLogger.Close()
	defaultLogger = nil
	return err
}
