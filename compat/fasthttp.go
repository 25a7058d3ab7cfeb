package compat

import (
	"fmt"
	"strings"

	nexuslogger "github.com/walras-group/nexuslogger"
)

// FastHTTPAdapter wraps nexuslogger.Logger to implement fasthttp's Logger interface
type FastHTTPAdapter struct {
	logger        *nexuslogger.Logger
	defaultLevel  nexuslogger.Level
	levelDetector func(string) (nexuslogger.Level, bool) // Detect log level from message content
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger *nexuslogger.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:        logger,
		defaultLevel:  nexuslogger.LevelInfo,
		levelDetector: DetectLogLevel, // Default level detection
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the default log level for Printf calls
func WithDefaultLevel(level nexuslogger.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect log level from message content
func WithLevelDetector(detector func(string) (nexuslogger.Level, bool)) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected, ok := a.levelDetector(msg); ok {
			level = detected
		}
	}

	switch level {
	case nexuslogger.LevelTrace:
		a.logger.Trace(msg)
	case nexuslogger.LevelDebug:
		a.logger.Debug(msg)
	case nexuslogger.LevelWarn:
		a.logger.Warn(msg)
	case nexuslogger.LevelError:
		a.logger.Error(msg)
	default:
		a.logger.Info(msg)
	}
}

// DetectLogLevel attempts to detect log level from message content
func DetectLogLevel(msg string) (nexuslogger.Level, bool) {
	msgLower := strings.ToLower(msg)

	// Check for error indicators
	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return nexuslogger.LevelError, true
	}

	// Check for warning indicators
	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "warning") ||
		strings.Contains(msgLower, "deprecated") {
		return nexuslogger.LevelWarn, true
	}

	// Check for debug indicators
	if strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace") {
		return nexuslogger.LevelDebug, true
	}

	return 0, false
}
