package nexuslogger

import (
	"fmt"
	"strings"
)

// Level is the severity of a log entry. Levels are ordered; a logger only
// emits entries at or above its configured minimum.
type Level int32

// Log level constants
const (
	LevelTrace Level = -8
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the lower-case level name used in formatted output.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int32(l))
	}
}

// ParseLevel converts a level name to its constant.
func ParseLevel(levelStr string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use trace, debug, info, warn, error)", levelStr)
	}
}

// validLevel reports whether v is one of the five defined levels.
func validLevel(v int64) bool {
	switch Level(v) {
	case LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError:
		return true
	}
	return false
}
