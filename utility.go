package nexuslogger

import (
	"fmt"
	"strings"
)

// fmtErrorf wrapper, ensures the package prefix on every error
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "nexuslogger: ") {
		format = "nexuslogger: " + format
	}
	return fmt.Errorf(format, args...)
}
