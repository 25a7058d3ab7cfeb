package nexuslogger

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// renderMessage renders variadic arguments into a message, space separated.
// Renders at or below the inline capacity never allocate; larger renders
// spill to a heap string with the full, untruncated content.
func renderMessage(args []any) message {
	if len(args) == 1 {
		if s, ok := args[0].(string); ok {
			return newMessage(s)
		}
	}
	var scratch [inlineMessageCapacity]byte
	buf := scratch[:0]
	for i, arg := range args {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = appendValue(buf, arg)
	}
	return messageFromBytes(buf)
}

// appendValue converts a value to its text form with strconv fast paths,
// delegating composite types to spew for a compact, stable dump.
func appendValue(buf []byte, v any) []byte {
	switch val := v.(type) {
	case string:
		return append(buf, val...)
	case int:
		return strconv.AppendInt(buf, int64(val), 10)
	case int32:
		return strconv.AppendInt(buf, int64(val), 10)
	case int64:
		return strconv.AppendInt(buf, val, 10)
	case uint:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint64:
		return strconv.AppendUint(buf, val, 10)
	case float32:
		return strconv.AppendFloat(buf, float64(val), 'f', -1, 32)
	case float64:
		return strconv.AppendFloat(buf, val, 'f', -1, 64)
	case bool:
		return strconv.AppendBool(buf, val)
	case nil:
		return append(buf, "nil"...)
	case time.Time:
		return val.AppendFormat(buf, time.RFC3339Nano)
	case time.Duration:
		return append(buf, val.String()...)
	case error:
		return append(buf, val.Error()...)
	case fmt.Stringer:
		return append(buf, val.String()...)
	case []byte:
		// Hex keeps arbitrary bytes from corrupting the line structure.
		return hex.AppendEncode(buf, val)
	default:
		var b bytes.Buffer
		dumper := &spew.ConfigState{
			Indent:                  " ",
			MaxDepth:                10,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}
		dumper.Fdump(&b, val)
		return append(buf, bytes.TrimSpace(b.Bytes())...)
	}
}
