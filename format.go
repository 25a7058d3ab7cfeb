package nexuslogger

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"time"
)

// formatCache holds the pre-rendered prefix strings for the last seen
// whole-second value. Consecutive entries usually share a second, so the
// calendar breakdown and prefix formatting amortize to one computation per
// distinct second rather than per entry.
type formatCache struct {
	lastSecs int64
	year     int
	month    int
	day      int

	timePrefix   []byte // "time=2006-01-02T15:04:05."
	offsetPrefix []byte // "+00:00 level="
	unixPrefix   []byte // "time=1136214245."
}

func newFormatCache() *formatCache {
	return &formatCache{lastSecs: math.MinInt64}
}

// update recomputes the cached calendar breakdown and prefixes when secs
// differs from the last seen second. Calendar fields are local time.
func (c *formatCache) update(secs int64) {
	if c.lastSecs == secs {
		return
	}
	t := time.Unix(secs, 0)
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	_, offset := t.Zone()

	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}

	c.lastSecs = secs
	c.year, c.month, c.day = year, int(month), day
	c.timePrefix = fmt.Appendf(c.timePrefix[:0], "time=%04d-%02d-%02dT%02d:%02d:%02d.",
		year, int(month), day, hour, min, sec)
	c.offsetPrefix = fmt.Appendf(c.offsetPrefix[:0], "%c%02d:%02d level=",
		sign, offset/3600, (offset%3600)/60)
	c.unixPrefix = fmt.Appendf(c.unixPrefix[:0], "time=%d.", secs)
}

// writeEntry renders one entry into w using the cached prefixes.
// Calendar mode truncates the fractional seconds to microseconds; unix mode
// keeps the full nine nanosecond digits. Message bytes pass through
// verbatim, including any embedded quotes or newlines.
func (c *formatCache) writeEntry(w *bufio.Writer, e *entry, unixTS bool) error {
	c.update(e.ts.secs)

	if unixTS {
		w.Write(c.unixPrefix)
		writePaddedInt(w, int64(e.ts.nanos), 9)
		w.WriteString(" level=")
		w.WriteString(e.level.String())
	} else {
		w.Write(c.timePrefix)
		writePaddedInt(w, int64(e.ts.nanos)/1_000, 6)
		w.Write(c.offsetPrefix)
		w.WriteString(e.level.String())
	}

	if e.name != "" {
		w.WriteString(" name=")
		w.WriteString(e.name)
	}
	w.WriteString(` msg="`)
	if e.msg.spilled {
		w.WriteString(e.msg.heap)
	} else {
		w.Write(e.msg.inline[:e.msg.n])
	}
	_, err := w.WriteString("\"\n")
	return err
}

// writePaddedInt writes v zero-padded to width digits.
func writePaddedInt(w *bufio.Writer, v int64, width int) {
	var scratch [20]byte
	digits := strconv.AppendInt(scratch[:0], v, 10)
	for i := len(digits); i < width; i++ {
		w.WriteByte('0')
	}
	w.Write(digits)
}
