package nexuslogger

import (
	"time"
)

// anchoredClock derives wall-clock timestamps from a monotonic anchor.
// It takes a real clock reading at most once per clockResyncInterval and
// otherwise adds the elapsed monotonic delta to the anchored wall time.
// If the system clock is adjusted mid-interval the derived time drifts by
// at most the resync interval; that is an accepted bound, not a defect.
type anchoredClock struct {
	anchor time.Time // carries the monotonic reading
	secs   int64
	nanos  int32
}

func (c *anchoredClock) refresh() timestamp {
	t := time.Now()
	c.anchor = t
	c.secs = t.Unix()
	c.nanos = int32(t.Nanosecond())
	return timestamp{secs: c.secs, nanos: c.nanos}
}

func (c *anchoredClock) now() timestamp {
	if c.anchor.IsZero() {
		return c.refresh()
	}
	elapsed := time.Since(c.anchor)
	if elapsed >= clockResyncInterval {
		return c.refresh()
	}
	total := int64(c.nanos) + elapsed.Nanoseconds()
	return timestamp{
		secs:  c.secs + total/1_000_000_000,
		nanos: int32(total % 1_000_000_000),
	}
}
