package nexuslogger

import (
	"time"
)

// timestamp is a wall-clock instant split into whole seconds since the Unix
// epoch and nanoseconds within the second. Invariant: nanos < 1e9.
type timestamp struct {
	secs  int64
	nanos int32
}

func nowTimestamp() timestamp {
	t := time.Now()
	return timestamp{secs: t.Unix(), nanos: int32(t.Nanosecond())}
}

// message holds log text either inline, in a fixed buffer that travels with
// the entry, or on the heap when it exceeds inlineMessageCapacity. Content
// is never truncated; oversized text spills to the heap whole.
type message struct {
	heap    string
	n       int32
	spilled bool
	inline  [inlineMessageCapacity]byte
}

func newMessage(s string) message {
	if len(s) <= inlineMessageCapacity {
		var m message
		m.n = int32(copy(m.inline[:], s))
		return m
	}
	return message{heap: s, spilled: true}
}

func messageFromBytes(b []byte) message {
	if len(b) <= inlineMessageCapacity {
		var m message
		m.n = int32(copy(m.inline[:], b))
		return m
	}
	return message{heap: string(b), spilled: true}
}

func (m *message) len() int {
	if m.spilled {
		return len(m.heap)
	}
	return int(m.n)
}

func (m *message) String() string {
	if m.spilled {
		return m.heap
	}
	return string(m.inline[:m.n])
}

// entry is one log record. Entries are immutable after construction and
// consumed exactly once by the sink worker. The name string is shared with
// the logger handle that produced the entry.
type entry struct {
	ts    timestamp
	name  string
	level Level
	msg   message
}
