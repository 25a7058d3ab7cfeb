package nexuslogger

import (
	"time"
)

// Capacities
const (
	// Transport channel slots per sink
	defaultChannelCapacity int64 = 65_536
	// Entries accumulated per handle before hand-off to the transport
	defaultBatchSize int64 = 32
	// Message bytes stored inline in an entry without allocation
	inlineMessageCapacity = 256
)

// Timers
const (
	// Worker wakes up at least this often even without traffic
	workerPollTimeout = time.Second
	// Interval between forced flushes of the buffered target
	defaultFlushIntervalMs int64 = 1000
	// Producer clock resynchronizes against the system clock at this interval
	clockResyncInterval = time.Second
)

// Buffered writer capacity over the sink target
const writerBufferSize = 1 << 20
